// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/myrepublic-hub/network-hub-backend/internal/api/handlers"
	"github.com/myrepublic-hub/network-hub-backend/internal/api/middleware"
	"github.com/myrepublic-hub/network-hub-backend/internal/config"
	"github.com/myrepublic-hub/network-hub-backend/internal/cron"
	"github.com/myrepublic-hub/network-hub-backend/internal/db"
	"github.com/myrepublic-hub/network-hub-backend/internal/email"
	"github.com/myrepublic-hub/network-hub-backend/internal/notification"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
	"github.com/myrepublic-hub/network-hub-backend/internal/seed"
	"github.com/myrepublic-hub/network-hub-backend/internal/service"
	"github.com/myrepublic-hub/network-hub-backend/internal/socket"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// ============================================
	// Load configuration
	// ============================================
	cfg := config.Load()

	// ============================================
	// Set Gin mode
	// ============================================
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Run Database Migrations FIRST
	// ============================================
	log.Println("🔄 Running database migrations...")
	migrationsPath := "./internal/db/migrations"
	if err := db.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// ============================================
	// Initialize PostgreSQL
	// ============================================
	ctx := context.Background()

	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to create pgx pool: %v", err)
	}
	defer pgPool.Close()

	if err := pgPool.Ping(ctx); err != nil {
		log.Fatalf("❌ Failed to ping database: %v", err)
	}
	log.Println("✅ Connected to PostgreSQL")

	// ============================================
	// Initialize Repositories
	// ============================================
	repos := repository.NewRepositories(pgPool)
	log.Println("📦 Repositories initialized")

	// ============================================
	// Initialize Redis (optional)
	// ============================================
	var redisDB *db.RedisDB
	if cfg.RedisURL != "" {
		redisDB, err = db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Redis: %v (continuing without cache)", err)
			redisDB = nil
		} else {
			defer redisDB.Close()
			log.Println("⚡ Redis cache enabled")
		}
	}

	// ============================================
	// Initialize Email Service (optional)
	// ============================================
	var emailSvc *email.Service
	if cfg.SMTPHost != "" {
		emailSvc = email.NewService(&email.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			FromName: cfg.SMTPFromName,
			UseTLS:   cfg.SMTPUseTLS,
		})
		log.Println("📧 Email service initialized")
	} else {
		log.Println("⚠️  Email not configured (SMTP_HOST not set)")
	}

	// ============================================
	// Initialize WebSocket Hub
	// ============================================
	hub := socket.NewHub()
	go hub.Run()
	broadcaster := socket.NewBroadcaster(hub)

	wsHandler := socket.NewHandler(hub, cfg.JWTSecret)
	log.Println("🔌 WebSocket hub initialized")

	// ============================================
	// Initialize Notification Service
	// ============================================
	notificationSvc := notification.NewService(repos.NotificationRepo, broadcaster)

	// ============================================
	// Initialize All Services
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config:      cfg,
		Repos:       repos,
		Redis:       redisDB,
		NotifSvc:    notificationSvc,
		EmailSvc:    emailSvc,
		Broadcaster: broadcaster,
	})
	log.Println("✨ All services initialized")

	// ============================================
	// Bootstrap default packages
	// ============================================
	if err := services.Product.InitializeDefaults(ctx); err != nil {
		log.Printf("⚠️ Failed to bootstrap default packages: %v", err)
	}

	// ============================================
	// Seed Data (for development)
	// ============================================
	if cfg.Environment != "production" {
		seed.SeedData(repos)
	}

	// ============================================
	// Initialize Handlers
	// ============================================
	h := handlers.NewHandlers(services)

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	cronScheduler := cron.NewScheduler(cfg, services, repos)
	if err := cronScheduler.Start(); err != nil {
		log.Fatalf("❌ Failed to start cron scheduler: %v", err)
	}
	defer cronScheduler.Stop()

	// ============================================
	// Create Gin Router
	// ============================================
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL, "http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"timestamp":  time.Now(),
			"database":   "connected",
			"cache":      getCacheStatus(redisDB),
			"websocket":  "active",
			"ws_clients": hub.GetConnectedClientsCount(),
			"email":      getEmailStatus(emailSvc),
		})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := r.Group("/api")
	{
		// ============================================
		// Public routes (no auth required)
		// ============================================
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Product catalog is public so the landing page can render it
		products := api.Group("/products")
		{
			products.GET("", h.Product.GetProducts)
			products.GET("/:id", h.Product.GetProduct)
			products.GET("/:id/price", h.Product.GetProductPrice)
		}

		api.POST("/contact-forms", h.Contact.SubmitContactForm)
		api.GET("/incentive-scheme", h.Commission.GetIncentiveScheme)

		// WebSocket route (authenticates itself via query token)
		api.GET("/ws", wsHandler.HandleWebSocket)

		// ============================================
		// Protected routes (require auth middleware)
		// ============================================
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(services.Auth))
		{
			members := protected.Group("/members")
			{
				members.GET("/me", h.Member.GetCurrentMember)
				members.PUT("/me/profile", h.Member.UpdateProfile)
				members.GET("/me/complete", h.Member.IsProfileComplete)
				members.GET("/me/role", h.Member.GetCurrentRole)

				members.GET("/:id", h.Member.GetMember)
				members.GET("/:id/family-tree", h.Network.GetFamilyTree)
				members.GET("/:id/network-stats", h.Network.GetNetworkStats)
				members.GET("/:id/transactions", h.Commission.GetTransactions)
				members.GET("/:id/achievements", h.Achievement.GetMemberAchievements)
				members.GET("/:id/withdrawals", h.Withdrawal.GetMemberWithdrawals)
				members.GET("/:id/withdrawal-summary", h.Withdrawal.GetWithdrawalSummary)
				members.GET("/:id/verification", h.Member.GetVerificationStatus)
			}

			withdrawals := protected.Group("/withdrawals")
			{
				withdrawals.POST("", h.Withdrawal.RequestWithdrawal)
				withdrawals.GET("/:id", h.Withdrawal.GetWithdrawal)
			}

			purchases := protected.Group("/purchases")
			{
				purchases.POST("", h.Purchase.CreatePurchase)
				purchases.POST("/process", h.Purchase.ProcessWithCommissions)
			}

			protected.POST("/achievements", h.Achievement.RecordAchievement)
			protected.POST("/sales", h.Achievement.RecordSales)
			protected.GET("/leaderboard", h.Leaderboard.GetLeaderboard)

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notification.GetNotifications)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
			}

			// ============================================
			// Admin routes
			// ============================================
			admin := protected.Group("/admin")
			admin.Use(middleware.AdminMiddleware(services.Member))
			{
				admin.GET("/validate", h.Member.ValidateAdmin)

				adminMembers := admin.Group("/members")
				{
					adminMembers.GET("", h.Member.GetAllMembers)
					adminMembers.DELETE("/:id", h.Member.DeleteMember)
					adminMembers.PUT("/:id/role", h.Member.UpdateRole)
					adminMembers.PUT("/:id/verify", h.Member.SetVerification)
				}

				adminProducts := admin.Group("/products")
				{
					adminProducts.POST("", h.Product.CreateProduct)
					adminProducts.POST("/bootstrap", h.Product.Bootstrap)
				}

				adminPurchases := admin.Group("/purchases")
				{
					adminPurchases.GET("", h.Purchase.GetAllPurchases)
					adminPurchases.PUT("/:id/status", h.Purchase.UpdateStatus)
				}

				adminWithdrawals := admin.Group("/withdrawals")
				{
					adminWithdrawals.GET("", h.Withdrawal.GetAllWithdrawals)
					adminWithdrawals.PUT("/:id/approve", h.Withdrawal.Approve)
					adminWithdrawals.PUT("/:id/reject", h.Withdrawal.Reject)
					adminWithdrawals.PUT("/:id/paid", h.Withdrawal.MarkPaid)
				}

				adminContactForms := admin.Group("/contact-forms")
				{
					adminContactForms.GET("", h.Contact.GetAllSubmissions)
					adminContactForms.GET("/:id", h.Contact.GetSubmission)
				}
			}
		}
	}

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func getCacheStatus(redisDB *db.RedisDB) string {
	if redisDB != nil {
		return "connected"
	}
	return "disabled"
}

func getEmailStatus(emailSvc *email.Service) string {
	if emailSvc != nil {
		return "configured"
	}
	return "disabled"
}
