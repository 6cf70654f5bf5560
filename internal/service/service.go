package service

import (
	"errors"

	"github.com/myrepublic-hub/network-hub-backend/internal/config"
	"github.com/myrepublic-hub/network-hub-backend/internal/db"
	"github.com/myrepublic-hub/network-hub-backend/internal/email"
	"github.com/myrepublic-hub/network-hub-backend/internal/notification"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
	"github.com/myrepublic-hub/network-hub-backend/internal/socket"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrMemberExists        = errors.New("member already exists")
	ErrMemberNotFound      = errors.New("member not found")
	ErrInvalidToken        = errors.New("invalid token")
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrConflict            = errors.New("resource already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrSponsorNotFound     = errors.New("sponsor not found")
	ErrSponsorNotVerified  = errors.New("sponsor subscription is not verified")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInsufficientBalance = repository.ErrInsufficientBalance
	ErrProfileSealed       = errors.New("profile is sealed and cannot be changed")
	ErrAlreadyDistributed  = errors.New("commissions already distributed for this purchase")
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth         AuthService
	Member       MemberService
	Network      NetworkService
	Commission   CommissionService
	Product      ProductService
	Purchase     PurchaseService
	Withdrawal   WithdrawalService
	Leaderboard  LeaderboardService
	Contact      ContactService
	Achievement  AchievementService
	Notification NotificationService
	Broadcaster  *socket.Broadcaster
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config      *config.Config
	Repos       *repository.Repositories
	Redis       *db.RedisDB
	NotifSvc    *notification.Service
	EmailSvc    *email.Service
	Broadcaster *socket.Broadcaster
}

func NewServices(deps *ServiceDeps) *Services {
	networkService := NewNetworkService(deps.Repos.MemberRepo)

	commissionService := NewCommissionService(
		deps.Config,
		deps.Repos.MemberRepo,
		deps.Repos.TransactionRepo,
		deps.NotifSvc,
		deps.Broadcaster,
	)

	purchaseService := NewPurchaseService(
		deps.Repos.PurchaseRepo,
		deps.Repos.ProductRepo,
		deps.Repos.MemberRepo,
		deps.Repos.AchievementRepo,
		commissionService,
		deps.NotifSvc,
		deps.Broadcaster,
	)

	return &Services{
		Auth:       NewAuthService(deps.Config, deps.Repos.MemberRepo),
		Member:     NewMemberService(deps.Repos.MemberRepo, deps.EmailSvc),
		Network:    networkService,
		Commission: commissionService,
		Product:    NewProductService(deps.Repos.ProductRepo),
		Purchase:   purchaseService,
		Withdrawal: NewWithdrawalService(
			deps.Repos.WithdrawalRepo,
			deps.Repos.MemberRepo,
			deps.NotifSvc,
			deps.EmailSvc,
			deps.Broadcaster,
		),
		Leaderboard: NewLeaderboardService(
			deps.Config,
			deps.Repos.MemberRepo,
			deps.Repos.AchievementRepo,
			networkService,
			deps.Redis,
		),
		Contact: NewContactService(deps.Config, deps.Repos.ContactFormRepo, deps.Repos.ProductRepo),
		Achievement: NewAchievementService(
			deps.Repos.AchievementRepo,
			deps.Repos.MemberRepo,
			deps.Repos.ProductRepo,
		),
		Notification: NewNotificationService(deps.Repos.NotificationRepo),
		Broadcaster:  deps.Broadcaster,
	}
}
