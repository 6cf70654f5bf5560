package seed

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
	"github.com/myrepublic-hub/network-hub-backend/internal/types"
)

// SeedData creates a small demo network for development: one admin, a
// verified top sponsor, and a three-level referral chain under her.
func SeedData(repos *repository.Repositories) {
	ctx := context.Background()

	members, _ := repos.MemberRepo.FindAll(ctx)
	if len(members) > 0 {
		log.Println("[Seed] Data already exists, skipping...")
		return
	}

	log.Println("[Seed] 🌱 Creating demo network...")

	password, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	// ============================================
	// ADMIN
	// ============================================
	admin := &repository.Member{
		Email:    "admin@myrepublic-hub.id",
		Password: string(password),
		Name:     "Hub Admin",
		Contact:  "+6281100000001",
		Role:     types.RoleAdmin,
	}
	if err := repos.MemberRepo.Create(ctx, admin); err != nil {
		log.Printf("[Seed] ❌ Failed to create admin: %v", err)
		return
	}

	// ============================================
	// REFERRAL CHAIN: Sari → Budi → Citra
	// ============================================
	sari := &repository.Member{
		Email:    "sari.wulandari@example.id",
		Password: string(password),
		Name:     "Sari Wulandari",
		Contact:  "+6281200000002",
	}
	repos.MemberRepo.Create(ctx, sari)
	// Top sponsor starts verified so she can refer others.
	repos.MemberRepo.SetSubscriptionsVerified(ctx, sari.ID, true)

	budi := &repository.Member{
		Email:     "budi.santoso@example.id",
		Password:  string(password),
		Name:      "Budi Santoso",
		Contact:   "+6281300000003",
		SponsorID: &sari.ID,
	}
	repos.MemberRepo.Create(ctx, budi)
	repos.MemberRepo.SetSubscriptionsVerified(ctx, budi.ID, true)

	citra := &repository.Member{
		Email:     "citra.lestari@example.id",
		Password:  string(password),
		Name:      "Citra Lestari",
		Contact:   "+6281400000004",
		SponsorID: &budi.ID,
	}
	repos.MemberRepo.Create(ctx, citra)

	// A second direct downline under Sari, still unverified.
	dewi := &repository.Member{
		Email:     "dewi.anggraini@example.id",
		Password:  string(password),
		Name:      "Dewi Anggraini",
		Contact:   "+6281500000005",
		SponsorID: &sari.ID,
	}
	repos.MemberRepo.Create(ctx, dewi)

	log.Println("[Seed] ✅ Created 5 members: admin + chain Sari → {Budi → Citra, Dewi}")
	log.Println("[Seed] Login with any seeded email and password123")
}
