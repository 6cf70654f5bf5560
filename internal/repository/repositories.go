package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	MemberRepo       MemberRepository
	ProductRepo      ProductRepository
	PurchaseRepo     PurchaseRepository
	TransactionRepo  TransactionRepository
	WithdrawalRepo   WithdrawalRepository
	ContactFormRepo  ContactFormRepository
	AchievementRepo  AchievementRepository
	NotificationRepo NotificationRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		MemberRepo:       NewMemberRepository(pool),
		ProductRepo:      NewProductRepository(pool),
		PurchaseRepo:     NewPurchaseRepository(pool),
		TransactionRepo:  NewTransactionRepository(pool),
		WithdrawalRepo:   NewWithdrawalRepository(pool),
		ContactFormRepo:  NewContactFormRepository(pool),
		AchievementRepo:  NewAchievementRepository(pool),
		NotificationRepo: NewNotificationRepository(pool),
	}
}
