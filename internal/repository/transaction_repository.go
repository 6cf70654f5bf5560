package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Transaction struct {
	ID               int64
	PurchaseID       int64
	MemberID         string
	Level            int64
	CommissionAmount int64
	SponsorBonus     int64
	ProductPrice     int64
	Date             time.Time
}

type TransactionRepository interface {
	CreateBatch(ctx context.Context, transactions []*Transaction) error
	FindByMember(ctx context.Context, memberID string) ([]*Transaction, error)
	ExistsForPurchase(ctx context.Context, purchaseID int64) (bool, error)
	TotalEarnedByMember(ctx context.Context, memberID string) (int64, error)
}

type pgTransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &pgTransactionRepository{pool: pool}
}

// CreateBatch inserts all commission rows for one purchase atomically.
// ON CONFLICT DO NOTHING keeps a replayed distribution from duplicating
// rows even if the caller's existence check raced.
func (r *pgTransactionRepository) CreateBatch(ctx context.Context, transactions []*Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO transactions (purchase_id, member_id, level, commission_amount, sponsor_bonus, product_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (purchase_id, member_id, level) DO NOTHING
	`
	for _, t := range transactions {
		if _, err := tx.Exec(ctx, query,
			t.PurchaseID, t.MemberID, t.Level, t.CommissionAmount, t.SponsorBonus, t.ProductPrice,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *pgTransactionRepository) FindByMember(ctx context.Context, memberID string) ([]*Transaction, error) {
	query := `
		SELECT id, purchase_id, member_id, level, commission_amount, sponsor_bonus, product_price, date
		FROM transactions WHERE member_id = $1 ORDER BY date DESC
	`
	rows, err := r.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*Transaction
	for rows.Next() {
		t := &Transaction{}
		if err := rows.Scan(
			&t.ID, &t.PurchaseID, &t.MemberID, &t.Level,
			&t.CommissionAmount, &t.SponsorBonus, &t.ProductPrice, &t.Date,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (r *pgTransactionRepository) ExistsForPurchase(ctx context.Context, purchaseID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM transactions WHERE purchase_id = $1)`, purchaseID,
	).Scan(&exists)
	return exists, err
}

func (r *pgTransactionRepository) TotalEarnedByMember(ctx context.Context, memberID string) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(commission_amount + sponsor_bonus), 0) FROM transactions WHERE member_id = $1`,
		memberID,
	).Scan(&total)
	return total, err
}
