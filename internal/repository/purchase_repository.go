package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Purchase struct {
	ID           int64
	BuyerName    string
	Contact      string
	Address      string
	ProductID    int64
	ReferrerID   *string
	Status       string
	PurchaseDate time.Time
	UpdatedAt    time.Time
}

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *Purchase) error
	FindByID(ctx context.Context, id int64) (*Purchase, error)
	FindAll(ctx context.Context) ([]*Purchase, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	CancelStalePending(ctx context.Context, olderThan time.Duration) (int64, error)
}

type pgPurchaseRepository struct {
	pool *pgxpool.Pool
}

func NewPurchaseRepository(pool *pgxpool.Pool) PurchaseRepository {
	return &pgPurchaseRepository{pool: pool}
}

func (r *pgPurchaseRepository) Create(ctx context.Context, purchase *Purchase) error {
	query := `
		INSERT INTO purchases (buyer_name, contact, address, product_id, referrer_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, purchase_date, updated_at
	`
	if purchase.Status == "" {
		purchase.Status = "Pending"
	}
	return r.pool.QueryRow(ctx, query,
		purchase.BuyerName, purchase.Contact, purchase.Address,
		purchase.ProductID, purchase.ReferrerID, purchase.Status,
	).Scan(&purchase.ID, &purchase.PurchaseDate, &purchase.UpdatedAt)
}

func (r *pgPurchaseRepository) FindByID(ctx context.Context, id int64) (*Purchase, error) {
	query := `
		SELECT id, buyer_name, contact, address, product_id, referrer_id, status, purchase_date, updated_at
		FROM purchases WHERE id = $1
	`
	p := &Purchase{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.BuyerName, &p.Contact, &p.Address, &p.ProductID,
		&p.ReferrerID, &p.Status, &p.PurchaseDate, &p.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pgPurchaseRepository) FindAll(ctx context.Context) ([]*Purchase, error) {
	query := `
		SELECT id, buyer_name, contact, address, product_id, referrer_id, status, purchase_date, updated_at
		FROM purchases ORDER BY purchase_date DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*Purchase
	for rows.Next() {
		p := &Purchase{}
		if err := rows.Scan(
			&p.ID, &p.BuyerName, &p.Contact, &p.Address, &p.ProductID,
			&p.ReferrerID, &p.Status, &p.PurchaseDate, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

func (r *pgPurchaseRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE purchases SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, status)
	return err
}

func (r *pgPurchaseRepository) CancelStalePending(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `
		UPDATE purchases SET status = 'Cancelled', updated_at = NOW()
		WHERE status = 'Pending' AND purchase_date < $1
	`
	tag, err := r.pool.Exec(ctx, query, time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
