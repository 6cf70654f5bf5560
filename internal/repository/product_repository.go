package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Product struct {
	ID             int64
	Name           string
	Description    string
	Explanation    string
	Price          int64
	CommissionRate int64
	CreatedAt      time.Time
}

type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id int64) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
	Count(ctx context.Context) (int, error)
}

type pgProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) ProductRepository {
	return &pgProductRepository{pool: pool}
}

func (r *pgProductRepository) Create(ctx context.Context, product *Product) error {
	query := `
		INSERT INTO products (name, description, explanation, price, commission_rate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		product.Name, product.Description, product.Explanation,
		product.Price, product.CommissionRate,
	).Scan(&product.ID, &product.CreatedAt)
}

func (r *pgProductRepository) FindByID(ctx context.Context, id int64) (*Product, error) {
	query := `
		SELECT id, name, description, explanation, price, commission_rate, created_at
		FROM products WHERE id = $1
	`
	p := &Product{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Explanation, &p.Price, &p.CommissionRate, &p.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pgProductRepository) FindAll(ctx context.Context) ([]*Product, error) {
	query := `
		SELECT id, name, description, explanation, price, commission_rate, created_at
		FROM products ORDER BY price
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Explanation, &p.Price, &p.CommissionRate, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *pgProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	return count, err
}
