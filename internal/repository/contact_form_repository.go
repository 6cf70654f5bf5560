package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContactFormSubmission struct {
	ID              int64
	CustomerName    string
	PhoneNumber     string
	CustomerAddress string
	Latitude        float64
	Longitude       float64
	ProductID       int64
	PackagePrice    int64
	SubmittedBy     *string
	SubmittedAt     time.Time
}

type ContactFormRepository interface {
	Create(ctx context.Context, submission *ContactFormSubmission) error
	FindByID(ctx context.Context, id int64) (*ContactFormSubmission, error)
	FindAll(ctx context.Context) ([]*ContactFormSubmission, error)
}

type pgContactFormRepository struct {
	pool *pgxpool.Pool
}

func NewContactFormRepository(pool *pgxpool.Pool) ContactFormRepository {
	return &pgContactFormRepository{pool: pool}
}

func (r *pgContactFormRepository) Create(ctx context.Context, submission *ContactFormSubmission) error {
	query := `
		INSERT INTO contact_form_submissions
			(customer_name, phone_number, customer_address, latitude, longitude, product_id, package_price, submitted_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, submitted_at
	`
	return r.pool.QueryRow(ctx, query,
		submission.CustomerName, submission.PhoneNumber, submission.CustomerAddress,
		submission.Latitude, submission.Longitude, submission.ProductID,
		submission.PackagePrice, submission.SubmittedBy,
	).Scan(&submission.ID, &submission.SubmittedAt)
}

func (r *pgContactFormRepository) FindByID(ctx context.Context, id int64) (*ContactFormSubmission, error) {
	query := `
		SELECT id, customer_name, phone_number, customer_address, latitude, longitude,
		       product_id, package_price, submitted_by, submitted_at
		FROM contact_form_submissions WHERE id = $1
	`
	s := &ContactFormSubmission{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CustomerName, &s.PhoneNumber, &s.CustomerAddress,
		&s.Latitude, &s.Longitude, &s.ProductID, &s.PackagePrice,
		&s.SubmittedBy, &s.SubmittedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *pgContactFormRepository) FindAll(ctx context.Context) ([]*ContactFormSubmission, error) {
	query := `
		SELECT id, customer_name, phone_number, customer_address, latitude, longitude,
		       product_id, package_price, submitted_by, submitted_at
		FROM contact_form_submissions ORDER BY submitted_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []*ContactFormSubmission
	for rows.Next() {
		s := &ContactFormSubmission{}
		if err := rows.Scan(
			&s.ID, &s.CustomerName, &s.PhoneNumber, &s.CustomerAddress,
			&s.Latitude, &s.Longitude, &s.ProductID, &s.PackagePrice,
			&s.SubmittedBy, &s.SubmittedAt,
		); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}
