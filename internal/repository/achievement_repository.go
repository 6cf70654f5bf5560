package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Achievement struct {
	ID          int64
	MemberID    string
	Description string
	AchievedAt  time.Time
}

type SalesRecord struct {
	ID         int64
	MemberID   string
	ProductID  int64
	Quantity   int64
	Amount     int64
	RecordedAt time.Time
}

type AchievementRepository interface {
	Create(ctx context.Context, achievement *Achievement) error
	FindByMember(ctx context.Context, memberID string) ([]*Achievement, error)
	CreateSalesRecord(ctx context.Context, record *SalesRecord) error
	SalesTotalsByMember(ctx context.Context) (map[string]int64, error)
}

type pgAchievementRepository struct {
	pool *pgxpool.Pool
}

func NewAchievementRepository(pool *pgxpool.Pool) AchievementRepository {
	return &pgAchievementRepository{pool: pool}
}

func (r *pgAchievementRepository) Create(ctx context.Context, achievement *Achievement) error {
	query := `
		INSERT INTO achievements (member_id, description)
		VALUES ($1, $2)
		RETURNING id, achieved_at
	`
	return r.pool.QueryRow(ctx, query, achievement.MemberID, achievement.Description).
		Scan(&achievement.ID, &achievement.AchievedAt)
}

func (r *pgAchievementRepository) FindByMember(ctx context.Context, memberID string) ([]*Achievement, error) {
	query := `
		SELECT id, member_id, description, achieved_at
		FROM achievements WHERE member_id = $1 ORDER BY achieved_at DESC
	`
	rows, err := r.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []*Achievement
	for rows.Next() {
		a := &Achievement{}
		if err := rows.Scan(&a.ID, &a.MemberID, &a.Description, &a.AchievedAt); err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

func (r *pgAchievementRepository) CreateSalesRecord(ctx context.Context, record *SalesRecord) error {
	query := `
		INSERT INTO sales_records (member_id, product_id, quantity, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, recorded_at
	`
	return r.pool.QueryRow(ctx, query,
		record.MemberID, record.ProductID, record.Quantity, record.Amount,
	).Scan(&record.ID, &record.RecordedAt)
}

func (r *pgAchievementRepository) SalesTotalsByMember(ctx context.Context) (map[string]int64, error) {
	query := `SELECT member_id, COALESCE(SUM(amount), 0) FROM sales_records GROUP BY member_id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var memberID string
		var total int64
		if err := rows.Scan(&memberID, &total); err != nil {
			return nil, err
		}
		totals[memberID] = total
	}
	return totals, rows.Err()
}
