package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Notification struct {
	ID        string
	MemberID  string
	Type      string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	FindByMember(ctx context.Context, memberID string) ([]*Notification, error)
	MarkRead(ctx context.Context, id, memberID string) error
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

type pgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &pgNotificationRepository{pool: pool}
}

func (r *pgNotificationRepository) Create(ctx context.Context, notification *Notification) error {
	query := `
		INSERT INTO notifications (member_id, type, title, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query,
		notification.MemberID, notification.Type, notification.Title, notification.Message,
	).Scan(&notification.ID, &notification.CreatedAt)
}

func (r *pgNotificationRepository) FindByMember(ctx context.Context, memberID string) ([]*Notification, error) {
	query := `
		SELECT id, member_id, type, title, message, read, created_at
		FROM notifications WHERE member_id = $1 ORDER BY created_at DESC LIMIT 100
	`
	rows, err := r.pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		n := &Notification{}
		if err := rows.Scan(&n.ID, &n.MemberID, &n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *pgNotificationRepository) MarkRead(ctx context.Context, id, memberID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE id = $1 AND member_id = $2`
	_, err := r.pool.Exec(ctx, query, id, memberID)
	return err
}

func (r *pgNotificationRepository) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	query := `DELETE FROM notifications WHERE read = TRUE AND created_at < $1`
	tag, err := r.pool.Exec(ctx, query, time.Now().Add(-age))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
