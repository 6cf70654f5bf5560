package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Withdrawal struct {
	ID          int64
	MemberID    string
	Amount      int64
	BankAccount string
	Status      string
	RequestDate time.Time
	DecidedAt   *time.Time
	PaidAt      *time.Time
}

// WithdrawalSummary is the authoritative balance view for one member.
type WithdrawalSummary struct {
	AvailableBalance    int64
	PendingWithdrawals  int64
	ApprovedWithdrawals int64
	RejectedWithdrawals int64
	TotalWithdrawn      int64
}

var (
	ErrInsufficientBalance = errors.New("withdrawal amount exceeds available balance")
	ErrStatusConflict      = errors.New("withdrawal status changed concurrently")
)

type WithdrawalRepository interface {
	// CreateWithBalanceCheck inserts a Pending request only if the amount
	// fits the member's available balance, serializing concurrent requests
	// on the member row.
	CreateWithBalanceCheck(ctx context.Context, withdrawal *Withdrawal) error
	FindByID(ctx context.Context, id int64) (*Withdrawal, error)
	FindByMember(ctx context.Context, memberID string) ([]*Withdrawal, error)
	FindAll(ctx context.Context) ([]*Withdrawal, error)
	FindByStatus(ctx context.Context, status string) ([]*Withdrawal, error)
	// UpdateStatus moves a withdrawal from one status to another. It
	// returns ErrStatusConflict when the row no longer holds the expected
	// status, so concurrent decisions cannot overwrite each other.
	UpdateStatus(ctx context.Context, id int64, from, to string) error
	Summary(ctx context.Context, memberID string) (*WithdrawalSummary, error)
}

type pgWithdrawalRepository struct {
	pool *pgxpool.Pool
}

func NewWithdrawalRepository(pool *pgxpool.Pool) WithdrawalRepository {
	return &pgWithdrawalRepository{pool: pool}
}

const withdrawalColumns = `id, member_id, amount, bank_account, status, request_date, decided_at, paid_at`

func (r *pgWithdrawalRepository) CreateWithBalanceCheck(ctx context.Context, withdrawal *Withdrawal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Lock the member row so two concurrent requests cannot both read the
	// same balance and overdraw it.
	var memberID string
	if err := tx.QueryRow(ctx,
		`SELECT id FROM members WHERE id = $1 FOR UPDATE`, withdrawal.MemberID,
	).Scan(&memberID); err != nil {
		return err
	}

	available, err := availableBalance(ctx, tx, withdrawal.MemberID)
	if err != nil {
		return err
	}
	if withdrawal.Amount > available {
		return ErrInsufficientBalance
	}

	if err := tx.QueryRow(ctx, `
		INSERT INTO withdrawals (member_id, amount, bank_account, status)
		VALUES ($1, $2, $3, 'Pending')
		RETURNING id, status, request_date
	`, withdrawal.MemberID, withdrawal.Amount, withdrawal.BankAccount,
	).Scan(&withdrawal.ID, &withdrawal.Status, &withdrawal.RequestDate); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func availableBalance(ctx context.Context, tx pgx.Tx, memberID string) (int64, error) {
	var earned, held int64
	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(commission_amount + sponsor_bonus), 0) FROM transactions WHERE member_id = $1`,
		memberID,
	).Scan(&earned); err != nil {
		return 0, err
	}
	// Pending, Approved and Paid all hold funds; only Rejected releases them.
	if err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM withdrawals WHERE member_id = $1 AND status != 'Rejected'`,
		memberID,
	).Scan(&held); err != nil {
		return 0, err
	}
	return earned - held, nil
}

func (r *pgWithdrawalRepository) FindByID(ctx context.Context, id int64) (*Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id = $1`
	w := &Withdrawal{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.MemberID, &w.Amount, &w.BankAccount, &w.Status,
		&w.RequestDate, &w.DecidedAt, &w.PaidAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *pgWithdrawalRepository) FindByMember(ctx context.Context, memberID string) ([]*Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE member_id = $1 ORDER BY request_date DESC`
	return r.queryWithdrawals(ctx, query, memberID)
}

func (r *pgWithdrawalRepository) FindAll(ctx context.Context) ([]*Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals ORDER BY request_date DESC`
	return r.queryWithdrawals(ctx, query)
}

func (r *pgWithdrawalRepository) FindByStatus(ctx context.Context, status string) ([]*Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE status = $1 ORDER BY request_date DESC`
	return r.queryWithdrawals(ctx, query, status)
}

func (r *pgWithdrawalRepository) queryWithdrawals(ctx context.Context, query string, args ...interface{}) ([]*Withdrawal, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var withdrawals []*Withdrawal
	for rows.Next() {
		w := &Withdrawal{}
		if err := rows.Scan(
			&w.ID, &w.MemberID, &w.Amount, &w.BankAccount, &w.Status,
			&w.RequestDate, &w.DecidedAt, &w.PaidAt,
		); err != nil {
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, rows.Err()
}

func (r *pgWithdrawalRepository) UpdateStatus(ctx context.Context, id int64, from, to string) error {
	query := `
		UPDATE withdrawals SET
			status = $3,
			decided_at = CASE WHEN $3 IN ('Approved', 'Rejected') THEN NOW() ELSE decided_at END,
			paid_at = CASE WHEN $3 = 'Paid' THEN NOW() ELSE paid_at END
		WHERE id = $1 AND status = $2
	`
	tag, err := r.pool.Exec(ctx, query, id, from, to)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (r *pgWithdrawalRepository) Summary(ctx context.Context, memberID string) (*WithdrawalSummary, error) {
	var earned int64
	if err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(commission_amount + sponsor_bonus), 0) FROM transactions WHERE member_id = $1`,
		memberID,
	).Scan(&earned); err != nil {
		return nil, err
	}

	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE status = 'Pending'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'Approved'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'Rejected'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'Paid'), 0)
		FROM withdrawals WHERE member_id = $1
	`
	s := &WithdrawalSummary{}
	if err := r.pool.QueryRow(ctx, query, memberID).Scan(
		&s.PendingWithdrawals, &s.ApprovedWithdrawals, &s.RejectedWithdrawals, &s.TotalWithdrawn,
	); err != nil {
		return nil, err
	}

	s.AvailableBalance = earned - s.PendingWithdrawals - s.ApprovedWithdrawals - s.TotalWithdrawn
	if s.AvailableBalance < 0 {
		s.AvailableBalance = 0
	}
	return s, nil
}
