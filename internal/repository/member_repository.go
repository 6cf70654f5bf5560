package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Member struct {
	ID       string
	Email    string
	Password string
	Name     string
	Contact  string
	Role     string
	JoinDate time.Time

	// Registration fields
	SponsorID             *string
	NikKtp                *string
	FullName              *string
	PlaceOfBirth          *string
	DateOfBirth           *string
	CompleteAddress       *string
	Province              *string
	City                  *string
	Country               *string
	WhatsappNumber        *string
	DomicileAddress       *string
	SameAsKtp             *bool
	BankAccount           *string
	Sealed                bool
	SubscriptionsVerified bool

	ProfileCompletionStatus string
	ProfileCompletedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RefreshToken struct {
	ID        string
	Token     string
	MemberID  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	FindByID(ctx context.Context, id string) (*Member, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
	FindAll(ctx context.Context) ([]*Member, error)
	UpdateProfile(ctx context.Context, member *Member) error
	UpdateRole(ctx context.Context, memberID, role string) error
	SetSubscriptionsVerified(ctx context.Context, memberID string, verified bool) error
	Delete(ctx context.Context, memberID string) error
	SaveRefreshToken(ctx context.Context, token *RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
	DeleteMemberRefreshTokens(ctx context.Context, memberID string) error
	DeleteExpiredRefreshTokens(ctx context.Context) (int64, error)
}

type pgMemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &pgMemberRepository{pool: pool}
}

const memberColumns = `
	id, email, password, name, contact, role, join_date,
	sponsor_id, nik_ktp, full_name, place_of_birth, date_of_birth,
	complete_address, province, city, country, whatsapp_number,
	domicile_address, same_as_ktp, bank_account, sealed,
	subscriptions_verified, profile_completion_status,
	profile_completed_at, created_at, updated_at
`

func scanMember(row pgx.Row) (*Member, error) {
	m := &Member{}
	err := row.Scan(
		&m.ID, &m.Email, &m.Password, &m.Name, &m.Contact, &m.Role, &m.JoinDate,
		&m.SponsorID, &m.NikKtp, &m.FullName, &m.PlaceOfBirth, &m.DateOfBirth,
		&m.CompleteAddress, &m.Province, &m.City, &m.Country, &m.WhatsappNumber,
		&m.DomicileAddress, &m.SameAsKtp, &m.BankAccount, &m.Sealed,
		&m.SubscriptionsVerified, &m.ProfileCompletionStatus,
		&m.ProfileCompletedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *pgMemberRepository) Create(ctx context.Context, member *Member) error {
	query := `
		INSERT INTO members (
			email, password, name, contact, role,
			sponsor_id, nik_ktp, full_name, place_of_birth, date_of_birth,
			complete_address, province, city, country, whatsapp_number,
			domicile_address, same_as_ktp, bank_account, sealed,
			profile_completion_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id, join_date, created_at, updated_at
	`
	if member.Role == "" {
		member.Role = "user"
	}
	if member.ProfileCompletionStatus == "" {
		member.ProfileCompletionStatus = "incomplete"
	}
	return r.pool.QueryRow(ctx, query,
		member.Email, member.Password, member.Name, member.Contact, member.Role,
		member.SponsorID, member.NikKtp, member.FullName, member.PlaceOfBirth, member.DateOfBirth,
		member.CompleteAddress, member.Province, member.City, member.Country, member.WhatsappNumber,
		member.DomicileAddress, member.SameAsKtp, member.BankAccount, member.Sealed,
		member.ProfileCompletionStatus,
	).Scan(&member.ID, &member.JoinDate, &member.CreatedAt, &member.UpdatedAt)
}

func (r *pgMemberRepository) FindByID(ctx context.Context, id string) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	return scanMember(r.pool.QueryRow(ctx, query, id))
}

func (r *pgMemberRepository) FindByEmail(ctx context.Context, email string) (*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE LOWER(email) = LOWER($1)`
	return scanMember(r.pool.QueryRow(ctx, query, email))
}

func (r *pgMemberRepository) FindAll(ctx context.Context) ([]*Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY join_date`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(
			&m.ID, &m.Email, &m.Password, &m.Name, &m.Contact, &m.Role, &m.JoinDate,
			&m.SponsorID, &m.NikKtp, &m.FullName, &m.PlaceOfBirth, &m.DateOfBirth,
			&m.CompleteAddress, &m.Province, &m.City, &m.Country, &m.WhatsappNumber,
			&m.DomicileAddress, &m.SameAsKtp, &m.BankAccount, &m.Sealed,
			&m.SubscriptionsVerified, &m.ProfileCompletionStatus,
			&m.ProfileCompletedAt, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *pgMemberRepository) UpdateProfile(ctx context.Context, member *Member) error {
	query := `
		UPDATE members SET
			name = $2, contact = $3,
			sponsor_id = $4, nik_ktp = $5, full_name = $6, place_of_birth = $7,
			date_of_birth = $8, complete_address = $9, province = $10, city = $11,
			country = $12, whatsapp_number = $13, domicile_address = $14,
			same_as_ktp = $15, bank_account = $16, sealed = $17,
			profile_completion_status = $18, profile_completed_at = $19,
			updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		member.ID, member.Name, member.Contact,
		member.SponsorID, member.NikKtp, member.FullName, member.PlaceOfBirth,
		member.DateOfBirth, member.CompleteAddress, member.Province, member.City,
		member.Country, member.WhatsappNumber, member.DomicileAddress,
		member.SameAsKtp, member.BankAccount, member.Sealed,
		member.ProfileCompletionStatus, member.ProfileCompletedAt,
	)
	return err
}

func (r *pgMemberRepository) UpdateRole(ctx context.Context, memberID, role string) error {
	query := `UPDATE members SET role = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, memberID, role)
	return err
}

func (r *pgMemberRepository) SetSubscriptionsVerified(ctx context.Context, memberID string, verified bool) error {
	query := `UPDATE members SET subscriptions_verified = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, memberID, verified)
	return err
}

func (r *pgMemberRepository) Delete(ctx context.Context, memberID string) error {
	// Downlines, purchases and lead submissions keep their rows; every
	// edge pointing at the member is detached first so nothing references
	// a missing row.
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE members SET sponsor_id = NULL WHERE sponsor_id = $1`, memberID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE purchases SET referrer_id = NULL WHERE referrer_id = $1`, memberID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `UPDATE contact_form_submissions SET submitted_by = NULL WHERE submitted_by = $1`, memberID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM members WHERE id = $1`, memberID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *pgMemberRepository) SaveRefreshToken(ctx context.Context, token *RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (token, member_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query, token.Token, token.MemberID, token.ExpiresAt).
		Scan(&token.ID, &token.CreatedAt)
}

func (r *pgMemberRepository) FindRefreshToken(ctx context.Context, token string) (*RefreshToken, error) {
	query := `
		SELECT id, token, member_id, expires_at, created_at
		FROM refresh_tokens WHERE token = $1
	`
	rt := &RefreshToken{}
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&rt.ID, &rt.Token, &rt.MemberID, &rt.ExpiresAt, &rt.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *pgMemberRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	query := `DELETE FROM refresh_tokens WHERE token = $1`
	_, err := r.pool.Exec(ctx, query, token)
	return err
}

func (r *pgMemberRepository) DeleteMemberRefreshTokens(ctx context.Context, memberID string) error {
	query := `DELETE FROM refresh_tokens WHERE member_id = $1`
	_, err := r.pool.Exec(ctx, query, memberID)
	return err
}

func (r *pgMemberRepository) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	query := `DELETE FROM refresh_tokens WHERE expires_at < NOW()`
	tag, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
