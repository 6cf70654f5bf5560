package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
	"github.com/myrepublic-hub/network-hub-backend/internal/types"
)

// In-memory repository fakes shared by the service tests.

type fakeMemberRepo struct {
	members map[string]*repository.Member
	order   []string
	tokens  map[string]*repository.RefreshToken
	nextID  int

	// Optional linked stores so Delete can mirror the repository
	// contract of detaching every edge that points at the member.
	purchases *fakePurchaseRepo
	contacts  *fakeContactFormRepo
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{
		members: make(map[string]*repository.Member),
		tokens:  make(map[string]*repository.RefreshToken),
	}
}

func (r *fakeMemberRepo) Create(ctx context.Context, member *repository.Member) error {
	if member.ID == "" {
		r.nextID++
		member.ID = "member-" + strconv.Itoa(r.nextID)
	}
	if member.Role == "" {
		member.Role = types.RoleUser
	}
	if member.ProfileCompletionStatus == "" {
		member.ProfileCompletionStatus = types.ProfileIncomplete
	}
	member.JoinDate = time.Now()
	r.members[member.ID] = member
	r.order = append(r.order, member.ID)
	return nil
}

func (r *fakeMemberRepo) FindByID(ctx context.Context, id string) (*repository.Member, error) {
	return r.members[id], nil
}

func (r *fakeMemberRepo) FindByEmail(ctx context.Context, email string) (*repository.Member, error) {
	for _, m := range r.members {
		if strings.EqualFold(m.Email, email) {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) FindAll(ctx context.Context) ([]*repository.Member, error) {
	members := make([]*repository.Member, 0, len(r.order))
	for _, id := range r.order {
		if m, ok := r.members[id]; ok {
			members = append(members, m)
		}
	}
	return members, nil
}

func (r *fakeMemberRepo) UpdateProfile(ctx context.Context, member *repository.Member) error {
	r.members[member.ID] = member
	return nil
}

func (r *fakeMemberRepo) UpdateRole(ctx context.Context, memberID, role string) error {
	if m, ok := r.members[memberID]; ok {
		m.Role = role
	}
	return nil
}

func (r *fakeMemberRepo) SetSubscriptionsVerified(ctx context.Context, memberID string, verified bool) error {
	if m, ok := r.members[memberID]; ok {
		m.SubscriptionsVerified = verified
	}
	return nil
}

func (r *fakeMemberRepo) Delete(ctx context.Context, memberID string) error {
	for _, m := range r.members {
		if m.SponsorID != nil && *m.SponsorID == memberID {
			m.SponsorID = nil
		}
	}
	if r.purchases != nil {
		for _, p := range r.purchases.rows {
			if p.ReferrerID != nil && *p.ReferrerID == memberID {
				p.ReferrerID = nil
			}
		}
	}
	if r.contacts != nil {
		for _, s := range r.contacts.rows {
			if s.SubmittedBy != nil && *s.SubmittedBy == memberID {
				s.SubmittedBy = nil
			}
		}
	}
	delete(r.members, memberID)
	return nil
}

func (r *fakeMemberRepo) SaveRefreshToken(ctx context.Context, token *repository.RefreshToken) error {
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeMemberRepo) FindRefreshToken(ctx context.Context, token string) (*repository.RefreshToken, error) {
	return r.tokens[token], nil
}

func (r *fakeMemberRepo) DeleteRefreshToken(ctx context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeMemberRepo) DeleteMemberRefreshTokens(ctx context.Context, memberID string) error {
	for t, rt := range r.tokens {
		if rt.MemberID == memberID {
			delete(r.tokens, t)
		}
	}
	return nil
}

func (r *fakeMemberRepo) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	var count int64
	for t, rt := range r.tokens {
		if time.Now().After(rt.ExpiresAt) {
			delete(r.tokens, t)
			count++
		}
	}
	return count, nil
}

// addMember is a test helper that inserts a member with the given
// sponsor edge and returns it.
func (r *fakeMemberRepo) addMember(id, name string, sponsorID *string) *repository.Member {
	m := &repository.Member{
		ID:        id,
		Name:      name,
		Email:     id + "@example.id",
		Role:      types.RoleUser,
		SponsorID: sponsorID,
		JoinDate:  time.Now(),

		ProfileCompletionStatus: types.ProfileIncomplete,
	}
	r.members[id] = m
	r.order = append(r.order, id)
	return m
}

type fakeTransactionRepo struct {
	rows   []*repository.Transaction
	nextID int64
}

func (r *fakeTransactionRepo) CreateBatch(ctx context.Context, transactions []*repository.Transaction) error {
	for _, t := range transactions {
		if r.exists(t.PurchaseID, t.MemberID, t.Level) {
			continue
		}
		r.nextID++
		t.ID = r.nextID
		t.Date = time.Now()
		r.rows = append(r.rows, t)
	}
	return nil
}

func (r *fakeTransactionRepo) exists(purchaseID int64, memberID string, level int64) bool {
	for _, t := range r.rows {
		if t.PurchaseID == purchaseID && t.MemberID == memberID && t.Level == level {
			return true
		}
	}
	return false
}

func (r *fakeTransactionRepo) FindByMember(ctx context.Context, memberID string) ([]*repository.Transaction, error) {
	var out []*repository.Transaction
	for _, t := range r.rows {
		if t.MemberID == memberID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) ExistsForPurchase(ctx context.Context, purchaseID int64) (bool, error) {
	for _, t := range r.rows {
		if t.PurchaseID == purchaseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTransactionRepo) TotalEarnedByMember(ctx context.Context, memberID string) (int64, error) {
	var total int64
	for _, t := range r.rows {
		if t.MemberID == memberID {
			total += t.CommissionAmount + t.SponsorBonus
		}
	}
	return total, nil
}

type fakeWithdrawalRepo struct {
	rows    []*repository.Withdrawal
	nextID  int64
	balance map[string]int64
}

func newFakeWithdrawalRepo() *fakeWithdrawalRepo {
	return &fakeWithdrawalRepo{balance: make(map[string]int64)}
}

func (r *fakeWithdrawalRepo) CreateWithBalanceCheck(ctx context.Context, withdrawal *repository.Withdrawal) error {
	available := r.balance[withdrawal.MemberID]
	for _, w := range r.rows {
		if w.MemberID == withdrawal.MemberID && w.Status != types.WithdrawalRejected {
			available -= w.Amount
		}
	}
	if withdrawal.Amount > available {
		return repository.ErrInsufficientBalance
	}
	r.nextID++
	withdrawal.ID = r.nextID
	withdrawal.Status = types.WithdrawalPending
	withdrawal.RequestDate = time.Now()
	r.rows = append(r.rows, withdrawal)
	return nil
}

func (r *fakeWithdrawalRepo) FindByID(ctx context.Context, id int64) (*repository.Withdrawal, error) {
	for _, w := range r.rows {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, nil
}

func (r *fakeWithdrawalRepo) FindByMember(ctx context.Context, memberID string) ([]*repository.Withdrawal, error) {
	var out []*repository.Withdrawal
	for _, w := range r.rows {
		if w.MemberID == memberID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWithdrawalRepo) FindAll(ctx context.Context) ([]*repository.Withdrawal, error) {
	return r.rows, nil
}

func (r *fakeWithdrawalRepo) FindByStatus(ctx context.Context, status string) ([]*repository.Withdrawal, error) {
	var out []*repository.Withdrawal
	for _, w := range r.rows {
		if w.Status == status {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWithdrawalRepo) UpdateStatus(ctx context.Context, id int64, from, to string) error {
	for _, w := range r.rows {
		if w.ID == id && w.Status == from {
			w.Status = to
			now := time.Now()
			if to == types.WithdrawalPaid {
				w.PaidAt = &now
			} else {
				w.DecidedAt = &now
			}
			return nil
		}
	}
	return repository.ErrStatusConflict
}

func (r *fakeWithdrawalRepo) Summary(ctx context.Context, memberID string) (*repository.WithdrawalSummary, error) {
	summary := &repository.WithdrawalSummary{AvailableBalance: r.balance[memberID]}
	for _, w := range r.rows {
		if w.MemberID != memberID {
			continue
		}
		switch w.Status {
		case types.WithdrawalPending:
			summary.PendingWithdrawals += w.Amount
			summary.AvailableBalance -= w.Amount
		case types.WithdrawalApproved:
			summary.ApprovedWithdrawals += w.Amount
			summary.AvailableBalance -= w.Amount
		case types.WithdrawalRejected:
			summary.RejectedWithdrawals += w.Amount
		case types.WithdrawalPaid:
			summary.TotalWithdrawn += w.Amount
			summary.AvailableBalance -= w.Amount
		}
	}
	return summary, nil
}

type fakeProductRepo struct {
	products []*repository.Product
	nextID   int64
}

func (r *fakeProductRepo) Create(ctx context.Context, product *repository.Product) error {
	r.nextID++
	product.ID = r.nextID
	product.CreatedAt = time.Now()
	r.products = append(r.products, product)
	return nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id int64) (*repository.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) FindAll(ctx context.Context) ([]*repository.Product, error) {
	return r.products, nil
}

func (r *fakeProductRepo) Count(ctx context.Context) (int, error) {
	return len(r.products), nil
}

type fakePurchaseRepo struct {
	rows   []*repository.Purchase
	nextID int64
}

func (r *fakePurchaseRepo) Create(ctx context.Context, purchase *repository.Purchase) error {
	r.nextID++
	purchase.ID = r.nextID
	purchase.PurchaseDate = time.Now()
	r.rows = append(r.rows, purchase)
	return nil
}

func (r *fakePurchaseRepo) FindByID(ctx context.Context, id int64) (*repository.Purchase, error) {
	for _, p := range r.rows {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePurchaseRepo) FindAll(ctx context.Context) ([]*repository.Purchase, error) {
	return r.rows, nil
}

func (r *fakePurchaseRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	for _, p := range r.rows {
		if p.ID == id {
			p.Status = status
		}
	}
	return nil
}

func (r *fakePurchaseRepo) CancelStalePending(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	var count int64
	for _, p := range r.rows {
		if p.Status == types.PurchasePending && p.PurchaseDate.Before(cutoff) {
			p.Status = types.PurchaseCancelled
			count++
		}
	}
	return count, nil
}

type fakeContactFormRepo struct {
	rows   []*repository.ContactFormSubmission
	nextID int64
}

func (r *fakeContactFormRepo) Create(ctx context.Context, submission *repository.ContactFormSubmission) error {
	r.nextID++
	submission.ID = r.nextID
	submission.SubmittedAt = time.Now()
	r.rows = append(r.rows, submission)
	return nil
}

func (r *fakeContactFormRepo) FindByID(ctx context.Context, id int64) (*repository.ContactFormSubmission, error) {
	for _, s := range r.rows {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeContactFormRepo) FindAll(ctx context.Context) ([]*repository.ContactFormSubmission, error) {
	return r.rows, nil
}

type fakeAchievementRepo struct {
	achievements []*repository.Achievement
	sales        []*repository.SalesRecord
	nextID       int64
}

func (r *fakeAchievementRepo) Create(ctx context.Context, achievement *repository.Achievement) error {
	r.nextID++
	achievement.ID = r.nextID
	achievement.AchievedAt = time.Now()
	r.achievements = append(r.achievements, achievement)
	return nil
}

func (r *fakeAchievementRepo) FindByMember(ctx context.Context, memberID string) ([]*repository.Achievement, error) {
	var out []*repository.Achievement
	for _, a := range r.achievements {
		if a.MemberID == memberID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAchievementRepo) CreateSalesRecord(ctx context.Context, record *repository.SalesRecord) error {
	r.nextID++
	record.ID = r.nextID
	record.RecordedAt = time.Now()
	r.sales = append(r.sales, record)
	return nil
}

func (r *fakeAchievementRepo) SalesTotalsByMember(ctx context.Context) (map[string]int64, error) {
	totals := make(map[string]int64)
	for _, s := range r.sales {
		totals[s.MemberID] += s.Amount
	}
	return totals, nil
}

type fakeNotificationRepo struct {
	rows   []*repository.Notification
	nextID int
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *repository.Notification) error {
	r.nextID++
	notification.ID = "notif-" + strconv.Itoa(r.nextID)
	notification.CreatedAt = time.Now()
	r.rows = append(r.rows, notification)
	return nil
}

func (r *fakeNotificationRepo) FindByMember(ctx context.Context, memberID string) ([]*repository.Notification, error) {
	var out []*repository.Notification
	for _, n := range r.rows {
		if n.MemberID == memberID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, memberID string) error {
	for _, n := range r.rows {
		if n.ID == id && n.MemberID == memberID {
			n.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	kept := r.rows[:0]
	var count int64
	for _, n := range r.rows {
		if n.CreatedAt.Before(cutoff) {
			count++
			continue
		}
		kept = append(kept, n)
	}
	r.rows = kept
	return count, nil
}
