package service

import (
	"context"
	"fmt"

	"github.com/myrepublic-hub/network-hub-backend/internal/email"
	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/monitoring"
	"github.com/myrepublic-hub/network-hub-backend/internal/notification"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
	"github.com/myrepublic-hub/network-hub-backend/internal/socket"
	"github.com/myrepublic-hub/network-hub-backend/internal/types"
)

// ============================================
// Withdrawal Service
// ============================================

type WithdrawalService interface {
	Request(ctx context.Context, memberID string, req *models.CreateWithdrawalRequest) (*repository.Withdrawal, error)
	GetByID(ctx context.Context, id int64) (*repository.Withdrawal, error)
	GetByMember(ctx context.Context, memberID string) ([]*repository.Withdrawal, error)
	GetAll(ctx context.Context) ([]*repository.Withdrawal, error)
	GetByStatus(ctx context.Context, status string) ([]*repository.Withdrawal, error)
	Approve(ctx context.Context, id int64) (*repository.Withdrawal, error)
	Reject(ctx context.Context, id int64) (*repository.Withdrawal, error)
	MarkPaid(ctx context.Context, id int64) (*repository.Withdrawal, error)
	Summary(ctx context.Context, memberID string) (*repository.WithdrawalSummary, error)
}

type withdrawalService struct {
	withdrawalRepo repository.WithdrawalRepository
	memberRepo     repository.MemberRepository
	notifSvc       *notification.Service
	emailSvc       *email.Service
	broadcaster    *socket.Broadcaster
}

func NewWithdrawalService(
	withdrawalRepo repository.WithdrawalRepository,
	memberRepo repository.MemberRepository,
	notifSvc *notification.Service,
	emailSvc *email.Service,
	broadcaster *socket.Broadcaster,
) WithdrawalService {
	return &withdrawalService{
		withdrawalRepo: withdrawalRepo,
		memberRepo:     memberRepo,
		notifSvc:       notifSvc,
		emailSvc:       emailSvc,
		broadcaster:    broadcaster,
	}
}

func (s *withdrawalService) Request(ctx context.Context, memberID string, req *models.CreateWithdrawalRequest) (*repository.Withdrawal, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	withdrawal := &repository.Withdrawal{
		MemberID:    memberID,
		Amount:      req.Amount,
		BankAccount: req.BankAccount,
	}
	if err := s.withdrawalRepo.CreateWithBalanceCheck(ctx, withdrawal); err != nil {
		if err == repository.ErrInsufficientBalance {
			return nil, ErrInsufficientBalance
		}
		return nil, fmt.Errorf("failed to create withdrawal: %w", err)
	}
	return withdrawal, nil
}

func (s *withdrawalService) GetByID(ctx context.Context, id int64) (*repository.Withdrawal, error) {
	withdrawal, err := s.withdrawalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if withdrawal == nil {
		return nil, ErrNotFound
	}
	return withdrawal, nil
}

func (s *withdrawalService) GetByMember(ctx context.Context, memberID string) ([]*repository.Withdrawal, error) {
	return s.withdrawalRepo.FindByMember(ctx, memberID)
}

func (s *withdrawalService) GetAll(ctx context.Context) ([]*repository.Withdrawal, error) {
	return s.withdrawalRepo.FindAll(ctx)
}

func (s *withdrawalService) GetByStatus(ctx context.Context, status string) ([]*repository.Withdrawal, error) {
	if !types.IsValidWithdrawalStatus(status) {
		return nil, ErrInvalidInput
	}
	return s.withdrawalRepo.FindByStatus(ctx, status)
}

func (s *withdrawalService) Approve(ctx context.Context, id int64) (*repository.Withdrawal, error) {
	return s.transition(ctx, id, types.WithdrawalApproved)
}

func (s *withdrawalService) Reject(ctx context.Context, id int64) (*repository.Withdrawal, error) {
	return s.transition(ctx, id, types.WithdrawalRejected)
}

func (s *withdrawalService) MarkPaid(ctx context.Context, id int64) (*repository.Withdrawal, error) {
	return s.transition(ctx, id, types.WithdrawalPaid)
}

func (s *withdrawalService) Summary(ctx context.Context, memberID string) (*repository.WithdrawalSummary, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return s.withdrawalRepo.Summary(ctx, memberID)
}

// ValidWithdrawalTransition encodes the withdrawal state machine:
// Pending may be decided, Approved may be paid, and the terminal
// states admit nothing.
func ValidWithdrawalTransition(from, to string) bool {
	switch from {
	case types.WithdrawalPending:
		return to == types.WithdrawalApproved || to == types.WithdrawalRejected
	case types.WithdrawalApproved:
		return to == types.WithdrawalPaid
	default:
		return false
	}
}

func (s *withdrawalService) transition(ctx context.Context, id int64, to string) (*repository.Withdrawal, error) {
	withdrawal, err := s.withdrawalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if withdrawal == nil {
		return nil, ErrNotFound
	}

	if !ValidWithdrawalTransition(withdrawal.Status, to) {
		return nil, ErrInvalidTransition
	}

	// The guarded update keeps the state machine atomic: if another
	// decision landed after our read, zero rows match and nothing is
	// overwritten.
	if err := s.withdrawalRepo.UpdateStatus(ctx, id, withdrawal.Status, to); err != nil {
		if err == repository.ErrStatusConflict {
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to update withdrawal status: %w", err)
	}
	monitoring.WithdrawalDecisionsTotal.WithLabelValues(to).Inc()

	updated, err := s.withdrawalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifyDecision(ctx, updated)
	return updated, nil
}

func (s *withdrawalService) notifyDecision(ctx context.Context, withdrawal *repository.Withdrawal) {
	var title, message string
	switch withdrawal.Status {
	case types.WithdrawalApproved:
		title = "Penarikan Disetujui"
		message = fmt.Sprintf("Permintaan penarikan Rp%d Anda telah disetujui.", withdrawal.Amount)
	case types.WithdrawalRejected:
		title = "Penarikan Ditolak"
		message = fmt.Sprintf("Permintaan penarikan Rp%d Anda ditolak. Saldo telah dikembalikan.", withdrawal.Amount)
	case types.WithdrawalPaid:
		title = "Penarikan Dibayar"
		message = fmt.Sprintf("Penarikan Rp%d Anda telah ditransfer ke rekening %s.", withdrawal.Amount, withdrawal.BankAccount)
	default:
		return
	}

	if s.notifSvc != nil {
		s.notifSvc.Notify(ctx, withdrawal.MemberID, "withdrawal", title, message)
	}
	if s.broadcaster != nil {
		s.broadcaster.SendWithdrawalUpdated(withdrawal.MemberID, fmt.Sprintf("%d", withdrawal.ID), withdrawal.Status)
	}
	if s.emailSvc != nil {
		if member, err := s.memberRepo.FindByID(ctx, withdrawal.MemberID); err == nil && member != nil {
			s.emailSvc.SendWithdrawalUpdate(member.Email, member.Name, withdrawal.Amount, withdrawal.Status)
		}
	}
}
