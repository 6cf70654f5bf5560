package service

import (
	"context"
	"fmt"
	"time"

	"github.com/myrepublic-hub/network-hub-backend/internal/email"
	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
	"github.com/myrepublic-hub/network-hub-backend/internal/types"
)

// ============================================
// Member Service
// ============================================

type MemberService interface {
	GetByID(ctx context.Context, id string) (*repository.Member, error)
	GetAll(ctx context.Context) ([]*repository.Member, error)
	SaveProfile(ctx context.Context, memberID string, req *models.UpdateProfileRequest) (*repository.Member, error)
	UpdateRole(ctx context.Context, memberID, role string) error
	SetSubscriptionsVerified(ctx context.Context, memberID string, verified bool) error
	Remove(ctx context.Context, memberID string) error
	// ProfileIncomplete reports whether the member still needs to finish
	// their registration data. Admins are never flagged.
	ProfileIncomplete(member *repository.Member) bool
	SendWelcomeEmail(ctx context.Context, member *repository.Member)
}

type memberService struct {
	memberRepo repository.MemberRepository
	emailSvc   *email.Service
}

func NewMemberService(memberRepo repository.MemberRepository, emailSvc *email.Service) MemberService {
	return &memberService{memberRepo: memberRepo, emailSvc: emailSvc}
}

func (s *memberService) GetByID(ctx context.Context, id string) (*repository.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

func (s *memberService) GetAll(ctx context.Context) ([]*repository.Member, error) {
	return s.memberRepo.FindAll(ctx)
}

func (s *memberService) SaveProfile(ctx context.Context, memberID string, req *models.UpdateProfileRequest) (*repository.Member, error) {
	member, err := s.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if member.Sealed && touchesIdentity(req) {
		return nil, ErrProfileSealed
	}

	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Contact != nil {
		member.Contact = *req.Contact
	}
	applyIdentity(member, req)

	wasComplete := member.ProfileCompletionStatus == types.ProfileComplete
	member.ProfileCompletionStatus = profileCompletionStatus(member)

	// The first transition to complete seals the identity data and
	// stamps the completion time.
	if !wasComplete && member.ProfileCompletionStatus == types.ProfileComplete {
		now := time.Now()
		member.ProfileCompletedAt = &now
		member.Sealed = true
	}

	if err := s.memberRepo.UpdateProfile(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return member, nil
}

func (s *memberService) UpdateRole(ctx context.Context, memberID, role string) error {
	if !types.IsValidRole(role) {
		return ErrInvalidInput
	}
	if _, err := s.GetByID(ctx, memberID); err != nil {
		return err
	}
	return s.memberRepo.UpdateRole(ctx, memberID, role)
}

func (s *memberService) SetSubscriptionsVerified(ctx context.Context, memberID string, verified bool) error {
	if _, err := s.GetByID(ctx, memberID); err != nil {
		return err
	}
	return s.memberRepo.SetSubscriptionsVerified(ctx, memberID, verified)
}

func (s *memberService) Remove(ctx context.Context, memberID string) error {
	if _, err := s.GetByID(ctx, memberID); err != nil {
		return err
	}
	if err := s.memberRepo.DeleteMemberRefreshTokens(ctx, memberID); err != nil {
		return err
	}
	return s.memberRepo.Delete(ctx, memberID)
}

func (s *memberService) ProfileIncomplete(member *repository.Member) bool {
	if member.Role == types.RoleAdmin {
		return false
	}
	return member.ProfileCompletionStatus != types.ProfileComplete
}

func (s *memberService) SendWelcomeEmail(ctx context.Context, member *repository.Member) {
	if s.emailSvc == nil {
		return
	}
	s.emailSvc.SendWelcome(member.Email, member.Name)
}

func touchesIdentity(req *models.UpdateProfileRequest) bool {
	return req.NikKtp != nil || req.FullName != nil || req.PlaceOfBirth != nil ||
		req.DateOfBirth != nil || req.CompleteAddress != nil || req.Province != nil ||
		req.City != nil || req.Country != nil || req.WhatsappNumber != nil ||
		req.DomicileAddress != nil || req.SameAsKtp != nil || req.BankAccount != nil
}

func applyIdentity(member *repository.Member, req *models.UpdateProfileRequest) {
	if req.NikKtp != nil {
		member.NikKtp = req.NikKtp
	}
	if req.FullName != nil {
		member.FullName = req.FullName
	}
	if req.PlaceOfBirth != nil {
		member.PlaceOfBirth = req.PlaceOfBirth
	}
	if req.DateOfBirth != nil {
		member.DateOfBirth = req.DateOfBirth
	}
	if req.CompleteAddress != nil {
		member.CompleteAddress = req.CompleteAddress
	}
	if req.Province != nil {
		member.Province = req.Province
	}
	if req.City != nil {
		member.City = req.City
	}
	if req.Country != nil {
		member.Country = req.Country
	}
	if req.WhatsappNumber != nil {
		member.WhatsappNumber = req.WhatsappNumber
	}
	if req.DomicileAddress != nil {
		member.DomicileAddress = req.DomicileAddress
	}
	if req.SameAsKtp != nil {
		member.SameAsKtp = req.SameAsKtp
	}
	if req.BankAccount != nil {
		member.BankAccount = req.BankAccount
	}
}

// profileCompletionStatus derives the completion status from the
// registration fields. Domicile address may be omitted only when the
// member declares it identical to the KTP address.
func profileCompletionStatus(member *repository.Member) string {
	required := []*string{
		member.NikKtp, member.FullName, member.PlaceOfBirth, member.DateOfBirth,
		member.CompleteAddress, member.Province, member.City, member.Country,
		member.WhatsappNumber, member.BankAccount,
	}
	for _, f := range required {
		if f == nil || *f == "" {
			return types.ProfileIncomplete
		}
	}
	sameAsKtp := member.SameAsKtp != nil && *member.SameAsKtp
	if !sameAsKtp && (member.DomicileAddress == nil || *member.DomicileAddress == "") {
		return types.ProfileIncomplete
	}
	return types.ProfileComplete
}
