package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/myrepublic-hub/network-hub-backend/internal/config"
	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
)

// ============================================
// Auth Service
// ============================================

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*repository.Member, string, string, error)
	Login(ctx context.Context, email, password string) (*repository.Member, string, string, error)
	RefreshToken(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateToken(token string) (*jwt.Token, error)
	GetMemberIDFromToken(token *jwt.Token) (string, error)
}

type authService struct {
	cfg        *config.Config
	memberRepo repository.MemberRepository
}

func NewAuthService(cfg *config.Config, memberRepo repository.MemberRepository) AuthService {
	return &authService{cfg: cfg, memberRepo: memberRepo}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*repository.Member, string, string, error) {
	existing, _ := s.memberRepo.FindByEmail(ctx, req.Email)
	if existing != nil {
		return nil, "", "", ErrMemberExists
	}

	// A sponsor referral only counts when the sponsor's own subscription
	// has been verified through a completed purchase.
	if req.SponsorID != nil && *req.SponsorID != "" {
		sponsor, err := s.memberRepo.FindByID(ctx, *req.SponsorID)
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to look up sponsor: %w", err)
		}
		if sponsor == nil {
			return nil, "", "", ErrSponsorNotFound
		}
		if !sponsor.SubscriptionsVerified {
			return nil, "", "", ErrSponsorNotVerified
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	member := &repository.Member{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Contact:  req.Contact,
		Role:     "user",

		SponsorID:       normalizeOptional(req.SponsorID),
		NikKtp:          req.NikKtp,
		FullName:        req.FullName,
		PlaceOfBirth:    req.PlaceOfBirth,
		DateOfBirth:     req.DateOfBirth,
		CompleteAddress: req.CompleteAddress,
		Province:        req.Province,
		City:            req.City,
		Country:         req.Country,
		WhatsappNumber:  req.WhatsappNumber,
		DomicileAddress: req.DomicileAddress,
		SameAsKtp:       req.SameAsKtp,
		BankAccount:     req.BankAccount,
	}
	member.ProfileCompletionStatus = profileCompletionStatus(member)

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, "", "", fmt.Errorf("failed to create member: %w", err)
	}

	accessToken, refreshToken, err := s.generateTokens(ctx, member.ID)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	return member, accessToken, refreshToken, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*repository.Member, string, string, error) {
	member, err := s.memberRepo.FindByEmail(ctx, email)
	if err != nil || member == nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.generateTokens(ctx, member.ID)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	return member, accessToken, refreshToken, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	rt, err := s.memberRepo.FindRefreshToken(ctx, refreshToken)
	if err != nil || rt == nil {
		return "", "", ErrInvalidToken
	}

	if time.Now().After(rt.ExpiresAt) {
		s.memberRepo.DeleteRefreshToken(ctx, refreshToken)
		return "", "", ErrInvalidToken
	}

	s.memberRepo.DeleteRefreshToken(ctx, refreshToken)

	accessToken, newRefreshToken, err := s.generateTokens(ctx, rt.MemberID)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	return accessToken, newRefreshToken, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	return s.memberRepo.DeleteRefreshToken(ctx, refreshToken)
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (s *authService) GetMemberIDFromToken(token *jwt.Token) (string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	memberID, ok := claims["sub"].(string)
	if !ok {
		return "", ErrInvalidToken
	}
	return memberID, nil
}

func (s *authService) generateTokens(ctx context.Context, memberID string) (string, string, error) {
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": memberID,
		"exp": time.Now().Add(time.Hour * time.Duration(s.cfg.JWTExpiry)).Unix(),
		"iat": time.Now().Unix(),
	})

	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", err
	}

	refreshTokenString := uuid.New().String()
	refreshTokenExpiry := time.Now().Add(time.Hour * 24 * time.Duration(s.cfg.RefreshExpiry))

	rt := &repository.RefreshToken{
		Token:     refreshTokenString,
		MemberID:  memberID,
		ExpiresAt: refreshTokenExpiry,
	}

	if err := s.memberRepo.SaveRefreshToken(ctx, rt); err != nil {
		return "", "", err
	}

	return accessTokenString, refreshTokenString, nil
}

func normalizeOptional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
