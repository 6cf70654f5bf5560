package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/myrepublic-hub/network-hub-backend/internal/config"
	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/types"
)

func newAuthFixture() (*fakeMemberRepo, AuthService) {
	memberRepo := newFakeMemberRepo()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: 24, RefreshExpiry: 7}
	return memberRepo, NewAuthService(cfg, memberRepo)
}

func TestRegister_CreatesMemberWithTokens(t *testing.T) {
	memberRepo, svc := newAuthFixture()

	member, access, refresh, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Sari Wulandari",
		Email:    "sari@example.id",
		Password: "rahasia-123",
		Contact:  "+6281234567890",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, member.ID)
	assert.Equal(t, types.RoleUser, member.Role)
	assert.Equal(t, types.ProfileIncomplete, member.ProfileCompletionStatus)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	// Password is stored hashed.
	stored, _ := memberRepo.FindByEmail(context.Background(), "sari@example.id")
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("rahasia-123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, svc := newAuthFixture()

	req := &models.RegisterRequest{
		Name: "Sari", Email: "sari@example.id", Password: "rahasia-123", Contact: "0812",
	}
	_, _, _, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, _, _, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrMemberExists)
}

func TestRegister_SponsorMustExist(t *testing.T) {
	_, svc := newAuthFixture()

	sponsorID := "ghost"
	_, _, _, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Budi", Email: "budi@example.id", Password: "rahasia-123", Contact: "0813",
		SponsorID: &sponsorID,
	})
	assert.ErrorIs(t, err, ErrSponsorNotFound)
}

func TestRegister_SponsorMustBeVerified(t *testing.T) {
	memberRepo, svc := newAuthFixture()

	sponsor := memberRepo.addMember("sari", "Sari", nil)

	_, _, _, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Budi", Email: "budi@example.id", Password: "rahasia-123", Contact: "0813",
		SponsorID: &sponsor.ID,
	})
	assert.ErrorIs(t, err, ErrSponsorNotVerified)

	sponsor.SubscriptionsVerified = true

	member, _, _, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Budi", Email: "budi@example.id", Password: "rahasia-123", Contact: "0813",
		SponsorID: &sponsor.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, member.SponsorID)
	assert.Equal(t, "sari", *member.SponsorID)
}

func TestRegister_EmptySponsorIDIgnored(t *testing.T) {
	_, svc := newAuthFixture()

	empty := ""
	member, _, _, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Budi", Email: "budi@example.id", Password: "rahasia-123", Contact: "0813",
		SponsorID: &empty,
	})
	require.NoError(t, err)
	assert.Nil(t, member.SponsorID)
}

func TestLogin(t *testing.T) {
	_, svc := newAuthFixture()

	_, _, _, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Sari", Email: "sari@example.id", Password: "rahasia-123", Contact: "0812",
	})
	require.NoError(t, err)

	member, access, _, err := svc.Login(context.Background(), "sari@example.id", "rahasia-123")
	require.NoError(t, err)
	assert.Equal(t, "Sari", member.Name)
	assert.NotEmpty(t, access)

	_, _, _, err = svc.Login(context.Background(), "sari@example.id", "salah")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = svc.Login(context.Background(), "nobody@example.id", "rahasia-123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	_, svc := newAuthFixture()

	member, access, _, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Sari", Email: "sari@example.id", Password: "rahasia-123", Contact: "0812",
	})
	require.NoError(t, err)

	token, err := svc.ValidateToken(access)
	require.NoError(t, err)

	memberID, err := svc.GetMemberIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, member.ID, memberID)
}

func TestRefreshToken_RotatesAndInvalidatesOld(t *testing.T) {
	_, svc := newAuthFixture()

	_, _, refresh, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Sari", Email: "sari@example.id", Password: "rahasia-123", Contact: "0812",
	})
	require.NoError(t, err)

	access, newRefresh, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEqual(t, refresh, newRefresh)

	// The consumed token must not work twice.
	_, _, err = svc.RefreshToken(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_DeletesRefreshToken(t *testing.T) {
	memberRepo, svc := newAuthFixture()

	_, _, refresh, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Sari", Email: "sari@example.id", Password: "rahasia-123", Contact: "0812",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), refresh))
	rt, _ := memberRepo.FindRefreshToken(context.Background(), refresh)
	assert.Nil(t, rt)
}
