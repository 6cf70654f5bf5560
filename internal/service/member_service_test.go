package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myrepublic-hub/network-hub-backend/internal/models"
	"github.com/myrepublic-hub/network-hub-backend/internal/repository"
	"github.com/myrepublic-hub/network-hub-backend/internal/types"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// completeProfileRequest fills every identity field required for a
// complete profile.
func completeProfileRequest() *models.UpdateProfileRequest {
	return &models.UpdateProfileRequest{
		NikKtp:          strPtr("3175093001900001"),
		FullName:        strPtr("Sari Wulandari"),
		PlaceOfBirth:    strPtr("Jakarta"),
		DateOfBirth:     strPtr("1990-01-30"),
		CompleteAddress: strPtr("Jl. Merdeka No. 1"),
		Province:        strPtr("DKI Jakarta"),
		City:            strPtr("Jakarta Selatan"),
		Country:         strPtr("Indonesia"),
		WhatsappNumber:  strPtr("+6281234567890"),
		SameAsKtp:       boolPtr(true),
		BankAccount:     strPtr("BCA 1234567890"),
	}
}

func TestProfileCompletionStatus(t *testing.T) {
	member := &repository.Member{}
	assert.Equal(t, types.ProfileIncomplete, profileCompletionStatus(member))

	applyIdentity(member, completeProfileRequest())
	assert.Equal(t, types.ProfileComplete, profileCompletionStatus(member))

	// Domicile is required when it differs from the KTP address.
	member.SameAsKtp = boolPtr(false)
	assert.Equal(t, types.ProfileIncomplete, profileCompletionStatus(member))

	member.DomicileAddress = strPtr("Jl. Sudirman No. 2")
	assert.Equal(t, types.ProfileComplete, profileCompletionStatus(member))
}

func TestSaveProfile_CompletionSealsProfile(t *testing.T) {
	memberRepo := newFakeMemberRepo()
	svc := NewMemberService(memberRepo, nil)

	sari := memberRepo.addMember("sari", "Sari", nil)

	updated, err := svc.SaveProfile(context.Background(), sari.ID, completeProfileRequest())
	require.NoError(t, err)

	assert.Equal(t, types.ProfileComplete, updated.ProfileCompletionStatus)
	assert.True(t, updated.Sealed)
	assert.NotNil(t, updated.ProfileCompletedAt)
}

func TestSaveProfile_SealedRejectsIdentityChanges(t *testing.T) {
	memberRepo := newFakeMemberRepo()
	svc := NewMemberService(memberRepo, nil)

	sari := memberRepo.addMember("sari", "Sari", nil)
	_, err := svc.SaveProfile(context.Background(), sari.ID, completeProfileRequest())
	require.NoError(t, err)

	_, err = svc.SaveProfile(context.Background(), sari.ID, &models.UpdateProfileRequest{
		NikKtp: strPtr("0000000000000000"),
	})
	assert.ErrorIs(t, err, ErrProfileSealed)

	// Display name and contact remain editable after sealing.
	updated, err := svc.SaveProfile(context.Background(), sari.ID, &models.UpdateProfileRequest{
		Name:    strPtr("Sari W."),
		Contact: strPtr("+6289999999999"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Sari W.", updated.Name)
}

func TestSaveProfile_PartialStaysIncomplete(t *testing.T) {
	memberRepo := newFakeMemberRepo()
	svc := NewMemberService(memberRepo, nil)

	sari := memberRepo.addMember("sari", "Sari", nil)

	updated, err := svc.SaveProfile(context.Background(), sari.ID, &models.UpdateProfileRequest{
		FullName: strPtr("Sari Wulandari"),
	})
	require.NoError(t, err)
	assert.Equal(t, types.ProfileIncomplete, updated.ProfileCompletionStatus)
	assert.False(t, updated.Sealed)
}

func TestProfileIncomplete_AdminsNeverFlagged(t *testing.T) {
	svc := NewMemberService(newFakeMemberRepo(), nil)

	admin := &repository.Member{Role: types.RoleAdmin, ProfileCompletionStatus: types.ProfileIncomplete}
	assert.False(t, svc.ProfileIncomplete(admin))

	user := &repository.Member{Role: types.RoleUser, ProfileCompletionStatus: types.ProfileIncomplete}
	assert.True(t, svc.ProfileIncomplete(user))

	complete := &repository.Member{Role: types.RoleUser, ProfileCompletionStatus: types.ProfileComplete}
	assert.False(t, svc.ProfileIncomplete(complete))
}

func TestUpdateRole(t *testing.T) {
	memberRepo := newFakeMemberRepo()
	svc := NewMemberService(memberRepo, nil)

	sari := memberRepo.addMember("sari", "Sari", nil)

	require.NoError(t, svc.UpdateRole(context.Background(), sari.ID, types.RoleAdmin))
	assert.Equal(t, types.RoleAdmin, memberRepo.members["sari"].Role)

	assert.ErrorIs(t, svc.UpdateRole(context.Background(), sari.ID, "superuser"), ErrInvalidInput)
	assert.ErrorIs(t, svc.UpdateRole(context.Background(), "nobody", types.RoleUser), ErrMemberNotFound)
}

func TestRemove_DeletesMemberAndTokens(t *testing.T) {
	memberRepo := newFakeMemberRepo()
	svc := NewMemberService(memberRepo, nil)

	sari := memberRepo.addMember("sari", "Sari", nil)
	memberRepo.tokens["tok"] = &repository.RefreshToken{Token: "tok", MemberID: sari.ID}

	require.NoError(t, svc.Remove(context.Background(), sari.ID))
	assert.Nil(t, memberRepo.members["sari"])
	assert.Empty(t, memberRepo.tokens)
}

func TestRemove_DetachesReferralHistory(t *testing.T) {
	memberRepo := newFakeMemberRepo()
	purchaseRepo := &fakePurchaseRepo{}
	contactRepo := &fakeContactFormRepo{}
	memberRepo.purchases = purchaseRepo
	memberRepo.contacts = contactRepo
	svc := NewMemberService(memberRepo, nil)

	sari := memberRepo.addMember("sari", "Sari", nil)
	memberRepo.addMember("budi", "Budi", &sari.ID)

	purchase := &repository.Purchase{
		BuyerName: "Pak Joko", Contact: "+6281234567890", Address: "Jl. Merdeka 1",
		ProductID: 1, ReferrerID: &sari.ID, Status: types.PurchaseCompleted,
	}
	require.NoError(t, purchaseRepo.Create(context.Background(), purchase))

	lead := &repository.ContactFormSubmission{
		CustomerName: "Bu Rina", PhoneNumber: "+6281111111111", CustomerAddress: "Jl. Asia Afrika 2",
		ProductID: 1, PackagePrice: 233_100, SubmittedBy: &sari.ID,
	}
	require.NoError(t, contactRepo.Create(context.Background(), lead))

	// Removing a member with referral history must succeed; the history
	// rows survive with their attribution detached.
	require.NoError(t, svc.Remove(context.Background(), sari.ID))

	assert.Nil(t, memberRepo.members["sari"])
	assert.Nil(t, memberRepo.members["budi"].SponsorID)
	assert.Nil(t, purchase.ReferrerID)
	assert.Nil(t, lead.SubmittedBy)
}
