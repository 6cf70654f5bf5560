package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidWithdrawalStatus(t *testing.T) {
	for _, s := range ValidWithdrawalStatuses {
		assert.True(t, IsValidWithdrawalStatus(s))
	}
	assert.False(t, IsValidWithdrawalStatus("pending"), "status values are case sensitive")
	assert.False(t, IsValidWithdrawalStatus("Frozen"))
}

func TestIsValidPurchaseStatus(t *testing.T) {
	for _, s := range ValidPurchaseStatuses {
		assert.True(t, IsValidPurchaseStatus(s))
	}
	assert.False(t, IsValidPurchaseStatus("Shipped"))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleAdmin))
	assert.True(t, IsValidRole(RoleUser))
	assert.True(t, IsValidRole(RoleGuest))
	assert.False(t, IsValidRole("superuser"))
}

func TestIsTerminalWithdrawalStatus(t *testing.T) {
	assert.True(t, IsTerminalWithdrawalStatus(WithdrawalPaid))
	assert.True(t, IsTerminalWithdrawalStatus(WithdrawalRejected))
	assert.False(t, IsTerminalWithdrawalStatus(WithdrawalPending))
	assert.False(t, IsTerminalWithdrawalStatus(WithdrawalApproved))
}
