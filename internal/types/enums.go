package types

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
	RoleGuest = "guest"
)

// Withdrawal status values
const (
	WithdrawalPending  = "Pending"
	WithdrawalApproved = "Approved"
	WithdrawalRejected = "Rejected"
	WithdrawalPaid     = "Paid"
)

// Purchase status values
const (
	PurchasePending   = "Pending"
	PurchaseCompleted = "Completed"
	PurchaseCancelled = "Cancelled"
)

// Profile completion status values
const (
	ProfileIncomplete = "incomplete"
	ProfileComplete   = "complete"
)

// Leaderboard types
const (
	LeaderboardDownlineCount = "DownlineCount"
	LeaderboardSalesVolume   = "SalesVolume"
)

var ValidWithdrawalStatuses = []string{
	WithdrawalPending, WithdrawalApproved, WithdrawalRejected, WithdrawalPaid,
}

var ValidPurchaseStatuses = []string{
	PurchasePending, PurchaseCompleted, PurchaseCancelled,
}

var ValidRoles = []string{RoleAdmin, RoleUser, RoleGuest}

func IsValidWithdrawalStatus(status string) bool {
	for _, s := range ValidWithdrawalStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidPurchaseStatus(status string) bool {
	for _, s := range ValidPurchaseStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsValidLeaderboardType(t string) bool {
	return t == LeaderboardDownlineCount || t == LeaderboardSalesVolume
}

// Paid and Rejected admit no further transition.
func IsTerminalWithdrawalStatus(status string) bool {
	return status == WithdrawalPaid || status == WithdrawalRejected
}
