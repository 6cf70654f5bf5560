package models

import "time"

// ============================================
// Auth DTOs
// ============================================

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Contact  string `json:"contact" binding:"required"`

	SponsorID       *string `json:"sponsorId,omitempty"`
	NikKtp          *string `json:"nikKtp,omitempty"`
	FullName        *string `json:"fullName,omitempty"`
	PlaceOfBirth    *string `json:"placeOfBirth,omitempty"`
	DateOfBirth     *string `json:"dateOfBirth,omitempty"`
	CompleteAddress *string `json:"completeAddress,omitempty"`
	Province        *string `json:"province,omitempty"`
	City            *string `json:"city,omitempty"`
	Country         *string `json:"country,omitempty"`
	WhatsappNumber  *string `json:"whatsappNumber,omitempty"`
	DomicileAddress *string `json:"domicileAddress,omitempty"`
	SameAsKtp       *bool   `json:"sameAsKtp,omitempty"`
	BankAccount     *string `json:"bankAccount,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type AuthResponse struct {
	Member       MemberResponse `json:"member"`
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
}

// ============================================
// Member DTOs
// ============================================

type MemberResponse struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Contact  string    `json:"contact"`
	Role     string    `json:"role"`
	JoinDate time.Time `json:"joinDate"`

	SponsorID       *string `json:"sponsorId,omitempty"`
	NikKtp          *string `json:"nikKtp,omitempty"`
	FullName        *string `json:"fullName,omitempty"`
	PlaceOfBirth    *string `json:"placeOfBirth,omitempty"`
	DateOfBirth     *string `json:"dateOfBirth,omitempty"`
	CompleteAddress *string `json:"completeAddress,omitempty"`
	Province        *string `json:"province,omitempty"`
	City            *string `json:"city,omitempty"`
	Country         *string `json:"country,omitempty"`
	WhatsappNumber  *string `json:"whatsappNumber,omitempty"`
	DomicileAddress *string `json:"domicileAddress,omitempty"`
	SameAsKtp       *bool   `json:"sameAsKtp,omitempty"`
	BankAccount     *string `json:"bankAccount,omitempty"`

	Sealed                  bool       `json:"sealed"`
	SubscriptionsVerified   bool       `json:"subscriptionsVerified"`
	ProfileCompletionStatus string     `json:"profileCompletionStatus"`
	ProfileCompletedAt      *time.Time `json:"profileCompletedAt,omitempty"`
	ProfileIncomplete       bool       `json:"profileIncomplete"`
}

type UpdateProfileRequest struct {
	Name    *string `json:"name,omitempty"`
	Contact *string `json:"contact,omitempty"`

	NikKtp          *string `json:"nikKtp,omitempty"`
	FullName        *string `json:"fullName,omitempty"`
	PlaceOfBirth    *string `json:"placeOfBirth,omitempty"`
	DateOfBirth     *string `json:"dateOfBirth,omitempty"`
	CompleteAddress *string `json:"completeAddress,omitempty"`
	Province        *string `json:"province,omitempty"`
	City            *string `json:"city,omitempty"`
	Country         *string `json:"country,omitempty"`
	WhatsappNumber  *string `json:"whatsappNumber,omitempty"`
	DomicileAddress *string `json:"domicileAddress,omitempty"`
	SameAsKtp       *bool   `json:"sameAsKtp,omitempty"`
	BankAccount     *string `json:"bankAccount,omitempty"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin user guest"`
}

// ============================================
// Network DTOs
// ============================================

type FamilyTreeNode struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	JoinDate time.Time         `json:"joinDate"`
	Level    int               `json:"level"`
	Children []*FamilyTreeNode `json:"children"`
}

type NetworkStatsResponse struct {
	MemberID        string `json:"memberId"`
	DirectDownlines int    `json:"directDownlines"`
	TotalDownlines  int    `json:"totalDownlines"`
	NetworkDepth    int    `json:"networkDepth"`
}

// ============================================
// Product DTOs
// ============================================

type CreateProductRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description" binding:"required"`
	Explanation    string `json:"explanation"`
	Price          int64  `json:"price" binding:"required,gt=0"`
	CommissionRate int64  `json:"commissionRate" binding:"gte=0,lte=100"`
}

type ProductResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Explanation    string    `json:"explanation"`
	Price          int64     `json:"price"`
	CommissionRate int64     `json:"commissionRate"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ============================================
// Purchase DTOs
// ============================================

type CreatePurchaseRequest struct {
	BuyerName  string  `json:"buyerName" binding:"required"`
	Contact    string  `json:"contact" binding:"required"`
	Address    string  `json:"address" binding:"required"`
	ProductID  int64   `json:"productId" binding:"required"`
	ReferrerID *string `json:"referrerId,omitempty"`
}

type UpdatePurchaseStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Completed Cancelled"`
}

type PurchaseResponse struct {
	ID           int64     `json:"id"`
	BuyerName    string    `json:"buyerName"`
	Contact      string    `json:"contact"`
	Address      string    `json:"address"`
	ProductID    int64     `json:"productId"`
	ReferrerID   *string   `json:"referrerId,omitempty"`
	Status       string    `json:"status"`
	PurchaseDate time.Time `json:"purchaseDate"`
}

// ============================================
// Transaction DTOs
// ============================================

type TransactionResponse struct {
	ID               int64     `json:"id"`
	PurchaseID       int64     `json:"purchaseId"`
	MemberID         string    `json:"memberId"`
	Level            int64     `json:"level"`
	CommissionAmount int64     `json:"commissionAmount"`
	SponsorBonus     int64     `json:"sponsorBonus"`
	ProductPrice     int64     `json:"productPrice"`
	Date             time.Time `json:"date"`
}

// TransactionListResponse carries the ledger rows plus the server-side
// aggregates so clients never sum money themselves.
type TransactionListResponse struct {
	Transactions       []TransactionResponse `json:"transactions"`
	TotalCommission    int64                 `json:"totalCommission"`
	TotalSponsorBonus  int64                 `json:"totalSponsorBonus"`
	TotalEarned        int64                 `json:"totalEarned"`
}

// ============================================
// Withdrawal DTOs
// ============================================

type CreateWithdrawalRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	BankAccount string `json:"bankAccount" binding:"required"`
}

type UpdateWithdrawalStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Approved Rejected Paid"`
}

type WithdrawalResponse struct {
	ID          int64      `json:"id"`
	MemberID    string     `json:"memberId"`
	Amount      int64      `json:"amount"`
	BankAccount string     `json:"bankAccount"`
	Status      string     `json:"status"`
	RequestDate time.Time  `json:"requestDate"`
	DecidedAt   *time.Time `json:"decidedAt,omitempty"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
}

type WithdrawalSummaryResponse struct {
	AvailableBalance    int64 `json:"availableBalance"`
	PendingWithdrawals  int64 `json:"pendingWithdrawals"`
	ApprovedWithdrawals int64 `json:"approvedWithdrawals"`
	RejectedWithdrawals int64 `json:"rejectedWithdrawals"`
	TotalWithdrawn      int64 `json:"totalWithdrawn"`
}

// ============================================
// Leaderboard DTOs
// ============================================

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	MemberID string `json:"memberId"`
	Name     string `json:"name"`
	Score    int64  `json:"score"`
}

type LeaderboardResponse struct {
	Type    string             `json:"type"`
	Entries []LeaderboardEntry `json:"entries"`
}

// ============================================
// Contact Form DTOs
// ============================================

type ContactFormRequest struct {
	CustomerName    string  `json:"customerName" binding:"required"`
	PhoneNumber     string  `json:"phoneNumber" binding:"required"`
	CustomerAddress string  `json:"customerAddress" binding:"required"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	ProductID       int64   `json:"productId" binding:"required"`
	SubmittedBy     *string `json:"submittedBy,omitempty"`
}

// FormSubmissionResponse mirrors the Success/Error result the
// frontend consumes after posting a lead.
type FormSubmissionResponse struct {
	Status       string  `json:"status"`
	SubmissionID *int64  `json:"submissionId,omitempty"`
	Message      *string `json:"message,omitempty"`
	WhatsappLink string  `json:"whatsappLink,omitempty"`
	MapsLink     string  `json:"mapsLink,omitempty"`
}

type ContactFormResponse struct {
	ID              int64     `json:"id"`
	CustomerName    string    `json:"customerName"`
	PhoneNumber     string    `json:"phoneNumber"`
	CustomerAddress string    `json:"customerAddress"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	ProductID       int64     `json:"productId"`
	PackagePrice    int64     `json:"packagePrice"`
	SubmittedBy     *string   `json:"submittedBy,omitempty"`
	SubmittedAt     time.Time `json:"submittedAt"`
	WhatsappLink    string    `json:"whatsappLink"`
	MapsLink        string    `json:"mapsLink"`
}

// ============================================
// Achievement & Sales DTOs
// ============================================

type RecordAchievementRequest struct {
	MemberID    string `json:"memberId" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type AchievementResponse struct {
	ID          int64     `json:"id"`
	MemberID    string    `json:"memberId"`
	Description string    `json:"description"`
	AchievedAt  time.Time `json:"achievedAt"`
}

type RecordSalesRequest struct {
	MemberID  string `json:"memberId" binding:"required"`
	ProductID int64  `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
}

type SalesRecordResponse struct {
	ID         int64     `json:"id"`
	MemberID   string    `json:"memberId"`
	ProductID  int64     `json:"productId"`
	Quantity   int64     `json:"quantity"`
	Amount     int64     `json:"amount"`
	RecordedAt time.Time `json:"recordedAt"`
}

// ============================================
// Notification DTOs
// ============================================

type NotificationResponse struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"memberId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// ============================================
// Incentive Scheme DTOs
// ============================================

type IncentiveComponent struct {
	Name    string `json:"name"`
	Percent string `json:"percent"`
}

type IncentiveSchemeResponse struct {
	TotalCapPercent string               `json:"totalCapPercent"`
	Components      []IncentiveComponent `json:"components"`
	LevelRates      map[string]string    `json:"levelRates"`
}

// ============================================
// Common Response Types
// ============================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
