package models

import "github.com/shopspring/decimal"

// CreateTripRequest request model
type CreateTripRequest struct {
	Name         string `json:"name" binding:"required"`
	BaseCurrency string `json:"baseCurrency" binding:"required"`
	UserID       string `json:"userId" binding:"required"`
}

// GetTripByCodeRequest request model
type GetTripByCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// JoinTripRequest adds a member to a trip.
type JoinTripRequest struct {
	Code   string `json:"code" binding:"required"`
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role"`
}

// SetRoleRequest updates a member's role.
type SetRoleRequest struct {
	Code   string `json:"code" binding:"required"`
	UserID string `json:"userId" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// SetRSVPRequest updates a member's RSVP status.
type SetRSVPRequest struct {
	Code       string `json:"code" binding:"required"`
	UserID     string `json:"userId" binding:"required"`
	RSVPStatus string `json:"rsvpStatus" binding:"required"`
}

// AssignmentInput is one entry of a proposed assignment batch.
type AssignmentInput struct {
	UserID     string          `json:"userId" binding:"required"`
	SplitType  string          `json:"splitType" binding:"required"`
	SplitValue decimal.Decimal `json:"splitValue"`
}

// AddSpendRequest request model
type AddSpendRequest struct {
	Code        string          `json:"code" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency"`
	FxRate      decimal.Decimal `json:"fxRate"`
	PaidBy      string          `json:"paidBy" binding:"required"`
}

// UpdateSpendRequest request model. Nil fields are left unchanged.
type UpdateSpendRequest struct {
	Code        string           `json:"code" binding:"required"`
	SpendID     string           `json:"spendId" binding:"required"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Currency    *string          `json:"currency,omitempty"`
	FxRate      *decimal.Decimal `json:"fxRate,omitempty"`
	PaidBy      *string          `json:"paidBy,omitempty"`
}

// RemoveSpendRequest request model
type RemoveSpendRequest struct {
	Code    string `json:"code" binding:"required"`
	SpendID string `json:"spendId" binding:"required"`
}

// FinalizeSpendRequest request model. Force bypasses the reconciliation check.
type FinalizeSpendRequest struct {
	Code    string `json:"code" binding:"required"`
	SpendID string `json:"spendId" binding:"required"`
	Force   bool   `json:"force"`
}

// ReopenSpendRequest request model
type ReopenSpendRequest struct {
	Code    string `json:"code" binding:"required"`
	SpendID string `json:"spendId" binding:"required"`
}

// AssignSpendRequest upserts assignments onto a spend.
type AssignSpendRequest struct {
	Code        string            `json:"code" binding:"required"`
	SpendID     string            `json:"spendId" binding:"required"`
	Assignments []AssignmentInput `json:"assignments" binding:"required"`
}

// ReplaceAssignmentsRequest replaces the full assignment set of a spend.
type ReplaceAssignmentsRequest struct {
	Code        string            `json:"code" binding:"required"`
	SpendID     string            `json:"spendId" binding:"required"`
	Assignments []AssignmentInput `json:"assignments" binding:"required"`
}

// RemoveAssignmentRequest removes one user's assignment from a spend.
type RemoveAssignmentRequest struct {
	Code    string `json:"code" binding:"required"`
	SpendID string `json:"spendId" binding:"required"`
	UserID  string `json:"userId" binding:"required"`
}

// QuoteSplitRequest previews computed shares without persisting anything.
type QuoteSplitRequest struct {
	Amount      decimal.Decimal   `json:"amount" binding:"required"`
	Currency    string            `json:"currency"`
	FxRate      decimal.Decimal   `json:"fxRate"`
	Assignments []AssignmentInput `json:"assignments" binding:"required,min=1"`
}

// PaymentRequest records an actual payment between two members.
type PaymentRequest struct {
	Code        string          `json:"code" binding:"required"`
	FromUserID  string          `json:"fromUserId" binding:"required"`
	ToUserID    string          `json:"toUserId" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// CreateTripResponse response model
type CreateTripResponse struct {
	TripID string `json:"tripId"`
	Code   string `json:"code"`
}
