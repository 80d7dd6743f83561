// models/models.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trip represents a group of people sharing expenses. Every monetary figure
// downstream is normalized into the trip's base currency.
type Trip struct {
	ID           string       `json:"id"`
	CreationTime int64        `json:"creationTime"`
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	BaseCurrency string       `json:"baseCurrency"`
	Members      []TripMember `json:"members,omitempty"`
}

// TripMember binds a user to a trip with a role and RSVP status.
type TripMember struct {
	TripID     string `json:"tripId"`
	UserID     string `json:"userId"`
	Role       string `json:"role"`       // OWNER, MEMBER, VIEWER
	RSVPStatus string `json:"rsvpStatus"` // PENDING, ACCEPTED, DECLINED
}

// Spend represents a recorded expense within a trip.
//
// NormalizedAmount is always derived from Amount * FxRate rounded to the base
// currency's minor unit; it is recomputed on every amount/currency/fx change
// and never authoritative on its own.
type Spend struct {
	ID               string          `json:"id"`
	CreationTime     int64           `json:"creationTime"`
	TripID           string          `json:"tripId"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	FxRate           decimal.Decimal `json:"fxRate"`
	NormalizedAmount decimal.Decimal `json:"normalizedAmount"`
	PaidBy           string          `json:"paidBy"`
	Status           string          `json:"status"` // OPEN, CLOSED
	ReceiptImage     string          `json:"receiptImage,omitempty"`
}

// Assignment represents one user's share of one spend. A user holds at most
// one assignment per spend.
type Assignment struct {
	ID                    string          `json:"id"`
	SpendID               string          `json:"spendId"`
	UserID                string          `json:"userId"`
	SplitType             string          `json:"splitType"` // EQUAL, PERCENTAGE, EXACT, SHARES
	SplitValue            decimal.Decimal `json:"splitValue"`
	ShareAmount           decimal.Decimal `json:"shareAmount"`           // in the spend's original currency
	NormalizedShareAmount decimal.Decimal `json:"normalizedShareAmount"` // in the trip's base currency
}

// NewTrip creates a new Trip instance with its creator as owner.
func NewTrip(id, code, name, baseCurrency, ownerID string) *Trip {
	return &Trip{
		ID:           id,
		CreationTime: time.Now().UnixMilli(),
		Code:         code,
		Name:         name,
		BaseCurrency: baseCurrency,
		Members: []TripMember{
			{TripID: id, UserID: ownerID, Role: "OWNER", RSVPStatus: "ACCEPTED"},
		},
	}
}

// NewSpend creates a new OPEN Spend instance. The caller supplies the
// already-normalized amount so normalization policy stays in one place.
func NewSpend(id, tripID, description string, amount decimal.Decimal, currency string, fxRate, normalizedAmount decimal.Decimal, paidBy string) *Spend {
	return &Spend{
		ID:               id,
		CreationTime:     time.Now().UnixMilli(),
		TripID:           tripID,
		Description:      description,
		Amount:           amount,
		Currency:         currency,
		FxRate:           fxRate,
		NormalizedAmount: normalizedAmount,
		PaidBy:           paidBy,
		Status:           "OPEN",
	}
}

// IsOpen reports whether the spend still accepts edits.
func (s *Spend) IsOpen() bool {
	return s.Status == "OPEN"
}
