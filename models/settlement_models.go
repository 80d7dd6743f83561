package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is a computed payment instruction: From must pay To the given
// amount in the trip's base currency. Transfers are produced fresh by the
// settlement planner on each request and never persisted.
type Transfer struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// SettlementResult pairs the transfer plan with the net balance per member.
type SettlementResult struct {
	Transfers   []Transfer                 `json:"transfers"`
	NetBalances map[string]decimal.Decimal `json:"netBalances"`
}

// Payment records an actual payment made between two members, as opposed to
// the computed transfer plan. It is a ledger of reality.
type Payment struct {
	ID          int             `json:"id" db:"id"`
	TripID      string          `json:"tripId" db:"trip_id"`
	FromUserID  string          `json:"fromUserId" db:"from_user_id"`
	ToUserID    string          `json:"toUserId" db:"to_user_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Description string          `json:"description" db:"description"`
	PaymentDate time.Time       `json:"paymentDate" db:"payment_date"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}
