package services

import (
	"github.com/shopspring/decimal"

	"github.com/tripsplit/tripsplit-backend/models"
	"github.com/tripsplit/tripsplit-backend/utils"
)

// BalanceService folds closed spends and their assignments into per-member
// net balances.
type BalanceService struct{}

// NewBalanceService creates a new balance service
func NewBalanceService() *BalanceService {
	return &BalanceService{}
}

// ComputeBalances returns each member's net position in the trip's base
// currency: positive means the member is owed money, negative means they owe.
//
// Only CLOSED spends participate; OPEN spends are tentative and excluded.
// For each closed spend the payer's balance increases by the normalized
// amount and each assignee's decreases by their normalized share, so a payer
// assigned a share of their own spend nets amount minus own share.
//
// Every non-viewer member appears in the map, zero if they had no activity.
// Anyone with spend or assignment history appears regardless of role or RSVP
// status. The literal sums are reported; small rounding drift across many
// spends is left for the planner's epsilon to absorb.
func (s *BalanceService) ComputeBalances(members []models.TripMember, spends []*models.Spend, assignments []models.Assignment) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)

	for _, member := range members {
		if member.Role == utils.RoleViewer {
			continue
		}
		balances[member.UserID] = decimal.Zero
	}

	bySpend := make(map[string][]models.Assignment)
	for _, a := range assignments {
		bySpend[a.SpendID] = append(bySpend[a.SpendID], a)
	}

	for _, spend := range spends {
		if spend.IsOpen() {
			continue
		}

		balances[spend.PaidBy] = balances[spend.PaidBy].Add(spend.NormalizedAmount)

		for _, a := range bySpend[spend.ID] {
			balances[a.UserID] = balances[a.UserID].Sub(a.NormalizedShareAmount)
		}
	}

	return balances
}
