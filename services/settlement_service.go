package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tripsplit/tripsplit-backend/currency"
	"github.com/tripsplit/tripsplit-backend/models"
	"github.com/tripsplit/tripsplit-backend/utils"
)

// SettlementService turns net balances into a transfer plan.
type SettlementService struct {
	table          *currency.Table
	spendRepo      SpendStore
	tripRepo       TripStore
	balanceService *BalanceService
	paymentService *PaymentService
}

// NewSettlementService creates a new settlement service
func NewSettlementService(table *currency.Table, spendRepo SpendStore, tripRepo TripStore, balanceService *BalanceService, paymentService *PaymentService) *SettlementService {
	return &SettlementService{
		table:          table,
		spendRepo:      spendRepo,
		tripRepo:       tripRepo,
		balanceService: balanceService,
		paymentService: paymentService,
	}
}

// userBalance pairs a member with their outstanding magnitude during planning.
type userBalance struct {
	UserID string
	Amount decimal.Decimal
}

// PlanTransfers converts a net balance map into pairwise transfers that
// drive every balance to within epsilon of zero. quantum is one minor unit
// of the base currency; balances within half a quantum are treated as
// settled.
//
// Greedy largest-first matching: sort creditors and debtors by magnitude
// descending and repeatedly settle the two largest against each other. Ties
// break by user ID ascending so the plan is reproducible. The heuristic is
// not guaranteed globally optimal but is deterministic and good enough for
// trip-sized groups.
//
// If creditor and debtor totals disagree beyond epsilon the smaller side's
// leftover is simply left unmatched; upstream drift is a data-quality signal,
// not a planner fault.
func (s *SettlementService) PlanTransfers(balances map[string]decimal.Decimal, quantum decimal.Decimal) []models.Transfer {
	epsilon := quantum.Div(decimal.NewFromInt(2))

	var creditors, debtors []userBalance
	for userID, balance := range balances {
		if balance.GreaterThan(epsilon) {
			creditors = append(creditors, userBalance{UserID: userID, Amount: balance})
		} else if balance.Neg().GreaterThan(epsilon) {
			debtors = append(debtors, userBalance{UserID: userID, Amount: balance.Neg()})
		}
	}

	sortByAmountDesc(creditors)
	sortByAmountDesc(debtors)

	transfers := []models.Transfer{}

	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		amount := decimal.Min(creditor.Amount, debtor.Amount)
		if amount.Sign() > 0 {
			transfers = append(transfers, models.Transfer{
				From:   debtor.UserID,
				To:     creditor.UserID,
				Amount: amount,
			})
		}

		creditor.Amount = creditor.Amount.Sub(amount)
		debtor.Amount = debtor.Amount.Sub(amount)

		if !creditor.Amount.GreaterThan(epsilon) {
			i++
		}
		if !debtor.Amount.GreaterThan(epsilon) {
			j++
		}
	}

	return transfers
}

func sortByAmountDesc(balances []userBalance) {
	sort.Slice(balances, func(i, j int) bool {
		if !balances[i].Amount.Equal(balances[j].Amount) {
			return balances[i].Amount.GreaterThan(balances[j].Amount)
		}
		return balances[i].UserID < balances[j].UserID
	})
}

// CalculateSettlements computes net balances for a trip and plans the
// transfers that settle them. Recorded payments from the ledger are applied
// to the balances first, so the plan only covers what is still outstanding.
func (s *SettlementService) CalculateSettlements(trip *models.Trip) (*models.SettlementResult, error) {
	spends, err := s.spendRepo.GetSpends(trip.ID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	assignments, err := s.spendRepo.GetAssignmentsByTrip(trip.ID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	members, err := s.tripRepo.GetMembers(trip.ID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	balances := s.balanceService.ComputeBalances(members, spends, assignments)

	payments, err := s.paymentService.GetPaymentsByTripID(trip.ID)
	if err != nil {
		return nil, err
	}
	balances = s.paymentService.ApplyPayments(balances, payments)

	transfers := s.PlanTransfers(balances, s.table.MinorUnit(trip.BaseCurrency))

	return &models.SettlementResult{
		Transfers:   transfers,
		NetBalances: balances,
	}, nil
}
