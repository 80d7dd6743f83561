package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tripsplit/tripsplit-backend/currency"
	"github.com/tripsplit/tripsplit-backend/models"
	"github.com/tripsplit/tripsplit-backend/utils"
)

func TestSettlement_WeekendTripScenario(t *testing.T) {
	table := currency.DefaultTable()
	assignmentService := NewAssignmentService(table, nil)
	balanceService := NewBalanceService()
	settlementService := NewSettlementService(table, nil, nil, balanceService, NewPaymentService(nil))

	// GBP trip, three people:
	// Dinner (90.00) paid by u1, split equally among all three.
	// Taxi (50.00) paid by u2, split equally between u1 and u2.
	members := []models.TripMember{
		{TripID: "trip-1", UserID: "u1", Role: utils.RoleOwner, RSVPStatus: utils.RSVPAccepted},
		{TripID: "trip-1", UserID: "u2", Role: utils.RoleMember, RSVPStatus: utils.RSVPAccepted},
		{TripID: "trip-1", UserID: "u3", Role: utils.RoleMember, RSVPStatus: utils.RSVPAccepted},
	}

	dinner := closedSpend("dinner", "u1", "90.00")
	dinner.Currency = "GBP"
	taxi := closedSpend("taxi", "u2", "50.00")
	taxi.Currency = "GBP"

	dinnerShares, err := assignmentService.ComputeShares(dinner, "GBP", equalBatch("u1", "u2", "u3"))
	assert.NoError(t, err)
	taxiShares, err := assignmentService.ComputeShares(taxi, "GBP", equalBatch("u1", "u2"))
	assert.NoError(t, err)

	assignments := append(dinnerShares, taxiShares...)
	for _, a := range dinnerShares {
		assert.True(t, a.NormalizedShareAmount.Equal(decimal.RequireFromString("30.00")))
	}
	for _, a := range taxiShares {
		assert.True(t, a.NormalizedShareAmount.Equal(decimal.RequireFromString("25.00")))
	}

	balances := balanceService.ComputeBalances(members, []*models.Spend{dinner, taxi}, assignments)

	// u1: paid 90, owes 30 + 25           -> +35
	// u2: paid 50, owes 30 + 25           ->  -5
	// u3: paid nothing, owes 30           -> -30
	assert.True(t, balances["u1"].Equal(decimal.RequireFromString("35.00")))
	assert.True(t, balances["u2"].Equal(decimal.RequireFromString("-5.00")))
	assert.True(t, balances["u3"].Equal(decimal.RequireFromString("-30.00")))

	transfers := settlementService.PlanTransfers(balances, table.MinorUnit("GBP"))

	assert.Len(t, transfers, 2)
	assert.Equal(t, "u3", transfers[0].From)
	assert.Equal(t, "u1", transfers[0].To)
	assert.True(t, transfers[0].Amount.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, "u2", transfers[1].From)
	assert.Equal(t, "u1", transfers[1].To)
	assert.True(t, transfers[1].Amount.Equal(decimal.RequireFromString("5.00")))
}

func TestSettlement_PaymentLedgerReducesPlan(t *testing.T) {
	table := currency.DefaultTable()
	paymentService := NewPaymentService(nil)
	settlementService := NewSettlementService(table, nil, nil, NewBalanceService(), paymentService)

	balances := map[string]decimal.Decimal{
		"u1": decimal.RequireFromString("35.00"),
		"u2": decimal.RequireFromString("-5.00"),
		"u3": decimal.RequireFromString("-30.00"),
	}

	// u3 already paid u1 back in cash; only u2's debt should remain.
	payments := []models.Payment{
		{TripID: "trip-1", FromUserID: "u3", ToUserID: "u1", Amount: decimal.RequireFromString("30.00")},
	}

	adjusted := paymentService.ApplyPayments(balances, payments)
	transfers := settlementService.PlanTransfers(adjusted, table.MinorUnit("GBP"))

	assert.Len(t, transfers, 1)
	assert.Equal(t, "u2", transfers[0].From)
	assert.Equal(t, "u1", transfers[0].To)
	assert.True(t, transfers[0].Amount.Equal(decimal.RequireFromString("5.00")))
}
