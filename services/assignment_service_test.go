package services

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tripsplit/tripsplit-backend/currency"
	"github.com/tripsplit/tripsplit-backend/models"
	"github.com/tripsplit/tripsplit-backend/utils"
)

func newTestAssignmentService() *AssignmentService {
	return NewAssignmentService(currency.DefaultTable(), nil)
}

func testSpend(normalizedAmount string) *models.Spend {
	amount := decimal.RequireFromString(normalizedAmount)
	return &models.Spend{
		ID:               "spend-1",
		TripID:           "trip-1",
		Amount:           amount,
		Currency:         "USD",
		FxRate:           decimal.NewFromInt(1),
		NormalizedAmount: amount,
		PaidBy:           "u1",
		Status:           utils.SpendStatusOpen,
	}
}

func equalBatch(userIDs ...string) []models.AssignmentInput {
	batch := make([]models.AssignmentInput, len(userIDs))
	for i, userID := range userIDs {
		batch[i] = models.AssignmentInput{UserID: userID, SplitType: utils.SplitTypeEqual}
	}
	return batch
}

func TestComputeShares_EqualSplitRemainderToFirst(t *testing.T) {
	service := newTestAssignmentService()

	// 100.00 across three people cannot split evenly; the first assignee
	// absorbs the extra cent.
	assignments, err := service.ComputeShares(testSpend("100.00"), "USD", equalBatch("u1", "u2", "u3"))

	assert.NoError(t, err)
	assert.Len(t, assignments, 3)
	assert.True(t, assignments[0].NormalizedShareAmount.Equal(decimal.RequireFromString("33.34")),
		"first share should be 33.34, got %s", assignments[0].NormalizedShareAmount)
	assert.True(t, assignments[1].NormalizedShareAmount.Equal(decimal.RequireFromString("33.33")))
	assert.True(t, assignments[2].NormalizedShareAmount.Equal(decimal.RequireFromString("33.33")))
}

func TestComputeShares_EqualSplitZeroDecimalCurrency(t *testing.T) {
	service := newTestAssignmentService()

	spend := testSpend("100")
	spend.Currency = "JPY"

	// JPY has no minor decimals, so 100 across three becomes 34/33/33.
	assignments, err := service.ComputeShares(spend, "JPY", equalBatch("u1", "u2", "u3"))

	assert.NoError(t, err)
	assert.True(t, assignments[0].NormalizedShareAmount.Equal(decimal.RequireFromString("34")))
	assert.True(t, assignments[1].NormalizedShareAmount.Equal(decimal.RequireFromString("33")))
	assert.True(t, assignments[2].NormalizedShareAmount.Equal(decimal.RequireFromString("33")))
}

func TestComputeShares_EqualSplitAlwaysReconciles(t *testing.T) {
	service := newTestAssignmentService()

	// Equal splits must sum back to the spend amount exactly for any group
	// size, not just within tolerance.
	for n := 1; n <= 50; n++ {
		userIDs := make([]string, n)
		for i := range userIDs {
			userIDs[i] = fmt.Sprintf("u%02d", i+1)
		}

		spend := testSpend("100.00")
		assignments, err := service.ComputeShares(spend, "USD", equalBatch(userIDs...))
		assert.NoError(t, err, "n=%d", n)

		total := decimal.Zero
		for _, a := range assignments {
			total = total.Add(a.NormalizedShareAmount)
		}
		assert.True(t, total.Equal(spend.NormalizedAmount),
			"n=%d: shares sum to %s, want %s", n, total, spend.NormalizedAmount)

		assert.NoError(t, service.Reconcile(spend, "USD", assignments), "n=%d", n)
	}
}

func TestComputeShares_PercentageSplit(t *testing.T) {
	service := newTestAssignmentService()

	batch := []models.AssignmentInput{
		{UserID: "u1", SplitType: utils.SplitTypePercentage, SplitValue: decimal.RequireFromString("60")},
		{UserID: "u2", SplitType: utils.SplitTypePercentage, SplitValue: decimal.RequireFromString("40")},
	}

	assignments, err := service.ComputeShares(testSpend("80.00"), "USD", batch)

	assert.NoError(t, err)
	assert.True(t, assignments[0].NormalizedShareAmount.Equal(decimal.RequireFromString("48.00")))
	assert.True(t, assignments[1].NormalizedShareAmount.Equal(decimal.RequireFromString("32.00")))
}

func TestComputeShares_PercentageOutOfRange(t *testing.T) {
	service := newTestAssignmentService()

	batch := []models.AssignmentInput{
		{UserID: "u1", SplitType: utils.SplitTypePercentage, SplitValue: decimal.RequireFromString("110")},
	}

	_, err := service.ComputeShares(testSpend("80.00"), "USD", batch)

	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, utils.KindInvalidAmount, appErr.Kind)
}

func TestComputeShares_ExactSplit(t *testing.T) {
	service := newTestAssignmentService()

	batch := []models.AssignmentInput{
		{UserID: "u1", SplitType: utils.SplitTypeExact, SplitValue: decimal.RequireFromString("12.50")},
		{UserID: "u2", SplitType: utils.SplitTypeExact, SplitValue: decimal.RequireFromString("7.50")},
	}

	assignments, err := service.ComputeShares(testSpend("20.00"), "USD", batch)

	assert.NoError(t, err)
	assert.True(t, assignments[0].NormalizedShareAmount.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, assignments[1].NormalizedShareAmount.Equal(decimal.RequireFromString("7.50")))
}

func TestComputeShares_ExactNegativeRejected(t *testing.T) {
	service := newTestAssignmentService()

	batch := []models.AssignmentInput{
		{UserID: "u1", SplitType: utils.SplitTypeExact, SplitValue: decimal.RequireFromString("-5.00")},
	}

	_, err := service.ComputeShares(testSpend("20.00"), "USD", batch)

	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, utils.KindInvalidAmount, appErr.Kind)
}

func TestComputeShares_SharesSplit(t *testing.T) {
	service := newTestAssignmentService()

	// Weights 2/1/1: u1 takes half, the others a quarter each. The first
	// assignee also absorbs any rounding remainder.
	batch := []models.AssignmentInput{
		{UserID: "u1", SplitType: utils.SplitTypeShares, SplitValue: decimal.RequireFromString("2")},
		{UserID: "u2", SplitType: utils.SplitTypeShares, SplitValue: decimal.RequireFromString("1")},
		{UserID: "u3", SplitType: utils.SplitTypeShares, SplitValue: decimal.RequireFromString("1")},
	}

	assignments, err := service.ComputeShares(testSpend("100.00"), "USD", batch)

	assert.NoError(t, err)
	assert.True(t, assignments[0].NormalizedShareAmount.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, assignments[1].NormalizedShareAmount.Equal(decimal.RequireFromString("25.00")))
	assert.True(t, assignments[2].NormalizedShareAmount.Equal(decimal.RequireFromString("25.00")))

	total := decimal.Zero
	for _, a := range assignments {
		total = total.Add(a.NormalizedShareAmount)
	}
	assert.True(t, total.Equal(decimal.RequireFromString("100.00")))
}

func TestComputeShares_SharesNonPositiveWeightRejected(t *testing.T) {
	service := newTestAssignmentService()

	batch := []models.AssignmentInput{
		{UserID: "u1", SplitType: utils.SplitTypeShares, SplitValue: decimal.RequireFromString("0")},
		{UserID: "u2", SplitType: utils.SplitTypeShares, SplitValue: decimal.RequireFromString("1")},
	}

	_, err := service.ComputeShares(testSpend("10.00"), "USD", batch)

	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, utils.KindInvalidAmount, appErr.Kind)
}

func TestComputeShares_EmptyBatchRejected(t *testing.T) {
	service := newTestAssignmentService()

	_, err := service.ComputeShares(testSpend("10.00"), "USD", nil)

	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, utils.KindEmptyAssignmentSet, appErr.Kind)
}

func TestComputeShares_DuplicateAssigneeRejected(t *testing.T) {
	service := newTestAssignmentService()

	_, err := service.ComputeShares(testSpend("10.00"), "USD", equalBatch("u1", "u2", "u1"))

	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, utils.KindDuplicateAssignee, appErr.Kind)
}

func TestComputeShares_MixedSplitTypesRejected(t *testing.T) {
	service := newTestAssignmentService()

	batch := []models.AssignmentInput{
		{UserID: "u1", SplitType: utils.SplitTypeEqual},
		{UserID: "u2", SplitType: utils.SplitTypeExact, SplitValue: decimal.RequireFromString("5.00")},
	}

	_, err := service.ComputeShares(testSpend("10.00"), "USD", batch)

	assert.Error(t, err)
}

func TestReconcile_UnderAssignedFails(t *testing.T) {
	service := newTestAssignmentService()

	// 50% + 30% of 100.00 leaves 20.00 unassigned, far beyond the per
	// assignment tolerance.
	spend := testSpend("100.00")
	batch := []models.AssignmentInput{
		{UserID: "u1", SplitType: utils.SplitTypePercentage, SplitValue: decimal.RequireFromString("50")},
		{UserID: "u2", SplitType: utils.SplitTypePercentage, SplitValue: decimal.RequireFromString("30")},
	}

	assignments, err := service.ComputeShares(spend, "USD", batch)
	assert.NoError(t, err)

	err = service.Reconcile(spend, "USD", assignments)
	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, utils.KindReconciliationFailed, appErr.Kind)
}

func TestReconcile_ToleranceIsOneMinorUnitPerAssignment(t *testing.T) {
	service := newTestAssignmentService()
	spend := testSpend("100.00")

	within := []models.Assignment{
		{SpendID: spend.ID, UserID: "u1", NormalizedShareAmount: decimal.RequireFromString("50.01")},
		{SpendID: spend.ID, UserID: "u2", NormalizedShareAmount: decimal.RequireFromString("49.97")},
	}
	assert.NoError(t, service.Reconcile(spend, "USD", within), "0.02 drift over two assignments should pass")

	beyond := []models.Assignment{
		{SpendID: spend.ID, UserID: "u1", NormalizedShareAmount: decimal.RequireFromString("50.01")},
		{SpendID: spend.ID, UserID: "u2", NormalizedShareAmount: decimal.RequireFromString("49.96")},
	}
	err := service.Reconcile(spend, "USD", beyond)
	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, utils.KindReconciliationFailed, appErr.Kind)
}
