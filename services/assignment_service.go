package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tripsplit/tripsplit-backend/currency"
	"github.com/tripsplit/tripsplit-backend/models"
	"github.com/tripsplit/tripsplit-backend/utils"
)

var oneHundred = decimal.NewFromInt(100)

// AssignmentService computes and validates per-user shares of a spend.
type AssignmentService struct {
	normalizer *currency.Normalizer
	table      *currency.Table
	spendRepo  SpendStore
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(table *currency.Table, spendRepo SpendStore) *AssignmentService {
	return &AssignmentService{
		normalizer: currency.NewNormalizer(table),
		table:      table,
		spendRepo:  spendRepo,
	}
}

// ComputeShares validates a proposed assignment batch against a spend and
// computes each assignment's share in both the spend currency and the trip's
// base currency. Nothing is persisted; validation failures surface before any
// write.
//
// Split semantics:
//   - EQUAL: the normalized amount is divided evenly; the minor-unit
//     remainder goes to the first assignee in insertion order, so the batch
//     reconciles exactly.
//   - PERCENTAGE: share = normalizedAmount * value / 100. Percentages are not
//     required to sum to 100 here; completeness is enforced at finalize time.
//   - EXACT: value is the share amount in the base currency, taken as-is.
//   - SHARES: weight-proportional split, remainder to the first assignee.
//
// A batch must use a single split type: the split policy belongs to the spend
// as a whole, mixing policies inside one batch is rejected.
func (s *AssignmentService) ComputeShares(spend *models.Spend, baseCurrency string, batch []models.AssignmentInput) ([]models.Assignment, error) {
	if len(batch) == 0 {
		return nil, utils.NewValidationError(utils.KindEmptyAssignmentSet, "assignment batch cannot be empty")
	}

	splitType := batch[0].SplitType
	seen := make(map[string]bool, len(batch))
	for _, input := range batch {
		if input.SplitType != splitType {
			return nil, utils.NewBadRequestError("all assignments of a spend must use the same split type")
		}
		if seen[input.UserID] {
			return nil, utils.NewValidationError(utils.KindDuplicateAssignee,
				fmt.Sprintf("user %s appears more than once in the batch", input.UserID))
		}
		seen[input.UserID] = true
	}

	shares, err := s.computeNormalizedShares(splitType, spend.NormalizedAmount, baseCurrency, batch)
	if err != nil {
		return nil, err
	}

	assignments := make([]models.Assignment, len(batch))
	for i, input := range batch {
		if shares[i].Sign() < 0 {
			return nil, utils.NewValidationError(utils.KindInvalidAmount,
				fmt.Sprintf("computed share for user %s is negative", input.UserID))
		}
		assignments[i] = models.Assignment{
			ID:                    utils.GenerateID(),
			SpendID:               spend.ID,
			UserID:                input.UserID,
			SplitType:             input.SplitType,
			SplitValue:            input.SplitValue,
			ShareAmount:           s.denormalize(shares[i], spend),
			NormalizedShareAmount: shares[i],
		}
	}

	return assignments, nil
}

func (s *AssignmentService) computeNormalizedShares(splitType string, normalizedAmount decimal.Decimal, baseCurrency string, batch []models.AssignmentInput) ([]decimal.Decimal, error) {
	exp := s.table.Exponent(baseCurrency)
	shares := make([]decimal.Decimal, len(batch))

	switch splitType {
	case utils.SplitTypeEqual:
		n := decimal.NewFromInt(int64(len(batch)))
		even := normalizedAmount.Div(n).RoundDown(exp)
		rest := even.Mul(decimal.NewFromInt(int64(len(batch) - 1)))
		shares[0] = normalizedAmount.Sub(rest)
		for i := 1; i < len(batch); i++ {
			shares[i] = even
		}

	case utils.SplitTypePercentage:
		for i, input := range batch {
			if input.SplitValue.Sign() < 0 || input.SplitValue.GreaterThan(oneHundred) {
				return nil, utils.NewValidationError(utils.KindInvalidAmount,
					fmt.Sprintf("percentage for user %s must be between 0 and 100", input.UserID))
			}
			shares[i] = normalizedAmount.Mul(input.SplitValue).Div(oneHundred).Round(exp)
		}

	case utils.SplitTypeExact:
		for i, input := range batch {
			if input.SplitValue.Sign() < 0 {
				return nil, utils.NewValidationError(utils.KindInvalidAmount,
					fmt.Sprintf("exact amount for user %s cannot be negative", input.UserID))
			}
			shares[i] = input.SplitValue.Round(exp)
		}

	case utils.SplitTypeShares:
		sumWeights := decimal.Zero
		for _, input := range batch {
			if input.SplitValue.Sign() <= 0 {
				return nil, utils.NewValidationError(utils.KindInvalidAmount,
					fmt.Sprintf("share count for user %s must be positive", input.UserID))
			}
			sumWeights = sumWeights.Add(input.SplitValue)
		}
		allocated := decimal.Zero
		for i := 1; i < len(batch); i++ {
			shares[i] = normalizedAmount.Mul(batch[i].SplitValue).Div(sumWeights).Round(exp)
			allocated = allocated.Add(shares[i])
		}
		// Remainder to the first assignee so the batch reconciles exactly.
		shares[0] = normalizedAmount.Sub(allocated)

	default:
		return nil, utils.NewBadRequestError(fmt.Sprintf("unknown split type: %s", splitType))
	}

	return shares, nil
}

// denormalize converts a base-currency share back into the spend's original
// currency. Informational only; reconciliation always runs over normalized
// shares.
func (s *AssignmentService) denormalize(normalizedShare decimal.Decimal, spend *models.Spend) decimal.Decimal {
	fxRate := spend.FxRate
	if fxRate.Sign() <= 0 {
		fxRate = currency.DefaultFxRate()
	}
	return normalizedShare.Div(fxRate).Round(s.table.Exponent(spend.Currency))
}

// Reconcile verifies that the normalized shares of a spend's assignments sum
// to the spend's normalized amount within tolerance. The tolerance is one
// minor unit per assignment, which absorbs integer-rounding remainder without
// hiding real gaps.
func (s *AssignmentService) Reconcile(spend *models.Spend, baseCurrency string, assignments []models.Assignment) error {
	total := decimal.Zero
	for _, a := range assignments {
		total = total.Add(a.NormalizedShareAmount)
	}

	tolerance := s.table.MinorUnit(baseCurrency).Mul(decimal.NewFromInt(int64(len(assignments))))
	diff := total.Sub(spend.NormalizedAmount).Abs()
	if diff.GreaterThan(tolerance) {
		return utils.NewValidationError(utils.KindReconciliationFailed,
			fmt.Sprintf("assignments sum to %s but spend normalized amount is %s",
				total.String(), spend.NormalizedAmount.String()))
	}

	return nil
}

// AssignUsers upserts an assignment batch onto an OPEN spend. Existing
// assignments for the same (spend, user) pairs are replaced, not duplicated.
func (s *AssignmentService) AssignUsers(trip *models.Trip, spendID string, batch []models.AssignmentInput) ([]models.Assignment, error) {
	spend, err := s.openSpend(trip, spendID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.ComputeShares(spend, trip.BaseCurrency, batch)
	if err != nil {
		return nil, err
	}

	if err := s.spendRepo.UpsertAssignments(assignments); err != nil {
		return nil, utils.NewInternalError("Failed to store assignments")
	}

	return assignments, nil
}

// ReplaceAssignments swaps a spend's full assignment set for the given batch
// in one transaction, guaranteeing no stale assignment survives a bulk edit.
func (s *AssignmentService) ReplaceAssignments(trip *models.Trip, spendID string, batch []models.AssignmentInput) ([]models.Assignment, error) {
	spend, err := s.openSpend(trip, spendID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.ComputeShares(spend, trip.BaseCurrency, batch)
	if err != nil {
		return nil, err
	}

	if err := s.spendRepo.ReplaceAssignments(spendID, assignments); err != nil {
		return nil, utils.NewInternalError("Failed to replace assignments")
	}

	return assignments, nil
}

// RemoveAssignment deletes one user's assignment from an OPEN spend.
func (s *AssignmentService) RemoveAssignment(trip *models.Trip, spendID, userID string) error {
	if _, err := s.openSpend(trip, spendID); err != nil {
		return err
	}

	removed, err := s.spendRepo.RemoveAssignment(spendID, userID)
	if err != nil {
		return utils.NewInternalError("Failed to remove assignment")
	}
	if !removed {
		return utils.NewNotFoundError("Assignment")
	}

	return nil
}

// GetAssignments lists the assignments of a spend.
func (s *AssignmentService) GetAssignments(trip *models.Trip, spendID string) ([]models.Assignment, error) {
	if _, err := s.spendRepo.GetSpend(trip.ID, spendID); err != nil {
		return nil, translateSpendErr(err)
	}
	assignments, err := s.spendRepo.GetAssignments(spendID)
	if err != nil {
		return nil, utils.NewInternalError("Failed to retrieve assignments")
	}
	return assignments, nil
}

func (s *AssignmentService) openSpend(trip *models.Trip, spendID string) (*models.Spend, error) {
	spend, err := s.spendRepo.GetSpend(trip.ID, spendID)
	if err != nil {
		return nil, translateSpendErr(err)
	}
	if !spend.IsOpen() {
		return nil, utils.NewConflictError(utils.KindSpendNotOpen,
			"spend is closed; reopen it before editing assignments")
	}
	return spend, nil
}
