package services

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/tripsplit/tripsplit-backend/currency"
	"github.com/tripsplit/tripsplit-backend/models"
	"github.com/tripsplit/tripsplit-backend/repository"
	"github.com/tripsplit/tripsplit-backend/utils"
)

// SpendService handles the spend lifecycle: create, edit, finalize, reopen.
type SpendService struct {
	normalizer        *currency.Normalizer
	table             *currency.Table
	spendRepo         SpendStore
	assignmentService *AssignmentService
}

// NewSpendService creates a new spend service
func NewSpendService(table *currency.Table, spendRepo SpendStore, assignmentService *AssignmentService) *SpendService {
	return &SpendService{
		normalizer:        currency.NewNormalizer(table),
		table:             table,
		spendRepo:         spendRepo,
		assignmentService: assignmentService,
	}
}

// CreateSpend records a new OPEN spend on a trip. The currency defaults to
// the trip's base currency and the fx rate to 1; the normalized amount is
// derived, never supplied.
func (s *SpendService) CreateSpend(trip *models.Trip, req *models.AddSpendRequest) (*models.Spend, error) {
	if err := utils.ValidatePositive(req.Amount, "amount"); err != nil {
		return nil, err
	}

	code := req.Currency
	if code == "" {
		code = trip.BaseCurrency
	}
	if err := currency.ValidateCode(code); err != nil {
		return nil, utils.NewBadRequestError(err.Error())
	}

	fxRate := req.FxRate
	if fxRate.Sign() <= 0 {
		fxRate = currency.DefaultFxRate()
	}

	amount := s.normalizer.Round(req.Amount, code)
	normalized := s.normalizer.Normalize(amount, fxRate, trip.BaseCurrency)

	spend := models.NewSpend(utils.GenerateID(), trip.ID, req.Description, amount, code, fxRate, normalized, req.PaidBy)

	if err := s.spendRepo.StoreSpend(spend); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	return spend, nil
}

// UpdateSpend edits an OPEN spend. Any change to amount, currency or fx rate
// recomputes the normalized amount.
func (s *SpendService) UpdateSpend(trip *models.Trip, req *models.UpdateSpendRequest) (*models.Spend, error) {
	spend, err := s.spendRepo.GetSpend(trip.ID, req.SpendID)
	if err != nil {
		return nil, translateSpendErr(err)
	}
	if !spend.IsOpen() {
		return nil, utils.NewConflictError(utils.KindSpendNotOpen, "spend is closed; reopen it before editing")
	}

	if req.Description != nil {
		spend.Description = *req.Description
	}
	if req.PaidBy != nil {
		spend.PaidBy = *req.PaidBy
	}
	if req.Currency != nil {
		if err := currency.ValidateCode(*req.Currency); err != nil {
			return nil, utils.NewBadRequestError(err.Error())
		}
		spend.Currency = *req.Currency
	}
	if req.Amount != nil {
		if err := utils.ValidatePositive(*req.Amount, "amount"); err != nil {
			return nil, err
		}
		spend.Amount = s.normalizer.Round(*req.Amount, spend.Currency)
	}
	if req.FxRate != nil {
		if req.FxRate.Sign() <= 0 {
			return nil, utils.NewValidationError(utils.KindInvalidAmount, "fx rate must be positive")
		}
		spend.FxRate = *req.FxRate
	}

	spend.NormalizedAmount = s.normalizer.Normalize(spend.Amount, spend.FxRate, trip.BaseCurrency)

	if err := s.spendRepo.UpdateSpend(spend); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	return spend, nil
}

// RemoveSpend deletes an OPEN spend together with its assignments.
func (s *SpendService) RemoveSpend(trip *models.Trip, spendID string) error {
	spend, err := s.spendRepo.GetSpend(trip.ID, spendID)
	if err != nil {
		return translateSpendErr(err)
	}
	if !spend.IsOpen() {
		return utils.NewConflictError(utils.KindSpendNotOpen, "spend is closed; reopen it before deleting")
	}

	removed, err := s.spendRepo.RemoveSpend(trip.ID, spendID)
	if err != nil {
		return utils.NewInternalError("Failed to delete spend")
	}
	if !removed {
		return utils.NewNotFoundError("Spend")
	}

	return nil
}

// Finalize transitions a spend to CLOSED. Without force the spend's
// assignments must reconcile to its normalized amount; with force the
// discrepancy is tolerated and shares are NOT rescaled. Finalizing an
// already-CLOSED spend is a no-op.
func (s *SpendService) Finalize(trip *models.Trip, spendID string, force bool) (*models.Spend, error) {
	spend, err := s.spendRepo.TransitionSpendStatus(trip.ID, spendID, utils.SpendStatusClosed,
		s.finalizeCheck(trip.BaseCurrency, force))
	if err != nil {
		return nil, translateSpendErr(err)
	}
	return spend, nil
}

// finalizeCheck is the decision run under the transition lock: closing an
// already-CLOSED spend is a no-op that skips reconciliation, force tolerates
// a discrepancy without rescaling shares, everything else must reconcile.
func (s *SpendService) finalizeCheck(baseCurrency string, force bool) func(*models.Spend, []models.Assignment) error {
	return func(current *models.Spend, assignments []models.Assignment) error {
		if !current.IsOpen() {
			return nil
		}
		if force {
			return nil
		}
		return s.assignmentService.Reconcile(current, baseCurrency, assignments)
	}
}

// Reopen transitions a spend back to OPEN. Always permitted; reopening an
// already-OPEN spend is a no-op.
func (s *SpendService) Reopen(trip *models.Trip, spendID string) (*models.Spend, error) {
	spend, err := s.spendRepo.TransitionSpendStatus(trip.ID, spendID, utils.SpendStatusOpen, nil)
	if err != nil {
		return nil, translateSpendErr(err)
	}
	return spend, nil
}

// translateSpendErr maps storage errors onto the API error taxonomy. Only a
// genuinely missing spend becomes a 404; storage failures stay internal.
func translateSpendErr(err error) error {
	if appErr, ok := err.(*utils.AppError); ok {
		return appErr
	}
	if errors.Is(err, repository.ErrSpendNotFound) {
		return utils.NewNotFoundError("Spend")
	}
	return utils.NewInternalError(utils.ErrFailedToRetrieve)
}

// GetSpends lists all spends of a trip.
func (s *SpendService) GetSpends(tripID string) ([]*models.Spend, error) {
	spends, err := s.spendRepo.GetSpends(tripID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return spends, nil
}

// QuoteSplit previews the shares a batch would produce for a hypothetical
// spend without persisting anything.
func (s *SpendService) QuoteSplit(req *models.QuoteSplitRequest) ([]models.Assignment, error) {
	if err := utils.ValidatePositive(req.Amount, "amount"); err != nil {
		return nil, err
	}

	code := req.Currency
	if code == "" {
		code = "USD"
	}
	fxRate := req.FxRate
	if fxRate.Sign() <= 0 {
		fxRate = currency.DefaultFxRate()
	}

	draft := &models.Spend{
		Amount:           s.normalizer.Round(req.Amount, code),
		Currency:         code,
		FxRate:           fxRate,
		NormalizedAmount: s.normalizer.Normalize(req.Amount, fxRate, code),
	}

	return s.assignmentService.ComputeShares(draft, code, req.Assignments)
}

// Quantum returns one minor unit of the trip's base currency, used as the
// settlement epsilon downstream.
func (s *SpendService) Quantum(baseCurrency string) decimal.Decimal {
	return s.table.MinorUnit(baseCurrency)
}
