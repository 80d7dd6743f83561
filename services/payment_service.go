package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tripsplit/tripsplit-backend/models"
	"github.com/tripsplit/tripsplit-backend/utils"
)

// PaymentService records actual payments made between members. This is a
// ledger of reality, separate from the computed transfer plan.
type PaymentService struct {
	paymentRepo PaymentStore
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo PaymentStore) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

// CreatePayment creates a new payment record
func (s *PaymentService) CreatePayment(trip *models.Trip, req *models.PaymentRequest) (*models.Payment, error) {
	if req.FromUserID == req.ToUserID {
		return nil, utils.NewBadRequestError("cannot pay yourself")
	}
	if err := utils.ValidatePositive(req.Amount, "amount"); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		TripID:      trip.ID,
		FromUserID:  req.FromUserID,
		ToUserID:    req.ToUserID,
		Amount:      req.Amount,
		Description: req.Description,
		PaymentDate: time.Now(),
		CreatedAt:   time.Now(),
	}

	if err := s.paymentRepo.CreatePayment(payment); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	return payment, nil
}

// GetPaymentsByTripID retrieves all payments for a trip
func (s *PaymentService) GetPaymentsByTripID(tripID string) ([]models.Payment, error) {
	payments, err := s.paymentRepo.GetPaymentsByTripID(tripID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return payments, nil
}

// DeletePayment deletes a payment by ID
func (s *PaymentService) DeletePayment(paymentID int) error {
	if _, err := s.paymentRepo.GetPaymentByID(paymentID); err != nil {
		return utils.NewNotFoundError("Payment")
	}
	if err := s.paymentRepo.DeletePayment(paymentID); err != nil {
		return utils.NewInternalError("Failed to delete payment")
	}
	return nil
}

// ApplyPayments adjusts net balances for payments already made: the payer's
// position improves, the receiver's shrinks.
func (s *PaymentService) ApplyPayments(balances map[string]decimal.Decimal, payments []models.Payment) map[string]decimal.Decimal {
	adjusted := make(map[string]decimal.Decimal, len(balances))
	for userID, balance := range balances {
		adjusted[userID] = balance
	}

	for _, payment := range payments {
		adjusted[payment.FromUserID] = adjusted[payment.FromUserID].Add(payment.Amount)
		adjusted[payment.ToUserID] = adjusted[payment.ToUserID].Sub(payment.Amount)
	}

	return adjusted
}
