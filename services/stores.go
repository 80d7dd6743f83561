package services

import "github.com/tripsplit/tripsplit-backend/models"

// Storage interfaces consumed by the services. The repository package's
// concrete types satisfy them; tests substitute in-memory fakes.

// SpendStore persists spends and their assignments.
type SpendStore interface {
	StoreSpend(spend *models.Spend) error
	GetSpend(tripID, spendID string) (*models.Spend, error)
	GetSpends(tripID string) ([]*models.Spend, error)
	UpdateSpend(spend *models.Spend) error
	RemoveSpend(tripID, spendID string) (bool, error)
	GetAssignments(spendID string) ([]models.Assignment, error)
	GetAssignmentsByTrip(tripID string) ([]models.Assignment, error)
	UpsertAssignments(assignments []models.Assignment) error
	ReplaceAssignments(spendID string, assignments []models.Assignment) error
	RemoveAssignment(spendID, userID string) (bool, error)
	TransitionSpendStatus(tripID, spendID, status string, validate func(*models.Spend, []models.Assignment) error) (*models.Spend, error)
}

// TripStore persists trips and their members.
type TripStore interface {
	StoreTrip(trip *models.Trip) error
	GetTripByCode(code string) (*models.Trip, error)
	GetMembers(tripID string) ([]models.TripMember, error)
	AddMember(member models.TripMember) error
	SetRole(tripID, userID, role string) error
	SetRSVP(tripID, userID, rsvpStatus string) error
}

// PaymentStore persists the payment ledger.
type PaymentStore interface {
	CreatePayment(payment *models.Payment) error
	GetPaymentsByTripID(tripID string) ([]models.Payment, error)
	GetPaymentByID(paymentID int) (*models.Payment, error)
	DeletePayment(paymentID int) error
}
