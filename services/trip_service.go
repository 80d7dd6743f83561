// services/trip_service.go
package services

import (
	"strings"

	"github.com/tripsplit/tripsplit-backend/currency"
	"github.com/tripsplit/tripsplit-backend/models"
	"github.com/tripsplit/tripsplit-backend/utils"
)

// TripService handles trip and membership business logic
type TripService struct {
	tripRepo TripStore
}

// NewTripService creates a new trip service
func NewTripService(tripRepo TripStore) *TripService {
	return &TripService{tripRepo: tripRepo}
}

// CreateTrip creates a trip with its creator as accepted owner. The base
// currency is fixed at creation; all balances are reported in it.
func (s *TripService) CreateTrip(name, baseCurrency, ownerID string) (*models.Trip, error) {
	if err := utils.ValidateRequired(name, "name"); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(baseCurrency))
	if err := currency.ValidateCode(code); err != nil {
		return nil, utils.NewBadRequestError(err.Error())
	}

	trip := models.NewTrip(utils.GenerateID(), utils.GenerateCode(), name, code, ownerID)

	if err := s.tripRepo.StoreTrip(trip); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	return trip, nil
}

// GetTripByCode retrieves a trip by its join code
func (s *TripService) GetTripByCode(code string) (*models.Trip, error) {
	trip, err := s.tripRepo.GetTripByCode(code)
	if err != nil {
		return nil, utils.NewNotFoundError("Trip")
	}
	return trip, nil
}

// JoinTrip adds a user to a trip. Joining twice is a no-op.
func (s *TripService) JoinTrip(trip *models.Trip, userID, role string) (models.TripMember, error) {
	if role == "" {
		role = utils.RoleMember
	}
	if role != utils.RoleOwner && role != utils.RoleMember && role != utils.RoleViewer {
		return models.TripMember{}, utils.NewBadRequestError("invalid role")
	}

	member := models.TripMember{
		TripID:     trip.ID,
		UserID:     userID,
		Role:       role,
		RSVPStatus: utils.RSVPPending,
	}

	if err := s.tripRepo.AddMember(member); err != nil {
		return models.TripMember{}, utils.NewInternalError(utils.ErrFailedToStore)
	}

	return member, nil
}

// SetRole updates a member's role
func (s *TripService) SetRole(trip *models.Trip, userID, role string) error {
	if role != utils.RoleOwner && role != utils.RoleMember && role != utils.RoleViewer {
		return utils.NewBadRequestError("invalid role")
	}

	if err := s.tripRepo.SetRole(trip.ID, userID, role); err != nil {
		return utils.NewNotFoundError("Member")
	}

	return nil
}

// SetRSVP updates a member's RSVP status
func (s *TripService) SetRSVP(trip *models.Trip, userID, rsvpStatus string) error {
	if rsvpStatus != utils.RSVPPending && rsvpStatus != utils.RSVPAccepted && rsvpStatus != utils.RSVPDeclined {
		return utils.NewBadRequestError("invalid rsvp status")
	}

	if err := s.tripRepo.SetRSVP(trip.ID, userID, rsvpStatus); err != nil {
		return utils.NewNotFoundError("Member")
	}

	return nil
}
