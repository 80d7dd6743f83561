// repository/trip_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/tripsplit/tripsplit-backend/models"
)

// TripRepository handles database operations for trips and their members
type TripRepository struct {
	DB *sql.DB
}

// NewTripRepository creates a new TripRepository
func NewTripRepository() *TripRepository {
	return &TripRepository{
		DB: GetDB(),
	}
}

// StoreTrip saves a trip and its initial members to the database
func (r *TripRepository) StoreTrip(trip *models.Trip) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO trips (id, code, name, base_currency, creation_time) VALUES ($1, $2, $3, $4, $5)",
		trip.ID, trip.Code, trip.Name, trip.BaseCurrency, trip.CreationTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %v", err)
	}

	for _, member := range trip.Members {
		_, err = tx.Exec(
			"INSERT INTO trip_members (trip_id, user_id, role, rsvp_status) VALUES ($1, $2, $3, $4)",
			trip.ID, member.UserID, member.Role, member.RSVPStatus,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip member: %v", err)
		}
	}

	return tx.Commit()
}

// GetTripByCode retrieves a trip by its join code
func (r *TripRepository) GetTripByCode(code string) (*models.Trip, error) {
	var trip models.Trip
	err := r.DB.QueryRow(
		"SELECT id, code, name, base_currency, creation_time FROM trips WHERE code = $1",
		code,
	).Scan(&trip.ID, &trip.Code, &trip.Name, &trip.BaseCurrency, &trip.CreationTime)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("trip not found")
		}
		return nil, fmt.Errorf("failed to get trip: %v", err)
	}

	members, err := r.GetMembers(trip.ID)
	if err != nil {
		return nil, err
	}
	trip.Members = members

	return &trip, nil
}

// GetMembers retrieves all members of a trip
func (r *TripRepository) GetMembers(tripID string) ([]models.TripMember, error) {
	rows, err := r.DB.Query(
		"SELECT trip_id, user_id, role, rsvp_status FROM trip_members WHERE trip_id = $1 ORDER BY user_id ASC",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip members: %v", err)
	}
	defer rows.Close()

	var members []models.TripMember
	for rows.Next() {
		var member models.TripMember
		if err := rows.Scan(&member.TripID, &member.UserID, &member.Role, &member.RSVPStatus); err != nil {
			return nil, fmt.Errorf("failed to scan trip member: %v", err)
		}
		members = append(members, member)
	}

	return members, nil
}

// AddMember adds a member to a trip if they are not already on it
func (r *TripRepository) AddMember(member models.TripMember) error {
	var count int
	err := r.DB.QueryRow(
		"SELECT COUNT(*) FROM trip_members WHERE trip_id = $1 AND user_id = $2",
		member.TripID, member.UserID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check trip member: %v", err)
	}

	if count > 0 {
		// Already a member
		return nil
	}

	_, err = r.DB.Exec(
		"INSERT INTO trip_members (trip_id, user_id, role, rsvp_status) VALUES ($1, $2, $3, $4)",
		member.TripID, member.UserID, member.Role, member.RSVPStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip member: %v", err)
	}

	return nil
}

// SetRole updates a member's role
func (r *TripRepository) SetRole(tripID, userID, role string) error {
	result, err := r.DB.Exec(
		"UPDATE trip_members SET role = $1 WHERE trip_id = $2 AND user_id = $3",
		role, tripID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update role: %v", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check role update: %v", err)
	}
	if affected == 0 {
		return fmt.Errorf("member not found")
	}

	return nil
}

// SetRSVP updates a member's RSVP status
func (r *TripRepository) SetRSVP(tripID, userID, rsvpStatus string) error {
	result, err := r.DB.Exec(
		"UPDATE trip_members SET rsvp_status = $1 WHERE trip_id = $2 AND user_id = $3",
		rsvpStatus, tripID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update rsvp status: %v", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rsvp update: %v", err)
	}
	if affected == 0 {
		return fmt.Errorf("member not found")
	}

	return nil
}
