// repository/spend_repository.go
package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/tripsplit/tripsplit-backend/models"
)

// ErrSpendNotFound reports a spend that does not exist on the trip, as
// opposed to a storage failure.
var ErrSpendNotFound = errors.New("spend not found")

// SpendRepository handles database operations for spends and assignments
type SpendRepository struct {
	DB *sql.DB
}

// NewSpendRepository creates a new SpendRepository
func NewSpendRepository() *SpendRepository {
	return &SpendRepository{
		DB: GetDB(),
	}
}

// StoreSpend saves a spend to the database
func (r *SpendRepository) StoreSpend(spend *models.Spend) error {
	_, err := r.DB.Exec(
		`INSERT INTO spends
         (id, trip_id, description, amount, currency, fx_rate, normalized_amount,
          paid_by, status, creation_time, receipt_image)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		spend.ID, spend.TripID, spend.Description, spend.Amount, spend.Currency,
		spend.FxRate, spend.NormalizedAmount, spend.PaidBy, spend.Status,
		spend.CreationTime, spend.ReceiptImage,
	)
	if err != nil {
		return fmt.Errorf("failed to insert spend: %v", err)
	}
	return nil
}

// GetSpend retrieves one spend of a trip
func (r *SpendRepository) GetSpend(tripID, spendID string) (*models.Spend, error) {
	var spend models.Spend
	var receiptImage sql.NullString

	err := r.DB.QueryRow(
		`SELECT id, trip_id, description, amount, currency, fx_rate, normalized_amount,
          paid_by, status, creation_time, receipt_image
         FROM spends WHERE id = $1 AND trip_id = $2`,
		spendID, tripID,
	).Scan(
		&spend.ID, &spend.TripID, &spend.Description, &spend.Amount, &spend.Currency,
		&spend.FxRate, &spend.NormalizedAmount, &spend.PaidBy, &spend.Status,
		&spend.CreationTime, &receiptImage,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSpendNotFound
		}
		return nil, fmt.Errorf("failed to get spend: %v", err)
	}

	if receiptImage.Valid {
		spend.ReceiptImage = receiptImage.String
	}

	return &spend, nil
}

// GetSpends retrieves all spends for a trip in insertion order
func (r *SpendRepository) GetSpends(tripID string) ([]*models.Spend, error) {
	rows, err := r.DB.Query(
		`SELECT id, trip_id, description, amount, currency, fx_rate, normalized_amount,
          paid_by, status, creation_time, receipt_image
         FROM spends WHERE trip_id = $1 ORDER BY creation_time ASC`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get spends: %v", err)
	}
	defer rows.Close()

	var spends []*models.Spend
	for rows.Next() {
		var spend models.Spend
		var receiptImage sql.NullString

		err = rows.Scan(
			&spend.ID, &spend.TripID, &spend.Description, &spend.Amount, &spend.Currency,
			&spend.FxRate, &spend.NormalizedAmount, &spend.PaidBy, &spend.Status,
			&spend.CreationTime, &receiptImage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan spend: %v", err)
		}

		if receiptImage.Valid {
			spend.ReceiptImage = receiptImage.String
		}

		spends = append(spends, &spend)
	}

	return spends, nil
}

// UpdateSpend rewrites a spend's mutable fields
func (r *SpendRepository) UpdateSpend(spend *models.Spend) error {
	_, err := r.DB.Exec(
		`UPDATE spends SET description = $1, amount = $2, currency = $3, fx_rate = $4,
          normalized_amount = $5, paid_by = $6, receipt_image = $7 WHERE id = $8`,
		spend.Description, spend.Amount, spend.Currency, spend.FxRate,
		spend.NormalizedAmount, spend.PaidBy, spend.ReceiptImage, spend.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update spend: %v", err)
	}
	return nil
}

// RemoveSpend removes a spend and cascades its assignments
func (r *SpendRepository) RemoveSpend(tripID, spendID string) (bool, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRow(
		"SELECT COUNT(*) FROM spends WHERE id = $1 AND trip_id = $2",
		spendID, tripID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check spend: %v", err)
	}
	if count == 0 {
		return false, nil
	}

	if _, err = tx.Exec("DELETE FROM assignments WHERE spend_id = $1", spendID); err != nil {
		return false, fmt.Errorf("failed to delete assignments: %v", err)
	}
	if _, err = tx.Exec("DELETE FROM spends WHERE id = $1", spendID); err != nil {
		return false, fmt.Errorf("failed to delete spend: %v", err)
	}

	return true, tx.Commit()
}

// GetAssignments retrieves the assignments of one spend in insertion order
func (r *SpendRepository) GetAssignments(spendID string) ([]models.Assignment, error) {
	return scanAssignments(r.DB.Query(
		`SELECT id, spend_id, user_id, split_type, split_value, share_amount, normalized_share_amount
         FROM assignments WHERE spend_id = $1 ORDER BY seq ASC`,
		spendID,
	))
}

// GetAssignmentsByTrip retrieves all assignments across a trip's spends
func (r *SpendRepository) GetAssignmentsByTrip(tripID string) ([]models.Assignment, error) {
	return scanAssignments(r.DB.Query(
		`SELECT a.id, a.spend_id, a.user_id, a.split_type, a.split_value, a.share_amount, a.normalized_share_amount
         FROM assignments a JOIN spends s ON s.id = a.spend_id
         WHERE s.trip_id = $1 ORDER BY a.seq ASC`,
		tripID,
	))
}

func scanAssignments(rows *sql.Rows, err error) ([]models.Assignment, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %v", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var a models.Assignment
		err = rows.Scan(&a.ID, &a.SpendID, &a.UserID, &a.SplitType, &a.SplitValue,
			&a.ShareAmount, &a.NormalizedShareAmount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %v", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, nil
}

// UpsertAssignments inserts or replaces assignments per (spend_id, user_id)
// inside a single transaction, so a batch never lands partially.
func (r *SpendRepository) UpsertAssignments(assignments []models.Assignment) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if err := insertAssignments(tx, assignments); err != nil {
		return err
	}

	return tx.Commit()
}

// ReplaceAssignments deletes a spend's current assignments and inserts the
// new set in one transaction, so no stale assignment survives a bulk edit.
func (r *SpendRepository) ReplaceAssignments(spendID string, assignments []models.Assignment) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM assignments WHERE spend_id = $1", spendID); err != nil {
		return fmt.Errorf("failed to delete assignments: %v", err)
	}
	if err := insertAssignments(tx, assignments); err != nil {
		return err
	}

	return tx.Commit()
}

func insertAssignments(tx *sql.Tx, assignments []models.Assignment) error {
	for _, a := range assignments {
		_, err := tx.Exec(
			`INSERT INTO assignments
             (id, spend_id, user_id, split_type, split_value, share_amount, normalized_share_amount)
             VALUES ($1, $2, $3, $4, $5, $6, $7)
             ON CONFLICT (spend_id, user_id) DO UPDATE SET
               split_type = EXCLUDED.split_type,
               split_value = EXCLUDED.split_value,
               share_amount = EXCLUDED.share_amount,
               normalized_share_amount = EXCLUDED.normalized_share_amount`,
			a.ID, a.SpendID, a.UserID, a.SplitType, a.SplitValue,
			a.ShareAmount, a.NormalizedShareAmount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %v", err)
		}
	}
	return nil
}

// RemoveAssignment deletes one user's assignment from a spend
func (r *SpendRepository) RemoveAssignment(spendID, userID string) (bool, error) {
	result, err := r.DB.Exec(
		"DELETE FROM assignments WHERE spend_id = $1 AND user_id = $2",
		spendID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete assignment: %v", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check assignment delete: %v", err)
	}
	return affected > 0, nil
}

// TransitionSpendStatus moves a spend between OPEN and CLOSED atomically.
// The spend row is locked for the duration, the current assignments are read
// and handed to validate, and the status is only written if validate passes.
// Finalize and reopen therefore cannot race each other on the same spend.
func (r *SpendRepository) TransitionSpendStatus(tripID, spendID, status string, validate func(*models.Spend, []models.Assignment) error) (*models.Spend, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	var spend models.Spend
	var receiptImage sql.NullString
	err = tx.QueryRow(
		`SELECT id, trip_id, description, amount, currency, fx_rate, normalized_amount,
          paid_by, status, creation_time, receipt_image
         FROM spends WHERE id = $1 AND trip_id = $2 FOR UPDATE`,
		spendID, tripID,
	).Scan(
		&spend.ID, &spend.TripID, &spend.Description, &spend.Amount, &spend.Currency,
		&spend.FxRate, &spend.NormalizedAmount, &spend.PaidBy, &spend.Status,
		&spend.CreationTime, &receiptImage,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSpendNotFound
		}
		return nil, fmt.Errorf("failed to get spend: %v", err)
	}
	if receiptImage.Valid {
		spend.ReceiptImage = receiptImage.String
	}

	if validate != nil {
		assignments, err := scanAssignments(tx.Query(
			`SELECT id, spend_id, user_id, split_type, split_value, share_amount, normalized_share_amount
             FROM assignments WHERE spend_id = $1 ORDER BY seq ASC`,
			spendID,
		))
		if err != nil {
			return nil, err
		}
		if err := validate(&spend, assignments); err != nil {
			return nil, err
		}
	}

	if spend.Status != status {
		if _, err = tx.Exec("UPDATE spends SET status = $1 WHERE id = $2", status, spendID); err != nil {
			return nil, fmt.Errorf("failed to update spend status: %v", err)
		}
		spend.Status = status
	}

	return &spend, tx.Commit()
}
