package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tripsplit/tripsplit-backend/currency"
	"github.com/tripsplit/tripsplit-backend/models"
	"github.com/tripsplit/tripsplit-backend/repository"
	"github.com/tripsplit/tripsplit-backend/utils"
)

// fakeSpendStore is an in-memory SpendStore. Setting failWith makes every
// call surface that error, mimicking a storage outage.
type fakeSpendStore struct {
	spends      map[string]*models.Spend
	assignments map[string][]models.Assignment
	failWith    error
}

func newFakeSpendStore(spends ...*models.Spend) *fakeSpendStore {
	store := &fakeSpendStore{
		spends:      make(map[string]*models.Spend),
		assignments: make(map[string][]models.Assignment),
	}
	for _, spend := range spends {
		store.spends[spend.ID] = spend
	}
	return store
}

func (f *fakeSpendStore) StoreSpend(spend *models.Spend) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.spends[spend.ID] = spend
	return nil
}

func (f *fakeSpendStore) GetSpend(tripID, spendID string) (*models.Spend, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	spend, ok := f.spends[spendID]
	if !ok || spend.TripID != tripID {
		return nil, repository.ErrSpendNotFound
	}
	return spend, nil
}

func (f *fakeSpendStore) GetSpends(tripID string) ([]*models.Spend, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var spends []*models.Spend
	for _, spend := range f.spends {
		if spend.TripID == tripID {
			spends = append(spends, spend)
		}
	}
	return spends, nil
}

func (f *fakeSpendStore) UpdateSpend(spend *models.Spend) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.spends[spend.ID] = spend
	return nil
}

func (f *fakeSpendStore) RemoveSpend(tripID, spendID string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	spend, ok := f.spends[spendID]
	if !ok || spend.TripID != tripID {
		return false, nil
	}
	delete(f.spends, spendID)
	delete(f.assignments, spendID)
	return true, nil
}

func (f *fakeSpendStore) GetAssignments(spendID string) ([]models.Assignment, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.assignments[spendID], nil
}

func (f *fakeSpendStore) GetAssignmentsByTrip(tripID string) ([]models.Assignment, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var all []models.Assignment
	for spendID, batch := range f.assignments {
		if spend, ok := f.spends[spendID]; ok && spend.TripID == tripID {
			all = append(all, batch...)
		}
	}
	return all, nil
}

func (f *fakeSpendStore) UpsertAssignments(assignments []models.Assignment) error {
	if f.failWith != nil {
		return f.failWith
	}
	for _, a := range assignments {
		replaced := false
		batch := f.assignments[a.SpendID]
		for i := range batch {
			if batch[i].UserID == a.UserID {
				batch[i] = a
				replaced = true
				break
			}
		}
		if !replaced {
			batch = append(batch, a)
		}
		f.assignments[a.SpendID] = batch
	}
	return nil
}

func (f *fakeSpendStore) ReplaceAssignments(spendID string, assignments []models.Assignment) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.assignments[spendID] = assignments
	return nil
}

func (f *fakeSpendStore) RemoveAssignment(spendID, userID string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	batch := f.assignments[spendID]
	for i := range batch {
		if batch[i].UserID == userID {
			f.assignments[spendID] = append(batch[:i], batch[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSpendStore) TransitionSpendStatus(tripID, spendID, status string, validate func(*models.Spend, []models.Assignment) error) (*models.Spend, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	spend, ok := f.spends[spendID]
	if !ok || spend.TripID != tripID {
		return nil, repository.ErrSpendNotFound
	}
	if validate != nil {
		if err := validate(spend, f.assignments[spendID]); err != nil {
			return nil, err
		}
	}
	if spend.Status != status {
		spend.Status = status
	}
	return spend, nil
}

func newLifecycleService(store *fakeSpendStore) *SpendService {
	table := currency.DefaultTable()
	return NewSpendService(table, store, NewAssignmentService(table, store))
}

func lifecycleTrip() *models.Trip {
	return &models.Trip{ID: "trip-1", Code: "ABC123", Name: "Weekend", BaseCurrency: "USD"}
}

func TestFinalize_UnreconciledRejectedWithoutForce(t *testing.T) {
	spend := testSpend("100.00")
	store := newFakeSpendStore(spend)
	store.assignments[spend.ID] = []models.Assignment{
		share(spend.ID, "u1", "50.00"),
		share(spend.ID, "u2", "30.00"),
	}
	service := newLifecycleService(store)

	_, err := service.Finalize(lifecycleTrip(), spend.ID, false)

	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, utils.KindReconciliationFailed, appErr.Kind)
	assert.Equal(t, utils.SpendStatusOpen, spend.Status, "failed finalize must not close the spend")
}

func TestFinalize_ForceBypassesReconciliation(t *testing.T) {
	spend := testSpend("100.00")
	store := newFakeSpendStore(spend)
	store.assignments[spend.ID] = []models.Assignment{
		share(spend.ID, "u1", "50.00"),
		share(spend.ID, "u2", "30.00"),
	}
	service := newLifecycleService(store)

	closed, err := service.Finalize(lifecycleTrip(), spend.ID, true)

	assert.NoError(t, err)
	assert.Equal(t, utils.SpendStatusClosed, closed.Status)
	// Shares are recorded as-is, never rescaled to fill the gap.
	assert.True(t, store.assignments[spend.ID][0].NormalizedShareAmount.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, store.assignments[spend.ID][1].NormalizedShareAmount.Equal(decimal.RequireFromString("30.00")))
}

func TestFinalize_ReconciledCloses(t *testing.T) {
	spend := testSpend("100.00")
	store := newFakeSpendStore(spend)
	store.assignments[spend.ID] = []models.Assignment{
		share(spend.ID, "u1", "33.34"),
		share(spend.ID, "u2", "33.33"),
		share(spend.ID, "u3", "33.33"),
	}
	service := newLifecycleService(store)

	closed, err := service.Finalize(lifecycleTrip(), spend.ID, false)

	assert.NoError(t, err)
	assert.Equal(t, utils.SpendStatusClosed, closed.Status)
}

func TestFinalize_AlreadyClosedIsNoOp(t *testing.T) {
	spend := testSpend("100.00")
	spend.Status = utils.SpendStatusClosed
	store := newFakeSpendStore(spend)
	// Deliberately unreconciled: a repeat finalize must not re-check.
	store.assignments[spend.ID] = []models.Assignment{
		share(spend.ID, "u1", "1.00"),
	}
	service := newLifecycleService(store)

	closed, err := service.Finalize(lifecycleTrip(), spend.ID, false)

	assert.NoError(t, err)
	assert.Equal(t, utils.SpendStatusClosed, closed.Status)
}

func TestReopen_Idempotent(t *testing.T) {
	spend := testSpend("100.00")
	spend.Status = utils.SpendStatusClosed
	store := newFakeSpendStore(spend)
	service := newLifecycleService(store)
	trip := lifecycleTrip()

	reopened, err := service.Reopen(trip, spend.ID)
	assert.NoError(t, err)
	assert.Equal(t, utils.SpendStatusOpen, reopened.Status)

	// Reopening an already-OPEN spend changes nothing and does not fail.
	again, err := service.Reopen(trip, spend.ID)
	assert.NoError(t, err)
	assert.Equal(t, utils.SpendStatusOpen, again.Status)
}

func TestFinalize_MissingSpendIsNotFound(t *testing.T) {
	service := newLifecycleService(newFakeSpendStore())

	_, err := service.Finalize(lifecycleTrip(), "nope", false)

	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestFinalize_StoreFailureIsInternal(t *testing.T) {
	spend := testSpend("100.00")
	store := newFakeSpendStore(spend)
	store.failWith = errors.New("connection refused")
	service := newLifecycleService(store)

	_, err := service.Finalize(lifecycleTrip(), spend.ID, false)

	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code,
		"a storage failure must not be reported as a missing spend")
}

func TestReopen_StoreFailureIsInternal(t *testing.T) {
	spend := testSpend("100.00")
	spend.Status = utils.SpendStatusClosed
	store := newFakeSpendStore(spend)
	store.failWith = errors.New("connection refused")
	service := newLifecycleService(store)

	_, err := service.Reopen(lifecycleTrip(), spend.ID)

	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
}
