package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// These tests pin the shape of the guarded statements: each mutation
// must carry its predicate (overlap, state, ownership) inside the one
// statement the store executes, and a matched-zero-rows outcome must
// come back as a plain false. The expectations below are regular
// expressions, so a refactor that splits a guard into a separate read
// breaks the test.

func mockRepo(t *testing.T) (*ReservationRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewReservationRepo(db), mock
}

func stay(t *testing.T, in, out string) model.DateRange {
	t.Helper()
	r, err := model.ParseDateRange(in, out)
	require.NoError(t, err)
	return r
}

// The insert and its no-overlap check travel as one statement, and the
// guard counts only PENDING/CONFIRMED rows, so a CANCELLED reservation
// on the same dates does not block (cancellation frees capacity).
const createGuardQ = `(?s)INSERT INTO reservations.*SELECT.*FROM dual.*WHERE NOT EXISTS.*rs\.room_id = \?.*rs\.status IN \('PENDING','CONFIRMED'\).*NOT \(rs\.date_out <= \? OR rs\.date_in >= \?\)`

func TestCreateIfAvailable(t *testing.T) {
	repo, mock := mockRepo(t)
	s := stay(t, "2024-06-05", "2024-06-07")

	mock.ExpectExec(createGuardQ).
		WithArgs(uint64(4), uint64(101), "2024-06-05", "2024-06-07", uint64(101), "2024-06-05", "2024-06-07").
		WillReturnResult(sqlmock.NewResult(17, 1))

	id, ok, err := repo.CreateIfAvailable(context.Background(), 4, 101, s)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(17), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIfAvailableConflict(t *testing.T) {
	repo, mock := mockRepo(t)
	s := stay(t, "2024-06-04", "2024-06-07")

	mock.ExpectExec(createGuardQ).
		WithArgs(uint64(4), uint64(101), "2024-06-04", "2024-06-07", uint64(101), "2024-06-04", "2024-06-07").
		WillReturnResult(sqlmock.NewResult(0, 0))

	id, ok, err := repo.CreateIfAvailable(context.Background(), 4, 101, s)
	require.NoError(t, err)
	assert.False(t, ok, "guard rejection is a negative result, not an error")
	assert.Zero(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The transition legality rides inside the UPDATE.
const statusGuardQ = `(?s)UPDATE reservations.*SET status = \?.*WHERE id = \?.*\? = 'CONFIRMED' AND status = 'PENDING'.*\? = 'CANCELLED' AND status IN \('PENDING','CONFIRMED'\)`

func TestUpdateStatusAdmin(t *testing.T) {
	repo, mock := mockRepo(t)

	mock.ExpectExec(statusGuardQ).
		WithArgs(model.StatusConfirmed, uint64(9), model.StatusConfirmed, model.StatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.UpdateStatus(context.Background(), 9, model.StatusConfirmed, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusCustomerScoped(t *testing.T) {
	repo, mock := mockRepo(t)
	scope := uint64(4)

	mock.ExpectExec(statusGuardQ + `.*AND client_id = \?`).
		WithArgs(model.StatusCancelled, uint64(9), model.StatusCancelled, model.StatusCancelled, scope).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// someone else's reservation: no row matches, false, no error
	ok, err := repo.UpdateStatus(context.Background(), 9, model.StatusCancelled, &scope)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The reschedule guard reads from a materialized copy of the table and
// excludes the reservation's own row.
const rescheduleGuardQ = `(?s)UPDATE reservations rs.*SET rs\.date_in = \?, rs\.date_out = \?.*WHERE rs\.id = \?.*NOT EXISTS.*SELECT .* FROM reservations o.*other\.room_id = rs\.room_id.*other\.id <> rs\.id.*other\.status IN \('PENDING','CONFIRMED'\).*NOT \(other\.date_out <= \? OR other\.date_in >= \?\)`

func TestReschedule(t *testing.T) {
	repo, mock := mockRepo(t)
	s := stay(t, "2024-07-01", "2024-07-03")

	mock.ExpectExec(rescheduleGuardQ).
		WithArgs("2024-07-01", "2024-07-03", uint64(9), "2024-07-01", "2024-07-03").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Reschedule(context.Background(), 9, s, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRescheduleScopedConflict(t *testing.T) {
	repo, mock := mockRepo(t)
	s := stay(t, "2024-07-01", "2024-07-03")
	scope := uint64(4)

	mock.ExpectExec(rescheduleGuardQ + `.*AND rs\.client_id = \?`).
		WithArgs("2024-07-01", "2024-07-03", uint64(9), "2024-07-01", "2024-07-03", scope).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Reschedule(context.Background(), 9, s, &scope)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Both cascade statements carry the CANCELLED-only predicate and run in
// one transaction.
const (
	payCascadeQ = `(?s)DELETE FROM payments.*WHERE reservation_id IN.*SELECT id FROM reservations.*WHERE id = \? AND status = 'CANCELLED'`
	resDeleteQ  = `DELETE FROM reservations WHERE id = \? AND status = 'CANCELLED'`
)

func TestDeleteCancelled(t *testing.T) {
	repo, mock := mockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(payCascadeQ).WithArgs(uint64(9)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(resDeleteQ).WithArgs(uint64(9)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.Delete(context.Background(), 9, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A live reservation matches neither statement: the call reports false
// and the transaction leaves payments and reservation untouched.
func TestDeleteRequiresCancelled(t *testing.T) {
	repo, mock := mockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(payCascadeQ).WithArgs(uint64(9)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(resDeleteQ).WithArgs(uint64(9)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := repo.Delete(context.Background(), 9, nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCustomerScoped(t *testing.T) {
	repo, mock := mockRepo(t)
	scope := uint64(4)

	mock.ExpectBegin()
	mock.ExpectExec(payCascadeQ + `.*AND client_id = \?`).
		WithArgs(uint64(9), scope).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(resDeleteQ + ` AND client_id = \?`).
		WithArgs(uint64(9), scope).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := repo.Delete(context.Background(), 9, &scope)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failure after the payment delete rolls the whole transaction back;
// a half-applied cascade is never committed.
func TestDeleteRollsBackMidway(t *testing.T) {
	repo, mock := mockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(payCascadeQ).WithArgs(uint64(9)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(resDeleteQ).WithArgs(uint64(9)).WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	ok, err := repo.Delete(context.Background(), 9, nil)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
