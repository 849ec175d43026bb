package bookingslot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestCreateBatch_SingleStatement(t *testing.T) {
	repo, mock := newMock(t)
	bookingID, a, b := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectExec(`INSERT INTO booking_slots \(booking_id,availability_id\) VALUES \(\$1,\$2\),\(\$3,\$4\)`).
		WithArgs(bookingID, a, bookingID, b).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.CreateBatch(context.Background(), bookingID, []uuid.UUID{a, b}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBatch_UniqueViolation(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO booking_slots`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "booking_slots_availability_id_key"})

	err := repo.CreateBatch(context.Background(), uuid.New(), []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
	assert.NotErrorIs(t, err, ErrExecQuery)
}

func TestCreateBatch_OtherFailure(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO booking_slots`).WillReturnError(errors.New("connection reset"))

	err := repo.CreateBatch(context.Background(), uuid.New(), []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrSlotAlreadyBooked)
}

func TestListBookedAvailabilityIDs(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT availability_id FROM booking_slots`).
		WillReturnRows(sqlmock.NewRows([]string{"availability_id"}).AddRow(id.String()))

	ids, err := repo.ListBookedAvailabilityIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, ids)
}

func TestListSlotsByBookingIDs(t *testing.T) {
	repo, mock := newMock(t)
	b1, s1, s2 := uuid.New(), uuid.New(), uuid.New()
	at := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"booking_id", "id", "available_from"}).
		AddRow(b1.String(), s1.String(), at).
		AddRow(b1.String(), s2.String(), at.Add(30*time.Minute))

	mock.ExpectQuery(`SELECT bs.booking_id, a.id, a.available_from FROM booking_slots bs JOIN availability a ON a.id = bs.availability_id WHERE bs.booking_id IN \(\$1\)`).
		WillReturnRows(rows)

	got, err := repo.ListSlotsByBookingIDs(context.Background(), []uuid.UUID{b1})
	require.NoError(t, err)
	require.Len(t, got[b1], 2)
	assert.Equal(t, s2, got[b1][1].ID)
}
