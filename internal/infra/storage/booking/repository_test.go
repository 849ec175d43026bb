package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestCreate_AssignsIDAndBookedAt(t *testing.T) {
	repo, mock := newMock(t)
	userID := uuid.New()
	bookedAt := time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO bookings \(id,user_id,service_type\) VALUES \(\$1,\$2,\$3\) RETURNING booked_at`).
		WithArgs(sqlmock.AnyArg(), userID, "tarot").
		WillReturnRows(sqlmock.NewRows([]string{"booked_at"}).AddRow(bookedAt))

	b, err := repo.Create(context.Background(), &domain.Booking{UserID: userID, ServiceType: domain.ServiceTarot})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, b.ID)
	assert.Equal(t, bookedAt, b.BookedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT id, user_id, service_type, booked_at FROM bookings WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListByUserID(t *testing.T) {
	repo, mock := newMock(t)
	userID := uuid.New()
	now := time.Now().UTC()

	rows := sqlmock.NewRows(bookingColumns).
		AddRow(uuid.New().String(), userID.String(), "combo", now).
		AddRow(uuid.New().String(), userID.String(), "reiki", now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT .* FROM bookings WHERE user_id = \$1 ORDER BY booked_at DESC`).
		WithArgs(userID).
		WillReturnRows(rows)

	list, err := repo.ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.ServiceCombo, list[0].ServiceType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock := newMock(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), id))

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrBookingNotFound)
}
