package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listQuery = `SELECT id, title, description, start_date, end_date, location, address, image FROM events ORDER BY start_date ASC, id ASC`

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestListAll(t *testing.T) {
	repo, mock := newMock(t)

	first, second := uuid.New(), uuid.New()
	start := time.Date(2026, 4, 4, 23, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	rows := sqlmock.NewRows(eventColumns).
		AddRow(first.String(), "Full Moon Circle", "Meditation", start, end, "Studio", "12 Main St", "moon.png").
		AddRow(second.String(), "Crystal Fair", "", start.Add(48*time.Hour), nil, "", "", "")

	mock.ExpectQuery(listQuery).WillReturnRows(rows)

	events, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, first, events[0].ID)
	assert.Equal(t, start, events[0].StartDate)
	require.NotNil(t, events[0].EndDate)
	assert.Equal(t, end, *events[0].EndDate)
	assert.Equal(t, "Studio, 12 Main St", events[0].Place())

	assert.Equal(t, second, events[1].ID)
	assert.Nil(t, events[1].EndDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAll_QueryError(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(listQuery).WillReturnError(errors.New("connection reset"))

	_, err := repo.ListAll(context.Background())
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}
