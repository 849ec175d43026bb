package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
)

type fakeEvents struct {
	events []domain.Event
	err    error
}

func (f *fakeEvents) ListAll(_ context.Context) ([]domain.Event, error) {
	return f.events, f.err
}

type fixedLocation struct{ loc *time.Location }

func (c fixedLocation) Location() *time.Location { return c.loc }

func newYork(t *testing.T) fixedLocation {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return fixedLocation{loc: loc}
}

func TestList(t *testing.T) {
	start := time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	repo := &fakeEvents{events: []domain.Event{
		{ID: uuid.New(), Title: "Full Moon Circle", StartDate: start, EndDate: &end, Location: "Studio", Address: "12 Main St"},
		{ID: uuid.New(), Title: "Crystal Fair", StartDate: start.Add(24 * time.Hour), Address: "Town Hall"},
	}}
	svc := NewService(repo, newYork(t), logger.NewNop())

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Full Moon Circle", got[0].Title)
	assert.Equal(t, "2026-03-03T14:00:00Z", got[0].StartDate)
	require.NotNil(t, got[0].EndDate)
	assert.Equal(t, "2026-03-03T15:30:00Z", *got[0].EndDate)
	assert.Equal(t, "Mar 3, 2026, 9:00 AM - Mar 3, 2026, 10:30 AM", got[0].When)
	assert.Equal(t, "Studio, 12 Main St", got[0].Place)

	assert.Nil(t, got[1].EndDate)
	assert.Equal(t, "Mar 4, 2026, 9:00 AM", got[1].When)
	assert.Equal(t, "Town Hall", got[1].Place)
}

func TestList_Empty(t *testing.T) {
	svc := NewService(&fakeEvents{}, newYork(t), logger.NewNop())

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_RepositoryError(t *testing.T) {
	svc := NewService(&fakeEvents{err: errors.New("db down")}, newYork(t), logger.NewNop())

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
