package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/testutil/memstore"
	"github.com/m04kA/SMC-StudioService/internal/timeslot"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
	"github.com/m04kA/SMC-StudioService/pkg/ptr"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

// 2026-03-02 08:00 в Нью-Йорке
var testNow = time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*UseCase, *memstore.Store, *timeslot.Clock) {
	t.Helper()
	clock, err := timeslot.NewClock("America/New_York", fixedTime{t: testNow})
	require.NoError(t, err)
	store := memstore.New()
	return NewUseCase(store, store, clock, logger.NewNop()), store, clock
}

func at(t *testing.T, clock *timeslot.Clock, day, label string) time.Time {
	t.Helper()
	ts, err := clock.ParseSlotTime(types.TimeString(label), day)
	require.NoError(t, err)
	return ts
}

func TestLoad_FiltersPastAndBookedAndGroups(t *testing.T) {
	uc, store, clock := setup(t)

	past := store.AddSlot(at(t, clock, "2026-03-02", "07:30"))
	booked := store.AddSlot(at(t, clock, "2026-03-02", "09:00"))
	free2 := store.AddSlot(at(t, clock, "2026-03-02", "10:00"))
	free1 := store.AddSlot(at(t, clock, "2026-03-02", "09:30"))
	nextDay := store.AddSlot(at(t, clock, "2026-03-03", "09:00"))
	store.BookSlotDirectly(booked)

	grouped, err := uc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-03-02", "2026-03-03"}, grouped.Days())
	require.Len(t, grouped["2026-03-02"], 2)
	assert.Equal(t, free1, grouped["2026-03-02"][0].ID)
	assert.Equal(t, free2, grouped["2026-03-02"][1].ID)
	assert.Equal(t, types.TimeString("09:30"), grouped["2026-03-02"][0].Time)
	assert.Equal(t, nextDay, grouped["2026-03-03"][0].ID)
	assert.False(t, grouped.Contains(past))
	assert.False(t, grouped.Contains(booked))
}

func TestLoad_IsIdempotent(t *testing.T) {
	uc, store, clock := setup(t)
	for _, l := range []string{"09:00", "09:30", "11:00"} {
		store.AddSlot(at(t, clock, "2026-03-04", l))
	}

	first, err := uc.Load(context.Background())
	require.NoError(t, err)
	second, err := uc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_DateFilterAndRanges(t *testing.T) {
	uc, store, clock := setup(t)
	for _, l := range []string{"09:00", "09:30", "10:00", "11:00"} {
		store.AddSlot(at(t, clock, "2026-03-04", l))
	}
	store.AddSlot(at(t, clock, "2026-03-05", "09:00"))

	resp, err := uc.Execute(context.Background(), &Request{Date: ptr.Ptr("2026-03-04")})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "2026-03-04", resp.Days[0].Date)
	assert.Len(t, resp.Days[0].Slots, 4)
	assert.Equal(t, []string{"9:00 AM - 10:30 AM", "11:00 AM - 11:30 AM"}, resp.Days[0].Ranges)

	all, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Len(t, all.Days, 2)
}

func TestExecute_InvalidDate(t *testing.T) {
	uc, _, _ := setup(t)

	_, err := uc.Execute(context.Background(), &Request{Date: ptr.Ptr("04/03/2026")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoad_RepositoryFailure(t *testing.T) {
	uc, store, _ := setup(t)
	store.FailReads = true

	_, err := uc.Load(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
