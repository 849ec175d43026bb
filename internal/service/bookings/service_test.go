package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-StudioService/internal/testutil/memstore"
	"github.com/m04kA/SMC-StudioService/internal/timeslot"
	"github.com/m04kA/SMC-StudioService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type profiles map[uuid.UUID]*domain.Profile

func (p profiles) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	if profile, ok := p[id]; ok {
		return profile, nil
	}
	return nil, profileRepo.ErrProfileNotFound
}

type inlineTx struct{ calls int }

func (tx *inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

// 2026-03-02 08:00 в Нью-Йорке
var testNow = time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)

type fixture struct {
	svc   *Service
	store *memstore.Store
	clock *timeslot.Clock
	tx    *inlineTx
	admin uuid.UUID
}

func setup(t *testing.T) *fixture {
	t.Helper()
	clock, err := timeslot.NewClock("America/New_York", fixedTime{t: testNow})
	require.NoError(t, err)
	store := memstore.New()
	admin := uuid.New()
	profs := profiles{admin: {ID: admin, Name: "Admin", Role: domain.RoleAdmin}}
	tx := &inlineTx{}
	return &fixture{
		svc:   NewService(store, store, profs, tx, clock, logger.NewNop()),
		store: store,
		clock: clock,
		tx:    tx,
		admin: admin,
	}
}

func (f *fixture) slot(t *testing.T, day, label string) uuid.UUID {
	t.Helper()
	ts, err := f.clock.ParseSlotTime(types.TimeString(label), day)
	require.NoError(t, err)
	return f.store.AddSlot(ts)
}

func TestCancel_FreesSlots(t *testing.T) {
	f := setup(t)
	view := get_availability.NewUseCase(f.store, f.store, f.clock, logger.NewNop())
	user := uuid.New()
	s1 := f.slot(t, "2026-03-03", "09:00")
	s2 := f.slot(t, "2026-03-03", "09:30")
	bookingID := f.store.BookFor(user, domain.ServiceReiki, s1, s2)

	before, err := view.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, before.Contains(s1))
	assert.False(t, before.Contains(s2))

	require.NoError(t, f.svc.Cancel(context.Background(), bookingID, user))
	assert.Equal(t, 1, f.tx.calls)
	assert.Zero(t, f.store.BookingCount())

	after, err := view.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, after["2026-03-03"], 2)
	assert.Equal(t, s1, after["2026-03-03"][0].ID)
	assert.Equal(t, s2, after["2026-03-03"][1].ID)
}

func TestCancel_Access(t *testing.T) {
	f := setup(t)
	owner := uuid.New()
	s1 := f.slot(t, "2026-03-03", "09:00")

	t.Run("stranger is denied", func(t *testing.T) {
		id := f.store.BookFor(owner, domain.ServiceTarot, s1)
		err := f.svc.Cancel(context.Background(), id, uuid.New())
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Equal(t, 1, f.store.BookingCount())
		require.NoError(t, f.svc.Cancel(context.Background(), id, owner))
	})

	t.Run("admin may cancel", func(t *testing.T) {
		id := f.store.BookFor(owner, domain.ServiceTarot, s1)
		require.NoError(t, f.svc.Cancel(context.Background(), id, f.admin))
		assert.Zero(t, f.store.BookingCount())
	})

	t.Run("unknown booking", func(t *testing.T) {
		err := f.svc.Cancel(context.Background(), uuid.New(), owner)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetByID(t *testing.T) {
	f := setup(t)
	owner := uuid.New()
	s1 := f.slot(t, "2026-03-03", "14:00")
	s2 := f.slot(t, "2026-03-03", "14:30")
	s3 := f.slot(t, "2026-03-03", "15:00")
	id := f.store.BookFor(owner, domain.ServiceCombo, s3, s1, s2)

	resp, err := f.svc.GetByID(context.Background(), id, owner)
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceCombo, resp.ServiceType)
	assert.Equal(t, "2026-03-03", resp.Date)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("14:00"), resp.Slots[0].Time)
	assert.Equal(t, []string{"2:00 PM - 3:30 PM"}, resp.Ranges)

	_, err = f.svc.GetByID(context.Background(), id, uuid.New())
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(context.Background(), id, f.admin)
	assert.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), uuid.New(), owner)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListUserUpcoming(t *testing.T) {
	f := setup(t)
	user := uuid.New()
	past := f.slot(t, "2026-03-01", "10:00")
	later := f.slot(t, "2026-03-05", "10:00")
	sooner := f.slot(t, "2026-03-03", "10:00")
	other := f.slot(t, "2026-03-03", "11:00")

	f.store.BookFor(user, domain.ServiceTarot, past)
	laterID := f.store.BookFor(user, domain.ServiceTarot, later)
	soonerID := f.store.BookFor(user, domain.ServiceTarot, sooner)
	f.store.BookFor(uuid.New(), domain.ServiceTarot, other)
	f.store.BookFor(user, domain.ServiceTarot) // без слотов

	resp, err := f.svc.ListUserUpcoming(context.Background(), user)
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, soonerID, resp.Bookings[0].ID)
	assert.Equal(t, laterID, resp.Bookings[1].ID)
}

func TestListAll(t *testing.T) {
	f := setup(t)
	s1 := f.slot(t, "2026-03-03", "10:00")
	f.store.BookFor(uuid.New(), domain.ServiceTarot, s1)
	f.store.BookFor(uuid.New(), domain.ServiceTarot)

	resp, err := f.svc.ListAll(context.Background(), f.admin)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = f.svc.ListAll(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListUserUpcoming_RepositoryError(t *testing.T) {
	f := setup(t)
	f.store.FailReads = true

	_, err := f.svc.ListUserUpcoming(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}
