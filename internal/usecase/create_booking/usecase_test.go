package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	bookingSlotRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/bookingslot"
	"github.com/m04kA/SMC-StudioService/internal/testutil/memstore"
	"github.com/m04kA/SMC-StudioService/internal/timeslot"
	"github.com/m04kA/SMC-StudioService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
	"github.com/m04kA/SMC-StudioService/pkg/metrics"
	"github.com/m04kA/SMC-StudioService/pkg/ptr"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *outcomeRecorder) ObserveBooking(outcome, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

// 2026-03-02 08:00 в Нью-Йорке
var testNow = time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)

const testDay = "2026-03-03"

type fixture struct {
	uc      *UseCase
	view    *get_availability.UseCase
	store   *memstore.Store
	clock   *timeslot.Clock
	metrics *outcomeRecorder
}

func setup(t *testing.T) *fixture {
	t.Helper()
	clock, err := timeslot.NewClock("America/New_York", fixedTime{t: testNow})
	require.NoError(t, err)
	store := memstore.New()
	log := logger.NewNop()
	view := get_availability.NewUseCase(store, store, clock, log)
	rec := &outcomeRecorder{}
	return &fixture{
		uc:      NewUseCase(view, store, store, clock, rec, log),
		view:    view,
		store:   store,
		clock:   clock,
		metrics: rec,
	}
}

func (f *fixture) slot(t *testing.T, label string) uuid.UUID {
	t.Helper()
	ts, err := f.clock.ParseSlotTime(types.TimeString(label), testDay)
	require.NoError(t, err)
	return f.store.AddSlot(ts)
}

func (f *fixture) free(t *testing.T) domain.GroupedAvailability {
	t.Helper()
	grouped, err := f.view.Load(context.Background())
	require.NoError(t, err)
	return grouped
}

func TestExecute_SingleSlotService(t *testing.T) {
	f := setup(t)
	slotA := f.slot(t, "10:00")
	f.slot(t, "10:30")
	user := uuid.New()

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:      user,
		StartSlotID: slotA,
		ServiceType: domain.ServiceTarot,
	})
	require.NoError(t, err)

	assert.Equal(t, user, resp.UserID)
	assert.Equal(t, testDay, resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, slotA, resp.Slots[0].ID)
	assert.Equal(t, []string{"10:00 AM - 10:30 AM"}, resp.Ranges)

	// одна запись бронирования и одна связь на тот же слот
	assert.Equal(t, 1, f.store.BookingCount())
	links := f.store.Links()
	require.Len(t, links, 1)
	assert.Equal(t, resp.ID, links[slotA])

	// занятый слот пропадает из свободных
	assert.False(t, f.free(t).Contains(slotA))
	assert.Equal(t, []string{metrics.BookingOutcomeConfirmed}, f.metrics.outcomes)
}

func TestExecute_MultiSlotService(t *testing.T) {
	f := setup(t)
	s1 := f.slot(t, "09:00")
	s2 := f.slot(t, "09:30")
	s3 := f.slot(t, "10:00")
	s4 := f.slot(t, "10:30")

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:      uuid.New(),
		StartSlotID: s1,
		ServiceType: domain.ServiceCombo,
		Date:        ptr.Ptr(testDay),
	})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, []uuid.UUID{s1, s2, s3}, []uuid.UUID{resp.Slots[0].ID, resp.Slots[1].ID, resp.Slots[2].ID})
	assert.Equal(t, []string{"9:00 AM - 10:30 AM"}, resp.Ranges)

	free := f.free(t)
	assert.True(t, free.Contains(s4))
	assert.Len(t, free[testDay], 1)
}

func TestExecute_InsufficientSlots(t *testing.T) {
	f := setup(t)
	f.slot(t, "16:00")
	start := f.slot(t, "16:30")
	f.slot(t, "17:00")

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:      uuid.New(),
		StartSlotID: start,
		ServiceType: domain.ServiceCombo,
	})
	require.ErrorIs(t, err, ErrInsufficientSlots)
	assert.Zero(t, f.store.BookingCount())
	assert.Equal(t, []string{metrics.BookingOutcomeRejected}, f.metrics.outcomes)
}

func TestExecute_NonConsecutiveSlots(t *testing.T) {
	f := setup(t)
	start := f.slot(t, "10:00")
	f.slot(t, "11:00")

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:      uuid.New(),
		StartSlotID: start,
		ServiceType: domain.ServiceReiki,
	})
	require.ErrorIs(t, err, ErrNonConsecutiveSlots)
	assert.Zero(t, f.store.BookingCount())
	assert.Empty(t, f.store.Links())
}

func TestExecute_SlotNotFound(t *testing.T) {
	f := setup(t)
	start := f.slot(t, "10:00")

	t.Run("unknown slot", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), &Request{
			UserID:      uuid.New(),
			StartSlotID: uuid.New(),
			ServiceType: domain.ServiceTarot,
		})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("slot on another day", func(t *testing.T) {
		_, err := f.uc.Execute(context.Background(), &Request{
			UserID:      uuid.New(),
			StartSlotID: start,
			ServiceType: domain.ServiceTarot,
			Date:        ptr.Ptr("2026-03-04"),
		})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("already booked slot", func(t *testing.T) {
		f.store.BookSlotDirectly(start)
		_, err := f.uc.Execute(context.Background(), &Request{
			UserID:      uuid.New(),
			StartSlotID: start,
			ServiceType: domain.ServiceTarot,
		})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}

func TestExecute_SequentialBookingOfSameSlot(t *testing.T) {
	f := setup(t)
	slotA := f.slot(t, "10:00")

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:      uuid.New(),
		StartSlotID: slotA,
		ServiceType: domain.ServiceTarot,
	})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{
		UserID:      uuid.New(),
		StartSlotID: slotA,
		ServiceType: domain.ServiceTarot,
	})
	require.ErrorIs(t, err, ErrSlotNotFound)
	assert.Equal(t, 1, f.store.BookingCount())
}

func TestExecute_InvalidRequest(t *testing.T) {
	f := setup(t)
	start := f.slot(t, "10:00")

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{
			name: "unknown service",
			req:  &Request{UserID: uuid.New(), StartSlotID: start, ServiceType: "massage"},
			want: ErrInvalidServiceType,
		},
		{
			name: "missing user",
			req:  &Request{StartSlotID: start, ServiceType: domain.ServiceTarot},
			want: ErrInvalidInput,
		},
		{
			name: "missing slot",
			req:  &Request{UserID: uuid.New(), ServiceType: domain.ServiceTarot},
			want: ErrInvalidInput,
		},
		{
			name: "bad date",
			req:  &Request{UserID: uuid.New(), StartSlotID: start, ServiceType: domain.ServiceTarot, Date: ptr.Ptr("03/03/2026")},
			want: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, f.store.BookingCount())
}

func TestExecute_LinkFailureRollsBackBooking(t *testing.T) {
	f := setup(t)
	start := f.slot(t, "10:00")
	f.slot(t, "10:30")
	f.store.FailLinkInsert = true

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:      uuid.New(),
		StartSlotID: start,
		ServiceType: domain.ServiceReiki,
	})
	require.ErrorIs(t, err, ErrSlotBookingFailed)

	assert.Zero(t, f.store.BookingCount())
	assert.Empty(t, f.store.Links())
	assert.Equal(t, []string{metrics.BookingOutcomeRolledBack}, f.metrics.outcomes)
}

func TestExecute_ConcurrentTakeRollsBack(t *testing.T) {
	f := setup(t)
	start := f.slot(t, "10:00")
	second := f.slot(t, "10:30")

	// другой клиент занимает второй слот между чтением и записью связей
	f.store.BeforeLinkInsert = func() {
		f.store.BeforeLinkInsert = nil
		f.store.BookSlotDirectly(second)
	}

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:      uuid.New(),
		StartSlotID: start,
		ServiceType: domain.ServiceReiki,
	})
	require.ErrorIs(t, err, ErrSlotBookingFailed)
	assert.ErrorIs(t, err, bookingSlotRepo.ErrSlotAlreadyBooked)

	// остаётся только бронирование конкурента
	assert.Equal(t, 1, f.store.BookingCount())
	links := f.store.Links()
	require.Len(t, links, 1)
	_, ok := links[start]
	assert.False(t, ok)
	assert.True(t, f.free(t).Contains(start))
}

func TestExecute_CompensationFailure(t *testing.T) {
	f := setup(t)
	start := f.slot(t, "10:00")
	f.store.FailLinkInsert = true
	f.store.FailBookingDelete = true

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:      uuid.New(),
		StartSlotID: start,
		ServiceType: domain.ServiceTarot,
	})
	require.ErrorIs(t, err, ErrSlotBookingFailed)
	assert.ErrorIs(t, err, memstore.ErrInjected)
	assert.Equal(t, []string{metrics.BookingOutcomeCompensationFailed}, f.metrics.outcomes)
}

func TestExecute_RollbackSurvivesCanceledContext(t *testing.T) {
	f := setup(t)
	start := f.slot(t, "10:00")

	ctx, cancel := context.WithCancel(context.Background())
	f.store.BeforeLinkInsert = cancel
	f.store.FailLinkInsert = true

	_, err := f.uc.Execute(ctx, &Request{
		UserID:      uuid.New(),
		StartSlotID: start,
		ServiceType: domain.ServiceTarot,
	})
	require.ErrorIs(t, err, ErrSlotBookingFailed)
	assert.Zero(t, f.store.BookingCount())
}

func TestExecute_BookingCreateFailed(t *testing.T) {
	f := setup(t)
	start := f.slot(t, "10:00")
	f.store.FailBookingCreate = true

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:      uuid.New(),
		StartSlotID: start,
		ServiceType: domain.ServiceTarot,
	})
	require.ErrorIs(t, err, ErrBookingCreateFailed)
	assert.Empty(t, f.store.Links())
}

func TestExecute_AvailabilityReadFailure(t *testing.T) {
	f := setup(t)
	start := f.slot(t, "10:00")
	f.store.FailReads = true

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:      uuid.New(),
		StartSlotID: start,
		ServiceType: domain.ServiceTarot,
	})
	require.ErrorIs(t, err, ErrInternal)
}
