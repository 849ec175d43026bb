package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	bookingSlotRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/bookingslot"
	createBooking "github.com/m04kA/SMC-StudioService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StudioService/pkg/logger"
)

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

func doRequest(t *testing.T, h *Handler, userID *uuid.UUID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), *userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	userID := uuid.New()
	slotID := uuid.New()
	bookedAt := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:          uuid.New(),
		UserID:      userID,
		ServiceType: domain.ServiceTarot,
		BookedAt:    bookedAt,
		Date:        "2026-03-03",
		Slots: []domain.DisplaySlot{{
			ID:            slotID,
			AvailableFrom: time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC),
			Day:           "2026-03-03",
			Time:          "09:00",
		}},
		Ranges: []string{"9:00 AM - 9:30 AM"},
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := doRequest(t, h, &userID, fmt.Sprintf(`{"startSlotId":%q,"serviceType":"tarot"}`, slotID))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, userID, uc.got.UserID)
	assert.Equal(t, slotID, uc.got.StartSlotID)
	assert.Equal(t, domain.ServiceTarot, uc.got.ServiceType)
	assert.Nil(t, uc.got.Date)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "tarot", body.ServiceType)
	assert.Equal(t, []string{"9:00 AM - 9:30 AM"}, body.Ranges)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, slotID.String(), body.Slots[0].ID)
	assert.Equal(t, "09:00", body.Slots[0].Time)
}

func TestHandle_Unauthenticated(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.NewNop())

	rec := doRequest(t, h, nil, `{"startSlotId":"x","serviceType":"tarot"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got)
}

func TestHandle_BadBody(t *testing.T) {
	userID := uuid.New()
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"startSlotId":`},
		{name: "unknown field", body: `{"startSlotId":"x","serviceType":"tarot","price":1}`},
		{name: "invalid slot id", body: `{"startSlotId":"not-a-uuid","serviceType":"tarot"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			h := NewHandler(uc, logger.NewNop())

			rec := doRequest(t, h, &userID, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	userID := uuid.New()
	body := fmt.Sprintf(`{"startSlotId":%q,"serviceType":"reiki"}`, uuid.New())

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "invalid service type", err: createBooking.ErrInvalidServiceType, wantCode: http.StatusBadRequest},
		{name: "invalid input", err: createBooking.ErrInvalidInput, wantCode: http.StatusBadRequest},
		{name: "slot not found", err: createBooking.ErrSlotNotFound, wantCode: http.StatusConflict},
		{name: "insufficient slots", err: createBooking.ErrInsufficientSlots, wantCode: http.StatusUnprocessableEntity},
		{name: "non consecutive", err: createBooking.ErrNonConsecutiveSlots, wantCode: http.StatusUnprocessableEntity},
		{
			name:     "slot taken concurrently",
			err:      fmt.Errorf("%w: %w", createBooking.ErrSlotBookingFailed, bookingSlotRepo.ErrSlotAlreadyBooked),
			wantCode: http.StatusConflict,
		},
		{
			name:     "link insert failed",
			err:      fmt.Errorf("%w: %w", createBooking.ErrSlotBookingFailed, bookingSlotRepo.ErrExecQuery),
			wantCode: http.StatusInternalServerError,
		},
		{name: "booking insert failed", err: createBooking.ErrBookingCreateFailed, wantCode: http.StatusInternalServerError},
		{name: "unexpected", err: errors.New("boom"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())

			rec := doRequest(t, h, &userID, body)

			require.Equal(t, tt.wantCode, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}
