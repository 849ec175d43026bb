package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	bookingSlotRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/bookingslot"
	createBooking "github.com/m04kA/SMC-StudioService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidSlotID       = "invalid startSlotId"
	msgInvalidInput        = "invalid booking request"
	msgInvalidServiceType  = "unknown service type"
	msgUnauthorized        = "authentication required"
	msgSlotNotFound        = "the selected time slot is no longer available"
	msgInsufficientSlots   = "not enough time left that day for this service"
	msgNonConsecutiveSlots = "the selected time slots are not consecutive"
	msgSlotTaken           = "one of the selected time slots was just booked by someone else"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r.Context())
	if err != nil {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid start slot id=%q: %v", req.StartSlotID, err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidServiceType):
			h.logger.Warn("POST /bookings - Invalid service type: user_id=%s, service=%q", userID, req.ServiceType)
			handlers.RespondBadRequest(w, msgInvalidServiceType)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s: %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: user_id=%s, slot_id=%s", userID, useCaseReq.StartSlotID)
			handlers.RespondConflict(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrInsufficientSlots):
			h.logger.Warn("POST /bookings - Insufficient slots: user_id=%s, slot_id=%s", userID, useCaseReq.StartSlotID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInsufficientSlots)

		case errors.Is(err, createBooking.ErrNonConsecutiveSlots):
			h.logger.Warn("POST /bookings - Non-consecutive slots: user_id=%s, slot_id=%s", userID, useCaseReq.StartSlotID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgNonConsecutiveSlots)

		case errors.Is(err, createBooking.ErrSlotBookingFailed) && errors.Is(err, bookingSlotRepo.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /bookings - Slot taken concurrently: user_id=%s, slot_id=%s", userID, useCaseReq.StartSlotID)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, slot_id=%s, error=%v",
				userID, useCaseReq.StartSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, service=%s",
		result.ID, userID, result.ServiceType)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
