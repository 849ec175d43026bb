package create_checkout_session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	createCheckoutSession "github.com/m04kA/SMC-StudioService/internal/usecase/create_checkout_session"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingFields      = "user_id and a non-empty cart are required"
	msgUserNotFound       = "user not found"
	msgProductNotFound    = "one or more products in the cart no longer exist"
	msgInsufficientStock  = "not enough stock for one or more items in the cart"
	msgPaymentProvider    = "payment provider is unavailable, try again later"
	msgInternal           = "failed to create checkout session"
)

type Handler struct {
	useCase CreateCheckoutSessionUseCase
	logger  Logger
}

func NewHandler(useCase CreateCheckoutSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/create-checkout-session
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		h.logger.Warn("POST /create-checkout-session - Invalid request body: %v", err)
		respondError(w, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createCheckoutSession.ErrInvalidInput):
			respondError(w, http.StatusBadRequest, msgMissingFields)

		case errors.Is(err, createCheckoutSession.ErrUserNotFound):
			respondError(w, http.StatusNotFound, msgUserNotFound)

		case errors.Is(err, createCheckoutSession.ErrProductNotFound):
			respondError(w, http.StatusBadRequest, msgProductNotFound)

		case errors.Is(err, createCheckoutSession.ErrInsufficientStock):
			respondError(w, http.StatusBadRequest, msgInsufficientStock)

		case errors.Is(err, createCheckoutSession.ErrPaymentProvider):
			h.logger.Error("POST /create-checkout-session - Provider error: user_id=%s, error=%v", req.UserID, err)
			respondError(w, http.StatusBadGateway, msgPaymentProvider)

		default:
			h.logger.Error("POST /create-checkout-session - Failed: user_id=%s, error=%v", req.UserID, err)
			respondError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	h.logger.Info("POST /create-checkout-session - Session created: session_id=%s, user_id=%s", result.SessionID, req.UserID)
	handlers.RespondJSON(w, http.StatusOK, CheckoutResponse{URL: result.URL})
}

func respondError(w http.ResponseWriter, status int, message string) {
	handlers.RespondJSON(w, status, CheckoutErrorResponse{Error: message})
}
