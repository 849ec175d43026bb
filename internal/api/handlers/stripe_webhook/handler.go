package stripe_webhook

import (
	"io"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/integrations/payments"
)

const (
	signatureHeader = "Stripe-Signature"
	maxPayloadBytes = 1 << 16

	msgInvalidPayload   = "failed to read payload"
	msgInvalidSignature = "webhook signature verification failed"
	msgProcessingFailed = "failed to process event"
)

type Handler struct {
	parser  EventParser
	useCase ProcessCheckoutUseCase
	metrics Metrics
	logger  Logger
}

// NewHandler создает handler. metrics может быть nil
func NewHandler(parser EventParser, useCase ProcessCheckoutUseCase, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		parser:  parser,
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/stripe-webhook
// Подпись проверяется по сырому телу до любых изменений
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /stripe-webhook - Failed to read payload: %v", err)
		h.observe("unknown", statusRejected)
		handlers.RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidPayload})
		return
	}

	event, err := h.parser.ParseEvent(payload, r.Header.Get(signatureHeader))
	if err != nil {
		h.logger.Warn("POST /stripe-webhook - Rejected event: %v", err)
		h.observe("unknown", statusRejected)
		handlers.RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidSignature})
		return
	}

	if event.Type != payments.EventCheckoutCompleted || event.Session == nil {
		h.logger.Info("POST /stripe-webhook - Ignored event: id=%s, type=%s", event.ID, event.Type)
		h.observe(event.Type, statusIgnored)
		handlers.RespondJSON(w, http.StatusOK, AckResponse{Received: true})
		return
	}

	result, err := h.useCase.Execute(r.Context(), event.Session)
	if err != nil {
		// 5xx: провайдер повторит доставку
		h.logger.Error("POST /stripe-webhook - Failed to process event: id=%s, session=%s, error=%v",
			event.ID, event.Session.ID, err)
		h.observe(event.Type, statusFailed)
		handlers.RespondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgProcessingFailed})
		return
	}

	if result.Duplicate {
		h.observe(event.Type, statusDuplicate)
	} else {
		h.observe(event.Type, statusProcessed)
	}
	h.logger.Info("POST /stripe-webhook - Event processed: id=%s, session=%s, order=%s, duplicate=%t",
		event.ID, event.Session.ID, result.OrderID, result.Duplicate)
	handlers.RespondJSON(w, http.StatusOK, AckResponse{Received: true})
}

func (h *Handler) observe(eventType, status string) {
	if h.metrics == nil {
		return
	}
	h.metrics.ObserveWebhook(eventType, status)
}
