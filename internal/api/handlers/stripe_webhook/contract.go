package stripe_webhook

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/integrations/payments"
	processCheckout "github.com/m04kA/SMC-StudioService/internal/usecase/process_checkout"
)

// EventParser проверка подписи и разбор события
type EventParser interface {
	ParseEvent(payload []byte, signatureHeader string) (*payments.Event, error)
}

type ProcessCheckoutUseCase interface {
	Execute(ctx context.Context, session *payments.CompletedSession) (*processCheckout.Response, error)
}

type Metrics interface {
	ObserveWebhook(eventType, status string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
