package list_events

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/service/events"
)

type EventService interface {
	List(ctx context.Context) ([]events.EventResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
