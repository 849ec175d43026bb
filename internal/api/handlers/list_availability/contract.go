package list_availability

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/service/availability/models"
)

type AvailabilityService interface {
	ListUpcoming(ctx context.Context) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
