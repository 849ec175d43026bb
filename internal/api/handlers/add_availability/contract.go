package add_availability

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/service/availability/models"
)

type AvailabilityService interface {
	AddRange(ctx context.Context, req *models.AddRangeRequest) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
