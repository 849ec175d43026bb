package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория слотов
type AvailabilityRepository interface {
	ListAfter(ctx context.Context, after time.Time) ([]domain.AvailabilitySlot, error)
	CreateBatch(ctx context.Context, starts []time.Time, serviceType *domain.ServiceType) ([]domain.AvailabilitySlot, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingSlotRepository интерфейс репозитория связей бронирование-слот
type BookingSlotRepository interface {
	ListBookedAvailabilityIDs(ctx context.Context) ([]uuid.UUID, error)
}

// Clock часы бизнеса
type Clock interface {
	Now() time.Time
	Location() *time.Location
	SplitRange(start, end time.Time) ([]time.Time, error)
	Project(s domain.AvailabilitySlot) domain.DisplaySlot
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
