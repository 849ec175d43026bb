package get_availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория слотов
type AvailabilityRepository interface {
	ListAfter(ctx context.Context, after time.Time) ([]domain.AvailabilitySlot, error)
}

// BookingSlotRepository интерфейс репозитория связей бронирование-слот
type BookingSlotRepository interface {
	ListBookedAvailabilityIDs(ctx context.Context) ([]uuid.UUID, error)
}

// Clock часы бизнеса (internal/timeslot)
type Clock interface {
	Now() time.Time
	Project(s domain.AvailabilitySlot) domain.DisplaySlot
	FormatTimeRanges(slots []domain.DisplaySlot) []string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
