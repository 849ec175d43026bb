package create_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// AvailabilityReader текущее представление свободных слотов (get_availability.UseCase)
type AvailabilityReader interface {
	Load(ctx context.Context) (domain.GroupedAvailability, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingSlotRepository интерфейс репозитория связей бронирование-слот
type BookingSlotRepository interface {
	CreateBatch(ctx context.Context, bookingID uuid.UUID, availabilityIDs []uuid.UUID) error
}

// Clock часы бизнеса (internal/timeslot)
type Clock interface {
	AreConsecutive(slots []domain.DisplaySlot, dayKey string) bool
	FormatTimeRanges(slots []domain.DisplaySlot) []string
}

// Metrics счетчик исходов бронирования
type Metrics interface {
	ObserveBooking(outcome, serviceType string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
