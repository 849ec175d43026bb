package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Booking, error)
	ListAll(ctx context.Context) ([]*domain.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingSlotRepository интерфейс репозитория связей бронирование-слот
type BookingSlotRepository interface {
	DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) error
	ListSlotsByBookingIDs(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]domain.AvailabilitySlot, error)
}

// ProfileRepository интерфейс репозитория профилей (роль администратора)
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

// Clock часы бизнеса
type Clock interface {
	Now() time.Time
	Project(s domain.AvailabilitySlot) domain.DisplaySlot
	FormatTimeRanges(slots []domain.DisplaySlot) []string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
