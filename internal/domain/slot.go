package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// ErrInvalidSlot возвращается при попытке создать некорректный слот
var ErrInvalidSlot = errors.New("domain: invalid availability slot")

// AvailabilitySlot 30-минутное окно, доступное для записи
type AvailabilitySlot struct {
	ID            uuid.UUID
	AvailableFrom time.Time // UTC
	ServiceType   *ServiceType
	CreatedAt     time.Time
}

// NewAvailabilitySlot проверяет обязательные поля строки слота
func NewAvailabilitySlot(id uuid.UUID, availableFrom time.Time, serviceType *ServiceType) (*AvailabilitySlot, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidSlot)
	}
	if availableFrom.IsZero() {
		return nil, fmt.Errorf("%w: available_from is required", ErrInvalidSlot)
	}
	if serviceType != nil && !serviceType.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, ErrInvalidServiceType)
	}
	return &AvailabilitySlot{
		ID:            id,
		AvailableFrom: availableFrom.UTC(),
		ServiceType:   serviceType,
	}, nil
}

// EndsAt конец окна слота
func (s *AvailabilitySlot) EndsAt() time.Time {
	return s.AvailableFrom.Add(SlotDuration)
}

// DisplaySlot проекция слота на календарный день в часовом поясе бизнеса
type DisplaySlot struct {
	ID            uuid.UUID
	AvailableFrom time.Time
	Day           string           // YYYY-MM-DD
	Time          types.TimeString // HH:MM
	ServiceType   *ServiceType
}

// GroupedAvailability ключ дня -> слоты этого дня по возрастанию времени
type GroupedAvailability map[string][]DisplaySlot

// Days ключи дней по возрастанию
func (g GroupedAvailability) Days() []string {
	days := make([]string, 0, len(g))
	for day := range g {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// Contains true, если слот с id есть в каком-либо дне
func (g GroupedAvailability) Contains(id uuid.UUID) bool {
	for _, slots := range g {
		for _, s := range slots {
			if s.ID == id {
				return true
			}
		}
	}
	return false
}
