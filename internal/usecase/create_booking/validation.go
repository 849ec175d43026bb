package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}
	if req.StartSlotID == uuid.Nil {
		return fmt.Errorf("%w: startSlotID is required", ErrInvalidInput)
	}
	if req.Date != nil {
		if _, err := time.Parse(domain.DateFormat, *req.Date); err != nil {
			return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
	}
	return nil
}

// selectSlots находит стартовый слот и берёт n слотов подряд по списку дня
func selectSlots(grouped domain.GroupedAvailability, startID uuid.UUID, n int, date *string) (string, []domain.DisplaySlot, error) {
	for _, day := range grouped.Days() {
		if date != nil && *date != day {
			continue
		}
		slots := grouped[day]
		for i, s := range slots {
			if s.ID != startID {
				continue
			}
			if i+n > len(slots) {
				return day, nil, fmt.Errorf("%w: need %d, %d left", ErrInsufficientSlots, n, len(slots)-i)
			}
			selected := make([]domain.DisplaySlot, n)
			copy(selected, slots[i:i+n])
			return day, selected, nil
		}
	}
	return "", nil, ErrSlotNotFound
}
