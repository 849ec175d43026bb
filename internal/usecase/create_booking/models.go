package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID      uuid.UUID
	StartSlotID uuid.UUID
	ServiceType domain.ServiceType
	Date        *string // YYYY-MM-DD, ограничивает поиск стартового слота одним днём
}

// Response созданное бронирование и занятые им слоты
type Response struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ServiceType domain.ServiceType
	BookedAt    time.Time
	Date        string
	Slots       []domain.DisplaySlot
	Ranges      []string
}

// Состояния попытки бронирования (для логов)
const (
	stateSelecting  = "selecting"
	stateValidating = "validating"
	stateReserving  = "reserving"
	stateConfirmed  = "confirmed"
	stateRolledBack = "rolled_back"
)
