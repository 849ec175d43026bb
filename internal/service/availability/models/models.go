package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// AddRangeRequest диапазон, который нарезается на 30-минутные слоты.
// Время без зоны трактуется в часовом поясе бизнеса
type AddRangeRequest struct {
	Date        string  `json:"date"`      // "2026-03-03"
	StartTime   string  `json:"startTime"` // "09:00"
	EndTime     string  `json:"endTime"`   // "12:00"
	ServiceType *string `json:"serviceType,omitempty"`
}

// SlotResponse слот для администратора
type SlotResponse struct {
	ID            uuid.UUID           `json:"id"`
	AvailableFrom time.Time           `json:"availableFrom"`
	Date          string              `json:"date"`
	Time          types.TimeString    `json:"time"`
	ServiceType   *domain.ServiceType `json:"serviceType,omitempty"`
	Booked        bool                `json:"booked"`
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// FromDisplaySlot конвертирует проекцию слота в ответ
func FromDisplaySlot(s domain.DisplaySlot, booked bool) SlotResponse {
	return SlotResponse{
		ID:            s.ID,
		AvailableFrom: s.AvailableFrom,
		Date:          s.Day,
		Time:          s.Time,
		ServiceType:   s.ServiceType,
		Booked:        booked,
	}
}

// FromDisplaySlots конвертирует список слотов
func FromDisplaySlots(slots []domain.DisplaySlot, booked map[uuid.UUID]struct{}) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
		Total: len(slots),
	}
	for _, s := range slots {
		_, isBooked := booked[s.ID]
		resp.Slots = append(resp.Slots, FromDisplaySlot(s, isBooked))
	}
	return resp
}
