package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// BookingResponse бронирование вместе с занятыми слотами
type BookingResponse struct {
	ID          uuid.UUID          `json:"id"`
	UserID      uuid.UUID          `json:"userId"`
	ServiceType domain.ServiceType `json:"serviceType"`
	BookedAt    time.Time          `json:"bookedAt"`
	Date        string             `json:"date,omitempty"` // день первого слота, "2026-03-03"
	Slots       []SlotResponse     `json:"slots"`
	Ranges      []string           `json:"ranges"` // "9:00 AM - 10:30 AM"
}

// SlotResponse занятый слот
type SlotResponse struct {
	ID            uuid.UUID        `json:"id"`
	AvailableFrom time.Time        `json:"availableFrom"`
	Time          types.TimeString `json:"time"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomain собирает ответ из бронирования и его слотов в проекции на день
func FromDomain(b *domain.Booking, slots []domain.DisplaySlot, ranges []string) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		ServiceType: b.ServiceType,
		BookedAt:    b.BookedAt,
		Slots:       make([]SlotResponse, 0, len(slots)),
		Ranges:      ranges,
	}
	if len(slots) > 0 {
		resp.Date = slots[0].Day
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			ID:            s.ID,
			AvailableFrom: s.AvailableFrom,
			Time:          s.Time,
		})
	}
	return resp
}
