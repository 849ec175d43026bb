package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	createBooking "github.com/m04kA/SMC-StudioService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StartSlotID string  `json:"startSlotId"`
	ServiceType string  `json:"serviceType"`
	Date        *string `json:"date,omitempty"` // "2026-03-03"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	ServiceType string         `json:"serviceType"`
	Date        string         `json:"date"`
	Slots       []SlotResponse `json:"slots"`
	Ranges      []string       `json:"ranges"`
	BookedAt    string         `json:"bookedAt"`
}

// SlotResponse занятый слот
type SlotResponse struct {
	ID            string `json:"id"`
	AvailableFrom string `json:"availableFrom"`
	Time          string `json:"time"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID uuid.UUID) (*createBooking.Request, error) {
	startSlotID, err := uuid.Parse(r.StartSlotID)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:      userID,
		StartSlotID: startSlotID,
		ServiceType: domain.ServiceType(r.ServiceType),
		Date:        r.Date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:          resp.ID.String(),
		UserID:      resp.UserID.String(),
		ServiceType: string(resp.ServiceType),
		Date:        resp.Date,
		Slots:       make([]SlotResponse, 0, len(resp.Slots)),
		Ranges:      resp.Ranges,
		BookedAt:    resp.BookedAt.Format(time.RFC3339),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			ID:            s.ID.String(),
			AvailableFrom: s.AvailableFrom.Format(time.RFC3339),
			Time:          s.Time.String(),
		})
	}
	return out
}
