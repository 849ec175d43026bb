package get_availability

import (
	"time"

	getAvailability "github.com/m04kA/SMC-StudioService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Days []DayResponse `json:"days"`
}

// DayResponse свободные слоты одного дня
type DayResponse struct {
	Date   string         `json:"date"`
	Slots  []SlotResponse `json:"slots"`
	Ranges []string       `json:"ranges"`
}

// SlotResponse свободный слот
type SlotResponse struct {
	ID            string  `json:"id"`
	AvailableFrom string  `json:"availableFrom"`
	Time          string  `json:"time"`
	ServiceType   *string `json:"serviceType,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{Days: make([]DayResponse, 0, len(resp.Days))}
	for _, d := range resp.Days {
		day := DayResponse{
			Date:   d.Date,
			Slots:  make([]SlotResponse, 0, len(d.Slots)),
			Ranges: d.Ranges,
		}
		for _, s := range d.Slots {
			slot := SlotResponse{
				ID:            s.ID.String(),
				AvailableFrom: s.AvailableFrom.Format(time.RFC3339),
				Time:          s.Time.String(),
			}
			if s.ServiceType != nil {
				st := string(*s.ServiceType)
				slot.ServiceType = &st
			}
			day.Slots = append(day.Slots, slot)
		}
		out.Days = append(out.Days, day)
	}
	return out
}
