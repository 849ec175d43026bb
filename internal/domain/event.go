package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event мероприятие студии
type Event struct {
	ID          uuid.UUID
	Title       string
	Description string
	StartDate   time.Time  // UTC
	EndDate     *time.Time // nil, если длительность не указана
	Location    string
	Address     string
	Image       string
}

// Place место проведения: площадка и адрес через запятую, пустые части пропускаются
func (e *Event) Place() string {
	switch {
	case e.Location != "" && e.Address != "":
		return e.Location + ", " + e.Address
	case e.Location != "":
		return e.Location
	default:
		return e.Address
	}
}
