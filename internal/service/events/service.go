package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// ErrInternal возвращается при внутренних ошибках сервиса
var ErrInternal = errors.New("service: internal error")

// dateTimeLayout формат даты для витрины: "Mar 3, 2026, 9:00 AM"
const dateTimeLayout = "Jan 2, 2006, 3:04 PM"

// EventRepository интерфейс репозитория мероприятий
type EventRepository interface {
	ListAll(ctx context.Context) ([]domain.Event, error)
}

// Clock часовой пояс бизнеса
type Clock interface {
	Location() *time.Location
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}

// EventResponse мероприятие для страницы событий
type EventResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	StartDate   string  `json:"startDate"`         // RFC3339, UTC
	EndDate     *string `json:"endDate,omitempty"` // RFC3339, UTC
	When        string  `json:"when"`              // в часовом поясе бизнеса
	Place       string  `json:"place,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// Service афиша мероприятий
type Service struct {
	eventRepo EventRepository
	clock     Clock
	logger    Logger
}

// NewService создает новый экземпляр сервиса мероприятий
func NewService(eventRepo EventRepository, clock Clock, logger Logger) *Service {
	return &Service{eventRepo: eventRepo, clock: clock, logger: logger}
}

// List все мероприятия по возрастанию даты начала
func (s *Service) List(ctx context.Context) ([]EventResponse, error) {
	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	loc := s.clock.Location()
	resp := make([]EventResponse, 0, len(events))
	for _, e := range events {
		item := EventResponse{
			ID:          e.ID.String(),
			Title:       e.Title,
			Description: e.Description,
			StartDate:   e.StartDate.UTC().Format(time.RFC3339),
			When:        e.StartDate.In(loc).Format(dateTimeLayout),
			Place:       e.Place(),
			Image:       e.Image,
		}
		if e.EndDate != nil {
			end := e.EndDate.UTC().Format(time.RFC3339)
			item.EndDate = &end
			item.When += " - " + e.EndDate.In(loc).Format(dateTimeLayout)
		}
		resp = append(resp, item)
	}
	return resp, nil
}
