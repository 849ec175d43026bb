package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-StudioService/internal/service/availability/models"
)

// Service сервис управления расписанием (только для администраторов)
type Service struct {
	availabilityRepo AvailabilityRepository
	bookingSlotRepo  BookingSlotRepository
	clock            Clock
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	availabilityRepo AvailabilityRepository,
	bookingSlotRepo BookingSlotRepository,
	clock Clock,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		bookingSlotRepo:  bookingSlotRepo,
		clock:            clock,
		logger:           logger,
	}
}

// AddRange нарезает диапазон на слоты и сохраняет их одним запросом
func (s *Service) AddRange(ctx context.Context, req *models.AddRangeRequest) (*models.SlotListResponse, error) {
	s.logger.Info("AddRange: date=%s, %s-%s, service=%v", req.Date, req.StartTime, req.EndTime, req.ServiceType)

	start, end, serviceType, err := s.parseRange(req)
	if err != nil {
		s.logger.Warn("AddRange: validation failed: %v", err)
		return nil, err
	}

	if !start.After(s.clock.Now()) {
		s.logger.Warn("AddRange: start %s is in the past", start)
		return nil, fmt.Errorf("%w: start must be in the future", ErrInvalidInput)
	}

	starts, err := s.clock.SplitRange(start, end)
	if err != nil {
		s.logger.Warn("AddRange: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(starts) == 0 {
		s.logger.Warn("AddRange: range %s-%s is shorter than one slot", req.StartTime, req.EndTime)
		return nil, fmt.Errorf("%w: range is shorter than %d minutes", ErrInvalidInput, domain.SlotDurationMinutes)
	}

	created, err := s.availabilityRepo.CreateBatch(ctx, starts, serviceType)
	if err != nil {
		s.logger.Error("AddRange: failed to create %d slots: %v", len(starts), err)
		return nil, fmt.Errorf("%w: AddRange - create slots: %v", ErrInternal, err)
	}

	display := make([]domain.DisplaySlot, 0, len(created))
	for _, slot := range created {
		display = append(display, s.clock.Project(slot))
	}

	s.logger.Info("AddRange: created %d slots on %s", len(created), req.Date)
	return models.FromDisplaySlots(display, nil), nil
}

// Delete удаляет свободный слот
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Delete: deleting slot id=%s", id)

	booked, err := s.bookedIDs(ctx)
	if err != nil {
		s.logger.Error("Delete: failed to load booked slots: %v", err)
		return fmt.Errorf("%w: Delete - load booked slots: %v", ErrInternal, err)
	}
	if _, ok := booked[id]; ok {
		s.logger.Warn("Delete: slot id=%s is booked", id)
		return ErrSlotBooked
	}

	if err := s.availabilityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, availabilityRepo.ErrSlotNotFound) {
			s.logger.Warn("Delete: slot id=%s not found", id)
			return ErrSlotNotFound
		}
		s.logger.Error("Delete: repository error for slot id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted slot id=%s", id)
	return nil
}

// ListUpcoming все будущие слоты с признаком занятости
func (s *Service) ListUpcoming(ctx context.Context) (*models.SlotListResponse, error) {
	slots, err := s.availabilityRepo.ListAfter(ctx, s.clock.Now())
	if err != nil {
		s.logger.Error("ListUpcoming: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUpcoming - repository error: %v", ErrInternal, err)
	}

	booked, err := s.bookedIDs(ctx)
	if err != nil {
		s.logger.Error("ListUpcoming: failed to load booked slots: %v", err)
		return nil, fmt.Errorf("%w: ListUpcoming - load booked slots: %v", ErrInternal, err)
	}

	display := make([]domain.DisplaySlot, 0, len(slots))
	for _, slot := range slots {
		display = append(display, s.clock.Project(slot))
	}

	s.logger.Info("ListUpcoming: %d slots, %d booked", len(display), len(booked))
	return models.FromDisplaySlots(display, booked), nil
}

func (s *Service) bookedIDs(ctx context.Context) (map[uuid.UUID]struct{}, error) {
	ids, err := s.bookingSlotRepo.ListBookedAvailabilityIDs(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (s *Service) parseRange(req *models.AddRangeRequest) (time.Time, time.Time, *domain.ServiceType, error) {
	loc := s.clock.Location()

	start, err := time.ParseInLocation(domain.DateFormat+" "+domain.TimeFormat, req.Date+" "+req.StartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: invalid start: %v", ErrInvalidInput, err)
	}
	end, err := time.ParseInLocation(domain.DateFormat+" "+domain.TimeFormat, req.Date+" "+req.EndTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: invalid end: %v", ErrInvalidInput, err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	if req.ServiceType == nil {
		return start, end, nil, nil
	}
	st, err := domain.ParseServiceType(*req.ServiceType)
	if err != nil {
		return time.Time{}, time.Time{}, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return start, end, &st, nil
}
