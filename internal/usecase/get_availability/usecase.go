package get_availability

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// UseCase use case чтения свободных слотов.
// Каждый вызов читает данные заново, результат не кешируется
type UseCase struct {
	availabilityRepo AvailabilityRepository
	bookingSlotRepo  BookingSlotRepository
	clock            Clock
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	bookingSlotRepo BookingSlotRepository,
	clock Clock,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		bookingSlotRepo:  bookingSlotRepo,
		clock:            clock,
		logger:           logger,
	}
}

// Execute возвращает свободные слоты, сгруппированные по дням
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	grouped, err := uc.Load(ctx)
	if err != nil {
		return nil, err
	}

	resp := &Response{Days: make([]Day, 0, len(grouped))}
	for _, day := range grouped.Days() {
		if req.Date != nil && *req.Date != day {
			continue
		}
		slots := grouped[day]
		resp.Days = append(resp.Days, Day{
			Date:   day,
			Slots:  slots,
			Ranges: uc.clock.FormatTimeRanges(slots),
		})
	}

	uc.logger.Info("GetAvailability: %d day(s) with free slots, date filter=%v", len(resp.Days), derefDate(req.Date))
	return resp, nil
}

// Load строит текущее представление: будущие слоты минус занятые, по дням, по времени
func (uc *UseCase) Load(ctx context.Context) (domain.GroupedAvailability, error) {
	now := uc.clock.Now()

	slots, err := uc.availabilityRepo.ListAfter(ctx, now)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	bookedIDs, err := uc.bookingSlotRepo.ListBookedAvailabilityIDs(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list booked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list booked slots: %v", ErrInternal, err)
	}

	booked := make(map[uuid.UUID]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	grouped := make(domain.GroupedAvailability)
	for _, s := range slots {
		// Репозиторий фильтрует по времени БД, повторяем проверку по часам сервиса
		if !s.AvailableFrom.After(now) {
			continue
		}
		if _, taken := booked[s.ID]; taken {
			continue
		}
		ds := uc.clock.Project(s)
		grouped[ds.Day] = append(grouped[ds.Day], ds)
	}

	for day := range grouped {
		sortSlots(grouped[day])
	}
	return grouped, nil
}

func sortSlots(slots []domain.DisplaySlot) {
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].AvailableFrom.Equal(slots[j].AvailableFrom) {
			return slots[i].AvailableFrom.Before(slots[j].AvailableFrom)
		}
		return slots[i].ID.String() < slots[j].ID.String()
	})
}

func derefDate(d *string) string {
	if d == nil {
		return "all"
	}
	return *d
}
