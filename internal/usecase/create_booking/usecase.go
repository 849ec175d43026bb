package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/metrics"
)

// UseCase use case создания бронирования.
// Две записи (бронирование, затем связи со слотами) с компенсирующим удалением бронирования,
// если связи записать не удалось. Наружу видно либо бронирование со всеми слотами, либо ничего
type UseCase struct {
	reader          AvailabilityReader
	bookingRepo     BookingRepository
	bookingSlotRepo BookingSlotRepository
	clock           Clock
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil
func NewUseCase(
	reader AvailabilityReader,
	bookingRepo BookingRepository,
	bookingSlotRepo BookingSlotRepository,
	clock Clock,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reader:          reader,
		bookingRepo:     bookingRepo,
		bookingSlotRepo: bookingSlotRepo,
		clock:           clock,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking[%s]: user=%s, start_slot=%s, service=%s",
		stateSelecting, req.UserID, req.StartSlotID, req.ServiceType)

	// 1. Валидация и количество слотов
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	needed, err := domain.SlotsNeeded(req.ServiceType)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 2. Свежее представление свободных слотов
	grouped, err := uc.reader.Load(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to load availability: %v", err)
		return nil, fmt.Errorf("%w: failed to load availability: %v", ErrInternal, err)
	}

	// 3. Стартовый слот и n слотов за ним
	day, selected, err := selectSlots(grouped, req.StartSlotID, needed, req.Date)
	if err != nil {
		uc.logger.Warn("CreateBooking[%s]: start_slot=%s: %v", stateSelecting, req.StartSlotID, err)
		uc.observe(metrics.BookingOutcomeRejected, req.ServiceType)
		return nil, err
	}

	// 4. Непрерывность
	uc.logger.Info("CreateBooking[%s]: day=%s, %d slot(s)", stateValidating, day, len(selected))
	if !uc.clock.AreConsecutive(selected, day) {
		uc.logger.Warn("CreateBooking[%s]: slots starting at %s are not consecutive", stateValidating, selected[0].Time)
		uc.observe(metrics.BookingOutcomeRejected, req.ServiceType)
		return nil, ErrNonConsecutiveSlots
	}

	// 5. Бронирование
	uc.logger.Info("CreateBooking[%s]: inserting booking", stateReserving)
	booking, err := uc.bookingRepo.Create(ctx, &domain.Booking{
		UserID:      req.UserID,
		ServiceType: req.ServiceType,
	})
	if err != nil {
		uc.logger.Error("CreateBooking[%s]: failed to create booking: %v", stateReserving, err)
		uc.observe(metrics.BookingOutcomeRejected, req.ServiceType)
		return nil, fmt.Errorf("%w: %v", ErrBookingCreateFailed, err)
	}

	// 6. Связи со слотами, при ошибке откатываем бронирование
	slotIDs := make([]uuid.UUID, 0, len(selected))
	for _, s := range selected {
		slotIDs = append(slotIDs, s.ID)
	}

	if err := uc.bookingSlotRepo.CreateBatch(ctx, booking.ID, slotIDs); err != nil {
		uc.logger.Warn("CreateBooking[%s]: failed to link slots to booking=%s: %v", stateReserving, booking.ID, err)
		return nil, uc.rollback(ctx, booking, err)
	}

	uc.logger.Info("CreateBooking[%s]: booking=%s, user=%s, service=%s, day=%s",
		stateConfirmed, booking.ID, booking.UserID, booking.ServiceType, day)
	uc.observe(metrics.BookingOutcomeConfirmed, req.ServiceType)

	return &Response{
		ID:          booking.ID,
		UserID:      booking.UserID,
		ServiceType: booking.ServiceType,
		BookedAt:    booking.BookedAt,
		Date:        day,
		Slots:       selected,
		Ranges:      uc.clock.FormatTimeRanges(selected),
	}, nil
}

// rollback удаляет бронирование после неудачной записи связей.
// Удаление не зависит от отмены запроса: клиент мог отключиться между двумя записями
func (uc *UseCase) rollback(ctx context.Context, booking *domain.Booking, cause error) error {
	linkErr := fmt.Errorf("%w: %w", ErrSlotBookingFailed, cause)

	if err := uc.bookingRepo.Delete(context.WithoutCancel(ctx), booking.ID); err != nil {
		uc.logger.Error("CreateBooking: compensation failed, booking=%s left without slots: %v", booking.ID, err)
		uc.observe(metrics.BookingOutcomeCompensationFailed, booking.ServiceType)
		return errors.Join(linkErr, fmt.Errorf("compensating delete: %w", err))
	}

	uc.logger.Info("CreateBooking[%s]: booking=%s removed", stateRolledBack, booking.ID)
	uc.observe(metrics.BookingOutcomeRolledBack, booking.ServiceType)
	return linkErr
}

func (uc *UseCase) observe(outcome string, st domain.ServiceType) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.ObserveBooking(outcome, string(st))
}
