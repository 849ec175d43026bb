package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/booking"
	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-StudioService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo     BookingRepository
	bookingSlotRepo BookingSlotRepository
	profileRepo     ProfileRepository
	txManager       TransactionManager
	clock           Clock
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	bookingSlotRepo BookingSlotRepository,
	profileRepo ProfileRepository,
	txManager TransactionManager,
	clock Clock,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:     bookingRepo,
		bookingSlotRepo: bookingSlotRepo,
		profileRepo:     profileRepo,
		txManager:       txManager,
		clock:           clock,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Видно владельцу и администратору
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.getAccessible(ctx, "GetByID", id, userID)
	if err != nil {
		return nil, err
	}

	enriched, err := s.enrich(ctx, []*domain.Booking{booking})
	if err != nil {
		s.logger.Error("GetByID: failed to load slots for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - load slots: %v", ErrInternal, err)
	}

	resp := s.toResponse(&enriched[0])
	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return &resp, nil
}

// Cancel удаляет бронирование вместе со связями, слоты снова становятся свободными.
// Отменить может владелец или администратор
func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID, userID uuid.UUID) error {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, userID)

	if _, err := s.getAccessible(ctx, "Cancel", bookingID, userID); err != nil {
		return err
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.bookingSlotRepo.DeleteByBookingID(ctx, bookingID); err != nil {
			return err
		}
		return s.bookingRepo.Delete(ctx, bookingID)
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%s not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: failed to delete booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - delete booking: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	return nil
}

// ListUserUpcoming предстоящие бронирования пользователя, по времени первого слота
func (s *Service) ListUserUpcoming(ctx context.Context, userID uuid.UUID) (*models.BookingListResponse, error) {
	s.logger.Info("ListUserUpcoming: fetching bookings for user=%s", userID)

	bookings, err := s.bookingRepo.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("ListUserUpcoming: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: ListUserUpcoming - repository error: %v", ErrInternal, err)
	}

	enriched, err := s.enrich(ctx, bookings)
	if err != nil {
		s.logger.Error("ListUserUpcoming: failed to load slots for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: ListUserUpcoming - load slots: %v", ErrInternal, err)
	}

	now := s.clock.Now()
	upcoming := make([]domain.BookingWithSlots, 0, len(enriched))
	for _, b := range enriched {
		if len(b.Slots) == 0 || !b.FirstSlotAt().After(now) {
			continue
		}
		upcoming = append(upcoming, b)
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].FirstSlotAt().Before(upcoming[j].FirstSlotAt())
	})

	s.logger.Info("ListUserUpcoming: %d upcoming bookings for user=%s", len(upcoming), userID)
	return s.toListResponse(upcoming), nil
}

// ListAll все бронирования для администратора, новые первыми.
// Бронирования без слотов не показываются
func (s *Service) ListAll(ctx context.Context, userID uuid.UUID) (*models.BookingListResponse, error) {
	s.logger.Info("ListAll: fetching all bookings for admin=%s", userID)

	isAdmin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		s.logger.Warn("ListAll: user=%s is not an admin", userID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}

	enriched, err := s.enrich(ctx, bookings)
	if err != nil {
		s.logger.Error("ListAll: failed to load slots: %v", err)
		return nil, fmt.Errorf("%w: ListAll - load slots: %v", ErrInternal, err)
	}

	withSlots := make([]domain.BookingWithSlots, 0, len(enriched))
	for _, b := range enriched {
		if len(b.Slots) > 0 {
			withSlots = append(withSlots, b)
		}
	}

	s.logger.Info("ListAll: successfully fetched %d bookings", len(withSlots))
	return s.toListResponse(withSlots), nil
}

// getAccessible загружает бронирование и проверяет, что пользователь владелец или администратор
func (s *Service) getAccessible(ctx context.Context, op string, id, userID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.IsOwnedBy(userID) {
		return booking, nil
	}

	isAdmin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		s.logger.Warn("%s: access denied for user=%s to booking id=%s", op, userID, id)
		return nil, ErrAccessDenied
	}
	return booking, nil
}

func (s *Service) isAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return false, nil
		}
		s.logger.Error("isAdmin: failed to load profile user=%s: %v", userID, err)
		return false, fmt.Errorf("%w: load profile: %v", ErrInternal, err)
	}
	return profile.IsAdmin(), nil
}

func (s *Service) enrich(ctx context.Context, bookings []*domain.Booking) ([]domain.BookingWithSlots, error) {
	ids := make([]uuid.UUID, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}

	slots, err := s.bookingSlotRepo.ListSlotsByBookingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]domain.BookingWithSlots, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, domain.BookingWithSlots{Booking: *b, Slots: slots[b.ID]})
	}
	return result, nil
}

func (s *Service) toResponse(b *domain.BookingWithSlots) models.BookingResponse {
	display := make([]domain.DisplaySlot, 0, len(b.Slots))
	for _, slot := range b.Slots {
		display = append(display, s.clock.Project(slot))
	}
	return models.FromDomain(&b.Booking, display, s.clock.FormatTimeRanges(display))
}

func (s *Service) toListResponse(bookings []domain.BookingWithSlots) *models.BookingListResponse {
	resp := &models.BookingListResponse{
		Bookings: make([]models.BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for i := range bookings {
		resp.Bookings = append(resp.Bookings, s.toResponse(&bookings[i]))
	}
	return resp
}
