// Package memstore хранилище слотов и бронирований в памяти для тестов usecase и сервисов.
// Повторяет ограничения схемы: UNIQUE(availability_id) и каскадное удаление связей.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/booking"
	bookingSlotRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/bookingslot"
)

// ErrInjected ошибка, возвращаемая при включённой инъекции сбоя
var ErrInjected = errors.New("memstore: injected failure")

// Store in-memory реализация репозиториев availability, booking и bookingslot
type Store struct {
	mu       sync.Mutex
	slots    map[uuid.UUID]domain.AvailabilitySlot
	bookings map[uuid.UUID]domain.Booking
	links    map[uuid.UUID]uuid.UUID // availability_id -> booking_id

	// Инъекция сбоев
	FailBookingCreate bool
	FailLinkInsert    bool
	FailBookingDelete bool
	FailReads         bool

	// Вызывается перед вставкой связей (имитация конкурентного клиента)
	BeforeLinkInsert func()
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		slots:    make(map[uuid.UUID]domain.AvailabilitySlot),
		bookings: make(map[uuid.UUID]domain.Booking),
		links:    make(map[uuid.UUID]uuid.UUID),
	}
}

// AddSlot добавляет слот и возвращает его ID
func (s *Store) AddSlot(at time.Time) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.slots[id] = domain.AvailabilitySlot{ID: id, AvailableFrom: at.UTC()}
	return id
}

// BookingCount количество бронирований
func (s *Store) BookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

// Links возвращает связи availability_id -> booking_id
func (s *Store) Links() map[uuid.UUID]uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uuid.UUID]uuid.UUID, len(s.links))
	for k, v := range s.links {
		out[k] = v
	}
	return out
}

// ListAfter реализует availability.Repository.ListAfter
func (s *Store) ListAfter(_ context.Context, after time.Time) ([]domain.AvailabilitySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads {
		return nil, ErrInjected
	}
	out := make([]domain.AvailabilitySlot, 0, len(s.slots))
	for _, slot := range s.slots {
		if slot.AvailableFrom.After(after) {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AvailableFrom.Before(out[j].AvailableFrom) })
	return out, nil
}

// ListBookedAvailabilityIDs реализует bookingslot.Repository.ListBookedAvailabilityIDs
func (s *Store) ListBookedAvailabilityIDs(_ context.Context) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads {
		return nil, ErrInjected
	}
	out := make([]uuid.UUID, 0, len(s.links))
	for id := range s.links {
		out = append(out, id)
	}
	return out, nil
}

// Create реализует booking.Repository.Create
func (s *Store) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailBookingCreate {
		return nil, ErrInjected
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.BookedAt = time.Now().UTC()
	s.bookings[b.ID] = *b
	return b, nil
}

// GetByID реализует booking.Repository.GetByID
func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

// Delete реализует booking.Repository.Delete (связи удаляются каскадно)
func (s *Store) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailBookingDelete {
		return ErrInjected
	}
	if _, ok := s.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(s.bookings, id)
	for slotID, bookingID := range s.links {
		if bookingID == id {
			delete(s.links, slotID)
		}
	}
	return nil
}

// CreateBatch реализует bookingslot.Repository.CreateBatch: всё или ничего, UNIQUE(availability_id)
func (s *Store) CreateBatch(_ context.Context, bookingID uuid.UUID, availabilityIDs []uuid.UUID) error {
	if s.BeforeLinkInsert != nil {
		s.BeforeLinkInsert()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailLinkInsert {
		return ErrInjected
	}
	seen := make(map[uuid.UUID]struct{}, len(availabilityIDs))
	for _, id := range availabilityIDs {
		if _, taken := s.links[id]; taken {
			return bookingSlotRepo.ErrSlotAlreadyBooked
		}
		if _, dup := seen[id]; dup {
			return bookingSlotRepo.ErrSlotAlreadyBooked
		}
		seen[id] = struct{}{}
	}
	for _, id := range availabilityIDs {
		s.links[id] = bookingID
	}
	return nil
}

// DeleteByBookingID реализует bookingslot.Repository.DeleteByBookingID
func (s *Store) DeleteByBookingID(_ context.Context, bookingID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for slotID, b := range s.links {
		if b == bookingID {
			delete(s.links, slotID)
		}
	}
	return nil
}

// ListByUserID реализует booking.Repository.ListByUserID
func (s *Store) ListByUserID(_ context.Context, userID uuid.UUID) ([]*domain.Booking, error) {
	return s.listBookings(func(b domain.Booking) bool { return b.UserID == userID })
}

// ListAll реализует booking.Repository.ListAll
func (s *Store) ListAll(_ context.Context) ([]*domain.Booking, error) {
	return s.listBookings(func(domain.Booking) bool { return true })
}

func (s *Store) listBookings(match func(domain.Booking) bool) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads {
		return nil, ErrInjected
	}
	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if match(b) {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookedAt.After(out[j].BookedAt) })
	return out, nil
}

// ListSlotsByBookingIDs реализует bookingslot.Repository.ListSlotsByBookingIDs
func (s *Store) ListSlotsByBookingIDs(_ context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]domain.AvailabilitySlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads {
		return nil, ErrInjected
	}
	wanted := make(map[uuid.UUID]struct{}, len(bookingIDs))
	for _, id := range bookingIDs {
		wanted[id] = struct{}{}
	}
	out := make(map[uuid.UUID][]domain.AvailabilitySlot, len(bookingIDs))
	for slotID, bookingID := range s.links {
		if _, ok := wanted[bookingID]; !ok {
			continue
		}
		if slot, ok := s.slots[slotID]; ok {
			out[bookingID] = append(out[bookingID], slot)
		}
	}
	for id := range out {
		slots := out[id]
		sort.Slice(slots, func(i, j int) bool { return slots[i].AvailableFrom.Before(slots[j].AvailableFrom) })
	}
	return out, nil
}

// BookFor создает бронирование пользователя на указанные слоты в обход проверок
func (s *Store) BookFor(userID uuid.UUID, st domain.ServiceType, slotIDs ...uuid.UUID) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.bookings[id] = domain.Booking{ID: id, UserID: userID, ServiceType: st, BookedAt: time.Now().UTC()}
	for _, slotID := range slotIDs {
		s.links[slotID] = id
	}
	return id
}

// BookSlotDirectly занимает слот от имени другого клиента
func (s *Store) BookSlotDirectly(slotID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	other := uuid.New()
	s.bookings[other] = domain.Booking{ID: other, UserID: uuid.New(), ServiceType: domain.ServiceTarot}
	s.links[slotID] = other
}
