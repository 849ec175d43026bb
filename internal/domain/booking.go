package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidBooking возвращается при попытке создать некорректное бронирование
var ErrInvalidBooking = errors.New("domain: invalid booking")

// Booking подтверждённая запись на сеанс
type Booking struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ServiceType ServiceType
	BookedAt    time.Time
}

// NewBooking проверяет обязательные поля строки бронирования
func NewBooking(id, userID uuid.UUID, serviceType ServiceType, bookedAt time.Time) (*Booking, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidBooking)
	}
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidBooking)
	}
	if !serviceType.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBooking, ErrInvalidServiceType)
	}
	return &Booking{
		ID:          id,
		UserID:      userID,
		ServiceType: serviceType,
		BookedAt:    bookedAt.UTC(),
	}, nil
}

// IsOwnedBy true, если бронирование принадлежит пользователю
func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.UserID == userID
}

// BookingSlotLink связь бронирования с занятым слотом
type BookingSlotLink struct {
	BookingID      uuid.UUID
	AvailabilityID uuid.UUID
}

// BookingWithSlots бронирование вместе с временем занятых слотов (для отображения)
type BookingWithSlots struct {
	Booking
	Slots []AvailabilitySlot
}

// FirstSlotAt начало самого раннего слота или нулевое время, если слотов нет
func (b *BookingWithSlots) FirstSlotAt() time.Time {
	var first time.Time
	for _, s := range b.Slots {
		if first.IsZero() || s.AvailableFrom.Before(first) {
			first = s.AvailableFrom
		}
	}
	return first
}
