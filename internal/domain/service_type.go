package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidServiceType возвращается для неизвестного типа услуги
var ErrInvalidServiceType = errors.New("domain: invalid service type")

// ServiceType вид сеанса, который можно забронировать
type ServiceType string

const (
	ServiceReiki        ServiceType = "reiki"
	ServiceTarot        ServiceType = "tarot"
	ServiceCombo        ServiceType = "combo"
	ServiceConsultation ServiceType = "consultation"
)

// slotsPerService количество последовательных 30-минутных слотов на услугу
var slotsPerService = map[ServiceType]int{
	ServiceTarot:        1,
	ServiceConsultation: 1,
	ServiceReiki:        2,
	ServiceCombo:        3,
}

// ServiceTypes все поддерживаемые услуги
var ServiceTypes = []ServiceType{ServiceReiki, ServiceTarot, ServiceCombo, ServiceConsultation}

// SlotsNeeded возвращает число слотов, которое занимает услуга
func SlotsNeeded(t ServiceType) (int, error) {
	n, ok := slotsPerService[t]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidServiceType, string(t))
	}
	return n, nil
}

// ParseServiceType проверяет строку и возвращает ServiceType
func ParseServiceType(s string) (ServiceType, error) {
	t := ServiceType(s)
	if _, err := SlotsNeeded(t); err != nil {
		return "", err
	}
	return t, nil
}

// Valid возвращает true для известной услуги
func (t ServiceType) Valid() bool {
	_, ok := slotsPerService[t]
	return ok
}

// DurationMinutes длительность услуги в минутах
func (t ServiceType) DurationMinutes() int {
	return slotsPerService[t] * SlotDurationMinutes
}
