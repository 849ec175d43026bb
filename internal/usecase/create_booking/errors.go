package create_booking

import (
	"errors"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var (
	// ErrInvalidServiceType возвращается для неизвестной услуги
	ErrInvalidServiceType = domain.ErrInvalidServiceType

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrSlotNotFound возвращается, когда выбранного слота нет среди свободных
	ErrSlotNotFound = errors.New("create_booking: slot not found")

	// ErrInsufficientSlots возвращается, когда до конца дня меньше слотов, чем нужно услуге
	ErrInsufficientSlots = errors.New("create_booking: not enough slots left that day")

	// ErrNonConsecutiveSlots возвращается, когда выбранные слоты идут с разрывом
	ErrNonConsecutiveSlots = errors.New("create_booking: slots are not consecutive")

	// ErrBookingCreateFailed возвращается, когда не удалось записать бронирование
	ErrBookingCreateFailed = errors.New("create_booking: failed to create booking")

	// ErrSlotBookingFailed возвращается, когда не удалось связать слоты; бронирование откатывается
	ErrSlotBookingFailed = errors.New("create_booking: failed to reserve slots")

	// ErrInternal возвращается при ошибках чтения свободных слотов
	ErrInternal = errors.New("create_booking: internal error")
)
