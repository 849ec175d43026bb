package bookingslot

import "errors"

var (
	// ErrSlotAlreadyBooked возвращается, когда слот уже занят другим бронированием
	ErrSlotAlreadyBooked = errors.New("bookingslot.repository: slot already booked")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("bookingslot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("bookingslot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("bookingslot.repository: failed to scan row")
)
