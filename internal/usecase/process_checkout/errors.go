package process_checkout

import "errors"

var (
	// ErrInvalidInput возвращается, когда событие не содержит сессии
	ErrInvalidInput = errors.New("process_checkout: invalid input data")

	// ErrLineItems возвращается, когда не удалось получить позиции сессии
	ErrLineItems = errors.New("process_checkout: failed to list line items")

	// ErrInternal возвращается при ошибке записи заказа
	ErrInternal = errors.New("process_checkout: internal error")
)
