package payments

import "errors"

var (
	// ErrInvalidSignature возвращается, когда подпись webhook не прошла проверку
	ErrInvalidSignature = errors.New("payments: invalid webhook signature")

	// ErrProvider возвращается при ошибках API платёжного провайдера
	ErrProvider = errors.New("payments: provider error")

	// ErrInvalidPayload возвращается, когда событие не удалось разобрать
	ErrInvalidPayload = errors.New("payments: invalid event payload")
)
