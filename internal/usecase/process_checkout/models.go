package process_checkout

import "github.com/google/uuid"

// Response результат обработки оплаты
type Response struct {
	OrderID   uuid.UUID
	Duplicate bool // сессия уже была обработана
}
