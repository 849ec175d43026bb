package authservice

import "github.com/google/uuid"

// User пользователь из admin API сервиса авторизации
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
	Role  string    `json:"role"`
}

// ErrorResponse модель ошибки от сервиса авторизации
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
}
