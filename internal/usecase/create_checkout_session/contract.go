package create_checkout_session

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/integrations/authservice"
	"github.com/m04kA/SMC-StudioService/internal/integrations/payments"
)

// UserVerifier проверка пользователя в сервисе авторизации
type UserVerifier interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*authservice.User, error)
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
}

// PaymentsClient интерфейс платёжного провайдера
type PaymentsClient interface {
	CreateCheckoutSession(ctx context.Context, req payments.CheckoutRequest) (*payments.CheckoutSession, error)
}

// Metrics счетчик checkout сессий
type Metrics interface {
	ObserveCheckout(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
