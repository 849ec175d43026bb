package process_checkout

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/integrations/payments"
)

// LineItemsLister получение купленных позиций сессии
type LineItemsLister interface {
	ListLineItems(ctx context.Context, sessionID string) ([]payments.PurchasedItem, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	DecrementStock(ctx context.Context, productID int64, qty int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
