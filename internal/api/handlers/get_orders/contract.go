package get_orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/service/orders/models"
)

type OrderService interface {
	ListForUser(ctx context.Context, userID uuid.UUID) (*models.OrderListResponse, error)
	ListAll(ctx context.Context, userID uuid.UUID) (*models.OrderListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
