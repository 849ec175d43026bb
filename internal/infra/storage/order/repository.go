package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/infra/storage/pgerror"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/psqlbuilder"
)

var orderColumns = []string{
	"id",
	"user_id",
	"status",
	"amount",
	"items",
	"stripe_session_id",
	"shipping_address",
	"customer_name",
	"customer_phone",
	"created_at",
}

// Repository репозиторий заказов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create записывает заказ. Повторная запись той же checkout сессии возвращает ErrDuplicateSession
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal items: %v", ErrBuildQuery, err)
	}

	var shipping interface{}
	if order.ShippingAddress != nil {
		raw, err := json.Marshal(order.ShippingAddress)
		if err != nil {
			return nil, fmt.Errorf("%w: Create - marshal shipping address: %v", ErrBuildQuery, err)
		}
		shipping = raw
	}

	var userID interface{}
	if order.UserID != nil {
		userID = *order.UserID
	}

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"id",
			"user_id",
			"status",
			"amount",
			"items",
			"stripe_session_id",
			"shipping_address",
			"customer_name",
			"customer_phone",
		).
		Values(
			order.ID,
			userID,
			string(order.Status),
			order.Amount,
			items,
			order.StripeSessionID,
			shipping,
			order.CustomerName,
			order.CustomerPhone,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt time.Time
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		if pgerror.IsUniqueViolation(err) {
			return nil, ErrDuplicateSession
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	order.CreatedAt = createdAt.UTC()

	return order, nil
}

// ListByUserID возвращает заказы пользователя, новые первыми
func (r *Repository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	return r.list(ctx, "ListByUserID", squirrel.Eq{"user_id": userID})
}

// ListAll возвращает все заказы, новые первыми
func (r *Repository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, "ListAll", nil)
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(orderColumns...).From("orders")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var (
			o        domain.Order
			userID   uuid.NullUUID
			status   string
			items    []byte
			shipping []byte
		)
		if err := rows.Scan(
			&o.ID,
			&userID,
			&status,
			&o.Amount,
			&items,
			&o.StripeSessionID,
			&shipping,
			&o.CustomerName,
			&o.CustomerPhone,
			&o.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan order: %v", ErrScanRow, op, err)
		}

		o.Status = domain.OrderStatus(status)
		if userID.Valid {
			id := userID.UUID
			o.UserID = &id
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &o.Items); err != nil {
				return nil, fmt.Errorf("%w: %s - decode items: %v", ErrScanRow, op, err)
			}
		}
		if len(shipping) > 0 {
			var addr domain.Address
			if err := json.Unmarshal(shipping, &addr); err != nil {
				return nil, fmt.Errorf("%w: %s - decode shipping address: %v", ErrScanRow, op, err)
			}
			o.ShippingAddress = &addr
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrScanRow, op, err)
	}
	return orders, nil
}
