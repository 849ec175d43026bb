package process_checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	orderRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/order"
	"github.com/m04kA/SMC-StudioService/internal/integrations/payments"
)

// UseCase use case записи оплаченного заказа по событию checkout.session.completed
type UseCase struct {
	lineItems   LineItemsLister
	orderRepo   OrderRepository
	productRepo ProductRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	lineItems LineItemsLister,
	orderRepo OrderRepository,
	productRepo ProductRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		lineItems:   lineItems,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute записывает заказ и списывает остатки в одной транзакции.
// Повтор той же сессии подтверждается без изменений
func (uc *UseCase) Execute(ctx context.Context, session *payments.CompletedSession) (*Response, error) {
	if session == nil || session.ID == "" {
		return nil, fmt.Errorf("%w: session is required", ErrInvalidInput)
	}
	uc.logger.Info("ProcessCheckout: session=%s, client_reference_id=%s", session.ID, session.ClientReferenceID)

	items, err := uc.lineItems.ListLineItems(ctx, session.ID)
	if err != nil {
		uc.logger.Error("ProcessCheckout: failed to list line items for session=%s: %v", session.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrLineItems, err)
	}

	order := buildOrder(session, items)
	decrements := stockDecrements(items)

	var created *domain.Order
	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = uc.orderRepo.Create(ctx, order)
		if err != nil {
			return err
		}
		for _, d := range decrements {
			if err := uc.productRepo.DecrementStock(ctx, d.ProductID, d.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, orderRepo.ErrDuplicateSession) {
			uc.logger.Warn("ProcessCheckout: session=%s already processed", session.ID)
			return &Response{Duplicate: true}, nil
		}
		uc.logger.Error("ProcessCheckout: failed to record order for session=%s: %v", session.ID, err)
		return nil, fmt.Errorf("%w: record order: %v", ErrInternal, err)
	}

	uc.logger.Info("ProcessCheckout: order=%s recorded, amount=%.2f, %d item(s), %d stock update(s)",
		created.ID, created.Amount, len(created.Items), len(decrements))
	return &Response{OrderID: created.ID}, nil
}

func buildOrder(session *payments.CompletedSession, items []payments.PurchasedItem) *domain.Order {
	order := &domain.Order{
		Status:          domain.OrderStatusPaid,
		Amount:          float64(session.AmountTotal) / 100,
		Items:           make([]domain.OrderItem, 0, len(items)),
		StripeSessionID: session.ID,
		ShippingAddress: session.ShippingAddress,
		CustomerName:    session.CustomerName,
		CustomerPhone:   session.CustomerPhone,
	}
	if userID, err := uuid.Parse(session.ClientReferenceID); err == nil {
		order.UserID = &userID
	}
	for _, item := range items {
		order.Items = append(order.Items, domain.OrderItem{
			Name:       item.Name,
			UnitAmount: item.UnitAmount,
			Quantity:   item.Quantity,
		})
	}
	return order
}

// stockDecrements суммирует количество по товарам; позиции без product_id пропускаются
func stockDecrements(items []payments.PurchasedItem) []domain.StockDecrement {
	index := make(map[int64]int)
	out := make([]domain.StockDecrement, 0, len(items))
	for _, item := range items {
		if item.ProductID == nil || item.Quantity <= 0 {
			continue
		}
		if i, ok := index[*item.ProductID]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		index[*item.ProductID] = len(out)
		out = append(out, domain.StockDecrement{ProductID: *item.ProductID, Quantity: item.Quantity})
	}
	return out
}
