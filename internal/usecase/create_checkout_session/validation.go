package create_checkout_session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// validateRequest валидирует входные данные и возвращает ID пользователя
func validateRequest(req *Request) (uuid.UUID, error) {
	if req.UserID == "" {
		return uuid.Nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: user_id must be a uuid", ErrInvalidInput)
	}
	if len(req.Cart) == 0 {
		return uuid.Nil, fmt.Errorf("%w: cart is empty", ErrInvalidInput)
	}
	for _, item := range req.Cart {
		if item.ID <= 0 {
			return uuid.Nil, fmt.Errorf("%w: invalid product id %d", ErrInvalidInput, item.ID)
		}
	}
	return userID, nil
}

// mergeCart объединяет повторяющиеся позиции, сохраняя порядок первого появления.
// Каждая строка и итоговая сумма ограничены диапазоном [1, maxQty]
func mergeCart(cart []CartItem, maxQty int) []CartItem {
	index := make(map[int64]int, len(cart))
	merged := make([]CartItem, 0, len(cart))
	for _, item := range cart {
		item.Quantity = domain.ClampQuantity(item.Quantity, maxQty)
		if i, ok := index[item.ID]; ok {
			merged[i].Quantity = domain.ClampQuantity(merged[i].Quantity+item.Quantity, maxQty)
			continue
		}
		index[item.ID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}
