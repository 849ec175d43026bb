package create_checkout_session

import (
	createCheckoutSession "github.com/m04kA/SMC-StudioService/internal/usecase/create_checkout_session"
)

// CheckoutRequest HTTP request model. Остальные поля корзины (цена, название) игнорируются
type CheckoutRequest struct {
	UserID string         `json:"user_id"`
	Cart   []CartItemBody `json:"cart"`
}

// CartItemBody позиция корзины
type CartItemBody struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

// CheckoutResponse ссылка на оплату
type CheckoutResponse struct {
	URL string `json:"url"`
}

// CheckoutErrorResponse ошибка в формате, который ждёт корзина на клиенте
type CheckoutErrorResponse struct {
	Error string `json:"error"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckoutRequest) ToUseCaseRequest() *createCheckoutSession.Request {
	cart := make([]createCheckoutSession.CartItem, 0, len(r.Cart))
	for _, item := range r.Cart {
		cart = append(cart, createCheckoutSession.CartItem{ID: item.ID, Quantity: item.Quantity})
	}
	return &createCheckoutSession.Request{UserID: r.UserID, Cart: cart}
}
