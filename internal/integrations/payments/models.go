package payments

import "github.com/m04kA/SMC-StudioService/internal/domain"

// CheckoutLine позиция для hosted checkout. Цена берётся только из таблицы товаров
type CheckoutLine struct {
	ProductID   int64
	Name        string
	Description string
	Image       string
	UnitAmount  int64 // в центах
	Quantity    int64
}

// CheckoutRequest параметры создания checkout сессии
type CheckoutRequest struct {
	UserID           string
	Lines            []CheckoutLine
	Currency         string
	SuccessURL       string
	CancelURL        string
	AllowedCountries []string
	IdempotencyKey   string
}

// CheckoutSession созданная сессия
type CheckoutSession struct {
	ID  string
	URL string
}

// CompletedSession данные завершённой оплаты из события checkout.session.completed
type CompletedSession struct {
	ID                string
	ClientReferenceID string
	AmountTotal       int64 // в центах
	CustomerName      string
	CustomerPhone     string
	ShippingAddress   *domain.Address
}

// PurchasedItem купленная позиция. ProductID = nil, если товар не несёт metadata.product_id
type PurchasedItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
	ProductID  *int64
}

// Event проверенное событие провайдера
type Event struct {
	ID      string
	Type    string
	Session *CompletedSession // заполнено только для checkout.session.completed
}
