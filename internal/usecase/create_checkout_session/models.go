package create_checkout_session

// Request корзина пользователя
type Request struct {
	UserID string
	Cart   []CartItem
}

// CartItem позиция корзины. Цена клиента игнорируется
type CartItem struct {
	ID       int64
	Quantity int
}

// Response ссылка на hosted checkout
type Response struct {
	SessionID string
	URL       string
}

// Config параметры checkout
type Config struct {
	Currency         string
	FrontendURL      string
	AllowedCountries []string
	MaxItemQuantity  int
}

// Статусы для метрики checkout
const (
	statusCreated  = "created"
	statusRejected = "rejected"
	statusFailed   = "failed"
)
