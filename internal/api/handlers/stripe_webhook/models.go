package stripe_webhook

// AckResponse подтверждение получения события
type AckResponse struct {
	Received bool `json:"received"`
}

// ErrorResponse ошибка обработки события
type ErrorResponse struct {
	Error string `json:"error"`
}

// Статусы для метрики webhook
const (
	statusRejected  = "rejected"
	statusIgnored   = "ignored"
	statusProcessed = "processed"
	statusDuplicate = "duplicate"
	statusFailed    = "failed"
)
