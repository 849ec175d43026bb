package get_availability

import "github.com/m04kA/SMC-StudioService/internal/domain"

// Request модель запроса доступных слотов
type Request struct {
	Date *string // YYYY-MM-DD, nil = все дни
}

// Response свободные слоты по дням, дни по возрастанию
type Response struct {
	Days []Day
}

// Day свободные слоты одного дня
type Day struct {
	Date   string
	Slots  []domain.DisplaySlot
	Ranges []string // "9:00 AM - 10:30 AM"
}
