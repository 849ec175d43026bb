package domain

import "time"

// Параметры сетки слотов
const (
	SlotDurationMinutes = 30
	SlotDuration        = SlotDurationMinutes * time.Minute

	// DefaultTimezone часовой пояс бизнеса, в котором считаются дни и время слотов
	DefaultTimezone = "America/New_York"
)

// Форматы даты и времени
const (
	TimeFormat        = "15:04"      // HH:MM
	DateFormat        = "2006-01-02" // YYYY-MM-DD
	DisplayTimeFormat = "3:04 PM"    // 9:00 AM
)

// Магазин
const (
	MaxItemQuantity = 10
	DefaultCurrency = "usd"
)

// Роли профиля
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
