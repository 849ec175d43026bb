package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus статус заказа
type OrderStatus string

const (
	OrderStatusPaid OrderStatus = "paid"
)

// OrderItem позиция заказа в том виде, в каком её вернул платёжный провайдер
type OrderItem struct {
	Name       string `json:"name"`
	UnitAmount int64  `json:"unit_amount"` // в центах
	Quantity   int64  `json:"quantity"`
}

// Address адрес доставки
type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Order оплаченный заказ
type Order struct {
	ID              uuid.UUID
	UserID          *uuid.UUID
	Status          OrderStatus
	Amount          float64 // в долларах
	Items           []OrderItem
	StripeSessionID string
	ShippingAddress *Address
	CustomerName    string
	CustomerPhone   string
	CreatedAt       time.Time
}

// StockDecrement уменьшение остатка товара после оплаты
type StockDecrement struct {
	ProductID int64
	Quantity  int64
}
