package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// OrderResponse заказ
type OrderResponse struct {
	ID              uuid.UUID          `json:"id"`
	UserID          *uuid.UUID         `json:"userId,omitempty"`
	Status          domain.OrderStatus `json:"status"`
	Amount          float64            `json:"amount"`
	Items           []domain.OrderItem `json:"items"`
	ShippingAddress *domain.Address    `json:"shippingAddress,omitempty"`
	CustomerName    string             `json:"customerName,omitempty"`
	CustomerPhone   string             `json:"customerPhone,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// OrderListResponse список заказов, новые первыми
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

// FromDomainOrders конвертирует заказы в ответ
func FromDomainOrders(orders []domain.Order) *OrderListResponse {
	resp := &OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
		Total:  len(orders),
	}
	for _, o := range orders {
		items := o.Items
		if items == nil {
			items = []domain.OrderItem{}
		}
		resp.Orders = append(resp.Orders, OrderResponse{
			ID:              o.ID,
			UserID:          o.UserID,
			Status:          o.Status,
			Amount:          o.Amount,
			Items:           items,
			ShippingAddress: o.ShippingAddress,
			CustomerName:    o.CustomerName,
			CustomerPhone:   o.CustomerPhone,
			CreatedAt:       o.CreatedAt,
		})
	}
	return resp
}
