package domain

import "math"

// Product товар магазина
type Product struct {
	ID          int64
	Name        string
	Type        string
	Description string
	Price       float64 // в долларах
	Quantity    int     // остаток на складе
	Image       string
}

// UnitAmountCents цена в минимальных единицах валюты
func (p *Product) UnitAmountCents() int64 {
	return int64(math.Round(p.Price * 100))
}

// InStock true, если на складе хватает qty единиц
func (p *Product) InStock(qty int) bool {
	return qty <= p.Quantity
}

// ClampQuantity ограничивает количество диапазоном [1, max]
func ClampQuantity(qty, max int) int {
	if qty < 1 {
		return 1
	}
	if qty > max {
		return max
	}
	return qty
}
