package testutil

import (
	"fmt"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
)

// OrderOption — настройка фабричного заказа.
type OrderOption func(*domain.Order)

func WithStatus(status domain.Status) OrderOption {
	return func(o *domain.Order) { o.Status = status }
}

func WithAmount(amount float64) OrderOption {
	return func(o *domain.Order) { o.Amount = amount }
}

func WithTimestamps(createdAt, updatedAt int64) OrderOption {
	return func(o *domain.Order) {
		o.CreatedAt = createdAt
		o.UpdatedAt = updatedAt
	}
}

// MakeOrder — валидный заказ с разумными дефолтами для тестов.
func MakeOrder(id string, opts ...OrderOption) *domain.Order {
	o := &domain.Order{
		ID:        id,
		Status:    domain.StatusPending,
		Amount:    10,
		CreatedAt: 1,
		UpdatedAt: 1,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// MakeOrders — n валидных заказов с префиксом id.
func MakeOrders(prefix string, n int) []*domain.Order {
	orders := make([]*domain.Order, 0, n)
	for i := 0; i < n; i++ {
		orders = append(orders, MakeOrder(fmt.Sprintf("%s-%d", prefix, i)))
	}
	return orders
}
