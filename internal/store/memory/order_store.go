package memory

import (
	"context"
	"sync"
	"time"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/ports"
)

// Проверка, что OrderStore удовлетворяет порту.
var _ ports.OrderStore = (*OrderStore)(nil)

// OrderStore — авторитетное хранилище заказов в памяти.
// Единственный владелец записей; наружу уходят только копии.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order

	// now — источник времени; подменяется в тестах.
	now func() time.Time
}

func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[string]*domain.Order),
		now:    time.Now,
	}
}

// BulkInsert — вставка пачки; при повторении id в пределах вызова побеждает
// последняя запись. Отдельный заказ никогда не наблюдаем наполовину вставленным.
func (s *OrderStore) BulkInsert(_ context.Context, orders []*domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range orders {
		if order == nil || order.ID == "" {
			continue
		}
		s.orders[order.ID] = order.Clone()
	}
	return nil
}

// GetByID — копия заказа по id.
func (s *OrderStore) GetByID(_ context.Context, id string) (*domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, false
	}
	return order.Clone(), true
}

// UpdateStatus — перевод в новый статус с обновлением updatedAt.
// Совпадающий статус не короткое замыкание: updatedAt обновляется всегда,
// чтобы повтор запроса был наблюдаем.
func (s *OrderStore) UpdateStatus(_ context.Context, id string, status domain.Status) (*domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, false
	}

	updated := order.Clone()
	updated.Status = status
	updated.UpdatedAt = s.now().UnixMilli()
	s.orders[id] = updated

	return updated.Clone(), true
}

// GetAll — снимок всех заказов; порядок не определён.
func (s *OrderStore) GetAll(_ context.Context) []*domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		out = append(out, order.Clone())
	}
	return out
}

// Len — текущее количество заказов.
func (s *OrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// Clear — полная очистка; только для тестов.
func (s *OrderStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = make(map[string]*domain.Order)
}
