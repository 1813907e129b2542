package usecase

import (
	"context"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/ports"
)

// OrderService — прикладная логика чтения и смены статуса (без знаний о транспорте).
type OrderService struct {
	store ports.OrderStore
	cache ports.OrderCache
	bus   ports.EventBus
	log   ports.Logger
}

// NewOrderService — DI-конструктор.
func NewOrderService(
	store ports.OrderStore,
	cache ports.OrderCache,
	bus ports.EventBus,
	log ports.Logger,
) *OrderService {
	return &OrderService{
		store: store,
		cache: cache,
		bus:   bus,
		log:   log,
	}
}

// GetOrder — чтение через кэш: при попадании возвращается возраст записи,
// при промахе — поход в хранилище с прогревом кэша.
// Возвращает (nil, 0, false, nil), если заказа нет.
func (s *OrderService) GetOrder(ctx context.Context, id string) (order *domain.Order, ageSeconds int64, cacheHit bool, err error) {
	if cached, found := s.cache.Get(ctx, id); found {
		age, _ := s.cache.AgeSeconds(ctx, id)
		s.log.Infof(ctx, "cache hit order=%s age=%ds", id, age)
		return cached, age, true, nil
	}

	stored, ok := s.store.GetByID(ctx, id)
	if !ok {
		return nil, 0, false, nil
	}

	s.cache.Set(ctx, stored, 0)
	s.log.Infof(ctx, "cache miss order=%s (primed)", id)
	return stored, 0, false, nil
}

// UpdateStatus — смена статуса с жёсткой связкой кэша и шины:
// invalidate → prime → событие order.status_changed. Порядок invalidate-then-prime
// не даёт конкурентному читателю увидеть устаревшую запись после того, как
// хранилище уже ушло вперёд. Совпадающий статус — не no-op: updatedAt
// обновляется и событие публикуется.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, bool) {
	updated, ok := s.store.UpdateStatus(ctx, id, status)
	if !ok {
		return nil, false
	}

	s.cache.Invalidate(ctx, id)
	s.cache.Set(ctx, updated, 0)
	s.bus.PublishStatusChanged(updated)

	s.log.Infof(ctx, "status updated order=%s status=%s", id, status)
	return updated, true
}
