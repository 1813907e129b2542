package memory

import (
	"context"
	"sync"
	"time"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/ports"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/metrics"
)

const cacheNameOrders = "orders"

// Проверка, что OrderCache удовлетворяет порту.
var _ ports.OrderCache = (*OrderCache)(nil)

type orderEntry struct {
	order     *domain.Order
	cachedAt  time.Time
	expiresAt time.Time
}

// OrderCache — TTL-кэш заказов. Хранит снимки с меткой cachedAt;
// истёкшие записи невидимы для Get и удаляются фоновым свипером.
type OrderCache struct {
	ttl   time.Duration
	sweep time.Duration

	mu      sync.Mutex
	entries map[string]*orderEntry

	now func() time.Time
}

// NewOrderCache — кэш с TTL по умолчанию и интервалом фоновой уборки.
func NewOrderCache(ttl, sweep time.Duration) *OrderCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if sweep <= 0 {
		sweep = time.Minute
	}
	return &OrderCache{
		ttl:     ttl,
		sweep:   sweep,
		entries: make(map[string]*orderEntry),
		now:     time.Now,
	}
}

// Get — живая запись по id; истёкшая запись удаляется на месте.
func (c *OrderCache) Get(_ context.Context, id string) (*domain.Order, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[id]
	if !ok {
		metrics.CacheOps.WithLabelValues(cacheNameOrders, "miss").Inc()
		return nil, false
	}
	if now.After(ent.expiresAt) {
		delete(c.entries, id)
		metrics.CacheOps.WithLabelValues(cacheNameOrders, "expired").Inc()
		metrics.CacheSize.WithLabelValues(cacheNameOrders).Set(float64(len(c.entries)))
		return nil, false
	}

	metrics.CacheOps.WithLabelValues(cacheNameOrders, "hit").Inc()
	return ent.order.Clone(), true
}

// Set — снимок заказа со штампом cachedAt = now; ttl <= 0 означает дефолт.
func (c *OrderCache) Set(_ context.Context, order *domain.Order, ttl time.Duration) {
	if order == nil || order.ID == "" {
		return
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[order.ID] = &orderEntry{
		order:     order.Clone(),
		cachedAt:  now,
		expiresAt: now.Add(ttl),
	}
	metrics.CacheSize.WithLabelValues(cacheNameOrders).Set(float64(len(c.entries)))
}

// Invalidate — удалить запись по id.
func (c *OrderCache) Invalidate(_ context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; ok {
		delete(c.entries, id)
		metrics.CacheOps.WithLabelValues(cacheNameOrders, "invalidated").Inc()
		metrics.CacheSize.WithLabelValues(cacheNameOrders).Set(float64(len(c.entries)))
	}
}

// AgeSeconds — floor((now − cachedAt)/1s) живой записи.
func (c *OrderCache) AgeSeconds(_ context.Context, id string) (int64, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[id]
	if !ok || now.After(ent.expiresAt) {
		return 0, false
	}
	return int64(now.Sub(ent.cachedAt) / time.Second), true
}

// Len — текущее число записей (для тестов и метрик).
func (c *OrderCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// StartSweeper — фоновая уборка истёкших записей; останавливается по контексту.
func (c *OrderCache) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(c.sweep)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.removeExpired()
			}
		}
	}()
}

// removeExpired — один проход по карте под общим локом.
func (c *OrderCache) removeExpired() {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for id, ent := range c.entries {
		if now.After(ent.expiresAt) {
			delete(c.entries, id)
			metrics.CacheOps.WithLabelValues(cacheNameOrders, "swept").Inc()
		}
	}
	metrics.CacheSize.WithLabelValues(cacheNameOrders).Set(float64(len(c.entries)))
}
