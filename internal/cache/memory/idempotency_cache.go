package memory

import (
	"context"
	"sync"
	"time"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/ports"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/metrics"
)

const cacheNameIdem = "idempotency"

// Проверка, что IdempotencyCache удовлетворяет порту.
var _ ports.IdempotencyCache = (*IdempotencyCache)(nil)

type idemEntry struct {
	statusCode int
	body       []byte
	storedAt   time.Time
	expiresAt  time.Time
}

// IdempotencyCache — TTL-кэш замороженных ответов (код + тело) по ключу.
// Замороженный ответ возвращается байт-в-байт, включая ошибки: именно это
// делает повторы запроса безопасными.
type IdempotencyCache struct {
	ttl   time.Duration
	sweep time.Duration

	mu      sync.Mutex
	entries map[string]*idemEntry

	now func() time.Time
}

// NewIdempotencyCache — кэш с TTL по умолчанию и интервалом фоновой уборки.
func NewIdempotencyCache(ttl, sweep time.Duration) *IdempotencyCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if sweep <= 0 {
		sweep = time.Hour
	}
	return &IdempotencyCache{
		ttl:     ttl,
		sweep:   sweep,
		entries: make(map[string]*idemEntry),
		now:     time.Now,
	}
}

// Get — сохранённый ответ по ключу; истёкшая запись удаляется на месте.
func (c *IdempotencyCache) Get(_ context.Context, key string) (int, []byte, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[key]
	if !ok {
		metrics.CacheOps.WithLabelValues(cacheNameIdem, "miss").Inc()
		return 0, nil, false
	}
	if now.After(ent.expiresAt) {
		delete(c.entries, key)
		metrics.CacheOps.WithLabelValues(cacheNameIdem, "expired").Inc()
		metrics.CacheSize.WithLabelValues(cacheNameIdem).Set(float64(len(c.entries)))
		return 0, nil, false
	}

	metrics.CacheOps.WithLabelValues(cacheNameIdem, "hit").Inc()
	// Копия тела: внутренний буфер не должен утекать наружу.
	body := make([]byte, len(ent.body))
	copy(body, ent.body)
	return ent.statusCode, body, true
}

// Set — зафиксировать терминальный ответ; ttl <= 0 означает дефолт.
// Ошибки кэшируются наравне с успехами.
func (c *IdempotencyCache) Set(_ context.Context, key string, statusCode int, body []byte, ttl time.Duration) {
	if key == "" {
		return
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	now := c.now()

	stored := make([]byte, len(body))
	copy(stored, body)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &idemEntry{
		statusCode: statusCode,
		body:       stored,
		storedAt:   now,
		expiresAt:  now.Add(ttl),
	}
	metrics.CacheSize.WithLabelValues(cacheNameIdem).Set(float64(len(c.entries)))
}

// Len — текущее число записей (для тестов и метрик).
func (c *IdempotencyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// StartSweeper — фоновая уборка истёкших записей; останавливается по контексту.
// TTL — единственный ограничитель роста памяти этого кэша.
func (c *IdempotencyCache) StartSweeper(ctx context.Context) {
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

func (c *IdempotencyCache) removeExpired() {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, ent := range c.entries {
		if now.After(ent.expiresAt) {
			delete(c.entries, key)
			metrics.CacheOps.WithLabelValues(cacheNameIdem, "swept").Inc()
		}
	}
	metrics.CacheSize.WithLabelValues(cacheNameIdem).Set(float64(len(c.entries)))
}
