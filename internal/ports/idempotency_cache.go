package ports

import (
	"context"
	"time"
)

// IdempotencyCache — TTL-кэш терминальных ответов по ключу идемпотентности.
// Повтор с тем же ключом обязан получить байт-в-байт тот же ответ,
// включая закэшированные ошибки.
type IdempotencyCache interface {
	// Get — вернуть сохранённый ответ; (status, body, true) при попадании.
	Get(ctx context.Context, key string) (int, []byte, bool)

	// Set — зафиксировать терминальный ответ под ключом (0 — TTL по умолчанию).
	Set(ctx context.Context, key string, statusCode int, body []byte, ttl time.Duration)
}
