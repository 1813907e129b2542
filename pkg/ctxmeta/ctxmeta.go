// Пакет ctxmeta — нейтральный слой для работы с метаданными запроса,
// которые прокидываются через context.Context (request_id, ключ идемпотентности).
// Идея: HTTP-слой и логгер зависят от небольшого общего пакета, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// Ключи контекста (неэкспортируемые типы — чтобы избежать коллизий).
	KeyRequestID      ctxKey = "request_id"
	KeyIdempotencyKey ctxKey = "idempotency_key"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithIdempotencyKey кладёт ключ идемпотентности в контекст.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	if ctx == nil || key == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyIdempotencyKey, key)
}

// IdempotencyKeyFromContext достаёт ключ идемпотентности из контекста.
func IdempotencyKeyFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyIdempotencyKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
