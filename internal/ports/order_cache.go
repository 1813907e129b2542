package ports

import (
	"context"
	"time"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
)

// OrderCache — TTL-кэш заказов поверх хранилища.
// Требования к реализации: потокобезопасность; возврат копий; истёкшие записи
// невидимы для Get.
type OrderCache interface {
	// Get — вернуть живую запись по id; (order, true) при попадании.
	Get(ctx context.Context, id string) (*domain.Order, bool)

	// Set — сохранить снимок заказа с заданным TTL (0 — TTL по умолчанию).
	Set(ctx context.Context, order *domain.Order, ttl time.Duration)

	// Invalidate — удалить запись по id.
	Invalidate(ctx context.Context, id string)

	// AgeSeconds — возраст живой записи в целых секундах; (age, true) если запись жива.
	AgeSeconds(ctx context.Context, id string) (int64, bool)
}
