package ports

import (
	"context"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
)

// OrderStore — авторитетное хранилище заказов.
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1);
// возврат копий сущности.
type OrderStore interface {
	// BulkInsert — вставка пачки заказов; при повторении id внутри одного
	// вызова побеждает последняя запись.
	BulkInsert(ctx context.Context, orders []*domain.Order) error

	// GetByID — вернуть заказ по id; (order, true) если найден.
	GetByID(ctx context.Context, id string) (*domain.Order, bool)

	// UpdateStatus — перевести заказ в новый статус и обновить updatedAt;
	// (nil, false) если заказа нет. Совпадающий статус не короткое замыкание:
	// updatedAt обновляется всегда.
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, bool)

	// GetAll — снимок всех заказов (порядок не определён).
	GetAll(ctx context.Context) []*domain.Order

	// Len — текущее количество заказов.
	Len() int

	// Clear — полная очистка; только для тестов.
	Clear()
}
