package validate

import (
	"encoding/json"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
)

// MaxOrdersPerRequest — жёсткий потолок размера пачки в одном запросе.
const MaxOrdersPerRequest = 1000

// ParseOrdersInput — валидация конверта пачки: тело обязано быть непустым JSON-массивом
// объектов, каждый с id (string), status (string) и amount (number).
// Диагностики фиксированы и возвращаются клиенту дословно; превышение потолка
// отличимо через ErrBatchTooLarge. Поля createdAt/updatedAt переносятся как есть —
// их корректность проверяет уже по-заказная доменная валидация в конвейере.
func ParseOrdersInput(raw []byte) ([]*domain.Order, error) {
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, invalidf("Body must be an array")
	}

	items, ok := body.([]any)
	if !ok {
		return nil, invalidf("Body must be an array")
	}
	if len(items) == 0 {
		return nil, invalidf("Orders array cannot be empty")
	}
	if len(items) > MaxOrdersPerRequest {
		return nil, tooLargef("Maximum 1000 orders allowed per request")
	}

	orders := make([]*domain.Order, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, invalidf("All items must be objects")
		}

		id, ok := obj["id"].(string)
		if !ok {
			return nil, invalidf("All orders must have a valid id (string)")
		}
		status, ok := obj["status"].(string)
		if !ok {
			return nil, invalidf("All orders must have a valid status (string)")
		}
		amount, ok := obj["amount"].(float64)
		if !ok {
			return nil, invalidf("All orders must have a valid amount (number)")
		}

		order := &domain.Order{
			ID:     id,
			Status: domain.Status(status),
			Amount: amount,
		}
		if v, ok := obj["createdAt"].(float64); ok {
			order.CreatedAt = int64(v)
		}
		if v, ok := obj["updatedAt"].(float64); ok {
			order.UpdatedAt = int64(v)
		}
		orders = append(orders, order)
	}

	return orders, nil
}
