package validate

import (
	"fmt"
	"math"
	"regexp"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
)

// orderIDRe — допустимый формат идентификатора заказа и ключа идемпотентности.
var orderIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// ValidateOrder — доменная валидация одного заказа.
// Возвращает ErrInvalidOrder (с обёрнутой причиной) при любой проблеме.
func ValidateOrder(order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("%w: заказ не может быть nil", ErrInvalidOrder)
	}
	if order.ID == "" {
		return fmt.Errorf("%w: id обязателен", ErrInvalidOrder)
	}
	if !domain.KnownStatus(order.Status) {
		return fmt.Errorf("%w: неизвестный статус %q", ErrInvalidOrder, order.Status)
	}
	if math.IsNaN(order.Amount) || math.IsInf(order.Amount, 0) || order.Amount < 0 {
		return fmt.Errorf("%w: amount должен быть конечным и неотрицательным", ErrInvalidOrder)
	}
	if order.CreatedAt <= 0 {
		return fmt.Errorf("%w: createdAt должен быть положительным", ErrInvalidOrder)
	}
	if order.UpdatedAt <= 0 {
		return fmt.Errorf("%w: updatedAt должен быть положительным", ErrInvalidOrder)
	}
	return nil
}

// ValidateOrderID — формат идентификатора в пути запроса.
func ValidateOrderID(id string) error {
	if !orderIDRe.MatchString(id) {
		return invalidf("Invalid order id format. Must be 1-128 alphanumeric characters, hyphens, or underscores.")
	}
	return nil
}

// ValidIdempotencyKey — формат ключа идемпотентности (тот же алфавит, что и id).
func ValidIdempotencyKey(key string) bool {
	return orderIDRe.MatchString(key)
}

// ValidateBatchSize — размер чанка конвейера; 0 означает "взять дефолт".
func ValidateBatchSize(n, def int) (int, error) {
	if n == 0 {
		n = def
	}
	if n < 1 || n > 1000 {
		return 0, badConfig("Batch size must be between 1 and 1000")
	}
	return n, nil
}
