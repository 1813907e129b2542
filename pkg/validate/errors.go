package validate

import "errors"

// Сентинелы для классификации ошибок валидации на верхних слоях.
var (
	// ErrInvalidOrder — заказ не прошёл доменную валидацию.
	ErrInvalidOrder = errors.New("order validation failed")

	// ErrInvalidBatch — тело запроса не является корректной пачкой заказов.
	ErrInvalidBatch = errors.New("invalid orders payload")

	// ErrBatchTooLarge — пачка превышает MaxOrdersPerRequest.
	ErrBatchTooLarge = errors.New("payload too large")

	// ErrInvalidConfig — некорректная конфигурация стресс-теста или размера чанка.
	ErrInvalidConfig = errors.New("invalid config")
)

// InputError — диагностика уровня запроса с точным текстом для клиента.
// Message возвращается в ответе как есть; kind — сентинел для errors.Is.
type InputError struct {
	Message string
	kind    error
}

func (e *InputError) Error() string { return e.Message }
func (e *InputError) Unwrap() error { return e.kind }

func invalidf(msg string) *InputError  { return &InputError{Message: msg, kind: ErrInvalidBatch} }
func tooLargef(msg string) *InputError { return &InputError{Message: msg, kind: ErrBatchTooLarge} }
func badConfig(msg string) *InputError { return &InputError{Message: msg, kind: ErrInvalidConfig} }
