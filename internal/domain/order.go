package domain

// Status — закрытое множество статусов заказа.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// KnownStatus — проверка принадлежности к множеству статусов.
func KnownStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Order — заказ: идентификатор, статус, сумма и метки времени (epoch миллисекунды).
type Order struct {
	ID        string  `json:"id"`
	Status    Status  `json:"status"`
	Amount    float64 `json:"amount"`
	CreatedAt int64   `json:"createdAt"`
	UpdatedAt int64   `json:"updatedAt"`
}

// Clone — копия заказа, чтобы внешние изменения не отражались на данных
// внутри хранилища и кэша.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	cp := *o
	return &cp
}
