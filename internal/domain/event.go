package domain

// EventKind — вид события жизненного цикла заказа.
// Строковое значение совпадает с именем SSE-события на проводе.
type EventKind string

const (
	EventCreated       EventKind = "order.created"
	EventUpdated       EventKind = "order.updated"
	EventStatusChanged EventKind = "order.status_changed"
)

// Event — событие жизненного цикла: вид, снимок заказа и момент публикации (epoch мс).
type Event struct {
	Kind      EventKind `json:"kind"`
	Order     *Order    `json:"order"`
	Timestamp int64     `json:"timestamp"`
}
