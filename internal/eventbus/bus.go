// Пакет eventbus — синхронная шина событий жизненного цикла заказов.
// Внутренней очереди нет: Publish доставляет событие в вызывающей горутине,
// медленный подписчик замедляет публикатора. Исходящая буферизация — забота
// транспорта (SSE держит ограниченный канал на соединение).
package eventbus

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/ports"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/metrics"
)

// Проверка, что Bus удовлетворяет порту.
var _ ports.EventBus = (*Bus)(nil)

type subscriber struct {
	fn    ports.EventHandler
	alive atomic.Bool
}

// Bus — набор живых подписчиков в порядке регистрации.
type Bus struct {
	mu   sync.Mutex
	subs []*subscriber
	log  ports.Logger

	now func() time.Time
}

func New(log ports.Logger) *Bus {
	return &Bus{log: log, now: time.Now}
}

// Subscribe — регистрация подписчика. Возвращённый handle — единственный
// способ отписаться; повторный вызов безопасен.
func (b *Bus) Subscribe(fn ports.EventHandler) ports.Unsubscribe {
	sub := &subscriber{fn: fn}
	sub.alive.Store(true)

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	metrics.EventSubscribers.Set(float64(len(b.subs)))
	b.mu.Unlock()

	return func() { b.remove(sub) }
}

// Publish — доставка всем живым подписчикам в порядке регистрации.
// Ошибка или паника колбэка хоронит подписчика; доставка остальным продолжается.
// Событие никогда не доставляется повторно.
func (b *Bus) Publish(event domain.Event) {
	b.mu.Lock()
	snapshot := make([]*subscriber, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, sub := range snapshot {
		if !sub.alive.Load() {
			continue
		}
		if err := b.deliver(sub, event); err != nil {
			b.remove(sub)
			metrics.EventSubscribersDropped.Inc()
			if b.log != nil {
				b.log.Warnf(context.Background(), "event subscriber dropped kind=%s err=%v", event.Kind, err)
			}
		}
	}

	metrics.EventsPublished.WithLabelValues(string(event.Kind)).Inc()
}

// deliver — один вызов колбэка; паника приравнивается к ошибке доставки.
func (b *Bus) deliver(sub *subscriber, event domain.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return sub.fn(event)
}

// PublishCreated — событие order.created со штампом timestamp = now.
func (b *Bus) PublishCreated(order *domain.Order) {
	b.Publish(domain.Event{Kind: domain.EventCreated, Order: order.Clone(), Timestamp: b.now().UnixMilli()})
}

// PublishUpdated — событие order.updated.
func (b *Bus) PublishUpdated(order *domain.Order) {
	b.Publish(domain.Event{Kind: domain.EventUpdated, Order: order.Clone(), Timestamp: b.now().UnixMilli()})
}

// PublishStatusChanged — событие order.status_changed.
func (b *Bus) PublishStatusChanged(order *domain.Order) {
	b.Publish(domain.Event{Kind: domain.EventStatusChanged, Order: order.Clone(), Timestamp: b.now().UnixMilli()})
}

// ActiveCount — текущее число живых подписчиков.
func (b *Bus) ActiveCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// ClearAll — снять всех подписчиков; только для тестов.
func (b *Bus) ClearAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		sub.alive.Store(false)
	}
	b.subs = nil
	metrics.EventSubscribers.Set(0)
}

// remove — исключает подписчика из живого набора; сохраняет порядок остальных.
func (b *Bus) remove(sub *subscriber) {
	if !sub.alive.CompareAndSwap(true, false) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			break
		}
	}
	metrics.EventSubscribers.Set(float64(len(b.subs)))
}

type panicError struct{ value any }

func (e *panicError) Error() string { return fmt.Sprintf("subscriber panic: %v", e.value) }
