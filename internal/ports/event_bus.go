package ports

import (
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
)

// EventHandler — колбэк доставки события подписчику.
// Возврат ошибки означает мёртвого подписчика: шина удаляет его из живого набора.
type EventHandler func(event domain.Event) error

// Unsubscribe — отписка; повторный вызов безопасен.
type Unsubscribe func()

// EventBus — синхронная шина событий жизненного цикла заказов.
type EventBus interface {
	// Subscribe — регистрация подписчика; возвращённый handle — единственный способ отписаться.
	Subscribe(fn EventHandler) Unsubscribe

	// Publish — доставка события всем живым подписчикам в порядке регистрации.
	Publish(event domain.Event)

	// PublishCreated / PublishUpdated / PublishStatusChanged — удобные публикаторы,
	// проставляющие вид события и timestamp = now.
	PublishCreated(order *domain.Order)
	PublishUpdated(order *domain.Order)
	PublishStatusChanged(order *domain.Order)

	// ActiveCount — текущее число живых подписчиков.
	ActiveCount() int

	// ClearAll — снять всех подписчиков; только для тестов.
	ClearAll()
}
