package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/ports"
)

// Проверка, что Publisher удовлетворяет порту.
var _ ports.EventPublisher = (*Publisher)(nil)

// writer — минимальный контракт над kafka.Writer,
// чтобы легко подменять его фейками в тестах.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// PublisherConfig — настройки зеркала событий.
type PublisherConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// Publisher — зеркалирует события жизненного цикла заказов в Kafka-топик.
// Ключ сообщения — id заказа: события одного заказа попадают в одну партицию
// и сохраняют порядок. Доставка best-effort: сбой записи логируется и
// возвращается вызывающему Publish; подписка на шине (AttachTo) его глотает,
// так что конвейер от него не зависит.
type Publisher struct {
	writer       writer
	log          ports.Logger
	writeTimeout time.Duration
	closeOnce    sync.Once
}

// NewPublisher — конструктор поверх kafka.Writer с балансировкой по ключу.
func NewPublisher(cfg *PublisherConfig, log ports.Logger) *Publisher {
	wt := cfg.WriteTimeout
	if wt <= 0 {
		wt = 5 * time.Second
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: wt,
	}

	return &Publisher{
		writer:       w,
		log:          log,
		writeTimeout: wt,
	}
}

// Publish — одно событие одним сообщением; заголовок kind дублирует вид события.
func (p *Publisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(event.Order.ID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(event.Kind)},
		},
	}
	if err := p.writer.WriteMessages(ctxTimeout, msg); err != nil {
		p.log.Warnf(ctx, "kafka mirror write failed order=%s kind=%s: %v", event.Order.ID, event.Kind, err)
		return err
	}
	return nil
}

// Close — закрывает writer. Вызывается при остановке приложения.
func (p *Publisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}

// AttachTo — подписывает зеркало на шину. Возвращённый handle снимает подписку.
// Ошибка записи НЕ хоронит подписчика шины: зеркало само решает, что делать
// с недоставленными событиями, а SSE-клиенты не должны страдать от брокера.
func (p *Publisher) AttachTo(bus ports.EventBus) ports.Unsubscribe {
	return bus.Subscribe(func(event domain.Event) error {
		// Доставка best-effort: ошибку глотаем, подписка живёт дальше.
		_ = p.Publish(context.Background(), event)
		return nil
	})
}
