package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
)

// errSlowSubscriber — исходящий буфер соединения переполнен; для шины это
// мёртвый подписчик.
var errSlowSubscriber = errors.New("subscriber buffer overflow")

// streamOrders — GET /orders/stream: долгоживущий SSE-поток событий заказов.
//
// Колбэк шины лишь кладёт событие в ограниченный канал соединения — публикатор
// никогда не блокируется на медленном клиенте. Переполнение канала означает
// безнадёжно отставшего клиента: колбэк возвращает ошибку, шина хоронит
// подписчика, цикл ниже замечает закрытие и завершает соединение.
func (h *Handler) streamOrders(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "streaming unsupported"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)

	if _, err := io.WriteString(c.Writer, ": connected\n\n"); err != nil {
		return
	}
	flusher.Flush()

	out := make(chan domain.Event, h.sseBuffer)
	dropped := make(chan struct{})
	var dropOnce sync.Once
	unsubscribe := h.bus.Subscribe(func(event domain.Event) error {
		select {
		case out <- event:
			return nil
		default:
			dropOnce.Do(func() { close(dropped) })
			return errSlowSubscriber
		}
	})
	defer unsubscribe()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	h.log.Infof(ctx, "sse client connected active=%d", h.bus.ActiveCount())
	defer func() { h.log.Infof(ctx, "sse client disconnected active=%d", h.bus.ActiveCount()) }()

	for {
		select {
		case <-ctx.Done():
			return

		case <-dropped:
			return

		case event := <-out:
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event.Kind, payload); err != nil {
				return
			}
			flusher.Flush()

		case <-heartbeat.C:
			if _, err := io.WriteString(c.Writer, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
