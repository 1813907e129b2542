package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/ctxmeta"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/metrics"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/validate"
)

// idempotencyGate — страж POST /orders/batch.
// Отсутствие или кривой формат ключа — 400 без кэширования (ключа-то нет);
// попадание в кэш — дословный повтор замороженного ответа, конвейер не вызывается.
func (h *Handler) idempotencyGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Idempotency-Key header is required",
				"error":   "Missing required header: Idempotency-Key",
			})
			c.Abort()
			return
		}
		if !validate.ValidIdempotencyKey(key) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid idempotency key format. Must be 1-128 alphanumeric characters, hyphens, or underscores.",
			})
			c.Abort()
			return
		}

		if status, body, ok := h.idem.Get(c.Request.Context(), key); ok {
			metrics.IdempotencyReplays.Inc()
			h.log.Infof(c.Request.Context(), "idempotent replay key=%s status=%d", key, status)
			c.Data(status, jsonContentType, body)
			c.Abort()
			return
		}

		c.Set(ctxKeyIdemKey, key)
		c.Request = c.Request.WithContext(ctxmeta.WithIdempotencyKey(c.Request.Context(), key))
		c.Next()
	}
}

// batchBodyValidator — конверт пачки: непустой массив объектов с id/status/amount.
// Диагностика уходит клиенту дословно; превышение потолка — 413. Ответ об ошибке
// замораживается под ключом запроса: повтор обязан увидеть тот же отказ.
func (h *Handler) batchBodyValidator() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			h.respondRemember(c, http.StatusBadRequest, gin.H{"message": "Body must be an array"})
			c.Abort()
			return
		}

		orders, verr := validate.ParseOrdersInput(raw)
		if verr != nil {
			status := http.StatusBadRequest
			if errors.Is(verr, validate.ErrBatchTooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			h.respondRemember(c, status, gin.H{"message": verr.Error()})
			c.Abort()
			return
		}

		c.Set(ctxKeyOrders, orders)
		c.Next()
	}
}

// orderIDValidator — формат id в пути запроса.
func (h *Handler) orderIDValidator() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := validate.ValidateOrderID(c.Param("id")); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			c.Abort()
			return
		}
		c.Next()
	}
}

// stressConfigValidator — тело POST /orders/stress-test с дефолтами и границами.
func (h *Handler) stressConfigValidator() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Body must be an object"})
			c.Abort()
			return
		}

		cfg, verr := validate.ParseStressConfig(raw)
		if verr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": verr.Error()})
			c.Abort()
			return
		}

		c.Set(ctxKeyStress, cfg)
		c.Next()
	}
}
