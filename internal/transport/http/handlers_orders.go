package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/usecase"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/validate"
)

// batchResponse — конверт успешного POST /orders/batch.
type batchResponse struct {
	Success      bool                  `json:"success"`
	Total        int                   `json:"total"`
	Processed    int                   `json:"processed"`
	Failed       int                   `json:"failed"`
	Batches      int                   `json:"batches"`
	BatchResults []usecase.ChunkResult `json:"batchResults"`
}

// createBatch — конвейер вставки поверх уже валидированного конверта.
// Любой исход (успех, 400, 500) замораживается под ключом идемпотентности.
func (h *Handler) createBatch(c *gin.Context) {
	// Неожиданный сбой конвейера — 500, тоже замороженный: повтор обязан
	// увидеть ту же ошибку, а не молча перевставить пачку.
	defer func() {
		if r := recover(); r != nil {
			h.log.Errorf(c.Request.Context(), "batch handler panic: %v", r)
			h.respondRemember(c, http.StatusInternalServerError, gin.H{
				"message": "Internal server error",
				"error":   fmt.Sprint(r),
			})
		}
	}()

	orders := c.MustGet(ctxKeyOrders).([]*domain.Order)

	result, err := h.batch.Process(c.Request.Context(), orders, 0)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, validate.ErrInvalidConfig) {
			status = http.StatusBadRequest
		}
		h.respondRemember(c, status, gin.H{"message": err.Error()})
		return
	}

	// cache-after-batch: первое последующее чтение любого вставленного id — HIT.
	h.batch.PrimeCache(c.Request.Context(), orders)

	h.respondRemember(c, http.StatusCreated, batchResponse{
		Success:      result.TotalFailed == 0,
		Total:        len(orders),
		Processed:    result.TotalProcessed,
		Failed:       result.TotalFailed,
		Batches:      len(result.BatchResults),
		BatchResults: result.BatchResults,
	})
}

// getOrder — чтение через кэш с заголовками X-Cache / X-Cache-Age.
func (h *Handler) getOrder(c *gin.Context) {
	id := c.Param("id")

	order, age, hit, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "GetOrder failed id=%s err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}

	if hit {
		c.Header("X-Cache", "HIT")
		c.Header("X-Cache-Age", strconv.FormatInt(age, 10))
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.JSON(http.StatusOK, order)
}

// updateStatus — смена статуса; побочные эффекты (кэш, событие) внутри usecase.
func (h *Handler) updateStatus(c *gin.Context) {
	id := c.Param("id")

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || !domain.KnownStatus(domain.Status(body.Status)) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid status. Must be one of PENDING, PROCESSING, COMPLETED, FAILED",
		})
		return
	}

	updated, ok := h.orders.UpdateStatus(c.Request.Context(), id, domain.Status(body.Status))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// runStressTest — боевой конвейер под управляемой нагрузкой.
func (h *Handler) runStressTest(c *gin.Context) {
	cfg := c.MustGet(ctxKeyStress).(validate.StressConfig)

	result := h.stress.Run(c.Request.Context(), cfg)
	c.JSON(http.StatusOK, result)
}
