package rest

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/usecase"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/httpx"
)

// health — GET /system/health.
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UnixMilli(),
	})
}

// memory — GET /system/memory: сырые байты из runtime.
func (h *Handler) memory(c *gin.Context) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	c.JSON(http.StatusOK, gin.H{
		"rss":       ms.Sys,
		"heapTotal": ms.HeapSys,
		"heapUsed":  ms.HeapAlloc,
	})
}

// performance — GET /system/performance: конверт счётчиков запросов.
func (h *Handler) performance(perf *httpx.PerfCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			count  int64
			avgMs  int64
			uptime time.Duration
		)
		if perf != nil {
			count, avgMs, uptime = perf.Snapshot()
		}

		c.JSON(http.StatusOK, gin.H{
			"latencyMs":         avgMs,
			"systemHealth":      100,
			"requestsPerSecond": 0,
			"requestCount":      count,
			"avgResponseTimeMs": avgMs,
			"uptime_s":          int64(uptime.Seconds()),
			"memoryUsage":       usecase.ReadMemoryMB(),
			"timestamp":         time.Now().UnixMilli(),
		})
	}
}
