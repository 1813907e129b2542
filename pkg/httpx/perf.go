package httpx

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/metrics"
)

// PerfCounter — монотонные счётчики запросов и накопленной задержки ответа.
// Источник данных для /api/system/performance.
type PerfCounter struct {
	mu            sync.Mutex
	requestCount  int64
	totalResponse time.Duration
	startedAt     time.Time
}

func NewPerfCounter() *PerfCounter {
	return &PerfCounter{startedAt: time.Now()}
}

// Middleware — на входе фиксирует startTime, на выходе прибавляет задержку
// и инкрементит счётчик запросов. Поточные маршруты (SSE) не учитываются:
// их "задержка" — время жизни соединения.
func (p *PerfCounter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "/api/orders/stream" {
			return
		}
		elapsed := time.Since(start)

		p.mu.Lock()
		p.requestCount++
		p.totalResponse += elapsed
		p.mu.Unlock()

		metrics.HTTPRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Request.Method, path).Observe(elapsed.Seconds())
	}
}

// Snapshot — (количество запросов, средняя задержка в мс, uptime как time.Duration).
func (p *PerfCounter) Snapshot() (requestCount int64, avgMs int64, uptime time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.requestCount > 0 {
		avgMs = int64(p.totalResponse.Milliseconds()) / p.requestCount
	}
	return p.requestCount, avgMs, time.Since(p.startedAt)
}

// Reset — обнуление счётчиков; только для тестов.
func (p *PerfCounter) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requestCount = 0
	p.totalResponse = 0
	p.startedAt = time.Now()
}
