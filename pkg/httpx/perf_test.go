package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestPerfCounter_CountsRequests(t *testing.T) {
	perf := NewPerfCounter()

	r := gin.New()
	r.Use(perf.Middleware())
	r.GET("/x", func(c *gin.Context) {
		time.Sleep(time.Millisecond)
		c.String(200, "ok")
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", http.NoBody))
	}

	count, avgMs, uptime := perf.Snapshot()
	if count != 3 {
		t.Fatalf("want 3 requests, got %d", count)
	}
	if avgMs < 0 {
		t.Fatalf("avg must be non-negative, got %d", avgMs)
	}
	if uptime <= 0 {
		t.Fatalf("uptime must be positive")
	}
}

func TestPerfCounter_EmptySnapshot(t *testing.T) {
	perf := NewPerfCounter()

	count, avgMs, _ := perf.Snapshot()
	if count != 0 || avgMs != 0 {
		t.Fatalf("fresh counter must be zero: count=%d avg=%d", count, avgMs)
	}
}

func TestPerfCounter_SkipsStream(t *testing.T) {
	perf := NewPerfCounter()

	r := gin.New()
	r.Use(perf.Middleware())
	r.GET("/api/orders/stream", func(c *gin.Context) { c.String(200, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders/stream", http.NoBody))

	if count, _, _ := perf.Snapshot(); count != 0 {
		t.Fatalf("stream route must not be counted, got %d", count)
	}
}

func TestPerfCounter_Reset(t *testing.T) {
	perf := NewPerfCounter()

	r := gin.New()
	r.Use(perf.Middleware())
	r.GET("/x", func(c *gin.Context) { c.String(200, "ok") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", http.NoBody))

	perf.Reset()
	if count, _, _ := perf.Snapshot(); count != 0 {
		t.Fatalf("reset must zero the counters")
	}
}
