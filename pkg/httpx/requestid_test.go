package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/ctxmeta"
)

func TestRequestID_Generated(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())

	var fromCtx string
	r.GET("/x", func(c *gin.Context) {
		fromCtx, _ = ctxmeta.RequestIDFromContext(c.Request.Context())
		c.String(200, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", http.NoBody))

	header := w.Header().Get("X-Request-ID")
	if header == "" {
		t.Fatalf("X-Request-ID must be generated")
	}
	if fromCtx != header {
		t.Fatalf("context id %q must match header %q", fromCtx, header)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) { c.String(200, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/x", http.NoBody)
	req.Header.Set("X-Request-ID", "client-id-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "client-id-1" {
		t.Fatalf("client id must be echoed, got %q", got)
	}
}
