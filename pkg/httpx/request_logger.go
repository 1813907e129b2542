package httpx

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/ports"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/ctxmeta"
)

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// не логируем служебные и потоковые маршруты
		switch c.FullPath() {
		case "/metrics", "/ping", "/api/orders/stream":
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		rid, _ := ctxmeta.RequestIDFromContext(c.Request.Context())
		tr, _ := ctxmeta.TraceIDFromContext(c.Request.Context())
		sp, _ := ctxmeta.SpanIDFromContext(c.Request.Context())

		log.Infof(
			c.Request.Context(),
			"request id=%s trace=%s span=%s method=%s path=%s status=%d ip=%s duration=%s size=%d",
			rid, tr, sp,
			c.Request.Method,
			path,
			c.Writer.Status(),
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}
