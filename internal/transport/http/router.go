package rest

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/ports"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/usecase"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/httpx"
)

// Ключи контекста gin для передачи данных между middleware и хендлером.
const (
	ctxKeyIdemKey = "idempotency_key"
	ctxKeyOrders  = "validated_orders"
	ctxKeyStress  = "stress_config"
)

type Handler struct {
	orders *usecase.OrderService
	batch  *usecase.BatchService
	stress *usecase.StressService
	idem   ports.IdempotencyCache
	bus    ports.EventBus
	log    ports.Logger

	heartbeat time.Duration
	sseBuffer int
}

// NewHandler — DI-конструктор HTTP-слоя.
func NewHandler(
	orders *usecase.OrderService,
	batch *usecase.BatchService,
	stress *usecase.StressService,
	idem ports.IdempotencyCache,
	bus ports.EventBus,
	log ports.Logger,
	heartbeat time.Duration,
	sseBuffer int,
) *Handler {
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	if sseBuffer <= 0 {
		sseBuffer = 64
	}
	return &Handler{
		orders:    orders,
		batch:     batch,
		stress:    stress,
		idem:      idem,
		bus:       bus,
		log:       log,
		heartbeat: heartbeat,
		sseBuffer: sseBuffer,
	}
}

// NewRouter — маршруты под префиксом /api плюс служебные /ping и /metrics.
// otelServiceName != "" включает otelgin-трейсинг.
func NewRouter(h *Handler, perf *httpx.PerfCounter, log ports.Logger, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(log))
	if perf != nil {
		r.Use(perf.Middleware())
	}

	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	orders := api.Group("/orders")
	orders.POST("/batch", h.idempotencyGate(), h.batchBodyValidator(), h.createBatch)
	orders.GET("/stream", h.streamOrders)
	orders.POST("/stress-test", h.stressConfigValidator(), h.runStressTest)
	orders.GET("/:id", h.orderIDValidator(), h.getOrder)
	orders.PUT("/:id/status", h.orderIDValidator(), h.updateStatus)

	system := api.Group("/system")
	system.GET("/health", h.health)
	system.GET("/memory", h.memory)
	system.GET("/performance", h.performance(perf))

	return r
}
