package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/config"
	cachemem "github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/cache/memory"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/eventbus"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/kafka"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/ports"
	storemem "github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/store/memory"
	rest "github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/transport/http"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/usecase"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/httpx"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/logger"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/metrics"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/telemetry"
)

// App — собранное приложение и его внешние интерфейсы.
type App struct {
	Logger          ports.Logger
	HTTPServer      *http.Server
	gracefulTimeout time.Duration
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
// Свиперы кэшей живут до отмены ctx.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Сборка доменного слоя: хранилище, кэши, шина, сервисы.
	orderStore := storemem.NewOrderStore()
	orderCache := cachemem.NewOrderCache(cfg.Cache.OrderTTL, cfg.Cache.OrderSweep)
	idemCache := cachemem.NewIdempotencyCache(cfg.Cache.IdemTTL, cfg.Cache.IdemSweep)
	bus := eventbus.New(logg)

	orderCache.StartSweeper(ctx)
	idemCache.StartSweeper(ctx)

	batchService := usecase.NewBatchService(orderStore, orderCache, bus, logg, cfg.Batch.Size)
	orderService := usecase.NewOrderService(orderStore, orderCache, bus, logg)
	stressService := usecase.NewStressService(batchService, bus, logg)

	// Зеркало событий в Kafka (опционально).
	var mirror *kafka.Publisher
	var unsubscribeMirror ports.Unsubscribe
	if cfg.Kafka.Enabled {
		mirror = kafka.NewPublisher(&kafka.PublisherConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}, logg)
		unsubscribeMirror = mirror.AttachTo(bus)
		logg.Infof(ctx, "kafka event mirror enabled topic=%s brokers=%v", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	}

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	perf := httpx.NewPerfCounter()
	httpHandler := rest.NewHandler(
		orderService, batchService, stressService,
		idemCache, bus, logg,
		cfg.SSE.Heartbeat, cfg.SSE.Buffer,
	)
	router := rest.NewRouter(httpHandler, perf, logg, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		// WriteTimeout не задаётся: /orders/stream держит ответ открытым часами.
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов: трейсинг, зеркало Kafka, логгер — последним.
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if mirror != nil {
			unsubscribeMirror()
			if merr := mirror.Close(); merr != nil {
				logg.Warnf(ctx, "kafka mirror close error: %v", merr)
			}
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер; ждёт отмены контекста или ошибки и останавливает его.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		a.Logger.Warnf(ctx, "background error: %v", err)
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера (SSE-клиенты отваливаются по закрытию).
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
