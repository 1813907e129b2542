package usecase

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/ports"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/validate"
)

// MemoryUsage — срез памяти процесса в мегабайтах.
type MemoryUsage struct {
	HeapUsed  float64 `json:"heapUsed"`
	HeapTotal float64 `json:"heapTotal"`
	RSS       float64 `json:"rss"`
}

// StressResult — итоговый конверт стресс-теста.
type StressResult struct {
	Success           bool        `json:"success"`
	TotalOrders       int         `json:"totalOrders"`
	Processed         int         `json:"processed"`
	Failed            int         `json:"failed"`
	DurationMS        int64       `json:"duration_ms"`
	OrdersPerSecond   float64     `json:"ordersPerSecond"`
	AverageLatencyMS  float64     `json:"averageLatency_ms"`
	MemoryUsage       MemoryUsage `json:"memoryUsage"`
	ActiveConnections int         `json:"activeConnections"`
	Timestamp         int64       `json:"timestamp"`
}

// StressService — синтезирует заказы и гонит их через боевой конвейер
// под управляемой нагрузкой.
type StressService struct {
	batch *BatchService
	bus   ports.EventBus
	log   ports.Logger

	statuses []domain.Status
}

// NewStressService — DI-конструктор.
func NewStressService(batch *BatchService, bus ports.EventBus, log ports.Logger) *StressService {
	return &StressService{
		batch: batch,
		bus:   bus,
		log:   log,
		statuses: []domain.Status{
			domain.StatusPending, domain.StatusProcessing,
			domain.StatusCompleted, domain.StatusFailed,
		},
	}
}

// Run — orderCount синтетических заказов через конвейер с заданным batchSize.
// При concurrentBatches > 1 вход делится на непересекающиеся доли и конвейер
// вызывается конкурентно (порядок между долями не гарантируется — как и между
// конкурентными запросами). Ошибка конвейера не роняет ответ: отчёт строится
// как 0 обработанных / orderCount сбойных.
func (s *StressService) Run(ctx context.Context, cfg validate.StressConfig) *StressResult {
	orders := s.generate(cfg.OrderCount)
	chunkCount := (cfg.OrderCount + cfg.BatchSize - 1) / cfg.BatchSize

	start := time.Now()
	processed, failed, runErr := s.push(ctx, orders, cfg)
	elapsed := time.Since(start)

	if runErr != nil {
		s.log.Errorf(ctx, "stress pipeline failed: %v", runErr)
		processed, failed = 0, cfg.OrderCount
	}

	res := &StressResult{
		Success:           runErr == nil && failed == 0,
		TotalOrders:       cfg.OrderCount,
		Processed:         processed,
		Failed:            failed,
		DurationMS:        elapsed.Milliseconds(),
		MemoryUsage:       ReadMemoryMB(),
		ActiveConnections: s.bus.ActiveCount(),
		Timestamp:         time.Now().UnixMilli(),
	}
	if secs := elapsed.Seconds(); secs > 0 {
		res.OrdersPerSecond = round2(float64(processed) / secs)
	}
	if chunkCount > 0 {
		res.AverageLatencyMS = round2(float64(elapsed.Milliseconds()) / float64(chunkCount))
	}

	s.log.Infof(ctx, "stress done orders=%d processed=%d failed=%d took=%s", cfg.OrderCount, processed, failed, elapsed)
	return res
}

// push — один или несколько конкурентных прогонов конвейера.
func (s *StressService) push(ctx context.Context, orders []*domain.Order, cfg validate.StressConfig) (processed, failed int, err error) {
	if cfg.ConcurrentBatches <= 1 {
		result, perr := s.batch.Process(ctx, orders, cfg.BatchSize)
		if perr != nil {
			return 0, 0, perr
		}
		return result.TotalProcessed, result.TotalFailed, nil
	}

	shares := splitChunks(orders, (len(orders)+cfg.ConcurrentBatches-1)/cfg.ConcurrentBatches)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, share := range shares {
		wg.Add(1)
		go func(part []*domain.Order) {
			defer wg.Done()
			result, perr := s.batch.Process(ctx, part, cfg.BatchSize)

			mu.Lock()
			defer mu.Unlock()
			if perr != nil {
				err = perr
				return
			}
			processed += result.TotalProcessed
			failed += result.TotalFailed
		}(share)
	}
	wg.Wait()

	if err != nil {
		return 0, 0, err
	}
	return processed, failed, nil
}

// generate — уникальные id, случайные статус и сумма, метки времени = now.
func (s *StressService) generate(n int) []*domain.Order {
	now := time.Now().UnixMilli()
	orders := make([]*domain.Order, 0, n)
	for i := 0; i < n; i++ {
		orders = append(orders, &domain.Order{
			ID:        "stress-" + uuid.NewString(),
			Status:    s.statuses[rand.Intn(len(s.statuses))],
			Amount:    round2(rand.Float64() * 1000),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return orders
}

// ReadMemoryMB — снимок памяти процесса через runtime.
func ReadMemoryMB() MemoryUsage {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	const mb = 1024 * 1024
	return MemoryUsage{
		HeapUsed:  round2(float64(ms.HeapAlloc) / mb),
		HeapTotal: round2(float64(ms.HeapSys) / mb),
		RSS:       round2(float64(ms.Sys) / mb),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
