package usecase

import (
	"context"
	"fmt"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/ports"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/metrics"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/validate"
)

// ChunkResult — итог обработки одного чанка.
type ChunkResult struct {
	BatchIndex int      `json:"batchIndex"`
	Processed  int      `json:"processed"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors,omitempty"`
}

// BatchResult — агрегат по всем чанкам одного запроса.
type BatchResult struct {
	TotalProcessed int
	TotalFailed    int
	BatchResults   []ChunkResult
}

// BatchService — конвейер вставки: чанкование, по-заказная валидация,
// вставка в хранилище и публикация order.created за каждый успех.
type BatchService struct {
	store        ports.OrderStore
	cache        ports.OrderCache
	bus          ports.EventBus
	log          ports.Logger
	defaultChunk int
}

// NewBatchService — DI-конструктор.
func NewBatchService(
	store ports.OrderStore,
	cache ports.OrderCache,
	bus ports.EventBus,
	log ports.Logger,
	defaultChunk int,
) *BatchService {
	return &BatchService{
		store:        store,
		cache:        cache,
		bus:          bus,
		log:          log,
		defaultChunk: defaultChunk,
	}
}

// Process — прогон пачки через конвейер. chunkSize == 0 означает дефолт
// из конфигурации. Чанки обрабатываются строго последовательно, заказы внутри
// чанка — в порядке поступления; по-заказные сбои не валят запрос, а копятся
// в errors соответствующего чанка.
func (s *BatchService) Process(ctx context.Context, orders []*domain.Order, chunkSize int) (*BatchResult, error) {
	size, err := validate.ValidateBatchSize(chunkSize, s.defaultChunk)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{
		BatchResults: make([]ChunkResult, 0, (len(orders)+size-1)/size),
	}

	for index, chunk := range splitChunks(orders, size) {
		cr := s.processChunk(ctx, index, chunk)
		result.TotalProcessed += cr.Processed
		result.TotalFailed += cr.Failed
		result.BatchResults = append(result.BatchResults, cr)
	}

	s.log.Infof(ctx, "batch done total=%d processed=%d failed=%d chunks=%d",
		len(orders), result.TotalProcessed, result.TotalFailed, len(result.BatchResults))
	return result, nil
}

// processChunk — заказы одного чанка в порядке поступления.
func (s *BatchService) processChunk(ctx context.Context, index int, chunk []*domain.Order) ChunkResult {
	cr := ChunkResult{BatchIndex: index}

	for _, order := range chunk {
		if err := validate.ValidateOrder(order); err != nil {
			cr.Failed++
			cr.Errors = append(cr.Errors, fmt.Sprintf("Order %s: Invalid order data", order.ID))
			metrics.BatchOrdersFailed.Inc()
			continue
		}

		if err := s.store.BulkInsert(ctx, []*domain.Order{order}); err != nil {
			cr.Failed++
			cr.Errors = append(cr.Errors, fmt.Sprintf("Order %s: %s", order.ID, err.Error()))
			metrics.BatchOrdersFailed.Inc()
			continue
		}

		s.bus.PublishCreated(order)
		cr.Processed++
		metrics.BatchOrdersProcessed.Inc()
	}

	return cr
}

// PrimeCache — "cache-after-batch": прогревает кэш каждым id из входа,
// запись которого присутствует в хранилище. Первое последующее чтение — HIT.
func (s *BatchService) PrimeCache(ctx context.Context, orders []*domain.Order) {
	for _, order := range orders {
		if stored, ok := s.store.GetByID(ctx, order.ID); ok {
			s.cache.Set(ctx, stored, 0)
		}
	}
}

// splitChunks — непрерывные чанки размера size; последний может быть короче.
func splitChunks(orders []*domain.Order, size int) [][]*domain.Order {
	chunks := make([][]*domain.Order, 0, (len(orders)+size-1)/size)
	for start := 0; start < len(orders); start += size {
		end := start + size
		if end > len(orders) {
			end = len(orders)
		}
		chunks = append(chunks, orders[start:end])
	}
	return chunks
}
