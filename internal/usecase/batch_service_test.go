package usecase_test

import (
	"context"
	"strings"
	"testing"

	cachemem "github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/cache/memory"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/domain"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/eventbus"
	storemem "github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/store/memory"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/testutil"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/usecase"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

type fixture struct {
	store *storemem.OrderStore
	cache *cachemem.OrderCache
	bus   *eventbus.Bus
	batch *usecase.BatchService
}

func newFixture(defaultChunk int) *fixture {
	store := storemem.NewOrderStore()
	cache := cachemem.NewOrderCache(0, 0)
	bus := eventbus.New(noopLogger{})
	return &fixture{
		store: store,
		cache: cache,
		bus:   bus,
		batch: usecase.NewBatchService(store, cache, bus, noopLogger{}, defaultChunk),
	}
}

func TestProcess_ChunkCountAndOrder(t *testing.T) {
	f := newFixture(100)
	ctx := context.Background()

	// 7 заказов чанками по 3 → ровно ceil(7/3) = 3 чанка с индексами 0..2
	orders := testutil.MakeOrders("o", 7)
	result, err := f.batch.Process(ctx, orders, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalProcessed != 7 || result.TotalFailed != 0 {
		t.Fatalf("wrong totals: %+v", result)
	}
	if len(result.BatchResults) != 3 {
		t.Fatalf("want 3 chunks, got %d", len(result.BatchResults))
	}
	for i, cr := range result.BatchResults {
		if cr.BatchIndex != i {
			t.Fatalf("chunk %d has index %d", i, cr.BatchIndex)
		}
	}
	if result.BatchResults[2].Processed != 1 {
		t.Fatalf("last chunk must be short: %+v", result.BatchResults[2])
	}
	if f.store.Len() != 7 {
		t.Fatalf("store must hold all inserted orders")
	}
}

func TestProcess_MixedBatch(t *testing.T) {
	f := newFixture(100)
	ctx := context.Background()

	orders := []*domain.Order{
		testutil.MakeOrder("A"),
		testutil.MakeOrder("B", testutil.WithAmount(-1)),
		testutil.MakeOrder("C"),
	}

	result, err := f.batch.Process(ctx, orders, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TotalProcessed != 2 || result.TotalFailed != 1 {
		t.Fatalf("wrong totals: %+v", result)
	}
	if len(result.BatchResults) != 2 {
		t.Fatalf("want 2 chunks, got %d", len(result.BatchResults))
	}

	errs := result.BatchResults[0].Errors
	if len(errs) != 1 || !strings.Contains(errs[0], "Order B") {
		t.Fatalf("chunk 0 must carry the B failure: %v", errs)
	}
	if errs[0] != "Order B: Invalid order data" {
		t.Fatalf("wrong failure text: %q", errs[0])
	}
	if result.BatchResults[1].Errors != nil {
		t.Fatalf("clean chunk must omit errors")
	}

	// сбойный заказ не попадает в хранилище
	if _, ok := f.store.GetByID(ctx, "B"); ok {
		t.Fatalf("invalid order must not be stored")
	}
}

func TestProcess_OneCreatedEventPerSuccess(t *testing.T) {
	f := newFixture(100)
	ctx := context.Background()

	var got []string
	f.bus.Subscribe(func(e domain.Event) error {
		if e.Kind != domain.EventCreated {
			t.Errorf("unexpected kind %s", e.Kind)
		}
		got = append(got, e.Order.ID)
		return nil
	})

	orders := []*domain.Order{
		testutil.MakeOrder("A"),
		testutil.MakeOrder("bad", testutil.WithTimestamps(0, 0)),
		testutil.MakeOrder("C"),
	}
	if _, err := f.batch.Process(ctx, orders, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// ровно одно событие на успех, в порядке входа
	if len(got) != 2 || got[0] != "A" || got[1] != "C" {
		t.Fatalf("wrong event stream: %v", got)
	}
}

func TestProcess_InvalidChunkSize(t *testing.T) {
	f := newFixture(100)

	if _, err := f.batch.Process(context.Background(), testutil.MakeOrders("o", 3), 1001); err == nil {
		t.Fatalf("oversized chunk size must fail")
	}
}

func TestProcess_DefaultChunkSize(t *testing.T) {
	f := newFixture(2)

	result, err := f.batch.Process(context.Background(), testutil.MakeOrders("o", 5), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.BatchResults) != 3 {
		t.Fatalf("default chunk=2 over 5 orders → 3 chunks, got %d", len(result.BatchResults))
	}
}

func TestPrimeCache_AfterBatch(t *testing.T) {
	f := newFixture(100)
	ctx := context.Background()

	orders := []*domain.Order{
		testutil.MakeOrder("A"),
		testutil.MakeOrder("bad", testutil.WithAmount(-1)),
	}
	if _, err := f.batch.Process(ctx, orders, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.batch.PrimeCache(ctx, orders)

	if _, ok := f.cache.Get(ctx, "A"); !ok {
		t.Fatalf("inserted order must be primed")
	}
	if _, ok := f.cache.Get(ctx, "bad"); ok {
		t.Fatalf("rejected order must not be primed")
	}
}

func TestProcess_BatchSizeBounds(t *testing.T) {
	// прямой контроль границ validate.ValidateBatchSize через конвейер
	f := newFixture(100)
	for _, size := range []int{1, 1000} {
		if _, err := f.batch.Process(context.Background(), testutil.MakeOrders("b", 2), size); err != nil {
			t.Fatalf("size %d must be accepted: %v", size, err)
		}
	}
	if _, err := f.batch.Process(context.Background(), testutil.MakeOrders("b", 2), -5); err == nil {
		t.Fatalf("negative size must fail")
	}
}
