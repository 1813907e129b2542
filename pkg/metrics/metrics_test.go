package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegister_Once(t *testing.T) {
	// повторная регистрация паникует — MustRegister вызывается единожды
	MustRegister()
}

func TestCounters_Increment(t *testing.T) {
	before := testutil.ToFloat64(IdempotencyReplays)
	IdempotencyReplays.Inc()
	if got := testutil.ToFloat64(IdempotencyReplays); got != before+1 {
		t.Fatalf("want %v, got %v", before+1, got)
	}

	CacheOps.WithLabelValues("orders", "hit").Inc()
	if got := testutil.ToFloat64(CacheOps.WithLabelValues("orders", "hit")); got < 1 {
		t.Fatalf("labelled counter must increment, got %v", got)
	}

	EventSubscribers.Set(3)
	if got := testutil.ToFloat64(EventSubscribers); got != 3 {
		t.Fatalf("gauge must hold value, got %v", got)
	}
}
