package validate

import (
	"errors"
	"testing"
)

func TestParseStressConfig_Defaults(t *testing.T) {
	for _, raw := range []string{"", "   ", "{}"} {
		cfg, err := ParseStressConfig([]byte(raw))
		if err != nil {
			t.Fatalf("body %q: unexpected error %v", raw, err)
		}
		if cfg.OrderCount != 1000 || cfg.BatchSize != 100 || cfg.ConcurrentBatches != 1 {
			t.Fatalf("body %q: wrong defaults %+v", raw, cfg)
		}
	}
}

func TestParseStressConfig_Explicit(t *testing.T) {
	cfg, err := ParseStressConfig([]byte(`{"orderCount":50,"batchSize":5,"concurrentBatches":2}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OrderCount != 50 || cfg.BatchSize != 5 || cfg.ConcurrentBatches != 2 {
		t.Fatalf("wrong config: %+v", cfg)
	}
}

func TestParseStressConfig_Ranges(t *testing.T) {
	tests := []string{
		`{"orderCount":0}`,
		`{"orderCount":10001}`,
		`{"batchSize":0}`,
		`{"batchSize":1001}`,
		`{"concurrentBatches":0}`,
		`"not an object"`,
	}
	for _, raw := range tests {
		if _, err := ParseStressConfig([]byte(raw)); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("body %q accepted: %v", raw, err)
		}
	}
}
