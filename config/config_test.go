package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "HOST", "GIN_MODE", "BATCH_SIZE",
		"ORDER_CACHE_TTL", "ORDER_CACHE_SWEEP", "ORDER_IDEM_TTL", "ORDER_IDEM_SWEEP",
		"ORDER_SSE_HEARTBEAT", "ORDER_SSE_BUFFER", "ORDER_LOG_PROD",
		"ORDER_KAFKA_ENABLED", "ORDER_KAFKA_BROKERS", "ORDER_KAFKA_TOPIC",
		"ORDER_TRACING_ENABLED",
	} {
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.HTTP.Host != "0.0.0.0" || cfg.HTTP.Port != 3002 {
		t.Fatalf("wrong http defaults: %+v", cfg.HTTP)
	}
	if cfg.HTTP.Addr() != "0.0.0.0:3002" {
		t.Fatalf("wrong addr: %s", cfg.HTTP.Addr())
	}
	if cfg.Batch.Size != 100 {
		t.Fatalf("wrong batch size default: %d", cfg.Batch.Size)
	}
	if cfg.Cache.OrderTTL != 300*time.Second || cfg.Cache.OrderSweep != 60*time.Second {
		t.Fatalf("wrong order cache defaults: %+v", cfg.Cache)
	}
	if cfg.Cache.IdemTTL != 24*time.Hour || cfg.Cache.IdemSweep != time.Hour {
		t.Fatalf("wrong idem cache defaults: %+v", cfg.Cache)
	}
	if cfg.SSE.Heartbeat != 30*time.Second {
		t.Fatalf("wrong heartbeat default: %s", cfg.SSE.Heartbeat)
	}
	if cfg.Kafka.Enabled || cfg.Tracing.Enabled {
		t.Fatalf("mirror and tracing must be off by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("BATCH_SIZE", "25")
	t.Setenv("ORDER_KAFKA_ENABLED", "true")
	t.Setenv("ORDER_KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr() != "127.0.0.1:8081" {
		t.Fatalf("wrong addr: %s", cfg.HTTP.Addr())
	}
	if cfg.Batch.Size != 25 {
		t.Fatalf("wrong batch size: %d", cfg.Batch.Size)
	}
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) != 2 {
		t.Fatalf("wrong kafka config: %+v", cfg.Kafka)
	}
}

func TestLoad_BatchSizeClamped(t *testing.T) {
	clearEnv(t)

	t.Setenv("BATCH_SIZE", "5000")
	cfg, err := Load()
	if err != nil || cfg.Batch.Size != 1000 {
		t.Fatalf("oversized BATCH_SIZE must clamp to 1000: %d (%v)", cfg.Batch.Size, err)
	}

	t.Setenv("BATCH_SIZE", "-3")
	cfg, err = Load()
	if err != nil || cfg.Batch.Size != 1 {
		t.Fatalf("negative BATCH_SIZE must clamp to 1: %d (%v)", cfg.Batch.Size, err)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "70000")

	if _, err := Load(); err == nil {
		t.Fatalf("out-of-range PORT must fail")
	}
}
