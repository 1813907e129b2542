package validate

import (
	"bytes"
	"encoding/json"
)

// StressConfig — параметры стресс-теста после применения дефолтов.
type StressConfig struct {
	OrderCount        int `json:"orderCount"`
	BatchSize         int `json:"batchSize"`
	ConcurrentBatches int `json:"concurrentBatches"`
}

// ParseStressConfig — тело POST /orders/stress-test.
// Пустое тело допустимо: все поля имеют дефолты. Диапазоны:
// orderCount [1, 10000], batchSize [1, 1000], concurrentBatches >= 1.
func ParseStressConfig(raw []byte) (StressConfig, error) {
	cfg := StressConfig{
		OrderCount:        1000,
		BatchSize:         100,
		ConcurrentBatches: 1,
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return cfg, nil
	}

	var body struct {
		OrderCount        *int `json:"orderCount"`
		BatchSize         *int `json:"batchSize"`
		ConcurrentBatches *int `json:"concurrentBatches"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return StressConfig{}, badConfig("Body must be an object")
	}

	if body.OrderCount != nil {
		cfg.OrderCount = *body.OrderCount
	}
	if body.BatchSize != nil {
		cfg.BatchSize = *body.BatchSize
	}
	if body.ConcurrentBatches != nil {
		cfg.ConcurrentBatches = *body.ConcurrentBatches
	}

	if cfg.OrderCount < 1 || cfg.OrderCount > 10000 {
		return StressConfig{}, badConfig("orderCount must be between 1 and 10000")
	}
	if cfg.BatchSize < 1 || cfg.BatchSize > 1000 {
		return StressConfig{}, badConfig("batchSize must be between 1 and 1000")
	}
	if cfg.ConcurrentBatches < 1 {
		return StressConfig{}, badConfig("concurrentBatches must be at least 1")
	}

	return cfg, nil
}
