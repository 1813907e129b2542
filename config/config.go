package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type HTTP struct {
	Host              string        `default:"0.0.0.0" envconfig:"HOST"`
	Port              int           `default:"3002" envconfig:"PORT"`
	GinMode           string        `default:"release" envconfig:"GIN_MODE"`
	ReadTimeout       time.Duration `default:"10s" envconfig:"ORDER_HTTP_READ_TIMEOUT"`
	ReadHeaderTimeout time.Duration `default:"5s" envconfig:"ORDER_HTTP_READ_HEADER_TIMEOUT"`
	IdleTimeout       time.Duration `default:"120s" envconfig:"ORDER_HTTP_IDLE_TIMEOUT"`
	GracefulTimeout   time.Duration `default:"5s" envconfig:"ORDER_HTTP_GRACEFUL_TIMEOUT"`
}

// Addr — адрес прослушивания вида host:port.
func (h HTTP) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

type Batch struct {
	// Size — размер чанка конвейера по умолчанию; всегда в пределах [1, 1000].
	Size int `default:"100" envconfig:"BATCH_SIZE"`
}

type Cache struct {
	OrderTTL   time.Duration `default:"300s" envconfig:"ORDER_CACHE_TTL"`
	OrderSweep time.Duration `default:"60s" envconfig:"ORDER_CACHE_SWEEP"`
	IdemTTL    time.Duration `default:"24h" envconfig:"ORDER_IDEM_TTL"`
	IdemSweep  time.Duration `default:"1h" envconfig:"ORDER_IDEM_SWEEP"`
}

type SSE struct {
	Heartbeat time.Duration `default:"30s" envconfig:"ORDER_SSE_HEARTBEAT"`
	// Buffer — ёмкость исходящего буфера на подписчика; переполнение = мёртвый подписчик.
	Buffer int `default:"64" envconfig:"ORDER_SSE_BUFFER"`
}

type Logger struct {
	IsProd bool `default:"false" envconfig:"ORDER_LOG_PROD"`
}

type Kafka struct {
	// Enabled — включает зеркалирование событий заказов в Kafka.
	Enabled bool     `default:"false" envconfig:"ORDER_KAFKA_ENABLED"`
	Brokers []string `default:"kafka:9092" envconfig:"ORDER_KAFKA_BROKERS"`
	Topic   string   `default:"order-events" envconfig:"ORDER_KAFKA_TOPIC"`
}

type Tracing struct {
	Enabled     bool    `default:"false" envconfig:"ORDER_TRACING_ENABLED"`
	ServiceName string  `default:"order-processing" envconfig:"ORDER_TRACING_SERVICE"`
	Endpoint    string  `default:"localhost:4318" envconfig:"ORDER_TRACING_ENDPOINT"`
	SampleRatio float64 `default:"1.0" envconfig:"ORDER_TRACING_SAMPLE_RATIO"`
}

type Config struct {
	HTTP    HTTP
	Batch   Batch
	Cache   Cache
	SSE     SSE
	Logger  Logger
	Kafka   Kafka
	Tracing Tracing
}

func Load() (Config, error) {
	var c Config

	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return Config{}, fmt.Errorf("config: invalid PORT=%d", c.HTTP.Port)
	}

	// BATCH_SIZE зажимается в допустимый диапазон, а не отвергается.
	if c.Batch.Size < 1 {
		c.Batch.Size = 1
	}
	if c.Batch.Size > 1000 {
		c.Batch.Size = 1000
	}

	return c, nil
}
