//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
)

// ----------------------------------------------------------------------------
// Красивые логи жизненного цикла
// ----------------------------------------------------------------------------

func shortID(c tc.Container) string {
	id := c.GetContainerID()
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func logHooks(l *log.Logger) tc.ContainerLifecycleHooks {
	return tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{
			func(_ context.Context, req tc.ContainerRequest) error {
				l.Printf("🐳 creating container image=%s", req.Image)
				return nil
			},
		},
		PostStarts: []tc.ContainerHook{
			func(_ context.Context, c tc.Container) error {
				l.Printf("✅ started id=%s", shortID(c))
				return nil
			},
		},
		PostTerminates: []tc.ContainerHook{
			func(_ context.Context, c tc.Container) error {
				l.Printf("🚫 terminated id=%s", shortID(c))
				return nil
			},
		},
	}
}

// Общий логгер для testcontainers (можно подключить свой)
var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

// ----------------------------------------------------------------------------
// Kafka (Redpanda)
// ----------------------------------------------------------------------------

type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, func(context.Context) error, error) {
	rp, err := redpanda.Run(
		ctx,
		"docker.redpanda.com/redpandadata/redpanda:v23.3.8",
		tc.WithLifecycleHooks(logHooks(tcLogger)),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx) // вернёт "host:port" для клиента
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}

	env := &KafkaEnv{
		Container: rp,
		Brokers:   []string{seed},
		BaseTopic: baseTopic,
	}
	stop := func(_ context.Context) error { return tc.TerminateContainer(rp) }
	return env, stop, nil
}
