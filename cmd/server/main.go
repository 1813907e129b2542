package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/config"
	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/internal/app"
)

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Контекст жизни приложения: отменяется по SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, cleanup, err := app.Bootstrap(ctx, &cfg)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	if err := a.Run(ctx); err != nil {
		os.Exit(1)
	}
}
