package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/saajidkamran/Limark-High-Performance-Order-Processing-System/pkg/ctxmeta"
)

type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

// NewZapLogger — логгер приложения (dev/prod пресеты zap).
// Возвращает обёртку, функцию завершения (Sync) и ошибку.
func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, nil, err
	}

	loggerWrap := &ZapLogger{
		base:   logger,
		sugar:  logger.Sugar(),
		isProd: isProd,
	}

	cleanup := func() error { return loggerWrap.base.Sync() }
	return loggerWrap, cleanup, nil
}

// withMeta — добавляет request_id из контекста, если он там есть.
func (z *ZapLogger) withMeta(ctx context.Context) *zap.SugaredLogger {
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		return z.sugar.With("request_id", rid)
	}
	return z.sugar
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.withMeta(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.withMeta(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.withMeta(ctx).Errorf(format, args...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }
