package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *LoggerClient and the Logger interface, and flushes the
// logger on shutdown. It requires a logger.Config in the container.
var FXModule = fx.Module("logger",
	fx.Provide(
		fx.Annotate(
			NewLoggerClient,
			fx.As(fx.Self()),
			fx.As(new(Logger)),
		),
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle syncs the zap logger when the application stops.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *LoggerClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync on stderr can fail with ENOTTY.
			_ = client.Zap.Sync()
			return nil
		},
	})
}
