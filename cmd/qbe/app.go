package main

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"

	"github.com/Aleph-Alpha/qbe/v1/config"
	"github.com/Aleph-Alpha/qbe/v1/logger"
	"github.com/Aleph-Alpha/qbe/v1/metrics"
	"github.com/Aleph-Alpha/qbe/v1/postgres"
	"github.com/Aleph-Alpha/qbe/v1/qdrant"
	"github.com/Aleph-Alpha/qbe/v1/search"
	"github.com/Aleph-Alpha/qbe/v1/sqlite"
	"github.com/Aleph-Alpha/qbe/v1/tracer"
)

// appOptions wires the search service over the configured backend.
func appOptions(cfg *config.Config) (fx.Option, error) {
	backend, err := backendModule(cfg.Backend)
	if err != nil {
		return nil, err
	}

	return fx.Options(
		fx.Supply(cfg),
		config.FXModule,
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		backend,
		search.FXModule,
		fx.Provide(
			func(l *logger.LoggerClient) metrics.Logger { return l },
			func(l *logger.LoggerClient) tracer.Logger { return l },
			func(l *logger.LoggerClient) search.Logger { return l },
			func(t *tracer.Tracer) search.Tracer { return t },
		),
		fx.WithLogger(func(l *logger.LoggerClient) fxevent.Logger {
			zl := &fxevent.ZapLogger{Logger: l.Zap}
			zl.UseLogLevel(zapcore.DebugLevel)
			return zl
		}),
	), nil
}

func backendModule(name string) (fx.Option, error) {
	switch name {
	case config.BackendPostgres:
		return fx.Options(
			postgres.FXModule,
			fx.Provide(
				func(l *logger.LoggerClient) postgres.Logger { return l },
				func(p *postgres.Postgres) search.Finder { return p },
			),
		), nil
	case config.BackendSQLite:
		return fx.Options(
			sqlite.FXModule,
			fx.Provide(
				func(l *logger.LoggerClient) sqlite.Logger { return l },
				func(s *sqlite.Store) search.Finder { return s },
			),
		), nil
	case config.BackendQdrant:
		return fx.Options(
			qdrant.FXModule,
			fx.Provide(
				func(l *logger.LoggerClient) qdrant.Logger { return l },
				func(c *qdrant.Client) search.Finder { return c },
			),
		), nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}

// withService starts the application, runs fn with the search service and
// stops the application again.
func withService(ctx context.Context, cfg *config.Config, fn func(*search.Service) error) error {
	opts, err := appOptions(cfg)
	if err != nil {
		return err
	}

	var svc *search.Service
	app := fx.New(opts, fx.Populate(&svc))
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	runErr := fn(svc)

	if err := app.Stop(context.WithoutCancel(ctx)); err != nil && runErr == nil {
		return fmt.Errorf("failed to stop: %w", err)
	}
	return runErr
}
