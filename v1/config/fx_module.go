package config

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/qbe/v1/logger"
	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/metrics"
	"github.com/Aleph-Alpha/qbe/v1/postgres"
	"github.com/Aleph-Alpha/qbe/v1/qdrant"
	"github.com/Aleph-Alpha/qbe/v1/sqlite"
	"github.com/Aleph-Alpha/qbe/v1/tracer"
)

// FXModule splits a *Config into the per-package configs and provides the
// entity registry. It requires a *Config in the container, usually supplied
// with fx.Supply.
var FXModule = fx.Module("config",
	fx.Provide(
		func(c *Config) logger.Config { return c.Logger },
		func(c *Config) metrics.Config { return c.Metrics },
		func(c *Config) tracer.Config { return c.Tracer },
		func(c *Config) postgres.Config { return c.Postgres },
		func(c *Config) sqlite.Config { return c.SQLite },
		func(c *Config) qdrant.Config { return c.Qdrant },
		func(c *Config) (*metadata.Registry, error) { return c.Registry() },
	),
)
