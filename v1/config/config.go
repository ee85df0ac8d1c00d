package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Aleph-Alpha/qbe/v1/logger"
	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/metrics"
	"github.com/Aleph-Alpha/qbe/v1/postgres"
	"github.com/Aleph-Alpha/qbe/v1/qdrant"
	"github.com/Aleph-Alpha/qbe/v1/sqlite"
	"github.com/Aleph-Alpha/qbe/v1/tracer"
)

// Backend names accepted in Config.Backend.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendQdrant   = "qdrant"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root of the configuration document.
type Config struct {
	// ServiceName fills the service name of logger, metrics and tracer when
	// they leave it empty.
	ServiceName string `yaml:"service_name"`

	Logger  logger.Config  `yaml:"logger"`
	Metrics metrics.Config `yaml:"metrics"`
	Tracer  tracer.Config  `yaml:"tracer"`

	// Backend selects the store searches run against.
	Backend string `yaml:"backend"`

	Postgres postgres.Config `yaml:"postgres"`
	SQLite   sqlite.Config   `yaml:"sqlite"`
	Qdrant   qdrant.Config   `yaml:"qdrant"`

	Entities []metadata.Definition `yaml:"entities"`
}

// DefaultConfig returns the configuration used for keys the document omits.
func DefaultConfig() *Config {
	return &Config{
		ServiceName: "qbe",
		Logger: logger.Config{
			Level: logger.Info,
		},
		Backend: BackendSQLite,
		SQLite: sqlite.Config{
			Path: sqlite.MemoryPath,
		},
		Qdrant: *qdrant.DefaultConfig(),
	}
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse expands environment references in data, decodes it over the
// defaults and validates the result. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyServiceName()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyServiceName() {
	if c.Logger.ServiceName == "" {
		c.Logger.ServiceName = c.ServiceName
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = c.ServiceName
	}
	if c.Tracer.ServiceName == "" {
		c.Tracer.ServiceName = c.ServiceName
	}
}

// Validate checks the backend selection and the entity definitions.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendPostgres:
		if c.Postgres.Connection.Host == "" {
			return fmt.Errorf("%w: postgres.connection.host is required", ErrInvalidConfig)
		}
	case BackendSQLite:
	case BackendQdrant:
		if c.Qdrant.Endpoint == "" {
			return fmt.Errorf("%w: qdrant.endpoint is required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q (valid: %s, %s, %s)",
			ErrInvalidConfig, c.Backend, BackendPostgres, BackendSQLite, BackendQdrant)
	}

	if _, err := c.Registry(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Registry builds a registry holding the configured entities.
func (c *Config) Registry() (*metadata.Registry, error) {
	registry := metadata.NewRegistry()
	for _, def := range c.Entities {
		d, err := metadata.NewDynamic(def)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", def.Name, err)
		}
		if err := registry.Register(d); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
