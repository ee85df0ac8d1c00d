package qdrant

import (
	"time"
)

const (
	defaultPort          = 6334
	defaultLimit         = 100
	defaultHealthTimeout = 3 * time.Second
)

// Config holds connection and query settings for the Qdrant client.
//
// Example (builder style):
//
//	cfg := qdrant.FromEndpoint("qdrant.internal").
//	    WithApiKey(os.Getenv("QDRANT_API_KEY")).
//	    WithCollection("widgets", "widgets_v2")
type Config struct {
	// Hostname of the Qdrant server, e.g. "localhost".
	Endpoint string `yaml:"endpoint"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port"`

	// Optional authentication token for secured deployments.
	ApiKey string `yaml:"api_key"`

	UseTLS bool `yaml:"use_tls"`

	// Maximum duration of the startup health check.
	Timeout time.Duration `yaml:"timeout"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility"`

	// Collections maps entity names to collection names. Unmapped entities
	// use their name.
	Collections map[string]string `yaml:"collections"`

	// DefaultLimit caps a Find whose page has no limit.
	DefaultLimit int `yaml:"default_limit"`

	// IDField is the row key the point id is stored under. Empty means "id".
	// A payload key of the same name wins.
	IDField string `yaml:"id_field"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:           "localhost",
		Port:               defaultPort,
		Timeout:            defaultHealthTimeout,
		CheckCompatibility: true,
		DefaultLimit:       defaultLimit,
		IDField:            "id",
	}
}

// FromEndpoint returns a default config pre-filled with a specific endpoint.
func FromEndpoint(host string) *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = host
	return cfg
}

// Builder-style helpers
func (c *Config) WithApiKey(key string) *Config {
	c.ApiKey = key
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithCompatibilityCheck(enabled bool) *Config {
	c.CheckCompatibility = enabled
	return c
}

// WithCollection stores entity's points in collection.
func (c *Config) WithCollection(entity, collection string) *Config {
	if c.Collections == nil {
		c.Collections = map[string]string{}
	}
	c.Collections[entity] = collection
	return c
}

// Collection returns the collection holding entity's points.
func (c *Config) Collection(entity string) string {
	if name, ok := c.Collections[entity]; ok && name != "" {
		return name
	}
	return entity
}

func (c *Config) port() int {
	if c.Port == 0 {
		return defaultPort
	}
	return c.Port
}

func (c *Config) limit() int {
	if c.DefaultLimit <= 0 {
		return defaultLimit
	}
	return c.DefaultLimit
}

func (c *Config) idField() string {
	if c.IDField == "" {
		return "id"
	}
	return c.IDField
}

func (c *Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultHealthTimeout
	}
	return c.Timeout
}
