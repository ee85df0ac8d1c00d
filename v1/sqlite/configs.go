package sqlite

import "time"

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const defaultBusyTimeout = 5 * time.Second

// Config holds the database location and driver settings.
type Config struct {
	// Path is the database file. Empty means MemoryPath.
	Path string `yaml:"path"`

	// BusyTimeout bounds how long a statement waits on a locked database.
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// ReadOnly opens the file in read-only mode.
	ReadOnly bool `yaml:"read_only"`
}

func (c Config) path() string {
	if c.Path == "" {
		return MemoryPath
	}
	return c.Path
}

func (c Config) busyTimeout() time.Duration {
	if c.BusyTimeout <= 0 {
		return defaultBusyTimeout
	}
	return c.BusyTimeout
}
