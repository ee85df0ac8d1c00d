package postgres

import (
	"fmt"
	"time"
)

// Config holds connection and pool settings.
type Config struct {
	Connection        Connection        `yaml:"connection"`
	ConnectionDetails ConnectionDetails `yaml:"connection_details"`
}

// Connection identifies the database server.
type Connection struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DbName   string `yaml:"db_name"`
	SSLMode  string `yaml:"ssl_mode"`
}

// DSN renders the connection as a libpq keyword/value string.
func (c Connection) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DbName, sslMode)
}

// ConnectionDetails tunes the pool and the health monitor.
// Zero values fall back to package defaults.
type ConnectionDetails struct {
	MaxOpenConns        int           `yaml:"max_open_conns"`
	MaxIdleConns        int           `yaml:"max_idle_conns"`
	ConnMaxLifetime     time.Duration `yaml:"conn_max_lifetime"`
	HealthCheckInterval time.Duration `yaml:"health_check_interval"`
}

const (
	defaultMaxOpenConns        = 50
	defaultMaxIdleConns        = 25
	defaultConnMaxLifetime     = time.Minute
	defaultHealthCheckInterval = 10 * time.Second
)
