package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/postgres"
)

const document = `
service_name: catalog
logger:
  level: debug
metrics:
  address: ":9100"
  namespace: qbe
backend: postgres
postgres:
  connection:
    host: db.internal
    port: "5432"
    user: catalog
    password: ${QBE_TEST_PASSWORD}
    db_name: catalog
  connection_details:
    conn_max_lifetime: 5m
qdrant:
  endpoint: qdrant.internal
  collections:
    widgets: widgets_v2
entities:
  - name: widgets
    attributes:
      - {name: name, type: text, searchable: true}
      - {name: count, type: numeric, column: qty, searchable: true}
      - {name: owner, relation: to_one}
`

func TestParse(t *testing.T) {
	t.Setenv("QBE_TEST_PASSWORD", "s3cret")

	cfg, err := Parse([]byte(document))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "catalog", cfg.Logger.ServiceName)
	assert.Equal(t, "catalog", cfg.Metrics.ServiceName)
	assert.Equal(t, "catalog", cfg.Tracer.ServiceName)
	assert.Equal(t, ":9100", cfg.Metrics.Address)

	assert.Equal(t, BackendPostgres, cfg.Backend)
	assert.Equal(t, "s3cret", cfg.Postgres.Connection.Password)
	assert.Equal(t, 5*time.Minute, cfg.Postgres.ConnectionDetails.ConnMaxLifetime)

	// Defaults survive for keys the document leaves out.
	assert.Equal(t, 6334, cfg.Qdrant.Port)
	assert.Equal(t, "widgets_v2", cfg.Qdrant.Collection("widgets"))

	registry, err := cfg.Registry()
	require.NoError(t, err)
	meta, ok := registry.Lookup("widgets")
	require.True(t, ok)
	attr, ok := metadata.Lookup(meta, "count")
	require.True(t, ok)
	assert.Equal(t, "qty", attr.ColumnName())
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "qbe", cfg.Logger.ServiceName)
	assert.Empty(t, cfg.Entities)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown backend", "backend: mongo"},
		{"postgres without host", "backend: postgres"},
		{"qdrant without endpoint", "backend: qdrant\nqdrant:\n  endpoint: \"\""},
		{"bad value type", "entities:\n  - name: w\n    attributes:\n      - {name: a, type: money}"},
		{"duplicate entity", "entities:\n  - name: w\n  - name: w"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Parse([]byte("backend: [unclosed"))
	assert.Error(t, err)

	_, err = Parse([]byte("unknown_key: 1"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qbe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: sqlite\nsqlite:\n  path: /tmp/x.db\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.SQLite.Path)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFXModule(t *testing.T) {
	t.Setenv("QBE_TEST_PASSWORD", "s3cret")
	cfg, err := Parse([]byte(document))
	require.NoError(t, err)

	var (
		pg       postgres.Config
		registry *metadata.Registry
	)
	app := fxtest.New(t,
		fx.Supply(cfg),
		FXModule,
		fx.Populate(&pg, &registry),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Equal(t, "db.internal", pg.Connection.Host)
	require.Len(t, registry.Entities(), 1)
}
