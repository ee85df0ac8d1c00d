package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/qbe/v1/logger"
	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/predicate"
	"github.com/Aleph-Alpha/qbe/v1/qbe"
)

type product struct {
	ID    uint
	Title string `qbe:"searchable"`
	Body  string
	Price *int `qbe:"searchable"`
}

// setupPostgresContainer starts PostgreSQL and waits until it accepts connections.
func setupPostgresContainer(ctx context.Context, t *testing.T) Config {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForSQL(nat.Port("5432/tcp"), "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=testuser password=testpass dbname=testdb sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mappedPort, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := Config{
		Connection: Connection{
			Host:     host,
			Port:     mappedPort.Port(),
			User:     "testuser",
			Password: "testpass",
			DbName:   "testdb",
			SSLMode:  "disable",
		},
	}
	require.NoError(t, waitForPostgresReady(cfg.Connection, 30*time.Second))
	return cfg
}

// waitForPostgresReady pings through lib/pq until the server answers.
func waitForPostgresReady(conn Connection, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		db, err := sql.Open("postgres", conn.DSN())
		if err == nil {
			err = db.Ping()
			_ = db.Close()
			if err == nil {
				return nil
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("timed out waiting for PostgreSQL after %s", timeout)
}

func intPtr(i int) *int { return &i }

func TestPostgres_QueryByExample(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg := setupPostgresContainer(ctx, t)

	var pg *Postgres
	app := fxtest.New(t,
		fx.Provide(
			func() Config { return cfg },
			func() Logger { return logger.NewNop() },
		),
		FXModule,
		fx.Populate(&pg),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NoError(t, pg.AutoMigrate(ctx, &product{}))
	for _, p := range []product{
		{Title: "FooBar", Body: "first", Price: intPtr(5)},
		{Title: "xFoox", Body: "second", Price: intPtr(50)},
		{Title: "bar", Body: "has xyz inside", Price: intPtr(5)},
		{Title: "foo", Body: "lower case", Price: intPtr(0)},
	} {
		require.NoError(t, pg.Create(ctx, &p))
	}

	meta, err := metadata.FromModel(&product{})
	require.NoError(t, err)

	titles := func(rows []product) []string {
		out := make([]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.Title)
		}
		return out
	}

	t.Run("text attribute matches by substring", func(t *testing.T) {
		p, err := qbe.ByExample(meta, &product{Title: "Foo"})
		require.NoError(t, err)

		var rows []product
		require.NoError(t, pg.Find(ctx, meta, p, &rows, qbe.Page{}))
		assert.ElementsMatch(t, []string{"FooBar", "xFoox"}, titles(rows))
	})

	t.Run("conditions are ANDed", func(t *testing.T) {
		p, err := qbe.ByExample(meta, &product{Title: "Foo", Price: intPtr(5)})
		require.NoError(t, err)

		var rows []product
		require.NoError(t, pg.Find(ctx, meta, p, &rows, qbe.Page{}))
		assert.Equal(t, []string{"FooBar"}, titles(rows))
	})

	t.Run("zero through a pointer is a constraint", func(t *testing.T) {
		p, err := qbe.ByExample(meta, &product{Price: intPtr(0)})
		require.NoError(t, err)

		count, err := pg.Count(ctx, meta, p)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("empty example matches everything", func(t *testing.T) {
		p, err := qbe.ByExample(meta, &product{})
		require.NoError(t, err)

		count, err := pg.Count(ctx, meta, p)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})

	t.Run("pattern matches any text attribute", func(t *testing.T) {
		p, err := qbe.ByPattern(meta, "xyz")
		require.NoError(t, err)

		var rows []map[string]any
		require.NoError(t, pg.Find(ctx, meta, p, &rows, qbe.Page{}))
		require.Len(t, rows, 1)
		assert.Equal(t, "bar", rows[0]["title"])
	})

	t.Run("page bounds the result", func(t *testing.T) {
		var rows []product
		require.NoError(t, pg.Find(ctx, meta, predicate.True{}, &rows, qbe.Page{Limit: 2, Offset: 1}))
		assert.Len(t, rows, 2)
	})
}
