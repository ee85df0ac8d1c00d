package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/qbe/v1/logger"
)

func TestReplaceConnection_ClosesPreviousPool(t *testing.T) {
	first := dryRunDB(t)
	second := dryRunDB(t)

	pg := &Postgres{
		logger:          logger.NewNop(),
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
	pg.client.Store(first)

	pg.replaceConnection(second)
	assert.Same(t, second, pg.DB())

	firstPool, err := first.DB()
	require.NoError(t, err)
	// A closed pool fails without dialing.
	err = firstPool.Ping()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is closed")

	secondPool, err := second.DB()
	require.NoError(t, err)
	assert.Zero(t, secondPool.Stats().OpenConnections)

	require.NoError(t, pg.GracefulShutdown())
	err = secondPool.Ping()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is closed")
}

func TestReplaceConnection_WithoutPrevious(t *testing.T) {
	pg := &Postgres{logger: logger.NewNop()}
	conn := dryRunDB(t)

	pg.replaceConnection(conn)
	assert.Same(t, conn, pg.DB())
}
