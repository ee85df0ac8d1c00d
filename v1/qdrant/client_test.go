package qdrant

import (
	"context"
	"errors"
	"testing"

	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/qbe/v1/logger"
	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/predicate"
	"github.com/Aleph-Alpha/qbe/v1/qbe"
)

type fakeQuerier struct {
	req    *qdrant.QueryPoints
	points []*qdrant.ScoredPoint
	err    error
}

func (f *fakeQuerier) Query(_ context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error) {
	f.req = req
	return f.points, f.err
}

func newTestClient(q pointsQuerier, cfg *Config) *Client {
	return &Client{points: q, cfg: cfg, logger: logger.NewNop()}
}

func widgetMeta(t *testing.T) metadata.EntityMetadata {
	t.Helper()
	meta, err := metadata.NewDynamic(metadata.Definition{
		Name: "widgets",
		Attributes: []metadata.AttributeDefinition{
			{Name: "name", Type: "text", Searchable: true},
			{Name: "count", Type: "numeric", Column: "qty", Searchable: true},
		},
	})
	require.NoError(t, err)
	return meta
}

func TestClient_Find(t *testing.T) {
	q := &fakeQuerier{points: []*qdrant.ScoredPoint{
		{
			Id: qdrant.NewIDNum(7),
			Payload: qdrant.NewValueMap(map[string]any{
				"name": "FooBar",
				"qty":  5,
				"tags": []any{"a", "b"},
				"dims": map[string]any{"w": 1.5},
			}),
		},
		{
			Id:      qdrant.NewIDUUID("5c56c793-69f3-4fbf-87e6-c4bf54c28c26"),
			Payload: qdrant.NewValueMap(map[string]any{"name": "xFoox", "id": "own-id"}),
		},
		{Id: qdrant.NewIDNum(9)},
	}}
	client := newTestClient(q, DefaultConfig().WithCollection("widgets", "widgets_v2"))
	meta := widgetMeta(t)

	p, err := qbe.ByExample(meta, map[string]any{"name": "Foo", "count": 5})
	require.NoError(t, err)

	var rows []map[string]any
	require.NoError(t, client.Find(context.Background(), meta, p, &rows, qbe.Page{Limit: 10, Offset: 20}))

	require.NotNil(t, q.req)
	assert.Equal(t, "widgets_v2", q.req.GetCollectionName())
	assert.Equal(t, uint64(10), q.req.GetLimit())
	assert.Equal(t, uint64(20), q.req.GetOffset())
	require.NotNil(t, q.req.GetFilter())
	require.Len(t, q.req.GetFilter().GetMust(), 2)
	assert.Equal(t, "qty", q.req.GetFilter().GetMust()[1].GetField().GetKey())

	require.Len(t, rows, 3)
	assert.Equal(t, map[string]any{
		"id":   "7",
		"name": "FooBar",
		"qty":  int64(5),
		"tags": []any{"a", "b"},
		"dims": map[string]any{"w": 1.5},
	}, rows[0])
	assert.Equal(t, "own-id", rows[1]["id"])
	assert.Equal(t, map[string]any{"id": "9"}, rows[2])
}

func TestClient_FindDefaults(t *testing.T) {
	q := &fakeQuerier{}
	client := newTestClient(q, &Config{})
	meta := widgetMeta(t)

	var rows []map[string]any
	require.NoError(t, client.Find(context.Background(), meta, predicate.MatchAll(), &rows, qbe.Page{}))

	assert.Equal(t, "widgets", q.req.GetCollectionName())
	assert.Equal(t, uint64(defaultLimit), q.req.GetLimit())
	assert.Nil(t, q.req.Offset)
	assert.Nil(t, q.req.GetFilter())
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestClient_FindErrors(t *testing.T) {
	meta := widgetMeta(t)
	ctx := context.Background()

	t.Run("destination", func(t *testing.T) {
		client := newTestClient(&fakeQuerier{}, DefaultConfig())
		var typed []struct{}
		assert.ErrorIs(t, client.Find(ctx, meta, nil, &typed, qbe.Page{}), ErrUnsupportedDestination)
	})

	t.Run("unsupported value", func(t *testing.T) {
		q := &fakeQuerier{}
		client := newTestClient(q, DefaultConfig())
		var rows []map[string]any
		err := client.Find(ctx, meta, predicate.NewEqual("count", []int{1}), &rows, qbe.Page{})
		assert.ErrorIs(t, err, ErrUnsupportedValue)
		assert.Nil(t, q.req)
	})

	t.Run("query failure", func(t *testing.T) {
		boom := errors.New("unavailable")
		client := newTestClient(&fakeQuerier{err: boom}, DefaultConfig())
		var rows []map[string]any
		err := client.Find(ctx, meta, nil, &rows, qbe.Page{})
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "widgets")
	})
}

func TestConfig(t *testing.T) {
	cfg := FromEndpoint("qdrant.internal").WithApiKey("secret").WithCompatibilityCheck(false)
	assert.Equal(t, "qdrant.internal", cfg.Endpoint)
	assert.Equal(t, "secret", cfg.ApiKey)
	assert.False(t, cfg.CheckCompatibility)
	assert.Equal(t, "orders", cfg.Collection("orders"))

	empty := &Config{}
	assert.Equal(t, defaultPort, empty.port())
	assert.Equal(t, defaultLimit, empty.limit())
	assert.Equal(t, "id", empty.idField())
	assert.Equal(t, defaultHealthTimeout, empty.timeout())
}
