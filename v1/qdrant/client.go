package qdrant

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/qbe/v1/metadata"
	"github.com/Aleph-Alpha/qbe/v1/predicate"
	"github.com/Aleph-Alpha/qbe/v1/qbe"
)

// ErrUnsupportedDestination is returned by Find when dest is not a *[]map[string]any.
var ErrUnsupportedDestination = errors.New("destination must be *[]map[string]any")

// Logger is the subset of logger.Logger the client needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// pointsQuerier is the part of *qdrant.Client that Find uses.
type pointsQuerier interface {
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
}

// Client wraps the official Qdrant Go client.
type Client struct {
	api    *qdrant.Client
	points pointsQuerier
	cfg    *Config
	logger Logger
}

// NewClient connects to Qdrant and verifies the connection with a health check.
func NewClient(cfg *Config, logger Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   cfg.port(),
		APIKey:                 cfg.ApiKey,
		UseTLS:                 cfg.UseTLS,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize qdrant client: %w", err)
	}

	c := &Client{api: api, points: api, cfg: cfg, logger: logger}
	if err := c.healthCheck(); err != nil {
		_ = api.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) healthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.timeout())
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("qdrant health check failed: %w", err)
	}

	c.logger.Info("connected to qdrant", nil, map[string]interface{}{
		"endpoint": c.cfg.Endpoint,
		"version":  resp.GetVersion(),
	})
	return nil
}

// API returns the underlying Qdrant SDK client.
func (c *Client) API() *qdrant.Client {
	return c.api
}

// Close closes the gRPC connection.
func (c *Client) Close() error {
	if c.api == nil {
		return nil
	}
	return c.api.Close()
}

// Find loads the points of meta's collection matching p into dest, which must
// be a *[]map[string]any. Each row is the point's payload plus its id.
// A page without a limit is capped at Config.DefaultLimit.
func (c *Client) Find(ctx context.Context, meta metadata.EntityMetadata, p predicate.Predicate, dest any, page qbe.Page) error {
	out, ok := dest.(*[]map[string]any)
	if !ok || out == nil {
		return ErrUnsupportedDestination
	}

	filter, err := Filter(p, metadata.Columns(meta))
	if err != nil {
		return fmt.Errorf("failed to build filter for %s: %w", meta.Entity(), err)
	}

	limit := uint64(c.cfg.limit())
	if page.Limit > 0 {
		limit = uint64(page.Limit)
	}
	req := &qdrant.QueryPoints{
		CollectionName: c.cfg.Collection(meta.Entity()),
		Filter:         filter,
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if page.Offset > 0 {
		offset := uint64(page.Offset)
		req.Offset = &offset
	}

	points, err := c.points.Query(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", req.CollectionName, err)
	}

	rows := make([]map[string]any, 0, len(points))
	for _, point := range points {
		row := payloadToMap(point.GetPayload())
		if row == nil {
			row = map[string]any{}
		}
		if _, taken := row[c.cfg.idField()]; !taken {
			row[c.cfg.idField()] = pointID(point.GetId())
		}
		rows = append(rows, row)
	}
	*out = rows
	return nil
}

func pointID(id *qdrant.PointId) any {
	switch v := id.GetPointIdOptions().(type) {
	case *qdrant.PointId_Num:
		return strconv.FormatUint(v.Num, 10)
	case *qdrant.PointId_Uuid:
		return v.Uuid
	default:
		return nil
	}
}

// payloadToMap converts Qdrant's protobuf payload to plain Go values.
func payloadToMap(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return nil
	}
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		result[k] = fromValue(v)
	}
	return result
}

func fromValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_StructValue:
		if val.StructValue == nil {
			return nil
		}
		return payloadToMap(val.StructValue.Fields)
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = fromValue(item)
		}
		return items
	default:
		return nil
	}
}
