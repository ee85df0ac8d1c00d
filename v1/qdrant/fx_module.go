package qdrant

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *Client and closes its connection on stop.
// It requires a qdrant.Config and a qdrant.Logger in the container.
var FXModule = fx.Module("qdrant",
	fx.Provide(NewClientWithDI),
	fx.Invoke(RegisterClientLifecycle),
)

// ClientParams groups the dependencies of NewClientWithDI.
type ClientParams struct {
	fx.In

	Config Config
	Logger Logger
}

// NewClientWithDI is the fx constructor of *Client.
func NewClientWithDI(params ClientParams) (*Client, error) {
	cfg := params.Config
	return NewClient(&cfg, params.Logger)
}

// RegisterClientLifecycle closes the client when the application stops.
func RegisterClientLifecycle(lc fx.Lifecycle, client *Client, logger Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := client.Close(); err != nil {
				logger.Error("failed to close qdrant client", err, nil)
				return err
			}
			logger.Info("closed qdrant client", nil, nil)
			return nil
		},
	})
}
