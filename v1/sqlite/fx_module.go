package sqlite

import (
	"context"

	"go.uber.org/fx"
)

// Logger is the subset of logger.Logger the store needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// FXModule provides *Store and closes it when the application stops.
// It requires a sqlite.Config and a sqlite.Logger in the container.
var FXModule = fx.Module("sqlite",
	fx.Provide(NewStoreWithDI),
	fx.Invoke(RegisterStoreLifecycle),
)

// StoreParams groups the dependencies of NewStoreWithDI.
type StoreParams struct {
	fx.In

	Config Config
	Logger Logger
}

// NewStoreWithDI is the fx constructor of *Store.
func NewStoreWithDI(params StoreParams) (*Store, error) {
	store, err := Open(params.Config)
	if err != nil {
		return nil, err
	}
	params.Logger.Info("opened sqlite database", nil, map[string]interface{}{"path": store.Path()})
	return store, nil
}

// RegisterStoreLifecycle closes the store on stop.
func RegisterStoreLifecycle(lc fx.Lifecycle, store *Store, logger Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := store.Close(); err != nil {
				logger.Error("failed to close sqlite database", err, nil)
				return err
			}
			logger.Info("closed sqlite database", nil, nil)
			return nil
		},
	})
}
