package search

import "context"

// Logger is the subset of logger.Logger the service needs.
//
//go:generate mockgen -source=logger.go -destination=mock_logger.go -package=search
type Logger interface {
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
