// Package logger provides the structured zap logger shared by every qbe package.
//
// The package follows the "accept interfaces, return structs" pattern: consumers
// depend on the Logger interface (or declare a narrower one of their own), while
// NewLoggerClient returns the concrete *LoggerClient.
//
// Basic Usage:
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "qbe",
//	})
//
//	log.Info("predicate built", nil, map[string]interface{}{
//		"entity":     "widgets",
//		"conditions": 2,
//	})
//
// Context-Aware Logging:
//
// With EnableTracing set, the *WithContext variants add the trace_id and span_id
// of the active OpenTelemetry span to the entry:
//
//	log.ErrorWithContext(ctx, "search failed", err, map[string]interface{}{
//		"query_id": queryID,
//	})
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule, // provides *LoggerClient and logger.Logger
//		fx.Provide(func() logger.Config { return cfg.Logger }),
//	)
//
// Thread Safety:
//
// All methods are safe for concurrent use.
package logger
