// Package tracer provides OpenTelemetry tracing for qbe services.
//
// The Tracer wraps an SDK TracerProvider and offers span creation, error
// recording, attribute helpers and W3C trace-context propagation. When
// EnableExport is set, spans are batched to an OTLP/HTTP collector; the
// standard OTEL_EXPORTER_OTLP_* environment variables apply.
//
// Basic Usage:
//
//	tr, err := tracer.NewClient(tracer.Config{
//		ServiceName:  "qbe",
//		AppEnv:       "production",
//		EnableExport: true,
//	}, log)
//	if err != nil {
//		return err
//	}
//
//	ctx, span := tr.StartSpan(ctx, "search.by_example")
//	defer span.End()
//
//	if err != nil {
//		tr.RecordErrorOnSpan(span, err)
//	}
//
// FX Module Integration:
//
//	app := fx.New(
//		tracer.FXModule,
//		fx.Provide(func() tracer.Config { return cfg.Tracer }),
//	)
//
// The module shuts the provider down, flushing pending spans, when the
// application stops.
package tracer
