package tracer

// Config controls the tracer provider.
type Config struct {
	// ServiceName is recorded as the service.name resource attribute.
	ServiceName string `yaml:"service_name"`

	// AppEnv is recorded as deployment.environment, e.g. "production".
	AppEnv string `yaml:"app_env"`

	// EnableExport turns on OTLP/HTTP export. Without it spans are created
	// (so trace ids still reach the logs) but never leave the process.
	EnableExport bool `yaml:"enable_export"`

	// Endpoint is the collector host:port. Empty means the exporter default
	// or OTEL_EXPORTER_OTLP_ENDPOINT.
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure"`
}
