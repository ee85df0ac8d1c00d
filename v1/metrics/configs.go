package metrics

// DefaultMetricsAddress is the conventional scrape address.
const DefaultMetricsAddress = ":9090"

// Config controls metric naming and exposure.
type Config struct {
	// Address is where the /metrics endpoint listens, e.g. ":9090".
	// Empty disables the HTTP server; metrics are still collected.
	Address string `yaml:"address"`

	// EnableDefaultCollectors registers the Go runtime, process and build info collectors.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors"`

	// Namespace prefixes every metric name, e.g. "search" gives search_predicates_built_total.
	Namespace string `yaml:"namespace"`

	// ServiceName is attached to every series as the service label.
	ServiceName string `yaml:"service_name"`
}
