package todoapi

import "github.com/pkg/errors"

// TracerConfig configures the OpenTelemetry tracer and meter providers. If
// not enabled, no telemetry is exported.
type TracerConfig struct {
	Enabled           bool   `yaml:"enabled"`
	CollectorEndpoint string `yaml:"collector_endpoint" mapstructure:"OTEL_COLLECTOR_ENDPOINT"`
	// Insecure dials the collector without TLS, for local collectors.
	Insecure bool `yaml:"insecure"`
}

// ValidateAndDefault validates the tracer configuration.
func (c *TracerConfig) ValidateAndDefault() error {
	if c.Enabled && c.CollectorEndpoint == "" {
		return errors.New("tracer can't be enabled without a collector endpoint")
	}
	return nil
}
