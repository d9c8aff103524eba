package metrics

import "time"

const (
	ExporterStdout   = "stdout"
	ExporterOTLPHTTP = "otlphttp"
	ExporterOTLPGRPC = "otlpgrpc"
)

type Config struct {
	// Exporter is one of stdout, otlphttp or otlpgrpc. Empty disables metrics export.
	Exporter string        `conf:"exporter" yaml:"exporter" json:"exporter"`
	Endpoint string        `conf:"endpoint" yaml:"endpoint" json:"endpoint"`
	Insecure bool          `conf:"insecure" yaml:"insecure" json:"insecure"`
	Interval time.Duration `conf:"interval" yaml:"interval" json:"interval"`
}
