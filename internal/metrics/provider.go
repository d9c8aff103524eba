package metrics

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/resource"

	sdk "go.opentelemetry.io/otel/sdk/metric"

	"github.com/looplj/jsonfixer/internal/build"
)

// NewProvider builds a meter provider for the configured exporter.
// It returns nil when no exporter is configured.
func NewProvider(config Config) (*sdk.MeterProvider, error) {
	exporter, err := newExporter(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if exporter == nil {
		return nil, nil
	}

	interval := config.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	return sdk.NewMeterProvider(
		sdk.WithReader(sdk.NewPeriodicReader(exporter, sdk.WithInterval(interval))),
		sdk.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "jsonfixer"),
			attribute.String("service.version", build.Version),
		)),
	), nil
}

func newExporter(ctx context.Context, config Config) (sdk.Exporter, error) {
	switch config.Exporter {
	case "":
		return nil, nil
	case ExporterStdout:
		return stdoutmetric.New(stdoutmetric.WithWriter(os.Stdout))
	case ExporterOTLPHTTP:
		var opts []otlpmetrichttp.Option
		if config.Endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(config.Endpoint))
		}

		if config.Insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}

		return otlpmetrichttp.New(ctx, opts...)
	case ExporterOTLPGRPC:
		var opts []otlpmetricgrpc.Option
		if config.Endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(config.Endpoint))
		}

		if config.Insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}

		return otlpmetricgrpc.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unsupported metrics exporter: %s", config.Exporter)
	}
}

// SetupMetrics installs the provider as the global meter provider.
func SetupMetrics(provider *sdk.MeterProvider) {
	if provider == nil {
		return
	}

	otel.SetMeterProvider(provider)
}
