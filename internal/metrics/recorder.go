package metrics

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	sdk "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "github.com/looplj/jsonfixer"

// Recorder holds the instruments used by the repair service and the HTTP layer.
type Recorder struct {
	outcomes        metric.Int64Counter
	repairDuration  metric.Float64Histogram
	requests        metric.Int64Counter
	requestDuration metric.Float64Histogram
}

// NewRecorder creates the instruments on provider, or on a noop provider when nil.
func NewRecorder(provider *sdk.MeterProvider) (*Recorder, error) {
	var meter metric.Meter
	if provider == nil {
		meter = noop.NewMeterProvider().Meter(meterName)
	} else {
		meter = provider.Meter(meterName)
	}

	outcomes, err := meter.Int64Counter("jsonfixer.repair.outcomes",
		metric.WithDescription("Repair attempts by outcome."),
	)
	if err != nil {
		return nil, err
	}

	repairDuration, err := meter.Float64Histogram("jsonfixer.repair.duration",
		metric.WithDescription("Time spent producing a repair outcome."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	requests, err := meter.Int64Counter("jsonfixer.http.requests",
		metric.WithDescription("HTTP requests by route and status."),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram("jsonfixer.http.duration",
		metric.WithDescription("HTTP request latency."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Recorder{
		outcomes:        outcomes,
		repairDuration:  repairDuration,
		requests:        requests,
		requestDuration: requestDuration,
	}, nil
}

func (r *Recorder) RecordOutcome(ctx context.Context, outcome string, cached bool, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.Bool("cached", cached),
	)

	r.outcomes.Add(ctx, 1, attrs)
	r.repairDuration.Record(ctx, milliseconds(elapsed), attrs)
}

func (r *Recorder) RecordRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.String("status", strconv.Itoa(status)),
	)

	r.requests.Add(ctx, 1, attrs)
	r.requestDuration.Record(ctx, milliseconds(elapsed), attrs)
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
