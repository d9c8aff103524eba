package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	sdk "go.opentelemetry.io/otel/sdk/metric"
)

func collect(t *testing.T, reader *sdk.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	result := map[string]metricdata.Metrics{}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			result[m.Name] = m
		}
	}

	return result
}

func TestRecordOutcome(t *testing.T) {
	reader := sdk.NewManualReader()
	provider := sdk.NewMeterProvider(sdk.WithReader(reader))

	recorder, err := NewRecorder(provider)
	require.NoError(t, err)

	ctx := context.Background()
	recorder.RecordOutcome(ctx, "repaired", false, 2*time.Millisecond)
	recorder.RecordOutcome(ctx, "repaired", false, time.Millisecond)
	recorder.RecordOutcome(ctx, "failed", true, time.Millisecond)

	got := collect(t, reader)

	outcomes, ok := got["jsonfixer.repair.outcomes"]
	require.True(t, ok)

	sum, ok := outcomes.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	counts := map[string]int64{}

	for _, dp := range sum.DataPoints {
		v, ok := dp.Attributes.Value(attribute.Key("outcome"))
		require.True(t, ok)

		counts[v.AsString()] += dp.Value
	}

	require.Equal(t, map[string]int64{"repaired": 2, "failed": 1}, counts)

	duration, ok := got["jsonfixer.repair.duration"]
	require.True(t, ok)
	require.Equal(t, "ms", duration.Unit)
}

func TestRecordRequest(t *testing.T) {
	reader := sdk.NewManualReader()
	provider := sdk.NewMeterProvider(sdk.WithReader(reader))

	recorder, err := NewRecorder(provider)
	require.NoError(t, err)

	recorder.RecordRequest(context.Background(), "POST", "/fix-json", 400, time.Millisecond)

	got := collect(t, reader)
	sum, ok := got["jsonfixer.http.requests"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)

	status, ok := sum.DataPoints[0].Attributes.Value(attribute.Key("status"))
	require.True(t, ok)
	require.Equal(t, "400", status.AsString())
}

func TestNoopRecorder(t *testing.T) {
	recorder, err := NewRecorder(nil)
	require.NoError(t, err)

	recorder.RecordOutcome(context.Background(), "unchanged", false, time.Millisecond)
	recorder.RecordRequest(context.Background(), "GET", "/health", 200, time.Millisecond)
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(Config{})
	require.NoError(t, err)
	require.Nil(t, provider)

	provider, err = NewProvider(Config{Exporter: ExporterStdout, Interval: time.Hour})
	require.NoError(t, err)
	require.NotNil(t, provider)
	require.NoError(t, provider.Shutdown(context.Background()))

	_, err = NewProvider(Config{Exporter: "prometheus"})
	require.Error(t, err)
}
