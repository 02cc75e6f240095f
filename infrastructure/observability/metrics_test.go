package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"auctioneer/config"
)

func TestMetricsProvider_Disabled(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = false
	mp := NewMetricsProvider(cfg)

	require.NoError(t, mp.Initialize(context.Background()))
	assert.False(t, mp.isEnabled())

	// recording on a disabled provider is a no-op
	mp.RecordBidOutcome("accepted")
	mp.RecordBidRetry()
	mp.RecordNotification("sent")
	mp.RecordSweep(3, time.Second)
	mp.RecordNATSMessagePublished("bid_placed", nil)

	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestMetricsProvider_NoneExporter(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "none"
	mp := NewMetricsProvider(cfg)

	require.NoError(t, mp.Initialize(context.Background()))
	assert.False(t, mp.isEnabled())
}

func TestMetricsProvider_UnknownExporter(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.OTelEnabled = true
	cfg.OTelExporterType = "carrier-pigeon"
	mp := NewMetricsProvider(cfg)

	err := mp.Initialize(context.Background())

	assert.EqualError(t, err, "unknown exporter type: carrier-pigeon")
}

func TestMetricsProvider_RecordsInstruments(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer provider.Shutdown(ctx)

	mp := NewMetricsProvider(config.NewTestConfig())
	require.NoError(t, mp.useMeter(provider.Meter("test")))
	mp.initialized = true

	mp.RecordBidOutcome("accepted")
	mp.RecordBidOutcome("accepted")
	mp.RecordBidOutcome("below_minimum")
	mp.RecordBidRetry()
	mp.RecordSweep(2, 150*time.Millisecond)
	mp.RecordNATSMessagePublished("bid_placed", errors.New("timeout"))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	totals := map[string]int64{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					totals[m.Name] += dp.Value
				}
			}
		}
	}

	assert.Equal(t, int64(3), totals[BidsTotal])
	assert.Equal(t, int64(1), totals[BidRetriesTotal])
	assert.Equal(t, int64(1), totals[SweepRunsTotal])
	assert.Equal(t, int64(1), totals[NATSMessagesPublishedTotal])
	assert.Zero(t, totals[NotificationsTotal])
}
