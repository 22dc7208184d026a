package hotline

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==== nil safety ====

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.observeRequest(time.Now(), "ok")
		m.addTransferBytes("download", 1024)
		m.transferStarted()
		m.transferFinished()
	})
}

// ==== construction ====

func TestNewMetricsRegistersEveryCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	require.NotNil(t, m.TransactionsTotal)
	require.NotNil(t, m.RequestDuration)
	require.NotNil(t, m.TransferBytes)
	require.NotNil(t, m.ActiveTransfers)
}

// ==== observeRequest ====

func TestObserveRequestIncrementsByOutcome(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.observeRequest(time.Now(), "ok")
	m.observeRequest(time.Now(), "ok")
	m.observeRequest(time.Now(), "timeout")

	assert.Equal(t, float64(2), counterValue(t, m.TransactionsTotal, "ok"))
	assert.Equal(t, float64(1), counterValue(t, m.TransactionsTotal, "timeout"))
}

// ==== transfer byte counters ====

func TestAddTransferBytesSeparatesDirections(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.addTransferBytes("download", 100)
	m.addTransferBytes("download", 50)
	m.addTransferBytes("upload", 10)

	assert.Equal(t, float64(150), counterValue(t, m.TransferBytes, "download"))
	assert.Equal(t, float64(10), counterValue(t, m.TransferBytes, "upload"))
}

// ==== active transfer gauge ====

func TestTransferStartedAndFinishedTrackGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.transferStarted()
	m.transferStarted()
	assert.Equal(t, float64(2), gaugeValue(t, m.ActiveTransfers))

	m.transferFinished()
	assert.Equal(t, float64(1), gaugeValue(t, m.ActiveTransfers))
}

func counterValue(t *testing.T, cv *prometheus.CounterVec, label string) float64 {
	t.Helper()
	counter, err := cv.GetMetricWithLabelValues(label)
	require.NoError(t, err)

	var metric io_prometheus_client.Metric
	require.NoError(t, counter.Write(&metric))
	return metric.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()

	var metric io_prometheus_client.Metric
	require.NoError(t, g.Write(&metric))
	return metric.GetGauge().GetValue()
}
