package hotline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks client-side Prometheus metrics for a Session: transactions
// sent and their outcome, reply latency, and file-transfer bytes. All
// metrics use the hotline_client_ prefix.
//
// A nil *Metrics is safe to use everywhere in this package; every method
// is a no-op on a nil receiver, so passing Options.Metrics = nil (the
// zero value) disables metrics without branching at every call site.
type Metrics struct {
	TransactionsTotal *prometheus.CounterVec
	RequestDuration   prometheus.Histogram
	TransferBytes     *prometheus.CounterVec
	ActiveTransfers   prometheus.Gauge
}

// NewMetrics creates client metrics and registers them with reg. Panics if
// registration fails, which only happens from a duplicate registration
// during initialization.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TransactionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hotline_client_transactions_total",
				Help: "Transactions sent by outcome (ok, timeout, error, cancelled, server_error).",
			},
			[]string{"outcome"},
		),
		RequestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hotline_client_request_duration_seconds",
				Help:    "Latency of request/reply transactions.",
				Buckets: prometheus.DefBuckets,
			},
		),
		TransferBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hotline_client_transfer_bytes_total",
				Help: "Bytes moved over the file-transfer channel by direction.",
			},
			[]string{"direction"},
		),
		ActiveTransfers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "hotline_client_active_transfers",
				Help: "Number of file transfers currently in flight.",
			},
		),
	}

	reg.MustRegister(m.TransactionsTotal, m.RequestDuration, m.TransferBytes, m.ActiveTransfers)
	return m
}

func (m *Metrics) observeRequest(start time.Time, outcome string) {
	if m == nil {
		return
	}
	m.TransactionsTotal.WithLabelValues(outcome).Inc()
	m.RequestDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) addTransferBytes(direction string, n int) {
	if m == nil {
		return
	}
	m.TransferBytes.WithLabelValues(direction).Add(float64(n))
}

func (m *Metrics) transferStarted() {
	if m == nil {
		return
	}
	m.ActiveTransfers.Inc()
}

func (m *Metrics) transferFinished() {
	if m == nil {
		return
	}
	m.ActiveTransfers.Dec()
}
