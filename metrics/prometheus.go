package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Capital call metrics collector
// Provides metrics for monitoring round lifecycle and settlement activity

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds all capital call metrics
type Collector struct {
	// Round metrics
	RoundsCreated prometheus.Counter
	RoundsMinted  prometheus.Counter
	RoundsClosed  prometheus.Counter

	// Deposit metrics
	DepositsTotal  *prometheus.CounterVec
	DepositVolume  *prometheus.CounterVec
	AllocatedTotal *prometheus.GaugeVec

	// Settlement metrics
	ClaimsTotal   *prometheus.CounterVec
	ClaimShares   *prometheus.CounterVec
	RefundsTotal  *prometheus.CounterVec
	RefundVolume  *prometheus.CounterVec
	SharesMinted  *prometheus.CounterVec
	EscrowBalance *prometheus.GaugeVec

	// Query/API metrics
	QueryRequestsTotal *prometheus.CounterVec
	QueryLatency       *prometheus.HistogramVec

	// System metrics
	BlockHeight prometheus.Gauge
}

// GetCollector returns the singleton metrics collector
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

// newCollector creates a new metrics collector
func newCollector() *Collector {
	c := &Collector{}

	// Round metrics
	c.RoundsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "capitalcall",
			Subsystem: "rounds",
			Name:      "created_total",
			Help:      "Total number of capital call rounds created",
		},
	)

	c.RoundsMinted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "capitalcall",
			Subsystem: "rounds",
			Name:      "minted_total",
			Help:      "Total number of rounds that reached the share mint",
		},
	)

	c.RoundsClosed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "capitalcall",
			Subsystem: "rounds",
			Name:      "closed_total",
			Help:      "Total number of rounds closed",
		},
	)

	// Deposit metrics
	c.DepositsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capitalcall",
			Subsystem: "deposits",
			Name:      "total",
			Help:      "Total number of accepted deposits",
		},
		[]string{"call_id"},
	)

	c.DepositVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capitalcall",
			Subsystem: "deposits",
			Name:      "volume",
			Help:      "Total deposited asset volume",
		},
		[]string{"call_id"},
	)

	c.AllocatedTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "capitalcall",
			Subsystem: "deposits",
			Name:      "allocated",
			Help:      "Allocated amount per round",
		},
		[]string{"call_id"},
	)

	// Settlement metrics
	c.ClaimsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capitalcall",
			Subsystem: "settlement",
			Name:      "claims_total",
			Help:      "Total number of voucher claims",
		},
		[]string{"call_id"},
	)

	c.ClaimShares = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capitalcall",
			Subsystem: "settlement",
			Name:      "claim_shares",
			Help:      "Total shares paid out through claims",
		},
		[]string{"call_id"},
	)

	c.RefundsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capitalcall",
			Subsystem: "settlement",
			Name:      "refunds_total",
			Help:      "Total number of voucher refunds",
		},
		[]string{"call_id"},
	)

	c.RefundVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capitalcall",
			Subsystem: "settlement",
			Name:      "refund_volume",
			Help:      "Total refunded asset volume",
		},
		[]string{"call_id"},
	)

	c.SharesMinted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capitalcall",
			Subsystem: "settlement",
			Name:      "shares_minted",
			Help:      "Total shares minted per round",
		},
		[]string{"call_id"},
	)

	c.EscrowBalance = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "capitalcall",
			Subsystem: "settlement",
			Name:      "escrow_balance",
			Help:      "Shares held in escrow pending claims",
		},
		[]string{"call_id"},
	)

	// Query/API metrics
	c.QueryRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "capitalcall",
			Subsystem: "query",
			Name:      "requests_total",
			Help:      "Total query requests",
		},
		[]string{"method", "status"},
	)

	c.QueryLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "capitalcall",
			Subsystem: "query",
			Name:      "latency_ms",
			Help:      "Query latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"method"},
	)

	// System metrics
	c.BlockHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "capitalcall",
			Subsystem: "system",
			Name:      "block_height",
			Help:      "Current block height",
		},
	)

	c.registerAll()
	return c
}

// registerAll registers all metrics with the default registry
func (c *Collector) registerAll() {
	prometheus.MustRegister(
		c.RoundsCreated,
		c.RoundsMinted,
		c.RoundsClosed,
		c.DepositsTotal,
		c.DepositVolume,
		c.AllocatedTotal,
		c.ClaimsTotal,
		c.ClaimShares,
		c.RefundsTotal,
		c.RefundVolume,
		c.SharesMinted,
		c.EscrowBalance,
		c.QueryRequestsTotal,
		c.QueryLatency,
		c.BlockHeight,
	)
}

// RecordRoundCreated increments the round creation counter
func (c *Collector) RecordRoundCreated() {
	c.RoundsCreated.Inc()
}

// RecordDeposit records an accepted deposit
func (c *Collector) RecordDeposit(callID string, amount float64) {
	c.DepositsTotal.WithLabelValues(callID).Inc()
	c.DepositVolume.WithLabelValues(callID).Add(amount)
	c.AllocatedTotal.WithLabelValues(callID).Add(amount)
}

// RecordMint records a completed share mint
func (c *Collector) RecordMint(callID string, shares float64) {
	c.RoundsMinted.Inc()
	c.SharesMinted.WithLabelValues(callID).Add(shares)
	c.EscrowBalance.WithLabelValues(callID).Add(shares)
}

// RecordClaim records a voucher claim
func (c *Collector) RecordClaim(callID string, shares float64) {
	c.ClaimsTotal.WithLabelValues(callID).Inc()
	c.ClaimShares.WithLabelValues(callID).Add(shares)
	c.EscrowBalance.WithLabelValues(callID).Sub(shares)
}

// RecordRefund records a voucher refund
func (c *Collector) RecordRefund(callID string, amount float64) {
	c.RefundsTotal.WithLabelValues(callID).Inc()
	c.RefundVolume.WithLabelValues(callID).Add(amount)
}

// RecordClose records a round close
func (c *Collector) RecordClose(callID string) {
	c.RoundsClosed.Inc()
	c.EscrowBalance.WithLabelValues(callID).Set(0)
	c.AllocatedTotal.WithLabelValues(callID).Set(0)
}

// RecordQuery records a query request and its latency
func (c *Collector) RecordQuery(method, status string, latencyMs float64) {
	c.QueryRequestsTotal.WithLabelValues(method, status).Inc()
	c.QueryLatency.WithLabelValues(method).Observe(latencyMs)
}

// UpdateBlockHeight updates the block height gauge
func (c *Collector) UpdateBlockHeight(height int64) {
	c.BlockHeight.Set(float64(height))
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for measuring latency
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ElapsedMs returns elapsed time in milliseconds
func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Nanoseconds()) / 1e6
}
