package core

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds a handful of prometheus primitives registered into a
// caller-owned registry, updated by explicit calls from instruction
// handlers rather than scraped from shared state. cmd/explorer exposes
// the default registry's collectors over /metrics.
type Metrics struct {
	roundsOpened      prometheus.Counter
	roundsSettled     prometheus.Counter
	roundsCancelled   prometheus.Counter
	claimLatency      prometheus.Histogram
	degenFallbackRate prometheus.Counter
	degenSuccessRate  prometheus.Counter
}

// NewMetrics registers roll2roll's collectors into reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		roundsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roll2roll_rounds_opened_total",
			Help: "Rounds transitioned to Open via start_round.",
		}),
		roundsSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roll2roll_rounds_settled_total",
			Help: "Rounds transitioned to Settled via vrf_callback.",
		}),
		roundsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roll2roll_rounds_cancelled_total",
			Help: "Rounds transitioned to Cancelled.",
		}),
		claimLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "roll2roll_claim_latency_seconds",
			Help:    "Seconds between a round's end_ts and its claim.",
			Buckets: prometheus.DefBuckets,
		}),
		degenFallbackRate: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roll2roll_degen_fallbacks_total",
			Help: "Degen claims settled via the USDC fallback path.",
		}),
		degenSuccessRate: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roll2roll_degen_success_total",
			Help: "Degen claims settled via finalize_degen_success.",
		}),
	}
	reg.MustRegister(
		m.roundsOpened, m.roundsSettled, m.roundsCancelled,
		m.claimLatency, m.degenFallbackRate, m.degenSuccessRate,
	)
	return m
}

// ObserveRoundOpened increments the rounds-opened counter.
func (m *Metrics) ObserveRoundOpened() { m.roundsOpened.Inc() }

// ObserveRoundSettled increments the rounds-settled counter.
func (m *Metrics) ObserveRoundSettled() { m.roundsSettled.Inc() }

// ObserveRoundCancelled increments the rounds-cancelled counter.
func (m *Metrics) ObserveRoundCancelled() { m.roundsCancelled.Inc() }

// ObserveClaimLatency records the seconds between a round's end_ts and the
// instant it was claimed.
func (m *Metrics) ObserveClaimLatency(seconds float64) { m.claimLatency.Observe(seconds) }

// ObserveDegenFallback increments the degen-fallback counter.
func (m *Metrics) ObserveDegenFallback() { m.degenFallbackRate.Inc() }

// ObserveDegenSuccess increments the degen-success counter.
func (m *Metrics) ObserveDegenSuccess() { m.degenSuccessRate.Inc() }
