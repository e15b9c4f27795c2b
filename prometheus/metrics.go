// Package prometheus provides Prometheus instrumentation for partscout
// services.
package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/partscout"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors shared by the instrumented decorators.
type Metrics struct {
	LookupsTotal       *prometheus.CounterVec
	LookupDuration     prometheus.Histogram
	RateLimitDecisions *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "partscout_lookups_total",
				Help: "Total number of part lookups by outcome code.",
			},
			[]string{"code"},
		),
		LookupDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "partscout_lookup_duration_seconds",
				Help:    "Duration of part lookups.",
				Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
			},
		),
		RateLimitDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "partscout_ratelimit_decisions_total",
				Help: "Total number of rate limiter decisions.",
			},
			[]string{"result"},
		),
	}
}

// Ensure InstrumentedLookup implements partscout.ComponentLookup.
var _ partscout.ComponentLookup = (*InstrumentedLookup)(nil)

// InstrumentedLookup counts lookups by error code and observes their duration.
// Successful lookups are counted under the code "ok".
type InstrumentedLookup struct {
	next    partscout.ComponentLookup
	metrics *Metrics
}

// NewInstrumentedLookup creates a new InstrumentedLookup.
func NewInstrumentedLookup(next partscout.ComponentLookup, m *Metrics) *InstrumentedLookup {
	return &InstrumentedLookup{next: next, metrics: m}
}

// LookupComponent delegates to the wrapped lookup.
func (l *InstrumentedLookup) LookupComponent(ctx context.Context, pn string) (rec *partscout.ComponentRecord, err error) {
	defer func(begin time.Time) {
		code := "ok"
		if err != nil {
			code = partscout.ErrorCode(err)
		}
		l.metrics.LookupsTotal.WithLabelValues(code).Inc()
		l.metrics.LookupDuration.Observe(time.Since(begin).Seconds())
	}(time.Now())
	return l.next.LookupComponent(ctx, pn)
}

// Ensure InstrumentedLimiter implements partscout.Limiter.
var _ partscout.Limiter = (*InstrumentedLimiter)(nil)

// InstrumentedLimiter counts allowed and denied permits.
type InstrumentedLimiter struct {
	next    partscout.Limiter
	metrics *Metrics
}

// NewInstrumentedLimiter creates a new InstrumentedLimiter.
func NewInstrumentedLimiter(next partscout.Limiter, m *Metrics) *InstrumentedLimiter {
	return &InstrumentedLimiter{next: next, metrics: m}
}

// TryAcquire delegates to the wrapped limiter.
func (l *InstrumentedLimiter) TryAcquire() bool {
	ok := l.next.TryAcquire()
	result := "denied"
	if ok {
		result = "allowed"
	}
	l.metrics.RateLimitDecisions.WithLabelValues(result).Inc()
	return ok
}
