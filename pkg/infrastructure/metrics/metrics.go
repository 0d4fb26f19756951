// Package metrics exposes prometheus collectors for quote evaluation.
// Collectors are registered on a caller-supplied registerer; serving them is
// left to the host.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Quote outcomes
const (
	OutcomeQuoted       = "quoted"
	OutcomeInvalidInput = "invalid_input"
	OutcomeNotFound     = "not_found"
	OutcomeError        = "error"
)

// Memo lookup results
const (
	MemoResultHit  = "hit"
	MemoResultMiss = "miss"
)

const metricsNamespace = "rxprocure"

// Metrics groups the engine collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	quotes        *prometheus.CounterVec
	stockExceeded prometheus.Counter
	memoLookups   *prometheus.CounterVec
	batchRows     prometheus.Histogram
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "quotes_total",
			Help:      "Quote evaluations by outcome.",
		}, []string{"outcome"}),
		stockExceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "stock_exceeded_total",
			Help:      "Quotes whose requested quantity exceeds total supplier stock.",
		}),
		memoLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "memo_lookups_total",
			Help:      "Quote memo lookups by result.",
		}, []string{"result"}),
		batchRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "batch_rows",
			Help:      "Number of rows per batch quote run.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}

	for _, c := range []prometheus.Collector{m.quotes, m.stockExceeded, m.memoLookups, m.batchRows} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveQuote records one quote evaluation.
func (m *Metrics) ObserveQuote(outcome string, stockExceeded bool) {
	if m == nil {
		return
	}
	m.quotes.WithLabelValues(outcome).Inc()
	if stockExceeded {
		m.stockExceeded.Inc()
	}
}

// ObserveMemo records a memo lookup.
func (m *Metrics) ObserveMemo(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.memoLookups.WithLabelValues(MemoResultHit).Inc()
		return
	}
	m.memoLookups.WithLabelValues(MemoResultMiss).Inc()
}

// ObserveBatch records the size of a batch run.
func (m *Metrics) ObserveBatch(rows int) {
	if m == nil {
		return
	}
	m.batchRows.Observe(float64(rows))
}
