// Package metrics holds the Prometheus collectors for settlement computations.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for settlement computations.
const (
	OutcomeOK         = "ok"
	OutcomeNotFound   = "not_found"
	OutcomeUnbalanced = "unbalanced"
	OutcomeError      = "error"
)

// Settlement groups the collectors observed by the settlement service.
type Settlement struct {
	Computations *prometheus.CounterVec
	Transfers    prometheus.Histogram
	Duration     prometheus.Histogram
}

// NewSettlement registers and returns settlement collectors. A nil registerer
// means the default one; collectors already registered are reused.
func NewSettlement(namespace string, reg prometheus.Registerer) *Settlement {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Settlement{
		Computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_computations_total",
			Help:      "Number of group settlement computations by outcome.",
		}, []string{"outcome"}),
		Transfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_transfers",
			Help:      "Number of transfers suggested per settled group.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_duration_ms",
			Help:      "Time to load and settle one group in milliseconds.",
			Buckets:   []float64{1, 2.5, 5, 10, 25, 50, 100, 250},
		}),
	}
	m.Computations = register(reg, m.Computations)
	m.Transfers = register(reg, m.Transfers)
	m.Duration = register(reg, m.Duration)
	return m
}

// Observe records one computation.
func (m *Settlement) Observe(outcome string, transfers int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Computations.WithLabelValues(outcome).Inc()
	m.Duration.Observe(float64(elapsed) / float64(time.Millisecond))
	if outcome == OutcomeOK {
		m.Transfers.Observe(float64(transfers))
	}
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register collector: %w", err))
	}
	return c
}
