// SPDX-License-Identifier: MIT

package metrics

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels of oavi_terms_classified_total.
const (
	OutcomeVanishing = "vanishing"
	OutcomeOrder     = "order"
)

// Collector records fit events. The zero value is not usable; call New.
type Collector struct {
	Terms        *prometheus.CounterVec
	Iterations   prometheus.Histogram
	Unconverged  prometheus.Counter
	Loss         prometheus.Histogram
	InverseDrops *prometheus.CounterVec
	Degrees      prometheus.Counter
	Purged       prometheus.Counter
}

// New builds a Collector and registers every metric on reg. A nil reg
// leaves the metrics unregistered.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		Terms: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oavi_terms_classified_total",
				Help: "Border terms classified, by degree and outcome",
			},
			[]string{"degree", "outcome"},
		),
		Iterations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "oavi_oracle_iterations",
				Help:    "Solver iterations per oracle call",
				Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
			},
		),
		Unconverged: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "oavi_oracle_unconverged_total",
				Help: "Oracle calls that ended before reaching the tolerance",
			},
		),
		Loss: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "oavi_oracle_loss",
				Help:    "Loss reported by the oracle per classified term",
				Buckets: prometheus.ExponentialBuckets(1e-8, 10, 10),
			},
		),
		InverseDrops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oavi_inverse_dropped_total",
				Help: "Times inverse Gram maintenance stopped, by reason",
			},
			[]string{"reason"},
		),
		Degrees: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "oavi_degrees_committed_total",
				Help: "Degrees processed by the fit loop",
			},
		),
		Purged: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "oavi_border_purged_total",
				Help: "Border terms removed because a leading term divides them",
			},
		),
	}
	if reg == nil {
		return c, nil
	}
	for _, m := range []prometheus.Collector{
		c.Terms,
		c.Iterations,
		c.Unconverged,
		c.Loss,
		c.InverseDrops,
		c.Degrees,
		c.Purged,
	} {
		if err := reg.Register(m); err != nil {
			return nil, errors.Wrap(err, "metrics: register")
		}
	}

	return c, nil
}

// TermClassified implements ideal.Observer.
func (c *Collector) TermClassified(degree int, vanishing bool, loss float64, iterations int, converged bool) {
	outcome := OutcomeOrder
	if vanishing {
		outcome = OutcomeVanishing
	}
	c.Terms.WithLabelValues(strconv.Itoa(degree), outcome).Inc()
	c.Iterations.Observe(float64(iterations))
	c.Loss.Observe(loss)
	if !converged {
		c.Unconverged.Inc()
	}
}

// DegreeCommitted implements ideal.Observer.
func (c *Collector) DegreeCommitted(_, _, _, purged int) {
	c.Degrees.Inc()
	c.Purged.Add(float64(purged))
}

// InverseDropped implements ideal.Observer.
func (c *Collector) InverseDropped(_, _ int, reason string) {
	c.InverseDrops.WithLabelValues(reason).Inc()
}
