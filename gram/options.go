// SPDX-License-Identifier: MIT
// Package gram: inverse policy and functional options.
//
// Defaults are the single source of truth for zero-value behavior; WithX
// constructors panic on nonsensical values (programmer error), never on
// data-dependent conditions.

package gram

import (
	"math"
	"strings"

	"github.com/cockroachdb/errors"
)

// InverseMode selects whether and how long the inverse Gram matrix is kept.
type InverseMode int

const (
	// InverseNone never maintains G⁻¹.
	InverseNone InverseMode = iota

	// InverseWeak maintains G⁻¹ while the Gram order stays ≤ the weak cap
	// and every update is well conditioned.
	InverseWeak

	// InverseFull maintains G⁻¹ until an update is ill conditioned.
	InverseFull
)

// String returns the configuration name of m.
func (m InverseMode) String() string {
	switch m {
	case InverseNone:
		return "none"
	case InverseWeak:
		return "weak"
	case InverseFull:
		return "full"
	default:
		return "unknown"
	}
}

// ParseInverseMode maps "none", "weak" or "full" (case-insensitive) to a mode.
func ParseInverseMode(s string) (InverseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return InverseNone, nil
	case "weak":
		return InverseWeak, nil
	case "full":
		return InverseFull, nil
	default:
		return InverseNone, errors.WithHint(
			errors.Wrapf(ErrUnknownMode, "%q", s),
			"use one of: none, weak, full")
	}
}

const (
	// DefaultMode keeps no inverse.
	DefaultMode = InverseNone

	// DefaultWeakCap is the largest Gram order InverseWeak maintains G⁻¹ for.
	DefaultWeakCap = 100

	// DefaultThreshold is the relative Schur-complement floor: an update
	// with d ≤ threshold·max(s, 1) is treated as ill conditioned.
	DefaultThreshold = 1e-10
)

const (
	panicWeakCapInvalid   = "gram: WithWeakCap: cap must be > 0"
	panicThresholdInvalid = "gram: WithThreshold: threshold must be finite and ≥ 0"
	panicModeInvalid      = "gram: WithInverse: unknown mode"
)

// Option configures a Stream.
type Option func(*options)

type options struct {
	mode      InverseMode
	weakCap   int
	threshold float64
}

func defaultOptions() options {
	return options{mode: DefaultMode, weakCap: DefaultWeakCap, threshold: DefaultThreshold}
}

// WithInverse selects the inverse policy.
func WithInverse(m InverseMode) Option {
	if m < InverseNone || m > InverseFull {
		panic(panicModeInvalid)
	}

	return func(o *options) { o.mode = m }
}

// WithWeakCap sets the largest Gram order kept under InverseWeak.
func WithWeakCap(n int) Option {
	if n <= 0 {
		panic(panicWeakCapInvalid)
	}

	return func(o *options) { o.weakCap = n }
}

// WithThreshold sets the relative stability floor of the Schur complement.
func WithThreshold(t float64) Option {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		panic(panicThresholdInvalid)
	}

	return func(o *options) { o.threshold = t }
}
