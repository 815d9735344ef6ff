// SPDX-License-Identifier: MIT
// Package ideal: functional configuration of the Fitter.
//
// Defaults are the single source of truth for zero-value behavior. WithX
// constructors panic on nonsensical values (programmer error); combinations
// that are only wrong together (inverse boosting with λ > 0) are reported by
// Fit as errors.

package ideal

import (
	"math"

	"github.com/katalvlaran/oavi/gram"
	"github.com/katalvlaran/oavi/oracle"
	"go.uber.org/zap"
)

// ---------- Defaults ----------

const (
	// DefaultMaxDegree bounds the number of border expansions.
	DefaultMaxDegree = 10

	// DefaultPsi is the vanishing threshold: loss ≤ ψ ⇒ vanishing.
	DefaultPsi = 0.1

	// DefaultEpsilon is the oracle tolerance (Frank–Wolfe gap).
	DefaultEpsilon = 0.001

	// DefaultLambda is the ridge weight of the oracle objective.
	DefaultLambda = 0.0

	// DefaultMaxIters is the oracle iteration budget per term.
	DefaultMaxIters = 10000

	// DefaultInverse keeps no inverse Gram matrix.
	DefaultInverse = gram.InverseNone

	// DefaultConstantTerm leaves the constant monomial out of O.
	DefaultConstantTerm = false
)

// DefaultTau derives the L1 radius from ψ: τ = (3/2)^⌈−log ψ / log 4⌉.
// ψ = 0.1 gives τ = 2.25.
func DefaultTau(psi float64) float64 {
	return math.Pow(1.5, math.Ceil(-math.Log(psi)/math.Log(4)))
}

// ---------- Panic messages ----------

const (
	panicMaxDegreeInvalid = "ideal: WithMaxDegree: degree must be ≥ 1"
	panicPsiInvalid       = "ideal: WithPsi: psi must be finite and > 0"
	panicEpsilonInvalid   = "ideal: WithEpsilon: epsilon must be finite and > 0"
	panicTauInvalid       = "ideal: WithTau: tau must be finite and > 0"
	panicLambdaInvalid    = "ideal: WithLambda: lambda must be finite and ≥ 0"
	panicMaxItersInvalid  = "ideal: WithMaxIters: budget must be ≥ 1"
	panicWeakCapInvalid   = "ideal: WithWeakCap: cap must be ≥ 1"
	panicInverseInvalid   = "ideal: WithInverseBoost: unknown mode"
)

// Option configures a Fitter.
type Option func(*options)

type options struct {
	maxDegree    int
	psi          float64
	epsilon      float64
	tau          float64 // 0 ⇒ DefaultTau(psi)
	lambda       float64
	maxIters     int
	oracle       oracle.Choice
	inverse      gram.InverseMode
	weakCap      int
	constantTerm bool
	logger       *zap.Logger
	observer     Observer
}

func defaultOptions() options {
	return options{
		maxDegree:    DefaultMaxDegree,
		psi:          DefaultPsi,
		epsilon:      DefaultEpsilon,
		lambda:       DefaultLambda,
		maxIters:     DefaultMaxIters,
		oracle:       oracle.Builtin(oracle.KindBPCG),
		inverse:      DefaultInverse,
		weakCap:      gram.DefaultWeakCap,
		constantTerm: DefaultConstantTerm,
		logger:       zap.NewNop(),
		observer:     NopObserver{},
	}
}

// radius returns the effective L1 radius.
func (o *options) radius() float64 {
	if o.tau > 0 {
		return o.tau
	}

	return DefaultTau(o.psi)
}

func positiveFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0 }

// ---------- Constructors ----------

// WithMaxDegree bounds the number of degrees processed.
func WithMaxDegree(d int) Option {
	if d < 1 {
		panic(panicMaxDegreeInvalid)
	}

	return func(o *options) { o.maxDegree = d }
}

// WithPsi sets the vanishing threshold ψ.
func WithPsi(psi float64) Option {
	if !positiveFinite(psi) {
		panic(panicPsiInvalid)
	}

	return func(o *options) { o.psi = psi }
}

// WithEpsilon sets the oracle tolerance.
func WithEpsilon(eps float64) Option {
	if !positiveFinite(eps) {
		panic(panicEpsilonInvalid)
	}

	return func(o *options) { o.epsilon = eps }
}

// WithTau fixes the L1 radius τ instead of deriving it from ψ.
func WithTau(tau float64) Option {
	if !positiveFinite(tau) {
		panic(panicTauInvalid)
	}

	return func(o *options) { o.tau = tau }
}

// WithLambda sets the ridge weight λ.
func WithLambda(lambda float64) Option {
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) || lambda < 0 {
		panic(panicLambdaInvalid)
	}

	return func(o *options) { o.lambda = lambda }
}

// WithMaxIters sets the oracle iteration budget per term.
func WithMaxIters(n int) Option {
	if n < 1 {
		panic(panicMaxItersInvalid)
	}

	return func(o *options) { o.maxIters = n }
}

// WithOracle selects the oracle. Resolution errors (unknown kind, external
// oracle without a solver) surface from Fit.
func WithOracle(c oracle.Choice) Option {
	return func(o *options) { o.oracle = c }
}

// WithInverseBoost maintains (AᵀA)⁻¹ under the given policy so that the
// oracle can try the closed-form solution first. Requires λ = 0.
func WithInverseBoost(m gram.InverseMode) Option {
	if m < gram.InverseNone || m > gram.InverseFull {
		panic(panicInverseInvalid)
	}

	return func(o *options) { o.inverse = m }
}

// WithWeakCap sets the largest Gram order kept under gram.InverseWeak.
func WithWeakCap(n int) Option {
	if n < 1 {
		panic(panicWeakCapInvalid)
	}

	return func(o *options) { o.weakCap = n }
}

// WithConstantTerm seeds O with the constant monomial 1.
func WithConstantTerm() Option {
	return func(o *options) { o.constantTerm = true }
}

// WithLogger routes fit diagnostics to l. nil restores the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

// WithObserver reports classification events to obs. nil disables reporting.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs == nil {
			obs = NopObserver{}
		}
		o.observer = obs
	}
}
