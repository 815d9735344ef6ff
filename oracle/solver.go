// SPDX-License-Identifier: MIT
// Package oracle: the solver signature shared by built-in and external
// conditional-gradient strategies.

package oracle

import "math"

// Objective evaluates the function being minimized.
type Objective func(x []float64) float64

// Gradient writes the gradient at x into dst (len(dst) == len(x)).
type Gradient func(x, dst []float64)

// Params is an opaque keyword bag passed through to solvers. Built-in
// solvers read ParamEpsilon and ParamMaxIters; external solvers may read
// anything they like.
type Params map[string]any

// Recognized parameter keys.
const (
	ParamEpsilon  = "epsilon"
	ParamMaxIters = "max_iters"
)

// Float returns params[key] as float64, or def when absent or not numeric.
func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	default:
		return def
	}
}

// Int returns params[key] as int, or def when absent or not numeric.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// Clone returns a shallow copy of p (never nil).
func (p Params) Clone() Params {
	out := make(Params, len(p)+2)
	for k, v := range p {
		out[k] = v
	}

	return out
}

// Info describes how a solver run ended.
type Info struct {
	Iterations int
	Gap        float64
	Converged  bool
}

// Solver minimizes f over region starting from x0 (x0 lies in region).
// It returns the final iterate; running out of iterations is reported via
// Info.Converged=false, not as an error.
type Solver func(f Objective, grad Gradient, region L1Ball, x0 []float64, params Params) ([]float64, Info, error)

// L1Ball is the feasible region {x ∈ ℝ^Dim : ‖x‖₁ ≤ Radius}.
type L1Ball struct {
	Dim    int
	Radius float64
}

// vertex is an extreme point Radius·Sign·e_Index of the L1 ball.
type vertex struct {
	index int
	sign  float64
}

// dot returns ⟨g, v⟩ for the vertex scaled by radius.
func (v vertex) dot(g []float64, radius float64) float64 {
	return v.sign * radius * g[v.index]
}

// key identifies a vertex uniquely among the 2·Dim extreme points.
func (v vertex) key() int {
	if v.sign < 0 {
		return 2*v.index + 1
	}

	return 2 * v.index
}

// Contains reports whether x lies in the ball (with a small slack).
func (b L1Ball) Contains(x []float64) bool { return l1Norm(x) <= b.Radius*(1+1e-12) }

// lmo is the linear minimization oracle: argmin_{v ∈ ball} ⟨g, v⟩.
// Ties resolve to the smallest index; a zero gradient yields +e_0.
func (b L1Ball) lmo(g []float64) vertex {
	best, bestAbs := 0, -1.0
	for i, gi := range g {
		if a := math.Abs(gi); a > bestAbs {
			best, bestAbs = i, a
		}
	}
	sign := 1.0
	if g[best] > 0 {
		sign = -1
	}

	return vertex{index: best, sign: sign}
}

func l1Norm(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += math.Abs(v)
	}

	return s
}
