// SPDX-License-Identifier: MIT
// Package oracle: vanilla Frank–Wolfe over the L1 ball.
//
// Blueprint:
//
//	Stage 1 (Prepare):  x ← x0, read epsilon / max_iters from params.
//	Stage 2 (Iterate):  g ← ∇f(x); v ← LMO(g); gap ← ⟨g, x − v⟩;
//	                    stop when gap ≤ ε; otherwise step along v − x
//	                    with the interpolating line search.
//	Stage 3 (Finalize): return x with iterations, gap and convergence flag.

package oracle

import (
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultTolerance is the Frank–Wolfe gap at which solvers stop.
	DefaultTolerance = 1e-3

	// DefaultMaxIters is the solver iteration budget.
	DefaultMaxIters = 10000
)

// FrankWolfe is the vanilla conditional-gradient Solver (KindCG).
// Complexity: O(iters · cost(f, grad)).
func FrankWolfe(f Objective, grad Gradient, region L1Ball, x0 []float64, params Params) ([]float64, Info, error) {
	eps := params.Float(ParamEpsilon, DefaultTolerance)
	maxIters := params.Int(ParamMaxIters, DefaultMaxIters)

	x := startPoint(x0, region.Dim)
	g := make([]float64, region.Dim)
	d := make([]float64, region.Dim)
	probe := make([]float64, region.Dim)

	var info Info
	for info.Iterations = 0; info.Iterations < maxIters; info.Iterations++ {
		grad(x, g)
		v := region.lmo(g)
		info.Gap = floats.Dot(g, x) - v.dot(g, region.Radius)
		if info.Gap <= eps {
			info.Converged = true
			break
		}

		// d = v − x
		for i := range d {
			d[i] = -x[i]
		}
		d[v.index] += v.sign * region.Radius

		gamma := lineSearch(f, x, d, -info.Gap, 1, probe)
		if gamma <= 0 {
			break
		}
		floats.AddScaled(x, gamma, d)
	}
	if !info.Converged {
		grad(x, g)
		info.Gap = floats.Dot(g, x) - region.lmo(g).dot(g, region.Radius)
		info.Converged = info.Gap <= eps
	}

	return x, info, nil
}

// lineSearch picks γ ∈ [0, gmax] minimizing φ(γ) = f(x + γd) through the
// quadratic interpolating φ(0), φ'(0) = slope and φ(gmax). The step is
// exact when f is quadratic, which holds for every least-squares objective
// built by this package. probe is scratch space of len(x).
func lineSearch(f Objective, x, d []float64, slope, gmax float64, probe []float64) float64 {
	if gmax <= 0 || slope >= 0 {
		return 0
	}
	f0 := f(x)
	copy(probe, x)
	floats.AddScaled(probe, gmax, d)
	curv := (f(probe) - f0 - slope*gmax) / (gmax * gmax)
	if curv <= 0 {
		return gmax
	}
	gamma := -slope / (2 * curv)
	if gamma > gmax {
		return gmax
	}

	return gamma
}

// startPoint copies x0, or returns the origin when x0 is nil.
func startPoint(x0 []float64, dim int) []float64 {
	x := make([]float64, dim)
	copy(x, x0)

	return x
}
