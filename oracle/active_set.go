// SPDX-License-Identifier: MIT
// Package oracle: active-set conditional gradients (pairwise and blended
// pairwise) over the L1 ball.
//
// The iterate is kept as a convex combination of ball vertices. The origin
// is ½(+τe₀) + ½(−τe₀), so every point of the ball, warm starts included,
// has a decomposition (see newActiveSet).

package oracle

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// dropWeight is the weight below which an atom leaves the active set.
const dropWeight = 1e-14

type atom struct {
	v vertex
	w float64
}

// activeSet is an ordered convex decomposition x = Σ wᵢ·τ·vᵢ.
// Order is insertion order, so ties resolve deterministically.
type activeSet struct {
	radius float64
	atoms  []atom
	pos    map[int]int // vertex key -> index in atoms
}

// newActiveSet decomposes x0 (‖x0‖₁ ≤ τ) into vertex weights.
func newActiveSet(x0 []float64, radius float64) *activeSet {
	s := &activeSet{radius: radius, pos: make(map[int]int)}
	total := 0.0
	for i, xi := range x0 {
		if xi == 0 {
			continue
		}
		sign := 1.0
		if xi < 0 {
			sign = -1
		}
		w := math.Abs(xi) / radius
		s.add(vertex{index: i, sign: sign}, w)
		total += w
	}
	if total > 1 {
		for i := range s.atoms {
			s.atoms[i].w /= total
		}
		total = 1
	}
	if rest := 1 - total; rest > dropWeight {
		s.add(vertex{index: 0, sign: 1}, rest/2)
		s.add(vertex{index: 0, sign: -1}, rest/2)
	}

	return s
}

func (s *activeSet) add(v vertex, w float64) {
	if i, ok := s.pos[v.key()]; ok {
		s.atoms[i].w += w
		return
	}
	s.pos[v.key()] = len(s.atoms)
	s.atoms = append(s.atoms, atom{v: v, w: w})
}

// scale multiplies every weight by f (Frank–Wolfe steps shrink old mass).
func (s *activeSet) scale(f float64) {
	for i := range s.atoms {
		s.atoms[i].w *= f
	}
}

// prune removes atoms whose weight fell below dropWeight.
func (s *activeSet) prune() {
	kept := s.atoms[:0]
	for _, a := range s.atoms {
		if a.w > dropWeight {
			kept = append(kept, a)
		}
	}
	s.atoms = kept
	s.pos = make(map[int]int, len(kept))
	for i, a := range kept {
		s.pos[a.v.key()] = i
	}
}

// point writes Σ wᵢ·τ·vᵢ into x.
func (s *activeSet) point(x []float64) {
	for i := range x {
		x[i] = 0
	}
	for _, a := range s.atoms {
		x[a.v.index] += a.w * a.v.sign * s.radius
	}
}

// extremes returns the atom indices maximizing (away) and minimizing
// (local Frank–Wolfe) ⟨g, v⟩ over the active set.
func (s *activeSet) extremes(g []float64) (away, local int) {
	hi, lo := math.Inf(-1), math.Inf(1)
	for i, a := range s.atoms {
		d := a.v.dot(g, s.radius)
		if d > hi {
			hi, away = d, i
		}
		if d < lo {
			lo, local = d, i
		}
	}

	return away, local
}

// pairwiseDirection writes d = τ(to − from) into d (d is zeroed first).
func pairwiseDirection(d []float64, to, from vertex, radius float64) {
	for i := range d {
		d[i] = 0
	}
	d[to.index] += to.sign * radius
	d[from.index] -= from.sign * radius
}

// PairwiseFrankWolfe is the pairwise conditional-gradient Solver (KindPCG):
// each step moves mass from the worst active vertex to the Frank–Wolfe vertex.
func PairwiseFrankWolfe(f Objective, grad Gradient, region L1Ball, x0 []float64, params Params) ([]float64, Info, error) {
	return activeSetSolve(f, grad, region, x0, params, false)
}

// BlendedPairwise is the blended pairwise conditional-gradient Solver
// (KindBPCG): it takes local pairwise steps inside the active set while
// their gap dominates the Frank–Wolfe gap, and global Frank–Wolfe steps
// otherwise.
func BlendedPairwise(f Objective, grad Gradient, region L1Ball, x0 []float64, params Params) ([]float64, Info, error) {
	return activeSetSolve(f, grad, region, x0, params, true)
}

func activeSetSolve(f Objective, grad Gradient, region L1Ball, x0 []float64, params Params, blended bool) ([]float64, Info, error) {
	eps := params.Float(ParamEpsilon, DefaultTolerance)
	maxIters := params.Int(ParamMaxIters, DefaultMaxIters)
	tau := region.Radius

	set := newActiveSet(startPoint(x0, region.Dim), tau)
	x := make([]float64, region.Dim)
	set.point(x)
	g := make([]float64, region.Dim)
	d := make([]float64, region.Dim)
	probe := make([]float64, region.Dim)

	var info Info
	for info.Iterations = 0; info.Iterations < maxIters; info.Iterations++ {
		grad(x, g)
		v := region.lmo(g)
		info.Gap = floats.Dot(g, x) - v.dot(g, tau)
		if info.Gap <= eps {
			info.Converged = true
			break
		}

		away, local := set.extremes(g)
		a := set.atoms[away]
		awayDot := a.v.dot(g, tau)

		var gamma float64
		switch {
		case blended && awayDot-set.atoms[local].v.dot(g, tau) >= info.Gap:
			// Local pairwise step: local vertex gains what the away vertex loses.
			s := set.atoms[local]
			pairwiseDirection(d, s.v, a.v, tau)
			gamma = lineSearch(f, x, d, s.v.dot(g, tau)-awayDot, a.w, probe)
			set.atoms[away].w -= gamma
			set.atoms[local].w += gamma
		case blended:
			// Frank–Wolfe step toward v.
			for i := range d {
				d[i] = -x[i]
			}
			d[v.index] += v.sign * tau
			gamma = lineSearch(f, x, d, -info.Gap, 1, probe)
			set.scale(1 - gamma)
			set.add(v, gamma)
		default:
			// Pairwise step: v gains what the away vertex loses.
			pairwiseDirection(d, v, a.v, tau)
			gamma = lineSearch(f, x, d, v.dot(g, tau)-awayDot, a.w, probe)
			set.atoms[away].w -= gamma
			set.add(v, gamma)
		}
		if gamma <= 0 {
			break
		}
		set.prune()
		set.point(x)
	}
	if !info.Converged {
		grad(x, g)
		info.Gap = floats.Dot(g, x) - region.lmo(g).dot(g, tau)
		info.Converged = info.Gap <= eps
	}

	return x, info, nil
}
