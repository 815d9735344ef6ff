// SPDX-License-Identifier: MIT
// Package oracle: the adapter shared by every conditional-gradient oracle.
//
// Blueprint:
//
//	Stage 1 (Validate):  shapes, τ > 0, λ ≥ 0, inverse only with λ = 0.
//	Stage 2 (Trivial):   m = 0 ⇒ loss = bᵀb/k, no solver call.
//	Stage 3 (Boost):     with G⁻¹, x = G⁻¹Aᵀb; accept when ‖x‖₁ ≤ τ,
//	                     otherwise warm-start from its L1 projection.
//	Stage 4 (Solve):     run the Solver on f, ∇f from the Gram quantities.
//	Stage 5 (Report):    Result with loss f(x), iterations, gap, convergence.

package oracle

import (
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

type conditionalGradient struct {
	solve  Solver
	params Params
}

// Solve implements Oracle.
func (o conditionalGradient) Solve(p *Problem) (Result, error) {
	if err := p.validate(); err != nil {
		return Result{}, err
	}
	m := p.Dim()
	if m == 0 {
		return Result{X: []float64{}, Loss: p.TargetNorm / float64(p.Samples), Converged: true, ClosedForm: true}, nil
	}

	var x0 []float64
	if p.Inverse != nil {
		x := make([]float64, m)
		for i := range x {
			x[i] = floats.Dot(p.Inverse[i], p.Cross)
		}
		if l1Norm(x) <= p.Tau {
			return Result{X: x, Loss: p.Loss(x), Converged: true, ClosedForm: true}, nil
		}
		proj, err := L1Projection(x, p.Tau)
		if err != nil {
			return Result{}, err
		}
		x0 = proj
	}

	params := o.params.Clone()
	if _, ok := params[ParamEpsilon]; !ok {
		params[ParamEpsilon] = p.Tolerance
	}
	if _, ok := params[ParamMaxIters]; !ok {
		params[ParamMaxIters] = p.MaxIters
	}

	x, info, err := o.solve(p.Loss, p.Gradient, L1Ball{Dim: m, Radius: p.Tau}, x0, params)
	if err != nil {
		return Result{}, errors.Wrap(err, "oracle: solver")
	}
	if len(x) != m {
		return Result{}, errors.Wrapf(ErrDimensionMismatch, "solver returned %d coefficients, want %d", len(x), m)
	}

	return Result{
		X:          x,
		Loss:       p.Loss(x),
		Iterations: info.Iterations,
		Gap:        info.Gap,
		Converged:  info.Converged,
	}, nil
}
