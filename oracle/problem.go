// SPDX-License-Identifier: MIT

package oracle

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

// Problem is one classification query: is Target (nearly) in the span of
// Columns under an L1 budget?
//
// Gram, Cross and TargetNorm are precomputed by the caller from its
// streaming accumulator; Columns and Target themselves are only read by
// oracles that factorize the data (ABM).
type Problem struct {
	Columns    [][]float64 // A as m columns of length Samples
	Target     []float64   // b, length Samples
	Gram       [][]float64 // AᵀA, m rows of length m
	Cross      []float64   // Aᵀb, length m
	TargetNorm float64     // bᵀb
	Inverse    [][]float64 // (AᵀA)⁻¹ or nil; requires Lambda == 0

	Samples   int     // k, the number of data points
	Tau       float64 // L1 radius, > 0
	Lambda    float64 // ridge weight, ≥ 0
	Tolerance float64 // solver tolerance (Frank–Wolfe gap)
	MaxIters  int     // solver iteration budget
}

// Result is an oracle's answer.
type Result struct {
	X          []float64 // coefficient vector, length m
	Loss       float64   // ‖AX − b‖²/k + λ‖X‖² (ABM, least squares: ‖AX − b‖²/k)
	Iterations int       // solver iterations spent
	Gap        float64   // final Frank–Wolfe gap (0 for closed forms)
	Converged  bool      // tolerance reached within the budget
	ClosedForm bool      // answered without iterating
}

// Dim returns m, the number of columns of A.
func (p *Problem) Dim() int { return len(p.Cross) }

// Loss evaluates f(x) = (xᵀGx − 2xᵀAᵀb + bᵀb)/k + λ‖x‖², clamped at 0.
// Complexity: O(m²).
func (p *Problem) Loss(x []float64) float64 {
	var quad, lin, ridge float64
	for i := range x {
		if x[i] == 0 {
			continue
		}
		quad += x[i] * floats.Dot(p.Gram[i], x)
		lin += x[i] * p.Cross[i]
		ridge += x[i] * x[i]
	}
	v := (quad-2*lin+p.TargetNorm)/float64(p.Samples) + p.Lambda*ridge

	return math.Max(v, 0)
}

// Residual returns ‖b − Ax‖²/k computed from the raw columns, the mean
// squared value of the generator b − Ax on the data. It ignores λ.
// Complexity: O(k·m).
func (p *Problem) Residual(x []float64) float64 {
	r := append([]float64(nil), p.Target...)
	for j, c := range p.Columns {
		if x[j] != 0 {
			floats.AddScaled(r, -x[j], c)
		}
	}

	return floats.Dot(r, r) / float64(p.Samples)
}

// Gradient writes ∇f(x) = (2Gx − 2Aᵀb)/k + 2λx into dst.
// Complexity: O(m²).
func (p *Problem) Gradient(x, dst []float64) {
	scale := 2 / float64(p.Samples)
	for i := range dst {
		dst[i] = scale*(floats.Dot(p.Gram[i], x)-p.Cross[i]) + 2*p.Lambda*x[i]
	}
}

// validate enforces the oracle contract before any work is done.
func (p *Problem) validate() error {
	m := p.Dim()
	if p.Samples <= 0 {
		return errors.Wrapf(ErrDimensionMismatch, "samples=%d", p.Samples)
	}
	if math.IsNaN(p.Tau) || math.IsInf(p.Tau, 0) || p.Tau <= 0 {
		return errors.Wrapf(ErrInvalidRadius, "tau=%v", p.Tau)
	}
	if math.IsNaN(p.Lambda) || math.IsInf(p.Lambda, 0) || p.Lambda < 0 {
		return errors.Wrapf(ErrInvalidLambda, "lambda=%v", p.Lambda)
	}
	if p.Inverse != nil && p.Lambda != 0 {
		return errors.WithHint(errors.Wrapf(ErrRegularizedInverse, "lambda=%v", p.Lambda),
			"disable inverse hessian boosting or set lambda to 0")
	}
	if err := squareRows("gram", p.Gram, m); err != nil {
		return err
	}
	if p.Inverse != nil {
		if err := squareRows("inverse", p.Inverse, m); err != nil {
			return err
		}
	}

	return nil
}

// validateData checks the raw data used by factorizing oracles.
func (p *Problem) validateData() error {
	m := p.Dim()
	if len(p.Columns) != m {
		return errors.Wrapf(ErrDimensionMismatch, "%d columns for %d gram rows", len(p.Columns), m)
	}
	if len(p.Target) != p.Samples {
		return errors.Wrapf(ErrDimensionMismatch, "target has %d rows, want %d", len(p.Target), p.Samples)
	}
	for j, c := range p.Columns {
		if len(c) != p.Samples {
			return errors.Wrapf(ErrDimensionMismatch, "column %d has %d rows, want %d", j, len(c), p.Samples)
		}
	}

	return nil
}

func squareRows(name string, rows [][]float64, m int) error {
	if len(rows) != m {
		return errors.Wrapf(ErrDimensionMismatch, "%s has %d rows, want %d", name, len(rows), m)
	}
	for i, r := range rows {
		if len(r) != m {
			return errors.Wrapf(ErrDimensionMismatch, "%s row %d has %d entries, want %d", name, i, len(r), m)
		}
	}

	return nil
}
