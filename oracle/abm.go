// SPDX-License-Identifier: MIT
// Package oracle: the ABM oracle.
//
// ABM asks whether [A | b] has a (near) null vector with a non-zero last
// entry. The right singular vector v of the smallest singular value gives
// coefficients x = −v[:m]/v[m]; when [A | b] is wide, v is the projection
// of e_m onto the whole null space, the null vector with the largest last
// entry. No L1 constraint is applied. The reported loss is the residual
// ‖Ax − b‖²/k of the rescaled generator, i.e. σ²/(k·v[m]²).

package oracle

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// abmPivotFloor is the smallest |v[m]| that still yields finite coefficients.
const abmPivotFloor = 1e-6

type abm struct{}

// Solve factorizes [A | b] and reports the residual of the rescaled null
// direction.
// Complexity: O(k·(m+1)² + (m+1)³).
func (abm) Solve(p *Problem) (Result, error) {
	if err := p.validate(); err != nil {
		return Result{}, err
	}
	if err := p.validateData(); err != nil {
		return Result{}, err
	}
	m, k := p.Dim(), p.Samples

	if m == 0 {
		return Result{X: []float64{}, Loss: p.TargetNorm / float64(k), Converged: true, ClosedForm: true}, nil
	}

	ab := mat.NewDense(k, m+1, nil)
	for j, c := range p.Columns {
		ab.SetCol(j, c)
	}
	ab.SetCol(m, p.Target)

	var svd mat.SVD
	if ok := svd.Factorize(ab, mat.SVDFull); !ok {
		return Result{}, errors.Wrapf(ErrFactorization, "ABM: svd of %d×%d", k, m+1)
	}
	var v mat.Dense
	svd.VTo(&v)

	// Columns first..m of V span the directions of smallest singular value:
	// the last one when [A | b] is tall, the whole null space when it is wide.
	first := m
	if m+1 > k {
		first = k
	}
	w := make([]float64, m+1)
	for j := first; j <= m; j++ {
		c := v.At(m, j)
		for i := range w {
			w[i] += c * v.At(i, j)
		}
	}

	x := make([]float64, m)
	// w[m] = Σ v[m]² over the chosen columns.
	pivot := w[m]
	if math.Sqrt(math.Abs(pivot)) < abmPivotFloor {
		// b is (numerically) independent of the null direction: no
		// representation exists, fall back to the plain residual.
		return Result{X: x, Loss: p.Residual(x), Converged: true, ClosedForm: true}, nil
	}
	for i := range x {
		x[i] = -w[i] / pivot
	}

	return Result{X: x, Loss: p.Residual(x), Converged: true, ClosedForm: true}, nil
}
