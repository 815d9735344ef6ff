// SPDX-License-Identifier: MIT

package oracle

import (
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/mat"
)

// rankTolerance is the relative singular value floor used to decide the
// numerical rank of A.
const rankTolerance = 1e-10

// LeastSquares answers p without the L1 constraint: x is the minimum-norm
// minimizer of ‖Ax − b‖² and Loss is ‖Ax − b‖²/k. Tau, Lambda and Inverse
// are ignored.
//
// The fit loop switches to it once O holds as many columns as there are
// data points: the columns then span the data space (up to rank), so the
// L1 budget is the only thing that could stop a term from vanishing.
//
// Errors: ErrDimensionMismatch on inconsistent shapes, ErrFactorization
// when the SVD does not converge.
// Complexity: O(k·m·min(k, m)).
func LeastSquares(p *Problem) (Result, error) {
	if p.Samples <= 0 {
		return Result{}, errors.Wrapf(ErrDimensionMismatch, "samples=%d", p.Samples)
	}
	if err := p.validateData(); err != nil {
		return Result{}, err
	}
	m, k := len(p.Columns), p.Samples
	x := make([]float64, m)
	if m == 0 {
		return Result{X: x, Loss: p.Residual(x), Converged: true, ClosedForm: true}, nil
	}

	a := mat.NewDense(k, m, nil)
	for j, c := range p.Columns {
		a.SetCol(j, c)
	}
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return Result{}, errors.Wrapf(ErrFactorization, "LeastSquares: svd of %d×%d", k, m)
	}
	if rank := svd.Rank(rankTolerance); rank > 0 {
		var dst mat.VecDense
		svd.SolveVecTo(&dst, mat.NewVecDense(k, append([]float64(nil), p.Target...)), rank)
		for i := range x {
			x[i] = dst.AtVec(i)
		}
	}

	return Result{X: x, Loss: p.Residual(x), Converged: true, ClosedForm: true}, nil
}
