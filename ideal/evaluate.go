// SPDX-License-Identifier: MIT

package ideal

import (
	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/oavi/terms"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Evaluate returns |G(X)| as a len(X)×|G| matrix; column j belongs to
// Polynomials()[j]. An empty G yields an empty matrix.
//
// Evaluate is pure: it reads b only and repeated calls return identical
// output.
//
// Errors: ErrInvalidData for an empty or non-finite X, ErrDimensionMismatch
// when X does not have Vars() columns.
func (b *Basis) Evaluate(X mat.Matrix) (*mat.Dense, error) {
	cols, rows, err := b.evaluate(X)
	if err != nil {
		return nil, err
	}

	return absColumns(cols, rows), nil
}

// EvaluateSigned is Evaluate without the absolute value.
func (b *Basis) EvaluateSigned(X mat.Matrix) (*mat.Dense, error) {
	cols, rows, err := b.evaluate(X)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return &mat.Dense{}, nil
	}
	out := mat.NewDense(rows, len(cols), nil)
	for j, c := range cols {
		out.SetCol(j, c)
	}

	return out, nil
}

// evaluate replays every generator on X:
//
//	g(X) = eval(Leading) − Σ_j c_j·eval(O_j),   j < len(c)
//
// using the memoized multiplicative Evaluator, so each distinct monomial is
// formed once.
// Complexity: O(|G|·|O|·k) plus one Hadamard product per distinct monomial.
func (b *Basis) evaluate(X mat.Matrix) ([][]float64, int, error) {
	data, err := columnsOf(X)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ideal: Evaluate")
	}
	if len(data) != b.vars {
		return nil, 0, errors.Wrapf(ErrDimensionMismatch, "Evaluate: %d variables, basis has %d", len(data), b.vars)
	}
	ev, err := terms.NewEvaluator(data)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ideal: Evaluate")
	}
	rows := ev.Rows()

	oCols := make([][]float64, len(b.o))
	for j, t := range b.o {
		if oCols[j], err = ev.Eval(t); err != nil {
			return nil, 0, errors.Wrap(err, "ideal: Evaluate")
		}
	}

	out := make([][]float64, len(b.polys))
	for i, p := range b.polys {
		lead, err := ev.Eval(p.Leading)
		if err != nil {
			return nil, 0, errors.Wrap(err, "ideal: Evaluate")
		}
		g := append([]float64(nil), lead...)
		for j, c := range p.Coefficients {
			if c != 0 {
				floats.AddScaled(g, -c, oCols[j])
			}
		}
		out[i] = g
	}

	return out, rows, nil
}
