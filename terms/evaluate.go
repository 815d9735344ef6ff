// SPDX-License-Identifier: MIT

package terms

import "github.com/cockroachdb/errors"

// Evaluator evaluates monomials over a fixed data set by the same
// multiplicative rule used for border growth:
//
//	eval(1)          = ones
//	eval(t)          = eval(t − e_i) ⊙ X[:, i]   (i = first variable with t[i] > 0)
//
// Results are memoized by term, so evaluating a whole order ideal costs one
// Hadamard product per distinct term. Not safe for concurrent use.
type Evaluator struct {
	data [][]float64 // n columns of length k
	k    int
	memo map[string][]float64
}

// NewEvaluator returns an Evaluator over the given data columns.
// Errors: ErrEmptyData when there are no columns or no rows,
// ErrDimensionMismatch when columns differ in length.
func NewEvaluator(data [][]float64) (*Evaluator, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, errors.Wrap(ErrEmptyData, "NewEvaluator")
	}
	k := len(data[0])
	for j, c := range data {
		if len(c) != k {
			return nil, errors.Wrapf(ErrDimensionMismatch, "NewEvaluator: column %d has %d rows, want %d", j, len(c), k)
		}
	}

	return &Evaluator{data: data, k: k, memo: make(map[string][]float64)}, nil
}

// Rows returns the number of data points k.
func (e *Evaluator) Rows() int { return e.k }

// Eval returns the evaluation column of t. The returned slice is owned by
// the Evaluator's cache and must not be modified.
func (e *Evaluator) Eval(t Term) ([]float64, error) {
	if err := t.Validate(len(e.data)); err != nil {
		return nil, errors.Wrap(err, "Evaluator.Eval")
	}

	return e.eval(t), nil
}

func (e *Evaluator) eval(t Term) []float64 {
	key := t.Key()
	if col, ok := e.memo[key]; ok {
		return col
	}

	var col []float64
	i := firstPositive(t)
	if i < 0 {
		col = make([]float64, e.k)
		for r := range col {
			col[r] = 1
		}
	} else {
		parent := t.Clone()
		parent[i]--
		col = hadamard(e.eval(parent), e.data[i], e.k)
	}
	e.memo[key] = col

	return col
}

func firstPositive(t Term) int {
	for i, v := range t {
		if v > 0 {
			return i
		}
	}

	return -1
}
