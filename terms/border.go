// SPDX-License-Identifier: MIT
// Package terms: border generation, deduplication and purging.
//
// Blueprint (ConstructBorder):
//
//	Stage 1 (Validate): shapes of terms, evaluations, data and purge basis.
//	Stage 2 (Generate): degree-1 identity border, or every product
//	                    Terms[j]·Degree1Terms[i] at raw index j·|deg1|+i.
//	Stage 3 (Dedup):    Unique over the raw border.
//	Stage 4 (Purge):    drop terms divisible by any purging term.
//	Stage 5 (Finalize): compose dedup and purge maps into NonPurging.

package terms

import (
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

// BorderInput collects the operands of ConstructBorder.
type BorderInput struct {
	// Terms are the O-terms admitted at the previous degree. Empty means the
	// first call: the border is the set of degree-1 monomials.
	Terms []Term

	// Evaluations holds one column per entry of Terms.
	Evaluations [][]float64

	// Data holds the n columns of the k×n data matrix.
	Data [][]float64

	// Degree1Terms / Degree1Evaluations are the multipliers of the border
	// growth rule; usually Identity(n) and Data.
	Degree1Terms       []Term
	Degree1Evaluations [][]float64

	// Purging holds the leading terms found so far. May be empty.
	Purging []Term
}

// Border is the outcome of one border construction.
type Border struct {
	// Raw / RawEvaluations: the generated border before dedup and purge.
	Raw            []Term
	RawEvaluations [][]float64

	// Terms / Evaluations: the sorted, deduplicated, purged border.
	Terms       []Term
	Evaluations [][]float64

	// NonPurging maps each entry of Terms to its position in Raw.
	NonPurging IndexMap

	// Purged counts the deduplicated terms removed by purging.
	Purged int
}

// Len returns the number of surviving border terms.
func (b *Border) Len() int { return len(b.Terms) }

// ConstructBorder builds the next-degree border from in.
//
// Contracts:
//   - len(Data) = n ≥ 1, every data column has the same length k ≥ 1.
//   - every term (Terms, Degree1Terms, Purging) has length n, non-negative.
//   - len(Terms) = len(Evaluations), len(Degree1Terms) = len(Degree1Evaluations),
//     every evaluation column has length k.
//
// Errors: ErrEmptyData, ErrDimensionMismatch, ErrNegativeExponent.
//
// Complexity: O(B·(n+k) + B log B · n + B·|P|·n) with B = |deg1|·|Terms|.
func ConstructBorder(in BorderInput) (*Border, error) {
	// Stage 1: validate.
	n, k, err := validateBorderInput(in)
	if err != nil {
		return nil, err
	}

	// Stage 2: generate the raw border.
	var (
		raw      []Term
		rawEvals [][]float64
	)
	if len(in.Terms) == 0 {
		raw = Identity(n)
		rawEvals = CloneColumns(in.Data)
	} else {
		size := len(in.Terms) * len(in.Degree1Terms)
		raw = make([]Term, 0, size)
		rawEvals = make([][]float64, 0, size)
		for j, t := range in.Terms {
			for i, d1 := range in.Degree1Terms {
				raw = append(raw, t.Add(d1))
				rawEvals = append(rawEvals, hadamard(in.Evaluations[j], in.Degree1Evaluations[i], k))
			}
		}
	}

	// Stage 3: dedup; kept indexes raw.
	uniq, uniqEvals, kept, err := Unique(raw, rawEvals)
	if err != nil {
		return nil, errors.Wrap(err, "ConstructBorder")
	}

	// Stage 4: purge; survivors indexes uniq.
	survivors := purge(uniq, in.Purging)

	// Stage 5: compose into indices of raw.
	nonPurging, err := kept.Then(survivors)
	if err != nil {
		return nil, errors.Wrap(err, "ConstructBorder")
	}

	return &Border{
		Raw:            raw,
		RawEvaluations: rawEvals,
		Terms:          gather(uniq, survivors),
		Evaluations:    gather(uniqEvals, survivors),
		NonPurging:     nonPurging,
		Purged:         len(uniq) - len(survivors),
	}, nil
}

// Purge returns the positions of ts not divisible by any purging term.
// A term t is purged iff some p in purging satisfies p.Divides(t).
func Purge(ts []Term, purging []Term) IndexMap { return purge(ts, purging) }

func purge(ts []Term, purging []Term) IndexMap {
	out := make(IndexMap, 0, len(ts))
	for i, t := range ts {
		if !dividedByAny(t, purging) {
			out = append(out, i)
		}
	}

	return out
}

func dividedByAny(t Term, purging []Term) bool {
	for _, p := range purging {
		if p.Divides(t) {
			return true
		}
	}

	return false
}

// hadamard returns the elementwise product a ⊙ b of length k.
func hadamard(a, b []float64, k int) []float64 {
	return floats.MulTo(make([]float64, k), a, b)
}

func validateBorderInput(in BorderInput) (n, k int, err error) {
	n = len(in.Data)
	if n == 0 || len(in.Data[0]) == 0 {
		return 0, 0, errors.Wrap(ErrEmptyData, "ConstructBorder")
	}
	k = len(in.Data[0])
	if err = validateColumns("data", in.Data, k); err != nil {
		return 0, 0, err
	}
	if err = validateSet("terms", in.Terms, in.Evaluations, n, k); err != nil {
		return 0, 0, err
	}
	if len(in.Terms) > 0 {
		if err = validateSet("degree-1 terms", in.Degree1Terms, in.Degree1Evaluations, n, k); err != nil {
			return 0, 0, err
		}
	}
	for _, p := range in.Purging {
		if err = p.Validate(n); err != nil {
			return 0, 0, errors.Wrap(err, "ConstructBorder: purging term")
		}
	}

	return n, k, nil
}

func validateSet(name string, ts []Term, evals [][]float64, n, k int) error {
	if len(ts) != len(evals) {
		return errors.Wrapf(ErrDimensionMismatch, "ConstructBorder: %d %s, %d evaluation columns", len(ts), name, len(evals))
	}
	for _, t := range ts {
		if err := t.Validate(n); err != nil {
			return errors.Wrapf(err, "ConstructBorder: %s", name)
		}
	}

	return validateColumns(name, evals, k)
}

func validateColumns(name string, cols [][]float64, k int) error {
	for j, c := range cols {
		if len(c) != k {
			return errors.Wrapf(ErrDimensionMismatch, "ConstructBorder: %s column %d has %d rows, want %d", name, j, len(c), k)
		}
	}

	return nil
}
