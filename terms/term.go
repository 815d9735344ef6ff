// SPDX-License-Identifier: MIT

package terms

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Term is a monomial exponent vector: Term{2, 0, 1} is x0²·x2.
// The length of a Term equals the dimensionality n of the data it is
// evaluated over; all entries are non-negative.
type Term []int

// Identity returns the n degree-1 monomials x0 … x_{n-1} in term order.
// Complexity: O(n²).
func Identity(n int) []Term {
	out := make([]Term, n)
	for i := 0; i < n; i++ {
		t := make(Term, n)
		t[i] = 1
		out[i] = t
	}

	return out
}

// Zero returns the constant monomial 1 over n variables.
func Zero(n int) Term { return make(Term, n) }

// Degree returns the total degree Σ t[i].
// Complexity: O(n).
func (t Term) Degree() int {
	var d int
	for _, e := range t {
		d += e
	}

	return d
}

// Clone returns an independent copy of t.
func (t Term) Clone() Term {
	out := make(Term, len(t))
	copy(out, t)

	return out
}

// Add returns the exponent-wise sum t + u, i.e. the monomial product t·u.
// Both terms must have the same length; the caller validates shapes.
func (t Term) Add(u Term) Term {
	out := make(Term, len(t))
	for i := range t {
		out[i] = t[i] + u[i]
	}

	return out
}

// Divides reports whether t divides u, i.e. t[i] ≤ u[i] for every i
// (u − t is entrywise non-negative).
// Complexity: O(n).
func (t Term) Divides(u Term) bool {
	if len(t) != len(u) {
		return false
	}
	for i := range t {
		if t[i] > u[i] {
			return false
		}
	}

	return true
}

// Equal reports whether t and u are the same exponent vector.
func (t Term) Equal(u Term) bool {
	if len(t) != len(u) {
		return false
	}
	for i := range t {
		if t[i] != u[i] {
			return false
		}
	}

	return true
}

// Key returns a compact map key for t ("2,0,1").
func (t Term) Key() string {
	var sb strings.Builder
	for i, e := range t {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(e))
	}

	return sb.String()
}

// String renders t as a monomial, e.g. "x0^2*x2"; the constant term is "1".
func (t Term) String() string {
	var parts []string
	for i, e := range t {
		switch {
		case e == 0:
			continue
		case e == 1:
			parts = append(parts, "x"+strconv.Itoa(i))
		default:
			parts = append(parts, "x"+strconv.Itoa(i)+"^"+strconv.Itoa(e))
		}
	}
	if len(parts) == 0 {
		return "1"
	}

	return strings.Join(parts, "*")
}

// Validate checks that t has length n and no negative exponent.
func (t Term) Validate(n int) error {
	if len(t) != n {
		return errors.Wrapf(ErrDimensionMismatch, "term %v has %d exponents, want %d", []int(t), len(t), n)
	}
	for i, e := range t {
		if e < 0 {
			return errors.Wrapf(ErrNegativeExponent, "term %v at variable %d", []int(t), i)
		}
	}

	return nil
}

// CloneAll deep-copies a term slice.
func CloneAll(ts []Term) []Term {
	out := make([]Term, len(ts))
	for i, t := range ts {
		out[i] = t.Clone()
	}

	return out
}

// CloneColumns deep-copies an evaluation matrix stored as columns.
func CloneColumns(cols [][]float64) [][]float64 {
	out := make([][]float64, len(cols))
	for i, c := range cols {
		out[i] = append([]float64(nil), c...)
	}

	return out
}
