// SPDX-License-Identifier: MIT
// Package terms: the degree-lexicographic term order.
//
// Determinism & Policy:
//   - Primary key: total degree (smaller first).
//   - Tie-break: scan exponents from the last variable backward; the term
//     with the larger exponent at the first differing position sorts later.
//   - Sorting is stable, so equal terms keep their input order and Unique
//     always retains the first occurrence.

package terms

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// Compare orders a and b: −1 if a sorts first, +1 if b sorts first, 0 if equal.
// Terms of different length compare by length first (never mixed in practice).
// Complexity: O(n).
func Compare(a, b Term) int {
	if len(a) != len(b) {
		return cmpInt(len(a), len(b))
	}
	if c := cmpInt(a.Degree(), b.Degree()); c != 0 {
		return c
	}
	for i := len(a) - 1; i >= 0; i-- {
		if c := cmpInt(a[i], b[i]); c != 0 {
			return c
		}
	}

	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Sort orders ts under Compare and applies the same permutation to aux.
// aux may be nil; otherwise it must have one column per term.
//
// Returns the sorted terms, the permuted aux (nil when aux is nil) and the
// permutation perm with sorted[i] = ts[perm[i]]. Inputs are not mutated;
// the outputs share element backing arrays with the inputs.
//
// Complexity: O(B log B · n) for B terms.
func Sort(ts []Term, aux [][]float64) ([]Term, [][]float64, IndexMap, error) {
	if aux != nil && len(aux) != len(ts) {
		return nil, nil, nil, errors.Wrapf(ErrDimensionMismatch, "Sort: %d terms, %d aux columns", len(ts), len(aux))
	}
	perm := IdentityMap(len(ts))
	slices.SortStableFunc(perm, func(i, j int) int { return Compare(ts[i], ts[j]) })

	sorted := gather(ts, perm)
	var sortedAux [][]float64
	if aux != nil {
		sortedAux = gather(aux, perm)
	}

	return sorted, sortedAux, perm, nil
}

// Unique sorts ts (and aux alongside) and drops repeated terms, keeping the
// first occurrence of each. kept maps every output position to its
// position in the unsorted input ts.
//
// Empty input yields empty outputs and a nil error.
// Complexity: O(B log B · n).
func Unique(ts []Term, aux [][]float64) ([]Term, [][]float64, IndexMap, error) {
	sorted, sortedAux, perm, err := Sort(ts, aux)
	if err != nil {
		return nil, nil, nil, err
	}

	// Positions (in sorted order) of the first term of each run of duplicates.
	runs := make(IndexMap, 0, len(sorted))
	for i := range sorted {
		if i == 0 || !sorted[i].Equal(sorted[i-1]) {
			runs = append(runs, i)
		}
	}

	kept, err := perm.Then(runs)
	if err != nil {
		return nil, nil, nil, err
	}
	uniq := gather(sorted, runs)
	var uniqAux [][]float64
	if sortedAux != nil {
		uniqAux = gather(sortedAux, runs)
	}

	return uniq, uniqAux, kept, nil
}

// IsSorted reports whether ts is strictly increasing under Compare.
func IsSorted(ts []Term) bool {
	for i := 1; i < len(ts); i++ {
		if Compare(ts[i-1], ts[i]) >= 0 {
			return false
		}
	}

	return true
}
