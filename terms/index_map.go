// SPDX-License-Identifier: MIT

package terms

import "github.com/cockroachdb/errors"

// IndexMap traces positions through sort, dedup and purge stages.
// m[i] is the source position of output position i, so applying m to a
// slice src yields out[i] = src[m[i]]. Permutations and filters are both
// IndexMaps; composing them with Then keeps every stage traceable back to
// the original slice.
type IndexMap []int

// IdentityMap returns the map 0, 1, …, n−1.
func IdentityMap(n int) IndexMap {
	m := make(IndexMap, n)
	for i := range m {
		m[i] = i
	}

	return m
}

// IsIdentity reports whether m maps every position onto itself.
func (m IndexMap) IsIdentity() bool {
	for i, v := range m {
		if i != v {
			return false
		}
	}

	return true
}

// Then composes m with a later stage next: the result maps output
// position i of next directly to a position in m's source,
// result[i] = m[next[i]].
//
// Contract: every next[i] must index into m; otherwise ErrIndexOutOfRange.
// Complexity: O(len(next)).
func (m IndexMap) Then(next IndexMap) (IndexMap, error) {
	if err := next.Validate(len(m)); err != nil {
		return nil, err
	}
	out := make(IndexMap, len(next))
	for i, j := range next {
		out[i] = m[j]
	}

	return out, nil
}

// Validate checks that every entry indexes a source of length n.
func (m IndexMap) Validate(n int) error {
	for i, j := range m {
		if j < 0 || j >= n {
			return errors.Wrapf(ErrIndexOutOfRange, "position %d maps to %d, source length %d", i, j, n)
		}
	}

	return nil
}

// Clone returns an independent copy of m.
func (m IndexMap) Clone() IndexMap { return append(IndexMap(nil), m...) }

// gather applies m to src. Entries are validated by the exported wrappers.
func gather[T any](src []T, m IndexMap) []T {
	out := make([]T, len(m))
	for i, j := range m {
		out[i] = src[j]
	}

	return out
}

// GatherTerms returns the terms selected by m, in m's order.
// The returned slice shares Term backing arrays with src.
func GatherTerms(src []Term, m IndexMap) ([]Term, error) {
	if err := m.Validate(len(src)); err != nil {
		return nil, err
	}

	return gather(src, m), nil
}

// GatherColumns returns the evaluation columns selected by m, in m's order.
// The returned slice shares column backing arrays with src.
func GatherColumns(src [][]float64, m IndexMap) ([][]float64, error) {
	if err := m.Validate(len(src)); err != nil {
		return nil, err
	}

	return gather(src, m), nil
}
