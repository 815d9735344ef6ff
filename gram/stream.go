// SPDX-License-Identifier: MIT

package gram

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

// Status reports what an extension did to the inverse.
type Status int

const (
	// StatusExtended: G grew; G⁻¹ grew too if it was active.
	StatusExtended Status = iota

	// StatusDroppedUnstable: the Schur complement fell below the stability
	// floor; G⁻¹ is no longer maintained.
	StatusDroppedUnstable

	// StatusDroppedCap: InverseWeak reached its cap; G⁻¹ is no longer maintained.
	StatusDroppedCap
)

// Dropped reports whether the extension disabled inverse maintenance.
func (s Status) Dropped() bool { return s != StatusExtended }

// String returns a short label for logs and metrics.
func (s Status) String() string {
	switch s {
	case StatusExtended:
		return "extended"
	case StatusDroppedUnstable:
		return "unstable"
	case StatusDroppedCap:
		return "cap"
	default:
		return "unknown"
	}
}

// Stream holds an evaluation matrix A (k×m, stored as columns), its Gram
// matrix G = AᵀA and, while active, G⁻¹. It is owned by a single fit and is
// not safe for concurrent use.
type Stream struct {
	rows int
	opts options

	cols [][]float64 // A, one slice of length rows per column
	g    [][]float64 // G, row i has length m
	inv  [][]float64 // G⁻¹ while on
	on   bool        // inverse maintained
}

// New returns an empty Stream for columns of length rows (k ≥ 1).
func New(rows int, opts ...Option) (*Stream, error) {
	if rows <= 0 {
		return nil, errors.Wrapf(ErrDimensionMismatch, "New: rows=%d", rows)
	}
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Stream{rows: rows, opts: o, on: o.mode != InverseNone}, nil
}

// Rows returns the column height k.
func (s *Stream) Rows() int { return s.rows }

// Len returns the number of columns m.
func (s *Stream) Len() int { return len(s.cols) }

// Mode returns the configured inverse policy.
func (s *Stream) Mode() InverseMode { return s.opts.mode }

// InverseActive reports whether G⁻¹ is currently maintained.
func (s *Stream) InverseActive() bool { return s.on }

// Columns returns A as columns. The slices are shared: callers must not
// modify them.
func (s *Stream) Columns() [][]float64 { return s.cols }

// Gram returns G as rows. Shared; read-only.
func (s *Stream) Gram() [][]float64 { return s.g }

// Inverse returns G⁻¹ as rows, or nil when the inverse is not maintained.
// Shared; read-only.
func (s *Stream) Inverse() [][]float64 {
	if !s.on {
		return nil
	}

	return s.inv
}

// Cross returns Aᵀc for a candidate column c.
// Complexity: O(k·m).
func (s *Stream) Cross(c []float64) ([]float64, error) {
	if len(c) != s.rows {
		return nil, errors.Wrapf(ErrDimensionMismatch, "Cross: column has %d rows, want %d", len(c), s.rows)
	}
	out := make([]float64, len(s.cols))
	for j, a := range s.cols {
		out[j] = floats.Dot(a, c)
	}

	return out, nil
}

// Append extends A by c, computing the cross term and squared norm itself.
func (s *Stream) Append(c []float64) (Status, error) {
	cross, err := s.Cross(c)
	if err != nil {
		return StatusExtended, err
	}

	return s.Extend(c, cross, floats.Dot(c, c))
}

// Extend appends column c to A given the precomputed cross term b = Aᵀc
// and s = cᵀc:
//
//	G' = [[G, b], [bᵀ, s]]
//
// When the inverse is active, with u = G⁻¹b and d = s − bᵀu:
//
//	G'⁻¹ = [[G⁻¹ + uuᵀ/d, −u/d], [−uᵀ/d, 1/d]]
//
// An ill-conditioned d (d ≤ threshold·max(s, 1)) or, under InverseWeak, a
// Gram order beyond the cap drops the inverse for good and is reported
// through the returned Status, not as an error.
//
// Errors: ErrDimensionMismatch when len(c) ≠ k or len(cross) ≠ m. No state
// changes on error.
//
// Complexity: O(m) amortized for G; O(m²) while the inverse is active.
func (s *Stream) Extend(c, cross []float64, sq float64) (Status, error) {
	m := len(s.cols)
	if len(c) != s.rows {
		return StatusExtended, errors.Wrapf(ErrDimensionMismatch, "Extend: column has %d rows, want %d", len(c), s.rows)
	}
	if len(cross) != m {
		return StatusExtended, errors.Wrapf(ErrDimensionMismatch, "Extend: cross term has %d entries, want %d", len(cross), m)
	}

	status := StatusExtended
	if s.on {
		status = s.extendInverse(cross, sq)
	}

	// Block-extend G: append b to every row, then the row [bᵀ, s].
	for i := 0; i < m; i++ {
		s.g[i] = append(s.g[i], cross[i])
	}
	last := make([]float64, m+1)
	copy(last, cross)
	last[m] = sq
	s.g = append(s.g, last)
	s.cols = append(s.cols, append([]float64(nil), c...))

	return status, nil
}

// extendInverse applies the Schur-complement update, or drops the inverse.
func (s *Stream) extendInverse(b []float64, sq float64) Status {
	m := len(s.inv)
	if s.opts.mode == InverseWeak && m+1 > s.opts.weakCap {
		s.drop()
		return StatusDroppedCap
	}

	// u = G⁻¹b, d = s − bᵀu.
	u := make([]float64, m)
	for i := 0; i < m; i++ {
		u[i] = floats.Dot(s.inv[i], b)
	}
	d := sq - floats.Dot(b, u)
	if math.IsNaN(d) || d <= s.opts.threshold*math.Max(sq, 1) {
		s.drop()
		return StatusDroppedUnstable
	}

	inv := 1 / d
	for i := 0; i < m; i++ {
		row := s.inv[i]
		ui := u[i] * inv
		for j := 0; j < m; j++ {
			row[j] += ui * u[j]
		}
		s.inv[i] = append(row, -ui)
	}
	last := make([]float64, m+1)
	for j := 0; j < m; j++ {
		last[j] = -u[j] * inv
	}
	last[m] = inv
	s.inv = append(s.inv, last)

	return StatusExtended
}

func (s *Stream) drop() {
	s.on = false
	s.inv = nil
}
