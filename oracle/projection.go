// SPDX-License-Identifier: MIT

package oracle

import (
	"math"
	"slices"

	"github.com/cockroachdb/errors"
)

// L1Projection returns the Euclidean projection of x onto {‖y‖₁ ≤ radius}.
// Points already inside the ball are returned as a copy.
//
// Sort-based method: sort |x| descending, find the largest ρ with
// u_ρ > (Σ_{i≤ρ} u_i − radius)/ρ, shrink every |x_i| by that threshold.
//
// Errors: ErrInvalidRadius when radius ≤ 0 or not finite.
// Complexity: O(n log n).
func L1Projection(x []float64, radius float64) ([]float64, error) {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return nil, errors.Wrapf(ErrInvalidRadius, "L1Projection: radius=%v", radius)
	}
	out := make([]float64, len(x))
	if l1Norm(x) <= radius {
		copy(out, x)
		return out, nil
	}

	u := make([]float64, len(x))
	for i, v := range x {
		u[i] = math.Abs(v)
	}
	slices.SortFunc(u, func(a, b float64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		default:
			return 0
		}
	})

	var cum, theta float64
	for i, ui := range u {
		cum += ui
		t := (cum - radius) / float64(i+1)
		if ui > t {
			theta = t
		}
	}

	for i, v := range x {
		if a := math.Abs(v) - theta; a > 0 {
			out[i] = math.Copysign(a, v)
		}
	}

	return out, nil
}
