// SPDX-License-Identifier: MIT

package ideal

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidData indicates an empty data matrix or a non-finite entry.
	ErrInvalidData = errors.New("ideal: invalid data")

	// ErrDimensionMismatch indicates points with a different number of
	// variables than the fitted basis.
	ErrDimensionMismatch = errors.New("ideal: dimension mismatch")

	// ErrRegularizedInverse indicates inverse boosting was requested together
	// with λ > 0.
	ErrRegularizedInverse = errors.New("ideal: inverse boosting requires lambda = 0")

	// ErrNotFitted indicates Transform was called before Fit.
	ErrNotFitted = errors.New("ideal: transform before fit")
)
