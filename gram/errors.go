// SPDX-License-Identifier: MIT

package gram

import "github.com/cockroachdb/errors"

var (
	// ErrDimensionMismatch indicates a column or cross term of the wrong length.
	ErrDimensionMismatch = errors.New("gram: dimension mismatch")

	// ErrUnknownMode indicates an InverseMode outside the defined set.
	ErrUnknownMode = errors.New("gram: unknown inverse mode")
)
