// SPDX-License-Identifier: MIT
// Package terms: sentinel error set.
// Every message is prefixed with "terms: ..."; call sites add context with
// errors.Wrapf and callers match with errors.Is.

package terms

import "github.com/cockroachdb/errors"

var (
	// ErrDimensionMismatch indicates terms, evaluations and data disagree in
	// shape: exponent vectors of the wrong length, evaluation columns of the
	// wrong height, or term/evaluation counts that differ.
	ErrDimensionMismatch = errors.New("terms: dimension mismatch")

	// ErrNegativeExponent indicates an exponent vector with a negative entry.
	ErrNegativeExponent = errors.New("terms: negative exponent")

	// ErrIndexOutOfRange indicates an IndexMap entry outside its source.
	ErrIndexOutOfRange = errors.New("terms: index out of range")

	// ErrEmptyData indicates an Evaluator was built over data without rows or columns.
	ErrEmptyData = errors.New("terms: empty data")
)
