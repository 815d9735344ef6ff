// SPDX-License-Identifier: MIT

package oracle

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidRadius indicates a non-positive or non-finite L1 radius.
	ErrInvalidRadius = errors.New("oracle: L1 radius must be > 0")

	// ErrInvalidLambda indicates a negative or non-finite ridge weight.
	ErrInvalidLambda = errors.New("oracle: lambda must be ≥ 0")

	// ErrRegularizedInverse indicates an inverse Gram matrix was supplied
	// together with λ > 0; closed-form hessian updates assume λ = 0.
	ErrRegularizedInverse = errors.New("oracle: inverse gram requires lambda = 0")

	// ErrDimensionMismatch indicates inconsistent problem shapes.
	ErrDimensionMismatch = errors.New("oracle: dimension mismatch")

	// ErrUnknownKind indicates an oracle name or Kind outside the closed set.
	ErrUnknownKind = errors.New("oracle: unknown oracle kind")

	// ErrNilSolver indicates KindExternal without a Solver.
	ErrNilSolver = errors.New("oracle: external oracle needs a solver")

	// ErrFactorization indicates the SVD of [A | b] did not converge.
	ErrFactorization = errors.New("oracle: factorization failed")
)
