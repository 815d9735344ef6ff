// Package oracle defines the classification oracle of the border-basis loop
// and ships its built-in implementations.
//
// Contract:
//
//	Given A (evaluations of the current O-terms), b (evaluation of a
//	candidate border term), the precomputed AᵀA, Aᵀb, bᵀb, an L1 radius τ,
//	a ridge weight λ ≥ 0 and a tolerance, find
//
//	    x* ≈ argmin ‖Ax − b‖²/k + λ‖x‖²   s.t.  ‖x‖₁ ≤ τ
//
//	and report the loss at x*. The caller classifies the candidate as
//	vanishing iff loss ≤ ψ.
//
// Oracles:
//
//	KindCG       — vanilla Frank–Wolfe over the L1 ball
//	KindPCG      — pairwise Frank–Wolfe (active-set, away mass moved pairwise)
//	KindBPCG     — blended pairwise conditional gradients (default)
//	KindABM      — SVD of [A | b]; no L1 constraint
//	KindExternal — a caller-supplied Solver with an opaque parameter bag
//
// The conditional-gradient kinds all go through the same adapter: it builds
// the objective and gradient closures from the Gram quantities, applies
// hessian boosting when an inverse Gram matrix is supplied, and calls a
// Solver. Built-in and external solvers share the Solver signature.
//
// Non-convergence is not an error: a solver that exhausts its iteration
// budget returns its best iterate with Converged=false, and the loss is
// still used for classification.
package oracle
