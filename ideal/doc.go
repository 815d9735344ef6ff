// Package ideal computes approximate vanishing ideals of a finite point set
// by the border-basis loop of OAVI.
//
// What:
//
//	Given training points X (k×n), the Fitter grows, degree by degree, an
//	order ideal O of monomials whose evaluations over X stay (nearly)
//	linearly independent, and a set G of polynomials
//
//	    g = t − Σ cᵢ·Oᵢ,   mean(g(X)²) ≤ ψ,
//
//	one per leading term t. |G(X')| is a feature transform for new points.
//
// Loop (states):
//
//	Initialize   → validate X and options, derive τ, seed O (optionally 1).
//	ExpandDegree → border of the previous degree's admitted O-terms, with
//	               terms divisible by a leading term purged.
//	ClassifyTerm → for each border term, in term order, ask the oracle
//	               whether it (nearly) lies in the span of O; vanishing
//	               terms become leading terms, the rest join O.
//	Commit       → record the degree boundary and the border.
//	Terminate    → when a degree admits nothing to O, or after max degree.
//
// Once O holds k terms for k training points its columns span the data
// space, and every later term is classified by unconstrained least squares
// (Basis.Spanned). When those columns are independent the degree after
// that admits nothing, so a fit over k points processes at most k+1
// degrees, or k with the constant term.
//
// Choosing the oracle:
//
//	oracle.KindBPCG (default) solves the L1-constrained least squares
//	problem with blended pairwise conditional gradients; KindPCG and KindCG
//	are simpler variants; KindABM replaces the constrained problem with an
//	SVD. WithInverseBoost keeps (AᵀA)⁻¹ up to date so most queries are
//	answered in closed form.
//
// Concurrency:
//
//	A fit is sequential. The returned Basis is immutable; Evaluate only
//	reads it and may be called from several goroutines.
//
// Errors:
//
//	Invalid input is rejected before any work starts with ErrInvalidData,
//	ErrDimensionMismatch or ErrRegularizedInverse; errors from the oracle
//	package are wrapped and still match with errors.Is. Numerical trouble
//	(inverse dropped, oracle out of budget) is logged and reported to the
//	Observer, never returned.
package ideal
