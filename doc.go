// Package oavi computes approximate vanishing ideals of finite point sets
// and turns them into feature transforms.
//
// 🚀 What is oavi?
//
//	Given points X (k×n), oavi grows, degree by degree, an order ideal O
//	of monomials that stay linearly independent over X, plus a set G of
//	polynomials g = t − Σ cᵢ·Oᵢ whose mean squared value on X is at most
//	ψ. Evaluating |G| on new points yields features that are near zero
//	for points sharing the structure of X.
//
//	Each "does t lie near span(O)?" question is an L1-constrained least
//	squares problem solved by a conditional-gradient oracle:
//		• Frank–Wolfe, pairwise and blended pairwise conditional gradients
//		• an SVD shortcut (ABM)
//		• any external solver with the oracle.Solver signature
//
// Packages:
//
//	terms/   — monomials, degree-lex order, borders, index maps, evaluation
//	gram/    — streaming Gram matrix and inverse (Schur complement)
//	oracle/  — the L1-constrained least squares oracles and L1 projection
//	ideal/   — the fit loop (Fitter, Basis) and evaluation of new points
//	metrics/ — Prometheus observer for fits
//	cmd/oavi — command line: oavi fit, oavi version
//
// Quick example:
//
//	f := ideal.New(ideal.WithConstantTerm())
//	feats, basis, err := f.FitTransform(X)
//	// basis.Polynomials() holds x0^2 + x1^2 − 1 for points on a circle.
//
// See examples/circle_features.go for a runnable program.
//
//	go get github.com/katalvlaran/oavi
package oavi
