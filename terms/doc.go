// Package terms implements the monomial algebra behind border-basis
// construction: exponent vectors, the degree-lexicographic term order,
// deduplication with index tracing, and border generation with purging.
//
// What is a border?
//
//	Given the terms O_d admitted at degree d and the degree-1 monomials
//	x_0 … x_{n-1}, the degree-(d+1) border is every product x_i·t for
//	t ∈ O_d. Products divisible by a known leading term are purged: their
//	vanishing is already implied by that leading term's relation.
//
// Key features:
//   - Compare / Sort / Unique under one fixed total order (degree first,
//     reverse-lexicographic tie-break).
//   - IndexMap composes permutations and filters, so every border column
//     can be traced back to its position in the raw (pre-dedup) border.
//   - Evaluations ride along with terms: column j of an evaluation matrix
//     always belongs to term j.
//   - Evaluator replays monomial evaluation on new data with memoization.
//
// Usage:
//
//	b, err := terms.ConstructBorder(terms.BorderInput{
//		Terms:              prev,
//		Evaluations:        prevEvals,
//		Data:               columns,
//		Degree1Terms:       terms.Identity(n),
//		Degree1Evaluations: columns,
//		Purging:            leading,
//	})
//
// Complexity:
//   - Border: O(|deg1|·|T|·(n + k)) plus O(B log B) for the sort.
//   - Purge:  O(B·|P|·n).
package terms
