// Package gram maintains the Gram matrix G = AᵀA, and optionally its
// inverse, for an evaluation matrix A that grows one column at a time.
//
// Why streaming?
//
//	The border-basis loop appends a column to A every time a term is
//	admitted to O, and every oracle call needs AᵀA (and, with hessian
//	boosting, (AᵀA)⁻¹). Recomputing them costs O(k·m²) and O(m³) per
//	step; block updates cost O(m) for G given the cross term Aᵀc, and
//	O(m²) for the inverse via the Schur complement.
//
// Inverse policy:
//
//	InverseNone — never maintain G⁻¹.
//	InverseWeak — maintain G⁻¹ while the Gram order stays below a cap
//	              and every update is well conditioned.
//	InverseFull — maintain G⁻¹ until an update is ill conditioned.
//
// Once dropped, the inverse stays dropped for the rest of the Stream's
// life; G itself is always maintained. A Stream never recomputes G or
// G⁻¹ from scratch.
package gram
