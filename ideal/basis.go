// SPDX-License-Identifier: MIT

package ideal

import (
	"github.com/google/uuid"
	"github.com/katalvlaran/oavi/terms"
)

// Polynomial is one generator g = Leading − Σ Coefficients[j]·O[j].
//
// Coefficients is aligned to the prefix O[:len(Coefficients)], the order
// ideal as it stood when Leading was classified. Later O-terms do not
// appear in g; CoefficientsOver pads with zeros for a wider index space.
type Polynomial struct {
	Degree       int
	Leading      terms.Term
	Coefficients []float64
	Loss         float64
}

// CoefficientsOver returns the coefficients zero-padded to width entries.
// width smaller than the prefix length returns the unpadded copy.
func (p Polynomial) CoefficientsOver(width int) []float64 {
	if width < len(p.Coefficients) {
		width = len(p.Coefficients)
	}
	out := make([]float64, width)
	copy(out, p.Coefficients)

	return out
}

func (p Polynomial) clone() Polynomial {
	p.Leading = p.Leading.Clone()
	p.Coefficients = append([]float64(nil), p.Coefficients...)

	return p
}

// DegreeStats counts what happened to the border of one degree.
type DegreeStats struct {
	Degree   int
	Raw      int // generated border terms
	Border   int // after dedup and purge
	Purged   int
	Admitted int // joined O
	Vanished int // became leading terms
}

// Basis is the outcome of one fit: the order ideal O, the generators G and
// the bookkeeping of how they were found.
//
// A Basis is built by a single Fit and read-only afterwards: accessors
// return copies, and there is no exported mutator. Concurrent reads are safe.
type Basis struct {
	id      uuid.UUID
	version int
	vars    int // n
	samples int // k of the training set

	o          []terms.Term
	oEvals     [][]float64
	boundaries []int

	borders []terms.Border
	stats   []DegreeStats

	polys  []Polynomial
	gEvals [][]float64

	saturated bool
	spanned   bool
}

func newBasis(vars, samples int) *Basis {
	return &Basis{id: uuid.New(), vars: vars, samples: samples}
}

// ID identifies the fit that produced b.
func (b *Basis) ID() uuid.UUID { return b.id }

// Version counts the committed mutations of b during its fit.
func (b *Basis) Version() int { return b.version }

// Vars returns the number of variables n.
func (b *Basis) Vars() int { return b.vars }

// Samples returns the number of training points k.
func (b *Basis) Samples() int { return b.samples }

// Degree returns the highest processed degree.
func (b *Basis) Degree() int { return len(b.stats) }

// Saturated reports whether the fit stopped because a degree admitted
// nothing to O (as opposed to reaching the degree bound).
func (b *Basis) Saturated() bool { return b.saturated }

// Spanned reports whether O reached as many terms as there are training
// points. Terms classified after that point were decided by unconstrained
// least squares instead of the configured oracle.
func (b *Basis) Spanned() bool { return b.spanned }

// O returns the order ideal terms, in classification order.
func (b *Basis) O() []terms.Term { return terms.CloneAll(b.o) }

// OEvaluations returns the training evaluation column of each O-term.
func (b *Basis) OEvaluations() [][]float64 { return terms.CloneColumns(b.oEvals) }

// DegreeBoundaries returns, per degree d = 0..Degree(), the index in O at
// which degree-d terms start.
func (b *Basis) DegreeBoundaries() []int { return append([]int(nil), b.boundaries...) }

// Borders returns the border record of every processed degree.
func (b *Basis) Borders() []terms.Border {
	out := make([]terms.Border, len(b.borders))
	for i, br := range b.borders {
		out[i] = terms.Border{
			Raw:            terms.CloneAll(br.Raw),
			RawEvaluations: terms.CloneColumns(br.RawEvaluations),
			Terms:          terms.CloneAll(br.Terms),
			Evaluations:    terms.CloneColumns(br.Evaluations),
			NonPurging:     br.NonPurging.Clone(),
			Purged:         br.Purged,
		}
	}

	return out
}

// Stats returns per-degree counters.
func (b *Basis) Stats() []DegreeStats { return append([]DegreeStats(nil), b.stats...) }

// Len returns |G|.
func (b *Basis) Len() int { return len(b.polys) }

// LeadingTerms returns the leading term of every generator.
func (b *Basis) LeadingTerms() []terms.Term {
	out := make([]terms.Term, len(b.polys))
	for i, p := range b.polys {
		out[i] = p.Leading.Clone()
	}

	return out
}

// Polynomials returns the generators.
func (b *Basis) Polynomials() []Polynomial {
	out := make([]Polynomial, len(b.polys))
	for i, p := range b.polys {
		out[i] = p.clone()
	}

	return out
}

// GEvaluations returns the signed training evaluation column of every
// generator.
func (b *Basis) GEvaluations() [][]float64 { return terms.CloneColumns(b.gEvals) }

// leading returns the leading terms without copying (purge basis).
func (b *Basis) leading() []terms.Term {
	out := make([]terms.Term, len(b.polys))
	for i, p := range b.polys {
		out[i] = p.Leading
	}

	return out
}
