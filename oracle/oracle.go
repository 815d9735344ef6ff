// SPDX-License-Identifier: MIT

package oracle

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Oracle classifies one candidate term. Implementations are stateless
// across calls and safe to reuse within a fit.
type Oracle interface {
	Solve(p *Problem) (Result, error)
}

// Kind names an oracle strategy. The zero value is KindBPCG.
type Kind int

const (
	// KindBPCG is blended pairwise conditional gradients (default).
	KindBPCG Kind = iota
	// KindPCG is pairwise Frank–Wolfe.
	KindPCG
	// KindCG is vanilla Frank–Wolfe.
	KindCG
	// KindABM is the SVD-based oracle.
	KindABM
	// KindExternal delegates to a caller-supplied Solver.
	KindExternal
)

// String returns the configuration name of k.
func (k Kind) String() string {
	switch k {
	case KindBPCG:
		return "bpcg"
	case KindPCG:
		return "pcg"
	case KindCG:
		return "cg"
	case KindABM:
		return "abm"
	case KindExternal:
		return "external"
	default:
		return "unknown"
	}
}

// ParseKind maps a configuration name (case-insensitive) to a built-in Kind.
// "external" is rejected: an external oracle needs a Solver, which no
// string can carry.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bpcg":
		return KindBPCG, nil
	case "pcg":
		return KindPCG, nil
	case "cg":
		return KindCG, nil
	case "abm":
		return KindABM, nil
	default:
		return KindBPCG, errors.WithHint(
			errors.Wrapf(ErrUnknownKind, "%q", s),
			"use one of: bpcg, pcg, cg, abm")
	}
}

// Choice selects an oracle: a built-in Kind, or KindExternal with a Solver
// and an opaque Params bag forwarded on every call.
type Choice struct {
	Kind   Kind
	Solver Solver
	Params Params
}

// Builtin returns the Choice for a built-in kind.
func Builtin(k Kind) Choice { return Choice{Kind: k} }

// External returns the Choice for a caller-supplied solver.
func External(s Solver, params Params) Choice {
	return Choice{Kind: KindExternal, Solver: s, Params: params}
}

// New resolves c into an Oracle.
//
// Errors: ErrUnknownKind for a Kind outside the closed set; ErrNilSolver
// for KindExternal without a Solver.
func New(c Choice) (Oracle, error) {
	switch c.Kind {
	case KindBPCG:
		return conditionalGradient{solve: BlendedPairwise, params: c.Params}, nil
	case KindPCG:
		return conditionalGradient{solve: PairwiseFrankWolfe, params: c.Params}, nil
	case KindCG:
		return conditionalGradient{solve: FrankWolfe, params: c.Params}, nil
	case KindABM:
		return abm{}, nil
	case KindExternal:
		if c.Solver == nil {
			return nil, ErrNilSolver
		}
		return conditionalGradient{solve: c.Solver, params: c.Params.Clone()}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "kind=%d", int(c.Kind))
	}
}
