// SPDX-License-Identifier: MIT
// Package ideal: the border-basis fit loop.
//
// Blueprint (Fit):
//
//	Stage 1 (Initialize):   validate X and options, resolve the oracle,
//	                        open the Gram stream, seed O with 1 if asked.
//	Stage 2 (ExpandDegree): border of the previous degree's admitted terms,
//	                        purged by every leading term found so far.
//	Stage 3 (Classify):     one oracle call per border term, in term order;
//	                        vanishing ⇒ generator, otherwise ⇒ O. Once
//	                        |O| ≥ k the oracle is replaced by unconstrained
//	                        least squares, so the next degree vanishes.
//	Stage 4 (Commit):       degree boundary, border record, Version++.
//	Stage 5 (Terminate):    nothing admitted, or max degree reached.
//
// Complexity: per border term one Gram extension (O(k·m)) plus one oracle
// call (O(iters·m²) for the conditional-gradient oracles).

package ideal

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/oavi/gram"
	"github.com/katalvlaran/oavi/oracle"
	"github.com/katalvlaran/oavi/terms"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Fitter runs fits with a fixed configuration and remembers the last basis
// for Transform. A Fitter is not safe for concurrent Fit calls.
type Fitter struct {
	opts options
	last *Basis
}

// New returns a Fitter configured by opts.
func New(opts ...Option) *Fitter {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Fitter{opts: o}
}

// Basis returns the basis of the last successful Fit, or nil.
func (f *Fitter) Basis() *Basis { return f.last }

// Fit computes O and G for the rows of X.
//
// Errors: ErrInvalidData (no rows, no columns, NaN or ±Inf),
// ErrRegularizedInverse (inverse boosting with λ > 0), oracle.ErrUnknownKind
// and oracle.ErrNilSolver from the oracle choice, and any oracle failure.
func (f *Fitter) Fit(X mat.Matrix) (*Basis, error) {
	data, err := columnsOf(X)
	if err != nil {
		return nil, err
	}
	o := f.opts
	if o.inverse != gram.InverseNone && o.lambda != 0 {
		return nil, errors.WithHint(
			errors.Wrapf(ErrRegularizedInverse, "inverse=%s lambda=%v", o.inverse, o.lambda),
			"set lambda to 0 or disable inverse boosting")
	}
	orc, err := oracle.New(o.oracle)
	if err != nil {
		return nil, errors.Wrap(err, "ideal: Fit")
	}

	r := &run{
		opts:   o,
		tau:    o.radius(),
		oracle: orc,
		data:   data,
		basis:  newBasis(len(data), len(data[0])),
		log:    o.logger,
	}
	if err = r.fit(); err != nil {
		return nil, err
	}
	f.last = r.basis

	return r.basis, nil
}

// FitTransform fits X and returns |G(X)| (k×|G|) with the basis.
func (f *Fitter) FitTransform(X mat.Matrix) (*mat.Dense, *Basis, error) {
	b, err := f.Fit(X)
	if err != nil {
		return nil, nil, err
	}

	return b.trainingFeatures(), b, nil
}

// Transform evaluates the last fitted basis on X.
// Errors: ErrNotFitted before the first successful Fit.
func (f *Fitter) Transform(X mat.Matrix) (*mat.Dense, error) {
	if f.last == nil {
		return nil, ErrNotFitted
	}

	return f.last.Evaluate(X)
}

// run is the state of one fit.
type run struct {
	opts   options
	tau    float64
	oracle oracle.Oracle
	data   [][]float64
	basis  *Basis
	stream *gram.Stream
	log    *zap.Logger
}

func (r *run) fit() error {
	b := r.basis
	k, n := b.samples, b.vars

	// Stage 1: initialize.
	stream, err := gram.New(k, gram.WithInverse(r.opts.inverse), gram.WithWeakCap(r.opts.weakCap))
	if err != nil {
		return errors.Wrap(err, "ideal: Fit")
	}
	r.stream = stream
	r.log.Info("fit started",
		zap.String("basis", b.id.String()),
		zap.Int("samples", k),
		zap.Int("vars", n),
		zap.Float64("psi", r.opts.psi),
		zap.Float64("tau", r.tau),
		zap.String("oracle", r.opts.oracle.Kind.String()),
		zap.String("inverse", r.opts.inverse.String()))

	var prev []terms.Term
	var prevEvals [][]float64
	b.boundaries = append(b.boundaries, 0)
	if r.opts.constantTerm {
		one := make([]float64, k)
		for i := range one {
			one[i] = 1
		}
		if err = r.admit(0, terms.Zero(n), one, nil); err != nil {
			return err
		}
		prev, prevEvals = []terms.Term{terms.Zero(n)}, [][]float64{one}
	}

	degree1 := terms.Identity(n)
	for d := 1; d <= r.opts.maxDegree; d++ {
		// Stage 2: expand.
		border, err := terms.ConstructBorder(terms.BorderInput{
			Terms:              prev,
			Evaluations:        prevEvals,
			Data:               r.data,
			Degree1Terms:       degree1,
			Degree1Evaluations: r.data,
			Purging:            b.leading(),
		})
		if err != nil {
			return errors.Wrapf(err, "ideal: degree %d border", d)
		}
		b.boundaries = append(b.boundaries, len(b.o))

		// Stage 3: classify.
		stats := DegreeStats{Degree: d, Raw: len(border.Raw), Border: border.Len(), Purged: border.Purged}
		prev, prevEvals = nil, nil
		for j, t := range border.Terms {
			col := border.Evaluations[j]
			vanished, err := r.classify(d, t, col)
			if err != nil {
				return err
			}
			if vanished {
				stats.Vanished++
				continue
			}
			stats.Admitted++
			prev = append(prev, t)
			prevEvals = append(prevEvals, col)
		}

		// Stage 4: commit.
		b.borders = append(b.borders, *border)
		b.stats = append(b.stats, stats)
		b.version++
		r.opts.observer.DegreeCommitted(d, stats.Admitted, stats.Vanished, stats.Purged)
		r.log.Debug("degree committed",
			zap.Int("degree", d),
			zap.Int("border", stats.Border),
			zap.Int("purged", stats.Purged),
			zap.Int("admitted", stats.Admitted),
			zap.Int("vanished", stats.Vanished))

		// Stage 5: terminate on saturation.
		if stats.Admitted == 0 {
			b.saturated = true
			break
		}
	}

	r.log.Info("fit finished",
		zap.String("basis", b.id.String()),
		zap.Int("degree", b.Degree()),
		zap.Bool("saturated", b.saturated),
		zap.Int("o", len(b.o)),
		zap.Int("g", len(b.polys)))

	return nil
}

// classify asks the oracle about one border term and records the outcome.
func (r *run) classify(d int, t terms.Term, col []float64) (bool, error) {
	cross, err := r.stream.Cross(col)
	if err != nil {
		return false, errors.Wrap(err, "ideal: classify")
	}
	sq := floats.Dot(col, col)

	prob := &oracle.Problem{
		Columns:    r.stream.Columns(),
		Target:     col,
		Gram:       r.stream.Gram(),
		Cross:      cross,
		TargetNorm: sq,
		Inverse:    r.stream.Inverse(),
		Samples:    r.basis.samples,
		Tau:        r.tau,
		Lambda:     r.opts.lambda,
		Tolerance:  r.opts.epsilon,
		MaxIters:   r.opts.maxIters,
	}
	var res oracle.Result
	if r.basis.spanned {
		res, err = oracle.LeastSquares(prob)
	} else {
		res, err = r.oracle.Solve(prob)
	}
	if err != nil {
		return false, errors.Wrapf(err, "ideal: classify %s", t)
	}

	vanishing := res.Loss <= r.opts.psi
	r.opts.observer.TermClassified(d, vanishing, res.Loss, res.Iterations, res.Converged)
	if !res.Converged {
		r.log.Debug("oracle stopped before tolerance",
			zap.String("term", t.String()),
			zap.Int("iterations", res.Iterations),
			zap.Float64("gap", res.Gap),
			zap.Float64("loss", res.Loss))
	}

	if !vanishing {
		return false, r.admit(d, t, col, cross)
	}

	b := r.basis
	g := append([]float64(nil), col...)
	for j, a := range r.stream.Columns() {
		if res.X[j] != 0 {
			floats.AddScaled(g, -res.X[j], a)
		}
	}
	b.polys = append(b.polys, Polynomial{
		Degree:       d,
		Leading:      t.Clone(),
		Coefficients: append([]float64(nil), res.X...),
		Loss:         res.Loss,
	})
	b.gEvals = append(b.gEvals, g)

	return true, nil
}

// admit appends t to O and its column to the Gram stream. cross may be nil.
func (r *run) admit(d int, t terms.Term, col, cross []float64) error {
	var (
		status gram.Status
		err    error
	)
	if cross == nil {
		status, err = r.stream.Append(col)
	} else {
		status, err = r.stream.Extend(col, cross, floats.Dot(col, col))
	}
	if err != nil {
		return errors.Wrap(err, "ideal: admit")
	}
	if status.Dropped() {
		r.opts.observer.InverseDropped(d, r.stream.Len(), status.String())
		r.log.Warn("inverse gram dropped",
			zap.Int("degree", d),
			zap.String("term", t.String()),
			zap.Int("size", r.stream.Len()),
			zap.String("reason", status.String()))
	}
	b := r.basis
	b.o = append(b.o, t.Clone())
	b.oEvals = append(b.oEvals, append([]float64(nil), col...))
	if !b.spanned && len(b.o) >= b.samples {
		b.spanned = true
		r.log.Info("order ideal spans the data, classifying by least squares",
			zap.Int("degree", d),
			zap.Int("o", len(b.o)),
			zap.Int("samples", b.samples))
	}

	return nil
}

// columnsOf validates X and returns its columns.
func columnsOf(X mat.Matrix) ([][]float64, error) {
	if X == nil {
		return nil, errors.Wrap(ErrInvalidData, "nil matrix")
	}
	if d, ok := X.(*mat.Dense); ok && d.IsEmpty() {
		return nil, errors.Wrap(ErrInvalidData, "empty matrix")
	}
	k, n := X.Dims()
	if k == 0 || n == 0 {
		return nil, errors.Wrapf(ErrInvalidData, "%d×%d matrix", k, n)
	}
	cols := make([][]float64, n)
	for j := range cols {
		cols[j] = mat.Col(nil, j, X)
		for i, v := range cols[j] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Wrapf(ErrInvalidData, "non-finite value at (%d,%d)", i, j)
			}
		}
	}

	return cols, nil
}

// trainingFeatures returns |G(X_train)| as k×|G|, or an empty matrix.
func (b *Basis) trainingFeatures() *mat.Dense {
	return absColumns(b.gEvals, b.samples)
}

// absColumns assembles |cols| into a rows×len(cols) matrix.
func absColumns(cols [][]float64, rows int) *mat.Dense {
	if len(cols) == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(rows, len(cols), nil)
	for j, c := range cols {
		for i, v := range c {
			out.Set(i, j, math.Abs(v))
		}
	}

	return out
}
