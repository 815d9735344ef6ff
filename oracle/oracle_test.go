package oracle_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/oavi/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// newProblem builds a Problem with the Gram quantities computed from cols.
func newProblem(cols [][]float64, b []float64, tau float64) *oracle.Problem {
	m := len(cols)
	g := make([][]float64, m)
	cross := make([]float64, m)
	for i := range cols {
		g[i] = make([]float64, m)
		for j := range cols {
			g[i][j] = floats.Dot(cols[i], cols[j])
		}
		cross[i] = floats.Dot(cols[i], b)
	}

	return &oracle.Problem{
		Columns:    cols,
		Target:     b,
		Gram:       g,
		Cross:      cross,
		TargetNorm: floats.Dot(b, b),
		Samples:    len(b),
		Tau:        tau,
		Tolerance:  1e-10,
		MaxIters:   20000,
	}
}

func inverseOf(t *testing.T, g [][]float64) [][]float64 {
	t.Helper()
	m := len(g)
	d := mat.NewDense(m, m, nil)
	for i := range g {
		d.SetRow(i, g[i])
	}
	var inv mat.Dense
	require.NoError(t, inv.Inverse(d))
	out := make([][]float64, m)
	for i := range out {
		out[i] = mat.Row(nil, i, &inv)
	}

	return out
}

var unitColumns = [][]float64{{1, 0}, {0, 1}}

var conditionalKinds = []oracle.Kind{oracle.KindBPCG, oracle.KindPCG, oracle.KindCG}

// TestConditionalGradient_Interior: the unconstrained minimizer lies inside
// the ball, so every kind drives the loss to ~0.
func TestConditionalGradient_Interior(t *testing.T) {
	for _, k := range conditionalKinds {
		t.Run(k.String(), func(t *testing.T) {
			o, err := oracle.New(oracle.Builtin(k))
			require.NoError(t, err)
			res, err := o.Solve(newProblem(unitColumns, []float64{0.5, 0.25}, 1))
			require.NoError(t, err)
			assert.InDelta(t, 0, res.Loss, 1e-3)
			assert.InDelta(t, 0.5, res.X[0], 0.05)
			assert.InDelta(t, 0.25, res.X[1], 0.05)
			assert.False(t, res.ClosedForm)
		})
	}
}

// TestConditionalGradient_OnVertex: b = (2, 0) under τ = 1 is best
// approximated by the vertex (1, 0); loss ((1−2)² + 0)/2 = 0.5.
func TestConditionalGradient_OnVertex(t *testing.T) {
	for _, k := range conditionalKinds {
		t.Run(k.String(), func(t *testing.T) {
			o, err := oracle.New(oracle.Builtin(k))
			require.NoError(t, err)
			res, err := o.Solve(newProblem(unitColumns, []float64{2, 0}, 1))
			require.NoError(t, err)
			assert.InDelta(t, 0.5, res.Loss, 1e-9)
			assert.InDelta(t, 1, res.X[0], 1e-9)
			assert.InDelta(t, 0, res.X[1], 1e-9)
			assert.True(t, res.Converged)
			assert.LessOrEqual(t, floats.Norm(res.X, 1), 1+1e-12)
		})
	}
}

func TestConditionalGradient_BudgetExhausted(t *testing.T) {
	p := newProblem(unitColumns, []float64{0.5, 0.25}, 1)
	p.MaxIters = 1
	o, err := oracle.New(oracle.Builtin(oracle.KindCG))
	require.NoError(t, err)
	res, err := o.Solve(p)
	require.NoError(t, err, "non-convergence is not an error")
	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
}

func TestConditionalGradient_NoColumns(t *testing.T) {
	o, err := oracle.New(oracle.Builtin(oracle.KindBPCG))
	require.NoError(t, err)
	res, err := o.Solve(newProblem(nil, []float64{1, 2}, 1))
	require.NoError(t, err)
	assert.InDelta(t, 2.5, res.Loss, 1e-12)
	assert.Empty(t, res.X)
	assert.True(t, res.ClosedForm)
}

// TestHessianBoosting_ClosedForm accepts G⁻¹Aᵀb without iterating when it
// lies inside the ball.
func TestHessianBoosting_ClosedForm(t *testing.T) {
	cols := [][]float64{{1, 1, 0}, {0, 1, 1}}
	b := []float64{0.2, 0.5, 0.3}
	p := newProblem(cols, b, 2)
	p.Inverse = inverseOf(t, p.Gram)

	o, err := oracle.New(oracle.Builtin(oracle.KindBPCG))
	require.NoError(t, err)
	res, err := o.Solve(p)
	require.NoError(t, err)
	assert.True(t, res.ClosedForm)
	assert.Zero(t, res.Iterations)
	assert.InDelta(t, 0.2, res.X[0], 1e-9)
	assert.InDelta(t, 0.3, res.X[1], 1e-9)
	assert.InDelta(t, 0, res.Loss, 1e-12)
}

// TestHessianBoosting_WarmStart: the closed form leaves the ball, so the
// solver runs from its projection and still respects the radius.
func TestHessianBoosting_WarmStart(t *testing.T) {
	p := newProblem(unitColumns, []float64{2, 0}, 1)
	p.Inverse = inverseOf(t, p.Gram)

	o, err := oracle.New(oracle.Builtin(oracle.KindPCG))
	require.NoError(t, err)
	res, err := o.Solve(p)
	require.NoError(t, err)
	assert.False(t, res.ClosedForm)
	assert.InDelta(t, 0.5, res.Loss, 1e-9)
	assert.LessOrEqual(t, floats.Norm(res.X, 1), 1+1e-9)
}

func TestProblem_Validation(t *testing.T) {
	o, err := oracle.New(oracle.Builtin(oracle.KindBPCG))
	require.NoError(t, err)

	p := newProblem(unitColumns, []float64{1, 1}, 1)
	p.Inverse = inverseOf(t, p.Gram)
	p.Lambda = 0.1
	_, err = o.Solve(p)
	assert.ErrorIs(t, err, oracle.ErrRegularizedInverse)

	p = newProblem(unitColumns, []float64{1, 1}, 0)
	_, err = o.Solve(p)
	assert.ErrorIs(t, err, oracle.ErrInvalidRadius)

	p = newProblem(unitColumns, []float64{1, 1}, 1)
	p.Lambda = -1
	_, err = o.Solve(p)
	assert.ErrorIs(t, err, oracle.ErrInvalidLambda)

	p = newProblem(unitColumns, []float64{1, 1}, 1)
	p.Cross = p.Cross[:1]
	_, err = o.Solve(p)
	assert.ErrorIs(t, err, oracle.ErrDimensionMismatch)
}

func TestABM(t *testing.T) {
	o, err := oracle.New(oracle.Builtin(oracle.KindABM))
	require.NoError(t, err)

	t.Run("in span", func(t *testing.T) {
		res, err := o.Solve(newProblem([][]float64{{1, 0, 0}, {0, 1, 0}}, []float64{1, 2, 0}, 1))
		require.NoError(t, err)
		assert.InDelta(t, 0, res.Loss, 1e-12)
		assert.InDelta(t, 1, res.X[0], 1e-9)
		assert.InDelta(t, 2, res.X[1], 1e-9)
		assert.True(t, res.ClosedForm)
	})

	t.Run("wide matrix", func(t *testing.T) {
		// k = 2 rows, m+1 = 3 columns: a null vector always exists.
		res, err := o.Solve(newProblem([][]float64{{1, 2}, {3, 5}}, []float64{7, 1}, 1))
		require.NoError(t, err)
		assert.Zero(t, res.Loss)
	})

	t.Run("residual of the rescaled generator", func(t *testing.T) {
		// [A | b] = [[2,1],[0,1]]: the smallest right singular vector gives
		// x = (√5−1)/2 and ‖Ax − b‖²/2 = 5 − 2√5, above σ²/k = (3−√5)/2.
		p := newProblem([][]float64{{2, 0}}, []float64{1, 1}, 1)
		res, err := o.Solve(p)
		require.NoError(t, err)
		assert.InDelta(t, (math.Sqrt(5)-1)/2, math.Abs(res.X[0]), 1e-9)
		assert.InDelta(t, 5-2*math.Sqrt(5), res.Loss, 1e-9)
		assert.InDelta(t, p.Residual(res.X), res.Loss, 1e-12)
	})

	t.Run("wide matrix searches the whole null space", func(t *testing.T) {
		// [A | b] = [1 0 1]: e_1 is a null vector with a zero last entry,
		// (1, 0, −1) is the one that represents b exactly.
		res, err := o.Solve(newProblem([][]float64{{1}, {0}}, []float64{1}, 1))
		require.NoError(t, err)
		assert.InDelta(t, 0, res.Loss, 1e-12)
		assert.InDeltaSlice(t, []float64{1, 0}, res.X, 1e-9)
	})

	t.Run("missing data", func(t *testing.T) {
		p := newProblem(unitColumns, []float64{1, 1}, 1)
		p.Columns = nil
		_, err := o.Solve(p)
		assert.ErrorIs(t, err, oracle.ErrDimensionMismatch)
	})
}

func TestLeastSquares(t *testing.T) {
	t.Run("ignores the L1 budget", func(t *testing.T) {
		// b = 3·a is out of reach for τ = 1 but exact without the budget.
		p := newProblem([][]float64{{1, 2}}, []float64{3, 6}, 1)
		res, err := oracle.LeastSquares(p)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{3}, res.X, 1e-9)
		assert.InDelta(t, 0, res.Loss, 1e-12)
		assert.True(t, res.ClosedForm)
	})

	t.Run("rank deficient columns", func(t *testing.T) {
		// Two copies of the same column: the minimum-norm answer splits evenly.
		p := newProblem([][]float64{{1, 1}, {1, 1}}, []float64{2, 2}, 1)
		res, err := oracle.LeastSquares(p)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{1, 1}, res.X, 1e-9)
		assert.InDelta(t, 0, res.Loss, 1e-12)
	})

	t.Run("residual", func(t *testing.T) {
		p := newProblem([][]float64{{1, 0}}, []float64{1, 1}, 1)
		res, err := oracle.LeastSquares(p)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, res.Loss, 1e-12)
	})

	t.Run("no columns", func(t *testing.T) {
		res, err := oracle.LeastSquares(newProblem(nil, []float64{1, 2}, 1))
		require.NoError(t, err)
		assert.InDelta(t, 2.5, res.Loss, 1e-12)
	})

	t.Run("missing data", func(t *testing.T) {
		p := newProblem(unitColumns, []float64{1, 1}, 1)
		p.Target = nil
		_, err := oracle.LeastSquares(p)
		assert.ErrorIs(t, err, oracle.ErrDimensionMismatch)
	})
}

// TestExternalSolver checks the parameter bag is forwarded with the
// tolerance and budget filled in from the Problem.
func TestExternalSolver(t *testing.T) {
	var seen oracle.Params
	solver := func(f oracle.Objective, grad oracle.Gradient, region oracle.L1Ball, x0 []float64, params oracle.Params) ([]float64, oracle.Info, error) {
		seen = params
		return oracle.FrankWolfe(f, grad, region, x0, params)
	}

	o, err := oracle.New(oracle.External(solver, oracle.Params{"step": "fancy"}))
	require.NoError(t, err)
	p := newProblem(unitColumns, []float64{2, 0}, 1)
	res, err := o.Solve(p)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, res.Loss, 1e-9)
	assert.Equal(t, "fancy", seen["step"])
	assert.Equal(t, p.Tolerance, seen[oracle.ParamEpsilon])
	assert.Equal(t, p.MaxIters, seen[oracle.ParamMaxIters])

	bad := func(oracle.Objective, oracle.Gradient, oracle.L1Ball, []float64, oracle.Params) ([]float64, oracle.Info, error) {
		return []float64{1}, oracle.Info{}, nil
	}
	o, err = oracle.New(oracle.External(bad, nil))
	require.NoError(t, err)
	_, err = o.Solve(p)
	assert.ErrorIs(t, err, oracle.ErrDimensionMismatch)
}

func TestNew_Errors(t *testing.T) {
	_, err := oracle.New(oracle.External(nil, nil))
	assert.ErrorIs(t, err, oracle.ErrNilSolver)

	_, err = oracle.New(oracle.Choice{Kind: oracle.Kind(42)})
	assert.ErrorIs(t, err, oracle.ErrUnknownKind)
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]oracle.Kind{
		"": oracle.KindBPCG, "BPCG": oracle.KindBPCG, "pcg": oracle.KindPCG, "cg": oracle.KindCG, "Abm": oracle.KindABM,
	} {
		got, err := oracle.ParseKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := oracle.ParseKind("external")
	assert.ErrorIs(t, err, oracle.ErrUnknownKind)
}

func TestL1Projection(t *testing.T) {
	got, err := oracle.L1Projection([]float64{3, 1}, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 0}, got, 1e-12)

	got, err = oracle.L1Projection([]float64{-3, 1}, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-2, 0}, got, 1e-12)

	got, err = oracle.L1Projection([]float64{2, -2, 1}, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{4.0 / 3, -4.0 / 3, 1.0 / 3}, got, 1e-12)

	in := []float64{0.1, -0.2}
	got, err = oracle.L1Projection(in, 1)
	require.NoError(t, err)
	assert.Equal(t, in, got)
	got[0] = 9
	assert.Equal(t, 0.1, in[0], "inside points are copied")

	_, err = oracle.L1Projection(in, 0)
	assert.ErrorIs(t, err, oracle.ErrInvalidRadius)
}
