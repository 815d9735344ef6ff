package gram_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/oavi/gram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-9

// randomColumns returns m deterministic pseudo-random columns of height k.
func randomColumns(k, m int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	cols := make([][]float64, m)
	for j := range cols {
		cols[j] = make([]float64, k)
		for i := range cols[j] {
			cols[j][i] = rng.NormFloat64()
		}
	}

	return cols
}

// denseFromColumns assembles a k×m gonum matrix from columns.
func denseFromColumns(cols [][]float64) *mat.Dense {
	k, m := len(cols[0]), len(cols)
	a := mat.NewDense(k, m, nil)
	for j, c := range cols {
		a.SetCol(j, c)
	}

	return a
}

func rowsEqual(t *testing.T, want mat.Matrix, got [][]float64) {
	t.Helper()
	r, c := want.Dims()
	require.Len(t, got, r)
	for i := 0; i < r; i++ {
		require.Len(t, got[i], c)
		for j := 0; j < c; j++ {
			assert.InDelta(t, want.At(i, j), got[i][j], tol, "entry (%d,%d)", i, j)
		}
	}
}

// TestStream_GramEquivalence compares the streamed Gram matrix with the
// from-scratch product after every extension.
func TestStream_GramEquivalence(t *testing.T) {
	const k, m = 12, 6
	cols := randomColumns(k, m, 7)

	s, err := gram.New(k)
	require.NoError(t, err)
	for j, c := range cols {
		status, err := s.Append(c)
		require.NoError(t, err)
		assert.Equal(t, gram.StatusExtended, status)

		a := denseFromColumns(cols[:j+1])
		var want mat.Dense
		want.Mul(a.T(), a)
		rowsEqual(t, &want, s.Gram())
	}
	assert.Equal(t, m, s.Len())
	assert.Nil(t, s.Inverse(), "InverseNone keeps no inverse")
}

// TestStream_InverseEquivalence compares the streamed inverse with a fresh
// gonum inverse while the columns stay independent.
func TestStream_InverseEquivalence(t *testing.T) {
	const k, m = 15, 7
	cols := randomColumns(k, m, 11)

	s, err := gram.New(k, gram.WithInverse(gram.InverseFull))
	require.NoError(t, err)
	for j, c := range cols {
		cross, err := s.Cross(c)
		require.NoError(t, err)
		var sq float64
		for _, v := range c {
			sq += v * v
		}
		status, err := s.Extend(c, cross, sq)
		require.NoError(t, err)
		require.False(t, status.Dropped())

		a := denseFromColumns(cols[:j+1])
		var g, want mat.Dense
		g.Mul(a.T(), a)
		require.NoError(t, want.Inverse(&g))
		rowsEqual(t, &want, s.Inverse())
	}
	assert.True(t, s.InverseActive())
}

// TestStream_DropsOnDependentColumn appends a linear combination of earlier
// columns; the inverse must be dropped while G keeps growing.
func TestStream_DropsOnDependentColumn(t *testing.T) {
	const k = 8
	cols := randomColumns(k, 2, 3)
	dependent := make([]float64, k)
	for i := range dependent {
		dependent[i] = 2*cols[0][i] - cols[1][i]
	}

	s, err := gram.New(k, gram.WithInverse(gram.InverseFull))
	require.NoError(t, err)
	for _, c := range cols {
		_, err = s.Append(c)
		require.NoError(t, err)
	}
	status, err := s.Append(dependent)
	require.NoError(t, err)
	assert.Equal(t, gram.StatusDroppedUnstable, status)
	assert.False(t, s.InverseActive())
	assert.Nil(t, s.Inverse())
	assert.Len(t, s.Gram(), 3)

	// Once dropped, later extensions never bring it back.
	status, err = s.Append(randomColumns(k, 1, 99)[0])
	require.NoError(t, err)
	assert.Equal(t, gram.StatusExtended, status)
	assert.False(t, s.InverseActive())
}

// TestStream_WeakCap drops the inverse when the order would exceed the cap.
func TestStream_WeakCap(t *testing.T) {
	const k = 10
	cols := randomColumns(k, 3, 5)

	s, err := gram.New(k, gram.WithInverse(gram.InverseWeak), gram.WithWeakCap(2))
	require.NoError(t, err)
	for _, c := range cols[:2] {
		status, err := s.Append(c)
		require.NoError(t, err)
		assert.Equal(t, gram.StatusExtended, status)
	}
	assert.True(t, s.InverseActive())

	status, err := s.Append(cols[2])
	require.NoError(t, err)
	assert.Equal(t, gram.StatusDroppedCap, status)
	assert.False(t, s.InverseActive())
}

// TestStream_ZeroFirstColumn cannot be inverted: dropped, not an error.
func TestStream_ZeroFirstColumn(t *testing.T) {
	s, err := gram.New(3, gram.WithInverse(gram.InverseFull))
	require.NoError(t, err)
	status, err := s.Append([]float64{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, gram.StatusDroppedUnstable, status)
}

func TestStream_DimensionMismatch(t *testing.T) {
	s, err := gram.New(3)
	require.NoError(t, err)

	_, err = s.Cross([]float64{1, 2})
	assert.ErrorIs(t, err, gram.ErrDimensionMismatch)

	_, err = s.Extend([]float64{1, 2, 3}, []float64{1}, 14)
	assert.ErrorIs(t, err, gram.ErrDimensionMismatch)
	assert.Zero(t, s.Len(), "no state change on error")

	_, err = gram.New(0)
	assert.ErrorIs(t, err, gram.ErrDimensionMismatch)
}

func TestParseInverseMode(t *testing.T) {
	for in, want := range map[string]gram.InverseMode{
		"": gram.InverseNone, "none": gram.InverseNone, "Weak": gram.InverseWeak, "FULL": gram.InverseFull,
	} {
		got, err := gram.ParseInverseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.NotEqual(t, "unknown", got.String())
	}
	_, err := gram.ParseInverseMode("sometimes")
	assert.ErrorIs(t, err, gram.ErrUnknownMode)
}

func TestOptions_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "gram: WithWeakCap: cap must be > 0", func() { gram.WithWeakCap(0) })
	assert.Panics(t, func() { gram.WithThreshold(-1) })
	assert.Panics(t, func() { gram.WithInverse(gram.InverseMode(9)) })
}
