package metrics_test

import (
	"testing"

	"github.com/katalvlaran/oavi/gram"
	"github.com/katalvlaran/oavi/ideal"
	"github.com/katalvlaran/oavi/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func binarySquare() *mat.Dense {
	return mat.NewDense(4, 2, []float64{0, 0, 0, 1, 1, 0, 1, 1})
}

// TestCollector_BinarySquare: two terms join O at degree 1, three vanish at
// degree 2.
func TestCollector_BinarySquare(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.New(reg)
	require.NoError(t, err)

	_, err = ideal.New(ideal.WithObserver(c)).Fit(binarySquare())
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Terms.WithLabelValues("1", metrics.OutcomeOrder)))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.Terms.WithLabelValues("2", metrics.OutcomeVanishing)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Degrees))
	assert.Zero(t, testutil.ToFloat64(c.Purged))
	assert.Zero(t, testutil.ToFloat64(c.Unconverged))
	assert.Equal(t, 1, testutil.CollectAndCount(c.Iterations))
}

func TestCollector_InverseDrops(t *testing.T) {
	c, err := metrics.New(nil)
	require.NoError(t, err)

	_, err = ideal.New(
		ideal.WithConstantTerm(),
		ideal.WithInverseBoost(gram.InverseWeak),
		ideal.WithWeakCap(1),
		ideal.WithObserver(c),
	).Fit(binarySquare())
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.InverseDrops.WithLabelValues("cap")))
}

func TestCollector_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.New(reg)
	require.NoError(t, err)
	_, err = metrics.New(reg)
	assert.Error(t, err)
}

func TestCollector_Lint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.New(reg)
	require.NoError(t, err)
	c.TermClassified(1, true, 0.01, 3, true)

	problems, err := testutil.GatherAndLint(reg)
	require.NoError(t, err)
	assert.Empty(t, problems)
}
