package terms_test

import (
	"testing"

	"github.com/katalvlaran/oavi/terms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexMap_Then(t *testing.T) {
	perm := terms.IndexMap{2, 0, 3, 1} // sort stage
	filter := terms.IndexMap{0, 2}     // keep positions 0 and 2 of the sorted slice

	composed, err := perm.Then(filter)
	require.NoError(t, err)
	assert.Equal(t, terms.IndexMap{2, 3}, composed)

	src := []string{"a", "b", "c", "d"}
	direct := make([]string, len(composed))
	for i, j := range composed {
		direct[i] = src[j]
	}
	staged := make([]string, len(filter))
	for i, j := range filter {
		staged[i] = src[perm[j]]
	}
	assert.Equal(t, staged, direct, "composition equals applying stages in turn")
}

func TestIndexMap_ThenOutOfRange(t *testing.T) {
	_, err := terms.IndexMap{0, 1}.Then(terms.IndexMap{2})
	assert.ErrorIs(t, err, terms.ErrIndexOutOfRange)
}

func TestIndexMap_Identity(t *testing.T) {
	m := terms.IdentityMap(4)
	assert.True(t, m.IsIdentity())

	composed, err := m.Then(terms.IndexMap{3, 1})
	require.NoError(t, err)
	assert.Equal(t, terms.IndexMap{3, 1}, composed)
	assert.False(t, composed.IsIdentity())
}

func TestGather(t *testing.T) {
	ts := []terms.Term{{1, 0}, {0, 1}, {1, 1}}
	cols := [][]float64{{1}, {2}, {3}}

	gotTerms, err := terms.GatherTerms(ts, terms.IndexMap{2, 0})
	require.NoError(t, err)
	assert.Equal(t, []terms.Term{{1, 1}, {1, 0}}, gotTerms)

	gotCols, err := terms.GatherColumns(cols, terms.IndexMap{1})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2}}, gotCols)

	_, err = terms.GatherColumns(cols, terms.IndexMap{-1})
	assert.ErrorIs(t, err, terms.ErrIndexOutOfRange)
}
