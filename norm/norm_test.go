package norm_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/thermograph/norm"
	"github.com/katalvlaran/thermograph/rag"
)

// corpus3 builds three graphs carrying the given attribute triples.
func corpus3(rows ...[3]float64) rag.Corpus {
	c := make(rag.Corpus, 0, len(rows))
	for _, r := range rows {
		c = append(c, &rag.Graph{
			Nodes: []rag.Node{{Mean: r[0]}, {Mean: r[1]}, {Mean: r[2]}},
			Edges: []rag.Edge{{U: 0, V: 1, Weight: 1}, {U: 1, V: 2, Weight: 1}},
		})
	}
	return c
}

// TestCompute_PooledStats checks the pooled mean/std over [1..9].
func TestCompute_PooledStats(t *testing.T) {
	c := corpus3([3]float64{1, 2, 3}, [3]float64{4, 5, 6}, [3]float64{7, 8, 9})

	s, err := norm.Compute(c)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	// Population std of 1..9: sqrt(60/9).
	assert.InDelta(t, math.Sqrt(60.0/9.0), s.Std, 1e-12)
}

// TestNormalize_RoundTrip verifies normalize-then-denormalize is exact to 1e-6.
func TestNormalize_RoundTrip(t *testing.T) {
	c := corpus3([3]float64{1, 2, 3}, [3]float64{4, 5, 6}, [3]float64{7, 8, 9})
	s, err := norm.Compute(c)
	require.NoError(t, err)

	nc, err := norm.Normalize(c, s)
	require.NoError(t, err)

	// Originals untouched.
	assert.Equal(t, 1.0, c[0].Nodes[0].Mean)

	norm.Denormalize(nc, s)
	for gi, g := range nc {
		for ni, nd := range g.Nodes {
			assert.InDelta(t, c[gi].Nodes[ni].Mean, nd.Mean, 1e-6)
		}
	}
}

// TestNormalize_ZeroStd fails on a zero-variance corpus.
func TestNormalize_ZeroStd(t *testing.T) {
	c := corpus3([3]float64{5, 5, 5})
	s, err := norm.Compute(c)
	require.NoError(t, err)
	require.Zero(t, s.Std)

	_, err = norm.Normalize(c, s)
	assert.ErrorIs(t, err, norm.ErrZeroStd)
}

// TestCompute_EmptyCorpus flags corpora without nodes.
func TestCompute_EmptyCorpus(t *testing.T) {
	_, err := norm.Compute(rag.Corpus{})
	assert.ErrorIs(t, err, norm.ErrEmptyCorpus)

	_, err = norm.Compute(rag.Corpus{{}})
	assert.ErrorIs(t, err, norm.ErrEmptyCorpus)
}

// TestNormalize_PreservesStructure keeps node order and edges intact.
func TestNormalize_PreservesStructure(t *testing.T) {
	c := corpus3([3]float64{1, 2, 3})
	s, err := norm.Compute(c)
	require.NoError(t, err)

	nc, err := norm.Normalize(c, s)
	require.NoError(t, err)
	require.Len(t, nc, 1)
	assert.Equal(t, c[0].Edges, nc[0].Edges)
	assert.Equal(t, c[0].NumNodes(), nc[0].NumNodes())
}
