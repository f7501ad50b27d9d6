package rag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/thermograph/field"
	"github.com/katalvlaran/thermograph/rag"
)

// strip4 partitions a 2x4 field into four single-column regions with
// means 1, 2, 3, 3: three touching pairs, the last with identical means.
var (
	strip4 = field.Field{
		{1, 2, 3, 3},
		{1, 2, 3, 3},
	}
	strip4Labels = [][]int{
		{0, 1, 2, 3},
		{0, 1, 2, 3},
	}
)

// TestBuild_FourRegions checks node means, the three boundary edges, and
// the zero weight on the identical-mean pair when every edge is processed.
func TestBuild_FourRegions(t *testing.T) {
	g, err := rag.Build(strip4, strip4Labels, rag.DefaultBuildOptions())
	require.NoError(t, err)

	require.Equal(t, 4, g.NumNodes())
	assert.Equal(t, []rag.Node{{Mean: 1}, {Mean: 2}, {Mean: 3}, {Mean: 3}}, g.Nodes)

	want := []rag.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 1, V: 2, Weight: 1},
		{U: 2, V: 3, Weight: 0},
	}
	assert.Equal(t, want, g.Edges)
}

// TestBuild_FirstEdgeOnly reproduces the legacy weight loop: only (0,1) is
// weighted, the identical-mean pair (2,3) keeps the default weight 1.
func TestBuild_FirstEdgeOnly(t *testing.T) {
	g, err := rag.Build(strip4, strip4Labels, rag.BuildOptions{FirstEdgeOnly: true})
	require.NoError(t, err)

	want := []rag.Edge{
		{U: 0, V: 1, Weight: 1},
		{U: 1, V: 2, Weight: 1},
		{U: 2, V: 3, Weight: 1},
	}
	assert.Equal(t, want, g.Edges)
}

// TestBuild_WeightsBinaryAndSymmetric verifies weight(a,b) == weight(b,a)
// in the exported adjacency matrix and that every weight is 0 or 1.
func TestBuild_WeightsBinaryAndSymmetric(t *testing.T) {
	g, err := rag.Build(strip4, strip4Labels, rag.DefaultBuildOptions())
	require.NoError(t, err)

	m := g.AdjacencyMatrix()
	n := g.NumNodes()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := m.At(i, j)
			assert.Equal(t, v, m.At(j, i), "adjacency must be symmetric")
			assert.True(t, v == 0 || v == 1, "weights must be binary, got %v", v)
		}
	}
	assert.Equal(t, 1.0, m.At(0, 1))
	assert.Equal(t, 0.0, m.At(2, 3), "identical means yield weight 0")
	assert.Equal(t, 0.0, m.At(0, 2), "non-adjacent regions stay 0")
}

// TestBuild_Errors covers shape and label-range failures.
func TestBuild_Errors(t *testing.T) {
	t.Run("LabelShape", func(t *testing.T) {
		_, err := rag.Build(strip4, [][]int{{0, 1, 2, 3}}, rag.DefaultBuildOptions())
		assert.ErrorIs(t, err, rag.ErrLabelShape)
	})
	t.Run("NegativeLabel", func(t *testing.T) {
		bad := [][]int{{0, -1, 2, 3}, {0, 1, 2, 3}}
		_, err := rag.Build(strip4, bad, rag.DefaultBuildOptions())
		assert.ErrorIs(t, err, rag.ErrLabelRange)
	})
	t.Run("LabelGap", func(t *testing.T) {
		bad := [][]int{{0, 1, 2, 4}, {0, 1, 2, 4}}
		_, err := rag.Build(strip4, bad, rag.DefaultBuildOptions())
		assert.ErrorIs(t, err, rag.ErrLabelRange)
	})
	t.Run("EmptyField", func(t *testing.T) {
		_, err := rag.Build(field.Field{}, nil, rag.DefaultBuildOptions())
		assert.ErrorIs(t, err, field.ErrEmptyField)
	})
}

// TestGraph_CloneIndependence ensures Clone shares no backing storage.
func TestGraph_CloneIndependence(t *testing.T) {
	g, err := rag.Build(strip4, strip4Labels, rag.DefaultBuildOptions())
	require.NoError(t, err)

	c := g.Clone()
	c.Nodes[0].Mean = 99
	c.Edges[0].Weight = 0
	assert.Equal(t, 1.0, g.Nodes[0].Mean)
	assert.Equal(t, 1.0, g.Edges[0].Weight)
}

// TestGraph_Validate flags out-of-range edges and node-less graphs.
func TestGraph_Validate(t *testing.T) {
	g := &rag.Graph{
		Nodes: []rag.Node{{Mean: 1}, {Mean: 2}},
		Edges: []rag.Edge{{U: 0, V: 2, Weight: 1}},
	}
	assert.ErrorIs(t, g.Validate(), rag.ErrEdgeRange)

	g.Edges[0].V = 1
	assert.NoError(t, g.Validate())

	assert.ErrorIs(t, (&rag.Graph{}).Validate(), rag.ErrNoNodes)
}
