package rag

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for region-graph construction and validation.
var (
	// ErrLabelShape indicates the labeling's shape differs from the field's.
	ErrLabelShape = errors.New("rag: labeling shape does not match field shape")
	// ErrLabelRange indicates a negative label or a gap in the label range.
	ErrLabelRange = errors.New("rag: region labels must be dense 0..K-1")
	// ErrEdgeRange indicates an edge endpoint outside the node range.
	ErrEdgeRange = errors.New("rag: edge references a node outside [0, N)")
	// ErrNoNodes indicates a graph without a single region.
	ErrNoNodes = errors.New("rag: graph must have at least one node")
)

// Node is one segmented region, carrying the arithmetic mean of its pixels.
type Node struct {
	Mean float64 `json:"mean"`
}

// Edge connects two adjacent regions. U < V always holds.
// Weight is binary: 0 when the two regions' means are identical, 1 otherwise.
type Edge struct {
	U      int     `json:"u"`
	V      int     `json:"v"`
	Weight float64 `json:"w"`
}

// Graph is an undirected region-adjacency graph. Node index == region label.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Corpus is an ordered sequence of graphs built from one field stack with
// one segmentation parameter set.
type Corpus []*Graph

// NumNodes returns the node count.
func (g *Graph) NumNodes() int { return len(g.Nodes) }

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int { return len(g.Edges) }

// Clone returns a deep copy of g.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	copy(c.Nodes, g.Nodes)
	copy(c.Edges, g.Edges)
	return c
}

// Clone returns a deep copy of the corpus.
func (c Corpus) Clone() Corpus {
	out := make(Corpus, len(c))
	for i, g := range c {
		out[i] = g.Clone()
	}
	return out
}

// Validate checks that the graph has nodes and that every edge honors the
// endpoint range and the U < V invariant.
func (g *Graph) Validate() error {
	n := len(g.Nodes)
	if n == 0 {
		return ErrNoNodes
	}
	for _, e := range g.Edges {
		if e.U < 0 || e.V >= n || e.U >= e.V {
			return fmt.Errorf("rag: edge (%d,%d) in %d-node graph: %w", e.U, e.V, n, ErrEdgeRange)
		}
	}
	return nil
}

// EdgeSet returns the canonical edge set of g, keyed by (U, V) with U < V.
func (g *Graph) EdgeSet() map[[2]int]struct{} {
	set := make(map[[2]int]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		set[[2]int{e.U, e.V}] = struct{}{}
	}
	return set
}

// AdjacencyMatrix exports the N×N weight matrix of g, mirrored so that
// entry (u,v) equals entry (v,u). Weight-0 edges contribute 0, making the
// matrix the exact 0/1 target the inner-product decoder is scored against.
//
// Complexity: O(N² + E) time, O(N²) memory.
func (g *Graph) AdjacencyMatrix() *mat.Dense {
	n := len(g.Nodes)
	m := mat.NewDense(n, n, nil)
	for _, e := range g.Edges {
		m.Set(e.U, e.V, e.Weight)
		m.Set(e.V, e.U, e.Weight)
	}
	return m
}
