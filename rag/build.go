package rag

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/thermograph/field"
)

// BuildOptions tunes region-graph construction.
type BuildOptions struct {
	// FirstEdgeOnly reproduces the legacy weight loop: only the first edge
	// in sorted order receives the computed 0/1 weight; the rest default
	// to 1. Leave false to weight every edge.
	FirstEdgeOnly bool
}

// DefaultBuildOptions weights every edge.
func DefaultBuildOptions() BuildOptions { return BuildOptions{} }

// Build derives the region-adjacency graph of f under the given pixel
// labeling. Node i carries the arithmetic mean of all pixels labeled i;
// an edge joins every pair of regions sharing a 4-neighbor boundary, with
// weight 0 iff the two means are identical and 1 otherwise.
//
// Complexity: O(H×W + E log E).
func Build(f field.Field, labels [][]int, opts BuildOptions) (*Graph, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	h, w := f.Height(), f.Width()
	if len(labels) != h {
		return nil, fmt.Errorf("rag: %d label rows for %d field rows: %w", len(labels), h, ErrLabelShape)
	}

	// First pass: label range, per-region sums and counts.
	n := 0
	for y := 0; y < h; y++ {
		if len(labels[y]) != w {
			return nil, fmt.Errorf("rag: label row %d has %d cols, want %d: %w", y, len(labels[y]), w, ErrLabelShape)
		}
		for x := 0; x < w; x++ {
			l := labels[y][x]
			if l < 0 {
				return nil, fmt.Errorf("rag: negative label %d at (%d,%d): %w", l, x, y, ErrLabelRange)
			}
			if l+1 > n {
				n = l + 1
			}
		}
	}
	sums := make([]float64, n)
	counts := make([]int, n)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			l := labels[y][x]
			sums[l] += f[y][x]
			counts[l]++
		}
	}
	nodes := make([]Node, n)
	for i := 0; i < n; i++ {
		if counts[i] == 0 {
			return nil, fmt.Errorf("rag: label %d has no pixels: %w", i, ErrLabelRange)
		}
		nodes[i] = Node{Mean: sums[i] / float64(counts[i])}
	}

	// Second pass: boundary adjacency over E and S neighbors.
	adj := make(map[[2]int]struct{})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := labels[y][x]
			if x+1 < w {
				if b := labels[y][x+1]; b != a {
					adj[pairKey(a, b)] = struct{}{}
				}
			}
			if y+1 < h {
				if b := labels[y+1][x]; b != a {
					adj[pairKey(a, b)] = struct{}{}
				}
			}
		}
	}

	edges := make([]Edge, 0, len(adj))
	for k := range adj {
		edges = append(edges, Edge{U: k[0], V: k[1], Weight: 1})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].U != edges[j].U {
			return edges[i].U < edges[j].U
		}
		return edges[i].V < edges[j].V
	})

	for i := range edges {
		diff := math.Abs(nodes[edges[i].U].Mean - nodes[edges[i].V].Mean)
		if diff <= 0 {
			edges[i].Weight = 0
		} else {
			edges[i].Weight = 1
		}
		if opts.FirstEdgeOnly {
			break
		}
	}

	return &Graph{Nodes: nodes, Edges: edges}, nil
}

// pairKey orders two labels as an undirected edge key.
func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
