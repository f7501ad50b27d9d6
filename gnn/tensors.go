package gnn

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/thermograph/autograd"
	"github.com/katalvlaran/thermograph/rag"
)

// Tensors are the model-facing view of one region graph: the attribute
// column, directed edge index pairs (each undirected edge in both
// directions, plus one self-loop per node), and the degree-normalized
// adjacency used by graph convolutions. Node order matches the graph's.
type Tensors struct {
	N   int
	X   *autograd.Tensor // N×1 node attributes (constant)
	Src  []int            // edge sources, length E' = 2E + N
	Dst  []int            // edge destinations, aligned with Src
	Ahat *autograd.Tensor // N×N normalized adjacency (constant)
}

// FromGraph lifts g into model tensors.
// Complexity: O(N² + E) time, O(N²) memory (dense Â).
func FromGraph(g *rag.Graph) *Tensors {
	n := g.NumNodes()
	x := mat.NewDense(n, 1, nil)
	for i, nd := range g.Nodes {
		x.Set(i, 0, nd.Mean)
	}

	src := make([]int, 0, 2*len(g.Edges)+n)
	dst := make([]int, 0, 2*len(g.Edges)+n)
	for _, e := range g.Edges {
		src = append(src, e.U, e.V)
		dst = append(dst, e.V, e.U)
	}
	for i := 0; i < n; i++ {
		src = append(src, i)
		dst = append(dst, i)
	}

	// Â = D^-1/2 (A+I) D^-1/2 over unweighted connectivity.
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		a.Set(i, i, 1)
	}
	for _, e := range g.Edges {
		a.Set(e.U, e.V, 1)
		a.Set(e.V, e.U, 1)
	}
	deg := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			deg[i] += a.At(i, j)
		}
	}
	for i := 0; i < n; i++ {
		di := 1 / math.Sqrt(deg[i])
		for j := 0; j < n; j++ {
			if v := a.At(i, j); v != 0 {
				a.Set(i, j, v*di/math.Sqrt(deg[j]))
			}
		}
	}

	return &Tensors{
		N:    n,
		X:    autograd.NewConst(x),
		Src:  src,
		Dst:  dst,
		Ahat: autograd.NewConst(a),
	}
}
