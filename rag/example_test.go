// File: rag/example_test.go
package rag_test

import (
	"fmt"

	"github.com/katalvlaran/thermograph/field"
	"github.com/katalvlaran/thermograph/rag"
)

////////////////////////////////////////////////////////////////////////////////
// Example: Build
////////////////////////////////////////////////////////////////////////////////

// ExampleBuild demonstrates turning a labeled scalar field into a
// region-adjacency graph.
// Scenario:
//
//   - A 2×4 field partitioned into four single-column regions.
//   - Regions 2 and 3 carry the identical mean 3, so their shared edge
//     weighs 0; every other touching pair weighs 1.
//
// Complexity: O(H·W + E log E), Memory: O(H·W)
func ExampleBuild() {
	f := field.Field{
		{1, 2, 3, 3},
		{1, 2, 3, 3},
	}
	labels := [][]int{
		{0, 1, 2, 3},
		{0, 1, 2, 3},
	}

	g, _ := rag.Build(f, labels, rag.DefaultBuildOptions())

	fmt.Println("nodes:", g.NumNodes())
	for _, e := range g.Edges {
		fmt.Printf("edge (%d,%d) weight %v\n", e.U, e.V, e.Weight)
	}

	// Output:
	// nodes: 4
	// edge (0,1) weight 1
	// edge (1,2) weight 1
	// edge (2,3) weight 0
}
