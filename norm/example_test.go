// File: norm/example_test.go
package norm_test

import (
	"fmt"

	"github.com/katalvlaran/thermograph/norm"
	"github.com/katalvlaran/thermograph/rag"
)

////////////////////////////////////////////////////////////////////////////////
// Example: Compute / Normalize / Denormalize
////////////////////////////////////////////////////////////////////////////////

// ExampleCompute demonstrates pooling statistics over a corpus, z-scoring
// a copy of it, and inverting the transform.
// Scenario:
//
//   - Three graphs with attributes [1,2,3], [4,5,6], [7,8,9].
//   - Pooled over all nine values: mean 5, population std ≈ 2.582.
//   - Denormalizing the normalized copy restores the original values.
//
// Complexity: O(total nodes)
func ExampleCompute() {
	corpus := rag.Corpus{
		{Nodes: []rag.Node{{Mean: 1}, {Mean: 2}, {Mean: 3}}},
		{Nodes: []rag.Node{{Mean: 4}, {Mean: 5}, {Mean: 6}}},
		{Nodes: []rag.Node{{Mean: 7}, {Mean: 8}, {Mean: 9}}},
	}

	stats, _ := norm.Compute(corpus)
	normed, _ := norm.Normalize(corpus, stats)
	norm.Denormalize(normed, stats)

	fmt.Printf("mean: %.0f\n", stats.Mean)
	fmt.Printf("std:  %.3f\n", stats.Std)
	fmt.Printf("round trip: %.0f\n", normed[2].Nodes[2].Mean)

	// Output:
	// mean: 5
	// std:  2.582
	// round trip: 9
}
