// Package recon runs a trained autoencoder in inference mode over a
// normalized corpus and materializes reconstructed region graphs.
//
// The two variants reconstruct different halves of a graph, by design:
//
//   - VariantGCN rebuilds structure: the edge set becomes every node pair
//     whose predicted adjacency score exceeds EdgeThreshold, while node
//     attributes are copied from the (normalized) input unchanged.
//   - VariantGAT rebuilds attributes: the decoder output replaces node
//     attributes, while the edge set is copied from the input unchanged.
//
// Outputs live in normalized space; callers denormalize them (norm
// package) before comparing against the original corpus. Node count and
// ordering are always preserved.
package recon

import (
	"github.com/katalvlaran/thermograph/autograd"
	"github.com/katalvlaran/thermograph/gnn"
	"github.com/katalvlaran/thermograph/rag"
)

// EdgeThreshold is the adjacency-score cutoff above which a node pair
// becomes an edge in VariantGCN reconstructions.
const EdgeThreshold = 0.5

// Reconstruct maps each graph of the normalized corpus through the model
// without recording gradients. The result is index-aligned with the input.
func Reconstruct(model gnn.AutoEncoder, corpus rag.Corpus) rag.Corpus {
	model.SetTraining(false)
	out := make(rag.Corpus, len(corpus))
	for i, g := range corpus {
		out[i] = reconstructOne(model, g)
	}
	return out
}

func reconstructOne(model gnn.AutoEncoder, g *rag.Graph) *rag.Graph {
	gt := gnn.FromGraph(g)
	tape := autograd.NoGrad()
	decoded := model.Decode(tape, gt, model.Encode(tape, gt))

	rec := &rag.Graph{Nodes: make([]rag.Node, g.NumNodes())}
	copy(rec.Nodes, g.Nodes)

	if model.Variant() == gnn.VariantGCN {
		// Structure from the thresholded score matrix; attributes kept.
		n := g.NumNodes()
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				if decoded.Value.At(u, v) > EdgeThreshold {
					rec.Edges = append(rec.Edges, rag.Edge{U: u, V: v, Weight: 1})
				}
			}
		}
		return rec
	}

	// Attributes from the decoder; structure kept.
	rec.Edges = make([]rag.Edge, len(g.Edges))
	copy(rec.Edges, g.Edges)
	for i := range rec.Nodes {
		rec.Nodes[i].Mean = decoded.Value.At(i, 0)
	}
	return rec
}
