// Package norm z-score-normalizes node attributes across a graph corpus.
//
// What:
//
//   - Compute pools every node's mean attribute across the corpus and
//     returns the population mean and population standard deviation.
//   - Normalize returns an independent copy of the corpus with each
//     attribute replaced by (value − mean) / std.
//   - Denormalize inverts the transform in place; it is applied to
//     reconstructed graphs only, never to training inputs.
//
// Why:
//
//   - The autoencoders train on z-scored attributes; their reconstructions
//     live in the normalized space and must be mapped back to physical
//     units before comparison, so the stats must outlive training.
//
// Errors:
//
//   - ErrEmptyCorpus: no nodes to pool statistics over.
//   - ErrZeroStd: the pooled standard deviation is zero, so normalization
//     would divide by zero.
package norm

import (
	"errors"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/thermograph/rag"
)

// Sentinel errors for normalization.
var (
	// ErrEmptyCorpus indicates a corpus with no nodes at all.
	ErrEmptyCorpus = errors.New("norm: corpus holds no nodes")
	// ErrZeroStd indicates zero pooled variance; z-scoring is undefined.
	ErrZeroStd = errors.New("norm: zero standard deviation across corpus")
)

// Stats are pooled normalization statistics, computed once per corpus and
// retained for the lifetime of the experiment.
type Stats struct {
	Mean float64
	Std  float64
}

// Compute pools every node attribute across the corpus and returns the
// population mean and population standard deviation.
// Complexity: O(total nodes).
func Compute(c rag.Corpus) (Stats, error) {
	var vals []float64
	for _, g := range c {
		for _, nd := range g.Nodes {
			vals = append(vals, nd.Mean)
		}
	}
	if len(vals) == 0 {
		return Stats{}, ErrEmptyCorpus
	}
	return Stats{
		Mean: stat.Mean(vals, nil),
		Std:  stat.PopStdDev(vals, nil),
	}, nil
}

// Normalize returns a deep copy of c with every node attribute z-scored by s.
// The input corpus is left untouched. Fails with ErrZeroStd when s.Std == 0.
func Normalize(c rag.Corpus, s Stats) (rag.Corpus, error) {
	if s.Std == 0 {
		return nil, ErrZeroStd
	}
	out := c.Clone()
	for _, g := range out {
		for i := range g.Nodes {
			g.Nodes[i].Mean = (g.Nodes[i].Mean - s.Mean) / s.Std
		}
	}
	return out, nil
}

// Denormalize inverts the z-score transform in place: value*std + mean.
func Denormalize(c rag.Corpus, s Stats) {
	for _, g := range c {
		for i := range g.Nodes {
			g.Nodes[i].Mean = g.Nodes[i].Mean*s.Std + s.Mean
		}
	}
}
