// Package compare evaluates reconstruction fidelity over pairs of
// original and reconstructed region graphs, index-aligned by corpus
// position. All functions are pure.
//
// What:
//
//   - Graphs: node/edge count deltas plus feature MAE and the standard
//     deviation of per-node attribute differences. Feature error is only
//     defined when node counts match; otherwise the report is flagged
//     not-comparable rather than failing the run.
//   - Consistency: the Jaccard index over the two graphs' canonical edge
//     sets, with the empty-union case surfaced as ErrEmptyEdgeSets
//     instead of a division by zero.
//   - ExceedanceProportion: the fraction of per-node attribute
//     differences, pooled across the whole corpus, exceeding a fixed
//     physical threshold; it also returns the pooled differences for
//     histogramming.
//   - Histogram: evenly divided bins over the pooled differences, ready
//     to render as the difference-distribution plot.
//
// Errors:
//
//   - ErrLengthMismatch: corpora of different lengths cannot be paired.
//   - ErrEmptyEdgeSets: both edge sets empty; the ratio is undefined.
//   - ErrNoDifferences: nothing pooled, proportion undefined.
//   - ErrBadBins: non-positive histogram bin count.
package compare
