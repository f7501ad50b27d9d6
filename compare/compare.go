package compare

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/thermograph/rag"
)

// Sentinel errors for evaluation.
var (
	// ErrLengthMismatch indicates the two corpora cannot be index-aligned.
	ErrLengthMismatch = errors.New("compare: corpora differ in length")
	// ErrEmptyEdgeSets indicates both edge sets are empty, so the
	// consistency ratio is undefined.
	ErrEmptyEdgeSets = errors.New("compare: both edge sets empty, consistency ratio undefined")
	// ErrNoDifferences indicates no comparable attribute differences were
	// pooled, so a proportion is undefined.
	ErrNoDifferences = errors.New("compare: no comparable attribute differences pooled")
	// ErrBadBins indicates a non-positive histogram bin count.
	ErrBadBins = errors.New("compare: histogram bin count must be positive")
)

// Report holds per-graph similarity measures. FeatureMAE and FeatureSTD
// are only meaningful when Comparable is true (equal node counts).
type Report struct {
	Index      int
	NodeDiff   int
	EdgeDiff   int
	Comparable bool
	FeatureMAE float64
	FeatureSTD float64
}

// Graphs compares original and reconstructed corpora pairwise.
// A node-count mismatch is not an error: the pair's report is flagged
// not-comparable and feature errors are left NaN.
func Graphs(orig, rec rag.Corpus) ([]Report, error) {
	if len(orig) != len(rec) {
		return nil, fmt.Errorf("compare: %d original vs %d reconstructed: %w", len(orig), len(rec), ErrLengthMismatch)
	}
	reports := make([]Report, len(orig))
	for i := range orig {
		reports[i] = graphReport(i, orig[i], rec[i])
	}
	return reports, nil
}

func graphReport(i int, o, r *rag.Graph) Report {
	rep := Report{
		Index:      i,
		NodeDiff:   abs(o.NumNodes() - r.NumNodes()),
		EdgeDiff:   abs(o.NumEdges() - r.NumEdges()),
		FeatureMAE: math.NaN(),
		FeatureSTD: math.NaN(),
	}
	if o.NumNodes() != r.NumNodes() {
		return rep
	}
	rep.Comparable = true
	diffs := make([]float64, o.NumNodes())
	sumAbs := 0.0
	for n := range o.Nodes {
		diffs[n] = o.Nodes[n].Mean - r.Nodes[n].Mean
		sumAbs += math.Abs(diffs[n])
	}
	rep.FeatureMAE = sumAbs / float64(len(diffs))
	rep.FeatureSTD = stat.PopStdDev(diffs, nil)
	return rep
}

// EdgeReport breaks a graph pair's edge sets into consistent and
// one-sided counts plus their Jaccard ratio.
type EdgeReport struct {
	Index             int
	Consistent        int
	OnlyOriginal      int
	OnlyReconstructed int
	Ratio             float64
}

// Consistency returns the Jaccard index |A∩B| / |A∪B| over the two
// graphs' canonical edge sets. Both sets empty is undefined and yields
// ErrEmptyEdgeSets; the ratio is otherwise in [0, 1], exactly 1 for
// identical sets.
func Consistency(a, b *rag.Graph) (EdgeReport, error) {
	sa, sb := a.EdgeSet(), b.EdgeSet()
	var rep EdgeReport
	for e := range sa {
		if _, ok := sb[e]; ok {
			rep.Consistent++
		} else {
			rep.OnlyOriginal++
		}
	}
	rep.OnlyReconstructed = len(sb) - rep.Consistent

	union := len(sa) + len(sb) - rep.Consistent
	if union == 0 {
		return rep, ErrEmptyEdgeSets
	}
	rep.Ratio = float64(rep.Consistent) / float64(union)
	return rep, nil
}

// EdgeConsistency pairs the corpora and reports each graph's edge-set
// consistency. The empty-union guard propagates with the graph index.
func EdgeConsistency(orig, rec rag.Corpus) ([]EdgeReport, error) {
	if len(orig) != len(rec) {
		return nil, fmt.Errorf("compare: %d original vs %d reconstructed: %w", len(orig), len(rec), ErrLengthMismatch)
	}
	reports := make([]EdgeReport, len(orig))
	for i := range orig {
		rep, err := Consistency(orig[i], rec[i])
		if err != nil {
			return nil, fmt.Errorf("compare: graph %d: %w", i, err)
		}
		rep.Index = i
		reports[i] = rep
	}
	return reports, nil
}

// ExceedanceProportion pools |original − reconstructed| over every node of
// every comparable pair and returns the fraction exceeding threshold,
// together with the pooled differences (histogram input). Pairs with
// mismatched node counts are skipped; pooling nothing at all yields
// ErrNoDifferences.
func ExceedanceProportion(orig, rec rag.Corpus, threshold float64) (float64, []float64, error) {
	if len(orig) != len(rec) {
		return 0, nil, fmt.Errorf("compare: %d original vs %d reconstructed: %w", len(orig), len(rec), ErrLengthMismatch)
	}
	var diffs []float64
	above := 0
	for i := range orig {
		if orig[i].NumNodes() != rec[i].NumNodes() {
			continue
		}
		for n := range orig[i].Nodes {
			d := math.Abs(orig[i].Nodes[n].Mean - rec[i].Nodes[n].Mean)
			diffs = append(diffs, d)
			if d > threshold {
				above++
			}
		}
	}
	if len(diffs) == 0 {
		return 0, nil, ErrNoDifferences
	}
	return float64(above) / float64(len(diffs)), diffs, nil
}

// Histogram bins the pooled differences into `bins` equal-width intervals
// spanning their observed range. It returns the per-bin counts and the
// bin dividers (len(counts)+1 values).
func Histogram(diffs []float64, bins int) (counts, dividers []float64, err error) {
	if bins <= 0 {
		return nil, nil, ErrBadBins
	}
	if len(diffs) == 0 {
		return nil, nil, ErrNoDifferences
	}
	lo, hi := diffs[0], diffs[0]
	for _, d := range diffs {
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	// Nudge the top divider so the maximum lands inside the last bin.
	span := hi - lo
	if span == 0 {
		span = 1
	}
	top := hi + span*1e-9

	dividers = make([]float64, bins+1)
	for i := 0; i <= bins; i++ {
		dividers[i] = lo + (top-lo)*float64(i)/float64(bins)
	}
	sorted := append([]float64(nil), diffs...)
	sort.Float64s(sorted)
	counts = stat.Histogram(nil, dividers, sorted, nil)
	return counts, dividers, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
