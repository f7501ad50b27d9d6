package segment

import (
	"math"
	"sort"

	"github.com/katalvlaran/thermograph/field"
)

// conn4 is the orthogonal neighborhood used for component labeling and
// region adjacency: N, E, S, W.
var conn4 = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Quantize is the built-in Segmenter: it smooths the field with a box blur
// of radius ⌈Sigma⌉, buckets values into ⌊Scale⌋ levels, labels 4-connected
// components of equal level, and merges regions smaller than MinSize into
// the neighbor they share the longest boundary with.
type Quantize struct {
	Params Params
}

// NewQuantize returns a Quantize segmenter with the given parameters.
func NewQuantize(p Params) *Quantize { return &Quantize{Params: p} }

// Segment implements Segmenter.
//
// Labels are dense 0..K-1 in row-major order of each region's first pixel.
// Complexity: O(H×W×(r²+1)) with blur radius r; memory O(H×W).
func (q *Quantize) Segment(f field.Field) ([][]int, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := q.Params.Validate(); err != nil {
		return nil, err
	}
	h, w := f.Height(), f.Width()

	smoothed := boxBlur(f, int(math.Ceil(q.Params.Sigma)))
	levels := quantize(smoothed, int(q.Params.Scale))
	labels, count := labelComponents(levels, h, w)
	if q.Params.MinSize > 1 {
		count = mergeSmall(labels, h, w, count, q.Params.MinSize)
	}
	relabelDense(labels, h, w, count)
	return labels, nil
}

// boxBlur averages each cell over a (2r+1)² window clipped to the field.
// r == 0 returns a copy of f.
func boxBlur(f field.Field, r int) [][]float64 {
	h, w := f.Height(), f.Width()
	out := make([][]float64, h)
	for y := 0; y < h; y++ {
		out[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			if r == 0 {
				out[y][x] = f[y][x]
				continue
			}
			sum, n := 0.0, 0
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					yy, xx := y+dy, x+dx
					if yy < 0 || yy >= h || xx < 0 || xx >= w {
						continue
					}
					sum += f[yy][xx]
					n++
				}
			}
			out[y][x] = sum / float64(n)
		}
	}
	return out
}

// quantize buckets values into at most `levels` equal-width bins over the
// observed value range. A constant field maps entirely to level 0.
func quantize(vals [][]float64, levels int) [][]int {
	if levels < 1 {
		levels = 1
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range vals {
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	out := make([][]int, len(vals))
	span := hi - lo
	for y, row := range vals {
		out[y] = make([]int, len(row))
		if span == 0 {
			continue
		}
		for x, v := range row {
			lvl := int(float64(levels) * (v - lo) / span)
			if lvl >= levels {
				lvl = levels - 1
			}
			out[y][x] = lvl
		}
	}
	return out
}

// labelComponents assigns one label per 4-connected component of equal
// quantization level, in row-major discovery order (BFS flood fill).
func labelComponents(levels [][]int, h, w int) ([][]int, int) {
	labels := make([][]int, h)
	for y := range labels {
		labels[y] = make([]int, w)
		for x := range labels[y] {
			labels[y][x] = -1
		}
	}
	next := 0
	var queue [][2]int
	for y0 := 0; y0 < h; y0++ {
		for x0 := 0; x0 < w; x0++ {
			if labels[y0][x0] != -1 {
				continue
			}
			lvl := levels[y0][x0]
			labels[y0][x0] = next
			queue = append(queue[:0], [2]int{x0, y0})
			for qi := 0; qi < len(queue); qi++ {
				ux, uy := queue[qi][0], queue[qi][1]
				for _, d := range conn4 {
					vx, vy := ux+d[0], uy+d[1]
					if vx < 0 || vx >= w || vy < 0 || vy >= h {
						continue
					}
					if labels[vy][vx] != -1 || levels[vy][vx] != lvl {
						continue
					}
					labels[vy][vx] = next
					queue = append(queue, [2]int{vx, vy})
				}
			}
			next++
		}
	}
	return labels, next
}

// mergeSmall folds every region smaller than minSize into the neighbor it
// shares the longest boundary with, smallest regions first. Regions with no
// neighbor (a single-region field) are kept as-is. Returns the new region
// count upper bound (labels stay sparse until relabelDense).
func mergeSmall(labels [][]int, h, w, count, minSize int) int {
	parent := make([]int, count)
	size := make([]int, count)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			size[labels[y][x]]++
		}
	}

	// boundary[a][b] = shared boundary length between regions a and b.
	boundary := make([]map[int]int, count)
	for i := range boundary {
		boundary[i] = make(map[int]int)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := labels[y][x]
			for _, d := range conn4[1:3] { // E and S once per pair
				vx, vy := x+d[0], y+d[1]
				if vx >= w || vy >= h {
					continue
				}
				b := labels[vy][vx]
				if a != b {
					boundary[a][b]++
					boundary[b][a]++
				}
			}
		}
	}

	order := make([]int, count)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		if size[order[i]] != size[order[j]] {
			return size[order[i]] < size[order[j]]
		}
		return order[i] < order[j]
	})

	for _, r := range order {
		root := find(r)
		if size[root] >= minSize {
			continue
		}
		// Pick the neighbor with the longest shared boundary,
		// lowest label breaking ties.
		best, bestLen := -1, 0
		for nb, l := range boundary[r] {
			nb = find(nb)
			if nb == root {
				continue
			}
			if l > bestLen || (l == bestLen && (best == -1 || nb < best)) {
				best, bestLen = nb, l
			}
		}
		if best == -1 {
			continue
		}
		parent[root] = best
		size[best] += size[root]
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			labels[y][x] = find(labels[y][x])
		}
	}
	return count
}

// relabelDense rewrites labels to dense 0..K-1 in row-major order of each
// region's first pixel.
func relabelDense(labels [][]int, h, w, count int) {
	remap := make([]int, count)
	for i := range remap {
		remap[i] = -1
	}
	next := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if remap[labels[y][x]] == -1 {
				remap[labels[y][x]] = next
				next++
			}
			labels[y][x] = remap[labels[y][x]]
		}
	}
}
