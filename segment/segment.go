package segment

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/thermograph/field"
)

// ErrBadParams indicates segmentation parameters outside their valid range.
var ErrBadParams = errors.New("segment: scale must be positive, sigma and min size non-negative")

// Params are the externally configured segmentation knobs. They also key
// the on-disk graph-corpus cache, so two runs with equal Params may share
// cached graphs.
type Params struct {
	// Scale controls region granularity; Quantize interprets it as the
	// number of value levels, so a larger Scale yields finer regions.
	Scale float64
	// Sigma is the smoothing strength; Quantize box-blurs with radius ⌈Sigma⌉.
	Sigma float64
	// MinSize is the minimum pixel count of a surviving region.
	MinSize int
}

// DefaultParams returns the parameter set the experiments were run with:
// Scale=500, Sigma=1, MinSize=100.
func DefaultParams() Params {
	return Params{Scale: 500, Sigma: 1, MinSize: 100}
}

// Validate reports ErrBadParams for out-of-range values.
func (p Params) Validate() error {
	if p.Scale <= 0 || p.Sigma < 0 || p.MinSize < 0 {
		return fmt.Errorf("segment: %+v: %w", p, ErrBadParams)
	}
	return nil
}

// Key renders the filename fragment identifying this parameter set.
func (p Params) Key() string {
	return fmt.Sprintf("scale%v_sigma%v_min%d", p.Scale, p.Sigma, p.MinSize)
}

// Segmenter partitions a field's pixels into disjoint labeled regions.
//
// The returned labeling has the field's shape and uses dense region labels
// 0..K-1, assigned in row-major order of each region's first pixel, so the
// node ordering of graphs built from it is reproducible.
type Segmenter interface {
	Segment(f field.Field) ([][]int, error)
}
