// Package segment defines the segmentation collaborator consumed by the
// region-graph builder: something that partitions a scalar field's pixels
// into disjoint labeled regions.
//
// What:
//
//   - Params carries the externally configured segmentation knobs
//     (scale, smoothing, minimum region size) and renders the cache-key
//     fragment derived from them.
//   - Segmenter is the collaborator interface: Field in, dense labeling out.
//   - Quantize is the built-in Segmenter: box-blur smoothing, value
//     quantization, 4-connected component labeling, small-region merging.
//
// Why:
//
//   - The pipeline treats segmentation as an external pure function; tests
//     and the default driver still need a deterministic implementation.
//     Quantize is that stand-in; it is not meant to reproduce any
//     particular published segmentation algorithm's output.
//
// Complexity:
//
//   - Quantize.Segment: O(H×W×(r²+1)) with blur radius r; memory O(H×W).
//
// Errors:
//
//   - ErrBadParams: non-positive scale or negative sigma/min-size.
//   - field.ErrEmptyField / field.ErrRagged surface from input validation.
package segment
