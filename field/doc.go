// Package field holds 2-D scalar-field snapshots (one time slice of a
// physical quantity sampled on a regular grid) and loads stacks of them
// from flat binary files.
//
// What:
//
//   - Field wraps a rectangular [][]float64 of samples; it is treated as
//     immutable once constructed.
//   - ReadStack reads a flat little-endian float32 file and reshapes it
//     into (time, height, width) slices, one Field per time step.
//
// Why:
//
//   - Simulation dumps and sensor archives commonly store field stacks as
//     raw float32 blobs; everything downstream (segmentation, region
//     graphs) wants per-snapshot float64 grids.
//
// Complexity:
//
//   - Validate:  O(H)        (row-length scan).
//   - ReadStack: O(T×H×W)    time and memory.
//
// Errors:
//
//   - ErrMissingInput: the raw file does not exist.
//   - ErrSize: file length is not exactly 4×T×H×W bytes.
//   - ErrEmptyField: a field has no rows or no columns.
//   - ErrRagged: rows of differing lengths.
package field
