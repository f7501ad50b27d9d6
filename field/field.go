package field

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
)

// Sentinel errors for field loading and validation.
var (
	// ErrMissingInput indicates the raw field file does not exist.
	ErrMissingInput = errors.New("field: raw input file not found")
	// ErrSize indicates the raw file length disagrees with the requested shape.
	ErrSize = errors.New("field: file size does not match requested (time, height, width)")
	// ErrEmptyField indicates a field with no rows or no columns.
	ErrEmptyField = errors.New("field: field must have at least one row and one column")
	// ErrRagged indicates rows of differing lengths.
	ErrRagged = errors.New("field: all rows must have the same length")
)

// Field is one 2-D snapshot of a scalar quantity, indexed [y][x].
// Callers must not mutate a Field after handing it to the pipeline.
type Field [][]float64

// Validate checks that f is non-empty and rectangular.
// Complexity: O(H).
func (f Field) Validate() error {
	if len(f) == 0 || len(f[0]) == 0 {
		return ErrEmptyField
	}
	w := len(f[0])
	for y := 1; y < len(f); y++ {
		if len(f[y]) != w {
			return ErrRagged
		}
	}
	return nil
}

// Height returns the number of rows.
func (f Field) Height() int { return len(f) }

// Width returns the number of columns, or 0 for an empty field.
func (f Field) Width() int {
	if len(f) == 0 {
		return 0
	}
	return len(f[0])
}

// ReadStack reads a flat little-endian float32 file at path and reshapes
// it into t fields of h rows by w columns, in time order.
//
// The file must hold exactly 4×t×h×w bytes; otherwise ErrSize is returned.
// A missing file yields ErrMissingInput so callers can fall back to a
// cached corpus.
//
// Complexity: O(T×H×W) time and memory.
func ReadStack(path string, t, h, w int) ([]Field, error) {
	if t <= 0 || h <= 0 || w <= 0 {
		return nil, fmt.Errorf("field: ReadStack(%d,%d,%d): %w", t, h, w, ErrEmptyField)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("field: %q: %w", path, ErrMissingInput)
		}
		return nil, fmt.Errorf("field: read %q: %w", path, err)
	}
	want := 4 * t * h * w
	if len(raw) != want {
		return nil, fmt.Errorf("field: %q holds %d bytes, want %d: %w", path, len(raw), want, ErrSize)
	}

	stack := make([]Field, t)
	off := 0
	for ti := 0; ti < t; ti++ {
		f := make(Field, h)
		for y := 0; y < h; y++ {
			row := make([]float64, w)
			for x := 0; x < w; x++ {
				bits := binary.LittleEndian.Uint32(raw[off:])
				row[x] = float64(math.Float32frombits(bits))
				off += 4
			}
			f[y] = row
		}
		stack[ti] = f
	}
	return stack, nil
}
