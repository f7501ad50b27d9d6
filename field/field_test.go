package field_test

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/thermograph/field"
)

// writeStack serializes vals as little-endian float32 to a temp file.
func writeStack(t *testing.T, vals []float32) string {
	t.Helper()
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	path := filepath.Join(t.TempDir(), "stack.dat")
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

// TestValidate verifies rectangularity checks.
func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		f    field.Field
		err  error
	}{
		{"Empty", field.Field{}, field.ErrEmptyField},
		{"EmptyRow", field.Field{{}}, field.ErrEmptyField},
		{"Ragged", field.Field{{1, 2}, {3}}, field.ErrRagged},
		{"OK", field.Field{{1, 2}, {3, 4}}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.f.Validate()
			if tc.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}

// TestReadStack_RoundTrip checks reshape order (time, height, width).
func TestReadStack_RoundTrip(t *testing.T) {
	// 2 time steps of a 2x3 grid.
	vals := []float32{
		0, 1, 2,
		3, 4, 5,

		10, 11, 12,
		13, 14, 15,
	}
	path := writeStack(t, vals)

	stack, err := field.ReadStack(path, 2, 2, 3)
	require.NoError(t, err)
	require.Len(t, stack, 2)

	assert.Equal(t, 2, stack[0].Height())
	assert.Equal(t, 3, stack[0].Width())
	assert.Equal(t, 5.0, stack[0][1][2])
	assert.Equal(t, 10.0, stack[1][0][0])
	assert.Equal(t, 14.0, stack[1][1][1])
}

// TestReadStack_Missing verifies the MissingInput sentinel.
func TestReadStack_Missing(t *testing.T) {
	_, err := field.ReadStack(filepath.Join(t.TempDir(), "absent.dat"), 1, 1, 1)
	assert.ErrorIs(t, err, field.ErrMissingInput)
}

// TestReadStack_SizeMismatch verifies the dimension-mismatch sentinel.
func TestReadStack_SizeMismatch(t *testing.T) {
	path := writeStack(t, []float32{1, 2, 3})
	_, err := field.ReadStack(path, 1, 2, 2)
	assert.ErrorIs(t, err, field.ErrSize)
}
