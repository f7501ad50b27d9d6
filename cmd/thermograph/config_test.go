package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/thermograph/gnn"
)

// TestLoadConfig_Defaults: a missing file yields the reference defaults.
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Stack.Frames)
	assert.Equal(t, 855, cfg.Stack.Height)
	assert.Equal(t, 1215, cfg.Stack.Width)
	assert.Equal(t, string(gnn.VariantGCN), cfg.Model.Variant)
	assert.Equal(t, 16, cfg.Model.Hidden)
	assert.Equal(t, 100, cfg.Train.Epochs)
	assert.Equal(t, 0.88, cfg.Eval.Threshold)
	assert.Equal(t, 100, cfg.Eval.Bins)

	tc := cfg.TrainerConfig()
	assert.NoError(t, tc.Validate())
}

// TestLoadConfig_Overrides: explicit values survive, the rest default.
func TestLoadConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thermograph.yaml")
	doc := `
model:
  variant: gat
train:
  epochs: 5
segment:
  scale: 250
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, string(gnn.VariantGAT), cfg.Model.Variant)
	assert.Equal(t, 32, cfg.Model.Hidden, "gat width defaults differ from gcn")
	assert.Equal(t, 5, cfg.Train.Epochs)
	assert.Equal(t, 250.0, cfg.SegmentParams().Scale)
	assert.Equal(t, 1.0, cfg.SegmentParams().Sigma)
}

// TestLoadConfig_Malformed rejects broken YAML.
func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thermograph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: [broken"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

// TestWriteHistogram produces a decodable PNG.
func TestWriteHistogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.png")
	require.NoError(t, writeHistogram(path, []float64{1, 4, 2, 0, 7}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
