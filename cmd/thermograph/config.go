package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/thermograph/gnn"
	"github.com/katalvlaran/thermograph/segment"
	"github.com/katalvlaran/thermograph/train"
)

// Config drives one full pipeline run.
type Config struct {
	Stack    StackConfig   `yaml:"stack"`
	CacheDir string        `yaml:"cache_dir"`
	Segment  SegmentConfig `yaml:"segment"`
	Model    ModelConfig   `yaml:"model"`
	Train    TrainConfig   `yaml:"train"`
	Eval     EvalConfig    `yaml:"eval"`
}

// StackConfig locates and shapes the raw float32 snapshot stack.
type StackConfig struct {
	Path   string `yaml:"path"`
	Frames int    `yaml:"frames"`
	Height int    `yaml:"height"`
	Width  int    `yaml:"width"`
}

// SegmentConfig carries the segmentation parameters (they also key the
// corpus cache filename).
type SegmentConfig struct {
	Scale   float64 `yaml:"scale"`
	Sigma   float64 `yaml:"sigma"`
	MinSize int     `yaml:"min_size"`
}

// ModelConfig selects the autoencoder architecture and layer widths.
type ModelConfig struct {
	Variant string `yaml:"variant"`
	Hidden  int    `yaml:"hidden"`
	Output  int    `yaml:"output"`
}

// TrainConfig carries the optimizer and loss hyperparameters.
type TrainConfig struct {
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
	PosWeight    float64 `yaml:"pos_weight"`
	NegWeight    float64 `yaml:"neg_weight"`
	ClampEps     float64 `yaml:"clamp_eps"`
	Seed         int64   `yaml:"seed"`
}

// EvalConfig carries the comparison threshold and histogram output.
type EvalConfig struct {
	Threshold float64 `yaml:"threshold"`
	Bins      int     `yaml:"bins"`
	Histogram string  `yaml:"histogram"`
}

// LoadConfig reads a YAML config from path, falling back to defaults when
// the file does not exist.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills missing values with the reference experiment's
// settings: a 500-frame 855×1215 stack, scale 500 / σ 1 / min 100
// segmentation, and the per-variant training defaults.
func (c *Config) applyDefaults() {
	if c.Stack.Path == "" {
		c.Stack.Path = "temperature_pl.dat"
	}
	if c.Stack.Frames == 0 {
		c.Stack.Frames = 500
	}
	if c.Stack.Height == 0 {
		c.Stack.Height = 855
	}
	if c.Stack.Width == 0 {
		c.Stack.Width = 1215
	}
	if c.CacheDir == "" {
		c.CacheDir = "."
	}

	p := segment.DefaultParams()
	if c.Segment.Scale == 0 {
		c.Segment.Scale = p.Scale
	}
	if c.Segment.Sigma == 0 {
		c.Segment.Sigma = p.Sigma
	}
	if c.Segment.MinSize == 0 {
		c.Segment.MinSize = p.MinSize
	}

	if c.Model.Variant == "" {
		c.Model.Variant = string(gnn.VariantGCN)
	}
	t := train.DefaultConfig(gnn.Variant(c.Model.Variant))
	if c.Model.Hidden == 0 {
		c.Model.Hidden = t.Hidden
	}
	if c.Model.Output == 0 {
		c.Model.Output = t.Output
	}
	if c.Train.Epochs == 0 {
		c.Train.Epochs = t.Epochs
	}
	if c.Train.LearningRate == 0 {
		c.Train.LearningRate = t.LearningRate
	}
	if c.Train.PosWeight == 0 {
		c.Train.PosWeight = t.PosWeight
	}
	if c.Train.NegWeight == 0 {
		c.Train.NegWeight = t.NegWeight
	}
	if c.Train.ClampEps == 0 {
		c.Train.ClampEps = t.ClampEps
	}
	if c.Train.Seed == 0 {
		c.Train.Seed = t.Seed
	}

	if c.Eval.Threshold == 0 {
		c.Eval.Threshold = 0.88
	}
	if c.Eval.Bins == 0 {
		c.Eval.Bins = 100
	}
	if c.Eval.Histogram == "" {
		c.Eval.Histogram = "attribute_diffs.png"
	}
}

// SegmentParams converts the config section to segmentation parameters.
func (c *Config) SegmentParams() segment.Params {
	return segment.Params{Scale: c.Segment.Scale, Sigma: c.Segment.Sigma, MinSize: c.Segment.MinSize}
}

// TrainerConfig converts the config sections to a training configuration.
func (c *Config) TrainerConfig() train.Config {
	return train.Config{
		Variant:      gnn.Variant(c.Model.Variant),
		Hidden:       c.Model.Hidden,
		Output:       c.Model.Output,
		Epochs:       c.Train.Epochs,
		LearningRate: c.Train.LearningRate,
		PosWeight:    c.Train.PosWeight,
		NegWeight:    c.Train.NegWeight,
		ClampEps:     c.Train.ClampEps,
		Seed:         c.Train.Seed,
	}
}
