// Command thermograph runs the full snapshot-to-graph pipeline: segment a
// raw scalar-field stack into region-adjacency graphs, train (or load) an
// unsupervised graph autoencoder, reconstruct the corpus, and report
// fidelity.
package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/katalvlaran/thermograph/compare"
	"github.com/katalvlaran/thermograph/field"
	"github.com/katalvlaran/thermograph/norm"
	"github.com/katalvlaran/thermograph/persist"
	"github.com/katalvlaran/thermograph/rag"
	"github.com/katalvlaran/thermograph/recon"
	"github.com/katalvlaran/thermograph/segment"
	"github.com/katalvlaran/thermograph/train"
)

func main() {
	configPath := flag.String("config", "thermograph.yaml", "pipeline configuration file")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if err := run(*configPath, sugar); err != nil {
		sugar.Fatalw("pipeline failed", "error", err)
	}
}

func run(configPath string, log *zap.SugaredLogger) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	log.Infow("configured", "config", configPath, "variant", cfg.Model.Variant, "cache_dir", cfg.CacheDir)

	corpus, err := loadOrBuildCorpus(cfg, log)
	if err != nil {
		return err
	}

	stats, err := norm.Compute(corpus)
	if err != nil {
		return err
	}
	log.Infow("pooled attribute statistics", "mean", stats.Mean, "std", stats.Std)

	normed, err := norm.Normalize(corpus, stats)
	if err != nil {
		return err
	}

	trainer, err := loadOrTrain(cfg, normed, log)
	if err != nil {
		return err
	}

	rec := recon.Reconstruct(trainer.Model, normed)
	norm.Denormalize(rec, stats)

	return report(cfg, corpus, rec, log)
}

// loadOrBuildCorpus returns the cached corpus for the configured
// segmentation parameters, building and caching it from the raw stack on a
// miss.
func loadOrBuildCorpus(cfg *Config, log *zap.SugaredLogger) (rag.Corpus, error) {
	params := cfg.SegmentParams()
	path := persist.CorpusPath(cfg.CacheDir, params)

	corpus, err := persist.LoadCorpus(path)
	if err == nil {
		log.Infow("corpus cache hit", "path", path, "graphs", len(corpus))
		return corpus, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	log.Infow("corpus cache miss, segmenting stack", "stack", cfg.Stack.Path,
		"frames", cfg.Stack.Frames, "height", cfg.Stack.Height, "width", cfg.Stack.Width)
	fields, err := field.ReadStack(cfg.Stack.Path, cfg.Stack.Frames, cfg.Stack.Height, cfg.Stack.Width)
	if err != nil {
		return nil, err
	}

	seg := segment.NewQuantize(params)
	opts := rag.DefaultBuildOptions()
	corpus = make(rag.Corpus, 0, len(fields))
	for i, f := range fields {
		labels, err := seg.Segment(f)
		if err != nil {
			return nil, err
		}
		g, err := rag.Build(f, labels, opts)
		if err != nil {
			return nil, err
		}
		corpus = append(corpus, g)
		if (i+1)%50 == 0 {
			log.Infow("segmented", "frames", i+1, "of", len(fields))
		}
	}

	if err := persist.SaveCorpus(path, corpus); err != nil {
		return nil, err
	}
	log.Infow("corpus cached", "path", path, "graphs", len(corpus))
	return corpus, nil
}

// loadOrTrain returns a trainer whose model either comes from a cached
// checkpoint or is trained on the normalized corpus and checkpointed.
func loadOrTrain(cfg *Config, normed rag.Corpus, log *zap.SugaredLogger) (*train.Trainer, error) {
	tcfg := cfg.TrainerConfig()
	trainer, err := train.New(tcfg)
	if err != nil {
		return nil, err
	}

	path := persist.CheckpointPath(cfg.CacheDir, tcfg.Variant, tcfg.Hidden, tcfg.Output)
	err = persist.LoadModel(path, trainer.Model)
	if err == nil {
		log.Infow("checkpoint cache hit", "path", path)
		return trainer, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	baseline, err := trainer.Evaluate(normed)
	if err != nil {
		return nil, err
	}
	log.Infow("checkpoint cache miss, training", "path", path,
		"epochs", tcfg.Epochs, "learning_rate", tcfg.LearningRate, "baseline_loss", baseline)

	trainer.OnEpoch = func(epoch int, meanLoss float64) {
		log.Infow("epoch", "epoch", epoch, "loss", meanLoss)
	}
	if err := trainer.Run(normed); err != nil {
		return nil, err
	}

	if err := persist.SaveModel(path, trainer.Model); err != nil {
		return nil, err
	}
	log.Infow("checkpoint cached", "path", path)
	return trainer, nil
}

// report logs the per-graph fidelity reports and writes the pooled
// attribute-difference histogram.
func report(cfg *Config, corpus, rec rag.Corpus, log *zap.SugaredLogger) error {
	reports, err := compare.Graphs(corpus, rec)
	if err != nil {
		return err
	}
	comparablePairs := 0
	for _, rep := range reports {
		if !rep.Comparable {
			log.Warnw("graph not comparable", "graph", rep.Index, "node_diff", rep.NodeDiff)
			continue
		}
		comparablePairs++
		log.Infow("graph report", "graph", rep.Index,
			"node_diff", rep.NodeDiff, "edge_diff", rep.EdgeDiff,
			"feature_mae", rep.FeatureMAE, "feature_std", rep.FeatureSTD)
	}
	log.Infow("comparison summary", "graphs", len(reports), "comparable", comparablePairs)

	for i := range corpus {
		er, err := compare.Consistency(corpus[i], rec[i])
		if err != nil {
			log.Warnw("edge consistency undefined", "graph", i, "error", err)
			continue
		}
		log.Infow("edge consistency", "graph", i, "ratio", er.Ratio,
			"consistent", er.Consistent,
			"only_original", er.OnlyOriginal, "only_reconstructed", er.OnlyReconstructed)
	}

	prop, diffs, err := compare.ExceedanceProportion(corpus, rec, cfg.Eval.Threshold)
	if err != nil {
		return err
	}
	log.Infow("attribute exceedance", "threshold", cfg.Eval.Threshold,
		"proportion", prop, "differences", len(diffs))

	counts, _, err := compare.Histogram(diffs, cfg.Eval.Bins)
	if err != nil {
		return err
	}
	if err := writeHistogram(cfg.Eval.Histogram, counts); err != nil {
		return err
	}
	log.Infow("histogram written", "path", cfg.Eval.Histogram, "bins", cfg.Eval.Bins)
	return nil
}
