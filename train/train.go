package train

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/thermograph/autograd"
	"github.com/katalvlaran/thermograph/gnn"
	"github.com/katalvlaran/thermograph/rag"
)

// Sentinel errors for training.
var (
	// ErrBadConfig indicates an out-of-range hyperparameter.
	ErrBadConfig = errors.New("train: invalid training configuration")
	// ErrEmptyCorpus indicates there are no graphs to train on.
	ErrEmptyCorpus = errors.New("train: corpus is empty")
)

// State is the trainer's lifecycle phase.
type State int

const (
	// Idle: constructed, Run not yet called.
	Idle State = iota
	// EpochRunning: inside the epoch loop.
	EpochRunning
	// Done: all configured epochs have run.
	Done
)

// Config selects the architecture and all hyperparameters explicitly.
type Config struct {
	Variant      gnn.Variant
	Hidden       int
	Output       int
	Epochs       int
	LearningRate float64
	// PosWeight and NegWeight scale the positive and negative class terms
	// of the adjacency cross-entropy (VariantGCN only).
	PosWeight float64
	NegWeight float64
	// ClampEps bounds predicted probabilities into [ClampEps/2, 1−ClampEps]
	// before the logarithm (VariantGCN only).
	ClampEps float64
	Seed     int64
}

// DefaultConfig returns the hyperparameters the experiments used:
// hidden=output=16 for VariantGCN, 32 for VariantGAT; 100 epochs,
// Adam at 0.01, class weights 10/1, ε=0.5.
func DefaultConfig(v gnn.Variant) Config {
	width := 16
	if v == gnn.VariantGAT {
		width = 32
	}
	return Config{
		Variant:      v,
		Hidden:       width,
		Output:       width,
		Epochs:       100,
		LearningRate: 0.01,
		PosWeight:    10,
		NegWeight:    1,
		ClampEps:     0.5,
		Seed:         1,
	}
}

// Validate reports ErrBadConfig for out-of-range values. ClampEps must
// leave a non-empty interval: ε/2 ≤ 1−ε requires ε ≤ 2/3.
func (c Config) Validate() error {
	switch {
	case c.Hidden <= 0 || c.Output <= 0,
		c.Epochs < 0,
		c.LearningRate <= 0,
		c.PosWeight <= 0 || c.NegWeight <= 0,
		c.ClampEps <= 0 || c.ClampEps > 2.0/3.0:
		return fmt.Errorf("train: %+v: %w", c, ErrBadConfig)
	}
	return nil
}

// Trainer owns one model and its optimizer for the lifetime of a run.
type Trainer struct {
	Model gnn.AutoEncoder
	// LossHistory holds the mean per-graph loss of each completed epoch.
	LossHistory []float64
	// OnEpoch, when set, observes each epoch's mean loss (1-based epoch).
	OnEpoch func(epoch int, meanLoss float64)

	cfg   Config
	opt   *gnn.Adam
	state State
}

// New builds the model from cfg (weights seeded by cfg.Seed) and wires
// the optimizer.
func New(cfg Config) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	model, err := gnn.New(cfg.Variant, cfg.Hidden, cfg.Output, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return nil, err
	}
	return &Trainer{
		Model: model,
		cfg:   cfg,
		opt:   gnn.NewAdam(model.Params(), cfg.LearningRate),
	}, nil
}

// State returns the trainer's lifecycle phase.
func (tr *Trainer) State() State { return tr.state }

// Run trains for the configured epoch count over the normalized corpus,
// in corpus order, one optimizer step per graph. Not cancellable
// mid-epoch; strictly sequential.
func (tr *Trainer) Run(corpus rag.Corpus) error {
	if len(corpus) == 0 {
		return ErrEmptyCorpus
	}
	tr.Model.SetTraining(true)
	for epoch := 1; epoch <= tr.cfg.Epochs; epoch++ {
		tr.state = EpochRunning
		total := 0.0
		for _, g := range corpus {
			gt := gnn.FromGraph(g)
			tr.opt.ZeroGrad()

			tape := autograd.New()
			out := tr.Model.Decode(tape, gt, tr.Model.Encode(tape, gt))
			loss := tr.graphLoss(tape, out, gt, g)
			tape.Backward(loss)
			tr.opt.Step()

			total += loss.Value.At(0, 0)
		}
		mean := total / float64(len(corpus))
		tr.LossHistory = append(tr.LossHistory, mean)
		if tr.OnEpoch != nil {
			tr.OnEpoch(epoch, mean)
		}
	}
	tr.state = Done
	tr.Model.SetTraining(false)
	return nil
}

// Evaluate computes the mean per-graph loss in inference mode without
// updating any weights. With a freshly constructed trainer this is the
// epoch-0 baseline.
func (tr *Trainer) Evaluate(corpus rag.Corpus) (float64, error) {
	if len(corpus) == 0 {
		return 0, ErrEmptyCorpus
	}
	tr.Model.SetTraining(false)
	total := 0.0
	for _, g := range corpus {
		gt := gnn.FromGraph(g)
		tape := autograd.NoGrad()
		out := tr.Model.Decode(tape, gt, tr.Model.Encode(tape, gt))
		total += tr.graphLoss(tape, out, gt, g).Value.At(0, 0)
	}
	return total / float64(len(corpus)), nil
}

// graphLoss dispatches on the variant: adjacency cross-entropy for the
// inner-product decoder, attribute MSE for the symmetric one.
func (tr *Trainer) graphLoss(tape *autograd.Tape, out *autograd.Tensor, gt *gnn.Tensors, g *rag.Graph) *autograd.Tensor {
	if tr.cfg.Variant == gnn.VariantGCN {
		target := autograd.NewConst(g.AdjacencyMatrix())
		return weightedBCE(tape, out, target, tr.cfg.PosWeight, tr.cfg.NegWeight, tr.cfg.ClampEps)
	}
	return mseLoss(tape, out, gt.X)
}
