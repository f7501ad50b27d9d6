package train_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/thermograph/gnn"
	"github.com/katalvlaran/thermograph/rag"
	"github.com/katalvlaran/thermograph/train"
)

// twoNode is the 2-node scenario graph with attributes 0 and 1.
func twoNode() *rag.Graph {
	return &rag.Graph{
		Nodes: []rag.Node{{Mean: 0}, {Mean: 1}},
		Edges: []rag.Edge{{U: 0, V: 1, Weight: 1}},
	}
}

// pathGraph builds a path over the given attribute values.
func pathGraph(vals ...float64) *rag.Graph {
	g := &rag.Graph{}
	for _, v := range vals {
		g.Nodes = append(g.Nodes, rag.Node{Mean: v})
	}
	for i := 0; i+1 < len(vals); i++ {
		g.Edges = append(g.Edges, rag.Edge{U: i, V: i + 1, Weight: 1})
	}
	return g
}

// TestConfig_Validate covers hyperparameter range checks.
func TestConfig_Validate(t *testing.T) {
	base := train.DefaultConfig(gnn.VariantGCN)
	assert.NoError(t, base.Validate())

	cases := []struct {
		name   string
		mutate func(*train.Config)
	}{
		{"ZeroHidden", func(c *train.Config) { c.Hidden = 0 }},
		{"NegativeEpochs", func(c *train.Config) { c.Epochs = -1 }},
		{"ZeroRate", func(c *train.Config) { c.LearningRate = 0 }},
		{"ZeroPosWeight", func(c *train.Config) { c.PosWeight = 0 }},
		{"EpsTooLarge", func(c *train.Config) { c.ClampEps = 0.7 }},
		{"EpsZero", func(c *train.Config) { c.ClampEps = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), train.ErrBadConfig)
		})
	}
}

// TestRun_StateMachine walks Idle → EpochRunning (observed in the hook) → Done.
func TestRun_StateMachine(t *testing.T) {
	cfg := train.DefaultConfig(gnn.VariantGAT)
	cfg.Hidden, cfg.Output, cfg.Epochs = 2, 2, 3

	tr, err := train.New(cfg)
	require.NoError(t, err)
	assert.Equal(t, train.Idle, tr.State())

	var epochs []int
	tr.OnEpoch = func(epoch int, meanLoss float64) {
		epochs = append(epochs, epoch)
		assert.Equal(t, train.EpochRunning, tr.State())
		assert.False(t, math.IsNaN(meanLoss))
	}

	corpus := rag.Corpus{pathGraph(0, 0.5, 1)}
	require.NoError(t, tr.Run(corpus))

	assert.Equal(t, train.Done, tr.State())
	assert.Equal(t, []int{1, 2, 3}, epochs)
	assert.Len(t, tr.LossHistory, 3)
}

// TestRun_EmptyCorpus rejects an empty corpus.
func TestRun_EmptyCorpus(t *testing.T) {
	tr, err := train.New(train.DefaultConfig(gnn.VariantGCN))
	require.NoError(t, err)
	assert.ErrorIs(t, tr.Run(nil), train.ErrEmptyCorpus)

	_, err = tr.Evaluate(nil)
	assert.ErrorIs(t, err, train.ErrEmptyCorpus)
}

// TestRun_GATLossDecreases trains the attribute autoencoder on one small
// graph and expects the epoch losses to contract.
func TestRun_GATLossDecreases(t *testing.T) {
	cfg := train.DefaultConfig(gnn.VariantGAT)
	cfg.Hidden, cfg.Output, cfg.Epochs, cfg.Seed = 4, 4, 80, 3

	tr, err := train.New(cfg)
	require.NoError(t, err)

	corpus := rag.Corpus{pathGraph(-1, -0.5, 0.5, 1)}
	require.NoError(t, tr.Run(corpus))

	first, last := tr.LossHistory[0], tr.LossHistory[len(tr.LossHistory)-1]
	assert.Less(t, last, first, "MSE should decrease over 80 epochs (first %v, last %v)", first, last)
	for _, l := range tr.LossHistory {
		assert.False(t, math.IsNaN(l) || math.IsInf(l, 0))
	}
}

// TestRun_GCNLossFinite trains the adjacency autoencoder briefly and
// checks the weighted BCE stays positive and finite.
func TestRun_GCNLossFinite(t *testing.T) {
	cfg := train.DefaultConfig(gnn.VariantGCN)
	cfg.Hidden, cfg.Output, cfg.Epochs, cfg.Seed = 4, 4, 5, 3

	tr, err := train.New(cfg)
	require.NoError(t, err)

	corpus := rag.Corpus{pathGraph(-1, 0, 1), pathGraph(0.2, 0.8)}
	require.NoError(t, tr.Run(corpus))

	require.Len(t, tr.LossHistory, 5)
	for _, l := range tr.LossHistory {
		assert.Greater(t, l, 0.0)
		assert.False(t, math.IsNaN(l) || math.IsInf(l, 0))
	}
}

// TestEvaluate_EpochZeroBaseline: an untrained VariantGAT trainer reports
// a reproducible, positive MSE baseline on the 2-node scenario graph.
func TestEvaluate_EpochZeroBaseline(t *testing.T) {
	cfg := train.DefaultConfig(gnn.VariantGAT)
	cfg.Hidden, cfg.Output, cfg.Epochs, cfg.Seed = 4, 4, 0, 9

	corpus := rag.Corpus{twoNode()}

	a, err := train.New(cfg)
	require.NoError(t, err)
	baseA, err := a.Evaluate(corpus)
	require.NoError(t, err)

	b, err := train.New(cfg)
	require.NoError(t, err)
	baseB, err := b.Evaluate(corpus)
	require.NoError(t, err)

	assert.Greater(t, baseA, 0.0)
	assert.Equal(t, baseA, baseB, "equal seeds must give equal baselines")

	// Zero epochs is a legal run: nothing trains, state still completes.
	require.NoError(t, a.Run(corpus))
	assert.Equal(t, train.Done, a.State())
	assert.Empty(t, a.LossHistory)
}
