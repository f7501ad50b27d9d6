package gnn

import (
	"math/rand"

	"github.com/katalvlaran/thermograph/autograd"
)

// gcnAutoEncoder is VariantGCN: three batch-normalized graph convolutions
// (ReLU between, final layer un-activated) projecting 1→H→H→O, decoded by
// the sigmoid inner product of every embedding pair.
type gcnAutoEncoder struct {
	conv1, conv2, conv3 *GCNConv
	bn1, bn2, bn3       *BatchNorm
	training            bool
}

func newGCNAutoEncoder(rng *rand.Rand, hidden, output int) *gcnAutoEncoder {
	return &gcnAutoEncoder{
		conv1: NewGCNConv(rng, 1, hidden),
		bn1:   NewBatchNorm(hidden),
		conv2: NewGCNConv(rng, hidden, hidden),
		bn2:   NewBatchNorm(hidden),
		conv3: NewGCNConv(rng, hidden, output),
		bn3:   NewBatchNorm(output),
	}
}

// Encode runs the three-layer convolution stack.
func (m *gcnAutoEncoder) Encode(t *autograd.Tape, g *Tensors) *autograd.Tensor {
	h := t.ReLU(m.bn1.Forward(t, m.conv1.Forward(t, g, g.X), m.training))
	h = t.ReLU(m.bn2.Forward(t, m.conv2.Forward(t, g, h), m.training))
	return m.bn3.Forward(t, m.conv3.Forward(t, g, h), m.training)
}

// Decode reconstructs the N×N pairwise adjacency score matrix
// sigmoid(z·zᵀ). Connectivity is not consulted; this decoder scores every
// node pair, which is the system's dense computational core.
func (m *gcnAutoEncoder) Decode(t *autograd.Tape, _ *Tensors, z *autograd.Tensor) *autograd.Tensor {
	return t.Sigmoid(t.MatMul(z, t.Transpose(z)))
}

func (m *gcnAutoEncoder) Params() []*autograd.Tensor {
	var out []*autograd.Tensor
	out = append(out, m.conv1.params()...)
	out = append(out, m.bn1.params()...)
	out = append(out, m.conv2.params()...)
	out = append(out, m.bn2.params()...)
	out = append(out, m.conv3.params()...)
	out = append(out, m.bn3.params()...)
	return out
}

func (m *gcnAutoEncoder) Named() map[string]*autograd.Tensor {
	return map[string]*autograd.Tensor{
		"conv1.w": m.conv1.W, "conv1.b": m.conv1.B,
		"bn1.gamma": m.bn1.Gamma, "bn1.beta": m.bn1.Beta,
		"conv2.w": m.conv2.W, "conv2.b": m.conv2.B,
		"bn2.gamma": m.bn2.Gamma, "bn2.beta": m.bn2.Beta,
		"conv3.w": m.conv3.W, "conv3.b": m.conv3.B,
		"bn3.gamma": m.bn3.Gamma, "bn3.beta": m.bn3.Beta,
	}
}

func (m *gcnAutoEncoder) Norms() map[string]*BatchNorm {
	return map[string]*BatchNorm{"bn1": m.bn1, "bn2": m.bn2, "bn3": m.bn3}
}

func (m *gcnAutoEncoder) SetTraining(training bool) { m.training = training }

func (m *gcnAutoEncoder) Variant() Variant { return VariantGCN }
