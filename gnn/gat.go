package gnn

import (
	"math/rand"
	"strconv"

	"github.com/katalvlaran/thermograph/autograd"
)

// gatAutoEncoder is VariantGAT: a two-layer attention encoder projecting
// 1→H (8 heads, concatenated) →O (8 heads, averaged), mirrored by a
// decoder of the same shape run in reverse, O→H→1, reconstructing node
// attributes directly. Structure is taken from the input graph as-is.
type gatAutoEncoder struct {
	encGAT1, encGAT2 *GATConv
	encBN            *BatchNorm
	decGAT1, decGAT2 *GATConv
	decBN            *BatchNorm
	training         bool
}

func newGATAutoEncoder(rng *rand.Rand, hidden, output int) *gatAutoEncoder {
	return &gatAutoEncoder{
		encGAT1: NewGATConv(rng, 1, hidden, attnHeads, true),
		encBN:   NewBatchNorm(hidden * attnHeads),
		encGAT2: NewGATConv(rng, hidden*attnHeads, output, attnHeads, false),
		decGAT1: NewGATConv(rng, output, hidden, attnHeads, true),
		decBN:   NewBatchNorm(hidden * attnHeads),
		decGAT2: NewGATConv(rng, hidden*attnHeads, 1, attnHeads, false),
	}
}

// Encode maps attributes to O-wide embeddings over the graph's edges.
func (m *gatAutoEncoder) Encode(t *autograd.Tape, g *Tensors) *autograd.Tensor {
	h := t.ReLU(m.encBN.Forward(t, m.encGAT1.Forward(t, g, g.X), m.training))
	return m.encGAT2.Forward(t, g, h)
}

// Decode runs the mirror stack over the same edges, yielding the N×1
// attribute reconstruction.
func (m *gatAutoEncoder) Decode(t *autograd.Tape, g *Tensors, z *autograd.Tensor) *autograd.Tensor {
	h := t.ReLU(m.decBN.Forward(t, m.decGAT1.Forward(t, g, z), m.training))
	return m.decGAT2.Forward(t, g, h)
}

func (m *gatAutoEncoder) Params() []*autograd.Tensor {
	var out []*autograd.Tensor
	out = append(out, m.encGAT1.params()...)
	out = append(out, m.encBN.params()...)
	out = append(out, m.encGAT2.params()...)
	out = append(out, m.decGAT1.params()...)
	out = append(out, m.decBN.params()...)
	out = append(out, m.decGAT2.params()...)
	return out
}

func (m *gatAutoEncoder) Named() map[string]*autograd.Tensor {
	named := make(map[string]*autograd.Tensor)
	add := func(prefix string, l *GATConv) {
		for h := 0; h < l.Heads; h++ {
			hs := strconv.Itoa(h)
			named[prefix+".w"+hs] = l.W[h]
			named[prefix+".asrc"+hs] = l.ASrc[h]
			named[prefix+".adst"+hs] = l.ADst[h]
		}
		named[prefix+".b"] = l.B
	}
	add("enc.gat1", m.encGAT1)
	named["enc.bn.gamma"] = m.encBN.Gamma
	named["enc.bn.beta"] = m.encBN.Beta
	add("enc.gat2", m.encGAT2)
	add("dec.gat1", m.decGAT1)
	named["dec.bn.gamma"] = m.decBN.Gamma
	named["dec.bn.beta"] = m.decBN.Beta
	add("dec.gat2", m.decGAT2)
	return named
}

func (m *gatAutoEncoder) Norms() map[string]*BatchNorm {
	return map[string]*BatchNorm{"enc.bn": m.encBN, "dec.bn": m.decBN}
}

func (m *gatAutoEncoder) SetTraining(training bool) { m.training = training }

func (m *gatAutoEncoder) Variant() Variant { return VariantGAT }
