package gnn

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/thermograph/autograd"
)

// Batch-norm constants, matching the reference training runs.
const (
	bnEps      = 1e-5
	bnMomentum = 0.1
)

// leakySlope is the negative slope of the attention nonlinearity.
const leakySlope = 0.2

// glorot fills an in×out matrix with Glorot-uniform samples.
func glorot(rng *rand.Rand, in, out int) *mat.Dense {
	limit := math.Sqrt(6 / float64(in+out))
	data := make([]float64, in*out)
	for i := range data {
		data[i] = (2*rng.Float64() - 1) * limit
	}
	return mat.NewDense(in, out, data)
}

// GCNConv is one graph convolution: out = Â·(x·W) + b.
type GCNConv struct {
	W *autograd.Tensor // in×out
	B *autograd.Tensor // 1×out
}

// NewGCNConv initializes an in→out convolution with Glorot weights and
// zero bias.
func NewGCNConv(rng *rand.Rand, in, out int) *GCNConv {
	return &GCNConv{
		W: autograd.NewParam(glorot(rng, in, out)),
		B: autograd.NewParam(mat.NewDense(1, out, nil)),
	}
}

// Forward applies the convolution under the normalized adjacency.
func (l *GCNConv) Forward(t *autograd.Tape, g *Tensors, x *autograd.Tensor) *autograd.Tensor {
	return t.AddRow(t.MatMul(g.Ahat, t.MatMul(x, l.W)), l.B)
}

func (l *GCNConv) params() []*autograd.Tensor { return []*autograd.Tensor{l.W, l.B} }

// BatchNorm normalizes node features per channel: batch statistics while
// training, running estimates (momentum 0.1) in inference mode.
type BatchNorm struct {
	Gamma, Beta     *autograd.Tensor // 1×C
	RunMean, RunVar []float64
}

// NewBatchNorm creates a C-channel batch norm with γ=1, β=0 and unit
// running variance.
func NewBatchNorm(c int) *BatchNorm {
	gamma := mat.NewDense(1, c, nil)
	for j := 0; j < c; j++ {
		gamma.Set(0, j, 1)
	}
	runVar := make([]float64, c)
	for j := range runVar {
		runVar[j] = 1
	}
	return &BatchNorm{
		Gamma:   autograd.NewParam(gamma),
		Beta:    autograd.NewParam(mat.NewDense(1, c, nil)),
		RunMean: make([]float64, c),
		RunVar:  runVar,
	}
}

// Forward normalizes x. In training mode the running estimates are updated
// with the batch statistics (unbiased variance when more than one node).
func (l *BatchNorm) Forward(t *autograd.Tape, x *autograd.Tensor, training bool) *autograd.Tensor {
	n, c := x.Dims()
	if training {
		out, mean, variance := t.BatchNorm(x, l.Gamma, l.Beta, bnEps)
		for j := 0; j < c; j++ {
			v := variance[j]
			if n > 1 {
				v *= float64(n) / float64(n-1)
			}
			l.RunMean[j] = (1-bnMomentum)*l.RunMean[j] + bnMomentum*mean[j]
			l.RunVar[j] = (1-bnMomentum)*l.RunVar[j] + bnMomentum*v
		}
		return out
	}

	invStd := mat.NewDense(1, c, nil)
	mean := mat.NewDense(1, c, nil)
	for j := 0; j < c; j++ {
		invStd.Set(0, j, 1/math.Sqrt(l.RunVar[j]+bnEps))
		mean.Set(0, j, l.RunMean[j])
	}
	scale := t.MulElem(l.Gamma, autograd.NewConst(invStd))
	bias := t.Sub(l.Beta, t.MulElem(autograd.NewConst(mean), scale))
	return t.AddRow(t.MulRow(x, scale), bias)
}

func (l *BatchNorm) params() []*autograd.Tensor { return []*autograd.Tensor{l.Gamma, l.Beta} }

// GATConv is one multi-head attention convolution. Each head projects
// node features, scores every directed edge with additive attention
// (LeakyReLU, slope 0.2), softmax-normalizes scores over each
// destination's incoming edges, and aggregates the weighted sources.
// Heads are concatenated or averaged per the Concat flag.
type GATConv struct {
	Heads  int
	Concat bool
	W      []*autograd.Tensor // per head: in×out
	ASrc   []*autograd.Tensor // per head: out×1
	ADst   []*autograd.Tensor // per head: out×1
	B      *autograd.Tensor   // 1×(out·heads) when concatenating, else 1×out
}

// NewGATConv initializes an in→out attention convolution with the given
// head count.
func NewGATConv(rng *rand.Rand, in, out, heads int, concat bool) *GATConv {
	l := &GATConv{Heads: heads, Concat: concat}
	for h := 0; h < heads; h++ {
		l.W = append(l.W, autograd.NewParam(glorot(rng, in, out)))
		l.ASrc = append(l.ASrc, autograd.NewParam(glorot(rng, out, 1)))
		l.ADst = append(l.ADst, autograd.NewParam(glorot(rng, out, 1)))
	}
	width := out
	if concat {
		width = out * heads
	}
	l.B = autograd.NewParam(mat.NewDense(1, width, nil))
	return l
}

// Forward runs all heads over the graph's directed edge pairs (self-loops
// included) and combines them.
func (l *GATConv) Forward(t *autograd.Tape, g *Tensors, x *autograd.Tensor) *autograd.Tensor {
	heads := make([]*autograd.Tensor, l.Heads)
	for h := 0; h < l.Heads; h++ {
		proj := t.MatMul(x, l.W[h])
		hs := t.GatherRows(proj, g.Src)
		hd := t.GatherRows(proj, g.Dst)
		score := t.LeakyReLU(t.Add(t.MatMul(hs, l.ASrc[h]), t.MatMul(hd, l.ADst[h])), leakySlope)
		alpha := t.SegmentSoftmax(score, g.Dst, g.N)
		heads[h] = t.ScatterRows(t.ColMul(hs, alpha), g.Dst, g.N)
	}

	var combined *autograd.Tensor
	if l.Concat {
		combined = t.ConcatCols(heads...)
	} else {
		combined = heads[0]
		for h := 1; h < l.Heads; h++ {
			combined = t.Add(combined, heads[h])
		}
		combined = t.Scale(combined, 1/float64(l.Heads))
	}
	return t.AddRow(combined, l.B)
}

func (l *GATConv) params() []*autograd.Tensor {
	out := make([]*autograd.Tensor, 0, 3*l.Heads+1)
	for h := 0; h < l.Heads; h++ {
		out = append(out, l.W[h], l.ASrc[h], l.ADst[h])
	}
	return append(out, l.B)
}
