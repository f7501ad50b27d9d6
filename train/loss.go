package train

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/thermograph/autograd"
)

// weightedBCE is the class-weighted binary cross-entropy
//
//	−mean( posW·T·log p + negW·(1−T)·log(1−p) )
//
// with p clamped into [eps/2, 1−eps] first, so neither logarithm can see 0.
func weightedBCE(t *autograd.Tape, scores, target *autograd.Tensor, posW, negW, eps float64) *autograd.Tensor {
	r, c := scores.Dims()
	onesData := make([]float64, r*c)
	for i := range onesData {
		onesData[i] = 1
	}
	ones := autograd.NewConst(mat.NewDense(r, c, onesData))

	p := t.Clamp(scores, eps/2, 1-eps)
	pos := t.Scale(t.MulElem(target, t.Log(p)), posW)
	neg := t.Scale(t.MulElem(t.Sub(ones, target), t.Log(t.Sub(ones, p))), negW)
	return t.Scale(t.MeanAll(t.Add(pos, neg)), -1)
}

// mseLoss is the plain mean squared error between pred and target.
func mseLoss(t *autograd.Tape, pred, target *autograd.Tensor) *autograd.Tensor {
	d := t.Sub(pred, target)
	return t.MeanAll(t.MulElem(d, d))
}
