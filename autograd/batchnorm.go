package autograd

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// BatchNorm normalizes each column of the N×C tensor x by its batch
// statistics, then applies the affine transform γ·x̂ + β. It returns the
// normalized tensor plus the per-column batch mean and biased variance so
// callers can maintain running estimates for inference.
//
// Inference-mode normalization with frozen statistics is composed from
// MulRow/AddRow by the caller instead; this op always uses batch stats.
func (t *Tape) BatchNorm(x, gamma, beta *Tensor, eps float64) (out *Tensor, mean, variance []float64) {
	n, c := x.Dims()
	mean = make([]float64, c)
	variance = make([]float64, c)
	invStd := make([]float64, c)
	for j := 0; j < c; j++ {
		s := 0.0
		for i := 0; i < n; i++ {
			s += x.Value.At(i, j)
		}
		mean[j] = s / float64(n)
		sq := 0.0
		for i := 0; i < n; i++ {
			d := x.Value.At(i, j) - mean[j]
			sq += d * d
		}
		variance[j] = sq / float64(n)
		invStd[j] = 1 / math.Sqrt(variance[j]+eps)
	}

	xhat := mat.NewDense(n, c, nil)
	v := mat.NewDense(n, c, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			h := (x.Value.At(i, j) - mean[j]) * invStd[j]
			xhat.Set(i, j, h)
			v.Set(i, j, gamma.Value.At(0, j)*h+beta.Value.At(0, j))
		}
	}

	out = t.out(v, x, gamma, beta)
	t.record(out, func() {
		g := out.Grad
		for j := 0; j < c; j++ {
			sumG, sumGH := 0.0, 0.0
			for i := 0; i < n; i++ {
				sumG += g.At(i, j)
				sumGH += g.At(i, j) * xhat.At(i, j)
			}
			if gamma.Grad != nil {
				gamma.Grad.Set(0, j, gamma.Grad.At(0, j)+sumGH)
			}
			if beta.Grad != nil {
				beta.Grad.Set(0, j, beta.Grad.At(0, j)+sumG)
			}
			if x.Grad != nil {
				k := gamma.Value.At(0, j) * invStd[j] / float64(n)
				for i := 0; i < n; i++ {
					dx := k * (float64(n)*g.At(i, j) - sumG - xhat.At(i, j)*sumGH)
					x.Grad.Set(i, j, x.Grad.At(i, j)+dx)
				}
			}
		}
	})
	return out, mean, variance
}
