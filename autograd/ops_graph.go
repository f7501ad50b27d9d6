package autograd

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ConcatCols joins tensors of equal row count side by side.
func (t *Tape) ConcatCols(xs ...*Tensor) *Tensor {
	n, _ := xs[0].Dims()
	total := 0
	for _, x := range xs {
		_, c := x.Dims()
		total += c
	}
	v := mat.NewDense(n, total, nil)
	off := 0
	for _, x := range xs {
		_, c := x.Dims()
		for i := 0; i < n; i++ {
			for j := 0; j < c; j++ {
				v.Set(i, off+j, x.Value.At(i, j))
			}
		}
		off += c
	}
	o := t.out(v, xs...)
	t.record(o, func() {
		off := 0
		for _, x := range xs {
			_, c := x.Dims()
			if x.Grad != nil {
				for i := 0; i < n; i++ {
					for j := 0; j < c; j++ {
						x.Grad.Set(i, j, x.Grad.At(i, j)+o.Grad.At(i, off+j))
					}
				}
			}
			off += c
		}
	})
	return o
}

// GatherRows selects rows of x by index: out[k] = x[idx[k]].
func (t *Tape) GatherRows(x *Tensor, idx []int) *Tensor {
	_, c := x.Dims()
	v := mat.NewDense(len(idx), c, nil)
	for k, i := range idx {
		for j := 0; j < c; j++ {
			v.Set(k, j, x.Value.At(i, j))
		}
	}
	o := t.out(v, x)
	t.record(o, func() {
		if x.Grad == nil {
			return
		}
		for k, i := range idx {
			for j := 0; j < c; j++ {
				x.Grad.Set(i, j, x.Grad.At(i, j)+o.Grad.At(k, j))
			}
		}
	})
	return o
}

// ScatterRows sums rows of x into an n-row result: out[idx[k]] += x[k].
func (t *Tape) ScatterRows(x *Tensor, idx []int, n int) *Tensor {
	_, c := x.Dims()
	v := mat.NewDense(n, c, nil)
	for k, i := range idx {
		for j := 0; j < c; j++ {
			v.Set(i, j, v.At(i, j)+x.Value.At(k, j))
		}
	}
	o := t.out(v, x)
	t.record(o, func() {
		if x.Grad == nil {
			return
		}
		for k, i := range idx {
			for j := 0; j < c; j++ {
				x.Grad.Set(k, j, x.Grad.At(k, j)+o.Grad.At(i, j))
			}
		}
	})
	return o
}

// ColMul scales each row of the E×F tensor x by the matching entry of the
// E×1 column c.
func (t *Tape) ColMul(x, c *Tensor) *Tensor {
	n, f := x.Dims()
	v := mat.NewDense(n, f, nil)
	for i := 0; i < n; i++ {
		s := c.Value.At(i, 0)
		for j := 0; j < f; j++ {
			v.Set(i, j, x.Value.At(i, j)*s)
		}
	}
	o := t.out(v, x, c)
	t.record(o, func() {
		if x.Grad != nil {
			for i := 0; i < n; i++ {
				s := c.Value.At(i, 0)
				for j := 0; j < f; j++ {
					x.Grad.Set(i, j, x.Grad.At(i, j)+o.Grad.At(i, j)*s)
				}
			}
		}
		if c.Grad != nil {
			for i := 0; i < n; i++ {
				s := 0.0
				for j := 0; j < f; j++ {
					s += o.Grad.At(i, j) * x.Value.At(i, j)
				}
				c.Grad.Set(i, 0, c.Grad.At(i, 0)+s)
			}
		}
	})
	return o
}

// SegmentSoftmax normalizes the E×1 score column e into per-segment
// attention weights: entries sharing seg[k] form one softmax. Scores are
// shifted by the per-segment maximum for numerical stability.
func (t *Tape) SegmentSoftmax(e *Tensor, seg []int, n int) *Tensor {
	rows, _ := e.Dims()
	maxes := make([]float64, n)
	for i := range maxes {
		maxes[i] = math.Inf(-1)
	}
	for k := 0; k < rows; k++ {
		if s := e.Value.At(k, 0); s > maxes[seg[k]] {
			maxes[seg[k]] = s
		}
	}
	sums := make([]float64, n)
	exps := make([]float64, rows)
	for k := 0; k < rows; k++ {
		exps[k] = math.Exp(e.Value.At(k, 0) - maxes[seg[k]])
		sums[seg[k]] += exps[k]
	}
	v := mat.NewDense(rows, 1, nil)
	for k := 0; k < rows; k++ {
		v.Set(k, 0, exps[k]/sums[seg[k]])
	}
	o := t.out(v, e)
	t.record(o, func() {
		if e.Grad == nil {
			return
		}
		// dα/de within a segment: de_k = α_k (g_k − Σ_j α_j g_j).
		dots := make([]float64, n)
		for k := 0; k < rows; k++ {
			dots[seg[k]] += v.At(k, 0) * o.Grad.At(k, 0)
		}
		for k := 0; k < rows; k++ {
			a := v.At(k, 0)
			e.Grad.Set(k, 0, e.Grad.At(k, 0)+a*(o.Grad.At(k, 0)-dots[seg[k]]))
		}
	})
	return o
}
