package autograd

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// MatMul returns a·b.
func (t *Tape) MatMul(a, b *Tensor) *Tensor {
	var v mat.Dense
	v.Mul(a.Value, b.Value)
	o := t.out(&v, a, b)
	t.record(o, func() {
		if a.Grad != nil {
			var d mat.Dense
			d.Mul(o.Grad, b.Value.T())
			a.Grad.Add(a.Grad, &d)
		}
		if b.Grad != nil {
			var d mat.Dense
			d.Mul(a.Value.T(), o.Grad)
			b.Grad.Add(b.Grad, &d)
		}
	})
	return o
}

// Transpose returns aᵀ.
func (t *Tape) Transpose(a *Tensor) *Tensor {
	var v mat.Dense
	v.CloneFrom(a.Value.T())
	o := t.out(&v, a)
	t.record(o, func() {
		var d mat.Dense
		d.CloneFrom(o.Grad.T())
		accumulate(a, &d)
	})
	return o
}

// Add returns a + b (same shape).
func (t *Tape) Add(a, b *Tensor) *Tensor {
	var v mat.Dense
	v.Add(a.Value, b.Value)
	o := t.out(&v, a, b)
	t.record(o, func() {
		accumulate(a, o.Grad)
		accumulate(b, o.Grad)
	})
	return o
}

// Sub returns a − b (same shape).
func (t *Tape) Sub(a, b *Tensor) *Tensor {
	var v mat.Dense
	v.Sub(a.Value, b.Value)
	o := t.out(&v, a, b)
	t.record(o, func() {
		accumulate(a, o.Grad)
		if b.Grad != nil {
			var d mat.Dense
			d.Scale(-1, o.Grad)
			b.Grad.Add(b.Grad, &d)
		}
	})
	return o
}

// AddRow broadcasts the 1×C row r over every row of the N×C tensor x.
func (t *Tape) AddRow(x, r *Tensor) *Tensor {
	n, c := x.Dims()
	v := mat.NewDense(n, c, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			v.Set(i, j, x.Value.At(i, j)+r.Value.At(0, j))
		}
	}
	o := t.out(v, x, r)
	t.record(o, func() {
		accumulate(x, o.Grad)
		if r.Grad != nil {
			for j := 0; j < c; j++ {
				s := 0.0
				for i := 0; i < n; i++ {
					s += o.Grad.At(i, j)
				}
				r.Grad.Set(0, j, r.Grad.At(0, j)+s)
			}
		}
	})
	return o
}

// MulRow broadcasts the 1×C row r multiplicatively over every row of x.
func (t *Tape) MulRow(x, r *Tensor) *Tensor {
	n, c := x.Dims()
	v := mat.NewDense(n, c, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			v.Set(i, j, x.Value.At(i, j)*r.Value.At(0, j))
		}
	}
	o := t.out(v, x, r)
	t.record(o, func() {
		if x.Grad != nil {
			for i := 0; i < n; i++ {
				for j := 0; j < c; j++ {
					x.Grad.Set(i, j, x.Grad.At(i, j)+o.Grad.At(i, j)*r.Value.At(0, j))
				}
			}
		}
		if r.Grad != nil {
			for j := 0; j < c; j++ {
				s := 0.0
				for i := 0; i < n; i++ {
					s += o.Grad.At(i, j) * x.Value.At(i, j)
				}
				r.Grad.Set(0, j, r.Grad.At(0, j)+s)
			}
		}
	})
	return o
}

// Scale returns s·a.
func (t *Tape) Scale(a *Tensor, s float64) *Tensor {
	var v mat.Dense
	v.Scale(s, a.Value)
	o := t.out(&v, a)
	t.record(o, func() {
		var d mat.Dense
		d.Scale(s, o.Grad)
		accumulate(a, &d)
	})
	return o
}

// MulElem returns the Hadamard product a ∘ b. MulElem(a, a) differentiates
// correctly: both accumulation paths fire, yielding 2·a∘grad.
func (t *Tape) MulElem(a, b *Tensor) *Tensor {
	var v mat.Dense
	v.MulElem(a.Value, b.Value)
	o := t.out(&v, a, b)
	t.record(o, func() {
		if a.Grad != nil {
			var d mat.Dense
			d.MulElem(o.Grad, b.Value)
			a.Grad.Add(a.Grad, &d)
		}
		if b.Grad != nil {
			var d mat.Dense
			d.MulElem(o.Grad, a.Value)
			b.Grad.Add(b.Grad, &d)
		}
	})
	return o
}

// ReLU returns max(a, 0) elementwise.
func (t *Tape) ReLU(a *Tensor) *Tensor {
	var v mat.Dense
	v.Apply(func(_, _ int, x float64) float64 { return math.Max(x, 0) }, a.Value)
	o := t.out(&v, a)
	t.record(o, func() {
		if a.Grad == nil {
			return
		}
		var d mat.Dense
		d.Apply(func(i, j int, g float64) float64 {
			if a.Value.At(i, j) > 0 {
				return g
			}
			return 0
		}, o.Grad)
		a.Grad.Add(a.Grad, &d)
	})
	return o
}

// LeakyReLU returns a where positive, slope·a elsewhere.
func (t *Tape) LeakyReLU(a *Tensor, slope float64) *Tensor {
	var v mat.Dense
	v.Apply(func(_, _ int, x float64) float64 {
		if x > 0 {
			return x
		}
		return slope * x
	}, a.Value)
	o := t.out(&v, a)
	t.record(o, func() {
		if a.Grad == nil {
			return
		}
		var d mat.Dense
		d.Apply(func(i, j int, g float64) float64 {
			if a.Value.At(i, j) > 0 {
				return g
			}
			return slope * g
		}, o.Grad)
		a.Grad.Add(a.Grad, &d)
	})
	return o
}

// Sigmoid returns 1/(1+e^{−a}) elementwise.
func (t *Tape) Sigmoid(a *Tensor) *Tensor {
	var v mat.Dense
	v.Apply(func(_, _ int, x float64) float64 { return 1 / (1 + math.Exp(-x)) }, a.Value)
	o := t.out(&v, a)
	t.record(o, func() {
		if a.Grad == nil {
			return
		}
		var d mat.Dense
		d.Apply(func(i, j int, g float64) float64 {
			s := v.At(i, j)
			return g * s * (1 - s)
		}, o.Grad)
		a.Grad.Add(a.Grad, &d)
	})
	return o
}

// Log returns ln(a) elementwise.
func (t *Tape) Log(a *Tensor) *Tensor {
	var v mat.Dense
	v.Apply(func(_, _ int, x float64) float64 { return math.Log(x) }, a.Value)
	o := t.out(&v, a)
	t.record(o, func() {
		if a.Grad == nil {
			return
		}
		var d mat.Dense
		d.Apply(func(i, j int, g float64) float64 {
			return g / a.Value.At(i, j)
		}, o.Grad)
		a.Grad.Add(a.Grad, &d)
	})
	return o
}

// Clamp limits a into [lo, hi]. Gradient passes only where the input
// already lies inside the interval.
func (t *Tape) Clamp(a *Tensor, lo, hi float64) *Tensor {
	var v mat.Dense
	v.Apply(func(_, _ int, x float64) float64 {
		return math.Min(math.Max(x, lo), hi)
	}, a.Value)
	o := t.out(&v, a)
	t.record(o, func() {
		if a.Grad == nil {
			return
		}
		var d mat.Dense
		d.Apply(func(i, j int, g float64) float64 {
			x := a.Value.At(i, j)
			if x < lo || x > hi {
				return 0
			}
			return g
		}, o.Grad)
		a.Grad.Add(a.Grad, &d)
	})
	return o
}

// MeanAll reduces a to its 1×1 arithmetic mean.
func (t *Tape) MeanAll(a *Tensor) *Tensor {
	r, c := a.Dims()
	v := mat.NewDense(1, 1, []float64{mat.Sum(a.Value) / float64(r*c)})
	o := t.out(v, a)
	t.record(o, func() {
		if a.Grad == nil {
			return
		}
		g := o.Grad.At(0, 0) / float64(r*c)
		var d mat.Dense
		d.Apply(func(_, _ int, _ float64) float64 { return g }, a.Value)
		a.Grad.Add(a.Grad, &d)
	})
	return o
}
