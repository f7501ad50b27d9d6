package autograd

import (
	"gonum.org/v1/gonum/mat"
)

// Tensor couples a value matrix with its gradient. Constants carry a nil
// Grad and never accumulate; parameters and grad-carrying intermediates
// accumulate into Grad during Tape.Backward.
type Tensor struct {
	Value *mat.Dense
	Grad  *mat.Dense
}

// NewParam wraps v as a trainable parameter with a zeroed gradient.
func NewParam(v *mat.Dense) *Tensor {
	r, c := v.Dims()
	return &Tensor{Value: v, Grad: mat.NewDense(r, c, nil)}
}

// NewConst wraps v as a constant; no gradient is ever accumulated into it.
func NewConst(v *mat.Dense) *Tensor {
	return &Tensor{Value: v}
}

// ZeroGrad clears the accumulated gradient, if any.
func (t *Tensor) ZeroGrad() {
	if t.Grad != nil {
		t.Grad.Zero()
	}
}

// Dims returns the value's dimensions.
func (t *Tensor) Dims() (r, c int) { return t.Value.Dims() }

// Tape records backward closures in forward order. The zero Tape records
// gradients; NoGrad yields a tape that skips recording for inference.
type Tape struct {
	noGrad bool
	ops    []func()
}

// New returns a recording tape for one training step.
func New() *Tape { return &Tape{} }

// NoGrad returns a non-recording tape: forward passes run, Backward is a no-op,
// and intermediates carry no gradients.
func NoGrad() *Tape { return &Tape{noGrad: true} }

// Backward seeds the 1×1 loss gradient with 1 and replays all recorded
// operations in reverse, accumulating into every reachable Grad.
// The tape is spent afterwards.
func (t *Tape) Backward(loss *Tensor) {
	if t.noGrad || loss.Grad == nil {
		return
	}
	loss.Grad.Set(0, 0, 1)
	for i := len(t.ops) - 1; i >= 0; i-- {
		t.ops[i]()
	}
	t.ops = nil
}

// out allocates the result tensor for an op: it carries a gradient when the
// tape records and at least one input does.
func (t *Tape) out(v *mat.Dense, inputs ...*Tensor) *Tensor {
	if t.noGrad {
		return NewConst(v)
	}
	for _, in := range inputs {
		if in.Grad != nil {
			return NewParam(v)
		}
	}
	return NewConst(v)
}

// record appends a backward closure unless the output is a constant.
func (t *Tape) record(o *Tensor, f func()) {
	if o.Grad == nil {
		return
	}
	t.ops = append(t.ops, f)
}

// accumulate adds delta into dst if dst participates in gradients.
func accumulate(dst *Tensor, delta mat.Matrix) {
	if dst.Grad == nil {
		return
	}
	dst.Grad.Add(dst.Grad, delta)
}
