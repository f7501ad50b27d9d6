package gnn

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/thermograph/autograd"
)

// Adam default moment coefficients.
const (
	adamBeta1 = 0.9
	adamBeta2 = 0.999
	adamEps   = 1e-8
)

// Adam applies the Adam update rule to a fixed parameter list, one step
// per call. Moment estimates are kept per parameter for the optimizer's
// lifetime.
type Adam struct {
	lr     float64
	params []*autograd.Tensor
	m, v   []*mat.Dense
	step   int
}

// NewAdam creates an optimizer over params with the given learning rate.
func NewAdam(params []*autograd.Tensor, lr float64) *Adam {
	a := &Adam{lr: lr, params: params}
	for _, p := range params {
		r, c := p.Dims()
		a.m = append(a.m, mat.NewDense(r, c, nil))
		a.v = append(a.v, mat.NewDense(r, c, nil))
	}
	return a
}

// ZeroGrad clears every parameter gradient before a forward/backward pass.
func (a *Adam) ZeroGrad() {
	for _, p := range a.params {
		p.ZeroGrad()
	}
}

// Step applies one Adam update from the accumulated gradients.
func (a *Adam) Step() {
	a.step++
	c1 := 1 - math.Pow(adamBeta1, float64(a.step))
	c2 := 1 - math.Pow(adamBeta2, float64(a.step))
	for pi, p := range a.params {
		r, c := p.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				g := p.Grad.At(i, j)
				m := adamBeta1*a.m[pi].At(i, j) + (1-adamBeta1)*g
				v := adamBeta2*a.v[pi].At(i, j) + (1-adamBeta2)*g*g
				a.m[pi].Set(i, j, m)
				a.v[pi].Set(i, j, v)
				p.Value.Set(i, j, p.Value.At(i, j)-a.lr*(m/c1)/(math.Sqrt(v/c2)+adamEps))
			}
		}
	}
}
