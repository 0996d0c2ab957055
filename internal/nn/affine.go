package nn

import (
	"math/rand"

	"github.com/born-ml/notebooks/internal/tensor"
)

// Affine is the two-parameter model y = w*x + b.
//
// Unlike Linear, the product is elementwise, so the recorded graph is
//
//	AddBackward0
//	    MulBackward0
//	        AccumulateGrad   (w)
//	        ...              (x, when tracked)
//	    AccumulateGrad       (b)
//
// Both parameters have shape [1] and broadcast against the input.
type Affine[B tensor.Backend] struct {
	weight *Parameter[B]
	bias   *Parameter[B]
}

// NewAffine creates the model with fixed parameter values.
func NewAffine[B tensor.Backend](w, b float32, backend B) *Affine[B] {
	return &Affine[B]{
		weight: NewParameter("weight", tensor.Full[float32](tensor.Shape{1}, w, backend)),
		bias:   NewParameter("bias", tensor.Full[float32](tensor.Shape{1}, b, backend)),
	}
}

// NewRandomAffine creates the model with w and b drawn from U(-1, 1).
func NewRandomAffine[B tensor.Backend](rng *rand.Rand, backend B) *Affine[B] {
	return &Affine[B]{
		weight: NewParameter("weight", Uniform(rng, -1, 1, tensor.Shape{1}, backend)),
		bias:   NewParameter("bias", Uniform(rng, -1, 1, tensor.Shape{1}, backend)),
	}
}

// Forward computes w*x + b.
func (a *Affine[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return a.weight.Tensor().Mul(x).Add(a.bias.Tensor())
}

// Parameters returns [weight, bias].
func (a *Affine[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{a.weight, a.bias}
}

// Weight returns the weight parameter.
func (a *Affine[B]) Weight() *Parameter[B] {
	return a.weight
}

// Bias returns the bias parameter.
func (a *Affine[B]) Bias() *Parameter[B] {
	return a.bias
}
