package nn

import (
	"github.com/born-ml/notebooks/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// The wrapped tensor is a tracked leaf: operations on it are recorded by an
// autodiff backend and its provenance graph ends in an AccumulateGrad marker.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	w := weight.Tensor()
//
//	// After a backward pass
//	grad := weight.Grad()
type Parameter[B tensor.Backend] struct {
	name   string                     // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Tensor[float32, B] // The parameter tensor
	grad   *tensor.Tensor[float32, B] // Gradient tensor (set after backward pass)
}

// NewParameter creates a new trainable parameter and marks its tensor as
// requiring gradients.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t.RequireGrad(),
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Grad returns the gradient tensor, or nil before a backward pass.
func (p *Parameter[B]) Grad() *tensor.Tensor[float32, B] {
	return p.grad
}

// SetGrad sets the gradient tensor.
func (p *Parameter[B]) SetGrad(grad *tensor.Tensor[float32, B]) {
	p.grad = grad
}

// ZeroGrad clears the gradient tensor.
func (p *Parameter[B]) ZeroGrad() {
	p.grad = nil
}

// CollectGrads copies the gradients computed by a backward pass into params.
// Parameters that did not contribute to the result keep a nil gradient.
func CollectGrads[B tensor.Backend](grads map[*tensor.RawTensor]*tensor.RawTensor, params []*Parameter[B]) {
	for _, p := range params {
		g, ok := grads[p.tensor.Raw()]
		if !ok {
			p.grad = nil
			continue
		}
		p.grad = tensor.New[float32, B](g, p.tensor.Backend())
	}
}
