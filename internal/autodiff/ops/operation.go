// Package ops defines the differentiable operations recorded on the gradient
// tape.
//
// Each operation keeps its inputs and output from the forward pass and
// computes input gradients in the backward pass. Name returns the
// backward-function name shown when the provenance graph is inspected.
package ops

import "github.com/born-ml/notebooks/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
type Operation interface {
	// Name returns the backward-function name, e.g. "AddBackward0".
	Name() string

	// Backward computes gradients for inputs given the output gradient.
	// The result has one entry per input, in input order.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors in positional order.
	Inputs() []*tensor.RawTensor

	// Output returns the tensor produced by this operation.
	Output() *tensor.RawTensor
}

// record holds the tensors every operation keeps from its forward pass.
type record struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

func newRecord(output *tensor.RawTensor, inputs ...*tensor.RawTensor) record {
	return record{inputs: inputs, output: output}
}

// Inputs returns the input tensors.
func (r *record) Inputs() []*tensor.RawTensor {
	return r.inputs
}

// Output returns the output tensor.
func (r *record) Output() *tensor.RawTensor {
	return r.output
}
