// Package nn implements the small neural network modules the notebooks
// train and inspect.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Parameter: Trainable parameters with gradient tracking
//   - Affine: Two-parameter model y = w*x + b
//   - Linear: Fully connected layer
//   - Loss functions: L1, MSE
//
// Modules only call tensor operations, so every step of a forward pass on an
// autodiff backend is recorded and shows up in the provenance graph.
package nn

import (
	"github.com/born-ml/notebooks/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module.
	Parameters() []*Parameter[B]
}
