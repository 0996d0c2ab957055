package tensor

import "github.com/born-ml/notebooks/internal/gradgraph"

// Backend defines the interface that compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Kernels panic on shape or dtype misuse; this mirrors the behavior of the
// numerical libraries the notebooks demonstrate.
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// MatMul multiplies two 2-D matrices: [M, K] @ [K, N] -> [M, N].
	// Any other rank is rejected.
	MatMul(a, b *RawTensor) *RawTensor

	// BatchMatMul multiplies two stacks of matrices with equal batch size:
	// [B, M, K] @ [B, K, N] -> [B, M, N]. Only 3-D inputs are accepted.
	BatchMatMul(a, b *RawTensor) *RawTensor

	// BroadcastMatMul follows general matmul rules: 1-D operands are
	// promoted to matrices and leading batch dimensions broadcast.
	BroadcastMatMul(a, b *RawTensor) *RawTensor

	// Element-wise math
	Abs(x *RawTensor) *RawTensor
	Neg(x *RawTensor) *RawTensor

	// Reductions
	Sum(x *RawTensor) *RawTensor                           // total sum (scalar result)
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor // sum along dimension
	Mean(x *RawTensor) *RawTensor                          // mean of all elements (scalar result)

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor
	Unsqueeze(t *RawTensor, dim int) *RawTensor

	// Metadata
	Name() string
	Device() Device
}

// GradFnProvider is implemented by backends that record provenance for the
// tensors they produce (see internal/autodiff).
type GradFnProvider interface {
	// GradFn returns the backward node that produced raw, or nil when raw is
	// a leaf or was not produced by a recorded operation.
	GradFn(raw *RawTensor) *gradgraph.Node
}
