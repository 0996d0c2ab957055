// Package autodiff implements reverse-mode automatic differentiation using
// the decorator pattern.
//
// AutodiffBackend wraps any tensor.Backend and records every operation whose
// inputs are tracked (RequiresGrad) on a GradientTape. The tape serves two
// purposes:
//   - Backward walks it in reverse to compute gradients.
//   - It grows a provenance graph (internal/gradgraph) linking each result
//     to the operations and leaves it was computed from; GradFn reads it.
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	w := tensor.Full[float32](tensor.Shape{1}, 0.5, backend).RequireGrad()
//	x := tensor.Full[float32](tensor.Shape{1}, 2, backend)
//	y := w.Mul(x)
//
//	gradgraph.Print(os.Stdout, y) // MulBackward0 / AccumulateGrad
//	grads := autodiff.Backward(y, backend)
//	fmt.Println(grads[w.Raw()]) // dy/dw = x
package autodiff

import (
	"github.com/born-ml/notebooks/internal/autodiff/ops"
	"github.com/born-ml/notebooks/internal/gradgraph"
	"github.com/born-ml/notebooks/internal/tensor"
)

// AutodiffBackend wraps a Backend and adds automatic differentiation.
// It implements tensor.Backend and tensor.GradFnProvider.
type AutodiffBackend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

// Compile-time checks.
var (
	_ tensor.Backend        = (*AutodiffBackend[tensor.Backend])(nil)
	_ tensor.GradFnProvider = (*AutodiffBackend[tensor.Backend])(nil)
)

// New creates a new AutodiffBackend wrapping the given backend.
// Recording is off until Tape().StartRecording() is called.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control.
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// GradFn returns the backward node of the operation that produced raw.
//
// Leaves, untracked tensors and tensors produced before the tape was last
// cleared have no backward node; nil is returned for them.
func (b *AutodiffBackend[B]) GradFn(raw *tensor.RawTensor) *gradgraph.Node {
	return b.tape.Node(raw)
}

// shouldRecord reports whether an operation on inputs must be recorded:
// the tape is recording and at least one input is tracked.
func (b *AutodiffBackend[B]) shouldRecord(inputs ...*tensor.RawTensor) bool {
	if !b.tape.IsRecording() {
		return false
	}
	for _, in := range inputs {
		if in.RequiresGrad() {
			return true
		}
	}
	return false
}

// record puts op on the tape and marks its output as tracked.
func (b *AutodiffBackend[B]) record(op ops.Operation) {
	op.Output().SetRequiresGrad(true)
	b.tape.Record(op)
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Add(a, c)
	if b.shouldRecord(a, c) {
		b.record(ops.NewAddOp(a, c, result))
	}
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *AutodiffBackend[B]) Sub(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sub(a, c)
	if b.shouldRecord(a, c) {
		b.record(ops.NewSubOp(a, c, result))
	}
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *AutodiffBackend[B]) Mul(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mul(a, c)
	if b.shouldRecord(a, c) {
		b.record(ops.NewMulOp(a, c, result))
	}
	return result
}

// Div performs element-wise division and records the operation.
func (b *AutodiffBackend[B]) Div(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Div(a, c)
	if b.shouldRecord(a, c) {
		b.record(ops.NewDivOp(a, c, result))
	}
	return result
}

// MatMul performs 2-D matrix multiplication and records the operation.
func (b *AutodiffBackend[B]) MatMul(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.MatMul(a, c)
	if b.shouldRecord(a, c) {
		b.record(ops.NewMatMulOp(a, c, result))
	}
	return result
}

// BatchMatMul performs batched 3-D matrix multiplication and records the
// operation.
func (b *AutodiffBackend[B]) BatchMatMul(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.BatchMatMul(a, c)
	if b.shouldRecord(a, c) {
		b.record(ops.NewBatchMatMulOp(a, c, result))
	}
	return result
}

// BroadcastMatMul performs broadcasting matrix multiplication and records
// the operation.
func (b *AutodiffBackend[B]) BroadcastMatMul(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.BroadcastMatMul(a, c)
	if b.shouldRecord(a, c) {
		b.record(ops.NewBroadcastMatMulOp(a, c, result))
	}
	return result
}

// Abs computes |x| and records the operation.
func (b *AutodiffBackend[B]) Abs(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Abs(x)
	if b.shouldRecord(x) {
		b.record(ops.NewAbsOp(x, result))
	}
	return result
}

// Neg computes -x and records the operation.
func (b *AutodiffBackend[B]) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Neg(x)
	if b.shouldRecord(x) {
		b.record(ops.NewNegOp(x, result))
	}
	return result
}

// Sum reduces x to a scalar and records the operation.
func (b *AutodiffBackend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sum(x)
	if b.shouldRecord(x) {
		b.record(ops.NewSumOp(x, result))
	}
	return result
}

// SumDim sums x along dim and records the operation.
func (b *AutodiffBackend[B]) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	result := b.inner.SumDim(x, dim, keepDim)
	if b.shouldRecord(x) {
		if dim < 0 {
			dim += len(x.Shape())
		}
		b.record(ops.NewSumDimOp(x, result, dim, keepDim))
	}
	return result
}

// Mean averages x and records the operation.
func (b *AutodiffBackend[B]) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mean(x)
	if b.shouldRecord(x) {
		b.record(ops.NewMeanOp(x, result))
	}
	return result
}

// Reshape reshapes x and records the operation.
//
// The backend copies data, so the result is a new tensor; without the
// record, gradients would stop at the reshaped copy and never reach x.
func (b *AutodiffBackend[B]) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result := b.inner.Reshape(x, newShape)
	if b.shouldRecord(x) {
		b.record(ops.NewReshapeOp(x, result))
	}
	return result
}

// Unsqueeze inserts a size-1 dimension and records the operation.
func (b *AutodiffBackend[B]) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	result := b.inner.Unsqueeze(x, dim)
	if b.shouldRecord(x) {
		b.record(ops.NewUnsqueezeOp(x, result))
	}
	return result
}

// Transpose permutes x's dimensions and records the operation.
func (b *AutodiffBackend[B]) Transpose(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	ndim := len(x.Shape())
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	result := b.inner.Transpose(x, axes...)
	if b.shouldRecord(x) {
		b.record(ops.NewTransposeOp(x, result, axes))
	}
	return result
}
