package ops

import "github.com/born-ml/notebooks/internal/tensor"

// ReshapeOp represents a reshape (view) of x.
type ReshapeOp struct{ record }

// NewReshapeOp creates a new ReshapeOp.
func NewReshapeOp(x, output *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{newRecord(output, x)}
}

// Name returns "ViewBackward0".
func (op *ReshapeOp) Name() string { return "ViewBackward0" }

// Backward reshapes the gradient back to x's shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(outputGrad, op.inputs[0].Shape())}
}

// UnsqueezeOp represents inserting a size-1 dimension into x.
type UnsqueezeOp struct{ record }

// NewUnsqueezeOp creates a new UnsqueezeOp.
func NewUnsqueezeOp(x, output *tensor.RawTensor) *UnsqueezeOp {
	return &UnsqueezeOp{newRecord(output, x)}
}

// Name returns "UnsqueezeBackward0".
func (op *UnsqueezeOp) Name() string { return "UnsqueezeBackward0" }

// Backward drops the inserted dimension from the gradient.
func (op *UnsqueezeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(outputGrad, op.inputs[0].Shape())}
}

// TransposeOp represents a permutation of x's dimensions.
type TransposeOp struct {
	record
	axes []int
}

// NewTransposeOp creates a new TransposeOp. axes is the permutation applied
// in the forward pass.
func NewTransposeOp(x, output *tensor.RawTensor, axes []int) *TransposeOp {
	return &TransposeOp{record: newRecord(output, x), axes: append([]int(nil), axes...)}
}

// Name returns "TBackward0" for a 2-D transpose and "PermuteBackward0"
// otherwise.
func (op *TransposeOp) Name() string {
	if len(op.axes) == 2 {
		return "TBackward0"
	}
	return "PermuteBackward0"
}

// Backward applies the inverse permutation to the gradient.
func (op *TransposeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inverse := make([]int, len(op.axes))
	for i, ax := range op.axes {
		inverse[ax] = i
	}
	return []*tensor.RawTensor{backend.Transpose(outputGrad, inverse...)}
}
