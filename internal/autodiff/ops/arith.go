package ops

import "github.com/born-ml/notebooks/internal/tensor"

// AddOp represents output = a + b.
//
// d(a+b)/da = d(a+b)/db = 1, so the output gradient flows to both inputs,
// summed over any broadcast dimensions.
type AddOp struct{ record }

// NewAddOp creates a new AddOp.
func NewAddOp(a, b, output *tensor.RawTensor) *AddOp {
	return &AddOp{newRecord(output, a, b)}
}

// Name returns "AddBackward0".
func (op *AddOp) Name() string { return "AddBackward0" }

// Backward computes input gradients for addition.
func (op *AddOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]
	return []*tensor.RawTensor{
		reduceBroadcast(outputGrad, a.Shape(), backend),
		reduceBroadcast(outputGrad, b.Shape(), backend),
	}
}

// SubOp represents output = a - b.
type SubOp struct{ record }

// NewSubOp creates a new SubOp.
func NewSubOp(a, b, output *tensor.RawTensor) *SubOp {
	return &SubOp{newRecord(output, a, b)}
}

// Name returns "SubBackward0".
func (op *SubOp) Name() string { return "SubBackward0" }

// Backward returns grad for a and -grad for b.
func (op *SubOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]
	return []*tensor.RawTensor{
		reduceBroadcast(outputGrad, a.Shape(), backend),
		reduceBroadcast(backend.Neg(outputGrad), b.Shape(), backend),
	}
}

// MulOp represents element-wise output = a * b.
//
// d(a*b)/da = b and d(a*b)/db = a.
type MulOp struct{ record }

// NewMulOp creates a new MulOp.
func NewMulOp(a, b, output *tensor.RawTensor) *MulOp {
	return &MulOp{newRecord(output, a, b)}
}

// Name returns "MulBackward0".
func (op *MulOp) Name() string { return "MulBackward0" }

// Backward computes input gradients for multiplication.
func (op *MulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]
	return []*tensor.RawTensor{
		reduceBroadcast(backend.Mul(outputGrad, b), a.Shape(), backend),
		reduceBroadcast(backend.Mul(outputGrad, a), b.Shape(), backend),
	}
}

// DivOp represents element-wise output = a / b.
//
// d(a/b)/da = 1/b and d(a/b)/db = -a/b².
type DivOp struct{ record }

// NewDivOp creates a new DivOp.
func NewDivOp(a, b, output *tensor.RawTensor) *DivOp {
	return &DivOp{newRecord(output, a, b)}
}

// Name returns "DivBackward0".
func (op *DivOp) Name() string { return "DivBackward0" }

// Backward computes input gradients for division.
func (op *DivOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]

	gradA := backend.Div(outputGrad, b)

	// -grad * a / b² == -(grad * output) / b
	gradB := backend.Neg(backend.Div(backend.Mul(outputGrad, op.output), b))

	return []*tensor.RawTensor{
		reduceBroadcast(gradA, a.Shape(), backend),
		reduceBroadcast(gradB, b.Shape(), backend),
	}
}

// NegOp represents output = -x.
type NegOp struct{ record }

// NewNegOp creates a new NegOp.
func NewNegOp(x, output *tensor.RawTensor) *NegOp {
	return &NegOp{newRecord(output, x)}
}

// Name returns "NegBackward0".
func (op *NegOp) Name() string { return "NegBackward0" }

// Backward returns -grad.
func (op *NegOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Neg(outputGrad)}
}

// AbsOp represents output = |x|.
//
// d|x|/dx = sign(x), with sign(0) = 0.
type AbsOp struct{ record }

// NewAbsOp creates a new AbsOp.
func NewAbsOp(x, output *tensor.RawTensor) *AbsOp {
	return &AbsOp{newRecord(output, x)}
}

// Name returns "AbsBackward0".
func (op *AbsOp) Name() string { return "AbsBackward0" }

// Backward returns grad * sign(x).
func (op *AbsOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, sign(op.inputs[0]))}
}
