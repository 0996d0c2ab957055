package ops

import "github.com/born-ml/notebooks/internal/tensor"

// SumOp represents the full reduction output = sum(x).
type SumOp struct{ record }

// NewSumOp creates a new SumOp.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{newRecord(output, x)}
}

// Name returns "SumBackward0".
func (op *SumOp) Name() string { return "SumBackward0" }

// Backward broadcasts the scalar gradient to x's shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{broadcastTo(outputGrad, op.inputs[0].Shape(), backend)}
}

// SumDimOp represents output = sum(x, dim).
type SumDimOp struct {
	record
	dim     int
	keepDim bool
}

// NewSumDimOp creates a new SumDimOp. dim must already be non-negative.
func NewSumDimOp(x, output *tensor.RawTensor, dim int, keepDim bool) *SumDimOp {
	return &SumDimOp{record: newRecord(output, x), dim: dim, keepDim: keepDim}
}

// Name returns "SumBackward1", the name engines use for dimension-wise sums.
func (op *SumDimOp) Name() string { return "SumBackward1" }

// Backward restores the reduced dimension and broadcasts along it.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	grad := outputGrad
	if !op.keepDim {
		grad = backend.Unsqueeze(grad, op.dim)
	}
	return []*tensor.RawTensor{broadcastTo(grad, x.Shape(), backend)}
}

// MeanOp represents the full reduction output = mean(x).
//
// Every element of x receives grad / numel(x).
type MeanOp struct{ record }

// NewMeanOp creates a new MeanOp.
func NewMeanOp(x, output *tensor.RawTensor) *MeanOp {
	return &MeanOp{newRecord(output, x)}
}

// Name returns "MeanBackward0".
func (op *MeanOp) Name() string { return "MeanBackward0" }

// Backward computes grad / n broadcast to x's shape.
func (op *MeanOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	x := op.inputs[0]
	gradX := broadcastTo(outputGrad, x.Shape(), backend)
	n := float64(x.NumElements())

	switch gradX.DType() {
	case tensor.Float32:
		data := gradX.AsFloat32()
		for i := range data {
			data[i] /= float32(n)
		}
	case tensor.Float64:
		data := gradX.AsFloat64()
		for i := range data {
			data[i] /= n
		}
	}

	return []*tensor.RawTensor{gradX}
}
