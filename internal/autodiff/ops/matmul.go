package ops

import "github.com/born-ml/notebooks/internal/tensor"

// MatMulOp represents 2-D matrix multiplication: output = a @ b.
//
//	d(A@B)/dA = outputGrad @ B^T
//	d(A@B)/dB = A^T @ outputGrad
type MatMulOp struct{ record }

// NewMatMulOp creates a new MatMulOp.
func NewMatMulOp(a, b, output *tensor.RawTensor) *MatMulOp {
	return &MatMulOp{newRecord(output, a, b)}
}

// Name returns "MmBackward0".
func (op *MatMulOp) Name() string { return "MmBackward0" }

// Backward computes input gradients for matrix multiplication.
func (op *MatMulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]
	return []*tensor.RawTensor{
		backend.MatMul(outputGrad, backend.Transpose(b, 1, 0)),
		backend.MatMul(backend.Transpose(a, 1, 0), outputGrad),
	}
}

// BatchMatMulOp represents batched 3-D matrix multiplication: output = a @ b
// for each batch index.
type BatchMatMulOp struct{ record }

// NewBatchMatMulOp creates a new BatchMatMulOp.
func NewBatchMatMulOp(a, b, output *tensor.RawTensor) *BatchMatMulOp {
	return &BatchMatMulOp{newRecord(output, a, b)}
}

// Name returns "BmmBackward0".
func (op *BatchMatMulOp) Name() string { return "BmmBackward0" }

// Backward computes gradients per batch:
//
//	dL/dA = dL/dC @ B^T
//	dL/dB = A^T @ dL/dC
func (op *BatchMatMulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]
	return []*tensor.RawTensor{
		backend.BatchMatMul(outputGrad, transposeLast2(b, backend)),
		backend.BatchMatMul(transposeLast2(a, backend), outputGrad),
	}
}

// BroadcastMatMulOp represents matmul with vector promotion and batch
// broadcasting (see tensor.Backend.BroadcastMatMul).
type BroadcastMatMulOp struct{ record }

// NewBroadcastMatMulOp creates a new BroadcastMatMulOp.
func NewBroadcastMatMulOp(a, b, output *tensor.RawTensor) *BroadcastMatMulOp {
	return &BroadcastMatMulOp{newRecord(output, a, b)}
}

// Name returns "MatmulBackward0".
func (op *BroadcastMatMulOp) Name() string { return "MatmulBackward0" }

// Backward promotes 1-D operands to matrices, applies the matmul rule on the
// broadcast batch, then sums the gradients back to each operand's shape.
func (op *BroadcastMatMulOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	a, b := op.inputs[0], op.inputs[1]
	aShape, bShape := a.Shape(), b.Shape()

	aMat, bMat := a, b
	if len(aShape) == 1 {
		aMat = backend.Reshape(a, tensor.Shape{1, aShape[0]})
	}
	if len(bShape) == 1 {
		bMat = backend.Reshape(b, tensor.Shape{bShape[0], 1})
	}

	// Restore the matrix dimensions the forward pass dropped.
	aMS, bMS := aMat.Shape(), bMat.Shape()
	batch, _, err := tensor.BroadcastShapes(aMS[:len(aMS)-2], bMS[:len(bMS)-2])
	if err != nil {
		panic("MatmulBackward0: " + err.Error())
	}
	fullShape := append(batch.Clone(), aMS[len(aMS)-2], bMS[len(bMS)-1])
	grad := backend.Reshape(outputGrad, fullShape)

	gradA := backend.BroadcastMatMul(grad, transposeLast2(bMat, backend))
	gradB := backend.BroadcastMatMul(transposeLast2(aMat, backend), grad)

	gradA = reduceBroadcast(gradA, aMS, backend)
	gradB = reduceBroadcast(gradB, bMS, backend)

	return []*tensor.RawTensor{
		backend.Reshape(gradA, aShape),
		backend.Reshape(gradB, bShape),
	}
}
