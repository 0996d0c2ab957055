package cpu

import "github.com/born-ml/notebooks/internal/tensor"

// MatMul performs 2-D matrix multiplication: (M, K) @ (K, N) -> (M, N).
// Inputs of any other rank are rejected; see BatchMatMul and
// BroadcastMatMul for stacked matrices.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panicf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape))
	}
	if a.DType() != b.DType() {
		panicf("matmul: dtype mismatch %s vs %s", a.DType(), b.DType())
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		panicf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n)
	}

	result := cpu.newResult("matmul", tensor.Shape{m, n}, a.DType())
	matmulDispatch(result, a, b, 1, m, k, n, nil)
	return result
}

// matmulDispatch runs batch independent (m,k)@(k,n) products. offsets maps a
// batch index to the element offsets of its a and b matrices; nil means the
// matrices are laid out contiguously one after another.
func matmulDispatch(result, a, b *tensor.RawTensor, batch, m, k, n int, offsets func(i int) (int, int)) {
	switch a.DType() {
	case tensor.Float32:
		matmulBatched(tensor.AsSlice[float32](result), tensor.AsSlice[float32](a), tensor.AsSlice[float32](b), batch, m, k, n, offsets)
	case tensor.Float64:
		matmulBatched(tensor.AsSlice[float64](result), tensor.AsSlice[float64](a), tensor.AsSlice[float64](b), batch, m, k, n, offsets)
	case tensor.Int32:
		matmulBatched(tensor.AsSlice[int32](result), tensor.AsSlice[int32](a), tensor.AsSlice[int32](b), batch, m, k, n, offsets)
	case tensor.Int64:
		matmulBatched(tensor.AsSlice[int64](result), tensor.AsSlice[int64](a), tensor.AsSlice[int64](b), batch, m, k, n, offsets)
	default:
		panicf("matmul: unsupported dtype %s", a.DType())
	}
}

func matmulBatched[T tensor.DType](c, a, b []T, batch, m, k, n int, offsets func(i int) (int, int)) {
	for i := 0; i < batch; i++ {
		aOff, bOff := i*m*k, i*k*n
		if offsets != nil {
			aOff, bOff = offsets(i)
		}
		matmulInto(c[i*m*n:(i+1)*m*n], a[aOff:aOff+m*k], b[bOff:bOff+k*n], m, k, n)
	}
}

// matmulInto computes C[i,j] = sum_k A[i,k] * B[k,j] for row-major operands.
func matmulInto[T tensor.DType](c, a, b []T, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum T
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a[i*k+kIdx] * b[kIdx*n+j]
			}
			c[i*n+j] = sum
		}
	}
}

// BroadcastMatMul multiplies with general matmul semantics:
//
//   - 1-D @ 1-D is a dot product (0-D result)
//   - a 1-D left operand is treated as a row vector [1, K] and the
//     prepended dimension is removed from the result
//   - a 1-D right operand is treated as a column vector [K, 1] and the
//     appended dimension is removed from the result
//   - for N-D operands the last two dimensions are matrices and the leading
//     dimensions broadcast: [2, 1, M, K] @ [3, K, N] -> [2, 3, M, N]
func (cpu *CPUBackend) BroadcastMatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape, bShape := a.Shape(), b.Shape()
	if len(aShape) == 0 || len(bShape) == 0 {
		panicf("broadcast matmul: both arguments need at least 1 dimension, got %dD and %dD", len(aShape), len(bShape))
	}
	if a.DType() != b.DType() {
		panicf("broadcast matmul: dtype mismatch %s vs %s", a.DType(), b.DType())
	}

	aMat, bMat := aShape, bShape
	if len(aShape) == 1 {
		aMat = tensor.Shape{1, aShape[0]}
	}
	if len(bShape) == 1 {
		bMat = tensor.Shape{bShape[0], 1}
	}

	m, k := aMat[len(aMat)-2], aMat[len(aMat)-1]
	kAlt, n := bMat[len(bMat)-2], bMat[len(bMat)-1]
	if k != kAlt {
		panicf("broadcast matmul: shape mismatch %v @ %v (inner dimensions %d vs %d)", aShape, bShape, k, kAlt)
	}

	aBatch, bBatch := aMat[:len(aMat)-2], bMat[:len(bMat)-2]
	batchShape, _, err := tensor.BroadcastShapes(aBatch, bBatch)
	if err != nil {
		panicf("broadcast matmul: batch dimensions: %v", err)
	}

	outShape := append(batchShape.Clone(), m, n)
	result := cpu.newResult("broadcast matmul", outShape, a.DType())

	batchStrides := batchShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aBatch, batchShape)
	bStrides := computeBroadcastStridesForShape(bBatch, batchShape)
	offsets := func(i int) (int, int) {
		return computeFlatIndex(i, batchStrides, aStrides) * m * k,
			computeFlatIndex(i, batchStrides, bStrides) * k * n
	}
	matmulDispatch(result, a, b, batchShape.NumElements(), m, k, n, offsets)

	// Drop the dimensions introduced for 1-D operands.
	finalShape := batchShape.Clone()
	if len(aShape) > 1 {
		finalShape = append(finalShape, m)
	}
	if len(bShape) > 1 {
		finalShape = append(finalShape, n)
	}
	if !finalShape.Equal(outShape) {
		return cpu.Reshape(result, finalShape)
	}
	return result
}
