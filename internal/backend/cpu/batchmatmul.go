package cpu

import (
	"github.com/born-ml/notebooks/internal/parallel"
	"github.com/born-ml/notebooks/internal/tensor"
)

// BatchMatMul performs batched matrix multiplication of 3-D tensors:
// [B, M, K] @ [B, K, N] -> [B, M, N].
//
// Batch sizes must be equal; nothing is broadcast. Batches are independent
// and are spread across goroutines when the backend's parallel config allows.
func (cpu *CPUBackend) BatchMatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 3 || len(bShape) != 3 {
		panicf("BatchMatMul: inputs must be 3D, got %dD and %dD", len(aShape), len(bShape))
	}
	if aShape[0] != bShape[0] {
		panicf("BatchMatMul: batch size mismatch: %d vs %d", aShape[0], bShape[0])
	}
	if a.DType() != b.DType() {
		panicf("BatchMatMul: dtype mismatch %s vs %s", a.DType(), b.DType())
	}

	batch, m, k1 := aShape[0], aShape[1], aShape[2]
	k2, n := bShape[1], bShape[2]
	if k1 != k2 {
		panicf("BatchMatMul: inner dimension mismatch: %d vs %d", k1, k2)
	}

	result := cpu.newResult("BatchMatMul", tensor.Shape{batch, m, n}, a.DType())

	switch a.DType() {
	case tensor.Float32:
		batchMatmul[float32](result, a, b, m, k1, n, cpu.parallel)
	case tensor.Float64:
		batchMatmul[float64](result, a, b, m, k1, n, cpu.parallel)
	case tensor.Int32:
		batchMatmul[int32](result, a, b, m, k1, n, cpu.parallel)
	case tensor.Int64:
		batchMatmul[int64](result, a, b, m, k1, n, cpu.parallel)
	default:
		panicf("BatchMatMul: unsupported dtype %s", a.DType())
	}

	return result
}

func batchMatmul[T tensor.DType](result, a, b *tensor.RawTensor, m, k, n int, cfg parallel.Config) {
	c := tensor.AsSlice[T](result)
	aData := tensor.AsSlice[T](a)
	bData := tensor.AsSlice[T](b)

	parallel.For(result.Shape()[0], cfg, func(i int) {
		matmulInto(
			c[i*m*n:(i+1)*m*n],
			aData[i*m*k:(i+1)*m*k],
			bData[i*k*n:(i+1)*k*n],
			m, k, n,
		)
	})
}
