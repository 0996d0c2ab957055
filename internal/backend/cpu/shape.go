package cpu

import "github.com/born-ml/notebooks/internal/tensor"

// Reshape returns a copy of t with a different shape and the same elements.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panicf("reshape: invalid shape: %v", err)
	}
	if t.NumElements() != newShape.NumElements() {
		panicf("reshape: incompatible shapes: %v -> %v (different number of elements)", t.Shape(), newShape)
	}

	result := cpu.newResult("reshape", newShape, t.DType())
	copy(result.Data(), t.Data())
	return result
}

// Unsqueeze inserts a dimension of size 1 at dim.
// dim may be in [-(ndim+1), ndim]; negative values count from the end.
func (cpu *CPUBackend) Unsqueeze(t *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim += ndim + 1
	}
	if dim < 0 || dim > ndim {
		panicf("unsqueeze: dimension %d out of range for %dD tensor", dim, ndim)
	}

	newShape := make(tensor.Shape, 0, ndim+1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, shape[dim:]...)

	return cpu.Reshape(t, newShape)
}

// Transpose permutes the dimensions of t. With no axes all dimensions are
// reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	if len(axes) != ndim {
		panicf("transpose: axes length %d != ndim %d", len(axes), ndim)
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panicf("transpose: invalid axis %d for %dD tensor", ax, ndim)
		}
		if seen[ax] {
			panicf("transpose: duplicate axis %d", ax)
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	result := cpu.newResult("transpose", newShape, t.DType())

	switch t.DType() {
	case tensor.Float32:
		transposeData(tensor.AsSlice[float32](result), tensor.AsSlice[float32](t), shape, newShape, axes)
	case tensor.Float64:
		transposeData(tensor.AsSlice[float64](result), tensor.AsSlice[float64](t), shape, newShape, axes)
	case tensor.Int32:
		transposeData(tensor.AsSlice[int32](result), tensor.AsSlice[int32](t), shape, newShape, axes)
	case tensor.Int64:
		transposeData(tensor.AsSlice[int64](result), tensor.AsSlice[int64](t), shape, newShape, axes)
	default:
		panicf("transpose: unsupported dtype %s", t.DType())
	}

	return result
}

// transposeData copies in into out so that out[i_0, ..., i_n] =
// in[j] where j places i_k on axis axes[k].
func transposeData[T tensor.DType](out, in []T, oldShape, newShape tensor.Shape, axes []int) {
	oldStrides := oldShape.ComputeStrides()
	newStrides := newShape.ComputeStrides()

	for i := range out {
		rem := i
		src := 0
		for d := range newShape {
			coord := rem / newStrides[d]
			rem %= newStrides[d]
			src += coord * oldStrides[axes[d]]
		}
		out[i] = in[src]
	}
}
