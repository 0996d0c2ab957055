package cpu

import "github.com/born-ml/notebooks/internal/tensor"

// Sum reduces all elements to a 0-D tensor.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newResult("sum", tensor.Shape{}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		tensor.AsSlice[float32](result)[0] = sumAll(tensor.AsSlice[float32](x))
	case tensor.Float64:
		tensor.AsSlice[float64](result)[0] = sumAll(tensor.AsSlice[float64](x))
	case tensor.Int32:
		tensor.AsSlice[int32](result)[0] = sumAll(tensor.AsSlice[int32](x))
	case tensor.Int64:
		tensor.AsSlice[int64](result)[0] = sumAll(tensor.AsSlice[int64](x))
	default:
		panicf("sum: unsupported dtype %s", x.DType())
	}

	return result
}

// Mean averages all elements into a 0-D tensor.
// Only floating point tensors are supported.
func (cpu *CPUBackend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newResult("mean", tensor.Shape{}, x.DType())
	n := x.NumElements()

	switch x.DType() {
	case tensor.Float32:
		tensor.AsSlice[float32](result)[0] = sumAll(tensor.AsSlice[float32](x)) / float32(n)
	case tensor.Float64:
		tensor.AsSlice[float64](result)[0] = sumAll(tensor.AsSlice[float64](x)) / float64(n)
	default:
		panicf("mean: only floating point dtypes are supported, got %s", x.DType())
	}

	return result
}

func sumAll[T tensor.DType](data []T) T {
	var sum T
	for _, v := range data {
		sum += v
	}
	return sum
}

// SumDim sums tensor elements along dim.
//
// Negative dims count from the end. With keepDim the reduced dimension is
// kept with size 1; otherwise it is removed.
//
//	x: [2, 3, 4]
//	SumDim(x, -1, true)  // [2, 3, 1]
//	SumDim(x, -1, false) // [2, 3]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim += ndim
	}
	if dim < 0 || dim >= ndim {
		panicf("sumdim: dimension %d out of range for %dD tensor", dim, ndim)
	}

	var outShape tensor.Shape
	if keepDim {
		outShape = shape.Clone()
		outShape[dim] = 1
	} else {
		outShape = make(tensor.Shape, 0, ndim-1)
		outShape = append(outShape, shape[:dim]...)
		outShape = append(outShape, shape[dim+1:]...)
	}

	result := cpu.newResult("sumdim", outShape, x.DType())

	switch x.DType() {
	case tensor.Float32:
		sumDim(tensor.AsSlice[float32](result), tensor.AsSlice[float32](x), shape, dim)
	case tensor.Float64:
		sumDim(tensor.AsSlice[float64](result), tensor.AsSlice[float64](x), shape, dim)
	case tensor.Int32:
		sumDim(tensor.AsSlice[int32](result), tensor.AsSlice[int32](x), shape, dim)
	case tensor.Int64:
		sumDim(tensor.AsSlice[int64](result), tensor.AsSlice[int64](x), shape, dim)
	default:
		panicf("sumdim: unsupported dtype %s", x.DType())
	}

	return result
}

// sumDim views the input as [outer, dimSize, inner] and sums the middle axis.
func sumDim[T tensor.DType](out, in []T, shape tensor.Shape, dim int) {
	outer := shape[:dim].NumElements()
	dimSize := shape[dim]
	inner := shape[dim+1:].NumElements()

	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			var sum T
			for d := 0; d < dimSize; d++ {
				sum += in[(o*dimSize+d)*inner+i]
			}
			out[o*inner+i] = sum
		}
	}
}
