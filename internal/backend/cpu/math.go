package cpu

import "github.com/born-ml/notebooks/internal/tensor"

// Abs computes the element-wise absolute value.
func (cpu *CPUBackend) Abs(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("abs", x, absKernel)
}

// Neg negates every element.
func (cpu *CPUBackend) Neg(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("neg", x, negKernel)
}

type unaryKernel int

const (
	absKernel unaryKernel = iota
	negKernel
)

func (cpu *CPUBackend) unary(op string, x *tensor.RawTensor, kernel unaryKernel) *tensor.RawTensor {
	result := cpu.newResult(op, x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		applyUnary(tensor.AsSlice[float32](result), tensor.AsSlice[float32](x), kernel)
	case tensor.Float64:
		applyUnary(tensor.AsSlice[float64](result), tensor.AsSlice[float64](x), kernel)
	case tensor.Int32:
		applyUnary(tensor.AsSlice[int32](result), tensor.AsSlice[int32](x), kernel)
	case tensor.Int64:
		applyUnary(tensor.AsSlice[int64](result), tensor.AsSlice[int64](x), kernel)
	default:
		panicf("%s: unsupported dtype %s", op, x.DType())
	}

	return result
}

func applyUnary[T tensor.DType](out, in []T, kernel unaryKernel) {
	switch kernel {
	case absKernel:
		for i, v := range in {
			if v < 0 {
				v = -v
			}
			out[i] = v
		}
	case negKernel:
		for i, v := range in {
			out[i] = -v
		}
	}
}
