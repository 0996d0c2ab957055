package cpu

import (
	"fmt"

	"github.com/born-ml/notebooks/internal/tensor"
)

type binaryKind int

const (
	opAdd binaryKind = iota
	opSub
	opMul
	opDiv
)

func (k binaryKind) String() string {
	switch k {
	case opAdd:
		return "add"
	case opSub:
		return "sub"
	case opMul:
		return "mul"
	case opDiv:
		return "div"
	default:
		return "unknown"
	}
}

// binaryKernel returns the scalar function for kind.
func binaryKernel[T tensor.DType](kind binaryKind) func(x, y T) T {
	switch kind {
	case opAdd:
		return func(x, y T) T { return x + y }
	case opSub:
		return func(x, y T) T { return x - y }
	case opMul:
		return func(x, y T) T { return x * y }
	case opDiv:
		return func(x, y T) T { return x / y }
	default:
		panic("unknown binary op")
	}
}

func (cpu *CPUBackend) binary(kind binaryKind, a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panicf("%s: dtype mismatch %s vs %s", kind, a.DType(), b.DType())
	}

	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panicf("%s: %v", kind, err)
	}

	result := cpu.newResult(kind.String(), outShape, a.DType())

	switch a.DType() {
	case tensor.Float32:
		binaryBroadcast[float32](kind, result, a, b)
	case tensor.Float64:
		binaryBroadcast[float64](kind, result, a, b)
	case tensor.Int32:
		binaryBroadcast[int32](kind, result, a, b)
	case tensor.Int64:
		binaryBroadcast[int64](kind, result, a, b)
	default:
		panicf("%s: unsupported dtype %s", kind, a.DType())
	}

	return result
}

// binaryBroadcast computes result = a (op) b, expanding size-1 and missing
// dimensions of either operand to result's shape.
func binaryBroadcast[T tensor.DType](kind binaryKind, result, a, b *tensor.RawTensor) {
	fn := binaryKernel[T](kind)
	out := tensor.AsSlice[T](result)
	aData := tensor.AsSlice[T](a)
	bData := tensor.AsSlice[T](b)

	if a.Shape().Equal(b.Shape()) {
		for i := range out {
			out[i] = fn(aData[i], bData[i])
		}
		return
	}

	outShape := result.Shape()
	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(a.Shape(), outShape)
	bStrides := computeBroadcastStridesForShape(b.Shape(), outShape)

	for i := range out {
		out[i] = fn(
			aData[computeFlatIndex(i, outStrides, aStrides)],
			bData[computeFlatIndex(i, outStrides, bStrides)],
		)
	}
}

func panicf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
