package ops

import (
	"fmt"

	"github.com/born-ml/notebooks/internal/tensor"
)

// reduceBroadcast sums grad down to targetShape, undoing the broadcasting
// of the forward pass.
//
//	Forward:  a[3,1] + b[3,4] -> c[3,4]
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()

	// Clone so that gradients for different inputs never alias.
	if gradShape.Equal(targetShape) {
		return grad.Clone()
	}

	if len(targetShape) == 0 {
		return backend.Sum(grad)
	}

	result := grad
	for len(result.Shape()) > len(targetShape) {
		result = backend.SumDim(result, 0, false)
	}

	for i, dim := range targetShape {
		if dim == 1 && result.Shape()[i] > 1 {
			result = backend.SumDim(result, i, true)
		}
	}

	if !result.Shape().Equal(targetShape) {
		result = backend.Reshape(result, targetShape)
	}
	return result
}

// broadcastTo expands grad to shape by adding it to zeros of that shape.
func broadcastTo(grad *tensor.RawTensor, shape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	zeros, err := tensor.NewRaw(shape, grad.DType(), grad.Device())
	if err != nil {
		panic(fmt.Sprintf("broadcastTo: %v", err))
	}
	return backend.Add(zeros, grad)
}

// transposeLast2 swaps the two innermost dimensions.
func transposeLast2(t *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	ndim := len(t.Shape())
	axes := make([]int, ndim)
	for i := range axes {
		axes[i] = i
	}
	axes[ndim-2], axes[ndim-1] = ndim-1, ndim-2
	return backend.Transpose(t, axes...)
}

// sign returns -1, 0 or 1 for every element of x.
func sign(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), x.Device())
	if err != nil {
		panic(fmt.Sprintf("sign: %v", err))
	}

	switch x.DType() {
	case tensor.Float32:
		signInto(result.AsFloat32(), x.AsFloat32())
	case tensor.Float64:
		signInto(result.AsFloat64(), x.AsFloat64())
	case tensor.Int32:
		signInto(result.AsInt32(), x.AsInt32())
	case tensor.Int64:
		signInto(result.AsInt64(), x.AsInt64())
	}
	return result
}

func signInto[T tensor.DType](out, in []T) {
	for i, v := range in {
		switch {
		case v > 0:
			out[i] = 1
		case v < 0:
			out[i] = -1
		}
	}
}
