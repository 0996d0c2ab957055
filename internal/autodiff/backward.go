package autodiff

import (
	"fmt"

	"github.com/born-ml/notebooks/internal/tensor"
)

// BackwardCapable is an interface for backends that support the backward
// pass. AutodiffBackend implements it.
type BackwardCapable interface {
	tensor.Backend
	// GetTape returns the gradient tape for backward computation.
	GetTape() *GradientTape
}

// GetTape returns the gradient tape (implements BackwardCapable).
func (b *AutodiffBackend[B]) GetTape() *GradientTape {
	return b.tape
}

// Backward computes gradients of t with respect to every tracked tensor
// that contributed to it. The seed gradient is ones shaped like t.
//
// Returns a map from RawTensor to its gradient.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	x := tensor.Ones[float32](tensor.Shape{2}, backend).RequireGrad()
//	y := x.Mul(x).Sum()
//	grads := autodiff.Backward(y, backend)
//	grad := grads[x.Raw()] // 2x
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	tape := backend.GetTape()

	if tape.NumOps() == 0 {
		panic("backward: no operations recorded (did you forget to call Tape().StartRecording()?)")
	}
	if !t.DType().IsFloat() {
		panic(fmt.Sprintf("backward: unsupported dtype %s (only float32/float64 supported)", t.DType()))
	}

	seed := tensor.Ones[T](t.Shape(), backend)
	return tape.Backward(t.Raw(), seed.Raw(), backend)
}

// ApplyGrads assigns grads to each tensor in targets via SetGrad and
// returns how many received a gradient.
func ApplyGrads[T tensor.DType, B tensor.Backend](grads map[*tensor.RawTensor]*tensor.RawTensor, targets ...*tensor.Tensor[T, B]) int {
	applied := 0
	for _, target := range targets {
		g, ok := grads[target.Raw()]
		if !ok {
			continue
		}
		target.SetGrad(tensor.New[T, B](g, target.Backend()))
		applied++
	}
	return applied
}
