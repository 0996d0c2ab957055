package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/notebooks/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// Values are drawn from rng so a fixed seed reproduces the same model.
func Xavier[B tensor.Backend](rng *rand.Rand, fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros[float32](shape, backend)
	data := t.Data()
	for i := range data {
		//nolint:gosec // math/rand is fine for weight initialization
		data[i] = float32((rng.Float64()*2.0 - 1.0) * bound)
	}
	return t
}

// Uniform creates a tensor with values drawn from U(low, high).
func Uniform[B tensor.Backend](rng *rand.Rand, low, high float32, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	t := tensor.Rand[float32](shape, rng, backend)
	data := t.Data()
	for i := range data {
		data[i] = low + data[i]*(high-low)
	}
	return t
}

// Zeros creates a tensor filled with zeros.
// This is commonly used for bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}
