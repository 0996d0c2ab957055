package tensor_test

import (
	"math/rand"
	"testing"

	"github.com/born-ml/notebooks/internal/backend/cpu"
	"github.com/born-ml/notebooks/internal/gradgraph"
	"github.com/born-ml/notebooks/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSlice(t *testing.T) {
	backend := cpu.New()

	a, err := tensor.FromSlice([]int64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 2}, a.Shape())
	assert.Equal(t, tensor.Int64, a.DType())
	assert.Equal(t, int64(3), a.At(1, 0))
	assert.False(t, a.RequiresGrad())

	_, err = tensor.FromSlice([]int64{1, 2, 3}, tensor.Shape{2, 2}, backend)
	assert.Error(t, err)

	_, err = tensor.FromSlice([]int64{}, tensor.Shape{0}, backend)
	assert.Error(t, err)
}

func TestCreation(t *testing.T) {
	backend := cpu.New()

	assert.Equal(t, []float32{0, 0}, tensor.Zeros[float32](tensor.Shape{2}, backend).Data())
	assert.Equal(t, []int64{1, 1, 1}, tensor.Ones[int64](tensor.Shape{3}, backend).Data())
	assert.Equal(t, []int32{0, 1, 2}, tensor.Arange[int32](3, backend).Data())
	assert.Equal(t, []float64{1, 0, 0, 1}, tensor.Eye[float64](2, backend).Data())
	assert.Equal(t, float32(2.5), tensor.Scalar[float32](2.5, backend).Item())
}

func TestRand_Seeded(t *testing.T) {
	backend := cpu.New()

	a := tensor.Rand[float32](tensor.Shape{4}, rand.New(rand.NewSource(7)), backend)
	b := tensor.Rand[float32](tensor.Shape{4}, rand.New(rand.NewSource(7)), backend)

	assert.Equal(t, a.Data(), b.Data())
	for _, v := range a.Data() {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}

	assert.Panics(t, func() {
		tensor.Rand[int64](tensor.Shape{1}, rand.New(rand.NewSource(1)), backend)
	})
}

func TestItem_PanicsOnMany(t *testing.T) {
	backend := cpu.New()
	assert.Panics(t, func() {
		tensor.Ones[float32](tensor.Shape{2}, backend).Item()
	})
}

func TestString(t *testing.T) {
	backend := cpu.New()

	a, err := tensor.FromSlice([]int64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"matrix", a.String(), "tensor([[1, 2],\n        [3, 4]])"},
		{"batched", a.Unsqueeze(0).String(), "tensor([[[1, 2],\n         [3, 4]]])"},
		{"vector", tensor.Arange[int64](3, backend).String(), "tensor([0, 1, 2])"},
		{"float", tensor.Full[float32](tensor.Shape{1}, 1.1, backend).String(), "tensor([1.1000])"},
		{"scalar", tensor.Scalar[float64](-0.5, backend).String(), "tensor(-0.5000)"},
		{"aligned", mustSlice(t, []int64{1, -10}, backend).String(), "tensor([  1, -10])"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestString_TrackedLeaf(t *testing.T) {
	backend := cpu.New()
	w := tensor.Full[float32](tensor.Shape{1}, 0.5, backend).RequireGrad()

	assert.Equal(t, "tensor([0.5000], requires_grad=True)", w.String())
}

func TestDetach(t *testing.T) {
	backend := cpu.New()
	w := tensor.Full[float32](tensor.Shape{2}, 0.5, backend).RequireGrad()

	d := w.Detach()
	assert.False(t, d.RequiresGrad())
	assert.True(t, w.RequiresGrad())

	// Data is shared.
	d.Set(2, 0)
	assert.Equal(t, float32(2), w.At(0))

	c := w.Clone()
	c.Set(3, 1)
	assert.Equal(t, float32(0.5), w.At(1))
	assert.False(t, c.RequiresGrad())
}

func TestGradFn_PlainBackend(t *testing.T) {
	backend := cpu.New()
	w := tensor.Ones[float32](tensor.Shape{1}, backend).RequireGrad()

	y := w.Add(w)

	assert.Nil(t, y.GradFn(), "a backend without a tape records no provenance")
	assert.True(t, y.IsLeaf())
}

func TestGradFn_NilTensor(t *testing.T) {
	var nilTensor *tensor.Tensor[float32, *cpu.CPUBackend]

	assert.Nil(t, nilTensor.GradFn())
	assert.Empty(t, gradgraph.Sprint(nilTensor))
}

func TestTensorOps(t *testing.T) {
	backend := cpu.New()

	a, err := tensor.FromSlice([]int64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	b := tensor.Ones[int64](tensor.Shape{2, 2}, backend)

	assert.Equal(t, []int64{1, 2, 3, 4}, a.Mul(b).Data())
	assert.Equal(t, []int64{3, 3, 7, 7}, a.MatMul(b).Data())
	assert.Equal(t, []int64{3, 3, 7, 7}, a.Unsqueeze(0).BatchMatMul(b.Unsqueeze(0)).Data())
	assert.Equal(t, []int64{3, 3, 7, 7}, a.BroadcastMatMul(b).Data())
	assert.Equal(t, []int64{1, 3, 2, 4}, a.T().Data())
	assert.Equal(t, tensor.Shape{4}, a.Reshape(4).Shape())
	assert.Equal(t, int64(10), a.Sum().Item())
	assert.Equal(t, []int64{4, 6}, a.SumDim(0, false).Data())
	assert.Equal(t, []int64{-1, -2, -3, -4}, a.Neg().Data())
	assert.Equal(t, []int64{1, 2, 3, 4}, a.Neg().Abs().Data())
	assert.Equal(t, []int64{0, 1, 1, 2}, a.Div(tensor.Full[int64](tensor.Shape{1}, 2, backend)).Data())

	assert.Panics(t, func() { tensor.Arange[int64](3, backend).T() })
}

func mustSlice(t *testing.T, data []int64, backend *cpu.CPUBackend) *tensor.Tensor[int64, *cpu.CPUBackend] {
	t.Helper()
	out, err := tensor.FromSlice(data, tensor.Shape{len(data)}, backend)
	require.NoError(t, err)
	return out
}
