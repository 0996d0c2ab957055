package cpu

import (
	"testing"

	"github.com/born-ml/notebooks/internal/parallel"
	"github.com/born-ml/notebooks/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawFrom[T tensor.DType](t *testing.T, data []T, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.DataTypeOf[T](), tensor.CPU)
	require.NoError(t, err)
	copy(tensor.AsSlice[T](raw), data)
	return raw
}

func seq(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i + 1)
	}
	return out
}

func TestMatMul_2D(t *testing.T) {
	backend := New()
	a := rawFrom(t, []int64{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFrom(t, []int64{1, 1, 1, 1}, tensor.Shape{2, 2})

	result := backend.MatMul(a, b)

	assert.Equal(t, tensor.Shape{2, 2}, result.Shape())
	assert.Equal(t, []int64{3, 3, 7, 7}, result.AsInt64())
}

func TestMatMul_Rectangular(t *testing.T) {
	backend := New()
	a := rawFrom(t, seq(6), tensor.Shape{2, 3})
	b := rawFrom(t, seq(6), tensor.Shape{3, 2})

	result := backend.MatMul(a, b)

	// [[1,2,3],[4,5,6]] @ [[1,2],[3,4],[5,6]]
	assert.Equal(t, tensor.Shape{2, 2}, result.Shape())
	assert.Equal(t, []float32{22, 28, 49, 64}, result.AsFloat32())
}

func TestMatMul_RejectsOtherRanks(t *testing.T) {
	backend := New()
	a3 := rawFrom(t, []int64{1, 2, 3, 4}, tensor.Shape{1, 2, 2})
	a2 := rawFrom(t, []int64{1, 2, 3, 4}, tensor.Shape{2, 2})
	a1 := rawFrom(t, []int64{1, 2}, tensor.Shape{2})

	assert.PanicsWithValue(t, "matmul: only 2D tensors supported, got 3D and 3D", func() {
		backend.MatMul(a3, a3)
	})
	assert.Panics(t, func() { backend.MatMul(a1, a2) })
	assert.Panics(t, func() { backend.MatMul(a2, a3) })
}

func TestMatMul_ShapeMismatch(t *testing.T) {
	backend := New()
	a := rawFrom(t, seq(6), tensor.Shape{2, 3})

	assert.Panics(t, func() { backend.MatMul(a, a) })
}

func TestBatchMatMul(t *testing.T) {
	backend := New()
	a := rawFrom(t, []int64{1, 2, 3, 4}, tensor.Shape{1, 2, 2})
	b := rawFrom(t, []int64{1, 1, 1, 1}, tensor.Shape{1, 2, 2})

	result := backend.BatchMatMul(a, b)

	assert.Equal(t, tensor.Shape{1, 2, 2}, result.Shape())
	assert.Equal(t, []int64{3, 3, 7, 7}, result.AsInt64())
}

func TestBatchMatMul_RejectsOtherRanks(t *testing.T) {
	backend := New()
	a2 := rawFrom(t, []int64{1, 2, 3, 4}, tensor.Shape{2, 2})
	a3 := rawFrom(t, []int64{1, 2, 3, 4}, tensor.Shape{1, 2, 2})

	assert.PanicsWithValue(t, "BatchMatMul: inputs must be 3D, got 2D and 2D", func() {
		backend.BatchMatMul(a2, a2)
	})
	assert.Panics(t, func() { backend.BatchMatMul(a3, a2) })
}

func TestBatchMatMul_BatchMismatch(t *testing.T) {
	backend := New()
	a := rawFrom(t, seq(8), tensor.Shape{2, 2, 2})
	b := rawFrom(t, seq(4), tensor.Shape{1, 2, 2})

	assert.PanicsWithValue(t, "BatchMatMul: batch size mismatch: 2 vs 1", func() {
		backend.BatchMatMul(a, b)
	})
}

func TestBatchMatMul_ParallelMatchesSequential(t *testing.T) {
	const batch = 16
	a := rawFrom(t, seq(batch*3*4), tensor.Shape{batch, 3, 4})
	b := rawFrom(t, seq(batch*4*2), tensor.Shape{batch, 4, 2})

	par := New().WithParallel(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 2})
	seqBackend := New().WithParallel(parallel.Sequential())

	want := seqBackend.BatchMatMul(a, b)
	got := par.BatchMatMul(a, b)

	assert.Equal(t, want.Shape(), got.Shape())
	assert.Equal(t, want.AsFloat32(), got.AsFloat32())
}

func TestBroadcastMatMul(t *testing.T) {
	backend := New()

	tests := []struct {
		name  string
		a, b  tensor.Shape
		shape tensor.Shape
	}{
		{"2D@2D", tensor.Shape{2, 3}, tensor.Shape{3, 4}, tensor.Shape{2, 4}},
		{"1D@1D", tensor.Shape{3}, tensor.Shape{3}, tensor.Shape{}},
		{"1D@2D", tensor.Shape{3}, tensor.Shape{3, 4}, tensor.Shape{4}},
		{"2D@1D", tensor.Shape{2, 3}, tensor.Shape{3}, tensor.Shape{2}},
		{"3D@2D", tensor.Shape{5, 2, 3}, tensor.Shape{3, 4}, tensor.Shape{5, 2, 4}},
		{"batch broadcast", tensor.Shape{2, 1, 2, 3}, tensor.Shape{3, 3, 4}, tensor.Shape{2, 3, 2, 4}},
		{"1D@3D", tensor.Shape{3}, tensor.Shape{5, 3, 4}, tensor.Shape{5, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := rawFrom(t, seq(tt.a.NumElements()), tt.a)
			b := rawFrom(t, seq(tt.b.NumElements()), tt.b)

			result := backend.BroadcastMatMul(a, b)
			assert.Equal(t, tt.shape, result.Shape())
		})
	}
}

func TestBroadcastMatMul_Values(t *testing.T) {
	backend := New()
	a := rawFrom(t, []int64{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := rawFrom(t, []int64{1, 1, 1, 1}, tensor.Shape{2, 2})

	assert.Equal(t, []int64{3, 3, 7, 7}, backend.BroadcastMatMul(a, b).AsInt64())

	v := rawFrom(t, []int64{1, 2, 3}, tensor.Shape{3})
	dot := backend.BroadcastMatMul(v, v)
	assert.Equal(t, []int64{14}, dot.AsInt64())

	// Each batch of the left operand meets the same right matrix.
	stack := rawFrom(t, []int64{1, 2, 3, 4, 2, 0, 0, 2}, tensor.Shape{2, 2, 2})
	got := backend.BroadcastMatMul(stack, b)
	assert.Equal(t, tensor.Shape{2, 2, 2}, got.Shape())
	assert.Equal(t, []int64{3, 3, 7, 7, 2, 2, 2, 2}, got.AsInt64())
}

func TestBroadcastMatMul_Rejects(t *testing.T) {
	backend := New()
	a := rawFrom(t, seq(6), tensor.Shape{2, 3})
	scalar := rawFrom(t, []float32{1}, tensor.Shape{})
	batchA := rawFrom(t, seq(12), tensor.Shape{2, 2, 3})
	batchB := rawFrom(t, seq(27), tensor.Shape{3, 3, 3})

	assert.Panics(t, func() { backend.BroadcastMatMul(a, a) }, "inner dimensions differ")
	assert.Panics(t, func() { backend.BroadcastMatMul(scalar, a) }, "0-D operand")
	assert.Panics(t, func() { backend.BroadcastMatMul(batchA, batchB) }, "batch 2 vs 3")
}
