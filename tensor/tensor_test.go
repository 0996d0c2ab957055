// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/born-ml/notebooks/backend/cpu"
	"github.com/born-ml/notebooks/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBackendInterface verifies that the CPU backend implements tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.Backend)(nil)
}

func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 3}, raw.Shape())
	assert.Equal(t, tensor.Float32, raw.DType())
	assert.Equal(t, tensor.CPU, raw.Device())
	assert.Equal(t, 6, raw.NumElements())
	assert.False(t, raw.RequiresGrad())
}

func TestMultiplicationEntryPoints(t *testing.T) {
	backend := cpu.New()
	a, err := tensor.FromSlice([]int64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	b := tensor.Ones[int64](tensor.Shape{2, 2}, backend)

	assert.Equal(t, "tensor([[1, 2],\n        [3, 4]])", a.Mul(b).String())
	assert.Equal(t, "tensor([[3, 3],\n        [7, 7]])", a.MatMul(b).String())
	assert.Equal(t, "tensor([[[3, 3],\n         [7, 7]]])", a.Unsqueeze(0).BatchMatMul(b.Unsqueeze(0)).String())
	assert.Equal(t, "tensor([[3, 3],\n        [7, 7]])", a.BroadcastMatMul(b).String())
}

func TestBroadcastShapes(t *testing.T) {
	shape, broadcast, err := tensor.BroadcastShapes(tensor.Shape{3, 1}, tensor.Shape{3, 5})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 5}, shape)
	assert.True(t, broadcast)
}
