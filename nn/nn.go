// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the models and losses used by the autograd notebook.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	model := nn.NewAffine(0.5, 0.1, backend)
//	y := model.Forward(x)
//	loss := nn.NewL1Loss[*autodiff.Backend[*cpu.Backend]]().Forward(y, target)
package nn

import (
	"math/rand"

	"github.com/born-ml/notebooks/internal/nn"
	"github.com/born-ml/notebooks/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
// The tensor is marked as requiring gradients.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// CollectGrads copies gradients from a backward pass into params.
func CollectGrads[B tensor.Backend](grads map[*tensor.RawTensor]*tensor.RawTensor, params []*Parameter[B]) {
	nn.CollectGrads(grads, params)
}

// Affine is the two-parameter model y = w*x + b.
type Affine[B tensor.Backend] = nn.Affine[B]

// NewAffine creates an Affine model with fixed parameters.
func NewAffine[B tensor.Backend](w, b float32, backend B) *Affine[B] {
	return nn.NewAffine(w, b, backend)
}

// NewRandomAffine creates an Affine model with parameters drawn from rng.
func NewRandomAffine[B tensor.Backend](rng *rand.Rand, backend B) *Affine[B] {
	return nn.NewRandomAffine(rng, backend)
}

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	layer := nn.NewLinear(rand.New(rand.NewSource(1)), 3, 2, backend)
func NewLinear[B tensor.Backend](rng *rand.Rand, inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(rng, inFeatures, outFeatures, backend)
}

// L1Loss computes mean(|predictions - targets|).
type L1Loss[B tensor.Backend] = nn.L1Loss[B]

// NewL1Loss creates a new L1 loss function.
func NewL1Loss[B tensor.Backend]() *L1Loss[B] {
	return nn.NewL1Loss[B]()
}

// MSELoss computes mean((predictions - targets)²).
type MSELoss[B tensor.Backend] = nn.MSELoss[B]

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[B tensor.Backend]() *MSELoss[B] {
	return nn.NewMSELoss[B]()
}
