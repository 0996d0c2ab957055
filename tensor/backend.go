// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/notebooks/internal/tensor"

// Backend defines the interface that all compute backends must implement.
//
// Implementations:
//   - backend/cpu: Pure Go
//
// Decorator backends for additional functionality:
//   - autodiff: Automatic differentiation and provenance (wraps any backend)
type Backend interface {
	// Element-wise binary operations.
	Add(a, b *RawTensor) *RawTensor // Element-wise addition.
	Sub(a, b *RawTensor) *RawTensor // Element-wise subtraction.
	Mul(a, b *RawTensor) *RawTensor // Element-wise multiplication.
	Div(a, b *RawTensor) *RawTensor // Element-wise division.

	// Matrix operations.
	MatMul(a, b *RawTensor) *RawTensor          // 2-D matrix multiplication.
	BatchMatMul(a, b *RawTensor) *RawTensor     // Batched 3-D matrix multiplication.
	BroadcastMatMul(a, b *RawTensor) *RawTensor // Matrix multiplication with broadcasting.

	// Math operations (element-wise).
	Abs(x *RawTensor) *RawTensor // Absolute value.
	Neg(x *RawTensor) *RawTensor // Negation.

	// Reduction operations.
	Sum(x *RawTensor) *RawTensor                           // Total sum (scalar result).
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor // Sum along dimension.
	Mean(x *RawTensor) *RawTensor                          // Mean (scalar result).

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor // Reshape tensor.
	Transpose(t *RawTensor, axes ...int) *RawTensor  // Transpose dimensions.
	Unsqueeze(t *RawTensor, dim int) *RawTensor      // Add dimension of size 1.

	// Metadata.
	Name() string   // Backend name (e.g., "CPU").
	Device() Device // Device type.
}

// Compile-time check that internal Backend implements public Backend.
var _ Backend = tensor.Backend(nil)
