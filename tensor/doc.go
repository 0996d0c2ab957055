// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the tensors the notebooks
// compute with.
//
// # Overview
//
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting for elementwise operations
//   - Four multiplication entry points: Mul, MatMul, BatchMatMul and
//     BroadcastMatMul
//   - Provenance: tensors produced on an autodiff backend expose GradFn
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/notebooks/backend/cpu"
//	    "github.com/born-ml/notebooks/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    a, _ := tensor.FromSlice([]int64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
//	    b := tensor.Ones[int64](tensor.Shape{2, 2}, backend)
//
//	    fmt.Println(a.Mul(b))    // tensor([[1, 2], [3, 4]])
//	    fmt.Println(a.MatMul(b)) // tensor([[3, 3], [7, 7]])
//	}
//
// # Multiplication Entry Points
//
//	a.Mul(b)                                   // elementwise, broadcasting
//	a.MatMul(b)                                // 2-D only
//	a.Unsqueeze(0).BatchMatMul(b.Unsqueeze(0)) // 3-D only, equal batch
//	a.BroadcastMatMul(b)                       // 1-D..N-D, batch broadcasting
//
// MatMul and BatchMatMul panic on operands of any other rank.
//
// # Supported Data Types
//
// float32, float64, int32 and int64. Mean and backward passes require a
// floating point type.
package tensor
