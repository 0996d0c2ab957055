// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
//   - Pure Go implementation (no CGO)
//   - float32, float64, int32 and int64 kernels
//   - NumPy-compatible broadcasting
//   - Batched matrix products spread across goroutines
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
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//	}
//
// # Errors
//
// Kernels panic with an "op: message" string on rank, shape or dtype misuse.
package cpu
