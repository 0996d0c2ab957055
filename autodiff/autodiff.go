// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation and provenance
// inspection.
//
// This package implements reverse-mode automatic differentiation using a
// gradient tape. It wraps any backend; tensors produced from tracked inputs
// carry a backward node that PrintGraph renders as an indented tree.
//
// Example:
//
//	import (
//	    "github.com/born-ml/notebooks/autodiff"
//	    "github.com/born-ml/notebooks/backend/cpu"
//	    "github.com/born-ml/notebooks/tensor"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    backend.Tape().StartRecording()
//
//	    w := tensor.Full[float32](tensor.Shape{1}, 0.5, backend).RequireGrad()
//	    x := tensor.Full[float32](tensor.Shape{1}, 2, backend)
//	    y := w.Mul(x)
//
//	    autodiff.PrintGraph(os.Stdout, y) // MulBackward0 / AccumulateGrad
//	    grads := autodiff.Backward(y, backend)
//	}
package autodiff

import (
	"io"

	"github.com/born-ml/notebooks/internal/autodiff"
	"github.com/born-ml/notebooks/internal/gradgraph"
	"github.com/born-ml/notebooks/tensor"
)

// Backend is the autodiff-enabled backend.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New creates a new autodiff backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// BackwardCapable interface for backends that support backpropagation.
type BackwardCapable = autodiff.BackwardCapable

// Backward computes gradients via backpropagation.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(t, backend)
}

// Node is a backward node of the provenance graph.
type Node = gradgraph.Node

// LeafName is the name of leaf markers.
const LeafName = gradgraph.LeafName

// PrintGraph writes the backward-node chain behind v as an indented tree.
// Values without provenance produce no output.
func PrintGraph(w io.Writer, v any) {
	gradgraph.Print(w, v)
}

// WriteDOT writes the graph reachable from root in Graphviz DOT format.
func WriteDOT(w io.Writer, root *Node) error {
	return gradgraph.WriteDOT(w, root)
}
