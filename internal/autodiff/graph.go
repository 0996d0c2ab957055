package autodiff

import (
	"github.com/born-ml/notebooks/internal/gradgraph"
	"github.com/born-ml/notebooks/internal/tensor"
)

// Graph returns the provenance graph the tape has built so far, together
// with the backward node of the operation that produced root.
//
// Nodes are created as operations are recorded, so every call returns the
// same node for the same tensor. Each operand link points to the node of the
// operation that produced the operand, to a shared AccumulateGrad leaf when
// the operand is a tracked leaf, or is nil when the operand is untracked.
// The node is nil when root was not produced by a recorded operation.
func (t *GradientTape) Graph(root *tensor.RawTensor) (*gradgraph.Graph, *gradgraph.Node) {
	return t.graph, t.nodes[root]
}

// Node returns the backward node of the operation that produced raw, or nil.
func (t *GradientTape) Node(raw *tensor.RawTensor) *gradgraph.Node {
	return t.nodes[raw]
}

// addNode appends the backward node of a freshly recorded operation.
// Operands are linked before the node itself is added, so the arena stays
// in topological order.
func (t *GradientTape) addNode(name string, inputs []*tensor.RawTensor, output *tensor.RawTensor) {
	next := make([]*gradgraph.Node, len(inputs))
	for i, in := range inputs {
		next[i] = t.link(in)
	}
	t.nodes[output] = t.graph.AddOp(name, next...)
}

func (t *GradientTape) link(raw *tensor.RawTensor) *gradgraph.Node {
	if n, ok := t.nodes[raw]; ok {
		return n
	}
	if !raw.RequiresGrad() {
		return nil
	}
	if leaf, ok := t.leaves[raw]; ok {
		return leaf
	}
	leaf := t.graph.AddLeaf(raw)
	t.leaves[raw] = leaf
	return leaf
}
