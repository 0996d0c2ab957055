package gradgraph

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_Arena(t *testing.T) {
	g := New()
	leaf := g.AddLeaf("w")
	op := g.AddOp("NegBackward0", leaf)

	require.Equal(t, 2, g.Len())
	assert.Equal(t, []*Node{leaf, op}, g.Nodes())
	assert.Equal(t, 0, leaf.ID())
	assert.Equal(t, 1, op.ID())

	assert.True(t, leaf.IsLeaf())
	assert.Equal(t, Leaf, leaf.Kind())
	assert.Equal(t, LeafName, leaf.Name())
	assert.Equal(t, "w", leaf.Variable())
	assert.Empty(t, leaf.NextFunctions())

	assert.False(t, op.IsLeaf())
	assert.Equal(t, "op", op.Kind().String())
	assert.Equal(t, "NegBackward0", op.String())
	assert.Nil(t, op.Variable())
}

func TestGraph_AddOpCopiesLinks(t *testing.T) {
	g := New()
	links := []*Node{g.AddLeaf("a"), nil}
	op := g.AddOp("SubBackward0", links...)

	links[1] = g.AddLeaf("b")
	assert.Nil(t, op.NextFunctions()[1])
}

func TestWriteDOT(t *testing.T) {
	g := New()
	a := g.AddLeaf("a")
	mul := g.AddOp("MulBackward0", a, a, nil)

	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, mul))

	want := "digraph gradfn {\n" +
		"\tnode [shape=box];\n" +
		"\tn1 [label=\"MulBackward0\", shape=box];\n" +
		"\tn1 -> n0;\n" +
		"\tn0 [label=\"AccumulateGrad\", shape=ellipse];\n" +
		"\tn1 -> n0;\n" +
		"}\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteDOT_NilRoot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, nil))
	assert.Equal(t, "digraph gradfn {\n\tnode [shape=box];\n}\n", buf.String())
}
