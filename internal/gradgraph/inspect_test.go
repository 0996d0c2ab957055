package gradgraph

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// affineGraph builds the graph of y = w*x + b.
func affineGraph(trackX bool) (*Graph, *Node) {
	g := New()
	w := g.AddLeaf("w")
	var x *Node
	if trackX {
		x = g.AddLeaf("x")
	}
	mul := g.AddOp("MulBackward0", w, x)
	b := g.AddLeaf("b")
	return g, g.AddOp("AddBackward0", mul, b)
}

type tensorLike struct{ fn *Node }

func (t tensorLike) GradFn() *Node { return t.fn }

type customFn struct {
	name string
	next []*Node
}

func (f customFn) String() string         { return f.name }
func (f customFn) NextFunctions() []*Node { return f.next }

func TestPrint_UntrackedInput(t *testing.T) {
	_, root := affineGraph(false)

	want := "AddBackward0\n" +
		"    MulBackward0\n" +
		"        AccumulateGrad\n" +
		"    AccumulateGrad\n"
	assert.Equal(t, want, Sprint(root))
}

func TestPrint_TrackedInput(t *testing.T) {
	_, root := affineGraph(true)

	want := "AddBackward0\n" +
		"    MulBackward0\n" +
		"        AccumulateGrad\n" +
		"        AccumulateGrad\n" +
		"    AccumulateGrad\n"
	assert.Equal(t, want, Sprint(root))
}

func TestPrint_LossChain(t *testing.T) {
	g, pred := affineGraph(false)
	sub := g.AddOp("SubBackward0", pred, nil)
	abs := g.AddOp("AbsBackward0", sub)
	mean := g.AddOp("MeanBackward0", abs)

	var buf bytes.Buffer
	Print(&buf, tensorLike{fn: mean})

	want := "MeanBackward0\n" +
		"    AbsBackward0\n" +
		"        SubBackward0\n" +
		"            AddBackward0\n" +
		"                MulBackward0\n" +
		"                    AccumulateGrad\n" +
		"                AccumulateGrad\n"
	assert.Equal(t, want, buf.String())
}

func TestPrint_ProvenanceTakesPrecedence(t *testing.T) {
	_, root := affineGraph(false)
	leaf := New().AddLeaf("v")

	assert.Equal(t, "AccumulateGrad\n", Sprint(tensorLike{fn: leaf}))
	assert.Equal(t, Sprint(root), Sprint(tensorLike{fn: root}))
}

func TestPrint_CustomFunction(t *testing.T) {
	leaf := New().AddLeaf("v")
	fn := customFn{name: "MyBackward", next: []*Node{nil, leaf}}

	assert.Equal(t, "MyBackward\n    AccumulateGrad\n", Sprint(fn))
}

func TestPrint_SharedNodeVisitedPerPath(t *testing.T) {
	g := New()
	a := g.AddLeaf("a")
	mul := g.AddOp("MulBackward0", a, a)

	assert.Equal(t, "MulBackward0\n    AccumulateGrad\n    AccumulateGrad\n", Sprint(mul))
}

// pointerTensor dereferences its receiver in GradFn, like a real tensor.
type pointerTensor struct{ fn *Node }

func (t *pointerTensor) GradFn() *Node { return t.fn }

func TestPrint_NoProvenance(t *testing.T) {
	var nilNode *Node
	var nilTensor *pointerTensor

	tests := []struct {
		name string
		v    any
	}{
		{"nil", nil},
		{"nil node", nilNode},
		{"empty provenance", tensorLike{}},
		{"nil tensor", nilTensor},
		{"number", 42},
		{"string", "AddBackward0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.NotPanics(t, func() { Print(&buf, tt.v) })
			assert.Empty(t, buf.String())
		})
	}
}

func TestPrint_DoesNotMutate(t *testing.T) {
	g, root := affineGraph(false)
	before := g.Len()

	Sprint(root)

	assert.Equal(t, before, g.Len())
	assert.Len(t, root.NextFunctions(), 2)
	assert.Nil(t, root.NextFunctions()[0].NextFunctions()[1])
}
