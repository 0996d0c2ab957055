package gradgraph

import (
	"fmt"
	"io"
	"strings"
)

// indentWidth is the number of spaces per depth level.
const indentWidth = 4

// Provenance is implemented by values that may carry a backward node,
// typically tensors.
type Provenance interface {
	GradFn() *Node
}

// Function is implemented by values that behave as provenance nodes.
// *Node implements it.
type Function interface {
	fmt.Stringer
	NextFunctions() []*Node
}

// Print writes the backward-node chain behind v as a depth-indented tree.
//
// If v carries a populated provenance link, the walk starts there. If v is
// itself a node, it is walked directly. Anything else produces no output.
// Each node is printed before its operand links; nil links are skipped.
// Write errors are ignored.
//
// For y = w*x + b with untracked x:
//
//	AddBackward0
//	    MulBackward0
//	        AccumulateGrad
//	    AccumulateGrad
func Print(w io.Writer, v any) {
	root := resolve(v)
	if root == nil {
		return
	}
	walk(w, root, 0)
}

// Sprint returns what Print would write.
func Sprint(v any) string {
	var sb strings.Builder
	Print(&sb, v)
	return sb.String()
}

func resolve(v any) Function {
	if p, ok := v.(Provenance); ok {
		if fn := gradFn(p); fn != nil {
			return fn
		}
	}
	if n, ok := v.(*Node); ok && n == nil {
		return nil
	}
	if f, ok := v.(Function); ok {
		return f
	}
	return nil
}

// gradFn reads p's provenance link. A typed-nil value whose GradFn
// dereferences its receiver has no provenance.
func gradFn(p Provenance) (fn *Node) {
	defer func() {
		if recover() != nil {
			fn = nil
		}
	}()
	return p.GradFn()
}

func walk(w io.Writer, f Function, depth int) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", depth*indentWidth), f.String())
	for _, next := range f.NextFunctions() {
		if next == nil {
			continue
		}
		walk(w, next, depth+1)
	}
}
