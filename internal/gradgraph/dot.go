package gradgraph

import (
	"bufio"
	"fmt"
	"io"
)

// WriteDOT writes the graph reachable from root in Graphviz DOT format.
// Edges point from a node to its operand links; nodes shared by several
// parents are emitted once.
func WriteDOT(w io.Writer, root *Node) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph gradfn {")
	fmt.Fprintln(bw, "\tnode [shape=box];")

	if root != nil {
		seen := make(map[*Node]bool)
		writeDOTNode(bw, root, seen)
	}

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func writeDOTNode(w io.Writer, n *Node, seen map[*Node]bool) {
	if seen[n] {
		return
	}
	seen[n] = true

	shape := "box"
	if n.IsLeaf() {
		shape = "ellipse"
	}
	fmt.Fprintf(w, "\t%s [label=%q, shape=%s];\n", n.label(), n.name, shape)

	for _, next := range n.next {
		if next == nil {
			continue
		}
		fmt.Fprintf(w, "\t%s -> %s;\n", n.label(), next.label())
		writeDOTNode(w, next, seen)
	}
}
