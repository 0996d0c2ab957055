// Package gradgraph models the provenance graph an autodiff engine records:
// backward nodes that link a result to the operations and leaves it came from.
//
// Nodes are owned by a Graph arena. Each node is either an operation node,
// holding its operand links in positional order, or a leaf marker
// (AccumulateGrad) for a tracked original value. An operand that was not
// tracked is represented by a nil link.
package gradgraph

import "strconv"

// Kind tags a node as an operation or a leaf marker.
type Kind int

// Node kinds.
const (
	Op Kind = iota
	Leaf
)

// LeafName is the name every leaf marker carries.
const LeafName = "AccumulateGrad"

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Op:
		return "op"
	case Leaf:
		return "leaf"
	default:
		return "unknown"
	}
}

// Node is one vertex of the provenance graph.
type Node struct {
	id       int
	kind     Kind
	name     string
	next     []*Node
	variable any
}

// ID returns the node's position in its graph's arena.
func (n *Node) ID() int {
	return n.id
}

// Kind returns whether the node is an operation or a leaf marker.
func (n *Node) Kind() Kind {
	return n.kind
}

// IsLeaf reports whether the node is a leaf marker.
func (n *Node) IsLeaf() bool {
	return n.kind == Leaf
}

// Name returns the backward-function name, e.g. "AddBackward0".
func (n *Node) Name() string {
	return n.name
}

// NextFunctions returns the operand links in the order of the operation's
// inputs. Entries are nil for operands that were not tracked. Leaves have no
// links. The returned slice must not be modified.
func (n *Node) NextFunctions() []*Node {
	return n.next
}

// Variable returns the value a leaf marker accumulates into, or nil for
// operation nodes.
func (n *Node) Variable() any {
	return n.variable
}

// String returns the node's textual identity.
func (n *Node) String() string {
	return n.name
}

// Graph is an arena of nodes. Nodes are appended in creation order, so an
// operation node always has a larger ID than the nodes it links to.
type Graph struct {
	nodes []*Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// AddOp appends an operation node with the given operand links.
// A nil link marks an untracked operand.
func (g *Graph) AddOp(name string, next ...*Node) *Node {
	n := &Node{
		id:   len(g.nodes),
		kind: Op,
		name: name,
		next: append([]*Node(nil), next...),
	}
	g.nodes = append(g.nodes, n)
	return n
}

// AddLeaf appends a leaf marker for variable.
func (g *Graph) AddLeaf(variable any) *Node {
	n := &Node{
		id:       len(g.nodes),
		kind:     Leaf,
		name:     LeafName,
		variable: variable,
	}
	g.nodes = append(g.nodes, n)
	return n
}

// Nodes returns every node in creation order.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Len returns the number of nodes in the arena.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// label is the DOT identifier of a node.
func (n *Node) label() string {
	return "n" + strconv.Itoa(n.id)
}
