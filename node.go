package huffcomp

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// NodeKind identifies which variant of Node a value holds.
type NodeKind byte

const (
	// EmptyNode is the placeholder child of a one-symbol tree.  It holds
	// no symbol and has weight 0.
	EmptyNode NodeKind = iota

	// LeafNode holds a Symbol and its weight.
	LeafNode

	// InternalNode holds exactly two children and the sum of their
	// weights.
	InternalNode
)

var nodeKindNames = [...]string{"Empty", "Leaf", "Internal"}

// String returns the name of the kind.
func (kind NodeKind) String() string {
	if int(kind) < len(nodeKindNames) {
		return nodeKindNames[kind]
	}
	return fmt.Sprintf("NodeKind(%d)", byte(kind))
}

// Node is a node of a Huffman tree.  Nodes are immutable, and each internal
// node exclusively owns its two children.
type Node struct {
	kind   NodeKind
	symbol Symbol
	min    Symbol
	weight uint64
	left   *Node
	right  *Node
}

var emptyNode = &Node{kind: EmptyNode}

// NewLeaf constructs a leaf node.
func NewLeaf(symbol Symbol, weight uint64) *Node {
	return &Node{kind: LeafNode, symbol: symbol, min: symbol, weight: weight}
}

// NewInternal constructs an internal node that owns left and right.
func NewInternal(left *Node, right *Node) *Node {
	assert.Assertf(left != nil, "left child is nil")
	assert.Assertf(right != nil, "right child is nil")

	least := left.min
	switch {
	case left.kind == EmptyNode:
		least = right.min
	case right.kind != EmptyNode && right.min < least:
		least = right.min
	}

	return &Node{
		kind:   InternalNode,
		min:    least,
		weight: left.weight + right.weight,
		left:   left,
		right:  right,
	}
}

// Empty returns the placeholder node used to pad a one-symbol tree.
func Empty() *Node {
	return emptyNode
}

// Kind returns which variant this node is.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// IsLeaf returns true iff this node is a LeafNode.
func (n *Node) IsLeaf() bool {
	return n.kind == LeafNode
}

// Symbol returns the symbol held by a leaf.  It is meaningless for other
// kinds of node.
func (n *Node) Symbol() Symbol {
	return n.symbol
}

// MinSymbol returns the smallest symbol held by any leaf in this subtree.
func (n *Node) MinSymbol() Symbol {
	return n.min
}

// Weight returns the weight of this subtree.  Trees read back from their
// serialized form have weight 0 throughout, as weights are not serialized.
func (n *Node) Weight() uint64 {
	return n.weight
}

// Left returns the left (bit 0) child of an internal node, or nil.
func (n *Node) Left() *Node {
	return n.left
}

// Right returns the right (bit 1) child of an internal node, or nil.
func (n *Node) Right() *Node {
	return n.right
}

// Child returns the child selected by the given bit.
func (n *Node) Child(bit bool) *Node {
	if bit {
		return n.right
	}
	return n.left
}

// String returns a one-line description of this node.
func (n *Node) String() string {
	switch n.kind {
	case LeafNode:
		return fmt.Sprintf("(%s: %d)", n.symbol, n.weight)
	case InternalNode:
		return fmt.Sprintf("(Internal: %d)", n.weight)
	default:
		return "(" + n.kind.String() + ")"
	}
}

var _ fmt.Stringer = (*Node)(nil)

// Dump writes a programmer-readable debugging dump of the subtree rooted at
// this node to the given writer.
func (n *Node) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	dumpNode(&buf, n, 1)
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func dumpNode(buf *bytes.Buffer, n *Node, depth int) {
	buf.WriteString(strings.Repeat("\t", depth))
	if n == nil {
		buf.WriteString("nil\n")
		return
	}
	buf.WriteString(n.String())
	buf.WriteByte('\n')
	if n.kind == InternalNode {
		dumpNode(buf, n.left, depth+1)
		dumpNode(buf, n.right, depth+1)
	}
}

// countNodes returns the number of leaves and internal nodes in the subtree.
func countNodes(n *Node) (leaves int, internals int) {
	if n == nil {
		return 0, 0
	}
	switch n.kind {
	case LeafNode:
		return 1, 0
	case InternalNode:
		l1, i1 := countNodes(n.left)
		l2, i2 := countNodes(n.right)
		return l1 + l2, i1 + i2 + 1
	default:
		return 0, 0
	}
}
