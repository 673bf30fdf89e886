package huffcomp

import (
	"container/heap"

	"github.com/op/go-logging"
)

// BuildTree constructs the Huffman tree for the given symbol frequencies.
//
// Construction is deterministic.  Nodes are merged lowest weight first; when
// two nodes have equal weight, the one whose smallest contained Symbol is
// smaller goes first.  Of the two nodes merged, the first one popped becomes
// the left child.
//
// A model with exactly one distinct symbol yields an internal root whose left
// child is that symbol's leaf and whose right child is the Empty placeholder,
// so that the symbol is assigned the one-bit code "0".
//
// BuildTree returns ErrEmptyInput if no symbol has a non-zero frequency.
//
func BuildTree(freqs Frequencies) (*Node, error) {
	symbols := freqs.Symbols()
	switch len(symbols) {
	case 0:
		return nil, ErrEmptyInput
	case 1:
		symbol := symbols[0]
		return NewInternal(NewLeaf(symbol, freqs.Count(symbol)), Empty()), nil
	}

	// Step 1: build a minheap with one leaf per natural symbol.

	nodes := make([]*Node, 0, len(symbols))
	for _, symbol := range symbols {
		nodes = append(nodes, NewLeaf(symbol, freqs.Count(symbol)))
	}
	h := nodeHeap{nodes}
	h.Init()

	// Step 2: repeatedly pop the two smallest nodes and push their merge.
	//
	// Every natural symbol lives in exactly one node on the heap, so no
	// two heap entries share a MinSymbol and (weight, MinSymbol) is a
	// strict total order.  The merge sequence is therefore fully
	// determined by the frequencies.

	for h.Len() > 1 {
		a := heap.Pop(&h).(*Node)
		b := heap.Pop(&h).(*Node)
		heap.Push(&h, NewInternal(a, b))
	}

	root := heap.Pop(&h).(*Node)

	if log.IsEnabledFor(logging.DEBUG) {
		leaves, internals := countNodes(root)
		log.Debugf("built tree: %d leaves, %d internal nodes, weight %d", leaves, internals, root.Weight())
	}

	return root, nil
}

// nodeLess orders nodes by weight ascending, then by smallest contained
// symbol ascending.
func nodeLess(a *Node, b *Node) bool {
	if a.weight != b.weight {
		return a.weight < b.weight
	}
	return a.min < b.min
}

// type nodeHeap {{{

type nodeHeap struct {
	list []*Node
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	return nodeLess(h.list[i], h.list[j])
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(*Node))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = nil
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
