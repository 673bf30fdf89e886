package huffcomp

import (
	"bytes"
	"fmt"
	"io"
)

// CodeTable maps each Symbol of a Huffman tree to its Code.
type CodeTable struct {
	codes   [NumSymbols]Code
	numUsed int
	minSize byte
	maxSize byte
}

// DeriveCodeTable walks the tree rooted at root, assigning bit 0 to every
// left branch and bit 1 to every right branch, and records the path to each
// leaf as that leaf's Code.  The codes are prefix-free because only leaves
// receive one.
func DeriveCodeTable(root *Node) *CodeTable {
	t := new(CodeTable)
	t.walk(root, Code{})
	return t
}

func (t *CodeTable) walk(n *Node, prefix Code) {
	if n == nil {
		return
	}
	switch n.kind {
	case InternalNode:
		t.walk(n.left, prefix.Append(0))
		t.walk(n.right, prefix.Append(1))
	case LeafNode:
		size := prefix.Size
		if t.numUsed == 0 {
			t.minSize = size
			t.maxSize = size
		} else if t.minSize > size {
			t.minSize = size
		} else if t.maxSize < size {
			t.maxSize = size
		}
		t.codes[n.symbol] = prefix
		t.numUsed++
	}
}

// Encode returns the Code for symbol.  The Code has Size 0 if symbol does
// not appear in the table.
func (t *CodeTable) Encode(symbol Symbol) Code {
	return t.codes[symbol]
}

// Has returns true iff symbol has a Code in this table.
func (t *CodeTable) Has(symbol Symbol) bool {
	return t.codes[symbol].Size != 0
}

// Len returns the number of symbols with a Code.
func (t *CodeTable) Len() int {
	return t.numUsed
}

// MinSize is the bit length of the shortest code.
func (t *CodeTable) MinSize() byte {
	return t.minSize
}

// MaxSize is the bit length of the longest code.
func (t *CodeTable) MaxSize() byte {
	return t.maxSize
}

// EncodedBits returns the number of payload bits needed to encode symbols
// with the given frequencies.
func (t *CodeTable) EncodedBits(freqs Frequencies) uint64 {
	var sum uint64
	for _, symbol := range freqs.Symbols() {
		sum += freqs.Count(symbol) * uint64(t.codes[symbol].Size)
	}
	return sum
}

// Dump writes a programmer-readable debugging dump of the CodeTable's
// current state to the given writer.
func (t *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	for i := 0; i < NumSymbols; i++ {
		if hc := t.codes[i]; hc.Size != 0 {
			fmt.Fprintf(&buf, "\tEncode(%s) = %s\n", Symbol(i), hc)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
