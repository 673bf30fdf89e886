package huffcomp

import (
	"fmt"

	"github.com/chronos-tachyon/assert"
)

const (
	tagLeaf     = byte(0x00)
	tagInternal = byte(0x01)

	// maxTreeDepth bounds the nesting accepted by UnmarshalTree.  A tree
	// built from a byte alphabet is at most 256 levels deep, plus one for
	// the Empty placeholder.
	maxTreeDepth = NumSymbols + 1
)

// MarshalTree serializes the tree rooted at root.
func MarshalTree(root *Node) []byte {
	return AppendTree(nil, root)
}

// AppendTree appends the serialized form of the tree rooted at root to dst
// and returns the extended slice.
//
// The encoding is a preorder walk.  An internal node is the byte 0x01
// followed by its left and right subtrees.  A leaf is the byte 0x00, a
// length byte, and that many bytes of symbol: always one byte, except for
// the Empty placeholder, whose length is zero.
//
func AppendTree(dst []byte, root *Node) []byte {
	assert.Assertf(root != nil, "cannot serialize a nil tree")
	switch root.kind {
	case InternalNode:
		dst = append(dst, tagInternal)
		dst = AppendTree(dst, root.left)
		dst = AppendTree(dst, root.right)
	case LeafNode:
		dst = append(dst, tagLeaf, 1, byte(root.symbol))
	default:
		dst = append(dst, tagLeaf, 0)
	}
	return dst
}

// UnmarshalTree parses a serialized tree from the front of data.  It returns
// the tree and the number of bytes of data that the tree occupies; any
// bytes after that are left untouched.
//
// Errors wrap ErrMalformedTree.
//
func UnmarshalTree(data []byte) (*Node, int, error) {
	p := treeParser{data: data}
	root, err := p.parse(0)
	if err != nil {
		return nil, 0, err
	}
	return root, p.pos, nil
}

type treeParser struct {
	data []byte
	pos  int
}

func (p *treeParser) next(what string) (byte, error) {
	if p.pos >= len(p.data) {
		return 0, fmt.Errorf("%w: unexpected end of data at offset %d, expected %s", ErrMalformedTree, p.pos, what)
	}
	b := p.data[p.pos]
	p.pos++
	return b, nil
}

func (p *treeParser) parse(depth int) (*Node, error) {
	if depth > maxTreeDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d at offset %d", ErrMalformedTree, maxTreeDepth, p.pos)
	}

	start := p.pos
	tag, err := p.next("tag")
	if err != nil {
		return nil, err
	}

	switch tag {
	case tagInternal:
		left, err := p.parse(depth + 1)
		if err != nil {
			return nil, err
		}
		right, err := p.parse(depth + 1)
		if err != nil {
			return nil, err
		}
		return NewInternal(left, right), nil

	case tagLeaf:
		length, err := p.next("symbol length")
		if err != nil {
			return nil, err
		}
		switch length {
		case 0:
			return Empty(), nil
		case 1:
			b, err := p.next("symbol")
			if err != nil {
				return nil, err
			}
			return NewLeaf(Symbol(b), 0), nil
		default:
			return nil, fmt.Errorf("%w: leaf at offset %d has symbol length %d, expected 0 or 1", ErrMalformedTree, start, length)
		}

	default:
		return nil, fmt.Errorf("%w: unknown tag 0x%02x at offset %d", ErrMalformedTree, tag, start)
	}
}
