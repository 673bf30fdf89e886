package huffcomp

import (
	"bytes"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// Decoder decodes packed Huffman codes by walking a tree.
type Decoder struct {
	root *Node
}

// NewDecoder returns a Decoder that walks the tree rooted at root.  The tree
// may come from untrusted input; Decode checks its shape as it goes.
func NewDecoder(root *Node) *Decoder {
	return &Decoder{root: root}
}

// Decode decodes exactly count symbols from payload.  Bits are consumed most
// significant first.  Each 0 bit descends to the left child and each 1 bit to
// the right child; reaching a leaf emits its symbol and returns to the root.
// Decoding stops as soon as count symbols have been emitted, so padding bits
// at the end of payload are never examined.
//
// Decode returns an error wrapping ErrTruncatedStream if payload runs out
// first, or ErrCorruptTree if the walk reaches a missing child, the Empty
// placeholder, or a root that is not an internal node.
//
func (d *Decoder) Decode(count uint64, payload []byte) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(int(minUint64(count, uint64(len(payload))*8)))
	if err := d.DecodeTo(&out, count, payload); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// DecodeTo is like Decode, but writes the decoded symbols to w.
func (d *Decoder) DecodeTo(w io.ByteWriter, count uint64, payload []byte) error {
	if count == 0 {
		return nil
	}

	root := d.root
	if root == nil || root.kind != InternalNode {
		return fmt.Errorf("%w: root is not an internal node", ErrCorruptTree)
	}

	br := bitio.NewReader(bytes.NewReader(payload))
	var emitted uint64
	var bitPos uint64
	cursor := root
	for emitted < count {
		bit, err := br.ReadBool()
		if err == io.EOF {
			return fmt.Errorf("%w: payload of %d bytes ended after %d of %d symbols", ErrTruncatedStream, len(payload), emitted, count)
		}
		if err != nil {
			return err
		}
		bitPos++

		cursor = cursor.Child(bit)
		if cursor == nil {
			return fmt.Errorf("%w: missing child at payload bit %d", ErrCorruptTree, bitPos-1)
		}

		switch cursor.kind {
		case InternalNode:
			continue
		case LeafNode:
			if err := w.WriteByte(byte(cursor.symbol)); err != nil {
				return err
			}
			emitted++
			cursor = root
		default:
			return fmt.Errorf("%w: reached %s node at payload bit %d", ErrCorruptTree, cursor.kind, bitPos-1)
		}
	}
	return nil
}

// DecodeBitstream decodes count symbols from payload using the tree rooted at
// root.  It is shorthand for NewDecoder(root).Decode(count, payload).
func DecodeBitstream(root *Node, count uint64, payload []byte) ([]byte, error) {
	return NewDecoder(root).Decode(count, payload)
}

func minUint64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}
