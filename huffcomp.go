package huffcomp

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/op/go-logging"
)

// countSize is the width of the symbol count field.
const countSize = 4

// Artifact is a compressed byte stream: the Huffman tree used to encode it,
// the number of symbols encoded, and the packed code bits.
type Artifact struct {
	Tree    *Node
	Count   uint32
	Payload []byte
}

// Compress compresses data.  It returns ErrEmptyInput if data is empty and
// ErrInputTooLarge if data is too long for the 32-bit symbol count.
func Compress(data []byte) (*Artifact, error) {
	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrInputTooLarge, len(data), uint64(math.MaxUint32))
	}

	freqs := CountBytes(data)
	root, err := BuildTree(freqs)
	if err != nil {
		return nil, err
	}
	table := DeriveCodeTable(root)

	var payload bytes.Buffer
	payload.Grow(int((table.EncodedBits(freqs) + 7) / 8))
	w := NewBitstreamWriter(&payload, table)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	a := &Artifact{
		Tree:    root,
		Count:   uint32(w.Count()),
		Payload: payload.Bytes(),
	}
	log.Debugf("compressed %d symbols (%d distinct, codes of %d .. %d bits) into %d payload bytes",
		a.Count, table.Len(), table.MinSize(), table.MaxSize(), len(a.Payload))
	return a, nil
}

// Decompress reconstructs the original bytes from a.
func Decompress(a *Artifact) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil artifact", ErrCorruptTree)
	}
	out, err := DecodeBitstream(a.Tree, uint64(a.Count), a.Payload)
	if err != nil {
		return nil, err
	}
	log.Debugf("decompressed %d payload bytes into %d symbols", len(a.Payload), len(out))
	return out, nil
}

// CompressBytes compresses data and returns the serialized artifact.
func CompressBytes(data []byte) ([]byte, error) {
	a, err := Compress(data)
	if err != nil {
		return nil, err
	}
	return a.MarshalBinary()
}

// DecompressBytes parses a serialized artifact and returns the original
// bytes.
func DecompressBytes(raw []byte) ([]byte, error) {
	a, err := ParseArtifact(raw)
	if err != nil {
		return nil, err
	}
	return Decompress(a)
}

// CompressTo reads src until EOF, compresses it, and writes the serialized
// artifact to dst.  Nothing is written to dst unless compression succeeds.
func CompressTo(dst io.Writer, src io.Reader) (int64, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return 0, err
	}
	raw, err := CompressBytes(data)
	if err != nil {
		return 0, err
	}
	return writeBytes(dst, raw)
}

// CompressSeeker is like CompressTo, but instead of holding the whole input in
// memory it makes two passes over src: one to count symbol frequencies and
// one to encode.  src is read from its current offset.
//
// If src does not yield the same bytes on both passes, CompressSeeker
// returns an error wrapping ErrInputChanged and writes nothing to dst.
func CompressSeeker(dst io.Writer, src io.ReadSeeker) (int64, error) {
	start, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}

	freqs, err := CountReader(src)
	if err != nil {
		return 0, err
	}
	if freqs.Total() > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d bytes, max %d", ErrInputTooLarge, freqs.Total(), uint64(math.MaxUint32))
	}
	root, err := BuildTree(freqs)
	if err != nil {
		return 0, err
	}
	table := DeriveCodeTable(root)

	if _, err := src.Seek(start, io.SeekStart); err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	buf.Write(MarshalTree(root))
	countAt := buf.Len()
	buf.Write(make([]byte, countSize))
	w := NewBitstreamWriter(&buf, table)
	if _, err := w.ReadFrom(&knownSymbolReader{r: src, table: table}); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	if w.Count() != freqs.Total() {
		return 0, fmt.Errorf("%w: counted %d symbols, encoded %d", ErrInputChanged, freqs.Total(), w.Count())
	}

	raw := buf.Bytes()
	binary.BigEndian.PutUint32(raw[countAt:], uint32(w.Count()))
	log.Debugf("compressed %d symbols (%d distinct) into %d bytes", w.Count(), table.Len(), len(raw))
	return writeBytes(dst, raw)
}

// DecompressTo reads a serialized artifact from src until EOF and writes the
// original bytes to dst.  Nothing is written to dst unless decompression
// succeeds.
func DecompressTo(dst io.Writer, src io.Reader) (int64, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return 0, err
	}
	out, err := DecompressBytes(raw)
	if err != nil {
		return 0, err
	}
	return writeBytes(dst, out)
}

// ParseArtifact parses a serialized artifact.
func ParseArtifact(raw []byte) (*Artifact, error) {
	a := new(Artifact)
	if err := a.UnmarshalBinary(raw); err != nil {
		return nil, err
	}
	return a, nil
}

// MarshalBinary serializes the artifact as the tree, the big-endian 32-bit
// symbol count, and the payload.  It implements encoding.BinaryMarshaler.
func (a *Artifact) MarshalBinary() ([]byte, error) {
	if a == nil || a.Tree == nil {
		return nil, fmt.Errorf("%w: artifact has no tree", ErrCorruptTree)
	}
	out := make([]byte, 0, 3*NumSymbols+countSize+len(a.Payload))
	out = AppendTree(out, a.Tree)
	out = binary.BigEndian.AppendUint32(out, a.Count)
	out = append(out, a.Payload...)
	return out, nil
}

// UnmarshalBinary parses a serialized artifact.  It implements
// encoding.BinaryUnmarshaler.  The payload is copied out of raw.
func (a *Artifact) UnmarshalBinary(raw []byte) error {
	root, n, err := UnmarshalTree(raw)
	if err != nil {
		return err
	}
	rest := raw[n:]
	if len(rest) < countSize {
		return fmt.Errorf("%w: %d bytes after the tree, expected a %d-byte symbol count", ErrTruncatedStream, len(rest), countSize)
	}
	count := binary.BigEndian.Uint32(rest)
	payload := make([]byte, len(rest)-countSize)
	copy(payload, rest[countSize:])

	if log.IsEnabledFor(logging.DEBUG) {
		leaves, internals := countNodes(root)
		log.Debugf("parsed artifact: %d-byte tree (%d leaves, %d internal nodes), %d symbols, %d payload bytes",
			n, leaves, internals, count, len(payload))
	}

	*a = Artifact{Tree: root, Count: count, Payload: payload}
	return nil
}

// knownSymbolReader fails with ErrInputChanged on the first byte that has no
// code in table.  Bytes before it are passed through.
type knownSymbolReader struct {
	r      io.Reader
	table  *CodeTable
	offset int64
}

func (kr *knownSymbolReader) Read(p []byte) (int, error) {
	n, err := kr.r.Read(p)
	for i := 0; i < n; i++ {
		if symbol := Symbol(p[i]); !kr.table.Has(symbol) {
			return i, fmt.Errorf("%w: symbol %s at offset %d was not counted", ErrInputChanged, symbol, kr.offset+int64(i))
		}
	}
	kr.offset += int64(n)
	return n, err
}

func writeBytes(w io.Writer, b []byte) (int64, error) {
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	}
	if n != len(b) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}

var (
	_ encoding.BinaryMarshaler   = (*Artifact)(nil)
	_ encoding.BinaryUnmarshaler = (*Artifact)(nil)
)
