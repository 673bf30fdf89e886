package huffcomp

import (
	"bufio"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// BitstreamWriter packs the Codes of a sequence of symbols into bytes, most
// significant bit first.  Close must be called to flush the final, partially
// filled byte; its unused low bits are zero.
type BitstreamWriter struct {
	bw    *bitio.Writer
	table *CodeTable
	count uint64
}

// NewBitstreamWriter returns a BitstreamWriter that writes the packed codes
// to w, looking each symbol up in table.
func NewBitstreamWriter(w io.Writer, table *CodeTable) *BitstreamWriter {
	return &BitstreamWriter{bw: bitio.NewWriter(w), table: table}
}

// WriteSymbol appends the code for symbol.  symbol must be present in the
// table.
func (w *BitstreamWriter) WriteSymbol(symbol Symbol) error {
	hc := w.table.Encode(symbol)
	assert.Assertf(hc.Size != 0, "symbol %s has no code", symbol)
	if err := w.bw.WriteBits(hc.Bits, hc.Size); err != nil {
		return err
	}
	w.count++
	return nil
}

// Write encodes every byte of p as a symbol.  It implements io.Writer.
func (w *BitstreamWriter) Write(p []byte) (int, error) {
	for i, b := range p {
		if err := w.WriteSymbol(Symbol(b)); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// ReadFrom encodes every byte read from r until EOF.  It implements
// io.ReaderFrom.
func (w *BitstreamWriter) ReadFrom(r io.Reader) (int64, error) {
	br := bufio.NewReader(r)
	var n int64
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if err := w.WriteSymbol(Symbol(b)); err != nil {
			return n, err
		}
		n++
	}
}

// Count returns the number of symbols written so far.
func (w *BitstreamWriter) Count() uint64 {
	return w.count
}

// Close pads the final byte with zero bits and flushes it.  It does not
// close the underlying writer.
func (w *BitstreamWriter) Close() error {
	return w.bw.Close()
}

var (
	_ io.Writer     = (*BitstreamWriter)(nil)
	_ io.ReaderFrom = (*BitstreamWriter)(nil)
	_ io.Closer     = (*BitstreamWriter)(nil)
)
