package huffcomp

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// Frequencies counts the occurrences of each Symbol in an input.
//
// The zero value is an empty model, ready to use.
type Frequencies struct {
	counts   [NumSymbols]uint64
	total    uint64
	distinct uint
}

// CountBytes returns the Frequencies of the bytes in p.
func CountBytes(p []byte) Frequencies {
	var f Frequencies
	f.Add(p)
	return f
}

// CountReader returns the Frequencies of every byte read from r until EOF.
// Read errors are returned unchanged.
func CountReader(r io.Reader) (Frequencies, error) {
	var f Frequencies
	_, err := f.ReadFrom(r)
	return f, err
}

// Add counts the bytes in p.
func (f *Frequencies) Add(p []byte) {
	for _, b := range p {
		f.addSymbol(Symbol(b))
	}
}

// ReadFrom counts every byte read from r until EOF.  It implements
// io.ReaderFrom.
func (f *Frequencies) ReadFrom(r io.Reader) (int64, error) {
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
		f.addSymbol(Symbol(b))
		n++
	}
}

func (f *Frequencies) addSymbol(symbol Symbol) {
	if f.counts[symbol] == 0 {
		f.distinct++
	}
	f.counts[symbol]++
	f.total++
}

// Count returns the number of occurrences of symbol.
func (f *Frequencies) Count(symbol Symbol) uint64 {
	return f.counts[symbol]
}

// Len returns the number of distinct symbols that occur at least once.
func (f *Frequencies) Len() int {
	return int(f.distinct)
}

// Total returns the total number of symbols counted.
func (f *Frequencies) Total() uint64 {
	return f.total
}

// Symbols lists the symbols that occur at least once, in ascending order.
func (f *Frequencies) Symbols() []Symbol {
	out := make([]Symbol, 0, f.distinct)
	for i := 0; i < NumSymbols; i++ {
		if f.counts[i] != 0 {
			out = append(out, Symbol(i))
		}
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the model to the given
// writer.
func (f *Frequencies) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Frequencies{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", f.distinct)
	fmt.Fprintf(&buf, "\tTotal() = %d\n", f.total)
	for _, symbol := range f.Symbols() {
		fmt.Fprintf(&buf, "\tCount(%s) = %d\n", symbol, f.counts[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

var _ io.ReaderFrom = (*Frequencies)(nil)
