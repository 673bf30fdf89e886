package huffcomp

import (
	"fmt"
	"strconv"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the longest Code that can be represented.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant
	// valid bit, i.e. bit (Size - 1), is the first bit; the least
	// significant bit of Bits is the last bit.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= MaxCodeSize, "size %d > MaxCodeSize %d", size, MaxCodeSize)
	if size < MaxCodeSize {
		bits &= (uint64(1) << size) - 1
	}
	return Code{Size: size, Bits: bits}
}

// Append returns the Code extended by one trailing bit.
func (hc Code) Append(bit uint) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "cannot extend a Code of %d bits", hc.Size)
	assert.Assertf(bit <= 1, "bit %d is not 0 or 1", bit)
	return Code{Size: hc.Size + 1, Bits: (hc.Bits << 1) | uint64(bit)}
}

// Bit returns the i'th bit of the code, counting from the first.
func (hc Code) Bit(i byte) uint {
	assert.Assertf(i < hc.Size, "bit index %d out of range for %d-bit Code", i, hc.Size)
	return uint(hc.Bits>>(hc.Size-1-i)) & 1
}

// HasPrefix returns true iff prefix is a (possibly equal) prefix of this Code.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Bits>>(hc.Size-prefix.Size) == prefix.Bits
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}
