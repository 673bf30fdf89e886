package huffcomp

import (
	"strconv"
)

// Symbol represents one symbol of the byte alphabet.
type Symbol byte

// NumSymbols is the size of the alphabet.
const NumSymbols = 256

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(NumSymbols - 1)

// String returns the symbol as a quoted Go character literal, e.g. 'a' or
// '\xff'.
func (s Symbol) String() string {
	if s >= 0x80 {
		return "'\\x" + strconv.FormatUint(uint64(s)|0x100, 16)[1:] + "'"
	}
	return strconv.QuoteRuneToASCII(rune(s))
}
