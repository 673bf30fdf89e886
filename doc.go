// Package huffcomp implements a static, two-pass Huffman compressor for byte
// streams.  The compressed artifact is self-describing: it carries the
// Huffman tree itself, followed by the number of encoded symbols and the
// packed code bits.
//
// Wire format (all integers big-endian):
//
//	tree    = node
//	node    = 0x01 node node          (internal: left, then right)
//	        | 0x00 len[1] symbol[len] (leaf; len is 1, or 0 for the
//	                                   placeholder of a one-symbol tree)
//	count   = uint32, number of encoded symbols
//	payload = codes packed MSB-first, final byte zero-padded
//
// The symbol count, not the bit count, is what lets the decoder tell real
// codes apart from the padding bits in the final byte.
//
// References:
//
//	<https://en.wikipedia.org/wiki/Huffman_coding>
package huffcomp
