// Package widehash provides the 128-bit hash value used by domainmap.
//
// A Hash is two 64-bit words that can also be read and written as four
// 32-bit sub-fields:
//
//	field 0: word0 bits  0..31
//	field 1: word0 bits 32..63
//	field 2: word1 bits  0..31
//	field 3: word1 bits 32..63
//
// Hashes compare by value and order lexicographically on (word0, word1).
//
// Usage:
//
//	h := widehash.FromWords(hi, lo)
//	f, err := h.Field(2)
//	pair := widehash.New(a, b) // commutative over a and b
package widehash
