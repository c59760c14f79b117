// Package widehash provides the 128-bit hash value used by domainmap.
package widehash

import (
	"encoding/hex"
	"fmt"

	"github.com/spaolacci/murmur3"

	"github.com/yndnr/domainmap/pkg/maperr"
)

// FieldCount is the number of 32-bit sub-fields in a Hash.
const FieldCount = 4

// Hash is a 128-bit value stored as two 64-bit words.
//
// Sub-field 0 and 1 are the low and high halves of word0, sub-field 2 and 3
// the low and high halves of word1. Hash is comparable; == is bitwise
// equality of both words.
type Hash struct {
	w0, w1 uint64
}

// New builds a Hash from two words, placing the smaller one in word0.
//
// New(a, b) == New(b, a). Use it for unordered pairs only; hashing a single
// key through New would fold distinct keys onto the same value.
func New(a, b uint64) Hash {
	if a < b {
		return Hash{w0: a, w1: b}
	}
	return Hash{w0: b, w1: a}
}

// FromWords builds a Hash from two words in the given order.
func FromWords(w0, w1 uint64) Hash {
	return Hash{w0: w0, w1: w1}
}

// FromUint64 builds a Hash whose word0 is x and word1 is zero.
func FromUint64(x uint64) Hash {
	return Hash{w0: x}
}

// FromFields builds a Hash from its four 32-bit sub-fields.
func FromFields(f0, f1, f2, f3 uint32) Hash {
	return Hash{
		w0: uint64(f1)<<32 | uint64(f0),
		w1: uint64(f3)<<32 | uint64(f2),
	}
}

// Pair hashes two byte strings as an unordered pair: Pair(a, b) == Pair(b, a).
func Pair(a, b []byte) Hash {
	return New(murmur3.Sum64(a), murmur3.Sum64(b))
}

// Words returns word0 and word1.
func (h Hash) Words() (uint64, uint64) {
	return h.w0, h.w1
}

// Fields returns the four sub-fields in index order.
func (h Hash) Fields() [FieldCount]uint32 {
	return [FieldCount]uint32{
		uint32(h.w0),
		uint32(h.w0 >> 32),
		uint32(h.w1),
		uint32(h.w1 >> 32),
	}
}

// Field returns sub-field i.
func (h Hash) Field(i int) (uint32, error) {
	if i < 0 || i >= FieldCount {
		return 0, maperr.ErrIndexOutOfRange.WithDetailsf("hash field %d", i)
	}
	return h.Fields()[i], nil
}

// MustField is Field for indices known to be valid. It panics otherwise.
func (h Hash) MustField(i int) uint32 {
	v, err := h.Field(i)
	if err != nil {
		panic(err)
	}
	return v
}

// SetField replaces sub-field i, leaving the other three untouched.
func (h *Hash) SetField(i int, v uint32) error {
	switch i {
	case 0:
		h.w0 = h.w0&^0xffffffff | uint64(v)
	case 1:
		h.w0 = h.w0&0xffffffff | uint64(v)<<32
	case 2:
		h.w1 = h.w1&^0xffffffff | uint64(v)
	case 3:
		h.w1 = h.w1&0xffffffff | uint64(v)<<32
	default:
		return maperr.ErrIndexOutOfRange.WithDetailsf("hash field %d", i)
	}
	return nil
}

// Equal reports bitwise equality.
func (h Hash) Equal(o Hash) bool {
	return h == o
}

// Compare orders hashes lexicographically on (word0, word1).
// It returns -1, 0 or +1.
func (h Hash) Compare(o Hash) int {
	switch {
	case h.w0 < o.w0:
		return -1
	case h.w0 > o.w0:
		return 1
	case h.w1 < o.w1:
		return -1
	case h.w1 > o.w1:
		return 1
	}
	return 0
}

// Less reports whether h orders before o.
func (h Hash) Less(o Hash) bool {
	return h.Compare(o) < 0
}

// IsZero reports whether both words are zero.
func (h Hash) IsZero() bool {
	return h.w0 == 0 && h.w1 == 0
}

// String renders the hash as 32 hex digits, word0 first.
func (h Hash) String() string {
	return fmt.Sprintf("%016x%016x", h.w0, h.w1)
}

// Parse is the inverse of String.
func Parse(s string) (Hash, error) {
	if len(s) != 32 {
		return Hash{}, maperr.ErrInvalidArgument.WithDetailsf("hash %q: want 32 hex digits", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, maperr.ErrInvalidArgument.WithDetailsf("hash %q", s).WithCause(err)
	}
	var w0, w1 uint64
	for i := 0; i < 8; i++ {
		w0 = w0<<8 | uint64(b[i])
		w1 = w1<<8 | uint64(b[8+i])
	}
	return Hash{w0: w0, w1: w1}, nil
}
