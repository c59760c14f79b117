package domainmap

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"
	"reflect"
	"sort"

	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"

	"github.com/yndnr/domainmap/pkg/maperr"
	"github.com/yndnr/domainmap/pkg/widehash"
)

// Hasher turns the byte form of a key into a 128-bit hash.
//
// Implementations must be deterministic for the lifetime of a Map: changing
// the hash of a stored key breaks routing and lookup.
type Hasher interface {
	Sum128(b []byte) widehash.Hash
	Name() string
}

// Hasher policy names accepted by HasherByName.
const (
	HasherMurmur3  = "murmur3"
	HasherSpread32 = "spread32"
	HasherXXH3     = "xxh3"
)

// Murmur3 hashes keys with 128-bit MurmurHash3 (x64 variant).
type Murmur3 struct{}

func (Murmur3) Name() string { return HasherMurmur3 }

func (Murmur3) Sum128(b []byte) widehash.Hash {
	h1, h2 := murmur3.Sum128(b)
	return widehash.FromWords(h1, h2)
}

// Spread32 derives a 32-bit MurmurHash3 scalar and spreads it over the four
// sub-fields with small perturbations, so the fields summed by the router
// are not identical. Distinct keys collide with 32-bit probability, which
// makes it suitable for small tables only.
type Spread32 struct{}

func (Spread32) Name() string { return HasherSpread32 }

func (Spread32) Sum128(b []byte) widehash.Hash {
	s := murmur3.Sum32(b)
	return widehash.FromFields(s+1, s, s+1, bits.RotateLeft32(s, 16))
}

// XXH3 hashes keys with 128-bit XXH3.
type XXH3 struct{}

func (XXH3) Name() string { return HasherXXH3 }

func (XXH3) Sum128(b []byte) widehash.Hash {
	u := xxh3.Hash128(b)
	return widehash.FromWords(u.Lo, u.Hi)
}

var hashers = map[string]Hasher{
	HasherMurmur3:  Murmur3{},
	HasherSpread32: Spread32{},
	HasherXXH3:     XXH3{},
}

// HasherByName returns the named hasher policy.
func HasherByName(name string) (Hasher, error) {
	h, ok := hashers[name]
	if !ok {
		return nil, maperr.ErrInvalidArgument.WithDetailsf("unknown hasher %q", name)
	}
	return h, nil
}

// HasherNames lists the registered hasher policies in sorted order.
func HasherNames() []string {
	names := make([]string, 0, len(hashers))
	for name := range hashers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KeyBytes renders a key as bytes for hashing. Keys equal under == render
// identically.
//
// Strings are used as-is and fixed-size scalars are encoded little-endian,
// with negative zero folded into zero. Pointer-like values render by
// address. Structs, arrays and interface values are walked field by field;
// anything left renders as its Go-syntax form.
//
// The dynamic type is not part of the result: int(1) and int64(1) render
// the same. A Map keyed by an interface type tags each key with its type.
func KeyBytes(key any) []byte {
	switch k := key.(type) {
	case string:
		return []byte(k)
	case []byte:
		return k
	case int:
		return binary.LittleEndian.AppendUint64(nil, uint64(k))
	case int8:
		return []byte{byte(k)}
	case int16:
		return binary.LittleEndian.AppendUint16(nil, uint16(k))
	case int32:
		return binary.LittleEndian.AppendUint32(nil, uint32(k))
	case int64:
		return binary.LittleEndian.AppendUint64(nil, uint64(k))
	case uint:
		return binary.LittleEndian.AppendUint64(nil, uint64(k))
	case uint8:
		return []byte{k}
	case uint16:
		return binary.LittleEndian.AppendUint16(nil, k)
	case uint32:
		return binary.LittleEndian.AppendUint32(nil, k)
	case uint64:
		return binary.LittleEndian.AppendUint64(nil, k)
	case uintptr:
		return binary.LittleEndian.AppendUint64(nil, uint64(k))
	case float32:
		if k == 0 {
			k = 0
		}
		return binary.LittleEndian.AppendUint32(nil, math.Float32bits(k))
	case float64:
		return appendFloat(nil, k)
	case bool:
		if k {
			return []byte{1}
		}
		return []byte{0}
	case widehash.Hash:
		w0, w1 := k.Words()
		return binary.LittleEndian.AppendUint64(binary.LittleEndian.AppendUint64(nil, w0), w1)
	}

	v := reflect.ValueOf(key)
	switch v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
		return fmt.Appendf(nil, "%T:%p", key, key)
	case reflect.Struct, reflect.Array, reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return appendValue(fmt.Appendf(nil, "%T:", key), v)
	}
	return fmt.Appendf(nil, "%T:%#v", key, key)
}

// typedKeyBytes prefixes KeyBytes with the dynamic type name.
func typedKeyBytes(key any) []byte {
	return append(fmt.Appendf(nil, "%T\x00", key), KeyBytes(key)...)
}

// appendFloat encodes f so that 0 and -0 agree.
func appendFloat(b []byte, f float64) []byte {
	if f == 0 {
		f = 0
	}
	return binary.LittleEndian.AppendUint64(b, math.Float64bits(f))
}

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

// appendValue walks v the way == compares it.
func appendValue(b []byte, v reflect.Value) []byte {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return append(b, 1)
		}
		return append(b, 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return binary.LittleEndian.AppendUint64(b, uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return binary.LittleEndian.AppendUint64(b, v.Uint())
	case reflect.Float32, reflect.Float64:
		return appendFloat(b, v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return appendFloat(appendFloat(b, real(c)), imag(c))
	case reflect.String:
		return appendString(b, v.String())
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			b = appendValue(b, v.Index(i))
		}
		return b
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			b = appendValue(b, v.Field(i))
		}
		return b
	case reflect.Interface:
		if v.IsNil() {
			return append(b, 0)
		}
		e := v.Elem()
		b = appendString(append(b, 1), e.Type().String())
		return appendValue(b, e)
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
		return binary.LittleEndian.AppendUint64(b, uint64(v.Pointer()))
	}
	return b
}

func keyHashFunc[K comparable](h Hasher) func(K) widehash.Hash {
	if reflect.TypeFor[K]().Kind() == reflect.Interface {
		return func(key K) widehash.Hash {
			return h.Sum128(typedKeyBytes(key))
		}
	}
	return func(key K) widehash.Hash {
		return h.Sum128(KeyBytes(key))
	}
}
