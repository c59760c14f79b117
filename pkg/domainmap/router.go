package domainmap

import (
	"github.com/yndnr/domainmap/pkg/maperr"
	"github.com/yndnr/domainmap/pkg/widehash"
)

// Router maps a hash to a domain index in [0, n). It must be a pure
// function of its arguments. The built-in routers return 0 when n < 1.
type Router func(h widehash.Hash, n int) int

// Router policy names accepted by RouterByName.
const (
	RouterFields = "fields"
	RouterWords  = "words"
)

// FieldRouter reduces each 32-bit sub-field modulo n, sums them and reduces
// the sum modulo n again. All 128 bits take part, so keys sharing a low-order
// pattern still spread across domains.
func FieldRouter(h widehash.Hash, n int) int {
	if n <= 1 {
		return 0
	}
	un := uint64(n)
	var sum uint64
	for _, f := range h.Fields() {
		sum += uint64(f) % un
	}
	return int(sum % un)
}

// WordRouter reduces both 64-bit words modulo n and sums them modulo n.
func WordRouter(h widehash.Hash, n int) int {
	if n <= 1 {
		return 0
	}
	un := uint64(n)
	w0, w1 := h.Words()
	return int((w0%un + w1%un) % un)
}

// RouterByName returns the named routing policy.
func RouterByName(name string) (Router, error) {
	switch name {
	case RouterFields:
		return FieldRouter, nil
	case RouterWords:
		return WordRouter, nil
	default:
		return nil, maperr.ErrInvalidArgument.WithDetailsf("unknown router %q", name)
	}
}
