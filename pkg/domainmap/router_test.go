package domainmap

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yndnr/domainmap/pkg/maperr"
	"github.com/yndnr/domainmap/pkg/widehash"
)

func TestFieldRouter(t *testing.T) {
	// 1%4 + 2%4 + 3%4 + 4%4 = 6, 6%4 = 2
	require.Equal(t, 2, FieldRouter(widehash.FromFields(1, 2, 3, 4), 4))
	require.Equal(t, 0, FieldRouter(widehash.Hash{}, 7))

	// Sub-field sums that would overflow 32 bits stay exact.
	maxField := ^uint32(0)
	h := widehash.FromFields(maxField, maxField, maxField, maxField)
	want := int((4 * (uint64(maxField) % 10)) % 10)
	require.Equal(t, want, FieldRouter(h, 10))
}

func TestWordRouter(t *testing.T) {
	require.Equal(t, 1, WordRouter(widehash.FromWords(10, 7), 4))
	require.Equal(t, 3, WordRouter(widehash.FromUint64(3), 5))
}

func TestRoutersAreTotalAndDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, r := range []Router{FieldRouter, WordRouter} {
		for _, n := range []int{1, 2, 10, 20, 97} {
			for i := 0; i < 200; i++ {
				h := widehash.FromWords(rng.Uint64(), rng.Uint64())
				d := r(h, n)
				require.GreaterOrEqual(t, d, 0)
				require.Less(t, d, n)
				require.Equal(t, d, r(h, n))
			}
		}
	}
}

func TestFieldRouterUsesHighWord(t *testing.T) {
	// Same word0, different word1: only a router that reads all fields can
	// tell them apart.
	a := widehash.FromWords(42, 1)
	b := widehash.FromWords(42, 2)
	require.NotEqual(t, FieldRouter(a, 16), FieldRouter(b, 16))
}

func TestRouterByName(t *testing.T) {
	r, err := RouterByName(RouterFields)
	require.NoError(t, err)
	require.Equal(t, FieldRouter(widehash.FromFields(1, 2, 3, 4), 4), r(widehash.FromFields(1, 2, 3, 4), 4))

	r, err = RouterByName(RouterWords)
	require.NoError(t, err)
	require.Equal(t, 1, r(widehash.FromWords(10, 7), 4))

	_, err = RouterByName("random")
	require.True(t, errors.Is(err, maperr.ErrInvalidArgument))
}

func TestRoutersWithoutDomains(t *testing.T) {
	h := widehash.FromFields(7, 8, 9, 10)
	for _, n := range []int{-3, 0, 1} {
		require.NotPanics(t, func() {
			require.Equal(t, 0, FieldRouter(h, n), "FieldRouter n=%d", n)
			require.Equal(t, 0, WordRouter(h, n), "WordRouter n=%d", n)
		})
	}
}
