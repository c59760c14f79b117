package domainmap

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yndnr/domainmap/pkg/maperr"
)

func collectKeys(m *Map[int, string]) []int {
	var keys []int
	for it := m.Begin(); !it.Done(); it.Next() {
		keys = append(keys, it.Entry().Key())
	}
	return keys
}

func TestEmptyMapBeginIsEnd(t *testing.T) {
	m := NewWithDomains[int, string](20)
	require.Equal(t, 0, m.TotalSize())

	b := m.Begin()
	require.True(t, b.Equal(m.End()))
	require.True(t, b.Done())

	d, i := b.Position()
	require.Equal(t, 20, d)
	require.Equal(t, 20, i)
}

func TestIterationOrder(t *testing.T) {
	m := identityMap(4)
	for _, k := range []int{7, 1, 4, 0, 5} {
		m.Set(k, "v")
	}
	// domain 0: 4, 0   domain 1: 1, 5   domain 2: -   domain 3: 7
	require.Equal(t, []int{4, 0, 1, 5, 7}, collectKeys(m))
}

func TestIteratorSkipsTombstones(t *testing.T) {
	m := identityMap(4)
	for k := 0; k < 12; k++ {
		m.Set(k, "v")
	}

	// Empty out domain 0 entirely, the tail of domain 3 and one middle slot.
	for _, k := range []int{0, 4, 8, 11, 5} {
		require.True(t, m.Remove(k))
	}

	require.Equal(t, []int{1, 9, 2, 6, 10, 3, 7}, collectKeys(m))
}

func TestBeginSkipsLeadingEmptyAndDeadDomains(t *testing.T) {
	m := identityMap(5)
	m.Set(2, "a")
	m.Set(3, "b")
	m.Remove(2)

	b := m.Begin()
	d, i := b.Position()
	require.Equal(t, 3, d)
	require.Equal(t, 0, i)
	require.Equal(t, "b", b.Entry().Value())
}

func TestAllTombstonedBeginIsEnd(t *testing.T) {
	m := identityMap(3)
	for k := 0; k < 6; k++ {
		m.Set(k, "v")
	}
	for k := 0; k < 6; k++ {
		m.Remove(k)
	}

	b := m.Begin()
	require.True(t, b.Equal(m.End()))
	require.Equal(t, 6, m.TotalSize())
}

func TestAdvancePastLastDomainLandsOnEnd(t *testing.T) {
	m := identityMap(3)
	m.Set(2, "last") // only the last domain is populated

	it := m.Begin()
	d, _ := it.Position()
	require.Equal(t, 2, d)

	it.Next()
	require.True(t, it.Equal(m.End()))

	// Advancing the end sentinel stays at the end.
	it.Next()
	require.True(t, it.Equal(m.End()))
}

func TestEntryAtEndPanics(t *testing.T) {
	m := identityMap(3)
	end := m.End()
	require.PanicsWithValue(t, maperr.ErrDereferenceAtEnd, func() { end.Entry() })

	// A found entry that is removed afterwards skips forward to the end.
	m.Set(1, "x")
	it := m.Find(1)
	m.Remove(1)
	require.PanicsWithValue(t, maperr.ErrDereferenceAtEnd, func() { it.Entry() })
}

func TestFindEntrySkipsRemoved(t *testing.T) {
	m := identityMap(2)
	m.Set(0, "a")
	m.Set(2, "b")
	m.Set(1, "c")

	it := m.Find(0)
	m.Remove(0)
	require.Equal(t, "b", it.Entry().Value())
}

func TestFind(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	it := m.Find("b")
	require.False(t, it.Done())
	require.Equal(t, "b", it.Entry().Key())
	require.Equal(t, 2, it.Entry().Value())

	missing := m.Find("zzz")
	require.True(t, missing.Equal(m.End()))

	m.Remove("a")
	gone := m.Find("a")
	require.True(t, gone.Equal(m.End()))
}

func TestIteratorEquality(t *testing.T) {
	m := identityMap(4)
	m.Set(1, "a")
	m.Set(5, "b")

	a := m.Find(5)
	b := m.Begin()
	require.False(t, a.Equal(b))
	b.Next()
	require.True(t, a.Equal(b))
}

func TestIterationVisitsLiveOnce(t *testing.T) {
	const n, removed = 500, 120

	m := NewWithDomains[int, string](17)
	for i := 0; i < n; i++ {
		m.Set(i, fmt.Sprint(i))
	}
	for i := 0; i < removed; i++ {
		m.Remove(i * 4)
	}

	seen := make(map[int]int)
	steps := 0
	for it := m.Begin(); !it.Done(); it.Next() {
		seen[it.Entry().Key()]++
		steps++
	}

	require.Equal(t, n-removed, len(seen))
	require.LessOrEqual(t, steps, m.TotalSize())
	for k, c := range seen {
		require.Equal(t, 1, c, "key %d", k)
		if k%4 == 0 && k < removed*4 {
			t.Errorf("removed key %d surfaced", k)
		}
	}
}

func TestRange(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	m.Remove("b")

	collected := make(map[string]int)
	m.Range(func(key string, value int) bool {
		collected[key] = value
		return true
	})
	require.Equal(t, map[string]int{"a": 1, "c": 3}, collected)
}

func TestRangeEarlyStop(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 100; i++ {
		m.Set(i, i)
	}

	count := 0
	m.Range(func(key, value int) bool {
		count++
		return count < 10
	})
	require.Equal(t, 10, count)
}

func TestRangeWithLimit(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 100; i++ {
		m.Set(i, i*10)
	}

	count := 0
	result := m.RangeWithLimit(25, func(key, value int) bool {
		count++
		return true
	})
	require.Equal(t, 25, result)
	require.Equal(t, 25, count)
}

func TestKeysValuesItems(t *testing.T) {
	m := New[string, int]()
	m.Set("x", 10)
	m.Set("y", 20)
	m.Set("z", 30)
	m.Remove("y")

	keys := m.Keys()
	sort.Strings(keys)
	require.Equal(t, []string{"x", "z"}, keys)

	values := m.Values()
	sort.Ints(values)
	require.Equal(t, []int{10, 30}, values)

	items := make(map[string]int)
	for _, item := range m.Items() {
		items[item.Key] = item.Value
	}
	require.Equal(t, map[string]int{"x": 10, "z": 30}, items)
}

func TestAllMatchesIterator(t *testing.T) {
	m := identityMap(3)
	for k := 0; k < 9; k++ {
		m.Set(k, fmt.Sprint(k))
	}
	m.Remove(4)

	var keys []int
	for k, v := range m.All() {
		require.Equal(t, fmt.Sprint(k), v)
		keys = append(keys, k)
	}
	require.Equal(t, collectKeys(m), keys)
}
