package metric

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/domainmap/pkg/domainmap"
	"github.com/yndnr/domainmap/pkg/widehash"
)

type fakeSource struct {
	stats []domainmap.DomainStats
}

func (f fakeSource) Stats() []domainmap.DomainStats { return f.stats }

func (f fakeSource) Len() int {
	n := 0
	for _, s := range f.stats {
		n += s.Live
	}
	return n
}

func (f fakeSource) TotalSize() int {
	n := 0
	for _, s := range f.stats {
		n += s.Entries
	}
	return n
}

func (f fakeSource) Tombstones() int {
	n := 0
	for _, s := range f.stats {
		n += s.Tombstones
	}
	return n
}

func TestCollector_PerDomain(t *testing.T) {
	src := fakeSource{stats: []domainmap.DomainStats{
		{Domain: 0, Entries: 3, Live: 1, Tombstones: 2},
		{Domain: 1, Entries: 4, Live: 4, Tombstones: 0},
	}}
	c := NewCollector("dm", src)

	expected := `
# HELP dm_domain_entries Slots in the domain, tombstones included
# TYPE dm_domain_entries gauge
dm_domain_entries{domain="0"} 3
dm_domain_entries{domain="1"} 4
# HELP dm_domain_tombstones Tombstoned slots in the domain
# TYPE dm_domain_tombstones gauge
dm_domain_tombstones{domain="0"} 2
dm_domain_tombstones{domain="1"} 0
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"dm_domain_entries", "dm_domain_tombstones"); err != nil {
		t.Errorf("unexpected metrics:\n%v", err)
	}
}

func TestCollector_Totals(t *testing.T) {
	src := fakeSource{stats: []domainmap.DomainStats{
		{Domain: 0, Entries: 3, Live: 1, Tombstones: 2},
		{Domain: 1, Entries: 4, Live: 4, Tombstones: 0},
	}}
	c := NewCollector("dm", src)

	expected := `
# HELP dm_entries_total Slots across all domains, tombstones included
# TYPE dm_entries_total gauge
dm_entries_total 7
# HELP dm_free_slots Slots recorded in the free-slot ledger
# TYPE dm_free_slots gauge
dm_free_slots 2
# HELP dm_live_entries Live entries across all domains
# TYPE dm_live_entries gauge
dm_live_entries 5
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"dm_entries_total", "dm_free_slots", "dm_live_entries"); err != nil {
		t.Errorf("unexpected metrics:\n%v", err)
	}
}

func TestCollector_Count(t *testing.T) {
	m := domainmap.NewWithDomains[string, int](5)
	c := NewCollector("dm", m)

	// 3 per-domain series for each of 5 domains plus 3 totals.
	if got := testutil.CollectAndCount(c); got != 18 {
		t.Errorf("CollectAndCount() = %d, want 18", got)
	}
}

func TestCollector_ReadsLiveMap(t *testing.T) {
	m := domainmap.NewWithHashFunc[int, string](func(k int) widehash.Hash {
		return widehash.FromUint64(uint64(k))
	}, domainmap.WithDomains(2), domainmap.WithRouter(domainmap.WordRouter))
	c := NewCollector("dm", m)

	for k := 0; k < 5; k++ {
		m.Set(k, "v")
	}
	m.Remove(2)

	expected := `
# HELP dm_domain_live_entries Live entries in the domain
# TYPE dm_domain_live_entries gauge
dm_domain_live_entries{domain="0"} 2
dm_domain_live_entries{domain="1"} 2
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected), "dm_domain_live_entries"); err != nil {
		t.Errorf("unexpected metrics:\n%v", err)
	}

	// A later scrape sees later mutations.
	m.Set(9, "v")
	expected = `
# HELP dm_domain_live_entries Live entries in the domain
# TYPE dm_domain_live_entries gauge
dm_domain_live_entries{domain="0"} 2
dm_domain_live_entries{domain="1"} 3
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected), "dm_domain_live_entries"); err != nil {
		t.Errorf("unexpected metrics after insert:\n%v", err)
	}
}
