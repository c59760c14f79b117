package metric

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/domainmap/pkg/domainmap"
)

// StatsSource is the read side of a domainmap.Map that the collector needs.
// *domainmap.Map satisfies it for any K and V.
type StatsSource interface {
	Stats() []domainmap.DomainStats
	Len() int
	TotalSize() int
	Tombstones() int
}

// Collector exports the slot layout of a map. Values are read on every
// scrape; nothing is cached between scrapes.
//
// The source is not locked. Callers that mutate the map from another
// goroutine must serialize scrapes with mutations.
type Collector struct {
	src StatsSource

	domainEntries    *prometheus.Desc
	domainLive       *prometheus.Desc
	domainTombstones *prometheus.Desc
	entries          *prometheus.Desc
	live             *prometheus.Desc
	freeSlots        *prometheus.Desc
}

// NewCollector creates a collector for src with metric names under namespace.
func NewCollector(namespace string, src StatsSource) *Collector {
	name := func(n string) string {
		return prometheus.BuildFQName(namespace, "", n)
	}
	domain := []string{"domain"}

	return &Collector{
		src: src,
		domainEntries: prometheus.NewDesc(name("domain_entries"),
			"Slots in the domain, tombstones included", domain, nil),
		domainLive: prometheus.NewDesc(name("domain_live_entries"),
			"Live entries in the domain", domain, nil),
		domainTombstones: prometheus.NewDesc(name("domain_tombstones"),
			"Tombstoned slots in the domain", domain, nil),
		entries: prometheus.NewDesc(name("entries_total"),
			"Slots across all domains, tombstones included", nil, nil),
		live: prometheus.NewDesc(name("live_entries"),
			"Live entries across all domains", nil, nil),
		freeSlots: prometheus.NewDesc(name("free_slots"),
			"Slots recorded in the free-slot ledger", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.domainEntries
	ch <- c.domainLive
	ch <- c.domainTombstones
	ch <- c.entries
	ch <- c.live
	ch <- c.freeSlots
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, s := range c.src.Stats() {
		d := strconv.Itoa(s.Domain)
		ch <- prometheus.MustNewConstMetric(c.domainEntries, prometheus.GaugeValue, float64(s.Entries), d)
		ch <- prometheus.MustNewConstMetric(c.domainLive, prometheus.GaugeValue, float64(s.Live), d)
		ch <- prometheus.MustNewConstMetric(c.domainTombstones, prometheus.GaugeValue, float64(s.Tombstones), d)
	}
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(c.src.TotalSize()))
	ch <- prometheus.MustNewConstMetric(c.live, prometheus.GaugeValue, float64(c.src.Len()))
	ch <- prometheus.MustNewConstMetric(c.freeSlots, prometheus.GaugeValue, float64(c.src.Tombstones()))
}
