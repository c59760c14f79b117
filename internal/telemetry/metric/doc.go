// Package metric exposes domainmap state as Prometheus metrics.
//
//   - collector.go: a prometheus.Collector over a map's slot statistics
//   - prometheus.go: the per-invocation Registry and text exposition
//
// There is no HTTP endpoint; the stats and shell commands print the text
// format on demand.
package metric
