package metric

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// DefaultNamespace prefixes every metric name when none is configured.
const DefaultNamespace = "domainmap"

// Registry holds the metrics of one command invocation.
type Registry struct {
	registry  *prometheus.Registry
	namespace string

	// Commands counts shell commands by name and outcome.
	Commands *prometheus.CounterVec
}

// NewRegistry creates a registry. An empty namespace means DefaultNamespace.
func NewRegistry(namespace string) *Registry {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	r := &Registry{
		registry:  prometheus.NewRegistry(),
		namespace: namespace,
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "shell",
			Name:      "commands_total",
			Help:      "Shell commands executed, by command and result",
		}, []string{"command", "result"}),
	}
	r.registry.MustRegister(r.Commands)
	return r
}

// Namespace returns the metric name prefix.
func (r *Registry) Namespace() string {
	return r.namespace
}

// Register adds a collector for src.
func (r *Registry) Register(src StatsSource) error {
	if err := r.registry.Register(NewCollector(r.namespace, src)); err != nil {
		return fmt.Errorf("register map collector: %w", err)
	}
	return nil
}

// ObserveCommand counts one shell command.
func (r *Registry) ObserveCommand(name string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.Commands.WithLabelValues(name, result).Inc()
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteText gathers all metrics and writes them in the Prometheus text
// exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
