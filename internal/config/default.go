package config

import (
	"os"
	"path/filepath"

	"github.com/yndnr/domainmap/internal/telemetry/metric"
	"github.com/yndnr/domainmap/pkg/domainmap"
)

// Default configuration values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultPrompt    = "domainmap> "
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Table: TableSection{
			Domains: domainmap.DefaultDomains,
			Hasher:  domainmap.HasherMurmur3,
			Router:  domainmap.RouterFields,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsSection{
			Namespace: metric.DefaultNamespace,
		},
		Shell: ShellSection{
			Prompt: DefaultPrompt,
		},
	}
}

// Dir returns the per-user configuration directory, ~/.domainmap.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".domainmap"
	}
	return filepath.Join(home, ".domainmap")
}

// DefaultConfigPath returns the configuration file read when --config is
// not given.
func DefaultConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultHistoryPath returns the shell history file used when none is
// configured.
func DefaultHistoryPath() string {
	return filepath.Join(Dir(), "history")
}
