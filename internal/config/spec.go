package config

// Config is the root configuration of the domainmap command.
type Config struct {
	Table   TableSection   `koanf:"table" yaml:"table" json:"table"`
	Log     LogSection     `koanf:"log" yaml:"log" json:"log"`
	Metrics MetricsSection `koanf:"metrics" yaml:"metrics" json:"metrics"`
	Shell   ShellSection   `koanf:"shell" yaml:"shell" json:"shell"`
}

// TableSection configures the maps built by the commands.
type TableSection struct {
	// Domains is the fixed domain count N.
	Domains int `koanf:"domains" yaml:"domains" json:"domains"`

	// Hasher names the hash policy: murmur3, spread32 or xxh3.
	Hasher string `koanf:"hasher" yaml:"hasher" json:"hasher"`

	// Router names the routing policy: fields or words.
	Router string `koanf:"router" yaml:"router" json:"router"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" yaml:"level" json:"level"`
	Format string `koanf:"format" yaml:"format" json:"format"`
}

// MetricsSection configures metric names.
type MetricsSection struct {
	Namespace string `koanf:"namespace" yaml:"namespace" json:"namespace"`
}

// ShellSection configures the interactive shell.
type ShellSection struct {
	Prompt string `koanf:"prompt" yaml:"prompt" json:"prompt"`

	// HistoryFile is where the shell keeps command history. Empty means
	// DefaultHistoryPath().
	HistoryFile string `koanf:"history_file" yaml:"history_file" json:"history_file"`

	// WatchConfig re-reads the config file on change and applies the new
	// log level.
	WatchConfig bool `koanf:"watch_config" yaml:"watch_config" json:"watch_config"`
}
