package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/yndnr/domainmap/internal/infra/confloader"
)

// Load builds the effective configuration: defaults, then the file at path,
// then DOMAINMAP_* environment variables, then overrides (dotted keys, as
// set from command-line flags). The result is verified.
//
// An empty path falls back to DefaultConfigPath when that file exists.
// The returned loader can re-read the same sources with Reload.
func Load(path string, overrides map[string]any) (*Config, *confloader.Loader, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigPath()); err == nil {
			path = DefaultConfigPath()
		}
	} else if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("config file %s: %w", path, err)
	}

	l := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithOverrides(overrides),
	)

	cfg := Default()
	if err := l.Load(cfg); err != nil {
		return nil, nil, err
	}
	if err := Verify(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, l, nil
}

// Reload re-reads every source of l into a fresh default configuration.
func Reload(l *confloader.Loader) (*Config, error) {
	cfg := Default()
	if err := l.Reload(cfg); err != nil {
		return nil, err
	}
	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
