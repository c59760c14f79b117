package confloader

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "DOMAINMAP_"

// Source names where a configuration value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceFile     Source = "file"
	SourceEnv      Source = "env"
	SourceOverride Source = "flag"
)

// Loader merges a YAML file, environment variables and overrides, in that
// order of increasing precedence, and remembers which source last changed
// each key.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
	overrides map[string]any
	origin    map[string]Source
}

// Option configures a Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) { l.envPrefix = prefix }
}

// WithConfigFile sets the YAML file to read. Empty means none.
func WithConfigFile(path string) Option {
	return func(l *Loader) { l.filePath = path }
}

// WithOverrides sets flat dotted keys that take precedence over every other
// source. The command line passes explicitly set flags this way.
func WithOverrides(values map[string]any) Option {
	return func(l *Loader) { l.overrides = values }
}

// NewLoader creates a loader. Nothing is read until Load.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(l)
	}
	l.reset()
	return l
}

func (l *Loader) reset() {
	l.k = koanf.New(".")
	l.origin = make(map[string]Source)
}

// FilePath returns the configured file path, or "".
func (l *Loader) FilePath() string {
	return l.filePath
}

// Load reads every source and unmarshals the merged result into target.
// Fields that no source sets keep their current values, so target should
// be pre-filled with defaults.
func (l *Loader) Load(target any) error {
	steps := []struct {
		src  Source
		load func() error
	}{
		{SourceFile, func() error { return l.LoadFile(l.filePath) }},
		{SourceEnv, l.LoadEnv},
		{SourceOverride, func() error { return l.LoadMap(l.overrides) }},
	}
	for _, step := range steps {
		if err := l.track(step.src, step.load); err != nil {
			return fmt.Errorf("load %s: %w", step.src, err)
		}
	}

	if err := l.k.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// Reload discards everything loaded so far and runs Load again.
func (l *Loader) Reload(target any) error {
	l.reset()
	return l.Load(target)
}

// track runs load and attributes every key it added or changed to src.
func (l *Loader) track(src Source, load func() error) error {
	before := l.k.All()
	if err := load(); err != nil {
		return err
	}
	for key, v := range l.k.All() {
		if old, ok := before[key]; !ok || !reflect.DeepEqual(old, v) {
			l.origin[key] = src
		}
	}
	return nil
}

// LoadFile merges a YAML file. An empty path is a no-op.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadEnv merges environment variables carrying the prefix.
//
// The first underscore after the prefix separates the section from the
// key; later underscores are kept:
//
//	DOMAINMAP_TABLE_DOMAINS      -> table.domains
//	DOMAINMAP_SHELL_HISTORY_FILE -> shell.history_file
func (l *Loader) LoadEnv() error {
	cb := func(s string) string { return EnvKey(l.envPrefix, s) }
	return l.k.Load(env.Provider(l.envPrefix, ".", cb), nil)
}

// EnvKey maps an environment variable name to a config key.
func EnvKey(prefix, name string) string {
	s := strings.ToLower(strings.TrimPrefix(name, prefix))
	return strings.Replace(s, "_", ".", 1)
}

// LoadMap merges a map of dotted keys. An empty map is a no-op.
func (l *Loader) LoadMap(data map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	return l.k.Load(mapProvider(data), nil)
}

// Keys returns every key some source set, sorted.
func (l *Loader) Keys() []string {
	return l.k.Keys()
}

// Get returns the merged value of key, or nil.
func (l *Loader) Get(key string) any {
	return l.k.Get(key)
}

// Origin reports which source last changed key. Keys no source set are
// SourceDefault.
func (l *Loader) Origin(key string) Source {
	if src, ok := l.origin[key]; ok {
		return src
	}
	return SourceDefault
}
