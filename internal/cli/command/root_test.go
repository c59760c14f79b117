package command

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/yndnr/domainmap/internal/config"
	"github.com/yndnr/domainmap/pkg/maperr"
)

func TestApp(t *testing.T) {
	app := App()
	if app.Name != "domainmap" {
		t.Errorf("Name = %q, want domainmap", app.Name)
	}
	if app.Usage == "" {
		t.Error("Usage should not be empty")
	}

	names := make(map[string]bool)
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, name := range []string{"demo", "hash", "stats", "shell", "config", "version"} {
		if !names[name] {
			t.Errorf("missing command: %s", name)
		}
	}
}

func TestApp_GlobalFlags(t *testing.T) {
	flagNames := make(map[string]bool)
	for _, f := range globalFlags() {
		flagNames[f.Names()[0]] = true
	}

	for _, name := range []string{"config", "domains", "hasher", "router", "output", "log-level"} {
		if !flagNames[name] {
			t.Errorf("missing global flag: %s", name)
		}
	}
	for name := range flagKeys {
		if !flagNames[name] {
			t.Errorf("flagKeys references unknown flag %s", name)
		}
	}
}

func TestSetup_FlagsOverrideConfig(t *testing.T) {
	path := writeConfig(t, "table:\n  domains: 9\n  hasher: spread32\nlog:\n  level: warn\n")

	out, err := runApp(t, "", "--config", path, "--domains", "7", "--router", "words",
		"--log-level", "error", "-o", "json", "config", "show")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var cfg config.Config
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v\n%s", err, out)
	}
	want := config.TableSection{Domains: 7, Hasher: "spread32", Router: "words"}
	if cfg.Table != want {
		t.Errorf("Table = %+v, want %+v", cfg.Table, want)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want error", cfg.Log.Level)
	}
}

func TestSetup_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad output", []string{"-o", "xml", "version"}},
		{"zero domains", []string{"--domains", "0", "version"}},
		{"unknown hasher", []string{"--hasher", "crc32", "version"}},
		{"bad log level", []string{"--log-level", "loud", "version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, "", tt.args...)
			if !errors.Is(err, maperr.ErrInvalidArgument) {
				t.Errorf("Run() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestSetup_MissingConfigFile(t *testing.T) {
	if _, err := runApp(t, "", "--config", "/nonexistent/domainmap.yaml", "version"); err == nil {
		t.Error("Run() should fail for a missing --config file")
	}
}

func TestVersion(t *testing.T) {
	out, err := runApp(t, "", "-o", "json", "version")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var info struct {
		Version   string `json:"version"`
		GoVersion string `json:"go_version"`
	}
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("Unmarshal() error = %v\n%s", err, out)
	}
	if info.Version == "" || info.GoVersion == "" {
		t.Errorf("version output = %+v", info)
	}
}

func TestApp_NoHeaders(t *testing.T) {
	out, err := runApp(t, "", "--no-headers", "hash", "alpha")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if strings.Contains(out, "DOMAIN") || strings.Count(out, "\n") != 1 {
		t.Errorf("hash --no-headers = %q, want one row without headers", out)
	}
}
