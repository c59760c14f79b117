package config

import (
	"regexp"
	"strings"

	"github.com/yndnr/domainmap/internal/telemetry/logger"
	"github.com/yndnr/domainmap/pkg/domainmap"
	"github.com/yndnr/domainmap/pkg/maperr"
)

var namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if err := verifyTable(&cfg.Table); err != nil {
		return err
	}
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}
	if !namespacePattern.MatchString(cfg.Metrics.Namespace) {
		return maperr.ErrInvalidArgument.WithDetailsf("metrics.namespace %q is not a valid metric prefix", cfg.Metrics.Namespace)
	}
	return nil
}

func verifyTable(t *TableSection) error {
	if t.Domains < 1 {
		return maperr.ErrInvalidArgument.WithDetailsf("table.domains must be at least 1, got %d", t.Domains)
	}
	if _, err := domainmap.HasherByName(t.Hasher); err != nil {
		return maperr.ErrInvalidArgument.WithDetailsf("table.hasher %q, want one of %s",
			t.Hasher, strings.Join(domainmap.HasherNames(), ", "))
	}
	if _, err := domainmap.RouterByName(t.Router); err != nil {
		return maperr.ErrInvalidArgument.WithDetailsf("table.router %q, want %s or %s",
			t.Router, domainmap.RouterFields, domainmap.RouterWords)
	}
	return nil
}

func verifyLog(l *LogSection) error {
	if _, err := logger.ParseLevel(l.Level); err != nil {
		return maperr.ErrInvalidArgument.WithDetailsf("log.level %q", l.Level)
	}
	switch strings.ToLower(l.Format) {
	case "json", "text", "console":
		return nil
	default:
		return maperr.ErrInvalidArgument.WithDetailsf("log.format %q, want json or text", l.Format)
	}
}

// MapOptions converts the table section into domainmap construction options.
func (t TableSection) MapOptions() ([]domainmap.Option, error) {
	h, err := domainmap.HasherByName(t.Hasher)
	if err != nil {
		return nil, err
	}
	r, err := domainmap.RouterByName(t.Router)
	if err != nil {
		return nil, err
	}
	return []domainmap.Option{
		domainmap.WithDomains(t.Domains),
		domainmap.WithHasher(h),
		domainmap.WithRouter(r),
	}, nil
}

// LoggerConfig converts the log section into a logger configuration.
func (l LogSection) LoggerConfig() logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = l.Level
	cfg.Format = l.Format
	return cfg
}
