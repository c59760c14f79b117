package output

import (
	"io"
	"strings"

	"github.com/yndnr/domainmap/pkg/maperr"
)

// Format represents the output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the accepted --output values.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML}

// Formatter formats data for output.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// ParseFormat validates a format name. The empty string means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", maperr.ErrInvalidArgument.WithDetailsf("output format %q, want table, json or yaml", s)
	}
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}
