package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/yndnr/domainmap/pkg/maperr"
)

type domainRow struct {
	Domain     int    `json:"domain" yaml:"domain"`
	Entries    int    `json:"entries" yaml:"entries"`
	Note       string `json:"note,omitempty" yaml:"note,omitempty"`
	internal   int
	Suppressed bool `json:"suppressed" table:"-"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, maperr.ErrInvalidArgument) {
					t.Errorf("ParseFormat(%q) error = %v, want ErrInvalidArgument", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatTable, "*output.TableFormatter"},
		{FormatJSON, "*output.JSONFormatter"},
		{FormatYAML, "*output.YAMLFormatter"},
		{"unknown", "*output.TableFormatter"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f := NewFormatter(tt.format)
			if got := typeName(f); got != tt.want {
				t.Errorf("NewFormatter(%q) = %s, want %s", tt.format, got, tt.want)
			}
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *TableFormatter:
		return "*output.TableFormatter"
	case *JSONFormatter:
		return "*output.JSONFormatter"
	case *YAMLFormatter:
		return "*output.YAMLFormatter"
	default:
		return "unknown"
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	rows := []domainRow{{Domain: 0, Entries: 3}, {Domain: 1, Entries: 5, Note: "hot"}}

	if err := (&JSONFormatter{}).Format(&buf, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := `[
  {
    "domain": 0,
    "entries": 3,
    "suppressed": false
  },
  {
    "domain": 1,
    "entries": 5,
    "note": "hot",
    "suppressed": false
  }
]
`
	if buf.String() != want {
		t.Errorf("Format() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{
		"domains": 20,
		"hasher":  "murmur3",
		"stats":   []domainRow{{Domain: 0, Entries: 3}},
	}

	if err := (&YAMLFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := `domains: 20
hasher: murmur3
stats:
  - domain: 0
    entries: 3
    suppressed: false
`
	if buf.String() != want {
		t.Errorf("Format() =\n%s\nwant\n%s", buf.String(), want)
	}
}
