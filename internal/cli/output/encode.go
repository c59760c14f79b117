package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// JSONFormatter writes data as one JSON document with two-space indent.
type JSONFormatter struct{}

func (*JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// YAMLFormatter writes data as one YAML document with two-space indent.
type YAMLFormatter struct{}

func (*YAMLFormatter) Format(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
