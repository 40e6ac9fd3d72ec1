package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how command results are written
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatID   Format = "id"
)

var formatAliases = map[string]Format{
	"":     FormatText,
	"text": FormatText,
	"json": FormatJSON,
	"yaml": FormatYAML,
	"yml":  FormatYAML,
	"id":   FormatID,
	"ids":  FormatID,
}

// ParseFormat resolves a --output value, case-insensitively
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(s)]; ok {
		return f, nil
	}
	return FormatText, fmt.Errorf("invalid format %q: must be one of: text, json, yaml, id", s)
}

// Formatter writes command results in one Format
type Formatter struct {
	format Format
	w      io.Writer
}

// NewFormatter creates a formatter writing to w
func NewFormatter(format Format, w io.Writer) *Formatter {
	return &Formatter{format: format, w: w}
}

// Format returns the configured format
func (f *Formatter) Format() Format {
	return f.format
}

// Structured reports whether output is meant for another program
func (f *Formatter) Structured() bool {
	return f.format == FormatJSON || f.format == FormatYAML
}

// Print writes data as indented JSON, YAML, or its default text form
func (f *Formatter) Print(data any) error {
	switch f.format {
	case FormatJSON:
		enc := json.NewEncoder(f.w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML:
		enc := yaml.NewEncoder(f.w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, FormatID:
		_, err := fmt.Fprintln(f.w, data)
		return err
	}
	return fmt.Errorf("unsupported output format: %s", f.format)
}

// PrintIDs writes one ID per line, for piping into other commands
func (f *Formatter) PrintIDs(ids []string) error {
	for _, id := range ids {
		if _, err := fmt.Fprintln(f.w, id); err != nil {
			return err
		}
	}
	return nil
}
