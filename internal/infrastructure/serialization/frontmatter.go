// Package serialization writes markdown documents with a YAML frontmatter header.
package serialization

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const yamlDelimiter = "---"

// MarshalFrontmatter renders meta as a YAML block between --- delimiters,
// followed by body. A nil meta produces an empty block.
func MarshalFrontmatter(meta any, body string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(yamlDelimiter)
	buf.WriteString("\n")

	if meta != nil {
		data, err := yaml.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
		}
		buf.Write(data)
	}

	buf.WriteString(yamlDelimiter)
	buf.WriteString("\n")

	if body = strings.TrimRight(body, "\n"); body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}
