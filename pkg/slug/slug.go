// Package slug turns free text into file-name safe identifiers.
package slug

import "strings"

// MaxLength caps the length of a generated slug
const MaxLength = 50

// Generate lowercases s and collapses every run of characters outside
// [a-z0-9] into a single hyphen. Empty results become "untitled".
func Generate(s string) string {
	var b strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	out := b.String()
	if len(out) > MaxLength {
		out = strings.TrimRight(out[:MaxLength], "-")
	}
	if out == "" {
		return "untitled"
	}
	return out
}
