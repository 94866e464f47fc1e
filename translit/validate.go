package translit

import (
	"strings"
)

// IsSupported reports whether a lowercased character resolves without the
// placeholder.
func IsSupported(r rune) bool {
	_, cat := Resolve(r)
	return cat != CategoryUnsupported
}

// Validate checks text before conversion. It returns true when every
// character is supported, along with the distinct unsupported characters in
// the order they first appear. Whitespace counts as supported, matching
// Convert.
func Validate(text string) (bool, []rune) {
	var unsupported []rune
	seen := make(map[rune]struct{})
	for _, r := range strings.ToLower(text) {
		if IsSupported(r) {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		unsupported = append(unsupported, r)
	}
	return len(unsupported) == 0, unsupported
}

// Unsupported converts characters to one-character strings for JSON output.
func Unsupported(chars []rune) []string {
	out := make([]string, len(chars))
	for i, r := range chars {
		out[i] = string(r)
	}
	return out
}
