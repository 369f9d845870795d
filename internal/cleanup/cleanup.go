// internal/cleanup/cleanup.go
// Package cleanup normalizes model definitions with deterministic text rules.
package cleanup

import (
	"regexp"
	"strings"
)

// subjectPrefixPattern matches the allowed leading subject marker, which is
// the only parenthetical kept verbatim at the start of a definition.
var subjectPrefixPattern = regexp.MustCompile(`^\((I|you|he / she / it|we|they / you-plural)\)(\s+|$)`)

var (
	oneselfPattern       = regexp.MustCompile(`(?i)\boneself\b`)
	parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
	spacePunctPattern    = regexp.MustCompile(`\s+([,;:.!?])`)
)

// keepItToken temporarily protects the literal "(it)" while other
// parentheticals are stripped.
const keepItToken = "\x00KEEP_IT\x00"

// Clean applies the fixed normalization rules in order: drop "oneself",
// preserve a leading subject prefix, strip remaining parentheticals except the
// literal "(it)", collapse whitespace, remove space before punctuation, and
// trim stray spaces and hyphens. Clean is total and idempotent; text that
// matches no rule passes through unchanged.
func Clean(definition string) string {
	cleaned := oneselfPattern.ReplaceAllString(definition, "")

	prefix := ""
	rest := cleaned
	if m := subjectPrefixPattern.FindString(cleaned); m != "" {
		prefix = m
		rest = cleaned[len(m):]
	}

	rest = strings.ReplaceAll(rest, "(it)", keepItToken)
	rest = parentheticalPattern.ReplaceAllString(rest, "")
	rest = strings.ReplaceAll(rest, keepItToken, "(it)")

	cleaned = strings.TrimSpace(prefix + rest)
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	cleaned = spacePunctPattern.ReplaceAllString(cleaned, "$1")
	cleaned = strings.Trim(cleaned, " -")
	return cleaned
}
