package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeCategory trims surrounding whitespace and title-cases a category
// label. Invalid UTF-8 sequences become U+FFFD so the stored label survives
// JSON encoding. Normalizing an already normalized label returns it unchanged.
func NormalizeCategory(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	// Casers hold state and are cheap to build, so one is made per call.
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}

// FoldCategory returns a case-folded form of s for case-insensitive matching.
func FoldCategory(s string) string {
	return cases.Fold().String(s)
}
