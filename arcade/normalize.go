package arcade

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Letters without a canonical decomposition that would otherwise be dropped
var ligatures = strings.NewReplacer(
	"œ", "oe", "Œ", "oe",
	"æ", "ae", "Æ", "ae",
	"ı", "i",
)

// Normalize folds text for answer comparison: accents stripped, lowercased,
// everything outside [a-z0-9] removed. Undecomposable œ, æ and ı are spelled
// out first instead of dropped. Output is a fixed point of Normalize.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// Transformers carry state, so one chain per call
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(stripMarks, ligatures.Replace(s))
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
