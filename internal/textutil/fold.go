package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks after canonical decomposition, so
// accented letters compare equal to their base form.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases s and removes diacritic marks. On transform failure the
// lowercased input is returned unchanged; a degraded comparison form is still
// usable for scoring.
func Fold(s string) string {
	lowered := strings.ToLower(s)
	out, _, err := transform.String(foldTransformer, lowered)
	if err != nil {
		return lowered
	}
	return out
}
