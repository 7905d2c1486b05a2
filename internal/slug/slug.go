// Package slug turns human-readable titles into URL-safe identifiers.
//
// Cyrillic text is transliterated to Latin, Latin diacritics are folded
// ("Café" -> "cafe") and everything outside [a-z0-9-] is dropped:
//
//	slug.Make("Привет Мир", 0) // "privet-mir"
//	slug.Make("Раскраски для детей: животные", 20) // "raskraski-dlya-detey"
//
// Make never fails. Input that holds nothing sluggable yields "".
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxLength caps a slug when the caller passes a non-positive limit.
const DefaultMaxLength = 100

var (
	whitespace   = regexp.MustCompile(`[\s\p{Zs}]+`)
	notSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphens      = regexp.MustCompile(`-{2,}`)
	canonical    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Make builds a slug from s no longer than maxLength bytes.
func Make(s string, maxLength int) string {
	if s == "" {
		return ""
	}
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	out := strings.ToLower(Transliterate(s))
	out = foldDiacritics(out)
	out = strings.TrimSpace(out)
	out = whitespace.ReplaceAllString(out, "-")
	out = notSlugChars.ReplaceAllString(out, "")
	out = hyphens.ReplaceAllString(out, "-")
	out = strings.Trim(out, "-")

	// out is pure ASCII here, so byte slicing is rune safe.
	if len(out) > maxLength {
		out = strings.TrimRight(out[:maxLength], "-")
	}
	return out
}

// Valid reports whether s is already a canonical slug.
func Valid(s string) bool {
	return canonical.MatchString(s)
}

func foldDiacritics(s string) string {
	// transform.Chain keeps state, build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
