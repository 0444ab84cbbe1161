package domain

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

	// foldAccents decomposes characters and strips combining marks, so
	// "Abaré" becomes "Abare".
	foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify folds accents, lowercases, and collapses every non-alphanumeric
// run into a single hyphen: "Abaré - BA" → "abare-ba".
func Slugify(text string) string {
	if text == "" {
		return "unknown"
	}
	folded, _, err := transform.String(foldAccents, text)
	if err != nil {
		folded = text
	}
	s := nonAlnumRe.ReplaceAllString(strings.ToLower(folded), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "unknown"
	}
	return s
}

// CountySlug builds the app key for a US county: ("Adair", "IA") → "adair-ia".
func CountySlug(name, state string) string {
	if name == "" || state == "" {
		return "unknown"
	}
	return Slugify(name) + "-" + strings.ToLower(strings.TrimSpace(state))
}
