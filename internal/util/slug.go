package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const fallbackSlug = "company"

// combining diacritics only; kana voicing marks and similar must survive NFC
var diacritic = runes.Predicate(func(r rune) bool { return r >= 0x0300 && r <= 0x036f })

// Slug turns a company name into a filesystem-safe file name component.
// "Acme Corp" becomes "acme_corp"; accents are folded ("Café" becomes "cafe").
// Letters and digits from any script are kept. A name with none yields "company".
func Slug(name string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(diacritic), norm.NFC)
	folded, _, err := transform.String(folder, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(folded)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return fallbackSlug
	}
	return b.String()
}

// Truncate returns at most n runes of s
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
