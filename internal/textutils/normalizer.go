package textutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

// Normalize canonicalizes free text for matching:
//
//  1. lowercase
//  2. full-width Latin letters and digits folded to ASCII
//  3. everything except word characters, whitespace, Hiragana, Katakana
//     and CJK ideographs dropped
//  4. whitespace removed entirely
//
// The result never contains whitespace, so word boundaries are lost.
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return clean(text, false)
}

// Includes reports whether the normalized needle occurs in the normalized
// haystack. An empty needle is always contained.
func Includes(haystack, needle string) bool {
	n := Normalize(needle)
	if n == "" {
		return true
	}
	return strings.Contains(Normalize(haystack), n)
}

// Equals reports whether a and b normalize to the same string.
func Equals(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// ExtractKeywords splits text into lowercase, symbol-free tokens on
// whitespace. It is a stand-in for real morphological tokenization and is
// not used for keyword scoring.
func ExtractKeywords(text string) []string {
	return strings.Fields(clean(text, true))
}

func clean(text string, keepSpace bool) string {
	// cases.Caser is stateful, one per call.
	lowered := cases.Lower(language.Und).String(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		r = foldFullWidth(r)
		switch {
		case unicode.IsSpace(r):
			if keepSpace {
				b.WriteRune(' ')
			}
		case isWordRune(r), isJapaneseRune(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// foldFullWidth maps full-width ASCII letters and digits to ASCII. Other
// runes, including half-width katakana, are returned unchanged.
func foldFullWidth(r rune) rune {
	props := width.LookupRune(r)
	if props.Kind() != width.EastAsianFullwidth {
		return r
	}
	narrow := props.Narrow()
	if narrow == 0 || !isASCIIAlnum(narrow) {
		return r
	}
	return narrow
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isWordRune(r rune) bool {
	return isASCIIAlnum(r) || r == '_'
}

func isJapaneseRune(r rune) bool {
	switch {
	case r >= 0x3040 && r <= 0x309F: // Hiragana
		return true
	case r >= 0x30A0 && r <= 0x30FF: // Katakana
		return true
	case r >= 0x4E00 && r <= 0x9FAF: // CJK unified ideographs
		return true
	}
	return false
}
