// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textnorm cleans free text before lexical comparison.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize collapses whitespace, strips every character that is not a
// word character or whitespace, and lowercases the result. Diacritics are
// folded to their base letters first ("naïve" becomes "naive"); other
// non-ASCII characters are dropped, so the output only ever contains
// [a-z0-9_] and single spaces. Empty input returns "".
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	folded := Fold(text)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case isWordRune(r):
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Fold lowercases text and folds diacritics to their base letters
// ("Schrödinger" becomes "schrodinger"). Punctuation, whitespace and
// letters without an ASCII base are kept as they are. Text compared
// against Normalize output must be folded the same way.
func Fold(text string) string {
	if text == "" {
		return ""
	}
	folded, _, err := transform.String(foldDiacritics(), text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}

// foldDiacritics returns a fresh transformer; transform.Chain values hold
// state and are not safe for concurrent use.
func foldDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
