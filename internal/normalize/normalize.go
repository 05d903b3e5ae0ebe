// Package normalize prepares free text and filenames for keyword matching.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Text lowercases s, replaces every rune that is not a Latin letter, an ASCII
// digit or whitespace with a space, collapses whitespace runs and trims.
// Decomposed accents are composed first so "e"+U+0301 survives as "é".
func Text(s string) string {
	s = strings.ToLower(norm.NFC.String(s))
	var b strings.Builder
	b.Grow(len(s))
	space := true
	for _, r := range s {
		if keep(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Filename drops the extension (text after the final '.') before applying Text.
func Filename(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return Text(name)
}

func keep(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	return unicode.IsLetter(r) && unicode.Is(unicode.Latin, r)
}
