// Package hangul implements the small amount of Hangul syllable arithmetic
// the syllable quiz needs.
package hangul

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	syllableBase  = 0xAC00
	syllableLast  = 0xD7A3
	medialCount   = 21
	finalCount    = 28
	initialStride = medialCount * finalCount
)

var initials = [...]rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// Normalize returns s trimmed and in NFC, so conjoining jamo typed by some
// keyboards compare equal to precomposed syllables.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// IsSyllable reports whether r is a precomposed Hangul syllable.
func IsSyllable(r rune) bool {
	return r >= syllableBase && r <= syllableLast
}

// Initials returns the leading consonant of every precomposed syllable in s.
// Other characters are skipped.
func Initials(s string) string {
	var b strings.Builder
	for _, r := range Normalize(s) {
		if !IsSyllable(r) {
			continue
		}
		b.WriteRune(initials[(r-syllableBase)/initialStride])
	}
	return b.String()
}

// Equal reports whether a and b are the same text after Normalize.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
