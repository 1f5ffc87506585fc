package classifier

import "unicode"

// FlaggedScripts holds the Unicode ranges whose presence excludes a row:
// Cyrillic, Arabic, Devanagari, CJK Unified Ideographs and Hangul Syllables.
// Ranges must stay sorted by low code point.
var FlaggedScripts = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0400, Hi: 0x04FF, Stride: 1}, // Cyrillic
		{Lo: 0x0600, Hi: 0x06FF, Stride: 1}, // Arabic
		{Lo: 0x0900, Hi: 0x097F, Stride: 1}, // Devanagari
		{Lo: 0x4E00, Hi: 0x9FFF, Stride: 1}, // CJK Unified Ideographs
		{Lo: 0xAC00, Hi: 0xD7AF, Stride: 1}, // Hangul Syllables
	},
}

// ContainsFlaggedScript reports whether any rune of s falls in a flagged
// script range. It only flags presence; the text is never transformed.
func ContainsFlaggedScript(s string) bool {
	for _, r := range s {
		if unicode.In(r, FlaggedScripts) {
			return true
		}
	}
	return false
}
