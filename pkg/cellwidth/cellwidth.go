// Package cellwidth classifies Unicode code points into terminal cell
// widths. Every width, truncation, and padding decision in the renderer
// goes through this oracle: a code point occupies 0, 1, or 2 character
// cells, nothing else.
package cellwidth

import (
	"github.com/mattn/go-runewidth"
)

type runeRange struct {
	lo, hi rune
}

// Zero-width classes the renderer must pin down regardless of the
// underlying width library: controls, zero-width formatting characters,
// and the combining-mark blocks.
var zeroWidth = []runeRange{
	{0x0000, 0x001F}, // C0 controls
	{0x007F, 0x009F}, // DEL + C1 controls
	{0x0300, 0x036F}, // combining diacritical marks
	{0x1AB0, 0x1AFF}, // combining diacritical marks extended
	{0x1DC0, 0x1DFF}, // combining diacritical marks supplement
	{0x200B, 0x200F}, // ZWSP, ZWNJ, ZWJ, directional marks
	{0x20D0, 0x20FF}, // combining marks for symbols
	{0xFE20, 0xFE2F}, // combining half marks
	{0xFEFF, 0xFEFF}, // zero-width no-break space
}

// Double-width classes: CJK ideographs, Hangul, fullwidth forms, and the
// common emoji planes.
var doubleWidth = []runeRange{
	{0x1100, 0x115F},   // Hangul jamo (leading consonants)
	{0x2E80, 0x2EFF},   // CJK radicals supplement
	{0x3000, 0x303E},   // CJK symbols and punctuation
	{0x3041, 0x33FF},   // Hiragana .. CJK compatibility
	{0x3400, 0x4DBF},   // CJK unified ideographs extension A
	{0x4E00, 0x9FFF},   // CJK unified ideographs
	{0xA000, 0xA4CF},   // Yi syllables and radicals
	{0xAC00, 0xD7A3},   // Hangul syllables
	{0xF900, 0xFAFF},   // CJK compatibility ideographs
	{0xFE30, 0xFE4F},   // CJK compatibility forms
	{0xFF00, 0xFF60},   // fullwidth forms
	{0xFFE0, 0xFFE6},   // fullwidth signs
	{0x1F300, 0x1FAFF}, // emoji: misc symbols, emoticons, supplemental
	{0x20000, 0x2FFFD}, // CJK unified ideographs extensions B-F
	{0x30000, 0x3FFFD}, // CJK unified ideographs extension G
}

// inRanges reports whether r falls in one of the sorted ranges.
func inRanges(r rune, ranges []runeRange) bool {
	lo, hi := 0, len(ranges)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		rr := ranges[mid]
		switch {
		case r < rr.lo:
			hi = mid - 1
		case r > rr.hi:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

// RuneWidth returns the number of terminal cells r occupies: 0, 1, or 2.
func RuneWidth(r rune) int {
	if r < 0 {
		return 0
	}
	if inRanges(r, zeroWidth) {
		return 0
	}
	if inRanges(r, doubleWidth) {
		return 2
	}

	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	if w > 2 {
		return 2
	}
	return w
}

// StringWidth returns the number of cells s occupies, summed over a
// UTF-8 decode pass.
func StringWidth(s string) int {
	width := 0
	for _, r := range s {
		width += RuneWidth(r)
	}
	return width
}

// StringWidthANSI measures s while skipping ANSI escape sequences, so
// pre-styled content measures by its visible cells only.
func StringWidthANSI(s string) int {
	width := 0
	segmentStart := 0

	for i := 0; i < len(s); {
		if s[i] != '\x1b' {
			i++
			continue
		}

		if segmentStart < i {
			width += StringWidth(s[segmentStart:i])
		}

		seqLen := ansiSequenceLength(s[i:])
		if seqLen == 0 {
			i++
		} else {
			i += seqLen
		}
		segmentStart = i
	}

	if segmentStart < len(s) {
		width += StringWidth(s[segmentStart:])
	}

	return width
}

// ansiSequenceLength returns the byte length of the escape sequence at
// the start of s, or 0 if s does not begin a recognizable sequence.
func ansiSequenceLength(s string) int {
	if len(s) == 0 || s[0] != '\x1b' {
		return 0
	}
	if len(s) == 1 {
		return 1
	}

	switch s[1] {
	case '[':
		for i := 2; i < len(s); i++ {
			if s[i] >= 0x40 && s[i] <= 0x7e { // final byte of a CSI sequence
				return i + 1
			}
		}
		return 0
	case ']':
		for i := 2; i < len(s); i++ {
			if s[i] == '\a' { // BEL terminator
				return i + 1
			}
			if s[i] == '\\' && s[i-1] == '\x1b' { // ST terminator
				return i + 1
			}
		}
		return 0
	case 'P', '^', '_':
		for i := 2; i < len(s); i++ {
			if s[i] == '\\' && s[i-1] == '\x1b' {
				return i + 1
			}
		}
		return 0
	default:
		return 2 // ESC plus one control character
	}
}
