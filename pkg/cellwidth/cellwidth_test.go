package cellwidth

import "testing"

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		want int
	}{
		{"ascii letter", 'a', 1},
		{"ascii digit", '7', 1},
		{"space", ' ', 1},
		{"newline", '\n', 0},
		{"tab", '\t', 0},
		{"null", 0, 0},
		{"delete", 0x7F, 0},
		{"c1 control", 0x9B, 0},
		{"combining acute", 0x0301, 0},
		{"combining half mark", 0xFE21, 0},
		{"zero width space", 0x200B, 0},
		{"zero width joiner", 0x200D, 0},
		{"bom", 0xFEFF, 0},
		{"cjk ideograph", '中', 2},
		{"hiragana", 'あ', 2},
		{"hangul syllable", '한', 2},
		{"fullwidth latin", 'Ａ', 2},
		{"cjk extension b", 0x20001, 2},
		{"emoji face", 0x1F600, 2},
		{"emoji umbrella supplemental", 0x1F327, 2},
		{"latin accented", 'é', 1},
		{"box drawing", '─', 1},
		{"negative rune", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RuneWidth(tt.r); got != tt.want {
				t.Errorf("RuneWidth(%U) = %d, want %d", tt.r, got, tt.want)
			}
		})
	}
}

func TestStringWidth(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "Hello World", 11},
		{"cjk", "中文", 4},
		{"mixed", "abc中", 5},
		{"combining mark", "é", 1},
		{"zero width joiner run", "a‍b", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StringWidth(tt.s); got != tt.want {
				t.Errorf("StringWidth(%q) = %d, want %d", tt.s, got, tt.want)
			}
		})
	}
}

// ASCII letters, digits, and spaces always occupy one cell per byte.
func TestStringWidthASCIIMatchesByteLength(t *testing.T) {
	inputs := []string{
		"hello",
		"The quick brown fox 123",
		"a b c d e",
		"0123456789",
	}

	for _, s := range inputs {
		if got := StringWidth(s); got != len(s) {
			t.Errorf("StringWidth(%q) = %d, want byte length %d", s, got, len(s))
		}
	}
}

func TestStringWidthANSI(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want int
	}{
		{"no escapes", "plain", 5},
		{"sgr wrapped", "\x1b[1;31mred\x1b[0m", 3},
		{"osc8 hyperlink", "\x1b]8;;https://example.com\x07link\x1b]8;;\x07", 4},
		{"cjk with sgr", "\x1b[32m中文\x1b[0m", 4},
		{"bare escape", "\x1ba", 1},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StringWidthANSI(tt.s); got != tt.want {
				t.Errorf("StringWidthANSI(%q) = %d, want %d", tt.s, got, tt.want)
			}
		})
	}
}
