package markup

import (
	"reflect"
	"testing"

	"github.com/odvcencio/inkwell/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Token
	}{
		{
			"plain text",
			"hello",
			[]Token{{Kind: KindText, Pos: 0, Value: "hello"}},
		},
		{
			"empty source",
			"",
			nil,
		},
		{
			"open close pair",
			"[bold]x[/]",
			[]Token{
				{Kind: KindOpen, Pos: 0, Value: "bold"},
				{Kind: KindText, Pos: 6, Value: "x"},
				{Kind: KindClose, Pos: 7, Value: ""},
			},
		},
		{
			"named close",
			"[bold]x[/bold]",
			[]Token{
				{Kind: KindOpen, Pos: 0, Value: "bold"},
				{Kind: KindText, Pos: 6, Value: "x"},
				{Kind: KindClose, Pos: 7, Value: "bold"},
			},
		},
		{
			"tag with parameter",
			"[link=https://example.com/a=b]x[/]",
			[]Token{
				{Kind: KindOpen, Pos: 0, Value: "link", Param: "https://example.com/a=b"},
				{Kind: KindText, Pos: 30, Value: "x"},
				{Kind: KindClose, Pos: 31, Value: ""},
			},
		},
		{
			"escaped brackets",
			`a\[b\]c`,
			[]Token{
				{Kind: KindText, Pos: 0, Value: "a"},
				{Kind: KindText, Pos: 1, Value: "["},
				{Kind: KindText, Pos: 3, Value: "b"},
				{Kind: KindText, Pos: 4, Value: "]"},
				{Kind: KindText, Pos: 6, Value: "c"},
			},
		},
		{
			"multi word tag",
			"[bold red on blue]x[/]",
			[]Token{
				{Kind: KindOpen, Pos: 0, Value: "bold red on blue"},
				{Kind: KindText, Pos: 18, Value: "x"},
				{Kind: KindClose, Pos: 19, Value: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.src, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q)\n got %+v\nwant %+v", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.ErrorCode
	}{
		{"unclosed tag", "[bold", errors.ErrCodeUnclosedTag},
		{"empty tag", "[]", errors.ErrCodeInvalidTag},
		{"stray close bracket", "text]", errors.ErrCodeUnbalancedBracket},
		{"close bracket at start", "]text", errors.ErrCodeUnbalancedBracket},
		{"unclosed after text", "hello [world", errors.ErrCodeUnclosedTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse(%q): expected error", tt.src)
			}
			if !errors.IsCode(err, tt.code) {
				t.Errorf("Parse(%q): got %v, want code %s", tt.src, err, tt.code)
			}
		})
	}
}

func TestEscape(t *testing.T) {
	src := Escape("array[0]")
	tokens, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(Escape): %v", err)
	}

	var plain string
	for _, tok := range tokens {
		if tok.Kind != KindText {
			t.Fatalf("escaped text produced non-text token %+v", tok)
		}
		plain += tok.Value
	}
	if plain != "array[0]" {
		t.Errorf("round trip gave %q", plain)
	}
}
