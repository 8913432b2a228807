// Package markup tokenizes bracket-tag markup ("[bold red]hi[/]") into
// a flat stream of text, open-tag, and close-tag tokens. The scanner is
// a single left-to-right pass with O(1) lookback; only the token list is
// allocated.
package markup

import (
	"strings"

	"github.com/odvcencio/inkwell/pkg/errors"
)

// Kind discriminates token variants.
type Kind uint8

const (
	// KindText is a run of literal text.
	KindText Kind = iota
	// KindOpen is an open tag; Value holds the tag body, Param holds
	// any "=parameter" remainder verbatim.
	KindOpen
	// KindClose is a close tag; an empty Value means "close topmost".
	KindClose
)

// Token is one element of the parsed stream.
type Token struct {
	Kind  Kind
	Pos   int    // byte offset in the source
	Value string // text content, tag name, or close-tag name
	Param string // open tags only: text after the first '='
}

// Parse scans src into tokens. Escaped brackets ("\[", "\]") come back
// as literal text; malformed tags fail with UNBALANCED_BRACKET,
// INVALID_TAG, or UNCLOSED_TAG.
func Parse(src string) ([]Token, error) {
	var tokens []Token
	runStart := 0

	flush := func(end int) {
		if runStart < end {
			tokens = append(tokens, Token{Kind: KindText, Pos: runStart, Value: src[runStart:end]})
		}
	}

	i := 0
	for i < len(src) {
		c := src[i]

		if c == '\\' && i+1 < len(src) && (src[i+1] == '[' || src[i+1] == ']') {
			flush(i)
			tokens = append(tokens, Token{Kind: KindText, Pos: i, Value: src[i+1 : i+2]})
			i += 2
			runStart = i
			continue
		}

		if c == ']' {
			return nil, errors.Newf(errors.ErrCodeUnbalancedBracket,
				"unexpected ']' at offset %d", i).WithContext("source", src)
		}

		if c != '[' {
			i++
			continue
		}

		flush(i)

		end := strings.IndexByte(src[i+1:], ']')
		if end < 0 {
			return nil, errors.Newf(errors.ErrCodeUnclosedTag,
				"tag opened at offset %d is never closed", i).WithContext("source", src)
		}

		content := src[i+1 : i+1+end]
		if content == "" {
			return nil, errors.Newf(errors.ErrCodeInvalidTag,
				"empty tag at offset %d", i).WithContext("source", src)
		}

		if content[0] == '/' {
			tokens = append(tokens, Token{
				Kind:  KindClose,
				Pos:   i,
				Value: strings.TrimSpace(content[1:]),
			})
		} else {
			name, param, _ := strings.Cut(content, "=")
			tokens = append(tokens, Token{
				Kind:  KindOpen,
				Pos:   i,
				Value: strings.TrimSpace(name),
				Param: param,
			})
		}

		i += end + 2
		runStart = i
	}

	flush(len(src))
	return tokens, nil
}

// Escape makes text safe to embed in markup by quoting its brackets.
func Escape(text string) string {
	text = strings.ReplaceAll(text, "[", `\[`)
	return strings.ReplaceAll(text, "]", `\]`)
}
