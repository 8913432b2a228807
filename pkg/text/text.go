// Package text resolves markup token streams into styled text: a plain
// buffer plus ordered, non-overlapping style spans, flattened to
// segments on demand.
package text

import (
	"strings"

	"github.com/odvcencio/inkwell/pkg/cellwidth"
	"github.com/odvcencio/inkwell/pkg/markup"
	"github.com/odvcencio/inkwell/pkg/segment"
	"github.com/odvcencio/inkwell/pkg/style"
)

// Span applies a style to a half-open byte range of a Text's buffer.
type Span struct {
	Start int
	End   int
	Style style.Style
}

// Text is a plain buffer with ordered, non-overlapping spans over it and
// a base style. It renders to segments idempotently and mutates only
// through Append.
type Text struct {
	buf   string
	spans []Span
	base  style.Style
}

// Plain wraps unstyled text under a base style.
func Plain(s string, base style.Style) *Text {
	return &Text{buf: s, base: base}
}

// Resolver replays markup tokens against a style stack. Lookup, when
// set, resolves tag names (theme entries) before raw style parsing.
type Resolver struct {
	Base   style.Style
	Lookup func(name string) (style.Style, bool)
}

// FromMarkup parses bracket markup into a Text under the given base
// style.
func FromMarkup(src string, base style.Style) (*Text, error) {
	return Resolver{Base: base}.Parse(src)
}

// Parse tokenizes src and replays the tokens: open tags push the
// combination of the current top and the parsed tag style, close tags
// pop one level. Closing by name is lenient: a mismatched name still
// pops the top, and popping at the floor is a no-op.
func (r Resolver) Parse(src string) (*Text, error) {
	tokens, err := markup.Parse(src)
	if err != nil {
		return nil, err
	}

	var buf strings.Builder
	var spans []Span
	stack := []style.Style{r.Base}

	for _, tok := range tokens {
		switch tok.Kind {
		case markup.KindText:
			top := stack[len(stack)-1]
			start := buf.Len()
			buf.WriteString(tok.Value)
			if !top.Equal(r.Base) {
				spans = append(spans, Span{Start: start, End: buf.Len(), Style: top})
			}

		case markup.KindOpen:
			st, err := r.tagStyle(tok)
			if err != nil {
				return nil, err
			}
			stack = append(stack, style.Combine(stack[len(stack)-1], st))

		case markup.KindClose:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	return &Text{buf: buf.String(), spans: mergeAdjacent(spans), base: r.Base}, nil
}

// tagStyle resolves one open tag to a style: theme lookup first, then
// the tag body (with any parameter re-attached) through style.Parse.
func (r Resolver) tagStyle(tok markup.Token) (style.Style, error) {
	if r.Lookup != nil && tok.Param == "" {
		if st, ok := r.Lookup(tok.Value); ok {
			return st, nil
		}
	}

	def := tok.Value
	if tok.Param != "" {
		def += "=" + tok.Param
	}
	return style.Parse(def)
}

// mergeAdjacent joins touching spans that carry the same style, so
// consecutive text tokens under one tag render as a single segment.
func mergeAdjacent(spans []Span) []Span {
	if len(spans) < 2 {
		return spans
	}
	out := spans[:1]
	for _, sp := range spans[1:] {
		last := &out[len(out)-1]
		if sp.Start == last.End && sp.Style.Equal(last.Style) {
			last.End = sp.End
			continue
		}
		out = append(out, sp)
	}
	return out
}

// String returns the plain text.
func (t *Text) String() string {
	return t.buf
}

// Len returns the byte length of the plain text.
func (t *Text) Len() int {
	return len(t.buf)
}

// CellLen returns the display width of the plain text.
func (t *Text) CellLen() int {
	return cellwidth.StringWidth(t.buf)
}

// Spans returns the resolved spans in document order.
func (t *Text) Spans() []Span {
	return t.spans
}

// Base returns the base style.
func (t *Text) Base() style.Style {
	return t.base
}

// Render flattens the buffer and spans into segments in document order.
// Gaps between spans render under the base style; spans render under
// the combination of base and span style. Rendering is idempotent.
func (t *Text) Render() []segment.Segment {
	if len(t.spans) == 0 {
		if t.buf == "" {
			return nil
		}
		return []segment.Segment{segment.NewText(t.buf, t.baseRef())}
	}

	var segs []segment.Segment
	pos := 0
	for _, sp := range t.spans {
		if sp.Start > pos {
			segs = append(segs, segment.NewText(t.buf[pos:sp.Start], t.baseRef()))
		}
		combined := style.Combine(t.base, sp.Style)
		segs = append(segs, segment.NewText(t.buf[sp.Start:sp.End], &combined))
		pos = sp.End
	}
	if pos < len(t.buf) {
		segs = append(segs, segment.NewText(t.buf[pos:], t.baseRef()))
	}
	return segs
}

func (t *Text) baseRef() *style.Style {
	if t.base.IsEmpty() {
		return nil
	}
	base := t.base
	return &base
}

// Append concatenates other onto t, relocating other's spans by t's
// prior byte length. No other mutation is supported.
func (t *Text) Append(other *Text) {
	shift := len(t.buf)
	t.buf += other.buf
	for _, sp := range other.spans {
		t.spans = append(t.spans, Span{
			Start: sp.Start + shift,
			End:   sp.End + shift,
			Style: sp.Style,
		})
	}
}
