// Package style models a composable terminal text style: an attribute
// bitset with an explicitly-set mask, optional foreground and background
// colors, and an optional hyperlink target. Styles are immutable values;
// builder methods return copies.
package style

import (
	"strings"

	"github.com/odvcencio/inkwell/pkg/color"
	"github.com/odvcencio/inkwell/pkg/errors"
)

// Attr is a bitmask of text attributes.
type Attr uint16

const (
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrUnderline2
	AttrBlink
	AttrBlink2
	AttrReverse
	AttrConceal
	AttrStrike
	AttrOverline
	AttrFrame
	AttrEncircle
)

// attrSGR maps each attribute bit to its SGR code, in bit order.
var attrSGR = []struct {
	attr Attr
	code string
}{
	{AttrBold, "1"},
	{AttrDim, "2"},
	{AttrItalic, "3"},
	{AttrUnderline, "4"},
	{AttrUnderline2, "21"},
	{AttrBlink, "5"},
	{AttrBlink2, "6"},
	{AttrReverse, "7"},
	{AttrConceal, "8"},
	{AttrStrike, "9"},
	{AttrOverline, "53"},
	{AttrFrame, "51"},
	{AttrEncircle, "52"},
}

// attrNames maps style-definition keywords (and their short aliases) to
// attribute bits.
var attrNames = map[string]Attr{
	"bold":       AttrBold,
	"b":          AttrBold,
	"dim":        AttrDim,
	"d":          AttrDim,
	"italic":     AttrItalic,
	"i":          AttrItalic,
	"underline":  AttrUnderline,
	"u":          AttrUnderline,
	"underline2": AttrUnderline2,
	"uu":         AttrUnderline2,
	"blink":      AttrBlink,
	"blink2":     AttrBlink2,
	"reverse":    AttrReverse,
	"r":          AttrReverse,
	"conceal":    AttrConceal,
	"c":          AttrConceal,
	"strike":     AttrStrike,
	"s":          AttrStrike,
	"overline":   AttrOverline,
	"o":          AttrOverline,
	"frame":      AttrFrame,
	"encircle":   AttrEncircle,
}

// Style is an immutable attribute set plus optional colors and
// hyperlink. The zero value is the empty style: nothing set, nothing
// overridden on combine.
type Style struct {
	attrs Attr // attribute values
	set   Attr // which attributes are explicitly set
	fg    color.Color
	bg    color.Color
	fgSet bool
	bgSet bool
	link  string
}

// Empty is the style with nothing set.
var Empty = Style{}

// New returns the empty style, ready for builder chaining.
func New() Style {
	return Style{}
}

// With returns a copy with attr explicitly enabled.
func (s Style) With(attr Attr) Style {
	s.attrs |= attr
	s.set |= attr
	return s
}

// Without returns a copy with attr explicitly disabled. Unlike the zero
// state, the attribute still participates in combine and overrides the
// base.
func (s Style) Without(attr Attr) Style {
	s.attrs &^= attr
	s.set |= attr
	return s
}

// WithFG returns a copy with the foreground color set.
func (s Style) WithFG(c color.Color) Style {
	s.fg = c
	s.fgSet = true
	return s
}

// WithBG returns a copy with the background color set.
func (s Style) WithBG(c color.Color) Style {
	s.bg = c
	s.bgSet = true
	return s
}

// WithLink returns a copy with the hyperlink target set.
func (s Style) WithLink(url string) Style {
	s.link = url
	return s
}

// Has reports whether attr is explicitly set and enabled.
func (s Style) Has(attr Attr) bool {
	return s.set&attr != 0 && s.attrs&attr != 0
}

// FG returns the foreground color and whether one is set.
func (s Style) FG() (color.Color, bool) {
	return s.fg, s.fgSet
}

// BG returns the background color and whether one is set.
func (s Style) BG() (color.Color, bool) {
	return s.bg, s.bgSet
}

// Link returns the hyperlink target, empty if none.
func (s Style) Link() string {
	return s.link
}

// IsEmpty reports whether the style sets nothing at all.
func (s Style) IsEmpty() bool {
	return s.set == 0 && !s.fgSet && !s.bgSet && s.link == ""
}

// Equal reports whether two styles are indistinguishable, including
// their explicitly-set masks.
func (s Style) Equal(other Style) bool {
	return s == other
}

// Combine layers overlay on top of base: every attribute explicitly set
// in overlay wins, everything else keeps base's value. An unset overlay
// color or link never erases the base's.
func Combine(base, overlay Style) Style {
	out := base
	out.attrs = (base.attrs &^ overlay.set) | (overlay.attrs & overlay.set)
	out.set = base.set | overlay.set

	if overlay.fgSet {
		out.fg = overlay.fg
		out.fgSet = true
	}
	if overlay.bgSet {
		out.bg = overlay.bg
		out.bgSet = true
	}
	if overlay.link != "" {
		out.link = overlay.link
	}
	return out
}

// Parse builds a style from a whitespace-separated definition such as
// "bold red on #202020" or "not dim link=https://example.com". The
// keyword "on" switches to background colors; "not" explicitly clears
// the following attribute. Parsing fails on the first unrecognized
// token.
func Parse(definition string) (Style, error) {
	s := Style{}
	background := false
	negate := false

	for _, token := range strings.Fields(definition) {
		lower := strings.ToLower(token)

		switch lower {
		case "on":
			background = true
			continue
		case "not":
			negate = true
			continue
		}

		if url, ok := strings.CutPrefix(token, "link="); ok {
			s = s.WithLink(url)
			continue
		}

		if attr, ok := attrNames[lower]; ok {
			if background {
				return Style{}, errors.Newf(errors.ErrCodeUnknownColor,
					"expected color after 'on', got attribute %q", token)
			}
			if negate {
				s = s.Without(attr)
				negate = false
			} else {
				s = s.With(attr)
			}
			continue
		}

		if negate {
			return Style{}, errors.Newf(errors.ErrCodeUnknownAttribute,
				"expected attribute after 'not', got %q", token)
		}

		c, err := color.Parse(token)
		if err != nil {
			if errors.IsCode(err, errors.ErrCodeInvalidHex) {
				return Style{}, err
			}
			if background {
				return Style{}, errors.Newf(errors.ErrCodeUnknownColor,
					"unknown background color %q", token)
			}
			return Style{}, errors.Newf(errors.ErrCodeUnknownAttribute,
				"unknown attribute or color %q", token)
		}
		if background {
			s = s.WithBG(c)
		} else {
			s = s.WithFG(c)
		}
	}

	return s, nil
}

// SGR returns the single escape sequence selecting this style, with
// colors downgraded through the target system first. The empty string
// means nothing needs to be emitted.
func (s Style) SGR(sys color.System) string {
	if sys == color.SystemNone {
		return ""
	}

	var codes []string

	for _, m := range attrSGR {
		if s.set&m.attr != 0 && s.attrs&m.attr != 0 {
			codes = append(codes, m.code)
		}
	}

	if s.fgSet {
		codes = append(codes, color.Downgrade(s.fg, sys).SGRParams(false)...)
	}
	if s.bgSet {
		codes = append(codes, color.Downgrade(s.bg, sys).SGRParams(true)...)
	}

	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

// RenderANSI writes the SGR sequence for this style to sb. It is the
// write-side twin of SGR for callers assembling larger buffers.
func (s Style) RenderANSI(sb *strings.Builder, sys color.System) {
	sb.WriteString(s.SGR(sys))
}

// String renders the style back to a parseable definition, mostly for
// debugging and test failure output.
func (s Style) String() string {
	var parts []string

	names := []struct {
		attr Attr
		name string
	}{
		{AttrBold, "bold"}, {AttrDim, "dim"}, {AttrItalic, "italic"},
		{AttrUnderline, "underline"}, {AttrUnderline2, "underline2"},
		{AttrBlink, "blink"}, {AttrBlink2, "blink2"}, {AttrReverse, "reverse"},
		{AttrConceal, "conceal"}, {AttrStrike, "strike"}, {AttrOverline, "overline"},
		{AttrFrame, "frame"}, {AttrEncircle, "encircle"},
	}
	for _, n := range names {
		if s.set&n.attr == 0 {
			continue
		}
		if s.attrs&n.attr != 0 {
			parts = append(parts, n.name)
		} else {
			parts = append(parts, "not "+n.name)
		}
	}

	if s.fgSet {
		parts = append(parts, s.fg.String())
	}
	if s.bgSet {
		parts = append(parts, "on", s.bg.String())
	}
	if s.link != "" {
		parts = append(parts, "link="+s.link)
	}

	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
