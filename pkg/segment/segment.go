// Package segment defines the atomic output unit of the renderer:
// either a run of styled text or an opaque terminal control code.
// Segments support cell-exact splitting that never lands inside a
// multi-byte code point.
package segment

import (
	"strings"

	"github.com/odvcencio/inkwell/pkg/cellwidth"
	"github.com/odvcencio/inkwell/pkg/style"
)

// Segment is one atomic output unit. Text segments carry an optional
// style; control segments carry raw escape bytes and occupy no cells.
// A text segment must never contain raw control bytes, that invariant
// is owned by the layers that build text.
type Segment struct {
	Text    string
	Style   *style.Style
	control bool
}

// NewText returns a styled text segment. A nil style means "unstyled".
func NewText(text string, st *style.Style) Segment {
	return Segment{Text: text, Style: st}
}

// Control returns a control segment carrying raw terminal bytes.
func Control(code string) Segment {
	return Segment{Text: code, control: true}
}

// IsControl reports whether the segment is a control code.
func (s Segment) IsControl() bool {
	return s.control
}

// CellLen returns the display width of the segment in cells. Control
// segments occupy no cells.
func (s Segment) CellLen() int {
	if s.control {
		return 0
	}
	return cellwidth.StringWidth(s.Text)
}

// Split divides the segment at the given cell position, returning the
// prefix that fits within pos cells and the remainder. Both halves
// share the original style. A code point whose width would cross pos
// goes entirely to the remainder.
func (s Segment) Split(pos int) (Segment, Segment) {
	if s.control {
		return s, Segment{control: true}
	}
	if pos <= 0 {
		return Segment{Style: s.Style}, s
	}

	width := 0
	for i, r := range s.Text {
		rw := cellwidth.RuneWidth(r)
		if width+rw > pos {
			return Segment{Text: s.Text[:i], Style: s.Style},
				Segment{Text: s.Text[i:], Style: s.Style}
		}
		width += rw
	}
	return s, Segment{Style: s.Style}
}

// Truncate returns the longest whole-codepoint prefix of text that fits
// in maxWidth cells once the ellipsis width is reserved. The ellipsis
// itself is not appended; callers add it after the prefix. Text already
// within maxWidth comes back unchanged, with nothing reserved.
func Truncate(text string, maxWidth int, ellipsis string) string {
	if text == "" || maxWidth <= 0 {
		return ""
	}
	if cellwidth.StringWidth(text) <= maxWidth {
		return text
	}

	avail := maxWidth - cellwidth.StringWidth(ellipsis)
	if avail <= 0 {
		return ""
	}

	width := 0
	end := 0
	for i, r := range text {
		rw := cellwidth.RuneWidth(r)
		if width+rw > avail {
			break
		}
		width += rw
		end = i + len(string(r))
	}
	return text[:end]
}

// CellLen returns the total display width of a segment run.
func CellLen(segs []Segment) int {
	total := 0
	for _, s := range segs {
		total += s.CellLen()
	}
	return total
}

// SplitCells divides a segment run at the given cell position.
func SplitCells(segs []Segment, pos int) (head, tail []Segment) {
	remaining := pos
	for i, s := range segs {
		w := s.CellLen()
		if s.IsControl() || w <= remaining {
			head = append(head, s)
			remaining -= w
			continue
		}
		left, right := s.Split(remaining)
		if left.Text != "" {
			head = append(head, left)
		}
		if right.Text != "" {
			tail = append(tail, right)
		}
		tail = append(tail, segs[i+1:]...)
		return head, tail
	}
	return head, nil
}

// TruncateSegments trims a segment run to maxWidth cells, dropping the
// remainder. Control segments pass through untouched.
func TruncateSegments(segs []Segment, maxWidth int) []Segment {
	head, _ := SplitCells(segs, maxWidth)
	return head
}

// Pad appends spaces under the given style until the run occupies
// width cells. Runs already at or beyond width come back unchanged.
func Pad(segs []Segment, width int, st *style.Style) []Segment {
	gap := width - CellLen(segs)
	if gap <= 0 {
		return segs
	}
	return append(segs, NewText(strings.Repeat(" ", gap), st))
}

// Plain concatenates the visible text of a segment run, skipping
// control segments.
func Plain(segs []Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		if !s.IsControl() {
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}
