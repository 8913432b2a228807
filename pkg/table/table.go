// Package table lays out a grid of cells into bordered, padded rows of
// segments. Columns carry width constraints and justification; cells
// may span multiple rows and columns, tracked by a per-column occupancy
// array that is rebuilt on every render.
package table

import (
	"strings"

	"github.com/odvcencio/inkwell/pkg/cellwidth"
	"github.com/odvcencio/inkwell/pkg/segment"
	"github.com/odvcencio/inkwell/pkg/style"
)

// Justify selects horizontal cell alignment.
type Justify uint8

const (
	// JustifyDefault defers to the column (cells) or left (columns).
	JustifyDefault Justify = iota
	JustifyLeft
	JustifyCenter
	JustifyRight
)

// Overflow selects what happens to content wider than its column.
type Overflow uint8

const (
	// OverflowFold wraps long content onto extra lines.
	OverflowFold Overflow = iota
	// OverflowEllipsis truncates with a trailing ellipsis.
	OverflowEllipsis
	// OverflowCrop truncates hard at the column edge.
	OverflowCrop
)

// Column describes one grid column: its header, width policy,
// justification, overflow policy, and style.
type Column struct {
	Header   string
	Width    int // exact width, overrides measurement
	MinWidth int
	MaxWidth int
	Ratio    int // share of remaining space; overrides measurement
	Justify  Justify
	Overflow Overflow
	Style    *style.Style
}

// Cell is one grid entry: text content or a pre-rendered segment run,
// spanning one or more rows and columns.
type Cell struct {
	Text     string
	Segments []segment.Segment
	ColSpan  int // 0 means 1
	RowSpan  int // 0 means 1
	Style    *style.Style
	Justify  Justify
}

// TextCell returns a plain single-span cell.
func TextCell(text string) Cell {
	return Cell{Text: text}
}

// Border is a set of box-drawing glyphs.
type Border struct {
	H, V                                        string
	TopLeft, TopRight, BottomLeft, BottomRight  string
	TopTee, BottomTee, LeftTee, RightTee, Cross string
}

var (
	// BorderSingle uses single-line box drawing characters.
	BorderSingle = Border{
		H: "─", V: "│",
		TopLeft: "┌", TopRight: "┐", BottomLeft: "└", BottomRight: "┘",
		TopTee: "┬", BottomTee: "┴", LeftTee: "├", RightTee: "┤", Cross: "┼",
	}
	// BorderRounded is BorderSingle with rounded corners.
	BorderRounded = Border{
		H: "─", V: "│",
		TopLeft: "╭", TopRight: "╮", BottomLeft: "╰", BottomRight: "╯",
		TopTee: "┬", BottomTee: "┴", LeftTee: "├", RightTee: "┤", Cross: "┼",
	}
	// BorderDouble uses double-line box drawing characters.
	BorderDouble = Border{
		H: "═", V: "║",
		TopLeft: "╔", TopRight: "╗", BottomLeft: "╚", BottomRight: "╝",
		TopTee: "╦", BottomTee: "╩", LeftTee: "╠", RightTee: "╣", Cross: "╬",
	}
	// BorderASCII sticks to 7-bit characters.
	BorderASCII = Border{
		H: "-", V: "|",
		TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
		TopTee: "+", BottomTee: "+", LeftTee: "+", RightTee: "+", Cross: "+",
	}
	// BorderNone draws nothing.
	BorderNone = Border{}
)

// Table accumulates rows and renders them. Layout never errors:
// malformed input (short rows, oversized spans) is clamped.
type Table struct {
	Columns     []Column
	Border      Border
	BorderStyle *style.Style
	ShowHeader  bool
	ShowEdge    bool
	ShowLines   bool
	Padding     int
	Collapse    bool // collapse cell padding

	rows [][]Cell
}

// New returns a table with the given columns and the default look:
// single-line borders, header shown, one cell of padding.
func New(columns ...Column) *Table {
	return &Table{
		Columns:    columns,
		Border:     BorderSingle,
		ShowHeader: true,
		ShowEdge:   true,
		Padding:    1,
	}
}

// AddRow appends one row of cells.
func (t *Table) AddRow(cells ...Cell) {
	t.rows = append(t.rows, cells)
}

// AddTextRow appends a row of plain single-span cells.
func (t *Table) AddTextRow(values ...string) {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = TextCell(v)
	}
	t.AddRow(cells...)
}

// placement is one cell resolved to its covered column range.
type placement struct {
	cell *Cell
	col  int
	span int
}

// rowLayout is the resolved shape of one emitted row: its placements,
// which columns an earlier rowspan blocks, and which columns stay
// occupied below this row.
type rowLayout struct {
	placements []placement
	blocked    []bool
	continues  []bool
}

// computeLayout walks all rows once, resolving spans against the
// occupancy tracker: a per-column remaining-rowspan counter decremented
// after every emitted row.
func (t *Table) computeLayout() []rowLayout {
	n := len(t.Columns)
	remaining := make([]int, n)
	layouts := make([]rowLayout, 0, len(t.rows))
	empty := Cell{}

	for _, row := range t.rows {
		lay := rowLayout{
			blocked:   make([]bool, n),
			continues: make([]bool, n),
		}

		next := 0
		col := 0
		for col < n {
			if remaining[col] > 0 {
				lay.blocked[col] = true
				col++
				continue
			}

			cell := &empty
			if next < len(row) {
				cell = &row[next]
				next++
			}

			span := cell.ColSpan
			if span < 1 {
				span = 1
			}
			if span > n-col {
				span = n - col
			}
			// A span cannot extend into a column an earlier rowspan
			// still holds.
			for k := col + 1; k < col+span; k++ {
				if remaining[k] > 0 {
					span = k - col
					break
				}
			}

			if rs := cell.RowSpan; rs > 1 {
				for k := col; k < col+span; k++ {
					remaining[k] = rs
				}
			}

			lay.placements = append(lay.placements, placement{cell: cell, col: col, span: span})
			col += span
		}

		for k := range remaining {
			if remaining[k] > 0 {
				remaining[k]--
				if remaining[k] > 0 {
					lay.continues[k] = true
				}
			}
		}

		layouts = append(layouts, lay)
	}
	return layouts
}

func (t *Table) pad() int {
	if t.Collapse {
		return 0
	}
	return t.Padding
}

// sepWidth is the cells one interior column separator occupies: the
// vertical border glyph plus the padding on both of its sides.
func (t *Table) sepWidth() int {
	w := 2 * t.pad()
	if t.Border.V != "" {
		w++
	}
	return w
}

// overhead is every cell of a rendered line not available to content.
func (t *Table) overhead() int {
	n := len(t.Columns)
	w := 2 * t.pad() * n
	if t.Border.V != "" {
		w += n - 1
		if t.ShowEdge {
			w += 2
		}
	}
	return w
}

func contentWidth(c *Cell) int {
	if c.Segments != nil {
		return segment.CellLen(c.Segments)
	}
	width := 0
	for _, line := range strings.Split(c.Text, "\n") {
		if w := cellwidth.StringWidth(line); w > width {
			width = w
		}
	}
	return width
}

// resolveWidths runs the width passes: header seed, content widening,
// per-column constraints, ratio distribution, then colspan shortfall
// spreading.
func (t *Table) resolveWidths(totalWidth int, layouts []rowLayout) []int {
	n := len(t.Columns)
	widths := make([]int, n)

	if t.ShowHeader {
		for i, c := range t.Columns {
			widths[i] = cellwidth.StringWidth(c.Header)
		}
	}

	for _, lay := range layouts {
		for _, p := range lay.placements {
			if p.span != 1 {
				continue
			}
			if w := contentWidth(p.cell); w > widths[p.col] {
				widths[p.col] = w
			}
		}
	}

	for i, c := range t.Columns {
		if c.Width > 0 {
			widths[i] = c.Width
			continue
		}
		if c.MinWidth > 0 && widths[i] < c.MinWidth {
			widths[i] = c.MinWidth
		}
		if c.MaxWidth > 0 && widths[i] > c.MaxWidth {
			widths[i] = c.MaxWidth
		}
	}

	ratioSum := 0
	for _, c := range t.Columns {
		if c.Ratio > 0 {
			ratioSum += c.Ratio
		}
	}
	if ratioSum > 0 && totalWidth > 0 {
		fixed := 0
		for i, c := range t.Columns {
			if c.Ratio <= 0 {
				fixed += widths[i]
			}
		}
		remaining := totalWidth - t.overhead() - fixed
		if remaining < 0 {
			remaining = 0
		}
		for i, c := range t.Columns {
			if c.Ratio <= 0 {
				continue
			}
			share := remaining * c.Ratio / ratioSum
			if share < 1 {
				share = 1
			}
			widths[i] = share
		}
	}

	sep := t.sepWidth()
	for _, lay := range layouts {
		for _, p := range lay.placements {
			if p.span < 2 {
				continue
			}
			have := (p.span - 1) * sep
			for k := 0; k < p.span; k++ {
				have += widths[p.col+k]
			}
			shortfall := contentWidth(p.cell) - have
			if shortfall <= 0 {
				continue
			}
			each := shortfall / p.span
			extra := shortfall % p.span
			for k := 0; k < p.span; k++ {
				widths[p.col+k] += each
				if k < extra {
					widths[p.col+k]++
				}
			}
		}
	}

	return widths
}

// Render lays the table out into visual lines of segments. totalWidth
// only matters when ratio columns need space distributed; pass 0 for
// content-sized tables.
func (t *Table) Render(totalWidth int) [][]segment.Segment {
	n := len(t.Columns)
	if n == 0 {
		return nil
	}

	layouts := t.computeLayout()
	widths := t.resolveWidths(totalWidth, layouts)

	var out [][]segment.Segment

	if t.ShowEdge && t.Border.H != "" {
		out = append(out, t.edgeRow(widths, t.Border.TopLeft, t.Border.TopTee, t.Border.TopRight))
	}

	if t.ShowHeader {
		headerLay := t.headerLayout()
		out = append(out, t.contentLines(headerLay, widths, true)...)
		if t.Border.H != "" {
			out = append(out, t.separatorRow(widths, nil))
		}
	}

	for i, lay := range layouts {
		out = append(out, t.contentLines(lay, widths, false)...)
		if t.ShowLines && t.Border.H != "" && i < len(layouts)-1 {
			out = append(out, t.separatorRow(widths, lay.continues))
		}
	}

	if t.ShowEdge && t.Border.H != "" {
		out = append(out, t.edgeRow(widths, t.Border.BottomLeft, t.Border.BottomTee, t.Border.BottomRight))
	}

	return out
}

// headerLayout shapes the header row as ordinary single-span cells.
func (t *Table) headerLayout() rowLayout {
	n := len(t.Columns)
	lay := rowLayout{
		blocked:   make([]bool, n),
		continues: make([]bool, n),
	}
	for i := range t.Columns {
		lay.placements = append(lay.placements, placement{
			cell: &Cell{Text: t.Columns[i].Header},
			col:  i,
			span: 1,
		})
	}
	return lay
}

// coveredWidth is the content width available to a placement: its
// columns plus the interior separators a colspan swallows.
func (t *Table) coveredWidth(p placement, widths []int) int {
	w := (p.span - 1) * t.sepWidth()
	for k := 0; k < p.span; k++ {
		w += widths[p.col+k]
	}
	return w
}

// contentLines renders one grid row into its visual lines.
func (t *Table) contentLines(lay rowLayout, widths []int, header bool) [][]segment.Segment {
	pad := t.pad()

	// Resolve every placement's content into overflowed lines first;
	// the row is as tall as its tallest cell.
	lines := make([][][]segment.Segment, len(lay.placements))
	height := 1
	for i, p := range lay.placements {
		cw := t.coveredWidth(p, widths)
		lines[i] = t.cellLines(p, cw, header)
		if len(lines[i]) > height {
			height = len(lines[i])
		}
	}

	padding := strings.Repeat(" ", pad)
	out := make([][]segment.Segment, 0, height)

	for li := 0; li < height; li++ {
		var segs []segment.Segment
		if t.ShowEdge && t.Border.V != "" {
			segs = append(segs, t.borderSeg(t.Border.V))
		}

		pi := 0
		col := 0
		firstItem := true
		for col < len(t.Columns) {
			if !firstItem && t.Border.V != "" {
				segs = append(segs, t.borderSeg(t.Border.V))
			}
			firstItem = false

			if lay.blocked[col] {
				blank := strings.Repeat(" ", widths[col]+2*pad)
				segs = append(segs, segment.NewText(blank, t.Columns[col].Style))
				col++
				continue
			}

			p := lay.placements[pi]
			pi++
			cw := t.coveredWidth(p, widths)

			var content []segment.Segment
			if li < len(lines[pi-1]) {
				content = lines[pi-1][li]
			}
			cellStyle := t.cellStyle(p, header)
			content = t.justifyLine(content, cw, t.justifyFor(p, header), cellStyle)
			if pad > 0 {
				segs = append(segs, segment.NewText(padding, cellStyle))
			}
			segs = append(segs, content...)
			if pad > 0 {
				segs = append(segs, segment.NewText(padding, cellStyle))
			}
			col += p.span
		}

		if t.ShowEdge && t.Border.V != "" {
			segs = append(segs, t.borderSeg(t.Border.V))
		}
		out = append(out, segs)
	}

	return out
}

// justifyFor picks the effective justification: the cell's override,
// else the leftmost covered column's, else left. Headers center by
// default.
func (t *Table) justifyFor(p placement, header bool) Justify {
	if p.cell.Justify != JustifyDefault {
		return p.cell.Justify
	}
	if j := t.Columns[p.col].Justify; j != JustifyDefault {
		return j
	}
	if header {
		return JustifyCenter
	}
	return JustifyLeft
}

// cellStyle layers the leftmost covered column's style under the cell's
// own override.
func (t *Table) cellStyle(p placement, header bool) *style.Style {
	var base *style.Style
	if !header {
		base = t.Columns[p.col].Style
	}

	switch {
	case base == nil && p.cell.Style == nil:
		return nil
	case base == nil:
		return p.cell.Style
	case p.cell.Style == nil:
		return base
	default:
		combined := style.Combine(*base, *p.cell.Style)
		return &combined
	}
}

// cellLines resolves a placement's content into visual lines no wider
// than width, applying the column's overflow policy.
func (t *Table) cellLines(p placement, width int, header bool) [][]segment.Segment {
	overflow := t.Columns[p.col].Overflow
	st := t.cellStyle(p, header)

	if p.cell.Segments != nil {
		return t.segmentLines(p.cell.Segments, width, overflow)
	}

	var out [][]segment.Segment
	for _, raw := range strings.Split(p.cell.Text, "\n") {
		switch overflow {
		case OverflowFold:
			for _, folded := range foldLine(raw, width) {
				out = append(out, lineOf(folded, st))
			}
		case OverflowEllipsis:
			line := raw
			if cellwidth.StringWidth(raw) > width {
				line = segment.Truncate(raw, width, "…")
				if width > 0 {
					line += "…"
				}
			}
			out = append(out, lineOf(line, st))
		case OverflowCrop:
			out = append(out, lineOf(segment.Truncate(raw, width, ""), st))
		}
	}
	return out
}

func lineOf(text string, st *style.Style) []segment.Segment {
	if text == "" {
		return nil
	}
	return []segment.Segment{segment.NewText(text, st)}
}

// segmentLines applies the overflow policy to a pre-rendered run.
func (t *Table) segmentLines(segs []segment.Segment, width int, overflow Overflow) [][]segment.Segment {
	if width <= 0 {
		return [][]segment.Segment{nil}
	}

	switch overflow {
	case OverflowEllipsis:
		if segment.CellLen(segs) > width {
			head := segment.TruncateSegments(segs, width-1)
			head = append(head, segment.NewText("…", nil))
			return [][]segment.Segment{head}
		}
		return [][]segment.Segment{segs}

	case OverflowCrop:
		return [][]segment.Segment{segment.TruncateSegments(segs, width)}

	default: // fold
		var out [][]segment.Segment
		rest := segs
		for segment.CellLen(rest) > width {
			var head []segment.Segment
			head, rest = segment.SplitCells(rest, width)
			out = append(out, head)
		}
		return append(out, rest)
	}
}

// foldLine wraps s at width cells, keeping words together where it can
// and hard-splitting words wider than a whole line.
func foldLine(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	if cellwidth.StringWidth(s) <= width {
		return []string{s}
	}

	var lines []string
	current := ""
	currentW := 0

	flush := func() {
		lines = append(lines, current)
		current = ""
		currentW = 0
	}

	// Walk alternating runs of spaces and non-spaces so interior space
	// runs survive; a run that would wrap is dropped at the break.
	for i := 0; i < len(s); {
		j := i
		for j < len(s) && (s[j] == ' ') == (s[i] == ' ') {
			j++
		}
		tok := s[i:j]
		i = j

		if tok[0] == ' ' {
			if currentW+len(tok) <= width {
				current += tok
				currentW += len(tok)
			} else if currentW > 0 {
				flush()
			}
			continue
		}

		for cellwidth.StringWidth(tok) > width {
			// A word wider than a whole line hard-splits onto fresh lines.
			if currentW > 0 {
				flush()
			}
			frag := segment.Truncate(tok, width, "")
			if frag == "" {
				// Single rune wider than the line; emit it anyway.
				for _, r := range tok {
					frag = string(r)
					break
				}
			}
			current = frag
			flush()
			tok = tok[len(frag):]
		}

		w := cellwidth.StringWidth(tok)
		switch {
		case tok == "":
		case currentW+w <= width:
			current += tok
			currentW += w
		default:
			flush()
			current, currentW = tok, w
		}
	}
	if current != "" || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}

// justifyLine pads content to width per the justification.
func (t *Table) justifyLine(content []segment.Segment, width int, j Justify, st *style.Style) []segment.Segment {
	gap := width - segment.CellLen(content)
	if gap < 0 {
		return segment.TruncateSegments(content, width)
	}
	if gap == 0 {
		return content
	}

	switch j {
	case JustifyRight:
		return append([]segment.Segment{segment.NewText(strings.Repeat(" ", gap), st)}, content...)
	case JustifyCenter:
		left := gap / 2
		right := gap - left
		out := make([]segment.Segment, 0, len(content)+2)
		if left > 0 {
			out = append(out, segment.NewText(strings.Repeat(" ", left), st))
		}
		out = append(out, content...)
		return append(out, segment.NewText(strings.Repeat(" ", right), st))
	default:
		return append(content, segment.NewText(strings.Repeat(" ", gap), st))
	}
}

func (t *Table) borderSeg(glyph string) segment.Segment {
	return segment.NewText(glyph, t.BorderStyle)
}

// edgeRow draws the top or bottom frame line.
func (t *Table) edgeRow(widths []int, left, tee, right string) []segment.Segment {
	pad := t.pad()
	var sb strings.Builder
	sb.WriteString(left)
	for i, w := range widths {
		if i > 0 {
			sb.WriteString(tee)
		}
		sb.WriteString(strings.Repeat(t.Border.H, w+2*pad))
	}
	sb.WriteString(right)
	return []segment.Segment{t.borderSeg(sb.String())}
}

// separatorRow draws a horizontal rule between rows. continues marks
// columns still covered by an active rowspan: those render continuation
// space instead of border glyphs, and a joiner between two blocked
// columns degrades to the plain vertical.
func (t *Table) separatorRow(widths []int, continues []bool) []segment.Segment {
	pad := t.pad()
	blocked := func(i int) bool {
		return continues != nil && continues[i]
	}

	var sb strings.Builder
	if t.ShowEdge {
		if blocked(0) {
			sb.WriteString(t.Border.V)
		} else {
			sb.WriteString(t.Border.LeftTee)
		}
	}
	for i, w := range widths {
		if i > 0 {
			if blocked(i-1) && blocked(i) {
				sb.WriteString(t.Border.V)
			} else {
				sb.WriteString(t.Border.Cross)
			}
		}
		if blocked(i) {
			sb.WriteString(strings.Repeat(" ", w+2*pad))
		} else {
			sb.WriteString(strings.Repeat(t.Border.H, w+2*pad))
		}
	}
	if t.ShowEdge {
		if blocked(len(widths) - 1) {
			sb.WriteString(t.Border.V)
		} else {
			sb.WriteString(t.Border.RightTee)
		}
	}
	return []segment.Segment{t.borderSeg(sb.String())}
}
