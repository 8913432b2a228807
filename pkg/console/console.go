// Package console is the boundary between the rendering core and a
// real terminal: it probes capabilities from the environment and turns
// segment runs into bytes. The core itself never touches the
// environment; everything it needs arrives as a Capabilities value.
package console

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/odvcencio/inkwell/pkg/color"
	"github.com/odvcencio/inkwell/pkg/segment"
)

const ansiReset = "\x1b[0m"

// Capabilities describes what the attached terminal can do.
type Capabilities struct {
	Width      int
	Height     int
	Colors     color.System
	IsTTY      bool
	Hyperlinks bool
}

// Detect probes a file (normally os.Stdout) for its capabilities.
func Detect(f *os.File) Capabilities {
	caps := Capabilities{
		Width:  80,
		Height: 24,
		Colors: color.SystemNone,
	}

	if f == nil {
		return caps
	}

	caps.IsTTY = term.IsTerminal(int(f.Fd()))
	if caps.IsTTY {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			caps.Width, caps.Height = w, h
		}
	}

	switch termenv.NewOutput(f).Profile {
	case termenv.TrueColor:
		caps.Colors = color.SystemTrueColor
	case termenv.ANSI256:
		caps.Colors = color.SystemEightBit
	case termenv.ANSI:
		caps.Colors = color.SystemStandard
	default:
		caps.Colors = color.SystemNone
	}

	// OSC 8 support has no reliable query; emitting to a non-tty or a
	// colorless terminal is the only case clearly worth suppressing.
	caps.Hyperlinks = caps.IsTTY && caps.Colors != color.SystemNone

	return caps
}

// Writer emits segment runs as terminal bytes: one SGR sequence per
// styled segment, a reset after every styled run, OSC 8 wrapping for
// hyperlinks, raw passthrough for control segments.
type Writer struct {
	out  io.Writer
	caps Capabilities
	mu   sync.Mutex
}

// NewWriter wraps an output with the given capabilities.
func NewWriter(out io.Writer, caps Capabilities) *Writer {
	return &Writer{out: out, caps: caps}
}

// Capabilities returns the writer's capability set.
func (w *Writer) Capabilities() Capabilities {
	return w.caps
}

// WriteSegments renders one segment run.
func (w *Writer) WriteSegments(segs []segment.Segment) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var sb strings.Builder
	w.renderRun(&sb, segs)
	_, err := io.WriteString(w.out, sb.String())
	return err
}

// WriteLines renders each run followed by a newline.
func (w *Writer) WriteLines(lines [][]segment.Segment) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var sb strings.Builder
	for _, line := range lines {
		w.renderRun(&sb, line)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w.out, sb.String())
	return err
}

func (w *Writer) renderRun(sb *strings.Builder, segs []segment.Segment) {
	for _, seg := range segs {
		if seg.IsControl() {
			sb.WriteString(seg.Text)
			continue
		}

		if seg.Style == nil {
			sb.WriteString(seg.Text)
			continue
		}

		link := seg.Style.Link()
		if link != "" && !w.caps.Hyperlinks {
			link = ""
		}

		sgr := seg.Style.SGR(w.caps.Colors)

		if link != "" {
			sb.WriteString("\x1b]8;;")
			sb.WriteString(link)
			sb.WriteString("\x1b\\")
		}
		sb.WriteString(sgr)
		sb.WriteString(seg.Text)
		if sgr != "" {
			sb.WriteString(ansiReset)
		}
		if link != "" {
			sb.WriteString("\x1b]8;;\x1b\\")
		}
	}
}
