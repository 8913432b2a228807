package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/inkwell/pkg/color"
	"github.com/odvcencio/inkwell/pkg/segment"
	"github.com/odvcencio/inkwell/pkg/style"
)

func trueColorCaps() Capabilities {
	return Capabilities{Width: 80, Height: 24, Colors: color.SystemTrueColor, IsTTY: true, Hyperlinks: true}
}

func TestWriteSegments(t *testing.T) {
	bold, err := style.Parse("bold")
	require.NoError(t, err)

	t.Run("styled run gets SGR and reset", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf, trueColorCaps())

		err := w.WriteSegments([]segment.Segment{segment.NewText("hi", &bold)})
		require.NoError(t, err)
		assert.Equal(t, "\x1b[1mhi\x1b[0m", buf.String())
	})

	t.Run("unstyled run passes through", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf, trueColorCaps())

		require.NoError(t, w.WriteSegments([]segment.Segment{segment.NewText("plain", nil)}))
		assert.Equal(t, "plain", buf.String())
	})

	t.Run("control segments pass through raw", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf, trueColorCaps())

		require.NoError(t, w.WriteSegments([]segment.Segment{segment.Control("\x1b[2J")}))
		assert.Equal(t, "\x1b[2J", buf.String())
	})

	t.Run("colorless terminal drops SGR", func(t *testing.T) {
		var buf bytes.Buffer
		caps := trueColorCaps()
		caps.Colors = color.SystemNone
		w := NewWriter(&buf, caps)

		red, err := style.Parse("red")
		require.NoError(t, err)
		require.NoError(t, w.WriteSegments([]segment.Segment{segment.NewText("x", &red)}))
		assert.Equal(t, "x", buf.String())
	})
}

func TestWriteHyperlinks(t *testing.T) {
	linked := style.New().WithLink("https://example.com")

	t.Run("wrapped in OSC 8 when supported", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf, trueColorCaps())

		require.NoError(t, w.WriteSegments([]segment.Segment{segment.NewText("docs", &linked)}))
		assert.Equal(t, "\x1b]8;;https://example.com\x1b\\docs\x1b]8;;\x1b\\", buf.String())
	})

	t.Run("suppressed when unsupported", func(t *testing.T) {
		var buf bytes.Buffer
		caps := trueColorCaps()
		caps.Hyperlinks = false
		w := NewWriter(&buf, caps)

		require.NoError(t, w.WriteSegments([]segment.Segment{segment.NewText("docs", &linked)}))
		assert.Equal(t, "docs", buf.String())
	})
}

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, trueColorCaps())

	err := w.WriteLines([][]segment.Segment{
		{segment.NewText("one", nil)},
		{segment.NewText("two", nil)},
	})
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", buf.String())
}

func TestDetectNonTTY(t *testing.T) {
	caps := Detect(nil)
	assert.False(t, caps.IsTTY)
	assert.Equal(t, 80, caps.Width)
	assert.Equal(t, 24, caps.Height)
	assert.Equal(t, color.SystemNone, caps.Colors)
	assert.False(t, caps.Hyperlinks)
}
