package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/inkwell/pkg/color"
	"github.com/odvcencio/inkwell/pkg/errors"
	"github.com/odvcencio/inkwell/pkg/segment"
	"github.com/odvcencio/inkwell/pkg/style"
)

func TestFromMarkupRoundTrip(t *testing.T) {
	// "[bold red]x[/]" must yield exactly one segment for "x" with bold
	// and a red foreground, nothing around it.
	txt, err := FromMarkup("[bold red]x[/]", style.Empty)
	require.NoError(t, err)

	segs := txt.Render()
	require.Len(t, segs, 1)
	assert.Equal(t, "x", segs[0].Text)

	st := segs[0].Style
	require.NotNil(t, st)
	assert.True(t, st.Has(style.AttrBold))
	fg, ok := st.FG()
	require.True(t, ok)
	assert.Equal(t, color.Standard(1), fg)
}

func TestFromMarkup(t *testing.T) {
	t.Run("plain text no spans", func(t *testing.T) {
		txt, err := FromMarkup("just text", style.Empty)
		require.NoError(t, err)
		assert.Empty(t, txt.Spans())
		assert.Equal(t, "just text", txt.String())

		segs := txt.Render()
		require.Len(t, segs, 1)
		assert.Nil(t, segs[0].Style)
	})

	t.Run("nested tags layer", func(t *testing.T) {
		txt, err := FromMarkup("[bold]a[red]b[/]c[/]", style.Empty)
		require.NoError(t, err)
		assert.Equal(t, "abc", txt.String())

		segs := txt.Render()
		require.Len(t, segs, 3)

		assert.True(t, segs[0].Style.Has(style.AttrBold))
		_, fgSet := segs[0].Style.FG()
		assert.False(t, fgSet)

		assert.True(t, segs[1].Style.Has(style.AttrBold))
		fg, ok := segs[1].Style.FG()
		require.True(t, ok)
		assert.Equal(t, color.Standard(1), fg)

		assert.True(t, segs[2].Style.Has(style.AttrBold))
		_, fgSet = segs[2].Style.FG()
		assert.False(t, fgSet)
	})

	t.Run("text before and after tags uses base", func(t *testing.T) {
		base, err := style.Parse("dim")
		require.NoError(t, err)

		txt, err := FromMarkup("a[bold]b[/]c", base)
		require.NoError(t, err)

		segs := txt.Render()
		require.Len(t, segs, 3)
		assert.True(t, segs[0].Style.Has(style.AttrDim))
		assert.False(t, segs[0].Style.Has(style.AttrBold))
		assert.True(t, segs[1].Style.Has(style.AttrDim))
		assert.True(t, segs[1].Style.Has(style.AttrBold))
		assert.True(t, segs[2].Style.Has(style.AttrDim))
		assert.False(t, segs[2].Style.Has(style.AttrBold))
	})

	t.Run("lenient close by mismatched name still pops", func(t *testing.T) {
		txt, err := FromMarkup("[bold]a[/red]b", style.Empty)
		require.NoError(t, err)

		segs := txt.Render()
		require.Len(t, segs, 2)
		assert.True(t, segs[0].Style.Has(style.AttrBold))
		assert.Nil(t, segs[1].Style)
	})

	t.Run("extra closes are no-ops", func(t *testing.T) {
		txt, err := FromMarkup("a[/]b[/]c", style.Empty)
		require.NoError(t, err)
		assert.Equal(t, "abc", txt.String())
		assert.Empty(t, txt.Spans())
	})

	t.Run("link tag carries target", func(t *testing.T) {
		txt, err := FromMarkup("[link=https://example.com]docs[/]", style.Empty)
		require.NoError(t, err)

		segs := txt.Render()
		require.Len(t, segs, 1)
		assert.Equal(t, "https://example.com", segs[0].Style.Link())
	})

	t.Run("adjacent tokens under one tag merge", func(t *testing.T) {
		txt, err := FromMarkup(`[bold]a\[b[/]`, style.Empty)
		require.NoError(t, err)

		segs := txt.Render()
		require.Len(t, segs, 1)
		assert.Equal(t, "a[b", segs[0].Text)
	})

	t.Run("bad style in tag fails", func(t *testing.T) {
		_, err := FromMarkup("[sparkly]x[/]", style.Empty)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeUnknownAttribute))
	})

	t.Run("markup errors propagate", func(t *testing.T) {
		_, err := FromMarkup("[bold", style.Empty)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeUnclosedTag))
	})
}

func TestResolverThemeLookup(t *testing.T) {
	warning, err := style.Parse("bold yellow")
	require.NoError(t, err)

	r := Resolver{
		Lookup: func(name string) (style.Style, bool) {
			if name == "warning" {
				return warning, true
			}
			return style.Style{}, false
		},
	}

	txt, err := r.Parse("[warning]careful[/]")
	require.NoError(t, err)

	segs := txt.Render()
	require.Len(t, segs, 1)
	assert.True(t, segs[0].Style.Has(style.AttrBold))
	fg, ok := segs[0].Style.FG()
	require.True(t, ok)
	assert.Equal(t, color.Standard(3), fg)
}

func TestRenderIdempotent(t *testing.T) {
	txt, err := FromMarkup("a[bold]b[/]c[red]d[/]", style.Empty)
	require.NoError(t, err)

	first := txt.Render()
	second := txt.Render()
	assert.Equal(t, first, second)
	assert.Equal(t, "abcd", segment.Plain(first))
}

func TestAppend(t *testing.T) {
	a, err := FromMarkup("aa[bold]bb[/]", style.Empty)
	require.NoError(t, err)
	b, err := FromMarkup("[red]cc[/]dd", style.Empty)
	require.NoError(t, err)

	a.Append(b)
	assert.Equal(t, "aabbccdd", a.String())

	spans := a.Spans()
	require.Len(t, spans, 2)
	assert.Equal(t, 2, spans[0].Start)
	assert.Equal(t, 4, spans[0].End)
	// b's span shifted by a's prior length (4 bytes).
	assert.Equal(t, 4, spans[1].Start)
	assert.Equal(t, 6, spans[1].End)
}

func TestPlain(t *testing.T) {
	base, err := style.Parse("green")
	require.NoError(t, err)

	txt := Plain("hello", base)
	assert.Equal(t, 5, txt.CellLen())

	segs := txt.Render()
	require.Len(t, segs, 1)
	fg, ok := segs[0].Style.FG()
	require.True(t, ok)
	assert.Equal(t, color.Standard(2), fg)
}
