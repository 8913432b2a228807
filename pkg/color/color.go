// Package color models terminal colors as a closed tagged union and
// implements downgrading between color systems: a higher-fidelity color
// maps to the nearest color the target system can express.
package color

import (
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/odvcencio/inkwell/pkg/errors"
)

// System is a terminal color system, ordered by fidelity.
type System uint8

const (
	// SystemNone renders no color at all; everything maps to Default.
	SystemNone System = iota
	// SystemStandard supports the 16 standard ANSI colors.
	SystemStandard
	// SystemEightBit supports the 256-color palette.
	SystemEightBit
	// SystemTrueColor supports 24-bit color.
	SystemTrueColor
)

func (s System) String() string {
	switch s {
	case SystemNone:
		return "none"
	case SystemStandard:
		return "standard"
	case SystemEightBit:
		return "256"
	case SystemTrueColor:
		return "truecolor"
	}
	return "unknown"
}

// Mode defines how a color is represented.
type Mode uint8

const (
	// ModeDefault uses the terminal's default color.
	ModeDefault Mode = iota
	// ModeStandard is one of the 16 basic ANSI colors (0-15).
	ModeStandard
	// ModeIndexed is an entry of the 256-color palette (0-255).
	ModeIndexed
	// ModeRGB is 24-bit true color.
	ModeRGB
)

// Color is an immutable terminal color value. The zero value is the
// terminal default.
type Color struct {
	Mode    Mode
	Index   uint8 // Standard/Indexed entry
	R, G, B uint8 // RGB channels
}

// Default is the terminal's default color.
var Default = Color{Mode: ModeDefault}

// Standard returns one of the 16 basic ANSI colors. Indexes above 15
// are clamped.
func Standard(index uint8) Color {
	if index > 15 {
		index = 15
	}
	return Color{Mode: ModeStandard, Index: index}
}

// Indexed returns an entry of the 256-color palette.
func Indexed(index uint8) Color {
	return Color{Mode: ModeIndexed, Index: index}
}

// RGB returns a 24-bit color.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ModeRGB, R: r, G: g, B: b}
}

// The 16 standard colors by their conventional names.
var named = map[string]Color{
	"black":          Standard(0),
	"red":            Standard(1),
	"green":          Standard(2),
	"yellow":         Standard(3),
	"blue":           Standard(4),
	"magenta":        Standard(5),
	"cyan":           Standard(6),
	"white":          Standard(7),
	"bright_black":   Standard(8),
	"grey":           Standard(8),
	"gray":           Standard(8),
	"bright_red":     Standard(9),
	"bright_green":   Standard(10),
	"bright_yellow":  Standard(11),
	"bright_blue":    Standard(12),
	"bright_magenta": Standard(13),
	"bright_cyan":    Standard(14),
	"bright_white":   Standard(15),
	"default":        Default,
}

// standardNames holds the canonical name of each standard color.
var standardNames = [16]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright_black", "bright_red", "bright_green", "bright_yellow",
	"bright_blue", "bright_magenta", "bright_cyan", "bright_white",
}

// ByName looks up a standard color by name.
func ByName(name string) (Color, bool) {
	c, ok := named[strings.ToLower(name)]
	return c, ok
}

// ParseHex parses a "#RRGGBB" string.
func ParseHex(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, errors.Newf(errors.ErrCodeInvalidHex, "hex color must be #RRGGBB, got %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, errors.Newf(errors.ErrCodeInvalidHex, "hex color has non-hex digits: %q", s)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// Parse interprets a color token: a standard color name, a "#RRGGBB"
// hex value, or a palette index 0-255.
func Parse(token string) (Color, error) {
	if c, ok := ByName(token); ok {
		return c, nil
	}
	if strings.HasPrefix(token, "#") {
		return ParseHex(token)
	}
	if n, err := strconv.Atoi(token); err == nil {
		if n < 0 || n > 255 {
			return Color{}, errors.Newf(errors.ErrCodeUnknownColor, "color index out of range: %d", n)
		}
		if n < 16 {
			return Standard(uint8(n)), nil
		}
		return Indexed(uint8(n)), nil
	}
	return Color{}, errors.Newf(errors.ErrCodeUnknownColor, "unknown color %q", token)
}

// standardRGB holds the conventional RGB values of the 16 standard
// colors, used for nearest-match searches.
var standardRGB = [16][3]uint8{
	{0, 0, 0},       // black
	{128, 0, 0},     // red
	{0, 128, 0},     // green
	{128, 128, 0},   // yellow
	{0, 0, 128},     // blue
	{128, 0, 128},   // magenta
	{0, 128, 128},   // cyan
	{192, 192, 192}, // white
	{128, 128, 128}, // bright black
	{255, 0, 0},     // bright red
	{0, 255, 0},     // bright green
	{255, 255, 0},   // bright yellow
	{0, 0, 255},     // bright blue
	{255, 0, 255},   // bright magenta
	{0, 255, 255},   // bright cyan
	{255, 255, 255}, // bright white
}

// cubeLevels are the channel values of the 6x6x6 color cube.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// PaletteRGB expands a 256-palette index to its RGB triplet: the 16
// standard entries, the 6x6x6 cube, then the 24-step gray ramp.
func PaletteRGB(index uint8) (r, g, b uint8) {
	if index < 16 {
		e := standardRGB[index]
		return e[0], e[1], e[2]
	}
	if index < 232 {
		n := index - 16
		return cubeLevels[n/36], cubeLevels[(n/6)%6], cubeLevels[n%6]
	}
	v := 8 + 10*(index-232)
	return v, v, v
}

// rgbOf resolves any non-default color to an RGB triplet.
func (c Color) rgbOf() (r, g, b uint8) {
	switch c.Mode {
	case ModeStandard, ModeIndexed:
		return PaletteRGB(c.Index)
	default:
		return c.R, c.G, c.B
	}
}

func distance(r1, g1, b1, r2, g2, b2 uint8) float64 {
	a := colorful.Color{R: float64(r1) / 255, G: float64(g1) / 255, B: float64(b1) / 255}
	b := colorful.Color{R: float64(r2) / 255, G: float64(g2) / 255, B: float64(b2) / 255}
	return a.DistanceRgb(b)
}

// nearestStandard returns the index of the standard color closest to
// (r,g,b) by Euclidean RGB distance. Ties favor the lower index.
func nearestStandard(r, g, b uint8) uint8 {
	best := 0
	bestDist := distance(r, g, b, standardRGB[0][0], standardRGB[0][1], standardRGB[0][2])
	for i := 1; i < 16; i++ {
		d := distance(r, g, b, standardRGB[i][0], standardRGB[i][1], standardRGB[i][2])
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

// nearestEightBit quantizes an RGB color into the 256 palette. Pure
// grays snap to the nearest of the gray ramp or the cube's black/white
// corners; everything else quantizes each channel into the 6 cube
// levels.
func nearestEightBit(r, g, b uint8) uint8 {
	if r == g && g == b {
		candidates := make([]uint8, 0, 26)
		candidates = append(candidates, 16, 231)
		for i := 232; i <= 255; i++ {
			candidates = append(candidates, uint8(i))
		}

		best := candidates[0]
		cr, cg, cb := PaletteRGB(best)
		bestDist := distance(r, g, b, cr, cg, cb)
		for _, cand := range candidates[1:] {
			cr, cg, cb = PaletteRGB(cand)
			if d := distance(r, g, b, cr, cg, cb); d < bestDist {
				best, bestDist = cand, d
			}
		}
		return best
	}

	qr := (int(r)*5 + 127) / 255
	qg := (int(g)*5 + 127) / 255
	qb := (int(b)*5 + 127) / 255
	return uint8(16 + 36*qr + 6*qg + qb)
}

// Downgrade maps c onto target. It is total and idempotent: Default and
// already-conforming colors pass through unchanged.
func Downgrade(c Color, target System) Color {
	if c.Mode == ModeDefault || target == SystemTrueColor {
		return c
	}

	switch target {
	case SystemNone:
		return Default

	case SystemEightBit:
		if c.Mode == ModeRGB {
			return Indexed(nearestEightBit(c.R, c.G, c.B))
		}
		return c

	case SystemStandard:
		if c.Mode == ModeStandard {
			return c
		}
		r, g, b := c.rgbOf()
		return Standard(nearestStandard(r, g, b))
	}

	return c
}

// SGRParams returns the SGR parameters selecting c as foreground or
// background. Serialization is pure: no downgrading happens here.
func (c Color) SGRParams(background bool) []string {
	base := 30
	if background {
		base = 40
	}

	switch c.Mode {
	case ModeDefault:
		return []string{strconv.Itoa(base + 9)}
	case ModeStandard:
		n := int(c.Index)
		if n >= 8 {
			return []string{strconv.Itoa(base + n + 52)}
		}
		return []string{strconv.Itoa(base + n)}
	case ModeIndexed:
		return []string{strconv.Itoa(base + 8), "5", strconv.Itoa(int(c.Index))}
	case ModeRGB:
		return []string{
			strconv.Itoa(base + 8), "2",
			strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B)),
		}
	}
	return nil
}

func (c Color) String() string {
	switch c.Mode {
	case ModeDefault:
		return "default"
	case ModeStandard:
		return standardNames[c.Index&0xF]
	case ModeIndexed:
		return "color(" + strconv.Itoa(int(c.Index)) + ")"
	default:
		const hexdigits = "0123456789abcdef"
		out := []byte{'#', 0, 0, 0, 0, 0, 0}
		for i, v := range []uint8{c.R, c.G, c.B} {
			out[1+i*2] = hexdigits[v>>4]
			out[2+i*2] = hexdigits[v&0xF]
		}
		return string(out)
	}
}
