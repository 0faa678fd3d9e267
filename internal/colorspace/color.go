// Package colorspace provides exact sRGB, CIE XYZ and CIE Lab conversions
// (D65, 2° observer) and the ΔE76 color difference used to judge guesses.
// It has no dependencies on the game or the platform layer.
package colorspace

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit-per-channel sRGB color. It is a comparable value type.
type RGB struct {
	R, G, B uint8
}

// Lab is a CIE L*a*b* color relative to the D65 white point.
// L is in [0,100]; a and b are unbounded in intermediate math.
type Lab struct {
	L, A, B float64
}

// XYZ is a CIE 1931 tristimulus value with Y normalized to 1 for white.
type XYZ struct {
	X, Y, Z float64
}

// NewRGB builds an RGB from ints, clamping each channel to [0,255].
func NewRGB(r, g, b int) RGB {
	return RGB{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}
}

// Lab returns the CIE Lab coordinates of c.
func (c RGB) Lab() Lab {
	return RGBToLab(c)
}

// Hex formats c as #rrggbb.
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

// String implements fmt.Stringer.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// colorful converts c to a go-colorful color with channels in [0,1].
func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// ParseHex parses "#rrggbb" or "#rgb" (the leading # is optional).
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	col, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("colorspace: invalid hex color %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// String implements fmt.Stringer.
func (l Lab) String() string {
	return fmt.Sprintf("lab(%.2f, %.2f, %.2f)", l.L, l.A, l.B)
}

// Offset returns l shifted by the given deltas.
func (l Lab) Offset(dL, da, db float64) Lab {
	return Lab{L: l.L + dL, A: l.A + da, B: l.B + db}
}

// clampChannel restricts an int to the 8-bit channel range.
func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
