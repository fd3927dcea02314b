package imaging

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is the engine's color vocabulary: four normalized channels in [0, 1],
// semantically a byte channel divided by 255. Alpha is straight, not
// premultiplied. Callers working with UI-toolkit or stdlib color types convert
// at the boundary; the engine never depends on another color representation.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// ColorFromBytes builds a Color from 8-bit channels.
func ColorFromBytes(r, g, b, a uint8) Color {
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// Bytes converts the color back to 8-bit channels.
//
// Channels are clamped to [0, 1] and converted with round-half-up
// (v*255 + 0.5). This is the package-wide quantization policy: a channel
// holding exactly n/255 always converts back to byte n, and 0.5 maps to 128.
func (c Color) Bytes() (r, g, b, a uint8) {
	return quantizeChannel(c.R), quantizeChannel(c.G), quantizeChannel(c.B), quantizeChannel(c.A)
}

// Hex formats the color as "#rrggbb". Alpha is not encoded; read it from
// the A field or the Bytes result.
func (c Color) Hex() string {
	return colorful.Color{R: clampUnit(c.R), G: clampUnit(c.G), B: clampUnit(c.B)}.Hex()
}

// ParseHex parses a CSS-style hex color.
//
// Accepted forms:
//   - "#RGB" and "#RRGGBB" for opaque colors (alpha = 1)
//   - "#RRGGBBAA" with an explicit alpha pair
//
// The leading "#" is optional and digits may be upper or lower case.
// The RGB portion is validated by go-colorful and reduced back to bytes; all
// four channels then flow through ColorFromBytes, so a color parsed from hex
// is channel-identical to the same bytes decoded from a bitmap and matches
// them at tolerance zero. The trailing alpha pair, when present, is split off
// first since colorful has no alpha notion. Lengths other than 3, 6, or 8
// digits are rejected up front; colorful's scanner alone would silently
// accept truncated strings.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	alpha := uint8(255)
	switch len(hex) {
	case 3, 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:8], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in hex color %q: %w", s, err)
		}
		alpha = uint8(a)
		hex = hex[:6]
	default:
		return Color{}, fmt.Errorf("invalid hex color %q: want RGB, RRGGBB, or RRGGBBAA digits", s)
	}

	parsed, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	r, g, b := parsed.RGB255()
	return ColorFromBytes(r, g, b, alpha), nil
}

// quantizeChannel applies the round-half-up byte conversion policy.
func quantizeChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// clampUnit restricts a value to [0, 1].
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
