package imaging

import (
	"fmt"
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBAColor is an 8-bit RGBA quadruple as reported to tool callers.
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor is a color in HSL space, often more convenient than RGB when
// deciding which tolerance will catch the shades around a target.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult reports one sampled color in several representations:
// hex for quick reading, 8-bit RGBA for byte-level work, HSL for picking
// tolerances, and the normalized engine Color ready to drop into a
// ReplaceRequest.
type ColorResult struct {
	Hex        string    `json:"hex"`        // "#rrggbb" (alpha excluded)
	RGBA       RGBAColor `json:"rgba"`       // 8-bit components with alpha
	HSL        HSLColor  `json:"hsl"`        // HSL representation
	Normalized Color     `json:"normalized"` // engine color, channels in [0,1]
}

// SampleColor reads the pixel at (x, y).
//
// Coordinates are 0-based with the origin at the top-left corner. An error is
// returned when the point lies outside the bitmap or the bitmap itself fails
// validation. The hex and HSL representations are produced by go-colorful
// from the pixel's RGB channels; alpha is carried in RGBA and Normalized.
func SampleColor(b *Bitmap, x, y int) (*ColorResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, b.Width, b.Height)
	}

	i := b.PixOffset(x, y)
	return newColorResult(b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]), nil
}

// newColorResult assembles the multi-representation result for one pixel.
func newColorResult(r, g, b, a uint8) *ColorResult {
	cf := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := cf.Hsl()

	return &ColorResult{
		Hex:  cf.Hex(),
		RGBA: RGBAColor{R: r, G: g, B: b, A: a},
		HSL: HSLColor{
			H: int(math.Round(h)),
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
		Normalized: ColorFromBytes(r, g, b, a),
	}
}

// LabeledPoint is a pixel coordinate with an optional caller-chosen label.
type LabeledPoint struct {
	X     int    // X coordinate (0-based)
	Y     int    // Y coordinate (0-based)
	Label string // Optional descriptive label for this point
}

// LabeledColorResult pairs a sampled color with where it came from.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult contains samples for several points, in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti samples several coordinates in one call. If any point is
// out of bounds the whole call fails and no partial results are returned.
func SampleColorsMulti(b *Bitmap, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		c, err := SampleColor(b, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *c,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// Region is a rectangle within a bitmap: (X1, Y1) inclusive top-left,
// (X2, Y2) exclusive bottom-right.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// ColorFrequency is one entry of a dominant-color analysis.
type ColorFrequency struct {
	Hex        string    `json:"hex"`        // "#rrggbb" of the quantized color
	Percentage float64   `json:"percentage"` // share of analyzed pixels (0-100)
	RGBA       RGBAColor `json:"rgba"`       // quantized components, alpha always 255
}

// DominantColorsResult lists the most frequent colors, most frequent first.
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors returns the count most frequent colors in the bitmap, or in
// region when non-nil. A natural companion to recoloring: run it first to see
// which colors an image is built from, then aim a ReplaceRequest at one.
//
// # Quantization
//
// Similar shades are grouped by truncating each RGB channel to a multiple of
// 16 ((v/16)*16), so colors within one 16-step cell count as the same entry.
// Alpha does not take part in grouping and is reported as opaque.
func DominantColors(b *Bitmap, count int, region *Region) (*DominantColorsResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	x1, y1, x2, y2 := 0, 0, b.Width, b.Height
	if region != nil {
		x1, y1, x2, y2 = region.X1, region.Y1, region.X2, region.Y2
		if x1 < 0 || y1 < 0 || x2 > b.Width || y2 > b.Height || x1 >= x2 || y1 >= y2 {
			return nil, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds %dx%d", x1, y1, x2, y2, b.Width, b.Height)
		}
	}

	type rgbKey [3]uint8
	counts := make(map[rgbKey]int)
	totalPixels := 0

	for y := y1; y < y2; y++ {
		row := y * b.Stride
		for x := x1; x < x2; x++ {
			i := row + x*b.BytesPerPixel
			key := rgbKey{b.Pix[i] / 16 * 16, b.Pix[i+1] / 16 * 16, b.Pix[i+2] / 16 * 16}
			counts[key]++
			totalPixels++
		}
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for key, cnt := range counts {
		cf := colorful.Color{R: float64(key[0]) / 255, G: float64(key[1]) / 255, B: float64(key[2]) / 255}
		colors = append(colors, ColorFrequency{
			Hex:        cf.Hex(),
			Percentage: float64(cnt) / float64(totalPixels) * 100,
			RGBA:       RGBAColor{R: key[0], G: key[1], B: key[2], A: 255},
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}

	return &DominantColorsResult{Colors: colors}, nil
}
