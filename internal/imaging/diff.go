package imaging

import (
	"fmt"
	"math"
)

// DiffResult contains pixel comparison information for two bitmaps.
type DiffResult struct {
	// PixelsDifferent is the number of pixels whose RGBA bytes are not
	// identical in both bitmaps.
	PixelsDifferent int `json:"pixels_different"`

	// TotalPixels is the number of pixels compared (width * height).
	TotalPixels int `json:"total_pixels"`

	// SimilarityScore is 1 - PixelsDifferent/TotalPixels, rounded to three
	// decimal places. 1.0 means byte-identical pixel data.
	SimilarityScore float64 `json:"similarity_score"`

	// MeanChannelDelta is the average absolute per-channel difference across
	// all pixels and all four channels, in 8-bit steps, rounded to two
	// decimal places.
	MeanChannelDelta float64 `json:"mean_channel_delta"`
}

// Diff compares two bitmaps pixel by pixel.
//
// The comparison is exact: a pixel counts as different if any of its four
// channel bytes differs, with no tolerance applied. Comparing a bitmap
// against its recolored output therefore reports exactly how many pixels the
// replacement changed. The two bitmaps may have different strides; only pixel
// data is compared, never padding.
//
// Returns an error if either bitmap fails validation or the dimensions do
// not match.
func Diff(a, b *Bitmap) (*DiffResult, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("first bitmap: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("second bitmap: %w", err)
	}
	if a.Width != b.Width || a.Height != b.Height {
		return nil, fmt.Errorf("dimension mismatch: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}

	totalPixels := a.Width * a.Height
	pixelsDifferent := 0
	var totalDelta float64

	for y := 0; y < a.Height; y++ {
		rowA := y * a.Stride
		rowB := y * b.Stride
		for x := 0; x < a.Width; x++ {
			ia := rowA + x*a.BytesPerPixel
			ib := rowB + x*b.BytesPerPixel

			delta := absDiff(a.Pix[ia], b.Pix[ib]) +
				absDiff(a.Pix[ia+1], b.Pix[ib+1]) +
				absDiff(a.Pix[ia+2], b.Pix[ib+2]) +
				absDiff(a.Pix[ia+3], b.Pix[ib+3])

			if delta != 0 {
				pixelsDifferent++
			}
			totalDelta += float64(delta) / 4.0
		}
	}

	similarity := 1.0 - float64(pixelsDifferent)/float64(totalPixels)
	meanDelta := totalDelta / float64(totalPixels)

	return &DiffResult{
		PixelsDifferent:  pixelsDifferent,
		TotalPixels:      totalPixels,
		SimilarityScore:  math.Round(similarity*1000) / 1000,
		MeanChannelDelta: math.Round(meanDelta*100) / 100,
	}, nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
