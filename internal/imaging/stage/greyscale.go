package stage

import (
	"github.com/NiftyTreeStudios/image-recolor-mcp/internal/imaging"
)

type GreyscaleStage struct{}

// Process converts the image to greyscale in place using BT.601 luma
// coefficients (0.299 R + 0.587 G + 0.114 B)
// The alpha channel is preserved as-is
func (s *GreyscaleStage) Process(b *imaging.Bitmap) error {
	for y := 0; y < b.Height; y++ {
		row := y * b.Stride
		for x := 0; x < b.Width; x++ {
			i := row + x*b.BytesPerPixel
			lum := uint8(0.299*float64(b.Pix[i]) + 0.587*float64(b.Pix[i+1]) + 0.114*float64(b.Pix[i+2]))
			b.Pix[i] = lum
			b.Pix[i+1] = lum
			b.Pix[i+2] = lum
		}
	}
	return nil
}
