package stage

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/NiftyTreeStudios/image-recolor-mcp/internal/imaging"
)

type ResampleStage struct{}

// Process applies a same-size Catmull-Rom resampling pass to smooth the image
// This reduces stair-step artifacts introduced by stages such as recoloring
func (s *ResampleStage) Process(b *imaging.Bitmap) error {
	bounds := image.Rect(0, 0, b.Width, b.Height)
	smoothed := image.NewNRGBA(bounds)
	draw.CatmullRom.Scale(smoothed, bounds, b.ToImage(), bounds, draw.Over, nil)
	*b = *imaging.FromImage(smoothed)
	return nil
}
