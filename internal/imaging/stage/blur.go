package stage

import (
	"github.com/anthonynsimon/bild/blur"

	"github.com/NiftyTreeStudios/image-recolor-mcp/internal/imaging"
)

type GaussianBlurStage struct {
	Sigma float64
}

// Process applies a Gaussian blur with the configured Sigma
// Higher Sigma values produce a more pronounced blur; useful for softening
// the hard edges a tolerance-based recolor can leave behind
func (s *GaussianBlurStage) Process(b *imaging.Bitmap) error {
	blurred := blur.Gaussian(b.ToImage(), s.Sigma)
	*b = *imaging.FromImage(blurred)
	return nil
}
