package stage

import (
	"github.com/NiftyTreeStudios/image-recolor-mcp/internal/imaging"
)

type RecolorStage struct {
	Request imaging.ReplaceRequest
}

// Process replaces every pixel within the request's tolerance of the target
// color with the replacement color, leaving all other pixels untouched
func (s *RecolorStage) Process(b *imaging.Bitmap) error {
	out, err := imaging.Recolor(b, s.Request)
	if err != nil {
		return err
	}
	*b = *out
	return nil
}
