package imaging

// Stage is a single transformation in an image processing pipeline. A stage
// mutates the bitmap it is given; implementations that produce a new buffer
// (blur, resample) swap it in before returning.
//
// Concrete stages live in the stage subpackage so that presets and the CLI
// can compose them without pulling their dependencies into this package.
type Stage interface {
	Process(b *Bitmap) error
}

// Pipeline runs stages against the bitmap in order, stopping at the first
// stage that returns an error. The bitmap is validated once before the first
// stage runs; a failed pipeline leaves the bitmap in whatever state the
// failing stage left it.
func (b *Bitmap) Pipeline(stages ...Stage) error {
	if err := b.Validate(); err != nil {
		return err
	}
	for _, stage := range stages {
		if err := stage.Process(b); err != nil {
			return err
		}
	}
	return nil
}
