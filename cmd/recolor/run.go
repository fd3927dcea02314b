package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/NiftyTreeStudios/image-recolor-mcp/internal/imaging"
	"github.com/NiftyTreeStudios/image-recolor-mcp/internal/imaging/stage"
	"github.com/NiftyTreeStudios/image-recolor-mcp/internal/preset"
)

type applyOptions struct {
	input       string
	output      string
	target      string
	replacement string
	tolerance   float64
	blurSigma   float64
	greyscale   bool
	resample    bool
}

func runApply(opts applyOptions) error {
	if opts.input == "" || opts.output == "" {
		return errors.New("--input and --output are required")
	}
	if opts.target == "" || opts.replacement == "" {
		return errors.New("--target and --replacement are required")
	}

	target, err := imaging.ParseHex(opts.target)
	if err != nil {
		return fmt.Errorf("invalid target color: %w", err)
	}
	replacement, err := imaging.ParseHex(opts.replacement)
	if err != nil {
		return fmt.Errorf("invalid replacement color: %w", err)
	}

	stages := []imaging.Stage{
		&stage.RecolorStage{Request: imaging.ReplaceRequest{
			Target:      target,
			Replacement: replacement,
			Tolerance:   opts.tolerance,
		}},
	}
	if opts.blurSigma > 0 {
		stages = append(stages, &stage.GaussianBlurStage{Sigma: opts.blurSigma})
	}
	if opts.greyscale {
		stages = append(stages, &stage.GreyscaleStage{})
	}
	if opts.resample {
		stages = append(stages, &stage.ResampleStage{})
	}

	b, err := loadBitmap(opts.input)
	if err != nil {
		return err
	}
	if err := b.Pipeline(stages...); err != nil {
		return err
	}

	return saveBitmap(opts.output, b)
}

type presetOptions struct {
	input  string
	output string
	config string
}

func runPreset(opts presetOptions) error {
	if opts.input == "" || opts.output == "" {
		return errors.New("--input and --output are required")
	}
	if opts.config == "" {
		return errors.New("--config is required")
	}

	p, err := preset.Load(opts.config)
	if err != nil {
		return err
	}
	stages, err := p.Build()
	if err != nil {
		return err
	}

	b, err := loadBitmap(opts.input)
	if err != nil {
		return err
	}
	if err := b.Pipeline(stages...); err != nil {
		return err
	}

	return saveBitmap(opts.output, b)
}

type sweepOptions struct {
	input       string
	output      string
	target      string
	replacement string
	tolerance   float64
	frames      int
	delay       float64
}

func runSweep(opts sweepOptions) error {
	if opts.input == "" || opts.output == "" {
		return errors.New("--input and --output are required")
	}
	if opts.target == "" || opts.replacement == "" {
		return errors.New("--target and --replacement are required")
	}

	target, err := imaging.ParseHex(opts.target)
	if err != nil {
		return fmt.Errorf("invalid target color: %w", err)
	}
	replacement, err := imaging.ParseHex(opts.replacement)
	if err != nil {
		return fmt.Errorf("invalid replacement color: %w", err)
	}

	b, err := loadBitmap(opts.input)
	if err != nil {
		return err
	}

	frames, err := imaging.ToleranceSweep(b, imaging.ReplaceRequest{
		Target:      target,
		Replacement: replacement,
		Tolerance:   opts.tolerance,
	}, opts.frames)
	if err != nil {
		return err
	}

	data, err := imaging.Animate(frames, opts.delay)
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write animation: %w", err)
	}
	return nil
}

// loadBitmap decodes an image file into the engine layout.
func loadBitmap(path string) (*imaging.Bitmap, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return imaging.FromImage(img), nil
}

// saveBitmap writes a bitmap out as PNG.
func saveBitmap(path string, b *imaging.Bitmap) error {
	if err := imgio.Save(path, b.ToImage(), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
