package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// CropResult contains the cropped image data
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Crop extracts a rectangular region from a bitmap. Coordinates are 0-based;
// (x1, y1) is inclusive and (x2, y2) exclusive. A scale other than 1.0
// resizes the cropped region with Lanczos resampling.
func Crop(b *Bitmap, x1, y1, x2, y2 int, scale float64) (*CropResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if x1 < 0 || y1 < 0 || x2 > b.Width || y2 > b.Height {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds %dx%d",
			x1, y1, x2, y2, b.Width, b.Height)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped := imaging.Crop(b.ToImage(), image.Rect(x1, y1, x2, y2))

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// CropQuadrant extracts a named region from a bitmap
func CropQuadrant(b *Bitmap, region string, scale float64) (*CropResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	x1, y1, x2, y2, err := quadrantRect(b.Width, b.Height, region)
	if err != nil {
		return nil, err
	}
	return Crop(b, x1, y1, x2, y2, scale)
}

// quadrantRect maps a region name to crop coordinates within a w x h image.
func quadrantRect(w, h int, region string) (x1, y1, x2, y2 int, err error) {
	midX := w / 2
	midY := h / 2

	switch region {
	case "top-left":
		return 0, 0, midX, midY, nil
	case "top-right":
		return midX, 0, w, midY, nil
	case "bottom-left":
		return 0, midY, midX, h, nil
	case "bottom-right":
		return midX, midY, w, h, nil
	case "top-half":
		return 0, 0, w, midY, nil
	case "bottom-half":
		return 0, midY, w, h, nil
	case "left-half":
		return 0, 0, midX, h, nil
	case "right-half":
		return midX, 0, w, h, nil
	case "center":
		// Center 50% of the image
		qW := w / 4
		qH := h / 4
		return qW, qH, w - qW, h - qH, nil
	default:
		return 0, 0, 0, 0, fmt.Errorf("unknown region: %s", region)
	}
}
