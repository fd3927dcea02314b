package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// Sentinel errors returned by Bitmap validation. Callers should test for them
// with errors.Is, since they are usually wrapped with call-site context.
var (
	// ErrInvalidBuffer indicates that a bitmap's pixel buffer does not match
	// its declared geometry (length, dimensions, or stride).
	ErrInvalidBuffer = errors.New("pixel buffer does not match declared layout")

	// ErrUnsupportedLayout indicates a pixel layout other than 4-byte RGBA.
	ErrUnsupportedLayout = errors.New("unsupported pixel layout")
)

// bitmapBPP is the only pixel size the engine operates on: 8-bit R, G, B, A.
const bitmapBPP = 4

// Bitmap is a rectangular pixel grid stored as a flat byte buffer.
//
// Pixels are 8-bit RGBA in R, G, B, A byte order with straight (non-premultiplied)
// alpha. The pixel at (x, y) starts at Pix[y*Stride + x*BytesPerPixel]. Stride is
// the distance in bytes between vertically adjacent pixels and may exceed
// Width*BytesPerPixel when rows carry padding.
//
// # Ownership
//
// Operations in this package treat their input Bitmap as read-only and return
// freshly allocated outputs; a Bitmap handed to Recolor is never mutated.
// Pipeline stages are the exception: they rewrite the Bitmap they are given.
//
// # Validity
//
// A Bitmap is valid when Width and Height are positive, BytesPerPixel is 4,
// Stride >= Width*BytesPerPixel, and len(Pix) == Stride*Height. Operations
// validate before touching pixel data and report ErrInvalidBuffer or
// ErrUnsupportedLayout without side effects.
type Bitmap struct {
	// Width is the number of pixels per row.
	Width int

	// Height is the number of rows.
	Height int

	// Stride is the byte distance between vertically adjacent pixels.
	Stride int

	// BytesPerPixel is the byte size of one pixel. The engine requires 4.
	BytesPerPixel int

	// Pix holds the raw pixel bytes, Stride*Height long.
	Pix []uint8
}

// NewBitmap creates a zeroed, tightly packed bitmap (Stride == Width*4).
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{
		Width:         width,
		Height:        height,
		Stride:        width * bitmapBPP,
		BytesPerPixel: bitmapBPP,
		Pix:           make([]uint8, width*height*bitmapBPP),
	}
}

// FromImage converts any image.Image into a tightly packed Bitmap.
//
// The source is drawn through an image.NRGBA intermediate, so the resulting
// bytes carry straight alpha regardless of the source color model. The source
// image is not retained; the Bitmap owns its buffer.
func FromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)

	return &Bitmap{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Stride:        nrgba.Stride,
		BytesPerPixel: bitmapBPP,
		Pix:           nrgba.Pix,
	}
}

// ToImage wraps the bitmap as an *image.NRGBA without copying.
//
// The returned image shares the Pix buffer; mutating one mutates the other.
// Use Clone().ToImage() when an independent image is needed.
func (b *Bitmap) ToImage() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Stride,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Clone returns a deep copy sharing no memory with the receiver.
func (b *Bitmap) Clone() *Bitmap {
	out := *b
	out.Pix = make([]uint8, len(b.Pix))
	copy(out.Pix, b.Pix)
	return &out
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (b *Bitmap) PixOffset(x, y int) int {
	return y*b.Stride + x*b.BytesPerPixel
}

// ColorAt returns the pixel at (x, y) as a normalized Color.
// Out-of-range coordinates return the zero Color.
func (b *Bitmap) ColorAt(x, y int) Color {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return Color{}
	}
	i := b.PixOffset(x, y)
	return ColorFromBytes(b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3])
}

// Opaque reports whether every pixel has full alpha. Padding bytes between
// rows are not inspected.
func (b *Bitmap) Opaque() bool {
	for y := 0; y < b.Height; y++ {
		row := y * b.Stride
		for x := 0; x < b.Width; x++ {
			if b.Pix[row+x*b.BytesPerPixel+3] != 0xff {
				return false
			}
		}
	}
	return true
}

// Validate checks the bitmap's geometry against its buffer.
//
// Returns:
//   - ErrUnsupportedLayout (wrapped) if BytesPerPixel is not 4.
//   - ErrInvalidBuffer (wrapped) if dimensions are non-positive, the stride is
//     smaller than a packed row, or len(Pix) != Stride*Height.
//   - nil otherwise.
//
// Validation never inspects pixel contents, only geometry, so it is O(1).
func (b *Bitmap) Validate() error {
	if b == nil {
		return fmt.Errorf("nil bitmap: %w", ErrInvalidBuffer)
	}
	if b.BytesPerPixel != bitmapBPP {
		return fmt.Errorf("%d bytes per pixel: %w", b.BytesPerPixel, ErrUnsupportedLayout)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("dimensions %dx%d: %w", b.Width, b.Height, ErrInvalidBuffer)
	}
	if b.Stride < b.Width*b.BytesPerPixel {
		return fmt.Errorf("stride %d below packed row size %d: %w", b.Stride, b.Width*b.BytesPerPixel, ErrInvalidBuffer)
	}
	if len(b.Pix) != b.Stride*b.Height {
		return fmt.Errorf("buffer length %d, layout requires %d: %w", len(b.Pix), b.Stride*b.Height, ErrInvalidBuffer)
	}
	return nil
}
