package imaging

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// DefaultTolerance is the matching tolerance used when a caller does not
// specify one.
const DefaultTolerance = 0.5

// ReplaceRequest holds the parameters of one color replacement pass.
//
// Target is the color to search for, Replacement is written over every
// matching pixel (alpha included), and Tolerance is the maximum per-channel
// difference for a pixel to count as a match. Tolerance is a fraction in
// [0, 1]; values outside that range are clamped by Recolor.
type ReplaceRequest struct {
	Target      Color
	Replacement Color
	Tolerance   float64
}

// Matches reports whether candidate is within tolerance of target.
//
// The test is per-channel: |candidate - target| <= tolerance must hold for
// red, green, blue, and alpha independently, and all four must pass. This is
// a Chebyshev-style bound, not a Euclidean distance: a pixel one full channel
// away fails even when the other three are exact.
//
// At tolerance 0 only exact channel equality matches; at tolerance 1 every
// color matches, since no normalized channel pair can differ by more than 1.
// The predicate is pure and carries no state between evaluations.
func Matches(candidate, target Color, tolerance float64) bool {
	return math.Abs(candidate.R-target.R) <= tolerance &&
		math.Abs(candidate.G-target.G) <= tolerance &&
		math.Abs(candidate.B-target.B) <= tolerance &&
		math.Abs(candidate.A-target.A) <= tolerance
}

// Recolor returns a copy of src in which every pixel matching req.Target
// (per Matches, at req.Tolerance) is overwritten with req.Replacement.
//
// Parameters:
//   - src: the source bitmap. Read-only; it is never mutated, whatever the
//     outcome.
//   - req: target, replacement, and tolerance. Tolerance is clamped to [0, 1];
//     replacement channels are converted to bytes with the round-half-up
//     policy documented on Color.Bytes.
//
// Returns:
//   - *Bitmap: a fresh buffer with identical Width, Height, Stride, and
//     BytesPerPixel. Ownership transfers to the caller.
//   - error: ErrInvalidBuffer or ErrUnsupportedLayout (wrapped) when src fails
//     validation. Validation runs before any allocation, so an error means
//     nothing was computed and nothing external was touched.
//
// # Addressing
//
// Pixels are addressed row by row: the pixel at (x, y) lives at
// y*Stride + x*4. Stride, not Width*4, positions each row, so bitmaps with
// row padding are handled correctly and their padding bytes are carried into
// the output unchanged.
//
// # Concurrency
//
// Rows are partitioned into contiguous ranges and processed on one goroutine
// per range, with a full join before Recolor returns. Each pixel's decision
// depends only on its own four source bytes and the shared read-only request,
// and each pixel writes only its own four output bytes, so the pass needs no
// locks. Completion order between pixels is unspecified; the only guarantee
// is that every pixel has been processed exactly once by the time the result
// is returned. There are no partial results: the call either returns a fully
// populated bitmap or an error before any work starts.
func Recolor(src *Bitmap, req ReplaceRequest) (*Bitmap, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("recolor: %w", err)
	}

	tolerance := clampUnit(req.Tolerance)
	rr, rg, rb, ra := req.Replacement.Bytes()

	// The output starts as a byte copy of the source, so unmatched pixels and
	// row padding are already in place; the pass below only writes matches.
	out := src.Clone()

	parallel.Line(src.Height, func(start, end int) {
		for y := start; y < end; y++ {
			row := y * src.Stride
			for x := 0; x < src.Width; x++ {
				i := row + x*src.BytesPerPixel
				candidate := ColorFromBytes(src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3])
				if Matches(candidate, req.Target, tolerance) {
					out.Pix[i] = rr
					out.Pix[i+1] = rg
					out.Pix[i+2] = rb
					out.Pix[i+3] = ra
				}
			}
		}
	})

	return out, nil
}
