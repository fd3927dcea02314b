package imaging

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/kettek/apng"
)

func TestToleranceSweep(t *testing.T) {
	src := newPatternBitmap(16, 16)
	req := ReplaceRequest{
		Target:      ColorFromBytes(255, 0, 0, 255),
		Replacement: ColorFromBytes(0, 0, 0, 255),
		Tolerance:   0.8,
	}

	frames, err := ToleranceSweep(src, req, 5)
	if err != nil {
		t.Fatalf("ToleranceSweep failed: %v", err)
	}

	if len(frames) != 5 {
		t.Fatalf("expected 5 frames, got %d", len(frames))
	}

	// First frame is the tolerance-0 pass, last the full request.
	exact, err := Recolor(src, ReplaceRequest{Target: req.Target, Replacement: req.Replacement, Tolerance: 0})
	if err != nil {
		t.Fatalf("Recolor failed: %v", err)
	}
	if !bytes.Equal(frames[0].Pix, exact.Pix) {
		t.Error("first frame does not match the tolerance-0 result")
	}

	full, err := Recolor(src, req)
	if err != nil {
		t.Fatalf("Recolor failed: %v", err)
	}
	if !bytes.Equal(frames[len(frames)-1].Pix, full.Pix) {
		t.Error("last frame does not match the full-tolerance result")
	}

	// A wider tolerance can only pull in more pixels, so the number of
	// changed pixels never shrinks from frame to frame.
	prev := -1
	for i, frame := range frames {
		d, err := Diff(src, frame)
		if err != nil {
			t.Fatalf("Diff on frame %d failed: %v", i, err)
		}
		if d.PixelsDifferent < prev {
			t.Errorf("frame %d changed %d pixels, fewer than the previous frame's %d",
				i, d.PixelsDifferent, prev)
		}
		prev = d.PixelsDifferent
	}
}

func TestToleranceSweep_TooFewSteps(t *testing.T) {
	src := newSolidBitmap(4, 4, 0, 0, 0, 255)

	for _, steps := range []int{1, 0, -3} {
		if _, err := ToleranceSweep(src, ReplaceRequest{}, steps); err == nil {
			t.Errorf("ToleranceSweep should fail with %d steps", steps)
		}
	}
}

func TestToleranceSweep_InvalidBitmap(t *testing.T) {
	src := NewBitmap(4, 4)
	src.Pix = src.Pix[:len(src.Pix)-1]

	_, err := ToleranceSweep(src, ReplaceRequest{Tolerance: 0.5}, 3)
	if !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("got error %v, want ErrInvalidBuffer", err)
	}
}

func TestAnimate(t *testing.T) {
	src := newPatternBitmap(8, 8)
	frames, err := ToleranceSweep(src, ReplaceRequest{
		Target:      ColorFromBytes(255, 0, 0, 255),
		Replacement: ColorFromBytes(0, 255, 255, 255),
		Tolerance:   1,
	}, 3)
	if err != nil {
		t.Fatalf("ToleranceSweep failed: %v", err)
	}

	out, err := Animate(frames, 0.25)
	if err != nil {
		t.Fatalf("Animate failed: %v", err)
	}

	pngSignature := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	if !bytes.HasPrefix(out, pngSignature) {
		t.Error("output does not start with the PNG signature")
	}
	if !bytes.Contains(out, []byte("acTL")) {
		t.Error("output has no animation control chunk")
	}
	if !bytes.Contains(out, []byte("fcTL")) {
		t.Error("output has no frame control chunk")
	}
}

func TestAnimate_FrameDelay(t *testing.T) {
	frames := []*Bitmap{
		newSolidBitmap(2, 2, 255, 0, 0, 255),
		newSolidBitmap(2, 2, 0, 0, 255, 255),
	}

	out, err := Animate(frames, 0.25)
	if err != nil {
		t.Fatalf("Animate failed: %v", err)
	}

	decoded, err := apng.DecodeAll(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decoding the animation failed: %v", err)
	}
	if len(decoded.Frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(decoded.Frames))
	}
	for i, f := range decoded.Frames {
		if f.DelayNumerator != 250 || f.DelayDenominator != 1000 {
			t.Errorf("frame %d delay: got %d/%d, want 250/1000",
				i, f.DelayNumerator, f.DelayDenominator)
		}
	}
}

func TestAnimate_DelayOutOfRange(t *testing.T) {
	// The delay numerator is a uint16 at millisecond resolution; anything a
	// float conversion cannot land in [0, 65535] must be rejected, not
	// silently wrapped.
	frames := []*Bitmap{newSolidBitmap(2, 2, 0, 0, 0, 255)}

	for _, delay := range []float64{-0.5, 66, math.Inf(1), math.NaN()} {
		if _, err := Animate(frames, delay); err == nil {
			t.Errorf("Animate should fail with delay %v", delay)
		}
	}
}

func TestAnimate_NoFrames(t *testing.T) {
	if _, err := Animate(nil, 0.1); err == nil {
		t.Error("Animate should fail with no frames")
	}
}

func TestAnimate_InvalidFrame(t *testing.T) {
	good := newSolidBitmap(4, 4, 1, 2, 3, 255)
	bad := NewBitmap(4, 4)
	bad.Pix = bad.Pix[:len(bad.Pix)-1]

	_, err := Animate([]*Bitmap{good, bad}, 0.1)
	if !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("got error %v, want ErrInvalidBuffer", err)
	}
}
