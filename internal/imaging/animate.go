package imaging

import (
	"bytes"
	"fmt"
	"math"

	"github.com/kettek/apng"
)

// ToleranceSweep renders the same replacement at a ladder of tolerances,
// evenly spaced from 0 up to the request's clamped tolerance. Stepping
// through the returned frames shows which pixels each widening of the
// tolerance pulls in. The first frame replaces exact matches only; the last
// is the full request.
func ToleranceSweep(src *Bitmap, req ReplaceRequest, steps int) ([]*Bitmap, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("tolerance sweep: %w", err)
	}
	if steps < 2 {
		return nil, fmt.Errorf("tolerance sweep: need at least 2 steps, got %d", steps)
	}

	maxTol := clampUnit(req.Tolerance)
	frames := make([]*Bitmap, steps)
	for i := range frames {
		stepReq := req
		stepReq.Tolerance = maxTol * float64(i) / float64(steps-1)
		frame, err := Recolor(src, stepReq)
		if err != nil {
			return nil, err
		}
		frames[i] = frame
	}
	return frames, nil
}

// Animate encodes frames as an animated PNG that loops forever. frameDelay
// is the display time per frame in seconds, rounded to whole milliseconds;
// it must lie in [0, 65.535], the range a millisecond-resolution APNG frame
// delay can express.
func Animate(frames []*Bitmap, frameDelay float64) ([]byte, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("animate: no frames")
	}

	delayMS := math.Round(frameDelay * 1000)
	if math.IsNaN(delayMS) || delayMS < 0 || delayMS > math.MaxUint16 {
		return nil, fmt.Errorf("animate: frame delay must be between 0 and %gs, got %g",
			math.MaxUint16/1000.0, frameDelay)
	}

	a := apng.APNG{
		Frames:    make([]apng.Frame, len(frames)),
		LoopCount: 0,
	}

	for i, frame := range frames {
		if err := frame.Validate(); err != nil {
			return nil, fmt.Errorf("animate: frame %d: %w", i, err)
		}
		a.Frames[i] = apng.Frame{
			Image:            frame.ToImage(),
			DelayNumerator:   uint16(delayMS),
			DelayDenominator: 1000,
		}
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		return nil, fmt.Errorf("animate: %w", err)
	}

	return buf.Bytes(), nil
}
