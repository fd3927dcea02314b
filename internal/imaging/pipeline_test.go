package imaging

import (
	"errors"
	"testing"
)

type stageFunc func(*Bitmap) error

func (f stageFunc) Process(b *Bitmap) error { return f(b) }

func TestPipeline_RunsStagesInOrder(t *testing.T) {
	b := newSolidBitmap(4, 4, 0, 0, 0, 255)

	var order []string
	first := stageFunc(func(bm *Bitmap) error {
		order = append(order, "first")
		setPixel(bm, 0, 0, 1, 0, 0, 255)
		return nil
	})
	second := stageFunc(func(bm *Bitmap) error {
		order = append(order, "second")
		if bm.Pix[0] != 1 {
			t.Error("second stage did not observe the first stage's write")
		}
		return nil
	})

	if err := b.Pipeline(first, second); err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("stage order: got %v, want [first second]", order)
	}
}

func TestPipeline_StopsOnError(t *testing.T) {
	b := newSolidBitmap(4, 4, 0, 0, 0, 255)

	boom := errors.New("boom")
	ran := false

	err := b.Pipeline(
		stageFunc(func(*Bitmap) error { return boom }),
		stageFunc(func(*Bitmap) error { ran = true; return nil }),
	)

	if !errors.Is(err, boom) {
		t.Fatalf("got error %v, want boom", err)
	}
	if ran {
		t.Error("pipeline ran a stage after a failure")
	}
}

func TestPipeline_ValidatesFirst(t *testing.T) {
	b := NewBitmap(4, 4)
	b.Pix = b.Pix[:len(b.Pix)-1]

	ran := false
	err := b.Pipeline(stageFunc(func(*Bitmap) error { ran = true; return nil }))

	if !errors.Is(err, ErrInvalidBuffer) {
		t.Fatalf("got error %v, want ErrInvalidBuffer", err)
	}
	if ran {
		t.Error("pipeline ran a stage on an invalid bitmap")
	}
}

func TestPipeline_NoStages(t *testing.T) {
	b := newSolidBitmap(2, 2, 5, 5, 5, 255)
	if err := b.Pipeline(); err != nil {
		t.Fatalf("empty pipeline failed: %v", err)
	}
}
