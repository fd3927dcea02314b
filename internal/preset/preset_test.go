package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NiftyTreeStudios/image-recolor-mcp/internal/imaging"
	"github.com/NiftyTreeStudios/image-recolor-mcp/internal/imaging/stage"
)

const samplePreset = `
name: strip-background
stages:
  - type: recolor
    params:
      target: "#ffffff"
      replacement: "#00000000"
      tolerance: 0.1
  - type: blur
    params:
      sigma: 1.5
  - type: greyscale
  - type: resample
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(samplePreset))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if p.Name != "strip-background" {
		t.Errorf("Name: got %s, want strip-background", p.Name)
	}
	if len(p.Stages) != 4 {
		t.Fatalf("expected 4 stages, got %d", len(p.Stages))
	}
	if p.Stages[0].Type != "recolor" || p.Stages[1].Type != "blur" {
		t.Errorf("stage types: got %s, %s", p.Stages[0].Type, p.Stages[1].Type)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "stages: ["},
		{"no stages", "name: empty"},
		{"empty stage list", "stages: []"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("Parse should fail")
			}
		})
	}
}

func TestPreset_Build(t *testing.T) {
	p, err := Parse([]byte(samplePreset))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	stages, err := p.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(stages) != 4 {
		t.Fatalf("expected 4 stages, got %d", len(stages))
	}

	rs, ok := stages[0].(*stage.RecolorStage)
	if !ok {
		t.Fatalf("stage 0: got %T, want *stage.RecolorStage", stages[0])
	}
	if rs.Request.Tolerance != 0.1 {
		t.Errorf("tolerance: got %v, want 0.1", rs.Request.Tolerance)
	}
	wr, wg, wb, wa := rs.Request.Target.Bytes()
	if wr != 255 || wg != 255 || wb != 255 || wa != 255 {
		t.Errorf("target: got (%d,%d,%d,%d), want white", wr, wg, wb, wa)
	}
	_, _, _, ra := rs.Request.Replacement.Bytes()
	if ra != 0 {
		t.Errorf("replacement alpha: got %d, want 0", ra)
	}

	bs, ok := stages[1].(*stage.GaussianBlurStage)
	if !ok {
		t.Fatalf("stage 1: got %T, want *stage.GaussianBlurStage", stages[1])
	}
	if bs.Sigma != 1.5 {
		t.Errorf("sigma: got %v, want 1.5", bs.Sigma)
	}

	if _, ok := stages[2].(*stage.GreyscaleStage); !ok {
		t.Errorf("stage 2: got %T, want *stage.GreyscaleStage", stages[2])
	}
	if _, ok := stages[3].(*stage.ResampleStage); !ok {
		t.Errorf("stage 3: got %T, want *stage.ResampleStage", stages[3])
	}
}

func TestPreset_Build_DefaultTolerance(t *testing.T) {
	p, err := Parse([]byte(`
stages:
  - type: recolor
    params:
      target: "#ff0000"
      replacement: "#0000ff"
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	stages, err := p.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	rs := stages[0].(*stage.RecolorStage)
	if rs.Request.Tolerance != imaging.DefaultTolerance {
		t.Errorf("tolerance: got %v, want the default %v", rs.Request.Tolerance, imaging.DefaultTolerance)
	}
}

func TestPreset_Build_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown type", "stages:\n  - type: sharpen"},
		{"recolor missing colors", "stages:\n  - type: recolor"},
		{"recolor bad hex", "stages:\n  - type: recolor\n    params:\n      target: nothex\n      replacement: \"#fff\""},
		{"blur missing sigma", "stages:\n  - type: blur"},
		{"blur negative sigma", "stages:\n  - type: blur\n    params:\n      sigma: -2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.data))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if _, err := p.Build(); err == nil {
				t.Error("Build should fail")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	if err := os.WriteFile(path, []byte(samplePreset), 0o644); err != nil {
		t.Fatalf("failed to write preset file: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(p.Stages) != 4 {
		t.Errorf("expected 4 stages, got %d", len(p.Stages))
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load("/nonexistent/preset.yaml"); err == nil {
		t.Error("Load should fail for a missing file")
	}
}

func TestPreset_EndToEnd(t *testing.T) {
	// Parse, build, and run a recolor preset against a bitmap.
	p, err := Parse([]byte(`
stages:
  - type: recolor
    params:
      target: "#ff0000"
      replacement: "#0000ff"
      tolerance: 0
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	stages, err := p.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	b := imaging.NewBitmap(2, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			i := b.PixOffset(x, y)
			b.Pix[i], b.Pix[i+3] = 255, 255
		}
	}

	if err := b.Pipeline(stages...); err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}

	i := b.PixOffset(1, 1)
	if b.Pix[i] != 0 || b.Pix[i+2] != 255 {
		t.Errorf("pixel after preset: got (%d,%d,%d,%d), want blue",
			b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3])
	}
}
