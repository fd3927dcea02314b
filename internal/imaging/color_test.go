package imaging

import (
	"fmt"
	"math"
	"testing"
)

func TestColorFromBytes(t *testing.T) {
	c := ColorFromBytes(255, 128, 0, 255)

	if c.R != 1.0 {
		t.Errorf("R: got %v, want 1.0", c.R)
	}
	if c.G != 128.0/255 {
		t.Errorf("G: got %v, want %v", c.G, 128.0/255)
	}
	if c.B != 0 {
		t.Errorf("B: got %v, want 0", c.B)
	}
	if c.A != 1.0 {
		t.Errorf("A: got %v, want 1.0", c.A)
	}
}

func TestColor_Bytes_RoundTrip(t *testing.T) {
	// Every byte value must survive the normalize/quantize round trip; the
	// replacement color a caller specifies in bytes has to land byte-exact
	// in the output buffer.
	for v := 0; v < 256; v++ {
		c := ColorFromBytes(uint8(v), uint8(v), uint8(v), uint8(v))
		r, g, b, a := c.Bytes()
		if r != uint8(v) || g != uint8(v) || b != uint8(v) || a != uint8(v) {
			t.Fatalf("byte %d did not round-trip: got (%d,%d,%d,%d)", v, r, g, b, a)
		}
	}
}

func TestColor_Bytes_Rounding(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want uint8
	}{
		{"zero", 0, 0},
		{"one", 1, 255},
		{"half rounds up", 0.5, 128},
		{"just below half", 0.4999, 127},
		{"clamped negative", -0.5, 0},
		{"clamped above one", 1.5, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _, _ := Color{R: tt.in}.Bytes()
			if r != tt.want {
				t.Errorf("Bytes of %v: got %d, want %d", tt.in, r, tt.want)
			}
		})
	}
}

func TestColor_Hex(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  string
	}{
		{"red", Color{R: 1, A: 1}, "#ff0000"},
		{"white", Color{R: 1, G: 1, B: 1, A: 1}, "#ffffff"},
		{"black", Color{A: 1}, "#000000"},
		{"mid gray", Color{R: 0.5, G: 0.5, B: 0.5, A: 1}, "#808080"},
		{"out of range clamped", Color{R: 1.5, G: -0.2, B: 0, A: 1}, "#ff0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.color.Hex(); got != tt.want {
				t.Errorf("Hex: got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	// Wants are expressed in bytes; quantization makes the comparison
	// independent of sub-ulp differences in the parsed floats.
	tests := []struct {
		name       string
		input      string
		r, g, b, a uint8
	}{
		{"six digit", "#ff0000", 255, 0, 0, 255},
		{"six digit no hash", "00ff00", 0, 255, 0, 255},
		{"short form", "#f00", 255, 0, 0, 255},
		{"short form digits", "#789", 119, 136, 153, 255},
		{"uppercase", "#8040C0", 128, 64, 192, 255},
		{"with alpha", "#ff000080", 255, 0, 0, 128},
		{"opaque alpha", "#0000ffff", 0, 0, 255, 255},
		{"zero alpha", "#ffffff00", 255, 255, 255, 0},
		{"surrounding whitespace", "  #ff0000 ", 255, 0, 0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if err != nil {
				t.Fatalf("ParseHex(%q) failed: %v", tt.input, err)
			}
			r, g, b, a := got.Bytes()
			if r != tt.r || g != tt.g || b != tt.b || a != tt.a {
				t.Errorf("ParseHex(%q): got (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					tt.input, r, g, b, a, tt.r, tt.g, tt.b, tt.a)
			}
		})
	}
}

func TestParseHex_Invalid(t *testing.T) {
	inputs := []string{"", "#", "#12345", "#1234567", "nothex", "#gg0000", "#ff0000zz"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseHex(input); err == nil {
				t.Errorf("ParseHex(%q) should fail", input)
			}
		})
	}
}

func TestParseHex_HexRoundTrip(t *testing.T) {
	for _, s := range []string{"#ff0000", "#00ff00", "#0000ff", "#8040c0", "#ffffff", "#000000"} {
		c, err := ParseHex(s)
		if err != nil {
			t.Fatalf("ParseHex(%q) failed: %v", s, err)
		}
		if got := c.Hex(); got != s {
			t.Errorf("round trip of %s: got %s", s, got)
		}
	}
}

func TestParseHex_MatchesDecodedBytes(t *testing.T) {
	// A color parsed from a hex string must be channel-identical to the same
	// bytes decoded from a bitmap; a sub-ulp difference is enough to make
	// exact matching at tolerance zero miss every affected pixel.
	for v := 0; v < 256; v++ {
		b := uint8(v)
		hex := fmt.Sprintf("#%02x%02x%02x", b, b, b)
		parsed, err := ParseHex(hex)
		if err != nil {
			t.Fatalf("ParseHex(%q) failed: %v", hex, err)
		}
		decoded := ColorFromBytes(b, b, b, 255)
		if parsed != decoded {
			t.Fatalf("byte %d: parsed %.20v differs from decoded %.20v", v, parsed, decoded)
		}
		if !Matches(decoded, parsed, 0) {
			t.Fatalf("byte %d: decoded pixel does not match its own hex at tolerance 0", v)
		}
	}
}

func TestQuantizeChannel(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{0, 0},
		{1, 255},
		{0.5, 128},
		{1.0 / 255, 1},
		{254.0 / 255, 254},
		{math.Inf(1), 255},
		{-1, 0},
	}

	for _, tt := range tests {
		if got := quantizeChannel(tt.in); got != tt.want {
			t.Errorf("quantizeChannel(%v): got %d, want %d", tt.in, got, tt.want)
		}
	}
}
