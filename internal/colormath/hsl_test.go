package colormath

import (
	"math"
	"testing"
)

// TestRGBHSLRoundTrip verifies RGB → HSL → RGB is lossless within float
// precision for a grid of colors.
func TestRGBHSLRoundTrip(t *testing.T) {
	maxErr := 0.0
	for ri := 0; ri <= 8; ri++ {
		for gi := 0; gi <= 8; gi++ {
			for bi := 0; bi <= 8; bi++ {
				r := float32(ri) / 8
				g := float32(gi) / 8
				b := float32(bi) / 8
				h, s, l := RGBToHSL(r, g, b)
				r2, g2, b2 := HSLToRGB(h, s, l)
				for _, d := range []float64{
					math.Abs(float64(r - r2)),
					math.Abs(float64(g - g2)),
					math.Abs(float64(b - b2)),
				} {
					if d > maxErr {
						maxErr = d
					}
					if d > 1e-4 {
						t.Fatalf("round trip (%f,%f,%f) → (%f,%f,%f) → (%f,%f,%f)",
							r, g, b, h, s, l, r2, g2, b2)
					}
				}
			}
		}
	}
	t.Logf("Max HSL round-trip error: %g", maxErr)
}

// TestHSLPrimaries checks hue values of the pure primaries.
func TestHSLPrimaries(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float32
		hue     float32
	}{
		{"red", 1, 0, 0, 0},
		{"yellow", 1, 1, 0, 60},
		{"green", 0, 1, 0, 120},
		{"cyan", 0, 1, 1, 180},
		{"blue", 0, 0, 1, 240},
		{"magenta", 1, 0, 1, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, _ := RGBToHSL(tt.r, tt.g, tt.b)
			if math.Abs(float64(h-tt.hue)) > 0.01 {
				t.Errorf("hue = %f, want %f", h, tt.hue)
			}
			if math.Abs(float64(s-1)) > 0.01 {
				t.Errorf("saturation = %f, want 1", s)
			}
		})
	}
}

// TestHueDistance verifies shortest-path angular distance.
func TestHueDistance(t *testing.T) {
	tests := []struct {
		a, b, want float32
	}{
		{0, 0, 0},
		{10, 350, 20},
		{350, 10, 20},
		{0, 180, 180},
		{-30, 30, 60},
		{330, 0, 30},
	}
	for _, tt := range tests {
		if got := HueDistance(tt.a, tt.b); math.Abs(float64(got-tt.want)) > 1e-4 {
			t.Errorf("HueDistance(%f, %f) = %f, want %f", tt.a, tt.b, got, tt.want)
		}
	}
}

// TestSmoothstep verifies edge behavior and midpoint value.
func TestSmoothstep(t *testing.T) {
	if got := Smoothstep(0, 1, 0.5); math.Abs(float64(got)-0.5) > 1e-6 {
		t.Errorf("Smoothstep midpoint = %f, want 0.5", got)
	}
	if Smoothstep(0.2, 0.8, 0.1) != 0 || Smoothstep(0.2, 0.8, 0.9) != 1 {
		t.Error("Smoothstep edges not clamped")
	}
	// Degenerate edge: hard step.
	if Smoothstep(0.5, 0.5, 0.4) != 0 || Smoothstep(0.5, 0.5, 0.6) != 1 {
		t.Error("degenerate Smoothstep should be a hard step")
	}
}
