package colormath

import (
	"math"
	"testing"
)

// TestRollOffIdentityBelowThreshold verifies inputs below the threshold
// pass through exactly.
func TestRollOffIdentityBelowThreshold(t *testing.T) {
	for i := 0; i <= 80; i++ {
		v := float32(i) / 100
		if got := HighlightRollOff(v); got != v {
			t.Errorf("HighlightRollOff(%f) = %f, want identity", v, got)
		}
	}
}

// TestRollOffContinuity verifies value, first and second derivative
// continuity at the threshold using central differences.
func TestRollOffContinuity(t *testing.T) {
	const thr = RollOffThreshold
	const h = 1e-3

	f := func(x float64) float64 {
		return float64(HighlightRollOff(float32(x)))
	}

	if got := f(thr); math.Abs(got-thr) > 1e-6 {
		t.Errorf("f(%g) = %f, want %g", thr, got, thr)
	}

	// First derivative just above the threshold should be ≈1 (it is
	// exactly 1 below it).
	d1 := (f(thr+2*h) - f(thr)) / (2 * h)
	if math.Abs(d1-1) > 0.01 {
		t.Errorf("f'(%g+) = %f, want ≈1", thr, d1)
	}

	// Second derivative at the seam should be ≈0.
	d2 := (f(thr+2*h) - 2*f(thr+h) + f(thr)) / (h * h)
	if math.Abs(d2) > 0.05 {
		t.Errorf("f''(%g+) = %f, want ≈0", thr, d2)
	}
}

// TestRollOffMonotonicBounded verifies the curve is non-decreasing and
// asymptotically below 1.0.
func TestRollOffMonotonicBounded(t *testing.T) {
	prev := float32(-1)
	for i := 0; i <= 2000; i++ {
		v := float32(i) / 500 // up to 4.0, well past the shoulder
		got := HighlightRollOff(v)
		if got < prev {
			t.Fatalf("not monotonic at %f: %f < %f", v, got, prev)
		}
		if got >= 1 {
			t.Fatalf("HighlightRollOff(%f) = %f, must stay below 1.0", v, got)
		}
		prev = got
	}
	if far := HighlightRollOff(100); far < 0.999 {
		t.Errorf("asymptote too low: HighlightRollOff(100) = %f", far)
	}
}

// TestRollOffRGBPreservesHue verifies proportional scaling of channels.
func TestRollOffRGBPreservesHue(t *testing.T) {
	r, g, b := RollOffRGB(1.2, 0.6, 0.3)
	if math.Abs(float64(r/g-2.0)) > 1e-5 || math.Abs(float64(g/b-2.0)) > 1e-5 {
		t.Errorf("channel ratios not preserved: %f %f %f", r, g, b)
	}
	// Below threshold: exact identity.
	r, g, b = RollOffRGB(0.5, 0.25, 0.75)
	if r != 0.5 || g != 0.25 || b != 0.75 {
		t.Errorf("identity below threshold violated: %f %f %f", r, g, b)
	}
}

// TestTonemapRange sanity-checks the tonemap curves stay in [0, 1].
func TestTonemapRange(t *testing.T) {
	for i := 0; i <= 100; i++ {
		v := float32(i) / 10 // 0..10
		for name, got := range map[string]float32{
			"reinhard": Reinhard(v),
			"extended": ReinhardExtended(v, 4),
			"filmic":   Filmic(v),
		} {
			if got < 0 || got > 1 {
				t.Errorf("%s(%f) = %f out of range", name, v, got)
			}
		}
	}
	// Extended Reinhard maps its white point to 1.0.
	if got := ReinhardExtended(4, 4); math.Abs(float64(got)-1) > 1e-5 {
		t.Errorf("ReinhardExtended(4, 4) = %f, want 1", got)
	}
}
