package colormath

import (
	"math"
	"testing"
)

// TestSRGBLUTAccuracy verifies the fast LUT path matches the pow reference.
func TestSRGBLUTAccuracy(t *testing.T) {
	maxErr := float32(0)
	for i := 0; i < 256; i++ {
		fast := SRGBToLinearFast(uint8(i))
		slow := SRGBToLinear(float32(i) / 255.0)
		diff := float32(math.Abs(float64(fast - slow)))
		if diff > maxErr {
			maxErr = diff
		}
		if diff > 0.0001 {
			t.Errorf("sRGB %d: fast=%f, slow=%f, error=%f", i, fast, slow, diff)
		}
	}
	t.Logf("Max sRGB→Linear LUT error: %f", maxErr)
}

// TestSRGBRoundTrip verifies sRGB → linear → sRGB preserves byte values.
func TestSRGBRoundTrip(t *testing.T) {
	maxErr := 0
	for i := 0; i < 256; i++ {
		got := LinearToSRGBFast(SRGBToLinearFast(uint8(i)))
		diff := int(got) - i
		if diff < 0 {
			diff = -diff
		}
		if diff > maxErr {
			maxErr = diff
		}
		if diff > 1 {
			t.Errorf("round trip %d → %d (error=%d)", i, got, diff)
		}
	}
	t.Logf("Max round-trip error: %d levels", maxErr)
}

// TestTransferBreakpoints checks the linear-segment boundaries of the
// sRGB transfer functions are continuous.
func TestTransferBreakpoints(t *testing.T) {
	const eps = 1e-4
	lo := SRGBToLinear(0.04045 - eps)
	hi := SRGBToLinear(0.04045 + eps)
	if math.Abs(float64(hi-lo)) > 1e-3 {
		t.Errorf("EOTF discontinuity at 0.04045: %f vs %f", lo, hi)
	}
	lo = LinearToSRGB(0.0031308 - 1e-6)
	hi = LinearToSRGB(0.0031308 + 1e-6)
	if math.Abs(float64(hi-lo)) > 1e-3 {
		t.Errorf("OETF discontinuity at 0.0031308: %f vs %f", lo, hi)
	}
}

// TestGammaIdentity verifies gamma 1.0 and non-positive gammas pass through.
func TestGammaIdentity(t *testing.T) {
	for _, gamma := range []float32{1, 0, -2} {
		for i := 0; i <= 10; i++ {
			v := float32(i) / 10
			if got := Gamma(v, gamma); got != v {
				t.Errorf("Gamma(%f, %f) = %f, want identity", v, gamma, got)
			}
		}
	}
}
