package colormath

import "github.com/chewxy/math32"

// sRGBToLinearLUT provides O(1) sRGB byte → linear float32 conversion.
// Pre-computed 256 entries, 1KB memory cost.
var sRGBToLinearLUT [256]float32

// linearToSRGBLUT provides O(1) linear float32 → sRGB byte conversion.
// 4096 entries give 12-bit precision, more than enough for 8-bit output.
var linearToSRGBLUT [4096]uint8

func init() {
	for i := 0; i < 256; i++ {
		sRGBToLinearLUT[i] = SRGBToLinear(float32(i) / 255.0)
	}
	for i := 0; i < 4096; i++ {
		s := LinearToSRGB(float32(i) / 4095.0)
		linearToSRGBLUT[i] = uint8(Clamp01(s)*255.0 + 0.5)
	}
}

// SRGBToLinear converts an sRGB component to linear light (EOTF).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4).
// Input and output are in [0, 1].
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math32.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a linear component to sRGB (OETF).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055.
// Input and output are in [0, 1].
func LinearToSRGB(l float32) float32 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math32.Pow(l, 1.0/2.4) - 0.055
}

// SRGBToLinearFast converts an sRGB byte to linear float32 via lookup table.
// ~20x faster than the math32.Pow path; used by the integer entry points.
func SRGBToLinearFast(s uint8) float32 {
	return sRGBToLinearLUT[s]
}

// LinearToSRGBFast converts linear float32 to an sRGB byte via lookup table.
// Input is clamped to [0, 1].
func LinearToSRGBFast(l float32) uint8 {
	idx := int(Clamp01(l)*4095.0 + 0.5)
	if idx > 4095 {
		idx = 4095
	}
	return linearToSRGBLUT[idx]
}

// Gamma applies a simple power-law gamma to a normalized component.
// Non-positive gamma values are treated as identity (gamma 1.0).
func Gamma(v, gamma float32) float32 {
	if gamma <= 0 || gamma == 1 {
		return v
	}
	return math32.Pow(Clamp01(v), 1.0/gamma)
}
