// Package colormath provides the shared per-pixel math primitives used by
// every stage of the rendering pipeline: clamping, interpolation, Rec.709
// luminance, transfer functions, tonemap curves and the highlight roll-off.
//
// All hot-path functions operate on normalized float32 components in [0, 1].
// The same constants exported here are injected into the generated fragment
// shader source, so the CPU pipeline and the GPU pipeline cannot drift apart
// on a constant value.
//
// References:
//   - Rec. ITU-R BT.709-6, §3 (luma coefficients)
//   - sRGB specification: https://www.w3.org/Graphics/Color/sRGB
package colormath

// Rec.709 luma coefficients. Shared with the white-balance luminance
// compensation and the split-tone zone weighting.
const (
	LumaR = 0.2126
	LumaG = 0.7152
	LumaB = 0.0722
)

// Pipeline constants shared between the CPU stages and the shader generator.
const (
	// ContrastPivot is the perceptual mid-gray the contrast stage pivots
	// around. 0.46 rather than 0.5: mid-gray in gamma-encoded sRGB sits
	// slightly below the arithmetic middle.
	ContrastPivot = 0.46

	// RollOffThreshold is the input level above which the tanh highlight
	// compressor engages. Below it the stage is an exact identity.
	RollOffThreshold = 0.8

	// ExposureHalfRange divides the exposure slider: ±100 spans ±2
	// stops (multiplier 2^(exposure/50)).
	ExposureHalfRange = 50

	// WindowScale converts the blacks/whites sliders to window
	// endpoints: blackPoint = -blacks*0.002, whitePoint = 1-whites*0.002.
	WindowScale = 0.002

	// ShadowHighlightStrength scales the shadows/highlights sliders to
	// the Bernstein lift factor: factor = slider/100 * 0.25.
	ShadowHighlightStrength = 0.25

	// LogInversionRange is the density span, in decades, that the
	// log-compressed negative-to-positive inversion maps onto [0, 1].
	LogInversionRange = 3.0
)

// Luminance709 returns the Rec.709 luminance of a linear RGB triple.
// Formula: 0.2126*r + 0.7152*g + 0.0722*b.
func Luminance709(r, g, b float32) float32 {
	return LumaR*r + LumaG*g + LumaB*b
}

// Saturate scales a pixel's chroma around its Rec.709 luminance.
// factor 0 is grayscale, 1 is identity, 2 doubles the distance from gray.
func Saturate(r, g, b, factor float32) (float32, float32, float32) {
	l := Luminance709(r, g, b)
	return Clamp01(Lerp(l, r, factor)),
		Clamp01(Lerp(l, g, factor)),
		Clamp01(Lerp(l, b, factor))
}

// Clamp01 clamps v to [0, 1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp clamps v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Smoothstep is the Hermite easing function t²(3-2t) remapped over
// [edge0, edge1]. It is C¹-continuous at both edges, which is what keeps
// the film-curve segment blends and split-tone zone transitions free of
// visible slope kinks.
//
// Degenerate edges (edge1 <= edge0) return a hard step, matching GLSL.
func Smoothstep(edge0, edge1, v float32) float32 {
	if edge1 <= edge0 {
		if v < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp01((v - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// Min3 returns the minimum of three float32 values.
func Min3(a, b, c float32) float32 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// Max3 returns the maximum of three float32 values.
func Max3(a, b, c float32) float32 {
	if a > b {
		if a > c {
			return a
		}
		return c
	}
	if b > c {
		return b
	}
	return c
}
