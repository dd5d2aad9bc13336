package wb

import "math"

// Rec.709 luma coefficients, duplicated here in float64: the solver and
// gain compensation run in double precision while the per-pixel pipeline
// stays in float32.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// Gain clamping and safety bounds.
const (
	MinGain = 0.05
	MaxGain = 50

	// Solver safety window: solutions whose gains land outside
	// [safeGainLo, safeGainHi] are halved before being returned.
	safeGainLo = 0.1
	safeGainHi = 10
)

// Model selects the temperature/tint-to-gain mapping.
type Model int

const (
	// ModelKelvin is the physically-based CIE daylight model.
	ModelKelvin Model = iota

	// ModelLegacy is the direct linear slider-to-gain formula retained
	// for parameter sets saved by older versions.
	ModelLegacy
)

// Gains is a per-channel linear multiplier triple.
type Gains struct {
	R float64
	G float64
	B float64
}

// Neutral is the identity gain set.
func Neutral() Gains { return Gains{R: 1, G: 1, B: 1} }

// TempTint is a solved or user-set temperature/tint slider pair, both in
// -100..100.
type TempTint struct {
	Temp float64
	Tint float64
}

// kelvinForTemp maps the -100..100 temperature slider onto the Kelvin
// axis exponentially around the D65 reference: +100 reaches 20000K, -100
// reaches 2000K. Positive slider values warm the image (the scene is
// treated as lit cooler than it was, so red gain rises).
func kelvinForTemp(temp float64) float64 {
	temp = clampSlider(temp)
	if temp >= 0 {
		return ReferenceKelvin * math.Pow(20000.0/ReferenceKelvin, temp/100)
	}
	return ReferenceKelvin * math.Pow(ReferenceKelvin/2000.0, temp/100)
}

// tintGains maps the -100..100 tint slider onto the green-magenta axis:
// positive tint suppresses green and lifts red/blue. The swing is about
// half a stop on green at full deflection, split logarithmically so the
// luminance compensation sees symmetric behavior.
func tintGains(tint float64) Gains {
	t := clampSlider(tint) / 100
	return Gains{
		R: math.Exp2(t * 0.125),
		G: math.Exp2(-t * 0.25),
		B: math.Exp2(t * 0.125),
	}
}

// ComputeGains combines base gains with the temperature/tint adjustment
// under the selected model, then luminance-compensates and clamps the
// result.
//
// The compensation divides all three gains by their Rec.709-weighted
// average, pinning the weighted mean to exactly 1.0. Without it a naive
// temperature model shifts overall brightness by up to ±15% across the
// slider range.
func ComputeGains(base Gains, tt TempTint, model Model) Gains {
	base = sanitizeGains(base)

	var g Gains
	switch model {
	case ModelLegacy:
		g = legacyGains(tt)
	default:
		g = kelvinGains(tt)
	}

	g = Gains{R: base.R * g.R, G: base.G * g.G, B: base.B * g.B}
	g = Compensate(g)
	return clampGains(g)
}

// kelvinGains computes the temperature gain as the ratio of the D65
// reference multiplier to the target-Kelvin multiplier, channel by
// channel, then folds in the tint gains.
func kelvinGains(tt TempTint) Gains {
	refR, refG, refB := KelvinToRGB(ReferenceKelvin)
	tgtR, tgtG, tgtB := KelvinToRGB(kelvinForTemp(tt.Temp))

	tint := tintGains(tt.Tint)
	return Gains{
		R: refR / tgtR * tint.R,
		G: refG / tgtG * tint.G,
		B: refB / tgtB * tint.B,
	}
}

// legacyGains is the pre-Kelvin linear formula: temperature slides red
// and blue in opposite directions, tint slides green. No physics, kept so
// old edits render identically.
func legacyGains(tt TempTint) Gains {
	temp := clampSlider(tt.Temp)
	tint := clampSlider(tt.Tint)
	return Gains{
		R: math.Max(1+temp/150, MinGain),
		G: math.Max(1-tint/200, MinGain),
		B: math.Max(1-temp/150, MinGain),
	}
}

// Compensate divides all gains by their Rec.709-weighted average so the
// weighted mean gain is exactly 1.0.
func Compensate(g Gains) Gains {
	lum := lumaR*g.R + lumaG*g.G + lumaB*g.B
	if lum <= 0 {
		return Neutral()
	}
	return Gains{R: g.R / lum, G: g.G / lum, B: g.B / lum}
}

// clampSlider bounds a slider value to -100..100, mapping non-finite
// input to 0.
func clampSlider(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < -100 {
		return -100
	}
	if v > 100 {
		return 100
	}
	return v
}

// sanitizeGains replaces non-finite or non-positive gains with 1.
func sanitizeGains(g Gains) Gains {
	fix := func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return 1
		}
		return v
	}
	return Gains{R: fix(g.R), G: fix(g.G), B: fix(g.B)}
}

// clampGains bounds each gain to [MinGain, MaxGain].
func clampGains(g Gains) Gains {
	c := func(v float64) float64 {
		if v < MinGain {
			return MinGain
		}
		if v > MaxGain {
			return MaxGain
		}
		return v
	}
	return Gains{R: c(g.R), G: c(g.G), B: c(g.B)}
}
