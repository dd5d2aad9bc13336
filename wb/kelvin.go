// Package wb implements the white-balance solver: a physically-based
// Kelvin/CIE-daylight illuminant model, a legacy linear model kept for
// backward compatibility, and a Newton-Raphson auto solver that infers
// temperature and tint from a sampled neutral patch.
//
// All models are luminance-compensated: the Rec.709-weighted average of
// the three final gains is exactly 1.0, so changing white balance never
// drifts overall image brightness.
//
// References:
//   - CIE 015:2004 §3.2.2, daylight illuminant chromaticity polynomial
//   - Krystek, "An algorithm to calculate correlated colour temperature"
//     (Planckian locus approximation below 4000K)
//   - IEC 61966-2-1 (sRGB D65 primaries and XYZ matrix)
package wb

import "math"

// Kelvin model constants.
const (
	// ReferenceKelvin is the neutral temperature: D65.
	ReferenceKelvin = 6500

	// daylightSplit is where the CIE polynomial switches coefficient
	// sets, and planckBlendLo/Hi bound the 500K Hermite window centered
	// on the 4000K seam between the Planckian and daylight models.
	daylightSplit = 7000
	planckBlendLo = 3750
	planckBlendHi = 4250

	// c2Rescale converts the nominal CCT to the radiation-constant scale
	// the daylight polynomial was fitted against (ITS-90 revision of c2).
	c2Rescale = 1.4388 / 1.4380

	minKelvin = 1667 // Krystek approximation lower bound
	maxKelvin = 25000
)

// daylightChromaticity evaluates the CIE 015:2004 daylight-locus
// polynomial. Valid for 4000K-25000K; the coefficient set splits at 7000K.
func daylightChromaticity(kelvin float64) (x, y float64) {
	t := kelvin * c2Rescale
	t2 := t * t
	t3 := t2 * t
	if t <= daylightSplit {
		x = 0.244063 + 0.09911e3/t + 2.9678e6/t2 - 4.6070e9/t3
	} else {
		x = 0.237040 + 0.24748e3/t + 1.9018e6/t2 - 2.0064e9/t3
	}
	y = -3.000*x*x + 2.870*x - 0.275
	return x, y
}

// planckChromaticity evaluates Krystek's rational approximation of the
// Planckian locus, used below the daylight locus's 4000K validity floor.
func planckChromaticity(kelvin float64) (x, y float64) {
	t := kelvin
	t2 := t * t
	x = (0.860117757 + 1.54118254e-4*t + 1.28641212e-7*t2) /
		(1 + 8.42420235e-4*t + 7.08145163e-7*t2)
	y = (0.317398726 + 4.22806245e-5*t + 4.20481691e-8*t2) /
		(1 + 2.89741816e-5*t + 1.61456053e-7*t2)
	return x, y
}

// chromaticityToLinearRGB converts an xy chromaticity (Y=1) to linear sRGB
// using the standard D65 matrix. Out-of-gamut negative channels clamp to 0.
func chromaticityToLinearRGB(x, y float64) (r, g, b float64) {
	if y <= 0 {
		return 0, 0, 0
	}
	X := x / y
	Y := 1.0
	Z := (1 - x - y) / y

	r = 3.2404542*X - 1.5371385*Y - 0.4985314*Z
	g = -0.9692660*X + 1.8760108*Y + 0.0415560*Z
	b = 0.0556434*X - 0.2040259*Y + 1.0572252*Z

	return math.Max(r, 0), math.Max(g, 0), math.Max(b, 0)
}

// hermite01 is the float64 smoothstep easing used for the Planck/daylight
// seam blend.
func hermite01(edge0, edge1, v float64) float64 {
	t := (v - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

// KelvinToRGB converts a color temperature to a luminance-normalized
// linear RGB multiplier (Rec.709-weighted average exactly 1).
//
// 4000K and above follows the CIE daylight locus; below 4000K the
// Planckian locus takes over, blended across a 500K Hermite window
// centered on the seam so there is no derivative discontinuity. Inputs
// outside [1667, 25000] clamp to that range; non-finite inputs fall back
// to the D65 reference.
func KelvinToRGB(kelvin float64) (r, g, b float64) {
	if math.IsNaN(kelvin) || math.IsInf(kelvin, 0) {
		kelvin = ReferenceKelvin
	}
	if kelvin < minKelvin {
		kelvin = minKelvin
	}
	if kelvin > maxKelvin {
		kelvin = maxKelvin
	}

	var x, y float64
	switch {
	case kelvin <= planckBlendLo:
		x, y = planckChromaticity(kelvin)
	case kelvin >= planckBlendHi:
		x, y = daylightChromaticity(kelvin)
	default:
		px, py := planckChromaticity(kelvin)
		dx, dy := daylightChromaticity(kelvin)
		w := hermite01(planckBlendLo, planckBlendHi, kelvin)
		x = px + (dx-px)*w
		y = py + (dy-py)*w
	}

	r, g, b = chromaticityToLinearRGB(x, y)

	lum := lumaR*r + lumaG*g + lumaB*b
	if lum <= 0 {
		return 1, 1, 1
	}
	return r / lum, g / lum, b / lum
}
