package colormath

// Tonemap curves used by the preview and export paths to compress values
// above reference white back into display range. Inputs are linear and
// non-negative; outputs are in [0, 1).
//
// References:
//   - Reinhard et al., "Photographic Tone Reproduction for Digital Images"
//   - Hable, "Uncharted 2: HDR Lighting" (GDC 2010) filmic operator

// Reinhard applies the simple Reinhard operator v/(1+v).
func Reinhard(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return v / (1 + v)
}

// ReinhardExtended applies the extended Reinhard operator with a white point:
// v*(1+v/w²)/(1+v). Values at the white point map exactly to 1.0.
// A non-positive white point falls back to the simple operator.
func ReinhardExtended(v, white float32) float32 {
	if v <= 0 {
		return 0
	}
	if white <= 0 {
		return Reinhard(v)
	}
	return Clamp01(v * (1 + v/(white*white)) / (1 + v))
}

// hableCurve is the raw Uncharted 2 filmic curve before white-point scaling.
func hableCurve(v float32) float32 {
	const (
		a = 0.15 // shoulder strength
		b = 0.50 // linear strength
		c = 0.10 // linear angle
		d = 0.20 // toe strength
		e = 0.02 // toe numerator
		f = 0.30 // toe denominator
	)
	return (v*(a*v+c*b)+d*e)/(v*(a*v+b)+d*f) - e/f
}

// Filmic applies the Hable filmic tonemap normalized so that an input of
// 11.2 (the operator's linear white) maps to 1.0.
func Filmic(v float32) float32 {
	if v <= 0 {
		return 0
	}
	const linearWhite = 11.2
	return Clamp01(hableCurve(v) / hableCurve(linearWhite))
}
