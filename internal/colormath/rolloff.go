package colormath

import "github.com/chewxy/math32"

// HighlightRollOff compresses values above RollOffThreshold with a tanh
// curve, leaving everything below the threshold untouched.
//
// For t = RollOffThreshold and x > t:
//
//	f(x) = t + (1-t) * tanh((x-t)/(1-t))
//
// At the threshold the curve matches the identity in value (f(t)=t), first
// derivative (tanh'(0)=1 so f'(t)=1) and second derivative (tanh''(0)=0 so
// f''(t)=0), giving C² continuity with no visible knee. As x → ∞ the output
// approaches but never reaches t + (1-t) = 1.0.
//
// The pipeline applies this to the maximum channel of a pixel and rescales
// the other two proportionally, so hue is preserved through the shoulder.
func HighlightRollOff(v float32) float32 {
	const t = RollOffThreshold
	if v <= t {
		return v
	}
	return t + (1-t)*math32.Tanh((v-t)/(1-t))
}

// RollOffRGB applies HighlightRollOff to the max channel of a pixel and
// scales all three channels by the same compression ratio.
func RollOffRGB(r, g, b float32) (float32, float32, float32) {
	m := Max3(r, g, b)
	if m <= RollOffThreshold {
		return r, g, b
	}
	scale := HighlightRollOff(m) / m
	return r * scale, g * scale, b * scale
}
