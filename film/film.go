// Package film implements the Hurter-Driffield density-domain
// characteristic curve used to invert photographic negatives.
//
// A scanned negative pixel is a transmittance value: the fraction of light
// the developed emulsion lets through. The curve works in density space
// (d = -log10(transmittance)), where film response is close to linear,
// applies a per-channel gamma with optional toe and shoulder softening,
// and converts back to transmittance.
//
// The toe (thin, underexposed densities) and shoulder (dense, overexposed
// densities) of real emulsions respond with a different slope than the
// straight-line portion. That is modeled with three gamma segments blended
// by Hermite smoothstep windows, so the resulting curve has no slope
// discontinuity anywhere.
package film

import (
	"github.com/chewxy/math32"

	"github.com/filmgrade/filmgrade/internal/colormath"
)

// Segment gamma multipliers and blend geometry. The toe responds steeper
// (underexposed areas gain contrast), the shoulder flatter.
const (
	ToeGammaScale      = 1.5
	ShoulderGammaScale = 0.6

	// ToeRegionScale maps the 0-1 toe strength parameter to the top of
	// the toe region in normalized density: toeEnd = 0.25*toe.
	ToeRegionScale = 0.25

	// BlendWidth is the full width of the smoothstep window at each
	// segment boundary.
	BlendWidth = 0.08

	// MinTransmittance floors the input before the log, keeping density
	// finite for pure black pixels.
	MinTransmittance = 0.001
)

// Curve is an immutable H&D film curve. Per-channel gammas model
// asymmetric emulsion response (color negative layers never match
// exactly); DMin/DMax are the scan's density endpoints used to normalize
// into curve space.
type Curve struct {
	GammaR float32
	GammaG float32
	GammaB float32

	DMin float32 // density of the clearest point (film base + fog)
	DMax float32 // density of the densest point

	Toe      float32 // 0-1 toe strength; 0 disables the toe segment
	Shoulder float32 // 0-1 shoulder strength; 0 disables the shoulder segment
}

// Apply runs all three channels through the curve with their respective
// gammas. Inputs and outputs are transmittance in [0, 1].
func (c Curve) Apply(r, g, b float32) (float32, float32, float32) {
	return c.applyChannel(r, c.GammaR),
		c.applyChannel(g, c.GammaG),
		c.applyChannel(b, c.GammaB)
}

// applyChannel transforms one transmittance value:
// transmittance → density → normalize → gamma segments → density → transmittance.
func (c Curve) applyChannel(v, gamma float32) float32 {
	if gamma <= 0 {
		gamma = 1
	}
	span := c.DMax - c.DMin
	if span <= 0 {
		// Degenerate density window: skip the stage rather than divide
		// by zero.
		return v
	}

	v = colormath.Clamp(v, MinTransmittance, 1)
	d := -math32.Log10(v)
	dn := colormath.Clamp01((d - c.DMin) / span)

	dn = c.shape(dn, gamma)

	d = c.DMin + dn*span
	return colormath.Clamp01(math32.Pow(10, -d))
}

// shape applies the gamma segments to a normalized density in [0, 1].
func (c Curve) shape(dn, gamma float32) float32 {
	if c.Toe <= 0 && c.Shoulder <= 0 {
		// Legacy single-gamma path. Kept as an explicit branch so the
		// zero-toe/zero-shoulder case is bit-identical to the old
		// behavior rather than merely close to it.
		return math32.Pow(dn, gamma)
	}

	mid := math32.Pow(dn, gamma)
	out := mid

	if c.Toe > 0 {
		toeEnd := ToeRegionScale * c.Toe
		toe := math32.Pow(dn, gamma*ToeGammaScale)
		w := colormath.Smoothstep(toeEnd-BlendWidth/2, toeEnd+BlendWidth/2, dn)
		out = toe + (mid-toe)*w
	}

	if c.Shoulder > 0 {
		shoulderStart := 1 - ToeRegionScale*c.Shoulder
		shoulder := math32.Pow(dn, gamma*ShoulderGammaScale)
		w := colormath.Smoothstep(shoulderStart-BlendWidth/2, shoulderStart+BlendWidth/2, dn)
		out = out + (shoulder-out)*w
	}

	return colormath.Clamp01(out)
}
