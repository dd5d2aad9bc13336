// Package splittone implements 3-zone split toning: independent tint hues
// for shadows, midtones and highlights, weighted by pixel luminance with
// smooth zone transitions and a balance control that slides the midtone
// center.
//
// Zone boundaries use Hermite smoothstep blends, so a pixel near a
// boundary receives a smooth mix of the neighboring tints rather than a
// hard cut. The three weights intentionally do not sum to exactly 1; the
// midtone zone overlaps both neighbors.
package splittone

import "github.com/filmgrade/filmgrade/internal/colormath"

// Zone geometry. ShadowEnd and HighlightStart are fixed; the midtone peak
// slides with the balance parameter. Exported for the shader generator.
const (
	ShadowEnd      = 0.25
	HighlightStart = 0.75

	// TransitionWidth is the half-width of the smoothstep window at the
	// shadow and highlight boundaries.
	TransitionWidth = 0.1

	// TintStrength is the fraction of the distance toward the pure tint
	// color a fully-saturated, fully-weighted zone moves the pixel.
	TintStrength = 0.3

	// MidpointMargin keeps the balance-shifted midpoint strictly inside
	// the outer smoothstep edges so neither midtone window collapses to a
	// zero-width step.
	MidpointMargin = 0.001
)

// ZoneParams is one zone's tint definition.
type ZoneParams struct {
	Hue float32 // tint hue in degrees, 0-360
	Sat float32 // tint strength, 0-100; 0 disables the zone
}

// Params is the full split-tone parameter set.
type Params struct {
	Shadow    ZoneParams
	Midtone   ZoneParams
	Highlight ZoneParams

	// Balance shifts the midtone center: -100..100 maps the midpoint to
	// 0.5 + balance/200, pushing midtone tinting toward shadows or
	// highlights.
	Balance float32
}

// IsZero reports whether every zone saturation is zero, in which case the
// whole stage is an identity.
func (p Params) IsZero() bool {
	return p.Shadow.Sat == 0 && p.Midtone.Sat == 0 && p.Highlight.Sat == 0
}

// Weights are the per-zone luminance weights for one pixel, each in [0, 1].
type Weights struct {
	Shadow    float32
	Midtone   float32
	Highlight float32
}

// Context holds everything precomputed from a Params set: the midpoint and
// the three tint colors. Build once per parameter set; Apply is safe for
// concurrent use and produces output identical to computing directly from
// Params for every pixel.
type Context struct {
	params   Params
	midpoint float32

	// Tint colors at full saturation, 50% lightness.
	shadowTint    [3]float32
	midtoneTint   [3]float32
	highlightTint [3]float32

	identity bool
}

// NewContext precomputes the zone context for a parameter set.
func NewContext(p Params) *Context {
	c := &Context{
		params:   p,
		midpoint: midpoint(p.Balance),
		identity: p.IsZero(),
	}
	c.shadowTint[0], c.shadowTint[1], c.shadowTint[2] = colormath.HSLToRGB(p.Shadow.Hue, 1, 0.5)
	c.midtoneTint[0], c.midtoneTint[1], c.midtoneTint[2] = colormath.HSLToRGB(p.Midtone.Hue, 1, 0.5)
	c.highlightTint[0], c.highlightTint[1], c.highlightTint[2] = colormath.HSLToRGB(p.Highlight.Hue, 1, 0.5)
	return c
}

// midpoint maps the balance parameter to the midtone peak luminance:
// 0.5 + balance/200, so balance -100..100 sweeps the peak across the full
// [ShadowEnd-w, HighlightStart+w] midtone envelope. The result stays a
// small margin inside the envelope edges so the rising and falling
// smoothstep windows never collapse to a hard step.
func midpoint(balance float32) float32 {
	const w = TransitionWidth
	m := 0.5 + colormath.Clamp(balance, -100, 100)/200
	return colormath.Clamp(m, ShadowEnd-w+MidpointMargin, HighlightStart+w-MidpointMargin)
}

// ZoneWeights computes the three zone weights for a luminance value.
//
// Shadows fade out across [ShadowEnd-w, ShadowEnd+w], highlights fade in
// across [HighlightStart-w, HighlightStart+w], and the midtone weight
// rises from the shadow boundary to the (balance-shifted) midpoint and
// falls from there to the highlight boundary.
func (c *Context) ZoneWeights(lum float32) Weights {
	const w = TransitionWidth
	return Weights{
		Shadow:    1 - colormath.Smoothstep(ShadowEnd-w, ShadowEnd+w, lum),
		Midtone:   colormath.Smoothstep(ShadowEnd-w, c.midpoint, lum) * (1 - colormath.Smoothstep(c.midpoint, HighlightStart+w, lum)),
		Highlight: colormath.Smoothstep(HighlightStart-w, HighlightStart+w, lum),
	}
}

// Apply tints one normalized RGB pixel.
//
// The all-zero fast path returns the input unchanged without computing
// luminance or weights. This is contract, not just an optimization:
// callers rely on zero-saturation parameters being a bit-exact identity
// regardless of hue or balance values.
func (c *Context) Apply(r, g, b float32) (float32, float32, float32) {
	if c.identity {
		return r, g, b
	}

	lum := colormath.Luminance709(r, g, b)
	zw := c.ZoneWeights(lum)

	if c.params.Shadow.Sat > 0 {
		r, g, b = tint(r, g, b, c.shadowTint, c.params.Shadow.Sat/100*zw.Shadow)
	}
	if c.params.Midtone.Sat > 0 {
		r, g, b = tint(r, g, b, c.midtoneTint, c.params.Midtone.Sat/100*zw.Midtone)
	}
	if c.params.Highlight.Sat > 0 {
		r, g, b = tint(r, g, b, c.highlightTint, c.params.Highlight.Sat/100*zw.Highlight)
	}

	return colormath.Clamp01(r), colormath.Clamp01(g), colormath.Clamp01(b)
}

// tint lerps the pixel toward the zone tint color by TintStrength scaled
// with the zone's saturation×weight amount.
func tint(r, g, b float32, tc [3]float32, amount float32) (float32, float32, float32) {
	t := TintStrength * amount
	return colormath.Lerp(r, tc[0], t),
		colormath.Lerp(g, tc[1], t),
		colormath.Lerp(b, tc[2], t)
}
