package splittone

import "github.com/filmgrade/filmgrade/internal/colormath"

// Apply tints a pixel directly from a Params set without a precomputed
// Context. Output is exactly equal to NewContext(p).Apply for every pixel;
// the Context exists only to hoist the per-parameter work out of the
// per-pixel loop.
func Apply(p Params, r, g, b float32) (float32, float32, float32) {
	if p.IsZero() {
		return r, g, b
	}

	m := midpoint(p.Balance)
	lum := colormath.Luminance709(r, g, b)

	const w = TransitionWidth
	sw := 1 - colormath.Smoothstep(ShadowEnd-w, ShadowEnd+w, lum)
	mw := colormath.Smoothstep(ShadowEnd-w, m, lum) * (1 - colormath.Smoothstep(m, HighlightStart+w, lum))
	hw := colormath.Smoothstep(HighlightStart-w, HighlightStart+w, lum)

	if p.Shadow.Sat > 0 {
		var tc [3]float32
		tc[0], tc[1], tc[2] = colormath.HSLToRGB(p.Shadow.Hue, 1, 0.5)
		r, g, b = tint(r, g, b, tc, p.Shadow.Sat/100*sw)
	}
	if p.Midtone.Sat > 0 {
		var tc [3]float32
		tc[0], tc[1], tc[2] = colormath.HSLToRGB(p.Midtone.Hue, 1, 0.5)
		r, g, b = tint(r, g, b, tc, p.Midtone.Sat/100*mw)
	}
	if p.Highlight.Sat > 0 {
		var tc [3]float32
		tc[0], tc[1], tc[2] = colormath.HSLToRGB(p.Highlight.Hue, 1, 0.5)
		r, g, b = tint(r, g, b, tc, p.Highlight.Sat/100*hw)
	}

	return colormath.Clamp01(r), colormath.Clamp01(g), colormath.Clamp01(b)
}
