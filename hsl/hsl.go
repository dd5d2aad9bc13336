// Package hsl implements the 8-channel selective color adjuster.
//
// Each of the eight fixed hue zones (red through magenta) carries its own
// hue shift, saturation delta and luminance delta. A pixel's hue picks up
// a cosine-falloff weight from every zone whose angular range covers it;
// overlapping zones are renormalized so stacked adjustments never
// overshoot. All-zero parameters are an exact identity: the adjuster
// returns the input untouched without converting color spaces.
package hsl

import (
	"github.com/chewxy/math32"

	"github.com/filmgrade/filmgrade/internal/colormath"
)

// Channel identifies one of the eight fixed hue zones.
type Channel int

// The eight zones in hue order.
const (
	Red Channel = iota
	Orange
	Yellow
	Green
	Cyan
	Blue
	Purple
	Magenta

	NumChannels = 8
)

// Centers holds the fixed center hue of each zone in degrees.
// Exported so the shader generator emits the identical constants.
var Centers = [NumChannels]float32{0, 30, 60, 120, 180, 240, 280, 330}

// Ranges holds the angular half-width of each zone in degrees. The cosine
// weight falls to zero exactly at the half-width, so a zone never touches
// hues beyond it. Widths are uneven: the warm zones are packed tighter
// than the green-blue span, mirroring where color negatives need the most
// selective control.
var Ranges = [NumChannels]float32{30, 30, 45, 60, 60, 50, 45, 35}

// LumDamping scales the luminance delta before the asymmetric response;
// full-strength luminance moves read as exposure changes rather than
// selective color work.
const LumDamping = 0.5

// Adjustment is the per-zone parameter triple.
type Adjustment struct {
	Hue float32 // hue shift in degrees, -180..180
	Sat float32 // saturation delta, -100..100
	Lum float32 // luminance delta, -100..100
}

// Params holds all eight zone adjustments, indexed by Channel.
type Params [NumChannels]Adjustment

// IsZero reports whether every zone is at its default.
func (p Params) IsZero() bool {
	for _, a := range p {
		if a.Hue != 0 || a.Sat != 0 || a.Lum != 0 {
			return false
		}
	}
	return true
}

// Adjuster applies a Params set to pixels. Build once per parameter set;
// Apply is safe for concurrent use.
type Adjuster struct {
	params Params
	active []Channel // zones with any non-zero adjustment
}

// NewAdjuster precomputes the active-zone list for a parameter set.
func NewAdjuster(p Params) *Adjuster {
	a := &Adjuster{params: p}
	for ch := Channel(0); ch < NumChannels; ch++ {
		adj := p[ch]
		if adj.Hue != 0 || adj.Sat != 0 || adj.Lum != 0 {
			a.active = append(a.active, ch)
		}
	}
	return a
}

// Apply adjusts one normalized RGB pixel. Default parameters and pixels
// outside every active zone return the input exactly.
func (a *Adjuster) Apply(r, g, b float32) (float32, float32, float32) {
	if len(a.active) == 0 {
		return r, g, b
	}

	h, s, l := colormath.RGBToHSL(r, g, b)
	if s == 0 {
		// Achromatic pixels carry no hue; zone weights are undefined.
		return r, g, b
	}

	var hueShift, satDelta, lumDelta, total float32
	for _, ch := range a.active {
		dist := colormath.HueDistance(h, Centers[ch])
		rng := Ranges[ch]
		if dist >= rng {
			continue
		}
		// Cosine falloff: 1 at the center, 0 at the zone boundary.
		w := 0.5 * (1 + math32.Cos(math32.Pi*dist/rng))
		adj := a.params[ch]
		hueShift += w * adj.Hue
		satDelta += w * adj.Sat / 100
		lumDelta += w * adj.Lum / 100
		total += w
	}

	if total == 0 {
		return r, g, b
	}
	if total > 1 {
		// Overlapping zones: renormalize so stacked weights cannot
		// exceed a single full-strength zone.
		hueShift /= total
		satDelta /= total
		lumDelta /= total
	}

	h += hueShift
	s = asymmetric(s, satDelta)
	l = asymmetric(l, lumDelta*LumDamping)

	r, g, b = colormath.HSLToRGB(h, s, l)
	return colormath.Clamp01(r), colormath.Clamp01(g), colormath.Clamp01(b)
}

// asymmetric applies the saturation/luminance response: positive deltas
// move toward the ceiling (v + (1-v)*d), negative deltas scale down
// (v * (1+d)). The result stays in [0, 1] for deltas in [-1, 1].
func asymmetric(v, d float32) float32 {
	if d > 0 {
		v += (1 - v) * d
	} else {
		v *= 1 + d
	}
	return colormath.Clamp01(v)
}
