package filmgrade

import (
	"log/slog"

	"github.com/chewxy/math32"

	"github.com/filmgrade/filmgrade/curve"
	"github.com/filmgrade/filmgrade/film"
	"github.com/filmgrade/filmgrade/hsl"
	"github.com/filmgrade/filmgrade/internal/colormath"
	"github.com/filmgrade/filmgrade/splittone"
	"github.com/filmgrade/filmgrade/wb"
)

// minTransmittance floors log-domain math, matching the film-curve
// floor so density never diverges at zero input.
const minTransmittance = film.MinTransmittance

// Renderer applies a baked AdjustmentParams set to pixels. All derived
// state (white-balance gains, tone LUTs, zone contexts, slider
// factors) is computed once at construction; the per-pixel entry
// points are pure reads and safe for concurrent use from any number of
// goroutines.
type Renderer struct {
	params AdjustmentParams

	gainR, gainG, gainB float32

	exposureScale  float32
	contrastFactor float32
	blackPoint     float32
	whitePoint     float32
	shadowFactor   float32
	highlightFactor float32
	satFactor      float32

	hslAdj *hsl.Adjuster
	split  *splittone.Context

	hasCurve bool
	lut8     curve.Composite8
	lutF     curve.CompositeF
}

// NewRenderer bakes a parameter set into a reusable Renderer. The
// params are clamped first; malformed values degrade to their
// documented defaults rather than erroring.
func NewRenderer(params AdjustmentParams, opts ...Option) *Renderer {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := params.Clamped()
	if p.Hash() != params.Hash() || p.Rotation != params.Rotation {
		Logger().Warn("parameters clamped",
			slog.Uint64("params_hash", p.Hash()))
	}
	rn := &Renderer{params: p}

	g := wb.ComputeGains(p.WhiteBalance.BaseGains,
		wb.TempTint{Temp: p.WhiteBalance.Temp, Tint: p.WhiteBalance.Tint},
		p.WhiteBalance.Model)
	rn.gainR = float32(g.R)
	rn.gainG = float32(g.G)
	rn.gainB = float32(g.B)

	rn.exposureScale = math32.Exp2(p.Exposure / colormath.ExposureHalfRange)
	rn.contrastFactor = (259 * (p.Contrast + 255)) / (255 * (259 - p.Contrast))
	rn.blackPoint = -p.Blacks * colormath.WindowScale
	rn.whitePoint = 1 - p.Whites*colormath.WindowScale
	rn.shadowFactor = p.Shadows / 100 * colormath.ShadowHighlightStrength
	rn.highlightFactor = p.Highlights / 100 * colormath.ShadowHighlightStrength
	rn.satFactor = 1 + p.Saturation/100

	if !p.HSL.IsZero() {
		rn.hslAdj = hsl.NewAdjuster(p.HSL)
	}
	if !p.SplitTone.IsZero() {
		rn.split = splittone.NewContext(p.SplitTone)
	}

	rn.hasCurve = !curve.IsIdentity(p.CurveMaster) ||
		!curve.IsIdentity(p.CurveRed) ||
		!curve.IsIdentity(p.CurveGreen) ||
		!curve.IsIdentity(p.CurveBlue)
	if rn.hasCurve {
		if o.lutCache != nil {
			rn.lut8, rn.lutF = o.lutCache.getOrBuild(p, o.lutResolution)
		} else {
			rn.lut8 = curve.BuildComposite8(p.CurveMaster, p.CurveRed, p.CurveGreen, p.CurveBlue)
			rn.lutF = curve.BuildCompositeF(p.CurveMaster, p.CurveRed, p.CurveGreen, p.CurveBlue, o.lutResolution)
		}
	}

	Logger().Debug("renderer built",
		slog.Uint64("params_hash", p.Hash()),
		slog.Bool("tone_curve", rn.hasCurve),
		slog.Bool("inverted", p.Inverted))
	return rn
}

// Params returns the clamped parameter set the Renderer was baked
// from.
func (rn *Renderer) Params() AdjustmentParams { return rn.params }

// ProcessPixelFloat runs the full stage chain on one normalized pixel.
// Inputs outside [0,1] are clamped on entry; outputs are always in
// [0,1].
func (rn *Renderer) ProcessPixelFloat(r, g, b float32) (float32, float32, float32) {
	return rn.process(clampInput(r), clampInput(g), clampInput(b), false)
}

// ProcessPixel is the 8-bit entry point. It shares every stage with
// ProcessPixelFloat; only the tone-curve lookup uses the 256-entry
// table, so the two paths agree to within LUT quantization.
func (rn *Renderer) ProcessPixel(r, g, b uint8) (uint8, uint8, uint8) {
	fr, fg, fb := rn.process(float32(r)/255, float32(g)/255, float32(b)/255, true)
	return quant8(fr), quant8(fg), quant8(fb)
}

// ProcessPixel16 is the 16-bit entry point. It runs the float chain
// with the float-resolution tone LUT and quantizes at 16 bits, so
// 16-bit batch output keeps full pipeline precision.
func (rn *Renderer) ProcessPixel16(r, g, b uint16) (uint16, uint16, uint16) {
	fr, fg, fb := rn.process(float32(r)/65535, float32(g)/65535, float32(b)/65535, false)
	return quant16(fr), quant16(fg), quant16(fb)
}

// process applies stages in the fixed documented order. Every stage
// clamps its own output, so no stage can hand NaN or out-of-range
// values to the next. use8 selects the 8-bit tone LUT.
func (rn *Renderer) process(r, g, b float32, use8 bool) (float32, float32, float32) {
	p := &rn.params

	// 1. Film characteristic curve, negatives only.
	if p.Inverted && p.FilmCurveEnabled {
		r, g, b = p.FilmCurve.Apply(r, g, b)
	}

	// 2. Film-base correction.
	switch p.BaseMode {
	case BaseLog:
		r = densityShift(r, p.BaseDensities[0])
		g = densityShift(g, p.BaseDensities[1])
		b = densityShift(b, p.BaseDensities[2])
	default:
		r = colormath.Clamp01(r * p.BaseGains[0])
		g = colormath.Clamp01(g * p.BaseGains[1])
		b = colormath.Clamp01(b * p.BaseGains[2])
	}

	// 3. Density auto-levels, log mode only.
	if p.DensityLevelsEnabled && p.BaseMode == BaseLog {
		r = densityLevel(r, p.DensityMin[0], p.DensityMax[0])
		g = densityLevel(g, p.DensityMin[1], p.DensityMax[1])
		b = densityLevel(b, p.DensityMin[2], p.DensityMax[2])
	}

	// 4. Negative-to-positive inversion.
	if p.Inverted {
		if p.BaseMode == BaseLog {
			r = invertLog(r)
			g = invertLog(g)
			b = invertLog(b)
		} else {
			r, g, b = 1-r, 1-g, 1-b
		}
	}

	// 5. The 3D LUT stage runs on the GPU path only.

	// 6. White balance.
	r = colormath.Clamp01(r * rn.gainR)
	g = colormath.Clamp01(g * rn.gainG)
	b = colormath.Clamp01(b * rn.gainB)

	// 7. Exposure.
	if rn.exposureScale != 1 {
		r = colormath.Clamp01(r * rn.exposureScale)
		g = colormath.Clamp01(g * rn.exposureScale)
		b = colormath.Clamp01(b * rn.exposureScale)
	}

	// 8. Contrast around the perceptual pivot.
	if rn.contrastFactor != 1 {
		r = colormath.Clamp01((r-colormath.ContrastPivot)*rn.contrastFactor + colormath.ContrastPivot)
		g = colormath.Clamp01((g-colormath.ContrastPivot)*rn.contrastFactor + colormath.ContrastPivot)
		b = colormath.Clamp01((b-colormath.ContrastPivot)*rn.contrastFactor + colormath.ContrastPivot)
	}

	// 9. Blacks/whites window remap. Degenerate windows skip the
	// stage instead of dividing by zero.
	if span := rn.whitePoint - rn.blackPoint; span > 1e-6 && (rn.blackPoint != 0 || rn.whitePoint != 1) {
		r = colormath.Clamp01((r - rn.blackPoint) / span)
		g = colormath.Clamp01((g - rn.blackPoint) / span)
		b = colormath.Clamp01((b - rn.blackPoint) / span)
	}

	// 10. Shadow/highlight quadratic lift.
	if rn.shadowFactor != 0 {
		r = shadowLift(r, rn.shadowFactor)
		g = shadowLift(g, rn.shadowFactor)
		b = shadowLift(b, rn.shadowFactor)
	}
	if rn.highlightFactor != 0 {
		r = highlightLift(r, rn.highlightFactor)
		g = highlightLift(g, rn.highlightFactor)
		b = highlightLift(b, rn.highlightFactor)
	}

	// 11. Highlight roll-off.
	r, g, b = colormath.RollOffRGB(r, g, b)

	// 12. Tone-curve LUT.
	if rn.hasCurve {
		if use8 {
			r, g, b = rn.lut8.Apply(r, g, b)
		} else {
			r, g, b = rn.lutF.Apply(r, g, b)
		}
	}

	// 13. HSL zones and global saturation.
	if rn.hslAdj != nil {
		r, g, b = rn.hslAdj.Apply(r, g, b)
	}
	if rn.satFactor != 1 {
		r, g, b = colormath.Saturate(r, g, b, rn.satFactor)
	}

	// 14. Split toning.
	if rn.split != nil {
		r, g, b = rn.split.Apply(r, g, b)
	}

	return r, g, b
}

// densityShift subtracts a density offset in log10 space.
func densityShift(v, density float32) float32 {
	d := -math32.Log10(math32.Max(v, minTransmittance)) - density
	return colormath.Clamp01(math32.Pow(10, -d))
}

// densityLevel normalizes a channel's density into [dMin, dMax] and
// re-expands over the standard inversion range. A degenerate window is
// an identity.
func densityLevel(v, dMin, dMax float32) float32 {
	span := dMax - dMin
	if span <= 0 {
		return v
	}
	d := -math32.Log10(math32.Max(v, minTransmittance))
	dn := colormath.Clamp01((d - dMin) / span)
	return colormath.Clamp01(math32.Pow(10, -dn*colormath.LogInversionRange))
}

// invertLog maps negative transmittance to positive value through
// log-compressed density.
func invertLog(v float32) float32 {
	d := -math32.Log10(math32.Max(v, minTransmittance))
	return colormath.Clamp01(d / colormath.LogInversionRange)
}

// shadowLift brightens dark values with a Bernstein-weighted quadratic
// that leaves both endpoints fixed.
func shadowLift(v, factor float32) float32 {
	inv := 1 - v
	return colormath.Clamp01(v + factor*inv*inv*v*4)
}

// highlightLift is the mirrored form acting on bright values.
func highlightLift(v, factor float32) float32 {
	return colormath.Clamp01(v + factor*v*v*(1-v)*4)
}

func clampInput(v float32) float32 {
	if v != v { // NaN
		return 0
	}
	return colormath.Clamp01(v)
}

func quant8(v float32) uint8 {
	return uint8(colormath.Clamp01(v)*255 + 0.5)
}

func quant16(v float32) uint16 {
	return uint16(colormath.Clamp01(v)*65535 + 0.5)
}
