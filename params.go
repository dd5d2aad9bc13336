package filmgrade

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/filmgrade/filmgrade/curve"
	"github.com/filmgrade/filmgrade/film"
	"github.com/filmgrade/filmgrade/hsl"
	"github.com/filmgrade/filmgrade/splittone"
	"github.com/filmgrade/filmgrade/wb"
)

// ParamsVersion is the current AdjustmentParams layout version.
// Older serialized layouts are converted by the Migrate functions.
const ParamsVersion = 2

// BaseMode selects how film-base correction is applied.
type BaseMode int

const (
	// BaseLinear multiplies each channel by a linear gain.
	BaseLinear BaseMode = iota
	// BaseLog subtracts a per-channel density in log10 space.
	BaseLog
)

// Rect is a normalized crop rectangle. The engine carries it for
// callers; geometry is applied outside the per-pixel pipeline.
type Rect struct {
	X, Y, W, H float32
}

// WhiteBalanceParams groups the white-balance inputs. BaseGains of
// zero value is treated as neutral.
type WhiteBalanceParams struct {
	Model     wb.Model
	Temp      float64 // -100..100
	Tint      float64 // -100..100
	BaseGains wb.Gains
}

// AdjustmentParams is the full photographic parameter bundle consumed
// by a Renderer. The zero value of every adjustment field is its
// identity; a zero AdjustmentParams (with Version set) renders input
// pixels unchanged apart from the highlight roll-off.
//
// Treat values as immutable once handed to a Renderer: the tone-curve
// LUT is baked from them at construction and is not rebuilt on
// mutation. Build a new Renderer (or use a Cache) for changed params.
type AdjustmentParams struct {
	Version int

	// Negative handling.
	Inverted         bool
	FilmCurveEnabled bool
	FilmCurve        film.Curve

	BaseMode      BaseMode
	BaseGains     [3]float32 // BaseLinear
	BaseDensities [3]float32 // BaseLog

	DensityLevelsEnabled bool
	DensityMin           [3]float32
	DensityMax           [3]float32

	WhiteBalance WhiteBalanceParams

	// Tone sliders, all -100..100.
	Exposure   float32
	Contrast   float32
	Highlights float32
	Shadows    float32
	Whites     float32
	Blacks     float32
	Saturation float32

	HSL       hsl.Params
	SplitTone splittone.Params

	// Tone-curve control points in the 0-255 domain. Nil or the
	// two-point identity ramp means no curve.
	CurveMaster []curve.Point
	CurveRed    []curve.Point
	CurveGreen  []curve.Point
	CurveBlue   []curve.Point

	// Geometry, carried for callers.
	Crop     Rect
	Rotation float32
}

// DefaultParams returns the identity parameter set at the current
// version.
func DefaultParams() AdjustmentParams {
	return AdjustmentParams{Version: ParamsVersion}
}

// Clamped returns a copy with every scalar forced into its documented
// range and non-finite values replaced by the field default. The
// renderer always works from a clamped copy, so malformed input can
// only ever degrade to a legal adjustment, never to NaN propagation.
func (p AdjustmentParams) Clamped() AdjustmentParams {
	c := p
	c.Version = ParamsVersion

	c.Exposure = clampSlider(p.Exposure)
	c.Contrast = clampSlider(p.Contrast)
	c.Highlights = clampSlider(p.Highlights)
	c.Shadows = clampSlider(p.Shadows)
	c.Whites = clampSlider(p.Whites)
	c.Blacks = clampSlider(p.Blacks)
	c.Saturation = clampSlider(p.Saturation)

	c.WhiteBalance.Temp = clampSlider64(p.WhiteBalance.Temp)
	c.WhiteBalance.Tint = clampSlider64(p.WhiteBalance.Tint)

	c.FilmCurve.GammaR = clampFinite(p.FilmCurve.GammaR, 0, 10, 1)
	c.FilmCurve.GammaG = clampFinite(p.FilmCurve.GammaG, 0, 10, 1)
	c.FilmCurve.GammaB = clampFinite(p.FilmCurve.GammaB, 0, 10, 1)
	c.FilmCurve.DMin = clampFinite(p.FilmCurve.DMin, 0, 4, 0)
	c.FilmCurve.DMax = clampFinite(p.FilmCurve.DMax, 0, 4, 0)
	c.FilmCurve.Toe = clampFinite(p.FilmCurve.Toe, 0, 1, 0)
	c.FilmCurve.Shoulder = clampFinite(p.FilmCurve.Shoulder, 0, 1, 0)

	for i := 0; i < 3; i++ {
		c.BaseGains[i] = clampFinite(p.BaseGains[i], 0, 10, 1)
		c.BaseDensities[i] = clampFinite(p.BaseDensities[i], -4, 4, 0)
		c.DensityMin[i] = clampFinite(p.DensityMin[i], 0, 4, 0)
		c.DensityMax[i] = clampFinite(p.DensityMax[i], 0, 4, 0)
	}

	for i := range c.HSL {
		c.HSL[i].Hue = clampFinite(p.HSL[i].Hue, -180, 180, 0)
		c.HSL[i].Sat = clampSlider(p.HSL[i].Sat)
		c.HSL[i].Lum = clampSlider(p.HSL[i].Lum)
	}

	c.SplitTone.Shadow = clampZone(p.SplitTone.Shadow)
	c.SplitTone.Midtone = clampZone(p.SplitTone.Midtone)
	c.SplitTone.Highlight = clampZone(p.SplitTone.Highlight)
	c.SplitTone.Balance = clampSlider(p.SplitTone.Balance)

	c.Rotation = clampFinite(p.Rotation, -360, 360, 0)
	return c
}

func clampZone(z splittone.ZoneParams) splittone.ZoneParams {
	return splittone.ZoneParams{
		Hue: clampFinite(z.Hue, 0, 360, 0),
		Sat: clampFinite(z.Sat, 0, 100, 0),
	}
}

func clampSlider(v float32) float32 {
	return clampFinite(v, -100, 100, 0)
}

func clampSlider64(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Min(100, math.Max(-100, v))
}

// clampFinite clamps v into [lo, hi], substituting def for non-finite
// input.
func clampFinite(v, lo, hi, def float32) float32 {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Hash returns an FNV-1a digest of every field that affects pixel
// output. Equal params hash equal; any visible change changes the
// hash. Used as the tone-LUT cache key.
func (p AdjustmentParams) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	u32 := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[:4], v)
		h.Write(buf[:4])
	}
	f32 := func(v float32) { u32(math.Float32bits(v)) }
	f64 := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	b1 := func(v bool) {
		if v {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	pts := func(points []curve.Point) {
		u32(uint32(len(points)))
		for _, pt := range points {
			f32(pt.X)
			f32(pt.Y)
		}
	}

	b1(p.Inverted)
	b1(p.FilmCurveEnabled)
	f32(p.FilmCurve.GammaR)
	f32(p.FilmCurve.GammaG)
	f32(p.FilmCurve.GammaB)
	f32(p.FilmCurve.DMin)
	f32(p.FilmCurve.DMax)
	f32(p.FilmCurve.Toe)
	f32(p.FilmCurve.Shoulder)

	u32(uint32(p.BaseMode))
	for i := 0; i < 3; i++ {
		f32(p.BaseGains[i])
		f32(p.BaseDensities[i])
		f32(p.DensityMin[i])
		f32(p.DensityMax[i])
	}
	b1(p.DensityLevelsEnabled)

	u32(uint32(p.WhiteBalance.Model))
	f64(p.WhiteBalance.Temp)
	f64(p.WhiteBalance.Tint)
	f64(p.WhiteBalance.BaseGains.R)
	f64(p.WhiteBalance.BaseGains.G)
	f64(p.WhiteBalance.BaseGains.B)

	f32(p.Exposure)
	f32(p.Contrast)
	f32(p.Highlights)
	f32(p.Shadows)
	f32(p.Whites)
	f32(p.Blacks)
	f32(p.Saturation)

	for i := range p.HSL {
		f32(p.HSL[i].Hue)
		f32(p.HSL[i].Sat)
		f32(p.HSL[i].Lum)
	}

	f32(p.SplitTone.Shadow.Hue)
	f32(p.SplitTone.Shadow.Sat)
	f32(p.SplitTone.Midtone.Hue)
	f32(p.SplitTone.Midtone.Sat)
	f32(p.SplitTone.Highlight.Hue)
	f32(p.SplitTone.Highlight.Sat)
	f32(p.SplitTone.Balance)

	pts(p.CurveMaster)
	pts(p.CurveRed)
	pts(p.CurveGreen)
	pts(p.CurveBlue)

	return h.Sum64()
}
