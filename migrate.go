package filmgrade

import (
	"github.com/filmgrade/filmgrade/curve"
	"github.com/filmgrade/filmgrade/film"
	"github.com/filmgrade/filmgrade/hsl"
	"github.com/filmgrade/filmgrade/splittone"
	"github.com/filmgrade/filmgrade/wb"
)

// ParamsV1 is the original flat parameter layout. HSL lived in three
// parallel 8-entry arrays and split tone in six loose scalars; film
// curve gamma was a single value applied to all channels.
type ParamsV1 struct {
	Inverted bool

	FilmCurveEnabled bool
	FilmGamma        float32
	FilmDMin         float32
	FilmDMax         float32
	FilmToe          float32
	FilmShoulder     float32

	BaseRed   float32
	BaseGreen float32
	BaseBlue  float32

	WBRed   float64
	WBGreen float64
	WBBlue  float64
	Temp    float64
	Tint    float64

	Exposure   float32
	Contrast   float32
	Highlights float32
	Shadows    float32
	Whites     float32
	Blacks     float32
	Saturation float32

	HSLHue [8]float32
	HSLSat [8]float32
	HSLLum [8]float32

	ShadowHue    float32
	ShadowSat    float32
	MidtoneHue   float32
	MidtoneSat   float32
	HighlightHue float32
	HighlightSat float32
	SplitBalance float32

	CurvePoints []curve.Point // master curve only
}

// MigrateV1 converts a v1 layout to the current AdjustmentParams. The
// function is pure: the input is not modified and equal inputs always
// produce equal outputs.
//
// V1 predates log-domain base correction and density levels, so those
// arrive at their identity defaults. The single film gamma fans out to
// all three channels. V1 white balance always used the legacy linear
// model.
func MigrateV1(old ParamsV1) AdjustmentParams {
	p := AdjustmentParams{
		Version:  ParamsVersion,
		Inverted: old.Inverted,

		FilmCurveEnabled: old.FilmCurveEnabled,
		FilmCurve: film.Curve{
			GammaR:   old.FilmGamma,
			GammaG:   old.FilmGamma,
			GammaB:   old.FilmGamma,
			DMin:     old.FilmDMin,
			DMax:     old.FilmDMax,
			Toe:      old.FilmToe,
			Shoulder: old.FilmShoulder,
		},

		BaseMode:  BaseLinear,
		BaseGains: [3]float32{old.BaseRed, old.BaseGreen, old.BaseBlue},

		WhiteBalance: WhiteBalanceParams{
			Model:     wb.ModelLegacy,
			Temp:      old.Temp,
			Tint:      old.Tint,
			BaseGains: wb.Gains{R: old.WBRed, G: old.WBGreen, B: old.WBBlue},
		},

		Exposure:   old.Exposure,
		Contrast:   old.Contrast,
		Highlights: old.Highlights,
		Shadows:    old.Shadows,
		Whites:     old.Whites,
		Blacks:     old.Blacks,
		Saturation: old.Saturation,

		SplitTone: splittone.Params{
			Shadow:    splittone.ZoneParams{Hue: old.ShadowHue, Sat: old.ShadowSat},
			Midtone:   splittone.ZoneParams{Hue: old.MidtoneHue, Sat: old.MidtoneSat},
			Highlight: splittone.ZoneParams{Hue: old.HighlightHue, Sat: old.HighlightSat},
			Balance:   old.SplitBalance,
		},
	}

	for i := range p.HSL {
		p.HSL[i] = hsl.Adjustment{
			Hue: old.HSLHue[i],
			Sat: old.HSLSat[i],
			Lum: old.HSLLum[i],
		}
	}

	if len(old.CurvePoints) > 0 {
		p.CurveMaster = append([]curve.Point(nil), old.CurvePoints...)
	}

	return p
}

// Migrate brings params of any known version to the current layout.
// Current-version params pass through unchanged. Unversioned params
// (Version 0) are treated as current-layout with defaults applied,
// since the v1 shape is a different Go type and cannot reach here.
func Migrate(p AdjustmentParams) AdjustmentParams {
	if p.Version == ParamsVersion {
		return p
	}
	p.Version = ParamsVersion
	return p
}
