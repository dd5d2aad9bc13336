package filmgrade

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/filmgrade/filmgrade/curve"
	"github.com/filmgrade/filmgrade/hsl"
	"github.com/filmgrade/filmgrade/wb"
)

func TestClampedRanges(t *testing.T) {
	p := DefaultParams()
	p.Exposure = 300
	p.Contrast = float32(math.NaN())
	p.Shadows = -500
	p.WhiteBalance.Temp = math.Inf(1)
	p.FilmCurve.GammaR = float32(math.Inf(-1))
	p.HSL[hsl.Red].Hue = 400
	p.SplitTone.Shadow.Sat = -20

	c := p.Clamped()
	if c.Exposure != 100 {
		t.Errorf("exposure clamped to %v, want 100", c.Exposure)
	}
	if c.Contrast != 0 {
		t.Errorf("NaN contrast substituted with %v, want 0", c.Contrast)
	}
	if c.Shadows != -100 {
		t.Errorf("shadows clamped to %v, want -100", c.Shadows)
	}
	if c.WhiteBalance.Temp != 0 {
		t.Errorf("Inf temp substituted with %v, want 0", c.WhiteBalance.Temp)
	}
	if c.FilmCurve.GammaR != 1 {
		t.Errorf("-Inf gamma substituted with %v, want 1", c.FilmCurve.GammaR)
	}
	if c.HSL[hsl.Red].Hue != 180 {
		t.Errorf("HSL hue clamped to %v, want 180", c.HSL[hsl.Red].Hue)
	}
	if c.SplitTone.Shadow.Sat != 0 {
		t.Errorf("negative split sat clamped to %v, want 0", c.SplitTone.Shadow.Sat)
	}
}

func TestClampedIsNoOpForLegalParams(t *testing.T) {
	p := nonTrivialParams()
	if diff := cmp.Diff(p, p.Clamped()); diff != "" {
		t.Errorf("Clamped changed in-range params (-want +got):\n%s", diff)
	}
}

func TestHashDistinguishesVisibleChanges(t *testing.T) {
	base := nonTrivialParams()
	h := base.Hash()

	if base.Hash() != h {
		t.Fatal("hash not deterministic")
	}

	mutations := map[string]func(*AdjustmentParams){
		"exposure":  func(p *AdjustmentParams) { p.Exposure++ },
		"inverted":  func(p *AdjustmentParams) { p.Inverted = !p.Inverted },
		"wb temp":   func(p *AdjustmentParams) { p.WhiteBalance.Temp += 0.5 },
		"hsl sat":   func(p *AdjustmentParams) { p.HSL[hsl.Blue].Sat += 1 },
		"split hue": func(p *AdjustmentParams) { p.SplitTone.Shadow.Hue += 1 },
		"curve pt":  func(p *AdjustmentParams) { p.CurveMaster[1].Y += 1 },
		"base mode": func(p *AdjustmentParams) { p.BaseMode = BaseLog },
	}
	for name, mutate := range mutations {
		p := base
		p.CurveMaster = append([]curve.Point(nil), base.CurveMaster...)
		mutate(&p)
		if p.Hash() == h {
			t.Errorf("%s: hash unchanged after visible parameter change", name)
		}
	}
}

func TestHashIgnoresGeometry(t *testing.T) {
	p := nonTrivialParams()
	h := p.Hash()

	p.Crop = Rect{X: 0.1, Y: 0.1, W: 0.8, H: 0.8}
	p.Rotation = 90
	if p.Hash() != h {
		t.Error("crop/rotation changed the LUT cache key")
	}
}

func TestMigrateV1(t *testing.T) {
	old := ParamsV1{
		Inverted:         true,
		FilmCurveEnabled: true,
		FilmGamma:        0.8,
		FilmDMin:         0.2,
		FilmDMax:         2.2,
		FilmToe:          0.3,
		FilmShoulder:     0.4,
		BaseRed:          1.1,
		BaseGreen:        1.0,
		BaseBlue:         0.9,
		WBRed:            1.2,
		WBGreen:          1.0,
		WBBlue:           0.85,
		Temp:             25,
		Tint:             -5,
		Exposure:         10,
		Contrast:         20,
		Saturation:       5,
		ShadowHue:        220,
		ShadowSat:        40,
		SplitBalance:     10,
		CurvePoints:      []curve.Point{{X: 0, Y: 0}, {X: 100, Y: 90}, {X: 255, Y: 255}},
	}
	old.HSLHue[2] = 15
	old.HSLSat[5] = -30

	got := MigrateV1(old)

	if got.Version != ParamsVersion {
		t.Errorf("migrated version = %d, want %d", got.Version, ParamsVersion)
	}
	if got.WhiteBalance.Model != wb.ModelLegacy {
		t.Error("v1 params must migrate to the legacy WB model")
	}
	if got.FilmCurve.GammaR != 0.8 || got.FilmCurve.GammaG != 0.8 || got.FilmCurve.GammaB != 0.8 {
		t.Error("single v1 gamma must fan out to all channels")
	}
	if got.BaseMode != BaseLinear {
		t.Error("v1 has no log base mode")
	}
	if got.HSL[2].Hue != 15 || got.HSL[5].Sat != -30 {
		t.Error("flat HSL arrays not mapped to channel structs")
	}
	if got.SplitTone.Shadow.Hue != 220 || got.SplitTone.Shadow.Sat != 40 {
		t.Error("flat split-tone scalars not mapped")
	}

	// Pure function: repeated calls agree, input untouched.
	again := MigrateV1(old)
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("MigrateV1 not deterministic (-first +second):\n%s", diff)
	}
	if old.CurvePoints[1].Y != 90 {
		t.Error("MigrateV1 mutated its input")
	}
	got.CurveMaster[1].Y = 80
	if old.CurvePoints[1].Y != 90 {
		t.Error("migrated curve shares backing array with input")
	}
}

func TestMigrateCurrentPassThrough(t *testing.T) {
	p := nonTrivialParams()
	if diff := cmp.Diff(p, Migrate(p)); diff != "" {
		t.Errorf("current-version params changed in Migrate (-want +got):\n%s", diff)
	}

	unversioned := nonTrivialParams()
	unversioned.Version = 0
	m := Migrate(unversioned)
	if m.Version != ParamsVersion {
		t.Errorf("Migrate left version at %d", m.Version)
	}
}
