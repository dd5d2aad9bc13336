// Package shader generates the GLSL fragment-shader source implementing
// the same stage chain as the CPU pixel pipeline.
//
// The generator is a pure function of the GL variant flag. Adjustment
// values are never baked into the source; they are bound at draw time
// through the uniform set returned by Uniforms. Two calls for the same
// variant always return byte-identical source, so callers may cache the
// result keyed by the variant alone.
//
// Shared numeric constants (contrast pivot, roll-off threshold, zone
// boundaries, HSL hue centers) are injected into the GLSL text from the
// same Go constants the CPU stages use, so the two implementations cannot
// drift apart on a constant value.
package shader

// Variant selects the GLSL dialect.
type Variant int

const (
	// VariantLegacy targets GLSL ES 1.00 (WebGL1 / GLES2): texture2D(),
	// gl_FragColor, no 3D-LUT support.
	VariantLegacy Variant = iota

	// VariantModern targets GLSL ES 3.00 (WebGL2 / GLES3): texture(),
	// an explicit fragment output, and a sampler3D 3D-LUT stage.
	VariantModern
)

// String returns the variant name for logging.
func (v Variant) String() string {
	if v == VariantModern {
		return "modern"
	}
	return "legacy"
}

// Uniform describes one shader uniform the external GPU harness must bind.
type Uniform struct {
	Name string
	Type string // GLSL type, e.g. "vec3", "float[8]"
}

// Source is an immutable generated shader program.
type Source struct {
	Variant Variant
	Code    string

	// Uniforms is the parameter uniform set for this source. For the
	// modern variant it includes the 3D-LUT sampler uniforms.
	Uniforms []Uniform
}

// paramUniforms is the fixed parameter uniform set shared by both
// variants. Order is part of the contract: harnesses may bind by index.
var paramUniforms = []Uniform{
	{"u_image", "sampler2D"},
	{"u_toneCurve", "sampler2D"},
	{"u_inverted", "int"},
	{"u_filmEnabled", "int"},
	{"u_filmGamma", "vec3"},
	{"u_filmDensity", "vec2"},
	{"u_filmToeShoulder", "vec2"},
	{"u_baseMode", "int"},
	{"u_baseGains", "vec3"},
	{"u_baseDensities", "vec3"},
	{"u_densityLevelsEnabled", "int"},
	{"u_densityMin", "vec3"},
	{"u_densityMax", "vec3"},
	{"u_wbGains", "vec3"},
	{"u_exposure", "float"},
	{"u_contrast", "float"},
	{"u_blacks", "float"},
	{"u_whites", "float"},
	{"u_shadows", "float"},
	{"u_highlights", "float"},
	{"u_saturation", "float"},
	{"u_hslHue", "float[8]"},
	{"u_hslSat", "float[8]"},
	{"u_hslLum", "float[8]"},
	{"u_splitHue", "vec3"},
	{"u_splitSat", "vec3"},
	{"u_splitBalance", "float"},
}

// lut3DUniforms are the additional uniforms declared only by the modern
// variant.
var lut3DUniforms = []Uniform{
	{"u_lut3d", "sampler3D"},
	{"u_lut3dEnabled", "int"},
}

// Uniforms returns the parameter uniform set for a variant. The slice is
// freshly allocated; callers may reorder or mutate it.
func Uniforms(v Variant) []Uniform {
	out := make([]Uniform, 0, len(paramUniforms)+len(lut3DUniforms))
	out = append(out, paramUniforms...)
	if v == VariantModern {
		out = append(out, lut3DUniforms...)
	}
	return out
}

// Build generates the fragment-shader source for a variant.
func Build(v Variant) Source {
	return Source{
		Variant:  v,
		Code:     buildFragmentSource(v),
		Uniforms: Uniforms(v),
	}
}

// BuildFragmentShader is the convenience form of Build used by harnesses
// that only need the source text.
func BuildFragmentShader(modernGL bool) string {
	if modernGL {
		return buildFragmentSource(VariantModern)
	}
	return buildFragmentSource(VariantLegacy)
}
