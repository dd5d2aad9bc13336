package shader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/filmgrade/filmgrade/film"
	"github.com/filmgrade/filmgrade/hsl"
	"github.com/filmgrade/filmgrade/internal/colormath"
	"github.com/filmgrade/filmgrade/splittone"
)

// glf formats a shared Go constant as a GLSL float literal, forcing a
// decimal point so the literal never collapses to an int.
func glf(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// buildFragmentSource assembles the full fragment shader for a variant.
// The output is deterministic: same variant, same bytes.
func buildFragmentSource(v Variant) string {
	modern := v == VariantModern

	var b strings.Builder
	b.Grow(1 << 14)

	// Header and I/O declarations differ per dialect; everything below
	// them is shared text built from the same constants as the CPU path.
	if modern {
		b.WriteString("#version 300 es\n")
		b.WriteString("precision highp float;\n")
		b.WriteString("precision highp sampler3D;\n\n")
		b.WriteString("in vec2 v_texCoord;\n")
		b.WriteString("out vec4 fragColor;\n\n")
	} else {
		b.WriteString("precision highp float;\n\n")
		b.WriteString("varying vec2 v_texCoord;\n\n")
	}

	writeUniformDecls(&b, modern)
	writeSharedHelpers(&b)
	writeFilmCurve(&b)
	writeBaseStages(&b)
	writeHSLStage(&b)
	writeSplitToneStage(&b)
	writeMain(&b, modern)

	return b.String()
}

// writeUniformDecls emits the uniform block. The parameter set is
// identical across variants; only the modern variant appends the 3D-LUT
// sampler uniforms.
func writeUniformDecls(b *strings.Builder, modern bool) {
	for _, u := range paramUniforms {
		if arr, ok := strings.CutPrefix(u.Type, "float["); ok {
			fmt.Fprintf(b, "uniform float %s[%s;\n", u.Name, arr)
			continue
		}
		fmt.Fprintf(b, "uniform %s %s;\n", u.Type, u.Name)
	}
	if modern {
		for _, u := range lut3DUniforms {
			fmt.Fprintf(b, "uniform %s %s;\n", u.Type, u.Name)
		}
	}
	b.WriteString("\n")
}

// writeSharedHelpers emits the math helpers shared by several stages.
func writeSharedHelpers(b *strings.Builder) {
	fmt.Fprintf(b, `const float PI = 3.14159265358979;
const float LOG10 = 2.302585092994046;

float luma709(vec3 c) {
    return dot(c, vec3(%s, %s, %s));
}

// tanh is unavailable in GLSL ES 1.00, so both variants carry the
// exponential form and stay textually identical.
float tanhCompat(float x) {
    float e = exp(2.0 * x);
    return (e - 1.0) / (e + 1.0);
}

float log10c(float v) {
    return log(v) / LOG10;
}

float rollOff(float v) {
    float t = %s;
    if (v <= t) {
        return v;
    }
    return t + (1.0 - t) * tanhCompat((v - t) / (1.0 - t));
}

vec3 rollOffRGB(vec3 c) {
    float m = max(c.r, max(c.g, c.b));
    if (m <= %s) {
        return c;
    }
    return c * (rollOff(m) / m);
}

`,
		glf(colormath.LumaR), glf(colormath.LumaG), glf(colormath.LumaB),
		glf(colormath.RollOffThreshold), glf(colormath.RollOffThreshold))
}

// writeFilmCurve emits the H&D density-curve stage.
func writeFilmCurve(b *strings.Builder) {
	fmt.Fprintf(b, `float filmChannel(float v, float gamma) {
    float span = u_filmDensity.y - u_filmDensity.x;
    if (span <= 0.0 || gamma <= 0.0) {
        return v;
    }
    v = clamp(v, %s, 1.0);
    float d = -log10c(v);
    float dn = clamp((d - u_filmDensity.x) / span, 0.0, 1.0);

    float toe = u_filmToeShoulder.x;
    float shoulder = u_filmToeShoulder.y;
    float outDn;
    if (toe <= 0.0 && shoulder <= 0.0) {
        outDn = pow(dn, gamma);
    } else {
        float mid = pow(dn, gamma);
        outDn = mid;
        if (toe > 0.0) {
            float toeEnd = %s * toe;
            float t = pow(dn, gamma * %s);
            float w = smoothstep(toeEnd - %s, toeEnd + %s, dn);
            outDn = t + (mid - t) * w;
        }
        if (shoulder > 0.0) {
            float shoulderStart = 1.0 - %s * shoulder;
            float s = pow(dn, gamma * %s);
            float w = smoothstep(shoulderStart - %s, shoulderStart + %s, dn);
            outDn = outDn + (s - outDn) * w;
        }
        outDn = clamp(outDn, 0.0, 1.0);
    }

    d = u_filmDensity.x + outDn * span;
    return clamp(pow(10.0, -d), 0.0, 1.0);
}

vec3 filmCurve(vec3 c) {
    return vec3(
        filmChannel(c.r, u_filmGamma.r),
        filmChannel(c.g, u_filmGamma.g),
        filmChannel(c.b, u_filmGamma.b));
}

`,
		glf(film.MinTransmittance),
		glf(film.ToeRegionScale), glf(film.ToeGammaScale),
		glf(film.BlendWidth/2), glf(film.BlendWidth/2),
		glf(film.ToeRegionScale), glf(film.ShoulderGammaScale),
		glf(film.BlendWidth/2), glf(film.BlendWidth/2))
}

// writeBaseStages emits base correction, density auto-levels, inversion
// and the tone helpers used inline by main.
func writeBaseStages(b *strings.Builder) {
	fmt.Fprintf(b, `float channelDensity(float v) {
    return -log10c(max(v, %s));
}

vec3 baseCorrection(vec3 c) {
    if (u_baseMode == 1) {
        vec3 d = vec3(channelDensity(c.r), channelDensity(c.g), channelDensity(c.b));
        d -= u_baseDensities;
        return clamp(vec3(pow(10.0, -d.r), pow(10.0, -d.g), pow(10.0, -d.b)), 0.0, 1.0);
    }
    return clamp(c * u_baseGains, 0.0, 1.0);
}

float densityLevelChannel(float v, float dMin, float dMax) {
    float span = dMax - dMin;
    if (span <= 0.0) {
        return v;
    }
    float dn = clamp((channelDensity(v) - dMin) / span, 0.0, 1.0);
    return clamp(pow(10.0, -dn * %s), 0.0, 1.0);
}

vec3 densityLevels(vec3 c) {
    return vec3(
        densityLevelChannel(c.r, u_densityMin.r, u_densityMax.r),
        densityLevelChannel(c.g, u_densityMin.g, u_densityMax.g),
        densityLevelChannel(c.b, u_densityMin.b, u_densityMax.b));
}

vec3 invertNegative(vec3 c) {
    if (u_baseMode == 1) {
        vec3 d = vec3(channelDensity(c.r), channelDensity(c.g), channelDensity(c.b));
        return clamp(d / %s, 0.0, 1.0);
    }
    return vec3(1.0) - c;
}

`,
		glf(film.MinTransmittance),
		glf(colormath.LogInversionRange),
		glf(colormath.LogInversionRange))
}

// writeHSLStage emits the RGB/HSL conversions, the 8-zone adjuster and
// the global saturation helper. Zone centers and ranges are selected by
// if-chains rather than array constructors so the same text compiles
// under GLSL ES 1.00.
func writeHSLStage(b *strings.Builder) {
	b.WriteString(`vec3 rgb2hsl(vec3 c) {
    float mx = max(c.r, max(c.g, c.b));
    float mn = min(c.r, min(c.g, c.b));
    float l = (mx + mn) * 0.5;
    if (mx == mn) {
        return vec3(0.0, 0.0, l);
    }
    float d = mx - mn;
    float s = l > 0.5 ? d / (2.0 - mx - mn) : d / (mx + mn);
    float h;
    if (mx == c.r) {
        h = (c.g - c.b) / d + (c.g < c.b ? 6.0 : 0.0);
    } else if (mx == c.g) {
        h = (c.b - c.r) / d + 2.0;
    } else {
        h = (c.r - c.g) / d + 4.0;
    }
    h *= 60.0;
    if (h >= 360.0) {
        h -= 360.0;
    }
    return vec3(h, s, l);
}

float hue2channel(float p, float q, float t) {
    if (t < 0.0) { t += 1.0; }
    if (t > 1.0) { t -= 1.0; }
    if (t < 1.0 / 6.0) { return p + (q - p) * 6.0 * t; }
    if (t < 1.0 / 2.0) { return q; }
    if (t < 2.0 / 3.0) { return p + (q - p) * (2.0 / 3.0 - t) * 6.0; }
    return p;
}

vec3 hsl2rgb(vec3 hslc) {
    float h = mod(mod(hslc.x, 360.0) + 360.0, 360.0) / 360.0;
    float s = hslc.y;
    float l = hslc.z;
    if (s == 0.0) {
        return vec3(l);
    }
    float q = l < 0.5 ? l * (1.0 + s) : l + s - l * s;
    float p = 2.0 * l - q;
    return vec3(
        hue2channel(p, q, h + 1.0 / 3.0),
        hue2channel(p, q, h),
        hue2channel(p, q, h - 1.0 / 3.0));
}

float hueDistance(float a, float b) {
    float d = abs(mod(mod(a, 360.0) + 360.0, 360.0) - mod(mod(b, 360.0) + 360.0, 360.0));
    return d > 180.0 ? 360.0 - d : d;
}

`)

	// Zone geometry if-chains generated from the shared tables.
	b.WriteString("float hslCenter(int i) {\n")
	for i, c := range hsl.Centers {
		fmt.Fprintf(b, "    if (i == %d) { return %s; }\n", i, glf(float64(c)))
	}
	b.WriteString("    return 0.0;\n}\n\n")

	b.WriteString("float hslRange(int i) {\n")
	for i, r := range hsl.Ranges {
		fmt.Fprintf(b, "    if (i == %d) { return %s; }\n", i, glf(float64(r)))
	}
	b.WriteString("    return 0.0;\n}\n\n")

	fmt.Fprintf(b, `float asymmetric(float v, float d) {
    if (d > 0.0) {
        v += (1.0 - v) * d;
    } else {
        v *= 1.0 + d;
    }
    return clamp(v, 0.0, 1.0);
}

vec3 hslAdjust(vec3 c) {
    vec3 hslc = rgb2hsl(c);
    if (hslc.y == 0.0) {
        return c;
    }
    float hueShift = 0.0;
    float satDelta = 0.0;
    float lumDelta = 0.0;
    float total = 0.0;
    for (int i = 0; i < %d; i++) {
        float dist = hueDistance(hslc.x, hslCenter(i));
        float rng = hslRange(i);
        if (dist >= rng) {
            continue;
        }
        float w = 0.5 * (1.0 + cos(PI * dist / rng));
        hueShift += w * u_hslHue[i];
        satDelta += w * u_hslSat[i] / 100.0;
        lumDelta += w * u_hslLum[i] / 100.0;
        total += w;
    }
    if (total == 0.0) {
        return c;
    }
    if (total > 1.0) {
        hueShift /= total;
        satDelta /= total;
        lumDelta /= total;
    }
    hslc.x += hueShift;
    hslc.y = asymmetric(hslc.y, satDelta);
    hslc.z = asymmetric(hslc.z, lumDelta * %s);
    return clamp(hsl2rgb(hslc), 0.0, 1.0);
}

vec3 globalSaturation(vec3 c) {
    float factor = 1.0 + u_saturation / 100.0;
    return clamp(mix(vec3(luma709(c)), c, factor), 0.0, 1.0);
}

`, hsl.NumChannels, glf(hsl.LumDamping))
}

// writeSplitToneStage emits the zone-weight computation and tint blend.
func writeSplitToneStage(b *strings.Builder) {
	fmt.Fprintf(b, `vec3 splitToneZone(vec3 c, float hue, float sat, float weight) {
    if (sat <= 0.0) {
        return c;
    }
    vec3 tintColor = hsl2rgb(vec3(hue, 1.0, 0.5));
    return mix(c, tintColor, %s * sat / 100.0 * weight);
}

vec3 splitTone(vec3 c) {
    if (u_splitSat.x <= 0.0 && u_splitSat.y <= 0.0 && u_splitSat.z <= 0.0) {
        return c;
    }
    float lum = luma709(c);
    float mid = clamp(0.5 + clamp(u_splitBalance, -100.0, 100.0) / 200.0, %s, %s);
    float sw = 1.0 - smoothstep(%s, %s, lum);
    float mw = smoothstep(%s, mid, lum) * (1.0 - smoothstep(mid, %s, lum));
    float hw = smoothstep(%s, %s, lum);
    c = splitToneZone(c, u_splitHue.x, u_splitSat.x, sw);
    c = splitToneZone(c, u_splitHue.y, u_splitSat.y, mw);
    c = splitToneZone(c, u_splitHue.z, u_splitSat.z, hw);
    return clamp(c, 0.0, 1.0);
}

`,
		glf(splittone.TintStrength),
		glf(splittone.ShadowEnd-splittone.TransitionWidth+splittone.MidpointMargin),
		glf(splittone.HighlightStart+splittone.TransitionWidth-splittone.MidpointMargin),
		glf(splittone.ShadowEnd-splittone.TransitionWidth),
		glf(splittone.ShadowEnd+splittone.TransitionWidth),
		glf(splittone.ShadowEnd-splittone.TransitionWidth),
		glf(splittone.HighlightStart+splittone.TransitionWidth),
		glf(splittone.HighlightStart-splittone.TransitionWidth),
		glf(splittone.HighlightStart+splittone.TransitionWidth))
}

// writeMain emits the stage chain in the pipeline's documented order.
func writeMain(b *strings.Builder, modern bool) {
	sample := "texture2D"
	if modern {
		sample = "texture"
	}

	fmt.Fprintf(b, `void main() {
    vec3 c = %s(u_image, v_texCoord).rgb;

    // 1. Film characteristic curve (negatives only).
    if (u_inverted == 1 && u_filmEnabled == 1) {
        c = filmCurve(c);
    }

    // 2. Film-base correction.
    c = baseCorrection(c);

    // 3. Density auto-levels (log mode only).
    if (u_densityLevelsEnabled == 1 && u_baseMode == 1) {
        c = densityLevels(c);
    }

    // 4. Negative-to-positive inversion.
    if (u_inverted == 1) {
        c = invertNegative(c);
    }
`, sample)

	if modern {
		b.WriteString(`
    // 5. 3D color LUT.
    if (u_lut3dEnabled == 1) {
        c = texture(u_lut3d, c).rgb;
    }
`)
	}

	fmt.Fprintf(b, `
    // 6. White balance.
    c = clamp(c * u_wbGains, 0.0, 1.0);

    // 7. Exposure.
    c = clamp(c * exp2(u_exposure / %s), 0.0, 1.0);

    // 8. Contrast around the perceptual pivot.
    float cf = (259.0 * (u_contrast + 255.0)) / (255.0 * (259.0 - u_contrast));
    c = clamp((c - %s) * cf + %s, 0.0, 1.0);

    // 9. Blacks/whites window remap.
    float blackPoint = -u_blacks * %s;
    float whitePoint = 1.0 - u_whites * %s;
    if (whitePoint - blackPoint > 1e-6) {
        c = clamp((c - blackPoint) / (whitePoint - blackPoint), 0.0, 1.0);
    }

    // 10. Shadow/highlight quadratic lift.
    float sf = u_shadows / 100.0 * %s;
    float hf = u_highlights / 100.0 * %s;
    vec3 inv = vec3(1.0) - c;
    c = clamp(c + sf * inv * inv * c * 4.0, 0.0, 1.0);
    inv = vec3(1.0) - c;
    c = clamp(c + hf * c * c * inv * 4.0, 0.0, 1.0);

    // 11. Highlight roll-off.
    c = rollOffRGB(c);

    // 12. Tone-curve LUT.
    c = vec3(
        %s(u_toneCurve, vec2(c.r, 0.5)).r,
        %s(u_toneCurve, vec2(c.g, 0.5)).g,
        %s(u_toneCurve, vec2(c.b, 0.5)).b);

    // 13. HSL zones and global saturation.
    c = hslAdjust(c);
    c = globalSaturation(c);

    // 14. Split toning.
    c = splitTone(c);

`,
		glf(colormath.ExposureHalfRange),
		glf(colormath.ContrastPivot), glf(colormath.ContrastPivot),
		glf(colormath.WindowScale), glf(colormath.WindowScale),
		glf(colormath.ShadowHighlightStrength), glf(colormath.ShadowHighlightStrength),
		sample, sample, sample)

	if modern {
		b.WriteString("    fragColor = vec4(c, 1.0);\n}\n")
	} else {
		b.WriteString("    gl_FragColor = vec4(c, 1.0);\n}\n")
	}
}
