// Package filmgrade is a color-rendering engine for photographic film
// scans. It converts pixels plus an [AdjustmentParams] set into
// corrected output through a fixed 14-stage pipeline covering negative
// inversion (H&D density model), white balance (CIE daylight
// colorimetry), tone controls, user curves, 8-channel HSL and split
// toning.
//
// The same math is available two ways with verified parity:
//
//   - a pure per-pixel CPU path ([Renderer.ProcessPixel],
//     [Renderer.ProcessPixel16], [Renderer.ProcessPixelFloat]) used for
//     thumbnails, exports and 16-bit batch jobs, and
//   - generated GLSL fragment-shader source (package shader) consumed
//     by an external GPU harness for live preview. The engine emits
//     source text only; it never compiles or executes GPU programs.
//
// Build a Renderer once per parameter set and reuse it: derived gains,
// zone contexts and tone LUTs are baked at construction, and the
// per-pixel calls are pure reads safe for any degree of concurrency.
//
//	r := filmgrade.NewRenderer(params)
//	out, err := r.RenderImage(img, 0)
//
// Domain math lives in the subpackages wb, film, hsl, splittone, curve
// and cubelut; they are usable on their own.
package filmgrade
