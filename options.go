package filmgrade

import "github.com/filmgrade/filmgrade/curve"

// Option configures a Renderer during creation.
//
// Example:
//
//	// Default configuration
//	r := filmgrade.NewRenderer(params)
//
//	// Shared LUT cache across renderers
//	cache := filmgrade.NewLUTCache(64)
//	r := filmgrade.NewRenderer(params, filmgrade.WithLUTCache(cache))
type Option func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	lutResolution int
	lutCache      *LUTCache
}

// defaultRendererOptions returns the default renderer options.
func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		lutResolution: curve.DefaultFloatResolution,
	}
}

// WithLUTResolution sets the float tone-LUT resolution. Values below 2
// fall back to the default. The 8-bit LUT is always 256 entries.
func WithLUTResolution(n int) Option {
	return func(o *rendererOptions) {
		if n >= 2 {
			o.lutResolution = n
		}
	}
}

// WithLUTCache attaches a shared tone-LUT cache. Renderers built for
// params already in the cache reuse the baked LUTs instead of
// rebuilding them.
func WithLUTCache(c *LUTCache) Option {
	return func(o *rendererOptions) {
		o.lutCache = c
	}
}
