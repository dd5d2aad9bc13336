package filmgrade

import (
	"github.com/filmgrade/filmgrade/curve"
	"github.com/filmgrade/filmgrade/internal/cache"
)

// lutPair bundles the two tone-LUT domains baked from one parameter
// set.
type lutPair struct {
	lut8 curve.Composite8
	lutF curve.CompositeF
}

// LUTCache shares baked tone-curve LUTs between Renderers. Entries are
// keyed by the parameter hash together with the float-LUT resolution,
// so any visible parameter change builds a fresh pair and stale LUTs
// age out via LRU eviction. The cache is owned by the caller; the
// package keeps no global LUT state.
type LUTCache struct {
	entries *cache.Cache[lutKey, lutPair]
}

type lutKey struct {
	hash       uint64
	resolution int
}

// NewLUTCache creates a cache holding at most limit LUT pairs. A limit
// of 0 means unlimited.
func NewLUTCache(limit int) *LUTCache {
	return &LUTCache{entries: cache.New[lutKey, lutPair](limit)}
}

// Len returns the number of cached LUT pairs.
func (c *LUTCache) Len() int { return c.entries.Len() }

// Invalidate drops the entry for a parameter set, forcing the next
// Renderer built from it to rebuild.
func (c *LUTCache) Invalidate(p AdjustmentParams, resolution int) {
	if resolution < 2 {
		resolution = curve.DefaultFloatResolution
	}
	c.entries.Delete(lutKey{hash: p.Clamped().Hash(), resolution: resolution})
}

// Clear drops every cached LUT pair.
func (c *LUTCache) Clear() { c.entries.Clear() }

// getOrBuild returns the LUT pair for clamped params, building it on
// first use.
func (c *LUTCache) getOrBuild(p AdjustmentParams, resolution int) (curve.Composite8, curve.CompositeF) {
	key := lutKey{hash: p.Hash(), resolution: resolution}
	pair := c.entries.GetOrCreate(key, func() lutPair {
		return lutPair{
			lut8: curve.BuildComposite8(p.CurveMaster, p.CurveRed, p.CurveGreen, p.CurveBlue),
			lutF: curve.BuildCompositeF(p.CurveMaster, p.CurveRed, p.CurveGreen, p.CurveBlue, resolution),
		}
	})
	return pair.lut8, pair.lutF
}
