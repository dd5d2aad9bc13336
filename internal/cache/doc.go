// Package cache provides a generic thread-safe LRU cache.
//
// The engine uses it to keep baked tone-curve LUTs keyed by a
// parameter hash, so re-rendering with recently seen adjustments skips
// the spline evaluation entirely.
//
//	c := cache.New[uint64, LUTPair](64)
//	pair := c.GetOrCreate(hash, build)
//
// Cache is safe for concurrent use and must not be copied after
// creation (it contains a mutex).
package cache
