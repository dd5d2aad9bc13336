package curve

// LUT8 is a 256-entry 8-bit lookup table mapping an input level directly to
// an output level. Used by the integer pixel path and by the 256×1 RGBA
// tone-curve texture uploaded to the GPU.
type LUT8 [256]uint8

// LUTF is a float lookup table with configurable resolution mapping a
// normalized input in [0, 1] to a normalized output. Used by the float
// pixel path, where 256 entries would reintroduce 8-bit quantization.
type LUTF []float32

// DefaultFloatResolution is the LUTF resolution used when a caller passes
// a non-positive resolution.
const DefaultFloatResolution = 1024

// BuildLUT8 bakes a control-point curve into a 256-entry 8-bit table.
// Nil or identity point sets produce the identity table.
func BuildLUT8(points []Point) LUT8 {
	var lut LUT8
	if IsIdentity(points) {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}
	s := newSpline(points)
	for i := range lut {
		lut[i] = uint8(clamp255(s.eval(float32(i))) + 0.5)
	}
	return lut
}

// BuildLUTF bakes a control-point curve into a float table with the given
// resolution (entries). Input and output are normalized to [0, 1]; the
// spline itself is still evaluated in the 0-255 control-point domain.
func BuildLUTF(points []Point, resolution int) LUTF {
	if resolution <= 1 {
		resolution = DefaultFloatResolution
	}
	lut := make(LUTF, resolution)
	if IsIdentity(points) {
		for i := range lut {
			lut[i] = float32(i) / float32(resolution-1)
		}
		return lut
	}
	s := newSpline(points)
	for i := range lut {
		x := float32(i) / float32(resolution-1) * 255
		lut[i] = clamp255(s.eval(x)) / 255
	}
	return lut
}

// Lookup returns the mapped level for v.
func (l *LUT8) Lookup(v uint8) uint8 {
	return l[v]
}

// LookupNorm maps a normalized input through the 8-bit table, quantizing
// the input to the nearest of the 256 entries. This is the documented
// 8-bit-domain conversion; callers needing sub-level precision use LUTF.
func (l *LUT8) LookupNorm(v float32) float32 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return float32(l[int(v*255+0.5)]) / 255
}

// Lookup maps a normalized input through the float table with linear
// interpolation between adjacent entries.
func (l LUTF) Lookup(v float32) float32 {
	n := len(l)
	if n == 0 {
		return v
	}
	if v <= 0 {
		return l[0]
	}
	if v >= 1 {
		return l[n-1]
	}
	pos := v * float32(n-1)
	i := int(pos)
	frac := pos - float32(i)
	return l[i] + (l[i+1]-l[i])*frac
}

// Composite8 holds the merged per-channel 8-bit tables: each channel table
// already includes the RGB master curve, so one lookup per channel applies
// both curves.
type Composite8 struct {
	R LUT8
	G LUT8
	B LUT8
}

// CompositeF is the float-domain counterpart of Composite8.
type CompositeF struct {
	R LUTF
	G LUTF
	B LUTF
}

// BuildComposite8 merges an RGB master curve with per-channel curves into
// one table per channel: out = channel(master(in)). Nil slices mean
// identity for that curve.
func BuildComposite8(master, r, g, b []Point) Composite8 {
	m := BuildLUT8(master)
	rl := BuildLUT8(r)
	gl := BuildLUT8(g)
	bl := BuildLUT8(b)
	var c Composite8
	for i := 0; i < 256; i++ {
		mi := m[i]
		c.R[i] = rl[mi]
		c.G[i] = gl[mi]
		c.B[i] = bl[mi]
	}
	return c
}

// BuildCompositeF merges the master and per-channel curves into float
// tables. The master curve output feeds the channel curves through linear
// interpolation, so no 8-bit quantization occurs between the two curves.
func BuildCompositeF(master, r, g, b []Point, resolution int) CompositeF {
	if resolution <= 1 {
		resolution = DefaultFloatResolution
	}
	m := BuildLUTF(master, resolution)
	rl := BuildLUTF(r, resolution)
	gl := BuildLUTF(g, resolution)
	bl := BuildLUTF(b, resolution)
	c := CompositeF{
		R: make(LUTF, resolution),
		G: make(LUTF, resolution),
		B: make(LUTF, resolution),
	}
	for i := 0; i < resolution; i++ {
		mv := m[i]
		c.R[i] = rl.Lookup(mv)
		c.G[i] = gl.Lookup(mv)
		c.B[i] = bl.Lookup(mv)
	}
	return c
}

// Apply maps a normalized RGB triple through the composite float tables.
func (c *CompositeF) Apply(r, g, b float32) (float32, float32, float32) {
	return c.R.Lookup(r), c.G.Lookup(g), c.B.Lookup(b)
}

// Apply maps a normalized RGB triple through the composite 8-bit tables.
func (c *Composite8) Apply(r, g, b float32) (float32, float32, float32) {
	return c.R.LookupNorm(r), c.G.LookupNorm(g), c.B.LookupNorm(b)
}
