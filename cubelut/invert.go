package cubelut

import "github.com/chewxy/math32"

const (
	invertMaxIter   = 30
	invertDamping   = 0.75
	invertTolerance = 1e-6
	invertStep      = 1e-3
)

// Invert builds the approximate inverse of l on a grid of the same
// size: for each target color t, the result holds the input x with
// l.Sample(x) closest to t.
//
// Each grid point starts from the forward grid node whose output is
// nearest the target, then refines with damped Newton iteration on a
// numerical Jacobian. Folded or flat regions of the forward LUT stop
// improving and keep the best estimate found, so the inverse is always
// usable even when a true inverse does not exist everywhere.
func Invert(l *LUT3D) *LUT3D {
	size := l.Size
	inv := &LUT3D{
		Title:     l.Title,
		Size:      size,
		DomainMax: [3]float32{1, 1, 1},
		Data:      make([]float32, size*size*size*3),
	}

	step := 1 / float32(size-1)
	i := 0
	for b := 0; b < size; b++ {
		for g := 0; g < size; g++ {
			for r := 0; r < size; r++ {
				tr := float32(r) * step
				tg := float32(g) * step
				tb := float32(b) * step
				x, y, z := solvePoint(l, tr, tg, tb)
				inv.Data[i] = x
				inv.Data[i+1] = y
				inv.Data[i+2] = z
				i += 3
			}
		}
	}
	return inv
}

// solvePoint finds the input whose forward-LUT output is nearest the
// target.
func solvePoint(l *LUT3D, tr, tg, tb float32) (float32, float32, float32) {
	x, y, z := nearestSeed(l, tr, tg, tb)

	bestX, bestY, bestZ := x, y, z
	bestErr := residualNorm(l, x, y, z, tr, tg, tb)

	for i := 0; i < invertMaxIter; i++ {
		if bestErr < invertTolerance {
			break
		}
		fr, fg, fb := l.Sample(x, y, z)
		er, eg, eb := fr-tr, fg-tg, fb-tb

		dx, dy, dz, ok := newtonStep(l, x, y, z, er, eg, eb)
		if !ok {
			break
		}
		x = clamp01(x - invertDamping*dx)
		y = clamp01(y - invertDamping*dy)
		z = clamp01(z - invertDamping*dz)

		if e := residualNorm(l, x, y, z, tr, tg, tb); e < bestErr {
			bestErr = e
			bestX, bestY, bestZ = x, y, z
		}
	}
	return bestX, bestY, bestZ
}

// nearestSeed scans the forward grid for the node whose output is
// closest to the target.
func nearestSeed(l *LUT3D, tr, tg, tb float32) (float32, float32, float32) {
	size := l.Size
	step := 1 / float32(size-1)
	best := float32(math32.MaxFloat32)
	var bx, by, bz float32

	i := 0
	for b := 0; b < size; b++ {
		for g := 0; g < size; g++ {
			for r := 0; r < size; r++ {
				dr := l.Data[i] - tr
				dg := l.Data[i+1] - tg
				db := l.Data[i+2] - tb
				d := dr*dr + dg*dg + db*db
				if d < best {
					best = d
					bx = float32(r) * step
					by = float32(g) * step
					bz = float32(b) * step
				}
				i += 3
			}
		}
	}
	return bx, by, bz
}

// newtonStep solves J·d = e for the update d using a forward-difference
// Jacobian. Returns ok=false when the Jacobian is singular.
func newtonStep(l *LUT3D, x, y, z, er, eg, eb float32) (dx, dy, dz float32, ok bool) {
	fr, fg, fb := l.Sample(x, y, z)

	jxr, jxg, jxb := diff3(l, x+invertStep, y, z, fr, fg, fb)
	jyr, jyg, jyb := diff3(l, x, y+invertStep, z, fr, fg, fb)
	jzr, jzg, jzb := diff3(l, x, y, z+invertStep, fr, fg, fb)

	det := jxr*(jyg*jzb-jyb*jzg) - jyr*(jxg*jzb-jxb*jzg) + jzr*(jxg*jyb-jxb*jyg)
	if math32.Abs(det) < 1e-12 {
		return 0, 0, 0, false
	}

	// Cramer's rule; the Jacobian columns are the three partials.
	dx = (er*(jyg*jzb-jyb*jzg) - jyr*(eg*jzb-eb*jzg) + jzr*(eg*jyb-eb*jyg)) / det
	dy = (jxr*(eg*jzb-eb*jzg) - er*(jxg*jzb-jxb*jzg) + jzr*(jxg*eb-jxb*eg)) / det
	dz = (jxr*(jyg*eb-jyb*eg) - jyr*(jxg*eb-jxb*eg) + er*(jxg*jyb-jxb*jyg)) / det
	return dx, dy, dz, true
}

// diff3 returns the forward difference of Sample against a base value.
func diff3(l *LUT3D, x, y, z, br, bg, bb float32) (float32, float32, float32) {
	r, g, b := l.Sample(x, y, z)
	return (r - br) / invertStep, (g - bg) / invertStep, (b - bb) / invertStep
}

func residualNorm(l *LUT3D, x, y, z, tr, tg, tb float32) float32 {
	r, g, b := l.Sample(x, y, z)
	dr, dg, db := r-tr, g-tg, b-tb
	return dr*dr + dg*dg + db*db
}

// RoundTripError measures inversion quality: it pushes a uniform grid
// of n³ colors through forward then inverse and reports the max and
// mean distance from the original input.
func RoundTripError(forward, inverse *LUT3D, n int) (maxErr, meanErr float32) {
	if n < 2 {
		n = 2
	}
	step := 1 / float32(n-1)
	var sum float32
	var count int
	for b := 0; b < n; b++ {
		for g := 0; g < n; g++ {
			for r := 0; r < n; r++ {
				x := float32(r) * step
				y := float32(g) * step
				z := float32(b) * step
				fr, fg, fb := forward.Sample(x, y, z)
				ir, ig, ib := inverse.Sample(fr, fg, fb)
				d := math32.Sqrt((ir-x)*(ir-x) + (ig-y)*(ig-y) + (ib-z)*(ib-z))
				if d > maxErr {
					maxErr = d
				}
				sum += d
				count++
			}
		}
	}
	return maxErr, sum / float32(count)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
