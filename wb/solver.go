package wb

import "math"

// Solver tuning. The residual is measured in 8-bit levels, so the
// convergence threshold of 0.3 means "neutral to within a third of a
// level".
const (
	solverMaxIter   = 30
	solverDamping   = 0.75
	solverTolerance = 0.3
	solverJacobianH = 1.0 // finite-difference step in slider units

	// neutralSpread is the channel spread (8-bit levels) below which a
	// sample is already neutral and the solver short-circuits.
	neutralSpread = 2.0
)

// SolveTempTint infers the temperature/tint pair that neutralizes a
// sampled should-be-gray pixel, given the base gains that will also be
// applied.
//
// The sample is in 8-bit units (0-255). The initial estimate comes from
// the legacy linear model's algebraic inverse; Newton-Raphson with a
// numerical Jacobian then drives the residuals (R-G and B-G after gain
// application) to zero against the Kelvin model, so the solver can never
// disagree with the renderer about what a given temp/tint does.
//
// Degenerate samples (near-black or already neutral) return {0, 0}.
// Solutions whose gains land outside the safety window are halved.
func SolveTempTint(sampleR, sampleG, sampleB float64, base Gains) TempTint {
	if !isFinite(sampleR) || !isFinite(sampleG) || !isFinite(sampleB) {
		return TempTint{}
	}
	base = sanitizeGains(base)

	mx := math.Max(sampleR, math.Max(sampleG, sampleB))
	mn := math.Min(sampleR, math.Min(sampleG, sampleB))
	if mx < 1 || mx-mn < neutralSpread {
		// Too dark to trust, or already neutral.
		return TempTint{}
	}

	tt := legacyEstimate(sampleR, sampleG, sampleB, base)

	residual := func(tt TempTint) (float64, float64) {
		g := ComputeGains(base, tt, ModelKelvin)
		return sampleR*g.R - sampleG*g.G, sampleB*g.B - sampleG*g.G
	}

	for iter := 0; iter < solverMaxIter; iter++ {
		f1, f2 := residual(tt)
		if math.Abs(f1) < solverTolerance && math.Abs(f2) < solverTolerance {
			break
		}

		// Numerical Jacobian by forward differences.
		f1t, f2t := residual(TempTint{Temp: tt.Temp + solverJacobianH, Tint: tt.Tint})
		f1n, f2n := residual(TempTint{Temp: tt.Temp, Tint: tt.Tint + solverJacobianH})

		j11 := (f1t - f1) / solverJacobianH // ∂f1/∂temp
		j12 := (f1n - f1) / solverJacobianH // ∂f1/∂tint
		j21 := (f2t - f2) / solverJacobianH
		j22 := (f2n - f2) / solverJacobianH

		det := j11*j22 - j12*j21
		if math.Abs(det) < 1e-9 {
			break
		}

		// Newton step: J · d = -f, damped.
		dTemp := -(j22*f1 - j12*f2) / det
		dTint := -(-j21*f1 + j11*f2) / det

		tt.Temp = clampSlider(tt.Temp + solverDamping*dTemp)
		tt.Tint = clampSlider(tt.Tint + solverDamping*dTint)
	}

	// Safety margin: halve extreme solutions rather than return gains
	// that would crush a channel.
	g := ComputeGains(base, tt, ModelKelvin)
	if outsideSafeWindow(g) {
		tt.Temp /= 2
		tt.Tint /= 2
	}
	return tt
}

// legacyEstimate algebraically inverts the legacy linear model for the
// sample, giving the Newton iteration a starting point that is usually
// within a few slider units of the Kelvin-model solution.
func legacyEstimate(r, g, b float64, base Gains) TempTint {
	ra := r * base.R
	ga := g * base.G
	ba := b * base.B
	if ra+ba <= 0 || ga <= 0 {
		return TempTint{}
	}

	// Solve ra*(1+t/150) = ba*(1-t/150) for the temp slider.
	temp := 150 * (ba - ra) / (ba + ra)

	// Then pick tint so green matches the corrected red level:
	// ga*(1-tint/200) = ra*(1+temp/150).
	tint := 200 * (1 - ra*(1+temp/150)/ga)

	return TempTint{Temp: clampSlider(temp), Tint: clampSlider(tint)}
}

// outsideSafeWindow reports whether any gain escapes [0.1, 10].
func outsideSafeWindow(g Gains) bool {
	for _, v := range [3]float64{g.R, g.G, g.B} {
		if v < safeGainLo || v > safeGainHi {
			return true
		}
	}
	return false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
