package colormath

// RGBToHSL converts normalized RGB to HSL.
// Hue is in degrees [0, 360); saturation and lightness are in [0, 1].
func RGBToHSL(r, g, b float32) (h, s, l float32) {
	mx := Max3(r, g, b)
	mn := Min3(r, g, b)
	l = (mx + mn) / 2

	if mx == mn {
		// Achromatic: hue is undefined, report 0.
		return 0, 0, l
	}

	d := mx - mn
	if l > 0.5 {
		s = d / (2 - mx - mn)
	} else {
		s = d / (mx + mn)
	}

	switch mx {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	if h >= 360 {
		h -= 360
	}
	return h, s, l
}

// HSLToRGB converts HSL back to normalized RGB.
// Hue is in degrees (any value, wrapped); saturation and lightness in [0, 1].
func HSLToRGB(h, s, l float32) (r, g, b float32) {
	h = wrapHue(h) / 360

	if s == 0 {
		return l, l, l
	}

	var q float32
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	r = hueToChannel(p, q, h+1.0/3.0)
	g = hueToChannel(p, q, h)
	b = hueToChannel(p, q, h-1.0/3.0)
	return r, g, b
}

// hueToChannel computes one RGB channel from the intermediate p/q values.
func hueToChannel(p, q, t float32) float32 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

// wrapHue normalizes a hue angle in degrees to [0, 360).
func wrapHue(h float32) float32 {
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return h
}

// HueDistance returns the shortest angular distance between two hues in
// degrees, always in [0, 180].
func HueDistance(a, b float32) float32 {
	d := wrapHue(a) - wrapHue(b)
	if d < 0 {
		d = -d
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}
