// Package convert holds the pure per-space-pair color conversions.
//
// All functions take and return unrounded, unclamped channel values in the
// ranges of their space: rgb 0-255, hue 0-360, everything else 0-100.
package convert

import "math"

// Func converts channel values from one space to another.
type Func func(vals []float64) []float64

var table = map[Space]map[Space]Func{
	RGB: {
		HSL:  RGBToHSL,
		HSV:  RGBToHSV,
		CMYK: RGBToCMYK,
	},
	HSL: {
		RGB:  HSLToRGB,
		HSV:  HSLToHSV,
		CMYK: via(HSLToRGB, RGBToCMYK),
	},
	HSV: {
		RGB:  HSVToRGB,
		HSL:  HSVToHSL,
		CMYK: via(HSVToRGB, RGBToCMYK),
	},
	CMYK: {
		RGB: CMYKToRGB,
		HSL: via(CMYKToRGB, RGBToHSL),
		HSV: via(CMYKToRGB, RGBToHSV),
	},
}

// via composes two conversions through an intermediate space. The
// intermediate values are never rounded.
func via(first, second Func) Func {
	return func(vals []float64) []float64 {
		return second(first(vals))
	}
}

// Lookup returns the conversion from one space to another. Converting a
// space to itself yields a copy of the input.
func Lookup(from, to Space) (Func, bool) {
	if from == to && from.valid() {
		return identity, true
	}
	f, ok := table[from][to]
	return f, ok
}

// Convert converts vals from one space to another. It panics on an invalid
// space, which can only come from a programming error.
func Convert(from, to Space, vals []float64) []float64 {
	f, ok := Lookup(from, to)
	if !ok {
		panic("convert: no conversion from " + from.String() + " to " + to.String())
	}
	return f(vals)
}

func identity(vals []float64) []float64 {
	out := make([]float64, len(vals))
	copy(out, vals)
	return out
}

// channel returns vals[i], or 0 when the slice is too short.
func channel(vals []float64, i int) float64 {
	if i < len(vals) {
		return vals[i]
	}
	return 0
}

// hexconeHue computes the hue in degrees shared by HSL and HSV.
func hexconeHue(r, g, b, lo, hi float64) float64 {
	delta := hi - lo
	var h float64
	switch {
	case hi == lo:
		h = 0
	case r == hi:
		h = (g - b) / delta
	case g == hi:
		h = 2 + (b-r)/delta
	default:
		h = 4 + (r-g)/delta
	}
	h = math.Min(h*60, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// RGBToHSL converts rgb (0-255) to hsl.
func RGBToHSL(rgb []float64) []float64 {
	r, g, b := channel(rgb, 0)/255, channel(rgb, 1)/255, channel(rgb, 2)/255
	lo := min(r, g, b)
	hi := max(r, g, b)
	delta := hi - lo

	h := hexconeHue(r, g, b, lo, hi)
	l := (lo + hi) / 2

	var s float64
	switch {
	case hi == lo:
		s = 0
	case l <= 0.5:
		s = delta / (hi + lo)
	default:
		s = delta / (2 - hi - lo)
	}

	return []float64{h, s * 100, l * 100}
}

// RGBToHSV converts rgb (0-255) to hsv.
func RGBToHSV(rgb []float64) []float64 {
	r, g, b := channel(rgb, 0), channel(rgb, 1), channel(rgb, 2)
	lo := min(r, g, b)
	hi := max(r, g, b)
	delta := hi - lo

	var s float64
	if hi != 0 {
		s = delta / hi * 100
	}

	h := hexconeHue(r, g, b, lo, hi)
	v := hi / 255 * 100

	return []float64{h, s, v}
}

// RGBToCMYK converts rgb (0-255) to cmyk.
func RGBToCMYK(rgb []float64) []float64 {
	r, g, b := channel(rgb, 0)/255, channel(rgb, 1)/255, channel(rgb, 2)/255
	k := math.Min(math.Min(1-r, 1-g), 1-b)

	// Pure black has no chromatic component.
	if k == 1 {
		return []float64{0, 0, 0, 100}
	}

	c := (1 - r - k) / (1 - k)
	m := (1 - g - k) / (1 - k)
	y := (1 - b - k) / (1 - k)
	return []float64{c * 100, m * 100, y * 100, k * 100}
}

// HSLToRGB converts hsl to rgb (0-255).
func HSLToRGB(hsl []float64) []float64 {
	h, s, l := channel(hsl, 0)/360, channel(hsl, 1)/100, channel(hsl, 2)/100

	if s == 0 {
		v := l * 255
		return []float64{v, v, v}
	}

	var t2 float64
	if l < 0.5 {
		t2 = l * (1 + s)
	} else {
		t2 = l + s - l*s
	}
	t1 := 2*l - t2

	rgb := make([]float64, 3)
	for i := range rgb {
		// Offsets of +1/3, 0 and -1/3 for red, green and blue.
		t3 := h - float64(i-1)/3
		if t3 < 0 {
			t3++
		}
		if t3 > 1 {
			t3--
		}

		var v float64
		switch {
		case 6*t3 < 1:
			v = t1 + (t2-t1)*6*t3
		case 2*t3 < 1:
			v = t2
		case 3*t3 < 2:
			v = t1 + (t2-t1)*(2.0/3-t3)*6
		default:
			v = t1
		}
		rgb[i] = v * 255
	}
	return rgb
}

// HSLToHSV converts hsl to hsv. The hue is carried over unchanged.
func HSLToHSV(hsl []float64) []float64 {
	h, s, l := channel(hsl, 0), channel(hsl, 1)/100, channel(hsl, 2)/100

	l *= 2
	if l <= 1 {
		s *= l
	} else {
		s *= 2 - l
	}
	v := (l + s) / 2

	var sv float64
	if l+s != 0 {
		sv = 2 * s / (l + s)
	}
	return []float64{h, sv * 100, v * 100}
}

// HSVToRGB converts hsv to rgb (0-255).
func HSVToRGB(hsv []float64) []float64 {
	h, s, v := channel(hsv, 0)/60, channel(hsv, 1)/100, channel(hsv, 2)/100

	fl := math.Floor(h)
	f := h - fl
	hi := int(fl) % 6
	if hi < 0 {
		hi += 6
	}

	p := 255 * v * (1 - s)
	q := 255 * v * (1 - s*f)
	t := 255 * v * (1 - s*(1-f))
	v *= 255

	switch hi {
	case 0:
		return []float64{v, t, p}
	case 1:
		return []float64{q, v, p}
	case 2:
		return []float64{p, v, t}
	case 3:
		return []float64{p, q, v}
	case 4:
		return []float64{t, p, v}
	default:
		return []float64{v, p, q}
	}
}

// HSVToHSL converts hsv to hsl. The hue is carried over unchanged.
func HSVToHSL(hsv []float64) []float64 {
	h, s, v := channel(hsv, 0), channel(hsv, 1)/100, channel(hsv, 2)/100

	l := (2 - s) * v
	sl := s * v
	div := l
	if l > 1 {
		div = 2 - l
	}
	if div != 0 {
		sl /= div
	} else {
		sl = 0
	}
	l /= 2

	return []float64{h, sl * 100, l * 100}
}

// CMYKToRGB converts cmyk to rgb (0-255).
func CMYKToRGB(cmyk []float64) []float64 {
	c := channel(cmyk, 0) / 100
	m := channel(cmyk, 1) / 100
	y := channel(cmyk, 2) / 100
	k := channel(cmyk, 3) / 100

	r := 1 - math.Min(1, c*(1-k)+k)
	g := 1 - math.Min(1, m*(1-k)+k)
	b := 1 - math.Min(1, y*(1-k)+k)
	return []float64{r * 255, g * 255, b * 255}
}
