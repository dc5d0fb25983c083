package color

import "math"

// Negate inverts each rgb channel.
func (c *Color) Negate() *Color {
	rgb := c.array(RGB)
	for i := range rgb {
		rgb[i] = 255 - rgb[i]
	}
	return c.SetRGB(Seq(rgb))
}

// Lighten scales the hsl lightness up by ratio of its current value, so
// Lighten(0.5) on 40% lightness gives 60%.
func (c *Color) Lighten(ratio float64) *Color {
	return c.scaleHSL(2, 1+ratio)
}

// Darken scales the hsl lightness down by ratio of its current value.
func (c *Color) Darken(ratio float64) *Color {
	return c.scaleHSL(2, 1-ratio)
}

// Saturate scales the hsl saturation up by ratio of its current value.
func (c *Color) Saturate(ratio float64) *Color {
	return c.scaleHSL(1, 1+ratio)
}

// Desaturate scales the hsl saturation down by ratio of its current value.
func (c *Color) Desaturate(ratio float64) *Color {
	return c.scaleHSL(1, 1-ratio)
}

func (c *Color) scaleHSL(i int, factor float64) *Color {
	hsl := c.array(HSL)
	hsl[i] *= factor
	return c.SetHSL(Seq(hsl))
}

// Rotate turns the hue by degrees, wrapping into [0, 360).
func (c *Color) Rotate(degrees float64) *Color {
	hsl := c.array(HSL)
	hue := math.Mod(hsl[0]+degrees, 360)
	if hue < 0 {
		hue += 360
	}
	hsl[0] = hue
	return c.SetHSL(Seq(hsl))
}

// Greyscale replaces every rgb channel with the luma 0.3R + 0.59G + 0.11B.
func (c *Color) Greyscale() *Color {
	rgb := c.array(RGB)
	v := rgb[0]*0.3 + rgb[1]*0.59 + rgb[2]*0.11
	return c.SetRGB(Seq{v, v, v})
}

// Clearer reduces alpha by ratio of its current value.
func (c *Color) Clearer(ratio float64) *Color {
	return c.SetAlpha(c.alpha - c.alpha*ratio)
}

// Opaquer increases alpha by ratio of its current value.
func (c *Color) Opaquer(ratio float64) *Color {
	return c.SetAlpha(c.alpha + c.alpha*ratio)
}

// Mix blends other into c in equal parts.
func (c *Color) Mix(other *Color) *Color {
	return c.MixWeight(other, 0.5)
}

// MixWeight blends other into c, where weight is the share of other. The
// rgb share of each color is biased by the difference in their alphas, as
// in Sass's mix().
func (c *Color) MixWeight(other *Color, weight float64) *Color {
	a1, a2 := c.alpha, other.alpha
	rgb1, rgb2 := c.array(RGB), other.array(RGB)

	w := 1 - weight
	t1 := w*2 - 1
	d := a1 - a2

	var w1 float64
	if t1*d == -1 {
		w1 = t1
	} else {
		w1 = (t1 + d) / (1 + t1*d)
	}
	w1 = (w1 + 1) / 2
	w2 := 1 - w1

	for i := range rgb1 {
		rgb1[i] = rgb1[i]*w1 + rgb2[i]*w2
	}
	c.SetRGB(Seq(rgb1))
	return c.SetAlpha(a1*w + a2*(1-w))
}

// Luminosity returns the WCAG relative luminance in [0, 1].
// See https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func (c *Color) Luminosity() float64 {
	var lum [3]float64
	for i, v := range c.values[RGB][:3] {
		ch := v / 255
		if ch <= 0.03928 {
			lum[i] = ch / 12.92
		} else {
			lum[i] = math.Pow((ch+0.055)/1.055, 2.4)
		}
	}
	return 0.2126*lum[0] + 0.7152*lum[1] + 0.0722*lum[2]
}

// Contrast returns the WCAG contrast ratio between c and other, from 1 to
// 21. See https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func (c *Color) Contrast(other *Color) float64 {
	l1, l2 := c.Luminosity(), other.Luminosity()
	if l1 > l2 {
		return (l1 + 0.05) / (l2 + 0.05)
	}
	return (l2 + 0.05) / (l1 + 0.05)
}

// Dark reports whether c contrasts more with white than with black.
func (c *Color) Dark() bool {
	return c.Contrast(FromRGB(255, 255, 255)) > c.Contrast(FromRGB(0, 0, 0))
}

// Light is the negation of Dark.
func (c *Color) Light() bool {
	return !c.Dark()
}
