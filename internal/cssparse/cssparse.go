// Package cssparse reads CSS color strings into channel values.
package cssparse

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	shortHex = regexp.MustCompile(`^#([a-fA-F0-9]{3})$`)
	longHex  = regexp.MustCompile(`^#([a-fA-F0-9]{6})$`)
	rgbaFunc = regexp.MustCompile(`^rgba?\(\s*([\d.]+)\s*,\s*([\d.]+)\s*,\s*([\d.]+)\s*(?:,\s*([\d.]+)\s*)?\)$`)
	rgbaPct  = regexp.MustCompile(`^rgba?\(\s*([\d.]+)%\s*,\s*([\d.]+)%\s*,\s*([\d.]+)%\s*(?:,\s*([\d.]+)\s*)?\)$`)
	hslaFunc = regexp.MustCompile(`^hsla?\(\s*(\d+)\s*,\s*([\d.]+)%\s*,\s*([\d.]+)%\s*(?:,\s*([\d.]+)\s*)?\)$`)
	keyword  = regexp.MustCompile(`^[a-z]+$`)
)

// RGBA parses hex, rgb()/rgba() (integer or percent channels) and keyword
// colors. It returns red, green, blue in 0-255 and alpha in 0-1.
func RGBA(text string) ([]float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, false
	}

	rgb := make([]float64, 3)
	alpha := 1.0

	if m := shortHex.FindStringSubmatch(s); m != nil {
		for i := range rgb {
			rgb[i] = hexByte(m[1][i:i+1] + m[1][i:i+1])
		}
	} else if m := longHex.FindStringSubmatch(s); m != nil {
		for i := range rgb {
			rgb[i] = hexByte(m[1][i*2 : i*2+2])
		}
	} else if m := rgbaFunc.FindStringSubmatch(strings.ToLower(s)); m != nil {
		for i := range rgb {
			// Fractional channels are truncated.
			rgb[i] = math.Trunc(number(m[i+1]))
		}
		alpha = optionalAlpha(m[4])
	} else if m := rgbaPct.FindStringSubmatch(strings.ToLower(s)); m != nil {
		for i := range rgb {
			rgb[i] = math.Round(number(m[i+1]) * 2.55)
		}
		alpha = optionalAlpha(m[4])
	} else if name := strings.ToLower(s); keyword.MatchString(name) {
		if name == "transparent" {
			return []float64{0, 0, 0, 0}, true
		}
		c, ok := colornames.Map[name]
		if !ok {
			return nil, false
		}
		rgb = []float64{float64(c.R), float64(c.G), float64(c.B)}
	} else {
		return nil, false
	}

	for i := range rgb {
		rgb[i] = clamp(rgb[i], 255)
	}
	return append(rgb, clamp(alpha, 1)), true
}

// HSLA parses hsl()/hsla() colors. It returns hue in 0-360, saturation and
// lightness in 0-100 and alpha in 0-1.
func HSLA(text string) ([]float64, bool) {
	m := hslaFunc.FindStringSubmatch(strings.ToLower(strings.TrimSpace(text)))
	if m == nil {
		return nil, false
	}
	return []float64{
		clamp(number(m[1]), 360),
		clamp(number(m[2]), 100),
		clamp(number(m[3]), 100),
		clamp(optionalAlpha(m[4]), 1),
	}, true
}

// Keywords returns every color keyword RGBA accepts, sorted.
func Keywords() []string {
	names := append(slices.Clone(colornames.Names), "transparent")
	slices.Sort(names)
	return names
}

func hexByte(s string) float64 {
	v, _ := strconv.ParseUint(s, 16, 8)
	return float64(v)
}

// number parses a regexp-validated decimal. Inputs such as "1.2.3" pass
// the pattern but not ParseFloat; they read as 0.
func number(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// optionalAlpha reads an alpha group that may be absent.
func optionalAlpha(s string) float64 {
	if s == "" {
		return 1
	}
	return number(s)
}

func clamp(v, limit float64) float64 {
	return math.Max(0, math.Min(limit, v))
}
