// Package cssformat renders channel values as CSS color strings.
package cssformat

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/image/colornames"
)

// keywords maps packed rgb values to the alphabetically first keyword, so
// aqua wins over cyan and gray over grey.
var keywords = make(map[uint32]string, len(colornames.Names))

func init() {
	for _, name := range colornames.Names {
		c := colornames.Map[name]
		key := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
		if _, ok := keywords[key]; !ok {
			keywords[key] = name
		}
	}
}

// Hex returns rgb as an upper-case #RRGGBB string.
func Hex(rgb []float64) string {
	return fmt.Sprintf("#%02X%02X%02X", byteOf(rgb, 0), byteOf(rgb, 1), byteOf(rgb, 2))
}

// RGB returns "rgb(r, g, b)", or the rgba form when alpha is below 1.
func RGB(rgb []float64, alpha float64) string {
	if alpha < 1 {
		return RGBA(rgb, alpha)
	}
	return fmt.Sprintf("rgb(%s, %s, %s)", num(rgb, 0), num(rgb, 1), num(rgb, 2))
}

// RGBA returns "rgba(r, g, b, a)".
func RGBA(rgb []float64, alpha float64) string {
	return fmt.Sprintf("rgba(%s, %s, %s, %s)", num(rgb, 0), num(rgb, 1), num(rgb, 2), formatNumber(alpha))
}

// Percent returns "rgb(r%, g%, b%)", or the rgba form when alpha is below 1.
func Percent(rgb []float64, alpha float64) string {
	if alpha < 1 {
		return Percenta(rgb, alpha)
	}
	r, g, b := percents(rgb)
	return fmt.Sprintf("rgb(%d%%, %d%%, %d%%)", r, g, b)
}

// Percenta returns "rgba(r%, g%, b%, a)".
func Percenta(rgb []float64, alpha float64) string {
	r, g, b := percents(rgb)
	return fmt.Sprintf("rgba(%d%%, %d%%, %d%%, %s)", r, g, b, formatNumber(alpha))
}

// HSL returns "hsl(h, s%, l%)", or the hsla form when alpha is below 1.
func HSL(hsl []float64, alpha float64) string {
	if alpha < 1 {
		return HSLA(hsl, alpha)
	}
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", num(hsl, 0), num(hsl, 1), num(hsl, 2))
}

// HSLA returns "hsla(h, s%, l%, a)".
func HSLA(hsl []float64, alpha float64) string {
	return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)", num(hsl, 0), num(hsl, 1), num(hsl, 2), formatNumber(alpha))
}

// Keyword returns the CSS keyword naming rgb exactly, or "" when there is
// none.
func Keyword(rgb []float64) string {
	key := uint32(byteOf(rgb, 0))<<16 | uint32(byteOf(rgb, 1))<<8 | uint32(byteOf(rgb, 2))
	return keywords[key]
}

func channel(vals []float64, i int) float64 {
	if i < len(vals) {
		return vals[i]
	}
	return 0
}

func byteOf(vals []float64, i int) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(channel(vals, i)))))
}

func num(vals []float64, i int) string {
	return formatNumber(channel(vals, i))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func percents(rgb []float64) (r, g, b int) {
	pct := func(i int) int {
		return int(math.Round(channel(rgb, i) / 255 * 100))
	}
	return pct(0), pct(1), pct(2)
}
