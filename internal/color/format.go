package color

import (
	"encoding/json"
	"fmt"
	stdcolor "image/color"
	"math"

	"github.com/jsvensson/huekit/internal/cssformat"
)

// HexString returns the color as "#RRGGBB". Alpha is dropped.
func (c *Color) HexString() string {
	return cssformat.Hex(c.values[RGB][:3])
}

// RGBString returns "rgb(r, g, b)", or "rgba(...)" when not opaque.
func (c *Color) RGBString() string {
	return cssformat.RGB(c.values[RGB][:3], c.alpha)
}

// RGBAString returns "rgba(r, g, b, a)".
func (c *Color) RGBAString() string {
	return cssformat.RGBA(c.values[RGB][:3], c.alpha)
}

// PercentString returns "rgb(r%, g%, b%)", or "rgba(...)" when not opaque.
func (c *Color) PercentString() string {
	return cssformat.Percent(c.values[RGB][:3], c.alpha)
}

// HSLString returns "hsl(h, s%, l%)", or "hsla(...)" when not opaque.
func (c *Color) HSLString() string {
	return cssformat.HSL(c.values[HSL][:3], c.alpha)
}

// HSLAString returns "hsla(h, s%, l%, a)".
func (c *Color) HSLAString() string {
	return cssformat.HSLA(c.values[HSL][:3], c.alpha)
}

// Keyword returns the CSS keyword for the rgb value, or "" if none names it.
func (c *Color) Keyword() string {
	return cssformat.Keyword(c.values[RGB][:3])
}

func (c *Color) String() string {
	return c.RGBString()
}

// MarshalJSON encodes the rgb object form, e.g. {"r":255,"g":0,"b":0}.
func (c *Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.RGB())
}

// UnmarshalJSON accepts either a CSS color string or a channel object in
// any of the forms Detect understands.
func (c *Color) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		parsed, err := Parse(text)
		if err != nil {
			return err
		}
		*c = *parsed
		return nil
	}

	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("decoding color: %w", err)
	}
	in := Detect(m)
	if in == nil {
		return fmt.Errorf("decoding color: no known channel keys in %s", data)
	}
	*c = *New(in)
	return nil
}

// RGBA implements image/color.Color, returning alpha-premultiplied
// 16-bit channels.
func (c *Color) RGBA() (r, g, b, a uint32) {
	return stdcolor.NRGBA{
		R: uint8(c.values[RGB][0]),
		G: uint8(c.values[RGB][1]),
		B: uint8(c.values[RGB][2]),
		A: uint8(math.Round(c.alpha * 255)),
	}.RGBA()
}

// FromStd converts any image/color.Color.
func FromStd(sc stdcolor.Color) *Color {
	n := stdcolor.NRGBAModel.Convert(sc).(stdcolor.NRGBA)
	return New(RGBInput{Values: Seq{float64(n.R), float64(n.G), float64(n.B), float64(n.A) / 255}})
}
