package color

import (
	"fmt"
	"math"

	"github.com/jsvensson/huekit/internal/convert"
	"github.com/jsvensson/huekit/internal/cssparse"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("huekit.color")

// Space aliases so callers need not import the convert package.
type Space = convert.Space

const (
	RGB  = convert.RGB
	HSL  = convert.HSL
	HSV  = convert.HSV
	CMYK = convert.CMYK
)

// Color is a mutable color value kept in sync across the rgb, hsl, hsv and
// cmyk spaces. Every setter writes one space and recomputes the other three
// from it, so all four always describe the same color.
//
// A Color holds no references; copying the struct (see Clone) yields an
// independent value. A Color must not be mutated from several goroutines at
// once. Use New or one of the From constructors; the zero value is fully
// transparent black.
type Color struct {
	// values is indexed by Space; only the first Space.Len() channels are used.
	values [4][4]float64
	alpha  float64
}

// New builds a Color from in. A nil input, unrecognized text or a
// Values shape matching no channel keys leaves the color opaque black.
func New(in Input) *Color {
	c := &Color{alpha: 1}
	c.setValues(RGB, Seq{0, 0, 0})
	if in == nil {
		return c
	}

	space, vals, ok := in.resolveInput()
	if !ok {
		log.Debugf("unrecognized color input %v, using black", in)
		return c
	}
	c.setValues(space, vals)
	return c
}

// Parse builds a Color from CSS text and, unlike New, reports text that
// matches no known color syntax.
func Parse(text string) (*Color, error) {
	in := TextInput(text)
	if _, _, ok := in.resolveInput(); !ok {
		return nil, fmt.Errorf("unrecognized color %q", text)
	}
	return New(in), nil
}

// MustParse is like Parse but panics on unrecognized text.
func MustParse(text string) *Color {
	c, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return c
}

// FromRGB returns an opaque color from red, green and blue in 0-255.
func FromRGB(r, g, b float64) *Color {
	return New(RGBInput{Values: Seq{r, g, b}})
}

// FromHSL returns an opaque color from hue in degrees and saturation and
// lightness in 0-100.
func FromHSL(h, s, l float64) *Color {
	return New(HSLInput{Values: Seq{h, s, l}})
}

// FromHSV returns an opaque color from hue in degrees and saturation and
// value in 0-100.
func FromHSV(h, s, v float64) *Color {
	return New(HSVInput{Values: Seq{h, s, v}})
}

// FromCMYK returns an opaque color from cyan, magenta, yellow and black in
// 0-100.
func FromCMYK(c, m, y, k float64) *Color {
	return New(CMYKInput{Values: Seq{c, m, y, k}})
}

// Clone returns an independent copy of c.
func (c *Color) Clone() *Color {
	cp := *c
	return &cp
}

// setValues writes vals into space and re-derives every other space from
// it. All spaces, the source included, are then clamped and rounded.
func (c *Color) setValues(space Space, v Values) {
	n := space.Len()

	if v != nil {
		vals, alpha, hasAlpha := v.resolve(space)
		if hasAlpha {
			c.setAlpha(alpha)
		}
		if vals != nil {
			copy(c.values[space][:n], vals)
		}
	}

	src := make([]float64, n)
	copy(src, c.values[space][:n])

	for _, s := range convert.Spaces {
		if s != space {
			copy(c.values[s][:s.Len()], convert.Convert(space, s, src))
		}
		for i, limit := range s.Max() {
			c.values[s][i] = clampRound(c.values[s][i], limit)
		}
	}
}

// setAlpha is the alpha-only path; it never touches the color spaces.
func (c *Color) setAlpha(a float64) {
	if math.IsNaN(a) {
		return
	}
	c.alpha = math.Max(0, math.Min(1, a))
}

// clampRound clamps v to [0, limit] and then rounds it.
func clampRound(v, limit float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Round(math.Max(0, math.Min(limit, v)))
}

// array returns a fresh copy of the channels of space.
func (c *Color) array(space Space) []float64 {
	out := make([]float64, space.Len())
	copy(out, c.values[space][:])
	return out
}

// Values returns the channels of space keyed by short letter, plus "a" when
// the color is not fully opaque.
func (c *Color) Values(space Space) Channels {
	out := make(Channels, space.Len()+1)
	for i, k := range space.Letters() {
		out[k] = c.values[space][i]
	}
	if c.alpha != 1 {
		out["a"] = c.alpha
	}
	return out
}

// Set writes space from v and resynchronizes the other spaces.
func (c *Color) Set(space Space, v Values) *Color {
	c.setValues(space, v)
	return c
}

// RGB returns {"r", "g", "b"} plus "a" when not opaque.
func (c *Color) RGB() Channels { return c.Values(RGB) }

// HSL returns {"h", "s", "l"} plus "a" when not opaque.
func (c *Color) HSL() Channels { return c.Values(HSL) }

// HSV returns {"h", "s", "v"} plus "a" when not opaque.
func (c *Color) HSV() Channels { return c.Values(HSV) }

// CMYK returns {"c", "m", "y", "k"} plus "a" when not opaque.
func (c *Color) CMYK() Channels { return c.Values(CMYK) }

// SetRGB, SetHSL, SetHSV and SetCMYK are Set for a fixed space.
func (c *Color) SetRGB(v Values) *Color  { return c.Set(RGB, v) }
func (c *Color) SetHSL(v Values) *Color  { return c.Set(HSL, v) }
func (c *Color) SetHSV(v Values) *Color  { return c.Set(HSV, v) }
func (c *Color) SetCMYK(v Values) *Color { return c.Set(CMYK, v) }

// RGBArray, HSLArray, HSVArray and CMYKArray return a fresh copy of the
// channels of one space, without alpha.
func (c *Color) RGBArray() []float64  { return c.array(RGB) }
func (c *Color) HSLArray() []float64  { return c.array(HSL) }
func (c *Color) HSVArray() []float64  { return c.array(HSV) }
func (c *Color) CMYKArray() []float64 { return c.array(CMYK) }

// RGBAArray returns red, green, blue and alpha.
func (c *Color) RGBAArray() []float64 {
	return append(c.array(RGB), c.alpha)
}

// HSLAArray returns hue, saturation, lightness and alpha.
func (c *Color) HSLAArray() []float64 {
	return append(c.array(HSL), c.alpha)
}

// Alpha returns the opacity in [0, 1].
func (c *Color) Alpha() float64 {
	return c.alpha
}

// SetAlpha sets the opacity, clamped to [0, 1]. The color spaces are left
// untouched.
func (c *Color) SetAlpha(a float64) *Color {
	c.setAlpha(a)
	return c
}

// setChannel replaces a single channel and resynchronizes from its space.
func (c *Color) setChannel(space Space, i int, v float64) *Color {
	vals := c.array(space)
	vals[i] = v
	c.setValues(space, Seq(vals))
	return c
}

// Channel getters. Saturation is the hsl one, SaturationV the hsv one.
func (c *Color) Red() float64         { return c.values[RGB][0] }
func (c *Color) Green() float64       { return c.values[RGB][1] }
func (c *Color) Blue() float64        { return c.values[RGB][2] }
func (c *Color) Hue() float64         { return c.values[HSL][0] }
func (c *Color) Saturation() float64  { return c.values[HSL][1] }
func (c *Color) Lightness() float64   { return c.values[HSL][2] }
func (c *Color) SaturationV() float64 { return c.values[HSV][1] }
func (c *Color) Value() float64       { return c.values[HSV][2] }
func (c *Color) Cyan() float64        { return c.values[CMYK][0] }
func (c *Color) Magenta() float64     { return c.values[CMYK][1] }
func (c *Color) Yellow() float64      { return c.values[CMYK][2] }
func (c *Color) Black() float64       { return c.values[CMYK][3] }

// Channel setters replace one channel and resynchronize every space from
// the channel's own space, as Set does.
func (c *Color) SetRed(v float64) *Color         { return c.setChannel(RGB, 0, v) }
func (c *Color) SetGreen(v float64) *Color       { return c.setChannel(RGB, 1, v) }
func (c *Color) SetBlue(v float64) *Color        { return c.setChannel(RGB, 2, v) }
func (c *Color) SetHue(v float64) *Color         { return c.setChannel(HSL, 0, v) }
func (c *Color) SetSaturation(v float64) *Color  { return c.setChannel(HSL, 1, v) }
func (c *Color) SetLightness(v float64) *Color   { return c.setChannel(HSL, 2, v) }
func (c *Color) SetSaturationV(v float64) *Color { return c.setChannel(HSV, 1, v) }
func (c *Color) SetValue(v float64) *Color       { return c.setChannel(HSV, 2, v) }
func (c *Color) SetCyan(v float64) *Color        { return c.setChannel(CMYK, 0, v) }
func (c *Color) SetMagenta(v float64) *Color     { return c.setChannel(CMYK, 1, v) }
func (c *Color) SetYellow(v float64) *Color      { return c.setChannel(CMYK, 2, v) }
func (c *Color) SetBlack(v float64) *Color       { return c.setChannel(CMYK, 3, v) }

// Input is the tagged union of constructor inputs: TextInput, RGBInput,
// HSLInput, HSVInput and CMYKInput.
type Input interface {
	resolveInput() (Space, Values, bool)
}

// TextInput is a CSS color string: hex, rgb(), rgba(), hsl(), hsla() or a
// keyword.
type TextInput string

func (t TextInput) resolveInput() (Space, Values, bool) {
	if vals, ok := cssparse.RGBA(string(t)); ok {
		return RGB, Seq(vals), true
	}
	if vals, ok := cssparse.HSLA(string(t)); ok {
		return HSL, Seq(vals), true
	}
	return 0, nil, false
}

// RGBInput sets the initial color from rgb channels.
type RGBInput struct{ Values Values }

// HSLInput sets the initial color from hsl channels.
type HSLInput struct{ Values Values }

// HSVInput sets the initial color from hsv channels.
type HSVInput struct{ Values Values }

// CMYKInput sets the initial color from cmyk channels.
type CMYKInput struct{ Values Values }

func (in RGBInput) resolveInput() (Space, Values, bool) {
	return RGB, in.Values, matches(RGB, in.Values)
}

func (in HSLInput) resolveInput() (Space, Values, bool) {
	return HSL, in.Values, matches(HSL, in.Values)
}

func (in HSVInput) resolveInput() (Space, Values, bool) {
	return HSV, in.Values, matches(HSV, in.Values)
}

func (in CMYKInput) resolveInput() (Space, Values, bool) {
	return CMYK, in.Values, matches(CMYK, in.Values)
}

// matches reports whether v supplies channels for space.
func matches(space Space, v Values) bool {
	if v == nil {
		return false
	}
	vals, _, _ := v.resolve(space)
	return vals != nil
}

// Detect picks the input variant from the keys present in m: r or red
// selects rgb, l or lightness hsl, v or value hsv and c or cyan cmyk.
// It returns nil when no key matches.
func Detect(m map[string]float64) Input {
	has := func(keys ...string) bool {
		for _, k := range keys {
			if _, ok := m[k]; ok {
				return true
			}
		}
		return false
	}

	vals := Channels(m)
	switch {
	case has("r", "red"):
		return RGBInput{Values: vals}
	case has("l", "lightness"):
		return HSLInput{Values: vals}
	case has("v", "value"):
		return HSVInput{Values: vals}
	case has("c", "cyan"):
		return CMYKInput{Values: vals}
	default:
		return nil
	}
}
