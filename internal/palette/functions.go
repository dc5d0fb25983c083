package palette

import (
	"maps"

	"github.com/jsvensson/huekit/internal/color"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// colorParam accepts color text or a palette group with a color attribute.
func colorParam(name string) function.Parameter {
	return function.Parameter{Name: name, Type: cty.DynamicPseudoType}
}

func numberParam(name string) function.Parameter {
	return function.Parameter{Name: name, Type: cty.Number}
}

// colorArg parses argument i as a color.
func colorArg(args []cty.Value, i int) (*color.Color, error) {
	text, err := ResolveColor(args[i])
	if err != nil {
		return nil, function.NewArgError(i, err)
	}
	c, err := color.Parse(text)
	if err != nil {
		return nil, function.NewArgError(i, err)
	}
	return c, nil
}

func numberArgs(args []cty.Value) []float64 {
	out := make([]float64, len(args))
	for i, arg := range args {
		out[i], _ = arg.AsBigFloat().Float64()
	}
	return out
}

// constructorFunc builds a function creating a color from numeric channels.
func constructorFunc(desc string, names []string, build func(v []float64) *color.Color) function.Function {
	params := make([]function.Parameter, len(names))
	for i, name := range names {
		params[i] = numberParam(name)
	}
	return function.New(&function.Spec{
		Description: desc,
		Params:      params,
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return ColorVal(build(numberArgs(args))), nil
		},
	})
}

// adjustFunc builds a function that modifies a color by a single amount.
// Usage: lighten("#hex", 0.1) or lighten(palette.color, 0.1)
func adjustFunc(desc, amount string, adjust func(c *color.Color, v float64) *color.Color) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params:      []function.Parameter{colorParam("color"), numberParam(amount)},
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			c, err := colorArg(args, 0)
			if err != nil {
				return cty.NilVal, err
			}
			v, _ := args[1].AsBigFloat().Float64()
			return ColorVal(adjust(c, v)), nil
		},
	})
}

// unaryFunc builds a function that transforms a color without arguments.
func unaryFunc(desc string, apply func(c *color.Color) *color.Color) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params:      []function.Parameter{colorParam("color")},
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			c, err := colorArg(args, 0)
			if err != nil {
				return cty.NilVal, err
			}
			return ColorVal(apply(c)), nil
		},
	})
}

var mixFunc = function.New(&function.Spec{
	Description: "Mixes the second color into the first. The optional weight is the share of the second color, 0.5 by default",
	Params:      []function.Parameter{colorParam("color"), colorParam("other")},
	VarParam:    &function.Parameter{Name: "weight", Type: cty.Number},
	Type:        function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		if len(args) > 3 {
			return cty.NilVal, function.NewArgErrorf(3, "mix takes at most one weight")
		}
		c, err := colorArg(args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		other, err := colorArg(args, 1)
		if err != nil {
			return cty.NilVal, err
		}
		weight := 0.5
		if len(args) == 3 {
			weight, _ = args[2].AsBigFloat().Float64()
		}
		return ColorVal(c.MixWeight(other, weight)), nil
	},
})

var luminosityFunc = function.New(&function.Spec{
	Description: "Returns the WCAG relative luminance of a color, from 0 to 1",
	Params:      []function.Parameter{colorParam("color")},
	Type:        function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		c, err := colorArg(args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		return cty.NumberFloatVal(c.Luminosity()), nil
	},
})

var contrastFunc = function.New(&function.Spec{
	Description: "Returns the WCAG contrast ratio between two colors, from 1 to 21",
	Params:      []function.Parameter{colorParam("color"), colorParam("other")},
	Type:        function.StaticReturnType(cty.Number),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		c, err := colorArg(args, 0)
		if err != nil {
			return cty.NilVal, err
		}
		other, err := colorArg(args, 1)
		if err != nil {
			return cty.NilVal, err
		}
		return cty.NumberFloatVal(c.Contrast(other)), nil
	},
})

var functions = map[string]function.Function{
	"rgb": constructorFunc("Creates an opaque color from red, green and blue (0-255)",
		[]string{"red", "green", "blue"},
		func(v []float64) *color.Color { return color.FromRGB(v[0], v[1], v[2]) }),
	"rgba": constructorFunc("Creates a color from red, green, blue (0-255) and alpha (0-1)",
		[]string{"red", "green", "blue", "alpha"},
		func(v []float64) *color.Color { return color.New(color.RGBInput{Values: color.Seq(v)}) }),
	"hsl": constructorFunc("Creates an opaque color from hue (degrees), saturation and lightness (0-100)",
		[]string{"hue", "saturation", "lightness"},
		func(v []float64) *color.Color { return color.FromHSL(v[0], v[1], v[2]) }),
	"hsla": constructorFunc("Creates a color from hue (degrees), saturation, lightness (0-100) and alpha (0-1)",
		[]string{"hue", "saturation", "lightness", "alpha"},
		func(v []float64) *color.Color { return color.New(color.HSLInput{Values: color.Seq(v)}) }),
	"hsv": constructorFunc("Creates an opaque color from hue (degrees), saturation and value (0-100)",
		[]string{"hue", "saturation", "value"},
		func(v []float64) *color.Color { return color.FromHSV(v[0], v[1], v[2]) }),
	"cmyk": constructorFunc("Creates an opaque color from cyan, magenta, yellow and black (0-100)",
		[]string{"cyan", "magenta", "yellow", "black"},
		func(v []float64) *color.Color { return color.FromCMYK(v[0], v[1], v[2], v[3]) }),

	"lighten":    adjustFunc("Increases lightness by a ratio of its current value", "ratio", (*color.Color).Lighten),
	"darken":     adjustFunc("Decreases lightness by a ratio of its current value", "ratio", (*color.Color).Darken),
	"saturate":   adjustFunc("Increases saturation by a ratio of its current value", "ratio", (*color.Color).Saturate),
	"desaturate": adjustFunc("Decreases saturation by a ratio of its current value", "ratio", (*color.Color).Desaturate),
	"rotate":     adjustFunc("Rotates the hue by the given degrees", "degrees", (*color.Color).Rotate),
	"clearer":    adjustFunc("Decreases alpha by a ratio of its current value", "ratio", (*color.Color).Clearer),
	"opaquer":    adjustFunc("Increases alpha by a ratio of its current value", "ratio", (*color.Color).Opaquer),
	"alpha":      adjustFunc("Sets alpha (0-1)", "alpha", (*color.Color).SetAlpha),

	"negate":    unaryFunc("Inverts each rgb channel", (*color.Color).Negate),
	"greyscale": unaryFunc("Converts a color to grey using its luma", (*color.Color).Greyscale),

	"mix":        mixFunc,
	"luminosity": luminosityFunc,
	"contrast":   contrastFunc,
}

// Functions returns the color functions available in palette files.
func Functions() map[string]function.Function {
	return maps.Clone(functions)
}
