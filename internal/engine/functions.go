package engine

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/jsvensson/huekit/internal/color"
	"github.com/jsvensson/huekit/internal/palette"
)

// resolveColor turns a template argument into a color the caller may
// modify freely. Strings starting with "palette." are looked up in p; any
// other string is parsed as CSS color text.
func resolveColor(p *palette.Palette, v any) (*color.Color, error) {
	switch v := v.(type) {
	case *color.Color:
		if v == nil {
			return nil, fmt.Errorf("nil color")
		}
		return v.Clone(), nil
	case palette.Swatch:
		return v.Color.Clone(), nil
	case string:
		if strings.HasPrefix(v, "palette.") {
			return p.Lookup(v)
		}
		return color.Parse(v)
	default:
		return nil, fmt.Errorf("cannot use %T as a color", v)
	}
}

func funcMap(p *palette.Palette) template.FuncMap {
	// format wraps a string conversion so it accepts any color argument.
	format := func(fn func(c *color.Color) string) func(v any) (string, error) {
		return func(v any) (string, error) {
			c, err := resolveColor(p, v)
			if err != nil {
				return "", err
			}
			return fn(c), nil
		}
	}

	// adjust wraps a mutator taking a single amount.
	adjust := func(fn func(c *color.Color, amount float64) *color.Color) func(v any, amount float64) (*color.Color, error) {
		return func(v any, amount float64) (*color.Color, error) {
			c, err := resolveColor(p, v)
			if err != nil {
				return nil, err
			}
			return fn(c, amount), nil
		}
	}

	return template.FuncMap{
		"hex":     format((*color.Color).HexString),
		"hexBare": format(func(c *color.Color) string { return strings.TrimPrefix(c.HexString(), "#") }),
		"rgb":     format((*color.Color).RGBString),
		"hsl":     format((*color.Color).HSLString),
		"keyword": format((*color.Color).Keyword),

		"alpha":   adjust((*color.Color).SetAlpha),
		"lighten": adjust((*color.Color).Lighten),
		"darken":  adjust((*color.Color).Darken),
		"rotate":  adjust((*color.Color).Rotate),

		"mix": func(a, b any, weight ...float64) (*color.Color, error) {
			if len(weight) > 1 {
				return nil, fmt.Errorf("mix takes at most one weight")
			}
			c, err := resolveColor(p, a)
			if err != nil {
				return nil, err
			}
			other, err := resolveColor(p, b)
			if err != nil {
				return nil, err
			}
			w := 0.5
			if len(weight) == 1 {
				w = weight[0]
			}
			return c.MixWeight(other, w), nil
		},
		"contrast": func(a, b any) (float64, error) {
			c, err := resolveColor(p, a)
			if err != nil {
				return 0, err
			}
			other, err := resolveColor(p, b)
			if err != nil {
				return 0, err
			}
			return c.Contrast(other), nil
		},
		"dark": func(v any) (bool, error) {
			c, err := resolveColor(p, v)
			if err != nil {
				return false, err
			}
			return c.Dark(), nil
		},
		"palette": func(path string) (*color.Color, error) {
			return p.Lookup(path)
		},
	}
}
