// Package huekit is a color value kept in sync across the rgb, hsl, hsv and
// cmyk spaces, plus palette files and template rendering built on it.
//
//	c := huekit.MustParse("#eb6f92").Darken(0.2).SetAlpha(0.8)
//	fmt.Println(c.RGBString()) // rgba(...)
//
//	p, err := huekit.Load("palette.hcl")
//	e := &huekit.Engine{TemplatesDir: "templates", OutputDir: "out"}
//	err = e.Run(p)
package huekit

import (
	"fmt"

	"github.com/jsvensson/huekit/internal/color"
	"github.com/jsvensson/huekit/internal/convert"
	"github.com/jsvensson/huekit/internal/engine"
	"github.com/jsvensson/huekit/internal/palette"
)

type (
	Color = color.Color
	Space = color.Space

	Input     = color.Input
	TextInput = color.TextInput
	RGBInput  = color.RGBInput
	HSLInput  = color.HSLInput
	HSVInput  = color.HSVInput
	CMYKInput = color.CMYKInput
	Values    = color.Values
	Seq       = color.Seq
	Channels  = color.Channels
	Node      = color.Node
	Palette   = palette.Palette
	Meta      = palette.Meta
	Swatch    = palette.Swatch
	Engine    = engine.Engine
)

const (
	RGB  = color.RGB
	HSL  = color.HSL
	HSV  = color.HSV
	CMYK = color.CMYK
)

var (
	New       = color.New
	Parse     = color.Parse
	MustParse = color.MustParse
	FromRGB   = color.FromRGB
	FromHSL   = color.FromHSL
	FromHSV   = color.FromHSV
	FromCMYK  = color.FromCMYK
	FromStd   = color.FromStd
	Detect    = color.Detect

	ParseSpace = convert.ParseSpace
)

// Load reads and evaluates a palette file.
func Load(path string) (*Palette, error) {
	p, err := palette.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading palette: %w", err)
	}
	return p, nil
}

// ParsePalette evaluates palette source held in memory. filename is used in
// error messages only.
func ParsePalette(src []byte, filename string) (*Palette, error) {
	p, err := palette.Parse(src, filename)
	if err != nil {
		return nil, fmt.Errorf("parsing palette: %w", err)
	}
	return p, nil
}
