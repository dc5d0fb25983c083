// Package palette loads HCL palette files into a tree of colors.
//
// A palette file has an optional meta block and a required palette block.
// Palette entries are evaluated in source order, so an entry may reference
// any entry defined above it through the palette variable:
//
//	meta {
//	  name = "Rose"
//	}
//
//	palette {
//	  base  = "#191724"
//	  muted = lighten(palette.base, 0.3)
//	  highlight {
//	    color = palette.base
//	    low   = darken(palette.base, 0.1)
//	  }
//	}
package palette

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/huekit/internal/color"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("huekit.palette")

// Palette is a fully evaluated palette file.
type Palette struct {
	Meta Meta
	Root *color.Node
}

// Meta holds palette metadata.
type Meta struct {
	Name       string `hcl:"name,optional"`
	Author     string `hcl:"author,optional"`
	Appearance string `hcl:"appearance,optional"`
	URL        string `hcl:"url,optional"`
}

// paletteBlock wraps the palette block for gohcl decoding.
type paletteBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// fileSchema is the top level of a palette file.
type fileSchema struct {
	Meta    *Meta         `hcl:"meta,block"`
	Palette *paletteBlock `hcl:"palette,block"`
}

// Swatch is a single named color from a flattened palette.
type Swatch struct {
	Name  string
	Color *color.Color
}

// Load reads and evaluates the palette file at path.
func Load(path string) (*Palette, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading palette file: %w", err)
	}
	return Parse(src, path)
}

// Parse evaluates palette source. filename is only used in error messages.
func Parse(src []byte, filename string) (*Palette, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	// Neither block needs an eval context at this stage; palette entries are
	// evaluated one at a time below.
	var raw fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding palette file: %s", diags.Error())
	}

	if raw.Palette == nil {
		return nil, fmt.Errorf("no palette block found")
	}

	body, ok := raw.Palette.Entries.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("palette block is not an hclsyntax.Body")
	}

	root, diags := Evaluate(body, nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("evaluating palette: %s", diags.Error())
	}

	p := &Palette{Root: root}
	if raw.Meta != nil {
		p.Meta = *raw.Meta
	}

	log.Debugf("loaded palette %q from %s", p.Meta.Name, filename)
	return p, nil
}

// Lookup returns a copy of the color at a dot-separated path such as
// "highlight.low". A group path resolves to the group's own color.
func (p *Palette) Lookup(path string) (*color.Color, error) {
	path = strings.TrimPrefix(path, "palette.")
	if path == "" {
		return nil, fmt.Errorf("empty palette path")
	}
	c, err := p.Root.Lookup(strings.Split(path, "."))
	if err != nil {
		return nil, fmt.Errorf("palette.%s: %w", path, err)
	}
	return c, nil
}

// Flatten returns every color in the palette keyed by its dot path, in
// name-sorted depth-first order. A group's own color uses the group's path.
func (p *Palette) Flatten() []Swatch {
	var out []Swatch
	p.Root.Walk(func(path []string, c *color.Color) {
		if len(path) == 0 {
			return
		}
		out = append(out, Swatch{Name: strings.Join(path, "."), Color: c.Clone()})
	})
	return out
}
