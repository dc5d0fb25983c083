package palette

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/huekit/internal/color"
	"github.com/zclconf/go-cty/cty"
)

// ColorVal is the cty form of a color: its canonical rgb() or rgba() string.
func ColorVal(c *color.Color) cty.Value {
	return cty.StringVal(c.RGBString())
}

// ResolveColor extracts color text from a cty.Value.
// If the value is a string, return it directly.
// If the value is an object, extract the "color" key.
func ResolveColor(val cty.Value) (string, error) {
	if val.IsNull() {
		return "", fmt.Errorf("color value is null")
	}
	if !val.IsKnown() {
		return "", fmt.Errorf("color value is not known")
	}
	if val.Type() == cty.String {
		return val.AsString(), nil
	}
	if val.Type().IsObjectType() {
		if val.Type().HasAttribute("color") {
			colorVal := val.GetAttr("color")
			if colorVal.Type() == cty.String && !colorVal.IsNull() {
				return colorVal.AsString(), nil
			}
		}
		return "", fmt.Errorf("object has no 'color' attribute; reference a specific child or add a color attribute")
	}
	return "", fmt.Errorf("expected string or object with color attribute, got %s", val.Type().FriendlyName())
}

// NodeToCty converts a color.Node to a cty.Value for the HCL evaluation
// context. Leaf nodes become strings. Groups become objects, with "color"
// as a sibling key when the group has its own color.
func NodeToCty(node *color.Node) cty.Value {
	if node.Children == nil {
		if node.Color != nil {
			return ColorVal(node.Color)
		}
		return cty.EmptyObjectVal
	}

	vals := make(map[string]cty.Value, len(node.Children)+1)
	if node.Color != nil {
		vals["color"] = ColorVal(node.Color)
	}
	for k, child := range node.Children {
		vals[k] = NodeToCty(child)
	}
	return cty.ObjectVal(vals)
}

// BuildEvalContext creates an HCL evaluation context exposing root as the
// palette variable, plus the color functions.
func BuildEvalContext(root *color.Node) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": NodeToCty(root),
		},
		Functions: Functions(),
	}
}
