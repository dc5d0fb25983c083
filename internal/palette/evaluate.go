package palette

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/huekit/internal/color"
)

// VisitFunc is called for every palette attribute in source order. path is
// relative to the palette block and ends with the attribute name. c is nil
// when the attribute failed to evaluate.
type VisitFunc func(path []string, attr *hclsyntax.Attribute, c *color.Color)

// Evaluate builds a color tree from a palette block body. Entries are
// evaluated in source order against the tree built so far, so later entries
// may reference earlier ones. Evaluation continues past bad entries and all
// problems are returned as diagnostics. visit may be nil.
func Evaluate(body *hclsyntax.Body, visit VisitFunc) (*color.Node, hcl.Diagnostics) {
	root := &color.Node{}
	diags := evaluateBody(body, root, root, nil, visit)
	return root, diags
}

// item is an attribute or block of a body, in source order.
type item struct {
	pos   hcl.Pos
	attr  *hclsyntax.Attribute
	block *hclsyntax.Block
}

func sourceOrder(body *hclsyntax.Body) []item {
	items := make([]item, 0, len(body.Attributes)+len(body.Blocks))
	for _, attr := range body.Attributes {
		items = append(items, item{pos: attr.SrcRange.Start, attr: attr})
	}
	for _, block := range body.Blocks {
		items = append(items, item{pos: block.DefRange().Start, block: block})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].pos.Byte < items[j].pos.Byte
	})
	return items
}

func evaluateBody(body *hclsyntax.Body, root, node *color.Node, prefix []string, visit VisitFunc) hcl.Diagnostics {
	var diags hcl.Diagnostics

	for _, it := range sourceOrder(body) {
		if it.block != nil {
			path := appendPath(prefix, it.block.Type)
			if len(it.block.Labels) > 0 {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Unexpected block label",
					Detail:   fmt.Sprintf("palette group %s takes no labels", dotted(path)),
					Subject:  it.block.LabelRanges[0].Ptr(),
				})
				continue
			}
			if _, exists := node.Children[it.block.Type]; exists {
				diags = append(diags, duplicate(path, it.block.DefRange()))
				continue
			}
			child := &color.Node{}
			addChild(node, it.block.Type, child)
			diags = append(diags, evaluateBody(it.block.Body, root, child, path, visit)...)
			continue
		}

		path := appendPath(prefix, it.attr.Name)
		if _, exists := node.Children[it.attr.Name]; exists {
			diags = append(diags, duplicate(path, it.attr.NameRange))
			continue
		}

		c, attrDiags := evaluateAttr(it.attr, BuildEvalContext(root), path)
		diags = append(diags, attrDiags...)
		if visit != nil {
			visit(path, it.attr, c)
		}
		if c == nil {
			continue
		}

		// Only a group can have its own color; at the top level "color"
		// is an ordinary entry.
		if it.attr.Name == "color" && len(prefix) > 0 {
			node.Color = c
		} else {
			addChild(node, it.attr.Name, &color.Node{Color: c})
		}
	}

	return diags
}

func evaluateAttr(attr *hclsyntax.Attribute, ctx *hcl.EvalContext, path []string) (*color.Color, hcl.Diagnostics) {
	val, diags := attr.Expr.Value(ctx)
	if diags.HasErrors() {
		return nil, diags
	}

	text, err := ResolveColor(val)
	if err != nil {
		return nil, invalid(path, attr, err)
	}

	c, err := color.Parse(text)
	if err != nil {
		return nil, invalid(path, attr, err)
	}
	return c, nil
}

func addChild(node *color.Node, name string, child *color.Node) {
	if node.Children == nil {
		node.Children = make(map[string]*color.Node)
	}
	node.Children[name] = child
}

func invalid(path []string, attr *hclsyntax.Attribute, err error) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid palette color",
		Detail:   fmt.Sprintf("%s: %s", dotted(path), err),
		Subject:  attr.Expr.Range().Ptr(),
	}}
}

func duplicate(path []string, rng hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Duplicate palette entry",
		Detail:   fmt.Sprintf("%s is already defined", dotted(path)),
		Subject:  rng.Ptr(),
	}
}

func appendPath(prefix []string, name string) []string {
	return append(append(make([]string, 0, len(prefix)+1), prefix...), name)
}

func dotted(path []string) string {
	return "palette." + strings.Join(path, ".")
}
