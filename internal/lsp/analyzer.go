package lsp

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/huekit/internal/color"
	"github.com/jsvensson/huekit/internal/palette"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
	DiagInfo    = protocol.DiagnosticSeverityInformation
)

const diagnosticSource = "huekit"

// topLevelBlocks are the valid top-level block names.
var topLevelBlocks = []string{"meta", "palette"}

// AnalysisResult holds all information produced by analyzing a palette file.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Palette     *color.Node
	Symbols     map[string]protocol.Range // "palette.base", "palette.highlight.low" -> definition range
	Colors      []ColorLocation
	References  []Reference
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Range protocol.Range
	Color *color.Color
	IsRef bool // true if this is a palette reference (not a literal)
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(max(pos.Line-1, 0)),
		Character: uint32(max(pos.Column-1, 0)),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// Analyze parses HCL content from memory and produces diagnostics, a symbol table,
// and color locations. It collects ALL errors rather than short-circuiting on the first.
func Analyze(filename, content string) *AnalysisResult {
	result := &AnalysisResult{
		Symbols: make(map[string]protocol.Range),
	}

	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	result.addDiagnostics(diags)
	if file == nil {
		return result
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		result.addError(hcl.Range{}, "internal error: parsed body is not *hclsyntax.Body")
		return result
	}

	// A broken file is still analyzed, but only its syntax errors are reported.
	if diags.HasErrors() {
		syntaxDiags := result.Diagnostics
		defer func() { result.Diagnostics = syntaxDiags }()
	}

	for _, attr := range body.Attributes {
		result.addError(attr.NameRange, fmt.Sprintf("unexpected attribute %q at top level (valid blocks: %s)",
			attr.Name, strings.Join(topLevelBlocks, ", ")))
	}

	var paletteBlock *hclsyntax.Block
	for _, block := range body.Blocks {
		switch block.Type {
		case "palette":
			if paletteBlock != nil {
				result.addError(block.DefRange(), "duplicate palette block")
				continue
			}
			paletteBlock = block
		case "meta":
			var meta palette.Meta
			result.addDiagnostics(gohcl.DecodeBody(block.Body, nil, &meta))
		default:
			result.addWarning(block.DefRange(), fmt.Sprintf("unknown block %q (valid: %s)",
				block.Type, strings.Join(topLevelBlocks, ", ")))
		}
	}

	if paletteBlock == nil {
		result.addError(hcl.Range{
			Filename: filename,
			Start:    hcl.Pos{Line: 1, Column: 1},
			End:      hcl.Pos{Line: 1, Column: 1},
		}, "missing required palette block")
		return result
	}

	root, diags := palette.Evaluate(paletteBlock.Body, result.visitPaletteEntry)
	result.addDiagnostics(diags)
	result.Palette = root

	return result
}

// visitPaletteEntry records the symbol and color location of an evaluated
// palette attribute. A group's color attribute defines the group's symbol.
func (r *AnalysisResult) visitPaletteEntry(path []string, attr *hclsyntax.Attribute, c *color.Color) {
	symbolPath := path
	if attr.Name == "color" && len(path) > 1 {
		symbolPath = path[:len(path)-1]
	}
	r.Symbols["palette."+strings.Join(symbolPath, ".")] = hclRangeToLSP(attr.SrcRange)
	r.References = append(r.References, referencesIn(attr.Expr.Variables())...)

	if c == nil {
		return
	}
	r.Colors = append(r.Colors, ColorLocation{
		Range: hclRangeToLSP(attr.Expr.Range()),
		Color: c,
		IsRef: isReferenceExpr(attr.Expr),
	})
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagnosticSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

func (r *AnalysisResult) addDiagnostics(diags hcl.Diagnostics) {
	for _, d := range diags {
		r.Diagnostics = append(r.Diagnostics, hclDiagToLSP(d))
	}
}

// addError adds an error-level diagnostic at the given range.
func (r *AnalysisResult) addError(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagError,
		Source:   strPtr(diagnosticSource),
		Message:  msg,
	})
}

// addWarning adds a warning-level diagnostic at the given range.
func (r *AnalysisResult) addWarning(rng hcl.Range, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &DiagWarning,
		Source:   strPtr(diagnosticSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}

// isReferenceExpr returns true if the expression is a scope traversal
// (e.g. palette.base) rather than a literal value or function call.
func isReferenceExpr(expr hclsyntax.Expression) bool {
	switch expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		return true
	case *hclsyntax.RelativeTraversalExpr:
		return true
	default:
		return false
	}
}
