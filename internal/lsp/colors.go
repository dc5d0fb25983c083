package lsp

import (
	"math"
	"strings"

	"github.com/jsvensson/huekit/internal/color"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts a color to a protocol.Color (float32 0.0-1.0).
func colorToLSP(c *color.Color) protocol.Color {
	rgb := c.RGBArray()
	return protocol.Color{
		Red:   float32(rgb[0]) / 255.0,
		Green: float32(rgb[1]) / 255.0,
		Blue:  float32(rgb[2]) / 255.0,
		Alpha: float32(c.Alpha()),
	}
}

// colorFromLSP converts a protocol.Color picked in the editor to a color.
// Alpha is kept to three decimals so float32 noise stays out of the text.
func colorFromLSP(pc protocol.Color) *color.Color {
	return color.FromRGB(
		float64(pc.Red)*255,
		float64(pc.Green)*255,
		float64(pc.Blue)*255,
	).SetAlpha(math.Round(float64(pc.Alpha)*1000) / 1000)
}

// documentColors converts the analysis result's color locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// presentations lists the notations offered for a color: hex when opaque,
// rgb, hsl and the CSS keyword when one names the color exactly.
func presentations(c *color.Color) []string {
	var out []string
	if c.Alpha() == 1 {
		out = append(out, c.HexString())
	}
	out = append(out, c.RGBString(), c.HSLString())
	if kw := c.Keyword(); kw != "" && c.Alpha() == 1 {
		out = append(out, kw)
	}
	return out
}

// colorPresentation produces color presentation options for a given color and range.
// Only quoted literals are replaced. For palette references and function
// calls it returns an empty slice to avoid replacing them with literal values.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	text := extractText(content, params.Range)
	if !strings.HasPrefix(text, "\"") {
		return []protocol.ColorPresentation{}
	}

	c := colorFromLSP(params.Color)

	var out []protocol.ColorPresentation
	for _, label := range presentations(c) {
		out = append(out, protocol.ColorPresentation{
			Label: label,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: "\"" + label + "\"",
			},
		})
	}
	return out
}

// textDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := string(params.TextDocument.URI)
	result := s.docs.Result(uri)
	return documentColors(result), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}
