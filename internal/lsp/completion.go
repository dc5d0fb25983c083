package lsp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsvensson/huekit/internal/color"
	"github.com/jsvensson/huekit/internal/cssformat"
	"github.com/jsvensson/huekit/internal/cssparse"
	"github.com/jsvensson/huekit/internal/palette"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// splitLines splits content into lines, preserving empty trailing lines.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

// blockContext represents the kind of block the cursor is in.
type blockContext int

const (
	contextRoot    blockContext = iota
	contextMeta                 // inside meta {}
	contextPalette              // inside palette {} or one of its groups
)

// metaAttributes are the valid attributes of the meta block.
var metaAttributes = []string{"name", "author", "appearance", "url"}

// complete produces completion items given an analysis result, document content,
// and cursor position. This is the core logic, decoupled from the LSP protocol
// handler for testability.
func complete(result *AnalysisResult, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	textBeforeCursor := line[:charPos]

	// Inside an open string literal only color names make sense.
	if strings.Count(textBeforeCursor, `"`)%2 == 1 {
		if isValuePosition(textBeforeCursor[:strings.LastIndex(textBeforeCursor, `"`)]) ||
			strings.Contains(textBeforeCursor, "(") {
			return keywordCompletions()
		}
		return nil
	}

	// Check for palette path completion: look for "palette." or "palette.xxx."
	if paletteItems := tryPaletteCompletion(result, textBeforeCursor); paletteItems != nil {
		return paletteItems
	}

	// After "=" or inside a call, offer functions and palette.
	if isValuePosition(textBeforeCursor) {
		return valueCompletions()
	}

	switch determineBlockContext(lines, int(pos.Line)) {
	case contextMeta:
		return metaCompletions(lines, int(pos.Line))
	case contextRoot:
		return topLevelCompletions()
	}

	return nil
}

// tryPaletteCompletion checks if the text before the cursor ends with a palette
// path prefix (e.g., "palette." or "palette.highlight.") and returns completion
// items for the children at that node in the palette tree.
func tryPaletteCompletion(result *AnalysisResult, textBeforeCursor string) []protocol.CompletionItem {
	if result == nil || result.Palette == nil {
		return nil
	}

	// Find the last occurrence of "palette." in the text before cursor
	idx := strings.LastIndex(textBeforeCursor, "palette.")
	if idx == -1 {
		return nil
	}

	// Extract the path after "palette."
	pathStr := textBeforeCursor[idx+len("palette."):]
	if strings.ContainsAny(pathStr, " ,()") {
		return nil
	}

	// Walk the palette tree based on the path segments.
	// - "palette."              -> children of root (segments = nil)
	// - "palette.highlight."    -> children of "highlight" node
	// - "palette.high"          -> children of root (client filters partial match)
	// - "palette.highlight.lo"  -> children of "highlight" (client filters "lo")
	var segments []string
	if i := strings.LastIndex(pathStr, "."); i >= 0 {
		segments = strings.Split(pathStr[:i], ".")
	}

	node := result.Palette
	for _, seg := range segments {
		child, ok := node.Children[seg]
		if !ok {
			return nil
		}
		node = child
	}

	if node.Children == nil {
		return nil
	}

	return nodeChildrenToCompletionItems(node)
}

// nodeChildrenToCompletionItems converts a node's children into completion
// items, sorted by name.
func nodeChildrenToCompletionItems(node *color.Node) []protocol.CompletionItem {
	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]protocol.CompletionItem, 0, len(names))
	for _, name := range names {
		child := node.Children[name]
		item := protocol.CompletionItem{
			Label: name,
			Kind:  completionKindPtr(protocol.CompletionItemKindColor),
		}

		switch {
		case child.Color != nil:
			// Editors render a color swatch for hex details on color items.
			item.Detail = strPtr(child.Color.HexString())
			if child.Children != nil {
				item.Documentation = "color group"
			}
		case child.Children != nil:
			item.Kind = completionKindPtr(protocol.CompletionItemKindModule)
			item.Detail = strPtr("color group")
		}

		items = append(items, item)
	}

	return items
}

// isValuePosition returns true if the text before the cursor indicates we are
// at a value position: right after "=", "(" or "," with nothing following it.
func isValuePosition(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	return strings.HasSuffix(trimmed, "=") ||
		strings.HasSuffix(trimmed, "(") ||
		(strings.HasSuffix(trimmed, ",") && strings.Contains(trimmed, "("))
}

// valueCompletions returns completion items for a value position: a snippet
// for every palette function and a palette reference trigger.
func valueCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	funcs := palette.Functions()

	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]protocol.CompletionItem, 0, len(names)+1)
	for _, name := range names {
		fn := funcs[name]

		var params, placeholders []string
		for i, p := range fn.Params() {
			params = append(params, p.Name)
			placeholders = append(placeholders, fmt.Sprintf("${%d:%s}", i+1, p.Name))
		}
		if vp := fn.VarParam(); vp != nil {
			params = append(params, "["+vp.Name+"]")
		}

		snippet := fmt.Sprintf("%s(%s)", name, strings.Join(placeholders, ", "))
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(fmt.Sprintf("%s(%s)", name, strings.Join(params, ", "))),
			Documentation:    fn.Description(),
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	paletteSnippet := "palette."
	items = append(items, protocol.CompletionItem{
		Label:      "palette",
		Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
		Detail:     strPtr("palette reference"),
		InsertText: &paletteSnippet,
	})

	return items
}

// keywordCompletions returns the CSS color keywords, with their hex value
// (rgba for transparent) as detail.
func keywordCompletions() []protocol.CompletionItem {
	names := cssparse.Keywords()
	items := make([]protocol.CompletionItem, 0, len(names))
	for _, name := range names {
		rgba, _ := cssparse.RGBA(name)
		detail := cssformat.Hex(rgba[:3])
		if rgba[3] < 1 {
			detail = cssformat.RGBA(rgba[:3], rgba[3])
		}
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   completionKindPtr(protocol.CompletionItemKindColor),
			Detail: strPtr(detail),
		})
	}
	return items
}

// determineBlockContext scans from the top of the file down to the cursor line
// to determine which block the cursor is in, using brace nesting.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	var stack []string

	for i := 0; i <= cursorLine && i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		// Process opening braces: extract the block name (first word on the line)
		if opens > 0 {
			parts := strings.Fields(line)
			if len(parts) >= 1 {
				for range opens {
					stack = append(stack, parts[0])
				}
			}
		}

		for range closes {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if len(stack) == 0 {
		return contextRoot
	}

	// Groups nest inside palette, so the outermost block decides.
	switch stack[0] {
	case "meta":
		return contextMeta
	case "palette":
		return contextPalette
	default:
		return contextRoot
	}
}

// metaCompletions returns meta attribute completions, excluding attributes
// already defined in the meta block.
func metaCompletions(lines []string, cursorLine int) []protocol.CompletionItem {
	defined := findDefinedAttributes(lines, cursorLine)

	var items []protocol.CompletionItem
	for _, name := range metaAttributes {
		if !defined[name] {
			items = append(items, protocol.CompletionItem{
				Label: name,
				Kind:  completionKindPtr(protocol.CompletionItemKindProperty),
			})
		}
	}

	return items
}

// findDefinedAttributes scans the current block (from the nearest opening brace
// before cursorLine to cursorLine) and returns attribute names already defined
// (lines containing "name = ...").
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	// Scan backwards to find the opening brace of the current block
	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		depth += strings.Count(line, "}") - strings.Count(line, "{")
		if depth < 0 {
			startLine = i
			break
		}
	}

	for i := startLine; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])
		if eqIdx := strings.Index(line, "="); eqIdx > 0 {
			name := strings.TrimSpace(line[:eqIdx])
			if !strings.Contains(name, " ") && !strings.Contains(name, "{") {
				defined[name] = true
			}
		}
	}

	return defined
}

// topLevelCompletions returns completion items for top-level block names.
func topLevelCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet

	var items []protocol.CompletionItem
	for _, name := range topLevelBlocks {
		snippet := name + " {\n  $0\n}"
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             completionKindPtr(protocol.CompletionItemKindSnippet),
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	return items
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return complete(s.docs.Result(uri), content, params.Position), nil
}
