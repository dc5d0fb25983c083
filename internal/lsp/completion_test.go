package lsp

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// paletteForCompletion is a valid palette file used to produce an
// AnalysisResult for completion tests.
const paletteForCompletion = `
meta {
  name       = "Test Palette"
  author     = "Test Author"
  appearance = "dark"
}

palette {
  base    = "#191724"
  surface = "#1f1d2e"
  love    = "#eb6f92"
  gold    = "#f6c177"

  highlight {
    color = "#524f67"
    low   = "#21202e"
    high  = "#6e6a86"
  }

  muted {
    low = "#6e6a86"
  }
}
`

func completionLabels(items []protocol.CompletionItem) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	sort.Strings(labels)
	return labels
}

func hasLabel(items []protocol.CompletionItem, label string) bool {
	for _, item := range items {
		if item.Label == label {
			return true
		}
	}
	return false
}

func findItem(t *testing.T, items []protocol.CompletionItem, label string) protocol.CompletionItem {
	t.Helper()
	for _, item := range items {
		if item.Label == label {
			return item
		}
	}
	t.Fatalf("completion item %q not found in %v", label, completionLabels(items))
	return protocol.CompletionItem{}
}

// completeAtEndOf runs completion with the cursor at the end of the first
// line of content containing marker.
func completeAtEndOf(t *testing.T, result *AnalysisResult, content, marker string) []protocol.CompletionItem {
	t.Helper()
	lines := splitLines(content)
	for i, line := range lines {
		if strings.Contains(line, marker) {
			pos := protocol.Position{Line: uint32(i), Character: uint32(len(line))}
			return complete(result, content, pos)
		}
	}
	t.Fatalf("could not find %q in test content", marker)
	return nil
}

// editing returns paletteForCompletion with line appended to the palette
// block, as if the user were typing it.
func editing(line string) string {
	return strings.Replace(paletteForCompletion, "\n  muted {", "\n  "+line+"\n\n  muted {", 1)
}

func TestCompletion_PaletteTopLevel(t *testing.T) {
	result := Analyze("test.hcl", paletteForCompletion)
	if result.Palette == nil {
		t.Fatal("expected non-nil palette from analysis")
	}

	items := completeAtEndOf(t, result, editing("accent = palette."), "accent = palette.")

	want := []string{"base", "gold", "highlight", "love", "muted", "surface"}
	if diff := cmp.Diff(want, completionLabels(items)); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	love := findItem(t, items, "love")
	if love.Kind == nil || *love.Kind != protocol.CompletionItemKindColor {
		t.Errorf("expected CompletionItemKindColor for love")
	}
	if love.Detail == nil || *love.Detail != "#EB6F92" {
		t.Errorf("expected hex detail for love, got %v", love.Detail)
	}

	// A group with its own color is still a color.
	highlight := findItem(t, items, "highlight")
	if highlight.Kind == nil || *highlight.Kind != protocol.CompletionItemKindColor {
		t.Errorf("expected CompletionItemKindColor for highlight")
	}
	if highlight.Detail == nil || *highlight.Detail != "#524F67" {
		t.Errorf("expected hex detail for highlight, got %v", highlight.Detail)
	}

	muted := findItem(t, items, "muted")
	if muted.Kind == nil || *muted.Kind != protocol.CompletionItemKindModule {
		t.Errorf("expected CompletionItemKindModule for muted")
	}
}

func TestCompletion_PaletteNested(t *testing.T) {
	result := Analyze("test.hcl", paletteForCompletion)

	tests := []struct {
		name string
		line string
		want []string
	}{
		{"after dot", "accent = palette.highlight.", []string{"high", "low"}},
		{"partial segment", "accent = palette.highlight.lo", []string{"high", "low"}},
		{"partial top-level segment", "accent = palette.hi", []string{"base", "gold", "highlight", "love", "muted", "surface"}},
		{"inside function call", "accent = darken(palette.muted.", []string{"low"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := completeAtEndOf(t, result, editing(tt.line), tt.line)
			if diff := cmp.Diff(tt.want, completionLabels(items)); diff != "" {
				t.Errorf("labels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompletion_PaletteNoChildren(t *testing.T) {
	result := Analyze("test.hcl", paletteForCompletion)

	for _, line := range []string{
		"accent = palette.nope.",
		"accent = palette.base.",
	} {
		t.Run(line, func(t *testing.T) {
			items := completeAtEndOf(t, result, editing(line), line)
			if hasLabel(items, "base") || hasLabel(items, "low") {
				t.Errorf("expected no palette entries, got %v", completionLabels(items))
			}
		})
	}
}

func TestCompletion_PaletteWithSyntaxError(t *testing.T) {
	content := `
palette {
  base    = "#191724"
  surface = "#1f1d2e"

  highlight {
    color = "#524f67"
    low   = "#21202e"
  }

  accent = palette.
}
`
	result := Analyze("test.hcl", content)

	if result.Palette == nil {
		t.Fatal("expected palette tree to be built despite syntax errors")
	}

	items := completeAtEndOf(t, result, content, "accent = palette.")
	for _, label := range []string{"base", "surface", "highlight"} {
		if !hasLabel(items, label) {
			t.Errorf("expected completion item %q, got %v", label, completionLabels(items))
		}
	}
}

func TestCompletion_Functions(t *testing.T) {
	result := Analyze("test.hcl", paletteForCompletion)

	tests := []struct {
		name string
		line string
	}{
		{"after equals", "accent = "},
		{"first argument", "accent = mix("},
		{"later argument", "accent = mix(palette.base, "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := completeAtEndOf(t, result, editing(tt.line), tt.line)

			for _, label := range []string{"darken", "lighten", "mix", "rgb", "contrast", "palette"} {
				if !hasLabel(items, label) {
					t.Errorf("expected %q value completion", label)
				}
			}
		})
	}
}

func TestCompletion_FunctionSnippets(t *testing.T) {
	items := valueCompletions()

	tests := []struct {
		label   string
		detail  string
		snippet string
	}{
		{"darken", "darken(color, ratio)", "darken(${1:color}, ${2:ratio})"},
		{"rotate", "rotate(color, degrees)", "rotate(${1:color}, ${2:degrees})"},
		{"negate", "negate(color)", "negate(${1:color})"},
		{"mix", "mix(color, other, [weight])", "mix(${1:color}, ${2:other})"},
		{"palette", "palette reference", "palette."},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			item := findItem(t, items, tt.label)
			if item.Detail == nil || *item.Detail != tt.detail {
				t.Errorf("Detail = %v, want %q", item.Detail, tt.detail)
			}
			if item.InsertText == nil || *item.InsertText != tt.snippet {
				t.Errorf("InsertText = %v, want %q", item.InsertText, tt.snippet)
			}
		})
	}

	darken := findItem(t, items, "darken")
	if doc, ok := darken.Documentation.(string); !ok || doc == "" {
		t.Errorf("expected function description as documentation, got %v", darken.Documentation)
	}
	if darken.InsertTextFormat == nil || *darken.InsertTextFormat != protocol.InsertTextFormatSnippet {
		t.Error("expected snippet insert format for functions")
	}
}

func TestCompletion_Keywords(t *testing.T) {
	result := Analyze("test.hcl", paletteForCompletion)

	for _, line := range []string{
		`accent = "`,
		`accent = "re`,
		`accent = darken("`,
	} {
		t.Run(line, func(t *testing.T) {
			items := completeAtEndOf(t, result, editing(line), line)

			red := findItem(t, items, "red")
			if red.Detail == nil || *red.Detail != "#FF0000" {
				t.Errorf("expected hex detail for red, got %v", red.Detail)
			}
			if !hasLabel(items, "midnightblue") {
				t.Error("expected midnightblue keyword completion")
			}
			transparent := findItem(t, items, "transparent")
			if transparent.Detail == nil || *transparent.Detail != "rgba(0, 0, 0, 0)" {
				t.Errorf("expected rgba detail for transparent, got %v", transparent.Detail)
			}
		})
	}
}

func TestCompletion_ClosedString(t *testing.T) {
	result := Analyze("test.hcl", paletteForCompletion)

	line := `accent = "#ff0000" `
	items := completeAtEndOf(t, result, editing(line), line)
	if len(items) != 0 {
		t.Errorf("expected no completions after a closed string, got %v", completionLabels(items))
	}
}

func TestCompletion_MetaAttributes(t *testing.T) {
	content := `
meta {
  name = "Test"

}

palette {
  base = "#191724"
}
`
	result := Analyze("test.hcl", content)

	// Cursor on the blank line inside meta
	items := complete(result, content, protocol.Position{Line: 3, Character: 2})

	want := []string{"appearance", "author", "url"}
	if diff := cmp.Diff(want, completionLabels(items)); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	for _, item := range items {
		if item.Kind == nil || *item.Kind != protocol.CompletionItemKindProperty {
			t.Errorf("expected CompletionItemKindProperty for meta item %q", item.Label)
		}
	}
}

func TestCompletion_TopLevelBlocks(t *testing.T) {
	content := `
palette {
  base = "#191724"
}

`
	result := Analyze("test.hcl", content)

	// Cursor on the last blank line, at root level
	lines := splitLines(content)
	pos := protocol.Position{Line: uint32(len(lines) - 1), Character: 0}

	items := complete(result, content, pos)

	if diff := cmp.Diff([]string{"meta", "palette"}, completionLabels(items)); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestCompletion_PaletteBody(t *testing.T) {
	content := `
palette {
  base = "#191724"

}
`
	result := Analyze("test.hcl", content)

	// Entry names are free-form, so nothing is suggested.
	if items := complete(result, content, protocol.Position{Line: 3, Character: 2}); len(items) != 0 {
		t.Errorf("expected no completions in palette body, got %v", completionLabels(items))
	}
}

func TestCompletion_OutOfRange(t *testing.T) {
	if items := complete(nil, "palette {}", protocol.Position{Line: 5}); items != nil {
		t.Errorf("expected nil for position past end of document, got %v", completionLabels(items))
	}
}

func TestDetermineBlockContext(t *testing.T) {
	lines := splitLines(paletteForCompletion)

	tests := []struct {
		line int
		want blockContext
	}{
		{0, contextRoot},
		{2, contextMeta},
		{8, contextPalette},
		{14, contextPalette}, // inside highlight
		{22, contextRoot},
	}

	for _, tt := range tests {
		if got := determineBlockContext(lines, tt.line); got != tt.want {
			t.Errorf("line %d (%q): got %v, want %v", tt.line, lines[tt.line], got, tt.want)
		}
	}
}
