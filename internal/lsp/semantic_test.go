package lsp

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeTokens_Empty(t *testing.T) {
	result := encodeTokens([]SemanticToken{})
	expected := []uint32{}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens([]) = %v, want %v", result, expected)
	}
}

func TestEncodeTokens_SingleToken(t *testing.T) {
	tokens := []SemanticToken{
		{Line: 2, StartChar: 5, Length: 7, Type: 0, Modifiers: 0},
	}
	result := encodeTokens(tokens)
	expected := []uint32{2, 5, 7, 0, 0}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens() = %v, want %v", result, expected)
	}
}

func TestEncodeTokens_MultipleTokensSameLine(t *testing.T) {
	tokens := []SemanticToken{
		{Line: 0, StartChar: 0, Length: 7, Type: 0, Modifiers: 0}, // "palette"
		{Line: 0, StartChar: 8, Length: 4, Type: 1, Modifiers: 1}, // "base"
	}
	result := encodeTokens(tokens)
	// Second token: deltaLine=0, deltaStart=8-0=8
	expected := []uint32{0, 0, 7, 0, 0, 0, 8, 4, 1, 1}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens() = %v, want %v", result, expected)
	}
}

func TestEncodeTokens_MultipleTokensDifferentLines(t *testing.T) {
	tokens := []SemanticToken{
		{Line: 0, StartChar: 0, Length: 7, Type: 0, Modifiers: 0}, // line 0
		{Line: 2, StartChar: 2, Length: 4, Type: 1, Modifiers: 0}, // line 2
	}
	result := encodeTokens(tokens)
	// Second token: deltaLine=2-0=2, deltaStart=2 (new line, not relative)
	expected := []uint32{0, 0, 7, 0, 0, 2, 2, 4, 1, 0}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens() = %v, want %v", result, expected)
	}
}

func TestEncodeTokens_SortsTokens(t *testing.T) {
	// Tokens in wrong order
	tokens := []SemanticToken{
		{Line: 1, StartChar: 0, Length: 4, Type: 1, Modifiers: 0},
		{Line: 0, StartChar: 0, Length: 7, Type: 0, Modifiers: 0},
	}
	result := encodeTokens(tokens)
	// Should be sorted: line 0 first, then line 1
	expected := []uint32{0, 0, 7, 0, 0, 1, 0, 4, 1, 0}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("encodeTokens() = %v, want %v", result, expected)
	}
}

func TestSemanticTokensFull_Empty(t *testing.T) {
	content := ``
	result := semanticTokensFull(content)
	if len(result) != 0 {
		t.Errorf("semanticTokensFull(\"\") = %v, want empty", result)
	}
}

// decodeTokens reverses the delta encoding of encodeTokens.
func decodeTokens(data []uint32) []SemanticToken {
	var tokens []SemanticToken
	var line, char uint32
	for i := 0; i+4 < len(data); i += 5 {
		if data[i] > 0 {
			line += data[i]
			char = data[i+1]
		} else {
			char += data[i+1]
		}
		tokens = append(tokens, SemanticToken{
			Line:      line,
			StartChar: char,
			Length:    data[i+2],
			Type:      data[i+3],
			Modifiers: data[i+4],
		})
	}
	return tokens
}

func tok(line, char, length uint32, typ string, mods uint32) SemanticToken {
	return SemanticToken{Line: line, StartChar: char, Length: length, Type: tokenTypeIndices[typ], Modifiers: mods}
}

func TestSemanticTokensFull_SimplePalette(t *testing.T) {
	content := `palette {
  base = "#191724"
}`
	result := semanticTokensFull(content)

	want := []uint32{
		0, 0, 7, 0, 0, // palette
		1, 2, 4, 1, 1, // base
		0, 7, 9, 4, 0, // "#191724"
	}
	if !reflect.DeepEqual(result, want) {
		t.Errorf("semanticTokensFull() = %v, want %v", result, want)
	}
}

func TestSemanticTokensFull_WithPaletteReference(t *testing.T) {
	content := `palette {
  base = "#191724"
  highlight {
    low = palette.base
  }
}`
	got := decodeTokens(semanticTokensFull(content))

	want := []SemanticToken{
		tok(0, 0, 7, "keyword", 0),
		tok(1, 2, 4, "property", 1),
		tok(1, 9, 9, "string", 0),
		tok(2, 2, 9, "keyword", 0),
		tok(3, 4, 3, "property", 1),
		tok(3, 10, 7, "namespace", 0),
		tok(3, 18, 4, "property", 0),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestSemanticTokensFull_WithFunction(t *testing.T) {
	content := `palette {
  love = "#eb6f92"
  muted = darken(palette.love, 0.5)
}`
	got := decodeTokens(semanticTokensFull(content))

	want := []SemanticToken{
		tok(0, 0, 7, "keyword", 0),
		tok(1, 2, 4, "property", 1),
		tok(1, 9, 9, "string", 0),
		tok(2, 2, 5, "property", 1),
		tok(2, 10, 6, "function", 0),
		tok(2, 17, 7, "namespace", 0),
		tok(2, 25, 4, "property", 0),
		tok(2, 31, 3, "number", 0),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestSemanticTokensFull_NonColorStrings(t *testing.T) {
	content := `meta {
  name = "Test Palette"
}
palette {
  base = rgb(25, 23, 36)
  other = foo.bar
}`
	got := decodeTokens(semanticTokensFull(content))

	for _, tk := range got {
		if tk.Type == tokenTypeIndices["string"] {
			t.Errorf("unexpected string token at %d:%d", tk.Line, tk.StartChar)
		}
		if tk.Type == tokenTypeIndices["namespace"] {
			t.Errorf("unexpected namespace token for non-palette reference at %d:%d", tk.Line, tk.StartChar)
		}
	}

	numbers := 0
	for _, tk := range got {
		if tk.Type == tokenTypeIndices["number"] {
			numbers++
		}
	}
	if numbers != 3 {
		t.Errorf("expected 3 number tokens, got %d", numbers)
	}
}

func TestSemanticTokensFull_ParseError(t *testing.T) {
	content := `palette {`
	result := semanticTokensFull(content)
	if len(result) != 0 {
		t.Errorf("semanticTokensFull(parse error) = %v, want empty", result)
	}
}

func TestSemanticTokensFull_CompletePalette(t *testing.T) {
	result := semanticTokensFull(validPalette)

	if len(result) == 0 {
		t.Fatal("semanticTokensFull() returned empty for valid palette")
	}
	if len(result)%5 != 0 {
		t.Errorf("semantic tokens data length %d is not a multiple of 5", len(result))
	}

	// meta, name, author, appearance, palette, base, "#191724", love, "#eb6f92",
	// muted, darken, palette, love, 0.5, highlight, color, "#403d52", low,
	// "#21202e", accent, palette, highlight
	if got := len(result) / 5; got != 22 {
		t.Errorf("semanticTokensFull() returned %d tokens, want 22", got)
	}
}
