package engine

import (
	"bytes"
	"strings"
	"testing"
	"text/template"
)

func TestTemplateFunctions(t *testing.T) {
	data := buildTemplateData(testPalette(t))

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"hex palette path", `{{ hex "palette.base" }}`, "#191724"},
		{"hex css text", `{{ hex "midnightblue" }}`, "#191970"},
		{"hex direct field", `{{ hex (index .Palette "highlight.low") }}`, "#21202E"},
		{"hexBare", `{{ hexBare "palette.love" }}`, "EB6F92"},
		{"rgb", `{{ rgb "palette.love" }}`, "rgb(235, 111, 146)"},
		{"hsl", `{{ hsl "#ff0000" }}`, "hsl(0, 100%, 50%)"},
		{"keyword", `{{ keyword "#00ffff" }}`, "aqua"},
		{"keyword none", `{{ keyword "palette.base" }}`, ""},
		{"alpha", `{{ alpha "palette.base" 0.5 }}`, "rgba(25, 23, 36, 0.5)"},
		{"lighten", `{{ lighten "#cc0000" 0.5 | hex }}`, "#FF3333"},
		{"darken", `{{ darken "#ff0000" 0.5 | hex }}`, "#800000"},
		{"rotate", `{{ rotate "#ff0000" 120 | hex }}`, "#00FF00"},
		{"mix default weight", `{{ mix "white" "black" | hex }}`, "#808080"},
		{"mix weight", `{{ mix "#ff0000" "#0000ff" 0.25 | hex }}`, "#BF0040"},
		{"contrast", `{{ contrast "white" "black" | printf "%.1f" }}`, "21.0"},
		{"dark", `{{ dark "palette.base" }}`, "true"},
		{"light", `{{ dark "white" }}`, "false"},
		{"palette prints rgb", `{{ palette "base" }}`, "rgb(25, 23, 36)"},
		{"piped", `{{ alpha (palette "love") 1 | hex }}`, "#EB6F92"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := template.New("test").Funcs(data.FuncMap).Parse(tt.template)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, data); err != nil {
				t.Fatalf("execute error: %v", err)
			}

			got := strings.TrimSpace(buf.String())
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplateFunctions_DoNotMutatePalette(t *testing.T) {
	data := buildTemplateData(testPalette(t))

	tmpl := template.Must(template.New("test").Funcs(data.FuncMap).Parse(
		`{{ darken "palette.base" 0.9 }}{{ rotate (index .Palette "love") 90 }}{{ alpha (palette "base") 0 }}`,
	))
	if err := tmpl.Execute(&bytes.Buffer{}, data); err != nil {
		t.Fatalf("execute error: %v", err)
	}

	if got := data.Palette["base"].HexString(); got != "#191724" {
		t.Errorf("base = %s after template ran, want #191724", got)
	}
	if got := data.Palette["love"].HexString(); got != "#EB6F92" {
		t.Errorf("love = %s after template ran, want #EB6F92", got)
	}
}

func TestTemplateFunctions_Errors(t *testing.T) {
	data := buildTemplateData(testPalette(t))

	tests := []struct {
		name     string
		template string
	}{
		{"unknown palette path", `{{ hex "palette.nope" }}`},
		{"bad color text", `{{ hex "nope" }}`},
		{"wrong argument type", `{{ hex 42 }}`},
		{"too many weights", `{{ mix "white" "black" 0.1 0.2 }}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := template.New("test").Funcs(data.FuncMap).Parse(tt.template)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			if err := tmpl.Execute(&bytes.Buffer{}, data); err == nil {
				t.Error("expected execute error")
			}
		})
	}
}
