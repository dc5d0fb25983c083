package convert

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestRGBToHSL_KnownColors(t *testing.T) {
	tests := []struct {
		name string
		rgb  []float64
		want []float64
	}{
		{"black", []float64{0, 0, 0}, []float64{0, 0, 0}},
		{"white", []float64{255, 255, 255}, []float64{0, 0, 100}},
		{"red", []float64{255, 0, 0}, []float64{0, 100, 50}},
		{"lime", []float64{0, 255, 0}, []float64{120, 100, 50}},
		{"blue", []float64{0, 0, 255}, []float64{240, 100, 50}},
		{"magenta", []float64{255, 0, 255}, []float64{300, 100, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToHSL(tt.rgb)
			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("RGBToHSL(%v) mismatch (-want +got):\n%s", tt.rgb, diff)
			}
		})
	}
}

func TestRGBToCMYK_Black(t *testing.T) {
	got := RGBToCMYK([]float64{0, 0, 0})
	want := []float64{0, 0, 0, 100}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RGBToCMYK(black) mismatch (-want +got):\n%s", diff)
	}
}

func TestCMYKToRGB(t *testing.T) {
	got := CMYKToRGB([]float64{0, 100, 100, 0})
	want := []float64{255, 0, 0}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("CMYKToRGB mismatch (-want +got):\n%s", diff)
	}
}

func TestHSVToRGB_NegativeHue(t *testing.T) {
	// -120 degrees is the same hue as 240 (blue).
	got := HSVToRGB([]float64{-120, 100, 100})
	want := []float64{0, 0, 255}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("HSVToRGB mismatch (-want +got):\n%s", diff)
	}
}

func TestHSLToHSV_ZeroLightness(t *testing.T) {
	got := HSLToHSV([]float64{200, 50, 0})
	for i, v := range got {
		if math.IsNaN(v) {
			t.Fatalf("channel %d is NaN", i)
		}
	}
	if got[1] != 0 || got[2] != 0 {
		t.Errorf("HSLToHSV(l=0) = %v, want saturation and value 0", got)
	}
}

func TestHSVToHSL_ZeroValue(t *testing.T) {
	got := HSVToHSL([]float64{200, 50, 0})
	if math.IsNaN(got[1]) || got[1] != 0 || got[2] != 0 {
		t.Errorf("HSVToHSL(v=0) = %v, want saturation and lightness 0", got)
	}
}

// sampleRGB walks a coarse grid of the rgb cube.
func sampleRGB() [][]float64 {
	var out [][]float64
	for r := 0; r <= 255; r += 51 {
		for g := 0; g <= 255; g += 51 {
			for b := 0; b <= 255; b += 51 {
				out = append(out, []float64{float64(r), float64(g), float64(b)})
			}
		}
	}
	out = append(out, []float64{235, 111, 146}, []float64{25, 23, 36}, []float64{128, 128, 128})
	return out
}

func TestRGBToHSL_MatchesColorful(t *testing.T) {
	for _, rgb := range sampleRGB() {
		c := colorful.Color{R: rgb[0] / 255, G: rgb[1] / 255, B: rgb[2] / 255}
		h, s, l := c.Hsl()
		got := RGBToHSL(rgb)

		if math.Abs(got[1]-s*100) > 1e-6 || math.Abs(got[2]-l*100) > 1e-6 {
			t.Errorf("RGBToHSL(%v) = %v, colorful s=%v l=%v", rgb, got, s*100, l*100)
		}
		if s > 0 && hueDistance(got[0], h) > 1e-6 {
			t.Errorf("RGBToHSL(%v) hue = %v, colorful hue = %v", rgb, got[0], h)
		}
	}
}

func TestRGBToHSV_MatchesColorful(t *testing.T) {
	for _, rgb := range sampleRGB() {
		c := colorful.Color{R: rgb[0] / 255, G: rgb[1] / 255, B: rgb[2] / 255}
		h, s, v := c.Hsv()
		got := RGBToHSV(rgb)

		if math.Abs(got[1]-s*100) > 1e-6 || math.Abs(got[2]-v*100) > 1e-6 {
			t.Errorf("RGBToHSV(%v) = %v, colorful s=%v v=%v", rgb, got, s*100, v*100)
		}
		if s > 0 && hueDistance(got[0], h) > 1e-6 {
			t.Errorf("RGBToHSV(%v) hue = %v, colorful hue = %v", rgb, got[0], h)
		}
	}
}

func TestHSLToRGB_MatchesColorful(t *testing.T) {
	for _, hsl := range [][]float64{
		{0, 100, 50}, {30, 80, 40}, {200, 25, 75}, {330, 60, 10}, {90, 0, 33},
	} {
		want := colorful.Hsl(hsl[0], hsl[1]/100, hsl[2]/100)
		got := HSLToRGB(hsl)
		for i, w := range []float64{want.R, want.G, want.B} {
			if math.Abs(got[i]-w*255) > 1e-6 {
				t.Errorf("HSLToRGB(%v)[%d] = %v, colorful = %v", hsl, i, got[i], w*255)
			}
		}
	}
}

func TestHSVToRGB_MatchesColorful(t *testing.T) {
	for _, hsv := range [][]float64{
		{0, 100, 100}, {45, 50, 80}, {180, 30, 60}, {300, 90, 20}, {359, 10, 100},
	} {
		want := colorful.Hsv(hsv[0], hsv[1]/100, hsv[2]/100)
		got := HSVToRGB(hsv)
		for i, w := range []float64{want.R, want.G, want.B} {
			if math.Abs(got[i]-w*255) > 1e-6 {
				t.Errorf("HSVToRGB(%v)[%d] = %v, colorful = %v", hsv, i, got[i], w*255)
			}
		}
	}
}

func TestRoundTrip_EveryPair(t *testing.T) {
	for _, rgb := range sampleRGB() {
		for _, from := range Spaces {
			src := Convert(RGB, from, rgb)
			for _, to := range Spaces {
				back := Convert(to, RGB, Convert(from, to, src))
				for i := range rgb {
					if math.Abs(back[i]-rgb[i]) > 1e-6 {
						t.Fatalf("rgb %v via %s->%s = %v", rgb, from, to, back)
					}
				}
			}
		}
	}
}

func TestLookup_Identity(t *testing.T) {
	f, ok := Lookup(HSL, HSL)
	if !ok {
		t.Fatal("expected identity conversion for hsl->hsl")
	}
	in := []float64{10, 20, 30}
	out := f(in)
	out[0] = 99
	if in[0] != 10 {
		t.Error("identity conversion must not alias its input")
	}
}

func TestLookup_Invalid(t *testing.T) {
	if _, ok := Lookup(Space(9), RGB); ok {
		t.Error("expected lookup from an invalid space to fail")
	}
}

func TestParseSpace(t *testing.T) {
	tests := []struct {
		input   string
		want    Space
		wantErr bool
	}{
		{"rgb", RGB, false},
		{"HSL", HSL, false},
		{" hsv ", HSV, false},
		{"cmyk", CMYK, false},
		{"lab", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSpace(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSpace(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseSpace(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func hueDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	return math.Min(d, 360-d)
}
