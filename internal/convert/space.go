package convert

import (
	"fmt"
	"strings"
)

// Space identifies one of the four channel groups a color is stored in.
type Space int

const (
	RGB Space = iota
	HSL
	HSV
	CMYK
)

// Spaces lists every space in storage order.
var Spaces = []Space{RGB, HSL, HSV, CMYK}

var spaceInfo = [...]struct {
	name    string
	letters []string
	names   []string
	max     []float64
}{
	RGB: {
		name:    "rgb",
		letters: []string{"r", "g", "b"},
		names:   []string{"red", "green", "blue"},
		max:     []float64{255, 255, 255},
	},
	HSL: {
		name:    "hsl",
		letters: []string{"h", "s", "l"},
		names:   []string{"hue", "saturation", "lightness"},
		max:     []float64{360, 100, 100},
	},
	HSV: {
		name:    "hsv",
		letters: []string{"h", "s", "v"},
		names:   []string{"hue", "saturation", "value"},
		max:     []float64{360, 100, 100},
	},
	CMYK: {
		name:    "cmyk",
		letters: []string{"c", "m", "y", "k"},
		names:   []string{"cyan", "magenta", "yellow", "black"},
		max:     []float64{100, 100, 100, 100},
	},
}

func (s Space) valid() bool {
	return s >= RGB && s <= CMYK
}

func (s Space) String() string {
	if !s.valid() {
		return fmt.Sprintf("Space(%d)", int(s))
	}
	return spaceInfo[s].name
}

// Len returns the number of channels in the space.
func (s Space) Len() int {
	return len(spaceInfo[s].letters)
}

// Letters returns the short channel keys, e.g. r, g, b.
func (s Space) Letters() []string {
	return spaceInfo[s].letters
}

// Names returns the long channel keys, e.g. red, green, blue.
func (s Space) Names() []string {
	return spaceInfo[s].names
}

// Max returns the upper bound of each channel. Every lower bound is 0.
func (s Space) Max() []float64 {
	return spaceInfo[s].max
}

// ParseSpace resolves a space name such as "hsl" (case-insensitive).
func ParseSpace(name string) (Space, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range Spaces {
		if spaceInfo[s].name == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown color space %q (valid: rgb, hsl, hsv, cmyk)", name)
}
