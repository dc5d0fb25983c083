package color

import "github.com/jsvensson/huekit/internal/convert"

// Values is the set of shapes a space setter accepts: Seq or Channels.
type Values interface {
	resolve(space convert.Space) (vals []float64, alpha float64, hasAlpha bool)
}

// Seq holds channel values in space order, optionally followed by alpha,
// e.g. Seq{255, 0, 0} or Seq{255, 0, 0, 0.5}. Missing channels read as 0.
// An empty Seq leaves the channels as they are.
type Seq []float64

func (s Seq) resolve(space convert.Space) ([]float64, float64, bool) {
	if len(s) == 0 {
		return nil, 0, false
	}
	n := space.Len()
	vals := make([]float64, n)
	copy(vals, s)
	if len(s) > n {
		return vals, s[n], true
	}
	return vals, 0, false
}

// Channels holds channel values keyed either by short letters
// ({"r", "g", "b", "a"}) or by full names ({"red", "green", "blue",
// "alpha"}). Short letters win when both are present. Missing channels
// read as 0.
type Channels map[string]float64

func (m Channels) resolve(space convert.Space) ([]float64, float64, bool) {
	keys, alphaKey := space.Letters(), "a"
	if _, ok := m[keys[0]]; !ok {
		keys, alphaKey = space.Names(), "alpha"
		if _, ok := m[keys[0]]; !ok {
			return nil, 0, false
		}
	}

	vals := make([]float64, len(keys))
	for i, k := range keys {
		vals[i] = m[k]
	}
	alpha, ok := m[alphaKey]
	return vals, alpha, ok
}
