package weather

import (
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is an RGBA fog colour. RGB is in [0, 1]; A is the fog intensity
// and may exceed 1.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// White is the fog colour used when none is given
var White = Color{R: 1, G: 1, B: 1, A: 1}

// WithAlpha returns c with intensity a
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Active reports whether the colour is visible at all
func (c Color) Active() bool {
	return c.A != 0
}

// Blend moves t of the way from c to o on every channel
func (c Color) Blend(o Color, t float64) Color {
	rgb := colorful.Color{R: c.R, G: c.G, B: c.B}.BlendRgb(colorful.Color{R: o.R, G: o.G, B: o.B}, t)
	return Color{R: rgb.R, G: rgb.G, B: rgb.B, A: c.A + t*(o.A-c.A)}
}

func (c Color) valid() bool {
	for _, v := range [4]float64{c.R, c.G, c.B, c.A} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// sanitize clamps RGB to [0, 1] and A to [0, inf)
func (c Color) sanitize() Color {
	if !c.valid() {
		return Color{}
	}
	c.R = clamp01(c.R)
	c.G = clamp01(c.G)
	c.B = clamp01(c.B)
	if c.A < 0 {
		c.A = 0
	}
	return c
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// ParseColor reads a CSS colour: a named colour, #rgb, #rrggbb,
// rgb(r, g, b) or rgba(r, g, b, a). The alpha of the result is 1 unless
// rgba() supplies one.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Color{}, false
	}

	if rgba, ok := colornames.Map[s]; ok {
		return Color{
			R: float64(rgba.R) / 255,
			G: float64(rgba.G) / 255,
			B: float64(rgba.B) / 255,
			A: 1,
		}, true
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, false
		}
		return Color{R: c.R, G: c.G, B: c.B, A: 1}, true
	}

	return parseFunctional(s)
}

func parseFunctional(s string) (Color, bool) {
	var body string
	var n int
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		body, n = s[5:len(s)-1], 4
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		body, n = s[4:len(s)-1], 3
	default:
		return Color{}, false
	}

	parts := strings.Split(body, ",")
	if len(parts) != n {
		return Color{}, false
	}
	vals := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) {
			return Color{}, false
		}
		vals[i] = v
	}

	c := Color{
		R: clamp01(vals[0] / 255),
		G: clamp01(vals[1] / 255),
		B: clamp01(vals[2] / 255),
		A: 1,
	}
	if n == 4 {
		c.A = clamp01(vals[3])
	}
	return c, true
}

// ParseColorOr parses s, returning def when s is empty or malformed
func ParseColorOr(s string, def Color) Color {
	if strings.TrimSpace(s) == "" {
		return def
	}
	if c, ok := ParseColor(s); ok {
		return c
	}
	log.WithField("color", s).Warn("invalid fog colour, using default")
	return def
}
