package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Cubehelix describes a cubehelix color palette: a path through RGB
// space whose perceived brightness changes monotonically from Light
// to Dark.
type Cubehelix struct {
	Start   float64
	Rot     float64
	Gamma   float64
	Hue     float64
	Light   float64
	Dark    float64
	Reverse bool
}

// DefaultPalette is the palette "ch:s=1,r=-.1,h=1_r".
func DefaultPalette() Cubehelix {
	return Cubehelix{
		Start:   1,
		Rot:     -0.1,
		Gamma:   1,
		Hue:     1,
		Light:   0.85,
		Dark:    0.15,
		Reverse: true,
	}
}

// ParsePalette parses a cubehelix palette string of the form
// "ch:key=value,...[_r]". Keys are s (start), r (rot), g (gamma),
// h (hue), l (light) and d (dark); a trailing "_r" reverses the
// palette. Unset keys take the usual cubehelix palette defaults.
func ParsePalette(name string) (Cubehelix, error) {
	c := Cubehelix{Start: 0, Rot: 0.4, Gamma: 1, Hue: 0.8, Light: 0.85, Dark: 0.15}

	body, ok := strings.CutPrefix(strings.TrimSpace(name), "ch:")
	if !ok {
		return c, fmt.Errorf("palette %q: only cubehelix palettes (\"ch:...\") are supported", name)
	}
	if rest, ok := strings.CutSuffix(body, "_r"); ok {
		body = rest
		c.Reverse = true
	}
	if body == "" {
		return c, nil
	}

	for _, arg := range strings.Split(body, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(arg), "=")
		if !ok {
			return c, fmt.Errorf("palette %q: expected key=value, got %q", name, arg)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return c, fmt.Errorf("palette %q: %s: %w", name, key, err)
		}
		switch strings.TrimSpace(key) {
		case "s", "start":
			c.Start = f
		case "r", "rot":
			c.Rot = f
		case "g", "gamma":
			c.Gamma = f
		case "h", "hue":
			c.Hue = f
		case "l", "light":
			c.Light = f
		case "d", "dark":
			c.Dark = f
		default:
			return c, fmt.Errorf("palette %q: unknown key %q", name, key)
		}
	}
	return c, nil
}

// Colors returns n colors evenly spaced from Light to Dark (or Dark
// to Light when reversed).
func (c Cubehelix) Colors(n int) []drawing.Color {
	if n <= 0 {
		return nil
	}
	colors := make([]drawing.Color, n)
	for i := 0; i < n; i++ {
		x := c.Light
		if n > 1 {
			x = c.Light + (c.Dark-c.Light)*float64(i)/float64(n-1)
		}
		colors[i] = c.at(x)
	}
	if c.Reverse {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			colors[i], colors[j] = colors[j], colors[i]
		}
	}
	return colors
}

func (c Cubehelix) at(x float64) drawing.Color {
	xg := math.Pow(x, c.Gamma)
	a := c.Hue * xg * (1 - xg) / 2
	phi := 2 * math.Pi * (c.Start/3 + c.Rot*x)
	cos, sin := math.Cos(phi), math.Sin(phi)

	channel := func(p0, p1 float64) uint8 {
		v := xg + a*(p0*cos+p1*sin)
		v = math.Max(0, math.Min(1, v))
		return uint8(math.Round(v * 255))
	}
	return drawing.Color{
		R: channel(-0.14861, 1.78277),
		G: channel(-0.29227, -0.90649),
		B: channel(1.97294, 0),
		A: 255,
	}
}
