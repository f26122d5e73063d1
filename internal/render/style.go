package render

import (
	"math"

	"github.com/estimagic/momentsens/internal/config"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Style is everything about a figure's appearance. It is passed to
// the renderer explicitly; there is no global plotting state.
type Style struct {
	// Subplot height in inches and width as a fraction of it.
	Height float64
	Aspect float64

	// Pixels per inch.
	DPI float64

	// Marker diameter and marker edge width, in points.
	MarkerSize float64
	EdgeWidth  float64

	Palette Cubehelix

	// MeasureLines draws a horizontal line from zero across the
	// subplot for every measure in place of the vertical gridlines.
	MeasureLines bool

	Background drawing.Color
	Grid       drawing.Color
	Text       drawing.Color
	Edge       drawing.Color
}

// DefaultStyle is a white background with light grey gridlines.
func DefaultStyle() Style {
	return Style{
		Height:     7,
		Aspect:     0.25,
		DPI:        100,
		MarkerSize: 12,
		EdgeWidth:  1,
		Palette:    DefaultPalette(),
		Background: drawing.ColorWhite,
		Grid:       drawing.Color{R: 204, G: 204, B: 204, A: 255},
		Text:       drawing.Color{R: 38, G: 38, B: 38, A: 255},
		Edge:       drawing.ColorWhite,
	}
}

// WithSettings applies the non-zero fields of cfg.
func (s Style) WithSettings(cfg config.StyleSettings) (Style, error) {
	if cfg.Height > 0 {
		s.Height = cfg.Height
	}
	if cfg.Aspect > 0 {
		s.Aspect = cfg.Aspect
	}
	if cfg.DPI > 0 {
		s.DPI = cfg.DPI
	}
	if cfg.MarkerSize > 0 {
		s.MarkerSize = cfg.MarkerSize
	}
	if cfg.EdgeWidth > 0 {
		s.EdgeWidth = cfg.EdgeWidth
	}
	if cfg.MeasureLines {
		s.MeasureLines = true
	}
	if cfg.Palette != "" {
		p, err := ParsePalette(cfg.Palette)
		if err != nil {
			return s, err
		}
		s.Palette = p
	}
	return s, nil
}

// subplotSize returns the size in pixels of one subplot.
func (s Style) subplotSize() (int, int) {
	h := s.Height * s.DPI
	return int(math.Round(h * s.Aspect)), int(math.Round(h))
}

// pixels converts a length in points to pixels.
func (s Style) pixels(points float64) float64 {
	return points * s.DPI / 72
}

// titleBand is the height of the strip above the subplots holding
// the figure title: a tenth of the figure.
func titleBand(subplotHeight int) int {
	return int(math.Round(float64(subplotHeight) / 9))
}
