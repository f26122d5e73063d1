package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/estimagic/momentsens/internal/sensitivity"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// labelWidth is the extra room given to the leftmost subplot for the
// measure labels.
func labelWidth(labels []string) int {
	longest := 0
	for _, l := range labels {
		if n := len([]rune(l)); n > longest {
			longest = n
		}
	}
	return longest*7 + 24
}

// Figure draws one subplot per parameter of r side by side, titles
// them, puts title above them all and returns the PNG encoding.
// titles must have one entry per parameter.
func (s Style) Figure(r *sensitivity.Reshaped, titles []string, title string) ([]byte, error) {
	if err := sensitivity.CheckTitles(r.Params, titles); err != nil {
		return nil, err
	}

	colors := s.Palette.Colors(r.Rows())
	w, h := s.subplotSize()

	panels := make([]image.Image, len(r.Params))
	for p := range r.Params {
		sp := subplot{
			title:      titles[p],
			labels:     r.Index,
			values:     r.Param(p),
			colors:     colors,
			showLabels: p == 0,
		}
		width := w
		if sp.showLabels {
			width += labelWidth(r.Index)
		}
		img, err := sp.render(s, width, h)
		if err != nil {
			return nil, err
		}
		panels[p] = img
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, s.compose(title, panels)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// compose places the panels left to right below a title strip.
func (s Style) compose(title string, panels []image.Image) *image.RGBA {
	width, height := 0, 0
	for _, p := range panels {
		width += p.Bounds().Dx()
		if p.Bounds().Dy() > height {
			height = p.Bounds().Dy()
		}
	}
	band := titleBand(height)

	rgba := image.NewRGBA(image.Rect(0, 0, width, height+band))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(s.Background), image.Point{}, draw.Src)

	x := 0
	for _, p := range panels {
		b := p.Bounds()
		rect := image.Rect(x, band, x+b.Dx(), band+b.Dy())
		draw.Draw(rgba, rect, p, b.Min, draw.Over)
		x += b.Dx()
	}

	drawTitle(rgba, title, band, s.Text)
	return rgba
}

// drawTitle centers text in the top band of img.
func drawTitle(img *image.RGBA, text string, band int, c color.Color) {
	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(c), Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := (img.Bounds().Dx() - tw) / 2
	if x < 0 {
		x = 0
	}
	y := (band + face.Metrics().Ascent.Ceil()) / 2
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
}
