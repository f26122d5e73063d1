package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// subplot is one parameter's column of a figure: one dot per
// measure, measures stacked from top to bottom.
type subplot struct {
	title  string
	labels []string
	values []float64
	colors []drawing.Color

	// Only the leftmost subplot shows the measure labels.
	showLabels bool
}

// niceStep rounds raw up to 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	exp := math.Floor(math.Log10(raw))
	f := raw / math.Pow(10, exp)
	var nf float64
	switch {
	case f <= 1:
		nf = 1
	case f <= 2:
		nf = 2
	case f <= 5:
		nf = 5
	default:
		nf = 10
	}
	return nf * math.Pow(10, exp)
}

// maxTicks bounds the number of value axis ticks.
const maxTicks = 12

// xTicks returns the upper bound of the value axis and its ticks.
// The axis always starts at zero.
func xTicks(max float64) (float64, []chart.Tick) {
	if max <= 0 || math.IsNaN(max) || math.IsInf(max, 0) {
		max = 1
	}
	step := niceStep(max / 4)
	upper := math.Ceil(max*1.05/step) * step
	if math.IsInf(upper, 0) {
		upper = math.MaxFloat64
	}

	format := func(v float64) string {
		if step >= 1e6 {
			return strconv.FormatFloat(v, 'g', 3, 64)
		}
		decimals := 0
		if step < 1 {
			decimals = int(math.Ceil(-math.Log10(step)))
		}
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}

	ticks := []chart.Tick{}
	for i := 0; i < maxTicks; i++ {
		v := float64(i) * step
		if v-upper > step/2 {
			break
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: format(v)})
	}
	// go-chart spans the axis from the first to the last tick.
	if last := ticks[len(ticks)-1].Value; last < upper {
		ticks = append(ticks, chart.Tick{Value: upper, Label: format(upper)})
	}
	return upper, ticks
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// maxOf returns the largest finite value, or zero.
func maxOf(values []float64) float64 {
	max := 0.0
	for _, v := range values {
		if finite(v) && v > max {
			max = v
		}
	}
	return max
}

// render draws the subplot into an image of the given size.
func (p subplot) render(s Style, width, height int) (image.Image, error) {
	n := len(p.values)
	upper, ticks := xTicks(maxOf(p.values))

	// Measures without a finite value get no marker.
	var xs, ys []float64
	var colors []drawing.Color
	for k, v := range p.values {
		if !finite(v) {
			continue
		}
		xs = append(xs, v)
		ys = append(ys, float64(n-1-k))
		colors = append(colors, p.colors[k%len(p.colors)])
	}

	radius := s.pixels(s.MarkerSize) / 2
	colorOf := func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
		return colors[index]
	}

	var series []chart.Series
	if s.MeasureLines {
		for k := 0; k < n; k++ {
			y := float64(k)
			series = append(series, chart.ContinuousSeries{
				Name:    "measure line",
				YAxis:   chart.YAxisSecondary,
				XValues: []float64{0, upper},
				YValues: []float64{y, y},
				Style: chart.Style{
					StrokeColor: s.Grid,
					StrokeWidth: 1,
				},
			})
		}
	}

	if len(xs) == 0 {
		// go-chart refuses a chart without series.
		series = append(series, chart.ContinuousSeries{
			Name:    "empty",
			YAxis:   chart.YAxisSecondary,
			XValues: []float64{0},
			YValues: []float64{0},
			Style:   chart.Hidden(),
		})
	} else {
		// The edge is a slightly larger dot in the edge color drawn
		// underneath each marker.
		series = append(series,
			chart.ContinuousSeries{
				Name:    "edge",
				YAxis:   chart.YAxisSecondary,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    radius + s.pixels(s.EdgeWidth),
					DotColor:    s.Edge,
				},
			},
			chart.ContinuousSeries{
				Name:    "markers",
				YAxis:   chart.YAxisSecondary,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth:      chart.Disabled,
					DotWidth:         radius,
					DotColorProvider: colorOf,
				},
			},
		)
	}

	var gridLines []chart.GridLine
	gridStyle := chart.Hidden()
	if !s.MeasureLines {
		for _, t := range ticks {
			gridLines = append(gridLines, chart.GridLine{Value: t.Value})
		}
		gridStyle = chart.Style{StrokeColor: s.Grid, StrokeWidth: 1}
	}

	yMin, yMax := -0.5, float64(n)-0.5
	labelAxis := chart.YAxis{
		Range:          &chart.ContinuousRange{Min: yMin, Max: yMax},
		GridMajorStyle: chart.Hidden(),
		GridMinorStyle: chart.Hidden(),
		Style:          chart.Hidden(),
	}
	if p.showLabels {
		yTicks := make([]chart.Tick, n)
		for k := range p.labels {
			yTicks[n-1-k] = chart.Tick{Value: float64(n - 1 - k), Label: p.labels[k]}
		}
		labelAxis.Ticks = yTicks
		labelAxis.Style = chart.Style{
			StrokeColor: drawing.ColorTransparent,
			FontColor:   s.Text,
			FontSize:    9,
		}
	}

	ch := chart.Chart{
		Title: p.title,
		TitleStyle: chart.Style{
			FontColor: s.Text,
			FontSize:  11,
		},
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: s.Background,
			Padding:   chart.Box{Top: 36, Left: 8, Right: 14, Bottom: 12},
		},
		Canvas: chart.Style{FillColor: s.Background},
		XAxis: chart.XAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: upper},
			Ticks:          ticks,
			GridLines:      gridLines,
			GridMajorStyle: gridStyle,
			GridMinorStyle: chart.Hidden(),
			Style: chart.Style{
				StrokeColor: drawing.ColorTransparent,
				FontColor:   s.Text,
				FontSize:    8,
			},
		},
		// go-chart bounds the secondary axis by the primary axis
		// ticks whenever the secondary axis has ticks of its own.
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks: []chart.Tick{{Value: yMin}, {Value: yMax}},
			Style: chart.Hidden(),
		},
		YAxisSecondary: labelAxis,
		Series:         series,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering subplot %q: %w", p.title, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decoding subplot %q: %w", p.title, err)
	}
	return img, nil
}
