// Package render draws moment sensitivity dot plots. Each sensitivity
// table becomes one PNG figure with a subplot per parameter, showing
// the absolute sensitivity of that parameter to every moment.
package render

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/estimagic/momentsens/internal/sensitivity"
	"github.com/estimagic/momentsens/internal/store"
	"github.com/estimagic/momentsens/internal/util"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// Confirmation is returned by Plot once every figure is saved.
const Confirmation = "Figures saved."

// DefaultFilePrefix names the figures sensitivity_plot1.png,
// sensitivity_plot2.png, ...
const DefaultFilePrefix = "sensitivity_plot"

// RegressionTitles are subplot titles for a linear model with an
// intercept and two slopes. They only fit tables with exactly three
// parameters.
var RegressionTitles = []string{"intersection", "beta1", "beta2"}

// Options control Plot. The zero value writes to the current
// directory with the default style and no render cache.
type Options struct {
	Dir        string
	FilePrefix string

	// Which columns of each table are measures. The zero value
	// selects the last len(tables) columns.
	Selection sensitivity.Selection

	// Subplot titles, one per parameter. If empty the parameter
	// names are used.
	Titles []string

	// Style defaults to DefaultStyle() if left zero.
	Style Style

	// If set, figures whose inputs are unchanged are not rendered
	// again, and the store is written back after plotting.
	Store *store.Store
}

// Filename returns the path of the figure for table i (counting
// from zero).
func (o Options) Filename(i int) string {
	prefix := o.FilePrefix
	if prefix == "" {
		prefix = DefaultFilePrefix
	}
	return filepath.Join(o.Dir, fmt.Sprintf("%s%d.png", prefix, i+1))
}

// figureInput is hashed to decide whether a figure is up to date.
type figureInput struct {
	Data   *sensitivity.Reshaped
	Titles []string
	Title  string
	Style  Style
}

// PlotOne plots a single sensitivity table.
func PlotOne(ctx context.Context, t *sensitivity.Table, opts Options) (string, error) {
	return Plot(ctx, []*sensitivity.Table{t}, opts)
}

// Plot writes one figure per table, in order, and returns
// Confirmation. Every figure is rendered before anything is written,
// so an invalid table leaves no figures behind. Existing figures are
// overwritten. Measures with a NaN or infinite value are left out of
// that parameter's subplot.
func Plot(ctx context.Context, tables []*sensitivity.Table, opts Options) (string, error) {
	span, ctx := tracer.StartSpanFromContext(ctx, "render.Plot")
	defer span.Finish()
	span.SetTag("tables", len(tables))

	if opts.Style == (Style{}) {
		opts.Style = DefaultStyle()
	}

	reshaped, err := sensitivity.ReshapeAll(tables, opts.Selection)
	if err != nil {
		return "", err
	}

	titles := make([][]string, len(reshaped))
	var merr *multierror.Error
	for i, r := range reshaped {
		titles[i] = opts.Titles
		if len(titles[i]) == 0 {
			titles[i] = r.Params
		}
		if err := sensitivity.CheckTitles(r.Params, titles[i]); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("sensitivity table %d: %w", i+1, err))
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return "", err
	}

	figures := make([]*figure, 0, len(reshaped))
	for i, r := range reshaped {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fig, err := opts.drawFigure(ctx, i, r, titles[i])
		if err != nil {
			return "", err
		}
		if fig != nil {
			figures = append(figures, fig)
		}
	}

	for _, fig := range figures {
		if err := util.WriteFileAtomic(fig.filename, fig.contents); err != nil {
			return "", err
		}
		if opts.Store != nil && fig.input != "" {
			opts.Store.Record(fig.filename, fig.input, fig.contents)
		}
	}

	if opts.Store != nil {
		if err := opts.Store.Write(); err != nil {
			return "", fmt.Errorf("saving render cache: %w", err)
		}
	}
	return Confirmation, nil
}

// figure is a rendered figure waiting to be written.
type figure struct {
	filename string
	contents []byte
	input    store.Hash
}

// countNonFinite counts the NaN and infinite values of r.
func countNonFinite(r *sensitivity.Reshaped) int {
	count := 0
	for _, row := range r.Values {
		for _, v := range row {
			if !finite(v) {
				count++
			}
		}
	}
	return count
}

// drawFigure renders the figure for table i. It returns nil if the
// figure on disk is up to date.
func (o Options) drawFigure(ctx context.Context, i int, r *sensitivity.Reshaped, titles []string) (*figure, error) {
	span, _ := tracer.StartSpanFromContext(ctx, "render figure")
	defer span.Finish()

	filename := o.Filename(i)
	title := fmt.Sprintf("Sensitivity %d", i+1)
	span.SetTag("file", filename)

	var input store.Hash
	if o.Store != nil {
		var err error
		input, err = store.HashValue(figureInput{Data: r, Titles: titles, Title: title, Style: o.Style})
		if err != nil {
			// NaN and infinite values have no JSON encoding; such
			// figures are simply not cached.
			util.Logger().Debug("not caching figure", zap.String("file", filename), zap.Error(err))
			input = ""
		}
		if input != "" && o.Store.IsFresh(filename, input) {
			util.ProgressMsg(filename + " is up to date")
			return nil, nil
		}
	}

	if n := countNonFinite(r); n > 0 {
		util.Log(fmt.Sprintf("%s: skipping %d NaN or infinite values", filename, n))
	}

	util.ProgressMsg("rendering " + filename)
	util.Logger().Debug("rendering figure",
		zap.String("file", filename),
		zap.Strings("params", r.Params),
		zap.Strings("measures", r.Index))

	contents, err := o.Style.Figure(r, titles, title)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &figure{filename: filename, contents: contents, input: input}, nil
}
