package render

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/estimagic/momentsens/internal/config"
	"github.com/estimagic/momentsens/internal/sensitivity"
	"github.com/estimagic/momentsens/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	config.Quiet = true
}

func fourParamTable() *sensitivity.Table {
	return sensitivity.New(
		sensitivity.TextColumn("name", "a", "b", "c", "d"),
		sensitivity.NumericColumn("m1", -1, 2, -3, 4),
		sensitivity.NumericColumn("m2", 0.5, -0.25, 0, 0.1),
	)
}

func TestPlotSingleTable(t *testing.T) {
	dir := t.TempDir()
	tbl := sensitivity.New(
		sensitivity.TextColumn("name", "a", "b", "c"),
		sensitivity.NumericColumn("m1", -1, 2, -3),
	)

	msg, err := PlotOne(context.Background(), tbl, Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, Confirmation, msg)

	f, err := os.Open(filepath.Join(dir, "sensitivity_plot1.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	w, h := DefaultStyle().subplotSize()
	assert.Equal(t, 3*w+labelWidth([]string{"m1"}), img.Bounds().Dx())
	assert.Equal(t, h+titleBand(h), img.Bounds().Dy())

	// The caller's table is untouched.
	col, _ := tbl.Column("m1")
	assert.Equal(t, []float64{-1, 2, -3}, col.Values)
}

func TestPlotTwoTables(t *testing.T) {
	dir := t.TempDir()
	tables := []*sensitivity.Table{fourParamTable(), fourParamTable()}

	msg, err := Plot(context.Background(), tables, Options{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, Confirmation, msg)

	for _, name := range []string{"sensitivity_plot1.png", "sensitivity_plot2.png"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.NoFileExists(t, filepath.Join(dir, "sensitivity_plot3.png"))
}

func TestPlotRegressionTitlesNeedThreeParams(t *testing.T) {
	dir := t.TempDir()

	_, err := PlotOne(context.Background(), fourParamTable(), Options{
		Dir:       dir,
		Selection: sensitivity.Selection{Count: 2},
		Titles:    RegressionTitles,
	})
	var target *sensitivity.TitleCountMismatchError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, 4, target.Params)
	assert.Equal(t, 3, target.Titles)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPlotRegressionTitles(t *testing.T) {
	dir := t.TempDir()
	tbl := sensitivity.New(
		sensitivity.TextColumn("name", "const", "x1", "x2"),
		sensitivity.NumericColumn("mean", 0.3, -1.2, 0.7),
	)

	_, err := PlotOne(context.Background(), tbl, Options{Dir: dir, Titles: RegressionTitles})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "sensitivity_plot1.png"))
}

func TestPlotInvalidTableWritesNothing(t *testing.T) {
	dir := t.TempDir()
	bad := sensitivity.New(sensitivity.NumericColumn("m1", 1), sensitivity.NumericColumn("m2", 1))

	_, err := Plot(context.Background(), []*sensitivity.Table{fourParamTable(), bad}, Options{Dir: dir})
	var target *sensitivity.MissingColumnError
	require.True(t, errors.As(err, &target))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPlotSkipsNonFiniteValues(t *testing.T) {
	dir := t.TempDir()
	tbl := sensitivity.New(
		sensitivity.TextColumn("name", "a", "b", "c"),
		sensitivity.NumericColumn("m1", math.NaN(), 2, -3),
	)

	msg, err := PlotOne(context.Background(), tbl, Options{Dir: dir, Selection: sensitivity.Selection{Count: 1}})
	require.NoError(t, err)
	assert.Equal(t, Confirmation, msg)

	f, err := os.Open(filepath.Join(dir, "sensitivity_plot1.png"))
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	assert.NoError(t, err)
}

func TestPlotHugeValues(t *testing.T) {
	dir := t.TempDir()
	tbl := sensitivity.New(
		sensitivity.TextColumn("name", "a", "b"),
		sensitivity.NumericColumn("m1", 1.7e308, -1),
	)

	_, err := PlotOne(context.Background(), tbl, Options{Dir: dir, Selection: sensitivity.Selection{Count: 1}})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "sensitivity_plot1.png"))
}

func TestPlotMeasureLines(t *testing.T) {
	dir := t.TempDir()
	style, err := DefaultStyle().WithSettings(config.StyleSettings{MeasureLines: true})
	require.NoError(t, err)
	require.True(t, style.MeasureLines)

	opts := Options{Dir: dir, Selection: sensitivity.Selection{Count: 2}, Style: style}
	_, err = PlotOne(context.Background(), fourParamTable(), opts)
	require.NoError(t, err)

	withLines, err := os.ReadFile(opts.Filename(0))
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(withLines))
	require.NoError(t, err)

	opts.Style = DefaultStyle()
	_, err = PlotOne(context.Background(), fourParamTable(), opts)
	require.NoError(t, err)
	withGrid, err := os.ReadFile(opts.Filename(0))
	require.NoError(t, err)
	assert.False(t, bytes.Equal(withLines, withGrid))
}

func TestPlotCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PlotOne(ctx, fourParamTable(), Options{Dir: t.TempDir(), Selection: sensitivity.Selection{Count: 1}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlotIsRepeatable(t *testing.T) {
	dir := t.TempDir()
	opts := Options{Dir: dir, FilePrefix: "fig", Selection: sensitivity.Selection{Count: 2}}
	assert.Equal(t, filepath.Join(dir, "fig1.png"), opts.Filename(0))

	_, err := PlotOne(context.Background(), fourParamTable(), opts)
	require.NoError(t, err)
	first, err := os.ReadFile(opts.Filename(0))
	require.NoError(t, err)

	_, err = PlotOne(context.Background(), fourParamTable(), opts)
	require.NoError(t, err)
	second, err := os.ReadFile(opts.Filename(0))
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second))
}

func TestPlotSkipsFreshFigures(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, ".momentsens", "store.json")
	tbl := fourParamTable()
	sel := sensitivity.Selection{Count: 2}

	st, err := store.Read(storePath, "1.0.0")
	require.NoError(t, err)
	opts := Options{Dir: dir, Selection: sel, Store: st}
	_, err = PlotOne(context.Background(), tbl, opts)
	require.NoError(t, err)

	figure := opts.Filename(0)
	old := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(figure, old, old))

	st, err = store.Read(storePath, "1.0.0")
	require.NoError(t, err)
	opts.Store = st
	_, err = PlotOne(context.Background(), tbl, opts)
	require.NoError(t, err)

	info, err := os.Stat(figure)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "fresh figure was rewritten")

	// Changed data is rendered again.
	changed := fourParamTable()
	changed.Columns[2].Values[0] = 9
	_, err = PlotOne(context.Background(), changed, opts)
	require.NoError(t, err)

	info, err = os.Stat(figure)
	require.NoError(t, err)
	assert.False(t, info.ModTime().Equal(old), "stale figure was not rewritten")
}

func TestXTicks(t *testing.T) {
	upper, ticks := xTicks(3)
	assert.Equal(t, 4.0, upper)
	require.NotEmpty(t, ticks)
	assert.Equal(t, 0.0, ticks[0].Value)
	assert.Equal(t, "0", ticks[0].Label)
	assert.Equal(t, upper, ticks[len(ticks)-1].Value)

	upper, ticks = xTicks(0)
	assert.Equal(t, 1.5, upper)
	assert.Equal(t, "0.0", ticks[0].Label)
	assert.Equal(t, "1.5", ticks[len(ticks)-1].Label)
}

func TestXTicksHugeValues(t *testing.T) {
	for _, max := range []float64{1.7e308, math.MaxFloat64} {
		upper, ticks := xTicks(max)
		assert.False(t, math.IsInf(upper, 0), "upper for %g", max)
		assert.GreaterOrEqual(t, upper, max)
		require.NotEmpty(t, ticks)
		assert.LessOrEqual(t, len(ticks), maxTicks)
		for _, tick := range ticks {
			assert.False(t, math.IsInf(tick.Value, 0))
			assert.Less(t, len(tick.Label), 12, tick.Label)
		}
	}
}

func TestMaxOfIgnoresNonFinite(t *testing.T) {
	assert.Equal(t, 2.0, maxOf([]float64{math.NaN(), 2, math.Inf(1), 1}))
	assert.Equal(t, 0.0, maxOf([]float64{math.NaN()}))
}

func TestNiceStep(t *testing.T) {
	assert.Equal(t, 1.0, niceStep(0.8))
	assert.Equal(t, 2.0, niceStep(1.5))
	assert.Equal(t, 5.0, niceStep(3))
	assert.Equal(t, 10.0, niceStep(7))
	assert.InDelta(t, 0.05, niceStep(0.04), 1e-12)
}

func TestStyleWithSettings(t *testing.T) {
	s, err := DefaultStyle().WithSettings(config.StyleSettings{DPI: 50, Palette: "ch:s=2"})
	require.NoError(t, err)
	assert.Equal(t, 50.0, s.DPI)
	assert.Equal(t, 7.0, s.Height)
	assert.Equal(t, 2.0, s.Palette.Start)

	_, err = DefaultStyle().WithSettings(config.StyleSettings{Palette: "nope"})
	assert.Error(t, err)
}
