package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/estimagic/momentsens/internal/config"
	"github.com/estimagic/momentsens/internal/render"
	"github.com/estimagic/momentsens/internal/sensitivity"
	"github.com/estimagic/momentsens/internal/source"
	"github.com/estimagic/momentsens/internal/store"
	"github.com/estimagic/momentsens/internal/table"
	"github.com/estimagic/momentsens/internal/util"
)

// loadTables loads every source or dies.
func loadTables(ctx context.Context, refs []string) []*sensitivity.Table {
	util.ProgressMsg("loading " + util.QuoteArgs(refs...))
	tables, err := source.OpenAll(ctx, refs)
	if err != nil {
		util.Die("%s", err)
	}
	if len(tables) == 0 {
		util.Die("no sensitivity tables in %s", util.QuoteArgs(refs...))
	}
	return tables
}

// selection turns --measures into a column selection.
func selection(settings config.Settings) sensitivity.Selection {
	if len(settings.Measures) > 0 {
		return sensitivity.Selection{Columns: settings.Measures}
	}
	return sensitivity.Selection{}
}

// subplotTitles resolves --titles. The single value "regression"
// selects render.RegressionTitles.
func subplotTitles(settings config.Settings) []string {
	if len(settings.Titles) == 1 && settings.Titles[0] == "regression" {
		return render.RegressionTitles
	}
	return settings.Titles
}

// runPlot implements 'momentsens plot'.
func runPlot(ctx context.Context, settings config.Settings, refs []string, force bool) {
	tables := loadTables(ctx, refs)

	style, err := render.DefaultStyle().WithSettings(settings.Style)
	if err != nil {
		util.Die("%s", err)
	}

	opts := render.Options{
		Dir:        settings.OutDir,
		FilePrefix: settings.FilePrefix,
		Selection:  selection(settings),
		Titles:     subplotTitles(settings),
		Style:      style,
	}
	if !settings.NoCache {
		st, err := store.Read(settings.Store, version)
		if err != nil {
			util.Die("%s", err)
		}
		if force {
			st.Reset()
		}
		opts.Store = st
	}

	msg, err := render.Plot(ctx, tables, opts)
	if err != nil {
		util.Die("%s", err)
	}
	fmt.Println(msg)
}

// runReshape implements 'momentsens reshape'.
func runReshape(ctx context.Context, settings config.Settings, refs []string, outputFormat outputFormat) {
	tables := loadTables(ctx, refs)
	reshaped, err := sensitivity.ReshapeAll(tables, selection(settings))
	if err != nil {
		util.Die("%s", err)
	}

	switch outputFormat {
	case outputFormatTable:
		for i, r := range reshaped {
			if i > 0 {
				fmt.Println()
			}
			t := reshapedTable(r, i)
			t.Print()
		}

	case outputFormatJSON:
		out := make([]reshapedJSON, len(reshaped))
		for i, r := range reshaped {
			out[i] = reshapedJSON{
				Title:  fmt.Sprintf("Sensitivity %d", i+1),
				Params: r.Params,
				Index:  r.Index,
				Values: make([][]*float64, len(r.Values)),
			}
			for row, values := range r.Values {
				out[i].Values[row] = source.NullableValues(values)
			}
		}
		printJSON(out)
	}
}

// reshapedTable lays out a reshaped table for printing: an "index"
// column followed by one column per parameter.
func reshapedTable(r *sensitivity.Reshaped, i int) table.Table {
	headers := append([]string{"index"}, r.Params...)
	seen := map[string]bool{}
	for _, h := range headers {
		if seen[h] {
			util.Die("sensitivity table %d: duplicate parameter name %q", i+1, h)
		}
		seen[h] = true
	}

	t := table.New(headers...)
	t.SetTitle(fmt.Sprintf("Sensitivity %d", i+1))
	for row := range r.Index {
		cells := []string{r.Index[row]}
		for _, v := range r.Values[row] {
			cells = append(cells, formatValue(v))
		}
		t.AddRow(cells...)
	}
	return t
}

// runInspect implements 'momentsens inspect'.
func runInspect(ctx context.Context, refs []string, outputFormat outputFormat) {
	tables := loadTables(ctx, refs)

	switch outputFormat {
	case outputFormatTable:
		for i, tbl := range tables {
			if i > 0 {
				fmt.Println()
			}
			t := inputTable(tbl, i)
			t.Print()
		}

	case outputFormatJSON:
		printJSON(source.NewDocument(tables...))
	}
}

// inputTable lays out a loaded table for printing.
func inputTable(tbl *sensitivity.Table, i int) table.Table {
	labels := tbl.Labels()
	seen := map[string]bool{}
	for _, l := range labels {
		if seen[l] {
			util.Die("table %d: duplicate column %q", i+1, l)
		}
		seen[l] = true
	}

	t := table.New(labels...)
	t.SetTitle(fmt.Sprintf("Table %d", i+1))
	for row := 0; row < tbl.Rows(); row++ {
		cells := make([]string, len(tbl.Columns))
		for j := range tbl.Columns {
			if row < tbl.Columns[j].Len() {
				cells[j] = tbl.Columns[j].Cell(row)
			}
		}
		t.AddRow(cells...)
	}
	return t
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

func printJSON(v interface{}) {
	outputB, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		util.Die("%s", err)
	}
	fmt.Println(string(outputB))
}
