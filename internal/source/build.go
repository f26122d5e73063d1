package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/estimagic/momentsens/internal/sensitivity"
)

// columnBuilder collects the raw cells of one column and decides at
// the end whether it is numeric: a column is numeric if every cell is
// a number (or text that parses as one) or empty; empty cells of a
// numeric column are NaN. The name column is always textual.
type columnBuilder struct {
	label   string
	cells   []string
	values  []float64
	numeric bool
}

func newColumnBuilder(label string) *columnBuilder {
	return &columnBuilder{label: label, numeric: label != sensitivity.NameColumn}
}

func (b *columnBuilder) add(cell interface{}) {
	var text string
	var value float64
	isNumber := false

	switch v := cell.(type) {
	case float64:
		value, isNumber = v, true
		text = strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		value, isNumber = float64(v), true
		text = strconv.FormatFloat(value, 'g', -1, 32)
	case int64:
		value, isNumber = float64(v), true
		text = strconv.FormatInt(v, 10)
	case int:
		value, isNumber = float64(v), true
		text = strconv.Itoa(v)
	case []byte:
		text = string(v)
	case string:
		text = v
	case nil:
		text = ""
	default:
		text = fmt.Sprint(v)
	}

	if !isNumber {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			// Missing values, as pandas reads them.
			value, isNumber = math.NaN(), true
		} else if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			value, isNumber = f, true
		}
	}

	b.cells = append(b.cells, text)
	b.values = append(b.values, value)
	if !isNumber {
		b.numeric = false
	}
}

func (b *columnBuilder) column() sensitivity.Column {
	if b.numeric {
		return sensitivity.NumericColumn(b.label, b.values...)
	}
	return sensitivity.TextColumn(b.label, b.cells...)
}

// tableBuilder assembles a table row by row.
type tableBuilder struct {
	columns []*columnBuilder
}

func newTableBuilder(labels []string) *tableBuilder {
	t := &tableBuilder{}
	for _, l := range labels {
		t.columns = append(t.columns, newColumnBuilder(l))
	}
	return t
}

func (t *tableBuilder) addRow(cells []interface{}) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("row has %d cells, expected %d", len(cells), len(t.columns))
	}
	for i, c := range cells {
		t.columns[i].add(c)
	}
	return nil
}

func (t *tableBuilder) table() *sensitivity.Table {
	cols := make([]sensitivity.Column, len(t.columns))
	for i, b := range t.columns {
		cols[i] = b.column()
	}
	return sensitivity.New(cols...)
}
