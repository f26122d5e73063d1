// Package sensitivity holds the labeled tables produced by a moment
// sensitivity analysis and reshapes them for plotting.
package sensitivity

import (
	"strconv"
)

// NameColumn is the label of the column listing the parameter names.
const NameColumn = "name"

// Column is one labeled column of a Table. Textual columns store
// their cells in Strings, numeric columns in Values. Use TextColumn
// and NumericColumn to construct them.
type Column struct {
	Label   string
	Strings []string
	Values  []float64
}

// TextColumn returns a textual column holding a copy of cells.
func TextColumn(label string, cells ...string) Column {
	return Column{Label: label, Strings: append([]string{}, cells...)}
}

// NumericColumn returns a numeric column holding a copy of values.
func NumericColumn(label string, values ...float64) Column {
	return Column{Label: label, Values: append([]float64{}, values...)}
}

// Numeric is true if the column holds numbers rather than text.
func (c *Column) Numeric() bool {
	return c.Strings == nil
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	if c.Numeric() {
		return len(c.Values)
	}
	return len(c.Strings)
}

// Cell formats the cell at row i for display.
func (c *Column) Cell(i int) string {
	if c.Numeric() {
		return strconv.FormatFloat(c.Values[i], 'g', -1, 64)
	}
	return c.Strings[i]
}

func (c *Column) copy() Column {
	out := Column{Label: c.Label}
	if c.Numeric() {
		out.Values = append([]float64{}, c.Values...)
	} else {
		out.Strings = append([]string{}, c.Strings...)
	}
	return out
}

// Table is a labeled two-dimensional table: an ordered list of
// columns of equal length. A sensitivity table has a textual "name"
// column with one parameter per row, followed by numeric sensitivity
// measures, one column per moment.
type Table struct {
	Columns []Column
}

// New creates a table from the given columns.
func New(columns ...Column) *Table {
	return &Table{Columns: columns}
}

// Labels returns the column labels in order.
func (t *Table) Labels() []string {
	labels := make([]string, len(t.Columns))
	for i := range t.Columns {
		labels[i] = t.Columns[i].Label
	}
	return labels
}

// Column looks up a column by label. It returns nil and -1 if the
// table has no such column.
func (t *Table) Column(label string) (*Column, int) {
	for i := range t.Columns {
		if t.Columns[i].Label == label {
			return &t.Columns[i], i
		}
	}
	return nil, -1
}

// Rows returns the number of rows, which is the length of the first
// column (all columns of a valid table have the same length).
func (t *Table) Rows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// Names returns the parameter names from the "name" column.
func (t *Table) Names() ([]string, error) {
	col, _ := t.Column(NameColumn)
	if col == nil {
		return nil, &MissingColumnError{Column: NameColumn}
	}
	if col.Numeric() {
		return nil, &ShapeMismatchError{
			Column: NameColumn,
			Reason: "parameter names must be text",
		}
	}
	return append([]string{}, col.Strings...), nil
}

// Validate checks that the table has a non-empty textual "name"
// column and that every column has one cell per parameter.
func (t *Table) Validate() error {
	names, err := t.Names()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return &ShapeMismatchError{
			Column: NameColumn,
			Reason: "table has no parameters",
		}
	}
	for i := range t.Columns {
		if n := t.Columns[i].Len(); n != len(names) {
			return &ShapeMismatchError{
				Column: t.Columns[i].Label,
				Reason: "column length differs from the number of parameters",
				Want:   len(names),
				Got:    n,
			}
		}
	}
	return nil
}

// Copy returns a deep copy of the table.
func (t *Table) Copy() *Table {
	out := &Table{Columns: make([]Column, len(t.Columns))}
	for i := range t.Columns {
		out.Columns[i] = t.Columns[i].copy()
	}
	return out
}
