package sensitivity

import (
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
)

// Selection chooses the measure columns of a table. If Columns is
// non-empty those columns are used, in the given order. Otherwise
// the last Count columns are used.
type Selection struct {
	Columns []string
	Count   int
}

// IsZero is true if the selection chooses nothing.
func (s Selection) IsZero() bool {
	return len(s.Columns) == 0 && s.Count == 0
}

// resolve returns the indices of the selected columns in t.
func (s Selection) resolve(t *Table) ([]int, error) {
	if len(s.Columns) > 0 {
		return s.resolveLabels(t)
	}

	if s.Count <= 0 {
		return nil, &ShapeMismatchError{Reason: "no measure columns selected"}
	}
	if s.Count > len(t.Columns) {
		return nil, &ShapeMismatchError{
			Reason: "not enough trailing measure columns",
			Want:   s.Count,
			Got:    len(t.Columns),
		}
	}

	indices := []int{}
	for i := len(t.Columns) - s.Count; i < len(t.Columns); i++ {
		if err := checkMeasure(&t.Columns[i]); err != nil {
			return nil, err
		}
		indices = append(indices, i)
	}
	return indices, nil
}

func (s Selection) resolveLabels(t *Table) ([]int, error) {
	seen := map[string]bool{}
	indices := []int{}
	for _, label := range s.Columns {
		if seen[label] {
			return nil, &ShapeMismatchError{
				Column: label,
				Reason: "column selected more than once",
			}
		}
		seen[label] = true

		col, i := t.Column(label)
		if col == nil {
			return nil, &MissingColumnError{Column: label}
		}
		if err := checkMeasure(col); err != nil {
			return nil, err
		}
		indices = append(indices, i)
	}
	return indices, nil
}

func checkMeasure(col *Column) error {
	if col.Label == NameColumn {
		return &ShapeMismatchError{
			Column: col.Label,
			Reason: "the parameter name column cannot be a measure",
		}
	}
	if !col.Numeric() {
		return &ShapeMismatchError{
			Column: col.Label,
			Reason: "measure column is not numeric",
		}
	}
	return nil
}

// Reshaped is a sensitivity table turned on its side for plotting:
// one row per measure column, one column per parameter. Index holds
// the original label of each measure column.
type Reshaped struct {
	Params []string
	Index  []string

	// Values[row][param] is the absolute sensitivity of Params[param]
	// for the measure Index[row].
	Values [][]float64
}

// Rows returns the number of measures.
func (r *Reshaped) Rows() int {
	return len(r.Index)
}

// Param returns the values of the parameter at position p, one per
// measure.
func (r *Reshaped) Param(p int) []float64 {
	out := make([]float64, len(r.Values))
	for row := range r.Values {
		out[row] = r.Values[row][p]
	}
	return out
}

// Reshape copies t, takes the absolute value of the selected measure
// columns and transposes them so that each measure becomes a row
// labeled by its column and each parameter becomes a column labeled
// by its name. The caller's table is not modified.
func Reshape(t *Table, sel Selection) (*Reshaped, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	indices, err := sel.resolve(t)
	if err != nil {
		return nil, err
	}

	c := t.Copy()
	names, _ := c.Names()

	r := &Reshaped{
		Params: names,
		Index:  make([]string, len(indices)),
		Values: make([][]float64, len(indices)),
	}
	for row, i := range indices {
		col := &c.Columns[i]
		for j := range col.Values {
			col.Values[j] = math.Abs(col.Values[j])
		}
		r.Index[row] = col.Label
		r.Values[row] = col.Values
	}
	return r, nil
}

// ReshapeAll reshapes every table of a sequence. A zero selection
// means "the last len(tables) columns", so a sequence of N tables
// plots the last N columns of each. Every table is checked before
// anything is returned; problems with several tables are reported
// together.
func ReshapeAll(tables []*Table, sel Selection) ([]*Reshaped, error) {
	if len(tables) == 0 {
		return nil, ErrNoTables
	}
	if sel.IsZero() {
		sel.Count = len(tables)
	}

	var merr *multierror.Error
	out := make([]*Reshaped, len(tables))
	for i, t := range tables {
		r, err := Reshape(t, sel)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("sensitivity table %d: %w", i+1, err))
			continue
		}
		out[i] = r
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return out, nil
}
