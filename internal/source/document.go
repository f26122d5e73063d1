package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/estimagic/momentsens/internal/sensitivity"
	"gopkg.in/yaml.v2"
)

// ColumnDocument is the JSON/YAML form of a column. Textual columns
// use Strings, numeric columns Values. A null value is a missing
// (NaN) value.
type ColumnDocument struct {
	Label   string     `json:"label" yaml:"label"`
	Strings []string   `json:"strings,omitempty" yaml:"strings,omitempty"`
	Values  []*float64 `json:"values,omitempty" yaml:"values,omitempty"`
}

// NullableValues converts values for JSON, which has no NaN or
// infinity: those become nil.
func NullableValues(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			v := v
			out[i] = &v
		}
	}
	return out
}

func floatValues(values []*float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *v
		}
	}
	return out
}

// Document is the JSON/YAML form of one table, or of several tables
// under "tables":
//
//	{"columns": [{"label": "name", "strings": ["a", "b"]},
//	             {"label": "m1", "values": [0.1, -2]}]}
type Document struct {
	Columns []ColumnDocument `json:"columns,omitempty" yaml:"columns,omitempty"`
	Tables  []Document       `json:"tables,omitempty" yaml:"tables,omitempty"`
}

// NewDocument converts tables to their document form.
func NewDocument(tables ...*sensitivity.Table) Document {
	docs := make([]Document, len(tables))
	for i, t := range tables {
		for _, c := range t.Columns {
			cd := ColumnDocument{Label: c.Label}
			if c.Numeric() {
				cd.Values = NullableValues(c.Values)
			} else {
				cd.Strings = append([]string{}, c.Strings...)
			}
			docs[i].Columns = append(docs[i].Columns, cd)
		}
	}
	if len(docs) == 1 {
		return docs[0]
	}
	return Document{Tables: docs}
}

// SensitivityTables converts the document back to tables, in order.
func (d Document) SensitivityTables() ([]*sensitivity.Table, error) {
	if len(d.Columns) > 0 && len(d.Tables) > 0 {
		return nil, fmt.Errorf("document has both columns and tables")
	}
	if len(d.Tables) > 0 {
		out := []*sensitivity.Table{}
		for i, sub := range d.Tables {
			tables, err := sub.SensitivityTables()
			if err != nil {
				return nil, fmt.Errorf("table %d: %w", i+1, err)
			}
			out = append(out, tables...)
		}
		return out, nil
	}
	if len(d.Columns) == 0 {
		return nil, fmt.Errorf("document has no columns")
	}

	cols := make([]sensitivity.Column, len(d.Columns))
	for i, cd := range d.Columns {
		if cd.Strings != nil && cd.Values != nil {
			return nil, fmt.Errorf("column %q has both strings and values", cd.Label)
		}
		if cd.Strings != nil || cd.Label == sensitivity.NameColumn {
			cols[i] = sensitivity.TextColumn(cd.Label, cd.Strings...)
		} else {
			cols[i] = sensitivity.NumericColumn(cd.Label, floatValues(cd.Values)...)
		}
	}
	return []*sensitivity.Table{sensitivity.New(cols...)}, nil
}

// ReadJSON reads a JSON document.
func ReadJSON(r io.Reader) ([]*sensitivity.Table, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.SensitivityTables()
}

// ReadYAML reads a YAML document.
func ReadYAML(r io.Reader) ([]*sensitivity.Table, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	var doc Document
	if err := yaml.UnmarshalStrict(buf.Bytes(), &doc); err != nil {
		return nil, err
	}
	return doc.SensitivityTables()
}
