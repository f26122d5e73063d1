package source

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/estimagic/momentsens/internal/sensitivity"
)

// ReadCSV reads a table with a header row. A leading column with an
// empty header (a row index written by a dataframe library) is
// dropped.
func ReadCSV(r io.Reader) (*sensitivity.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty csv file")
	} else if err != nil {
		return nil, err
	}

	skipIndex := len(header) > 0 && header[0] == ""
	if skipIndex {
		header = header[1:]
	}

	t := newTableBuilder(header)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if skipIndex {
			record = record[1:]
		}
		cells := make([]interface{}, len(record))
		for i := range record {
			cells[i] = record[i]
		}
		if err := t.addRow(cells); err != nil {
			return nil, err
		}
	}
	return t.table(), nil
}
