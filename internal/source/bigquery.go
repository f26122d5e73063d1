package source

import (
	"fmt"

	"cloud.google.com/go/bigquery"
	"github.com/estimagic/momentsens/internal/sensitivity"
	"golang.org/x/net/context"
	"google.golang.org/api/iterator"
)

// ReadBigQuery runs query in projectID and returns its result as one
// table. Columns are named after the result schema.
func ReadBigQuery(ctx context.Context, projectID string, query string) (*sensitivity.Table, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to bigquery: %w", err)
	}
	defer client.Close()

	it, err := client.Query(query).Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}

	var t *tableBuilder
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		if t == nil {
			t = newTableBuilder(schemaLabels(it.Schema))
		}
		cells := make([]interface{}, len(row))
		for i := range row {
			cells[i] = row[i]
		}
		if err := t.addRow(cells); err != nil {
			return nil, err
		}
	}
	if t == nil {
		t = newTableBuilder(schemaLabels(it.Schema))
	}
	return t.table(), nil
}

func schemaLabels(schema bigquery.Schema) []string {
	labels := make([]string, len(schema))
	for i, f := range schema {
		labels[i] = f.Name
	}
	return labels
}
