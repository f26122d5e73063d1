// Package source loads sensitivity tables from files and databases.
package source

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/estimagic/momentsens/internal/sensitivity"
	"github.com/estimagic/momentsens/internal/util"
	"go.uber.org/zap"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// Reference schemes for database sources.
const (
	SQLiteScheme   = "sqlite://"
	BigQueryScheme = "bigquery://"
)

// splitRef splits "scheme://target?query" into target and query
// values. The target is not URL-decoded, so file paths may contain
// any character except '?'.
func splitRef(ref, scheme string) (string, url.Values, error) {
	rest := strings.TrimPrefix(ref, scheme)
	target, rawQuery, _ := strings.Cut(rest, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", ref, err)
	}
	if target == "" {
		return "", nil, fmt.Errorf("%s: missing %s target", ref, strings.TrimSuffix(scheme, "://"))
	}
	return target, query, nil
}

// Open loads the tables referenced by ref:
//
//	path/to/table.csv
//	path/to/tables.json, path/to/tables.yaml
//	sqlite://path/to/db.sqlite?table=T1&table=T2
//	bigquery://PROJECT?query=SELECT...
func Open(ctx context.Context, ref string) ([]*sensitivity.Table, error) {
	span, ctx := tracer.StartSpanFromContext(ctx, "source.Open")
	defer span.Finish()
	span.SetTag("ref", ref)

	util.Logger().Debug("loading source", zap.String("ref", ref))

	switch {
	case strings.HasPrefix(ref, SQLiteScheme):
		path, query, err := splitRef(ref, SQLiteScheme)
		if err != nil {
			return nil, err
		}
		return ReadSQLite(ctx, path, query["table"])

	case strings.HasPrefix(ref, BigQueryScheme):
		project, query, err := splitRef(ref, BigQueryScheme)
		if err != nil {
			return nil, err
		}
		sql := query.Get("query")
		if sql == "" {
			return nil, fmt.Errorf("%s: missing query", ref)
		}
		t, err := ReadBigQuery(ctx, project, sql)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", project, err)
		}
		return []*sensitivity.Table{t}, nil
	}

	f, err := os.Open(ref)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tables []*sensitivity.Table
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".csv":
		var t *sensitivity.Table
		t, err = ReadCSV(f)
		tables = []*sensitivity.Table{t}
	case ".json":
		tables, err = ReadJSON(f)
	case ".yaml", ".yml":
		tables, err = ReadYAML(f)
	default:
		return nil, fmt.Errorf("%s: unknown file type (expected .csv, .json, .yaml or .yml)", ref)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref, err)
	}
	return tables, nil
}

// OpenAll loads every reference and concatenates the tables in
// order.
func OpenAll(ctx context.Context, refs []string) ([]*sensitivity.Table, error) {
	out := []*sensitivity.Table{}
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tables, err := Open(ctx, ref)
		if err != nil {
			return nil, err
		}
		out = append(out, tables...)
	}
	return out, nil
}
