package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/estimagic/momentsens/internal/sensitivity"
	_ "github.com/mattn/go-sqlite3"
)

// quoteIdent quotes an SQLite identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// ReadSQLite reads every row of each named table in the database at
// path. Column order follows the table definition; rows are read in
// rowid order.
func ReadSQLite(ctx context.Context, path string, tableNames []string) ([]*sensitivity.Table, error) {
	if len(tableNames) == 0 {
		return nil, fmt.Errorf("%s: no table given (use ?table=NAME)", path)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	defer db.Close()

	out := []*sensitivity.Table{}
	for _, name := range tableNames {
		t, err := readSQLiteTable(ctx, db, name)
		if err != nil {
			return nil, fmt.Errorf("%s: table %s: %w", path, name, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func readSQLiteTable(ctx context.Context, db *sql.DB, name string) (*sensitivity.Table, error) {
	rows, err := db.QueryContext(ctx, "select * from "+quoteIdent(name)+" order by rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	t := newTableBuilder(labels)
	for rows.Next() {
		cells := make([]interface{}, len(labels))
		ptrs := make([]interface{}, len(labels))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		if err := t.addRow(cells); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return t.table(), nil
}
