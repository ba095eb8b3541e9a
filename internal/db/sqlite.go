package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/paylinq/askhr/internal/model"
	"github.com/paylinq/askhr/internal/schema"
)

// SQLiteDB implements DB using modernc.org/sqlite. Intended for local
// development and demos against a file database.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given DSN.
func NewSQLite(dsn string) (*SQLiteDB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	// Pragmas apply per connection; keep a single one so query_only holds.
	sqlDB.SetMaxOpenConns(1)
	for _, pragma := range []string{
		"PRAGMA query_only=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteDB{db: sqlDB}, nil
}

// Execute runs one SELECT statement and stringifies every value.
func (s *SQLiteDB) Execute(ctx context.Context, stmt string) (model.ResultSet, error) {
	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query")
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: columns")
	}

	var result model.ResultSet
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan row")
		}
		row := make(model.Row, len(cols))
		for i, c := range cols {
			row[c] = formatValue(values[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate rows")
	}

	return result, nil
}

// Schema introspects user tables via sqlite_master and PRAGMA table_info.
func (s *SQLiteDB) Schema(ctx context.Context) (*schema.Schema, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list tables")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan table name")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate tables")
	}

	out := &schema.Schema{}
	for _, name := range names {
		t := schema.Table{Name: name}
		colRows, err := s.db.QueryContext(ctx, "PRAGMA table_info("+quoteIdent(name)+")")
		if err != nil {
			return nil, eris.Wrapf(err, "sqlite: table_info %s", name)
		}
		for colRows.Next() {
			var cid int
			var colName, colType string
			var notNull, pk int
			var dflt sql.NullString
			if err := colRows.Scan(&cid, &colName, &colType, &notNull, &dflt, &pk); err != nil {
				colRows.Close()
				return nil, eris.Wrapf(err, "sqlite: scan table_info %s", name)
			}
			t.Columns = append(t.Columns, schema.Column{Name: colName, Type: colType})
		}
		if err := colRows.Err(); err != nil {
			colRows.Close()
			return nil, eris.Wrapf(err, "sqlite: iterate table_info %s", name)
		}
		colRows.Close()
		out.Tables = append(out.Tables, t)
	}

	return out, nil
}

func (s *SQLiteDB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
