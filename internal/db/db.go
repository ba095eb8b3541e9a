// Package db provides read-only database access for the pipeline: statement
// execution with stringified rows, and schema introspection.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/paylinq/askhr/internal/model"
	"github.com/paylinq/askhr/internal/schema"
)

// DB is the database collaborator the pipeline depends on. It is synchronous,
// single-statement, and read-only.
type DB interface {
	// Execute runs one SELECT statement and returns stringified rows. An
	// empty ResultSet with a nil error means the query matched nothing.
	Execute(ctx context.Context, stmt string) (model.ResultSet, error)

	// Schema introspects the current schema.
	Schema(ctx context.Context) (*schema.Schema, error)

	Ping(ctx context.Context) error
	Close() error
}

// Pool is the subset of pgxpool.Pool the postgres backend uses. pgxmock
// satisfies it for tests.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
	Close()
}

// formatValue renders a scalar the way it should appear in a prompt or an
// answer. NULLs stay visibly distinct from empty strings.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
