package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/paylinq/askhr/internal/model"
	"github.com/paylinq/askhr/internal/schema"
)

// PostgresDB implements DB using pgxpool.
type PostgresDB struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresDB with a connection pool. Every connection
// is forced read-only so a statement that slips past the extractor still
// cannot mutate anything.
func NewPostgres(ctx context.Context, connString string) (*PostgresDB, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		if _, err := conn.Exec(ctx, "SET default_transaction_read_only = on"); err != nil {
			return eris.Wrap(err, "postgres: set read-only")
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresDB{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool. Used by tests with pgxmock.
func NewPostgresFromPool(pool Pool) *PostgresDB {
	return &PostgresDB{pool: pool, closeFn: pool.Close}
}

// Execute runs one SELECT statement and stringifies every value.
func (p *PostgresDB) Execute(ctx context.Context, stmt string) (model.ResultSet, error) {
	rows, err := p.pool.Query(ctx, stmt)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: query")
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var result model.ResultSet
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, eris.Wrap(err, "postgres: read row")
		}
		if len(values) != len(fields) {
			return nil, eris.New("postgres: row width does not match column set")
		}
		row := make(model.Row, len(fields))
		for i, f := range fields {
			row[f.Name] = formatValue(values[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate rows")
	}

	return result, nil
}

const introspectSQL = `
SELECT table_name, column_name, data_type
FROM information_schema.columns
WHERE table_schema = 'public'
ORDER BY table_name, ordinal_position`

// Schema introspects the public schema via information_schema.
func (p *PostgresDB) Schema(ctx context.Context) (*schema.Schema, error) {
	rows, err := p.pool.Query(ctx, introspectSQL)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: introspect")
	}
	defer rows.Close()

	s := &schema.Schema{}
	var current *schema.Table
	for rows.Next() {
		var table, column, dataType string
		if err := rows.Scan(&table, &column, &dataType); err != nil {
			return nil, eris.Wrap(err, "postgres: scan column")
		}
		if current == nil || current.Name != table {
			s.Tables = append(s.Tables, schema.Table{Name: table})
			current = &s.Tables[len(s.Tables)-1]
		}
		current.Columns = append(current.Columns, schema.Column{Name: column, Type: dataType})
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate columns")
	}

	return s, nil
}

func (p *PostgresDB) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresDB) Close() error {
	if p.closeFn != nil {
		p.closeFn()
	}
	return nil
}
