package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSQLite creates a small HR database on disk and returns its path.
func seedSQLite(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hr.db")

	raw, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer raw.Close()

	for _, stmt := range []string{
		`CREATE TABLE employees (name TEXT, salary REAL, hired_at TEXT, terminated_at TEXT)`,
		`CREATE TABLE policies (name TEXT, description TEXT)`,
		`INSERT INTO employees VALUES ('Carlos Almeida', 3500.5, '2020-01-15', NULL)`,
		`INSERT INTO employees VALUES ('Ana Souza', 4200, '2019-06-01', NULL)`,
		`INSERT INTO policies VALUES ('vacation', '30 days per year')`,
	} {
		_, err := raw.Exec(stmt)
		require.NoError(t, err)
	}

	return path
}

func TestSQLiteExecute(t *testing.T) {
	db, err := NewSQLite(seedSQLite(t))
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Execute(context.Background(), "SELECT name, salary FROM employees ORDER BY name")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana Souza", rows[0]["name"])
	assert.Equal(t, "4200", rows[0]["salary"])
	assert.Equal(t, "3500.5", rows[1]["salary"])
}

func TestSQLiteExecuteEmpty(t *testing.T) {
	db, err := NewSQLite(seedSQLite(t))
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Execute(context.Background(), "SELECT name FROM employees WHERE name = 'Nobody'")

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSQLiteIsReadOnly(t *testing.T) {
	db, err := NewSQLite(seedSQLite(t))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Execute(context.Background(), "DELETE FROM employees")

	assert.Error(t, err)
}

func TestSQLiteSchema(t *testing.T) {
	db, err := NewSQLite(seedSQLite(t))
	require.NoError(t, err)
	defer db.Close()

	s, err := db.Schema(context.Background())

	require.NoError(t, err)
	require.Len(t, s.Tables, 2)
	assert.Equal(t, "employees", s.Tables[0].Name)
	require.Len(t, s.Tables[0].Columns, 4)
	assert.Equal(t, "salary", s.Tables[0].Columns[1].Name)
	assert.Equal(t, "REAL", s.Tables[0].Columns[1].Type)
	assert.Equal(t, "policies", s.Tables[1].Name)
}
