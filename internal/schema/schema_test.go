package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return &Schema{
		Tables: []Table{
			{
				Name: "Employees",
				Columns: []Column{
					{Name: "Name", Type: "text"},
					{Name: "Salary", Type: "numeric"},
					{Name: "HiredAt", Type: "date"},
				},
			},
			{
				Name: "Policies",
				Columns: []Column{
					{Name: "Name", Type: "text"},
					{Name: "Description", Type: "text"},
				},
			},
		},
	}
}

func TestRender(t *testing.T) {
	got := testSchema().Render()

	assert.Contains(t, got, "TABLE Employees (")
	assert.Contains(t, got, "  Name text,")
	assert.Contains(t, got, "  HiredAt date\n")
	assert.Contains(t, got, "TABLE Policies (")
}

func TestTableLookupIsCaseInsensitive(t *testing.T) {
	s := testSchema()

	tbl, ok := s.Table("employees")
	require.True(t, ok)
	assert.Equal(t, "Employees", tbl.Name)

	_, ok = s.Table("missing")
	assert.False(t, ok)
}

func TestNormalizeIdentifiers(t *testing.T) {
	s := testSchema()

	tests := []struct {
		name string
		stmt string
		want string
	}{
		{
			"lowercased identifiers",
			"SELECT salary FROM employees WHERE name = 'Ana'",
			"SELECT Salary FROM Employees WHERE Name = 'Ana'",
		},
		{
			"already canonical",
			"SELECT Salary FROM Employees",
			"SELECT Salary FROM Employees",
		},
		{
			"mixed case",
			"select SALARY from EMPLOYEES",
			"select Salary from Employees",
		},
		{
			"keywords untouched",
			"SELECT COUNT(*) FROM employees",
			"SELECT COUNT(*) FROM Employees",
		},
		{
			"string literals untouched",
			"SELECT Salary FROM Employees WHERE Name = 'head of employees'",
			"SELECT Salary FROM Employees WHERE Name = 'head of employees'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIdentifiers(tt.stmt, s))
		})
	}
}

func TestNormalizeIdentifiersNilSchema(t *testing.T) {
	assert.Equal(t, "SELECT 1", NormalizeIdentifiers("SELECT 1", nil))
}
