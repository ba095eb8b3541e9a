// Package schema holds the database schema metadata shared with the model
// stages, plus helpers for rendering it into prompts and resolving
// identifier case in generated statements.
package schema

import (
	"fmt"
	"strings"
)

// Column describes one column of a table.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Table describes one table and its columns.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Schema is the read-only schema metadata handed to the pipeline. It is
// materialized once at startup and treated as immutable afterwards.
type Schema struct {
	Tables []Table `json:"tables"`
}

// Render formats the schema as plain text for inclusion in a prompt.
func (s *Schema) Render() string {
	var b strings.Builder
	for _, t := range s.Tables {
		fmt.Fprintf(&b, "TABLE %s (\n", t.Name)
		for i, c := range t.Columns {
			b.WriteString("  " + c.Name + " " + c.Type)
			if i < len(t.Columns)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString(")\n")
	}
	return b.String()
}

// Table returns the named table, matched case-insensitively.
func (s *Schema) Table(name string) (*Table, bool) {
	for i := range s.Tables {
		if strings.EqualFold(s.Tables[i].Name, name) {
			return &s.Tables[i], true
		}
	}
	return nil, false
}
