package schema

import (
	"regexp"
	"strings"
)

var identifier = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// NormalizeIdentifiers rewrites table and column names in a statement to the
// canonical case recorded in the schema, matched case-insensitively. Words
// that resolve to nothing in the schema (SQL keywords, aliases, string
// contents the regex happens to touch inside quotes are left alone by the
// quote scan below) pass through unchanged.
func NormalizeIdentifiers(stmt string, s *Schema) string {
	if s == nil {
		return stmt
	}

	canonical := make(map[string]string)
	for _, t := range s.Tables {
		canonical[strings.ToLower(t.Name)] = t.Name
		for _, c := range t.Columns {
			canonical[strings.ToLower(c.Name)] = c.Name
		}
	}

	var b strings.Builder
	b.Grow(len(stmt))
	last := 0
	inQuote := byte(0)

	for _, loc := range identifier.FindAllStringIndex(stmt, -1) {
		// Track single-quote state up to this match so literals keep their text.
		for i := last; i < loc[0]; i++ {
			if stmt[i] == '\'' {
				if inQuote == '\'' {
					inQuote = 0
				} else {
					inQuote = '\''
				}
			}
		}
		b.WriteString(stmt[last:loc[0]])
		word := stmt[loc[0]:loc[1]]
		if inQuote == 0 {
			if canon, ok := canonical[strings.ToLower(word)]; ok {
				word = canon
			}
		}
		b.WriteString(word)
		last = loc[1]
	}
	b.WriteString(stmt[last:])
	return b.String()
}
