// Package sqltext extracts a single read-only SQL statement from untrusted
// model output and enforces the SELECT-only safety boundary.
package sqltext

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrNoStatement is returned when no SELECT statement can be located.
var ErrNoStatement = eris.New("sqltext: no SELECT statement found")

// ErrUnsafeStatement is returned when the candidate statement contains a
// mutating keyword. Non-retryable.
var ErrUnsafeStatement = eris.New("sqltext: statement contains a mutating keyword")

// fencedSQL matches a code block explicitly marked as SQL.
var fencedSQL = regexp.MustCompile("(?is)```sql\\s*(.*?)\\s*```")

// mutatingKeyword matches any write/DDL keyword on a word boundary, so column
// names like last_updated do not trip it.
var mutatingKeyword = regexp.MustCompile(`(?i)\b(insert|update|delete|alter|drop|truncate|create|grant|exec)\b`)

var lastSelect = regexp.MustCompile(`(?i)\bselect\b`)

// Extract locates exactly one SELECT statement in raw model output.
//
// A fenced ```sql block wins when present. Otherwise the last occurrence of
// SELECT is taken through to the end of the text, which tolerates models that
// emit explanation before the statement. The result must begin with SELECT
// (case-insensitive) and must not contain any mutating keyword anywhere.
func Extract(raw string) (string, error) {
	candidate := ""
	if m := fencedSQL.FindStringSubmatch(raw); m != nil {
		candidate = m[1]
	} else {
		locs := lastSelect.FindAllStringIndex(raw, -1)
		if locs == nil {
			return "", ErrNoStatement
		}
		candidate = raw[locs[len(locs)-1][0]:]
	}

	candidate = trimStatement(candidate)
	if candidate == "" {
		return "", ErrNoStatement
	}

	// Safety scan first: a candidate that is itself a mutating statement must
	// be reported as unsafe, not as missing.
	if mutatingKeyword.MatchString(candidate) {
		return "", ErrUnsafeStatement
	}
	if !strings.HasPrefix(strings.ToUpper(candidate), "SELECT") {
		return "", ErrNoStatement
	}

	return candidate, nil
}

// trimStatement strips markdown fences, quoting, and trailing punctuation the
// model may wrap around the statement.
func trimStatement(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "`")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	s = strings.TrimSuffix(strings.TrimSpace(s), ";")
	return strings.TrimSpace(s)
}
