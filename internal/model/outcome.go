package model

// Row is one result row: column name to stringified scalar value.
type Row map[string]string

// ResultSet is an ordered sequence of rows. An empty ResultSet is a valid
// state distinct from an execution error; the two are never conflated.
type ResultSet []Row

// OutcomeKind tags the variants of a StageOutcome.
type OutcomeKind string

const (
	// OutcomeSuccess carries a non-empty ResultSet.
	OutcomeSuccess OutcomeKind = "success"
	// OutcomeNoResults means the query executed but returned zero rows.
	OutcomeNoResults OutcomeKind = "no_results"
	// OutcomeError means extraction or execution failed; Err holds the
	// message passed forward as context to the next stage.
	OutcomeError OutcomeKind = "error"
	// OutcomeBlocked means the access guard denied the question.
	OutcomeBlocked OutcomeKind = "access_blocked"
)

// StageOutcome is the tagged union every query stage returns. Stages never
// raise past their boundary; unexpected failures are converted to
// OutcomeError at the coordinator.
type StageOutcome struct {
	Kind OutcomeKind `json:"kind"`
	Rows ResultSet   `json:"rows,omitempty"` // set only when Kind == OutcomeSuccess
	Err  string      `json:"err,omitempty"`  // set only when Kind == OutcomeError
}

// Success returns a StageOutcome carrying rows. Passing an empty set yields
// OutcomeNoResults so the two states stay distinguishable at the type level.
func Success(rows ResultSet) StageOutcome {
	if len(rows) == 0 {
		return NoResults()
	}
	return StageOutcome{Kind: OutcomeSuccess, Rows: rows}
}

// NoResults returns the zero-rows outcome.
func NoResults() StageOutcome {
	return StageOutcome{Kind: OutcomeNoResults}
}

// ExecError returns a failed outcome with the given message.
func ExecError(msg string) StageOutcome {
	return StageOutcome{Kind: OutcomeError, Err: msg}
}

// Blocked returns the access-denied outcome.
func Blocked() StageOutcome {
	return StageOutcome{Kind: OutcomeBlocked}
}

// HasRows reports whether the outcome carries usable result rows.
func (o StageOutcome) HasRows() bool {
	return o.Kind == OutcomeSuccess && len(o.Rows) > 0
}
