package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/paylinq/askhr/internal/examples"
	"github.com/paylinq/askhr/internal/model"
)

const generatePrompt = `### TASK
Given an input question, generate one syntactically correct SQL query that answers it.

### DATABASE SCHEMA
%s

### EXAMPLES
%s

### USER QUESTION
%s

### RULES
- Return ONLY the SQL query, inside a fenced code block marked sql. No explanation before or after.
- Use only tables and columns present in the DATABASE SCHEMA section. Never translate or rename identifiers.
- Never use SELECT *; select only the relevant columns.
- Unless the question asks for a specific count, limit the query to at most %d rows.
- Generate SELECT statements only. Never modify data.%s`

const restrictedRule = `
- The caller is the employee named '%s'. The query must only return rows belonging to that employee.`

const validatePrompt = `### USER QUESTION
%s

### GENERATED QUERY
%s

### QUERY OUTCOME
%s

### DATABASE SCHEMA
%s

### EXAMPLES
%s

### TASK
Verify whether the GENERATED QUERY correctly answers the USER QUESTION given the QUERY OUTCOME and the DATABASE SCHEMA. If it is wrong or failed, produce a corrected query. If it is already correct, return it unchanged.

### RULES
- Return ONLY the final SQL query, inside a fenced code block marked sql.
- If no valid query can answer the question, return an empty response with no query at all.
- Do not change the financial or date concept the question asks about.
- Use only tables and columns present in the DATABASE SCHEMA section.
- Generate SELECT statements only. Never modify data.%s`

const documentPrompt = `### TASK
Answer the question below using ONLY the document text provided. Do not use any outside knowledge.

### DOCUMENT TEXT
%s

### QUESTION
%s

### RULES
- If the document contains the answer, reply with a short, direct answer grounded in the document.
- If the document contains nothing relevant to the question, reply with exactly: NO_RELEVANT_DATA_FOUND`

const respondPrompt = `### TASK
You are explaining results to a non-technical user. Generate a natural, clear response to the user's question from the data below.

### QUERY RESULTS
%s

### DOCUMENT FINDINGS
%s

### USER QUESTION
%s

### INSTRUCTIONS
- Write the response in %s.
- Write prose only. Do NOT include SQL, code, or restate the sections above.
- %s means the database returned nothing usable; %s means no document information is available. If both are present, politely explain that no data was found for the question.
- Be complete but concise, as if explaining to someone who does not understand databases.`

// Sentinels shown to the synthesis model in place of blank fields.
const (
	noQueryData    = "NO_QUERY_DATA"
	noDocumentData = "NO_DOCUMENT_DATA"
)

func (p *Pipeline) buildGeneratePrompt(req model.Request) string {
	return fmt.Sprintf(generatePrompt,
		p.schema.Render(),
		examples.Render(p.examples),
		req.Question,
		p.cfg.Pipeline.MaxResultRows,
		tierRule(req),
	)
}

func (p *Pipeline) buildValidatePrompt(req model.Request, prior *model.GeneratedQuery, outcome model.StageOutcome) string {
	statement := "(no query was produced)"
	if prior != nil && prior.Statement != "" {
		statement = prior.Statement
	}
	return fmt.Sprintf(validatePrompt,
		req.Question,
		statement,
		renderOutcomeEvidence(outcome),
		p.schema.Render(),
		examples.Render(p.examples),
		tierRule(req),
	)
}

func tierRule(req model.Request) string {
	if req.Tier == model.TierRestricted {
		return fmt.Sprintf(restrictedRule, strings.ReplaceAll(req.UserName, "'", ""))
	}
	return ""
}

// renderOutcomeEvidence formats a prior stage's outcome as evidence for the
// validation prompt.
func renderOutcomeEvidence(o model.StageOutcome) string {
	switch o.Kind {
	case model.OutcomeSuccess:
		return renderRows(o.Rows)
	case model.OutcomeNoResults:
		return "The query executed successfully but returned zero rows."
	case model.OutcomeError:
		return "The query failed: " + o.Err
	default:
		return "No outcome is available."
	}
}

// renderRows flattens a result set to "column: value" lines, one block per
// row. Columns are sorted so identical result sets render identically.
func renderRows(rows model.ResultSet) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("---\n")
		}
		cols := make([]string, 0, len(row))
		for col := range row {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		for _, col := range cols {
			b.WriteString(col + ": " + row[col] + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
