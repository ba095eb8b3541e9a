package model

// FindingKind tags the variants of a DocumentFinding.
type FindingKind string

const (
	// FindingText carries an answer grounded in the document.
	FindingText FindingKind = "text"
	// FindingNoDocument means no file was supplied, extraction produced
	// nothing usable, or the document path failed internally.
	FindingNoDocument FindingKind = "no_document"
	// FindingNoRelevant means the document was read but contains nothing
	// relevant to the question.
	FindingNoRelevant FindingKind = "no_relevant"
)

// DocumentFinding is the document-analysis stage's outcome. Produced once per
// request and immutable after creation.
type DocumentFinding struct {
	Kind FindingKind `json:"kind"`
	Text string      `json:"text,omitempty"` // set only when Kind == FindingText
}

// Finding returns a text finding; empty text degrades to NoDocument.
func Finding(text string) DocumentFinding {
	if text == "" {
		return NoDocument()
	}
	return DocumentFinding{Kind: FindingText, Text: text}
}

// NoDocument returns the no-document-data finding.
func NoDocument() DocumentFinding {
	return DocumentFinding{Kind: FindingNoDocument}
}

// NoRelevant returns the nothing-relevant finding.
func NoRelevant() DocumentFinding {
	return DocumentFinding{Kind: FindingNoRelevant}
}
