package model

// QueryStage identifies which stage produced a statement.
type QueryStage string

const (
	StageGeneration QueryStage = "generation"
	StageValidation QueryStage = "validation"
)

// GeneratedQuery is a statement accepted by the extractor. Once accepted it
// is guaranteed to begin with SELECT and to contain no mutating keyword.
type GeneratedQuery struct {
	Statement string     `json:"statement"`
	Stage     QueryStage `json:"stage"`
}
