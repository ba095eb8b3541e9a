// Package model defines the shared types that flow between pipeline stages.
package model

// AccessTier is the caller's access level, resolved from the credential token
// before the pipeline starts.
type AccessTier string

const (
	// TierRestricted callers may only see their own records; their questions
	// pass through the access guard first.
	TierRestricted AccessTier = "restricted"
	// TierElevated callers (HR/admin) bypass the access guard.
	TierElevated AccessTier = "elevated"
)

// Valid reports whether the tier is one of the known values.
func (t AccessTier) Valid() bool {
	return t == TierRestricted || t == TierElevated
}

// Request is a single question entering the pipeline. It is owned by the
// coordinator for the lifetime of one run.
type Request struct {
	// Question is the natural-language question. May be empty when only a
	// file is supplied, which the coordinator rejects.
	Question string `json:"question"`

	// FilePath references an uploaded document on local disk. Empty when the
	// request is database-only.
	FilePath string `json:"file_path,omitempty"`

	// Tier is the caller's resolved access level.
	Tier AccessTier `json:"tier"`

	// UserName is the caller's resolved identity name, used by the access
	// guard and by the restricted prompt template.
	UserName string `json:"user_name"`
}
