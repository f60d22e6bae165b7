package warning

import (
	"time"

	"github.com/google/uuid"
)

// Run is a batch of warnings from a single invocation. Created once after
// filtering and immutable thereafter. VCS metadata is populated by the
// gitmeta collaborator, not by the parsers.
type Run struct {
	ID            string    `json:"id"`
	CommitSHA     string    `json:"commit_sha,omitempty"`
	Branch        string    `json:"branch,omitempty"`
	PullRequest   int       `json:"pull_request,omitempty"`
	TotalWarnings int       `json:"total_warnings"`
	Warnings      []Warning `json:"warnings"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewRun wraps a warning list into a run with a fresh id and timestamp.
func NewRun(warnings []Warning) *Run {
	if warnings == nil {
		warnings = []Warning{}
	}
	return &Run{
		ID:            uuid.NewString(),
		TotalWarnings: len(warnings),
		Warnings:      warnings,
		CreatedAt:     time.Now().UTC(),
	}
}
