// Package progress decides when a finished quiz counts as a completion and
// reports it to the backend.
package progress

import (
	"context"
	"fmt"

	"github.com/abhisek/pathwise/internal/api"
)

// defaultTitle is shown when an unlocked item's title could not be resolved.
const defaultTitle = "New topic"

// UserContext identifies the learner a completion is reported for.
type UserContext struct {
	UserID string
}

// CompletionResult is the backend's verdict on a reported completion.
// ItemTitle is filled in later by the unlock flow.
type CompletionResult struct {
	Success       bool
	IsNewUnlock   bool
	RoadmapItemID int
	ItemTitle     string
}

// DisplayTitle returns the item title, or a generic label when unset.
func (r CompletionResult) DisplayTitle() string {
	if r.ItemTitle == "" {
		return defaultTitle
	}
	return r.ItemTitle
}

// ShouldReport returns true when a quiz result qualifies as a completion.
// Only perfect scores count.
func ShouldReport(score, total int) bool {
	return total > 0 && score == total
}

// ReportError wraps a failed completion report.
type ReportError struct {
	ItemID int
	Err    error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("report completion of item %d: %v", e.ItemID, e.Err)
}

func (e *ReportError) Unwrap() error { return e.Err }

// Completer posts completions. *api.Client implements it.
type Completer interface {
	CompleteProgress(ctx context.Context, req api.CompletionRequest) (*api.CompletionResponse, error)
}
