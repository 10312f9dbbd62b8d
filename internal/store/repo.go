package store

import (
	"context"
	"time"
)

// QueryOpts configures history queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// CompletionRecord is one quiz completion as seen by this client, whether
// or not the backend accepted it.
type CompletionRecord struct {
	ID            int64
	RoadmapItemID int
	Score         int
	Total         int
	UserID        string
	Reported      bool
	NewUnlock     bool
	Error         string
	Timestamp     time.Time
}

// CompletionRepo provides access to the local completion history.
type CompletionRepo interface {
	// AppendCompletion records a completion. A zero Timestamp means now.
	AppendCompletion(ctx context.Context, rec CompletionRecord) error

	// RecentCompletions returns records newest first.
	RecentCompletions(ctx context.Context, opts QueryOpts) ([]CompletionRecord, error)
}
