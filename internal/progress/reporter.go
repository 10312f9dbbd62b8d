package progress

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/abhisek/pathwise/internal/api"
	"github.com/abhisek/pathwise/internal/store"
)

// HistoryRecorder stores report attempts locally. store.CompletionRepo
// implements it.
type HistoryRecorder interface {
	AppendCompletion(ctx context.Context, rec store.CompletionRecord) error
}

// Reporter sends qualifying completions to the backend.
type Reporter struct {
	completer Completer
	history   HistoryRecorder
	log       zerolog.Logger
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithHistory records every report attempt in h.
func WithHistory(h HistoryRecorder) ReporterOption {
	return func(r *Reporter) { r.history = h }
}

// WithLogger sets the logger used for failures.
func WithLogger(l zerolog.Logger) ReporterOption {
	return func(r *Reporter) { r.log = l }
}

// NewReporter creates a Reporter posting through c.
func NewReporter(c Completer, opts ...ReporterOption) *Reporter {
	r := &Reporter{completer: c, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report posts one completion for itemID. It makes exactly one request and
// does not check ShouldReport; callers decide whether a result qualifies.
// Failures are logged and returned as *ReportError.
func (r *Reporter) Report(ctx context.Context, user UserContext, itemID, score, total int) (*CompletionResult, error) {
	resp, err := r.completer.CompleteProgress(ctx, api.CompletionRequest{
		RoadmapItemID:  itemID,
		Score:          score,
		TotalQuestions: total,
		UserID:         user.UserID,
	})

	rec := store.CompletionRecord{
		RoadmapItemID: itemID,
		Score:         score,
		Total:         total,
		UserID:        user.UserID,
	}

	if err != nil {
		rerr := &ReportError{ItemID: itemID, Err: err}
		r.log.Error().Err(err).
			Int("roadmap_item_id", itemID).
			Int("score", score).
			Int("total", total).
			Msg("progress report failed")
		rec.Error = err.Error()
		r.record(ctx, rec)
		return nil, rerr
	}

	result := &CompletionResult{
		Success:       resp.Success,
		IsNewUnlock:   resp.IsNewUnlock,
		RoadmapItemID: resp.RoadmapItemID,
	}
	if result.RoadmapItemID == 0 {
		result.RoadmapItemID = itemID
	}

	r.log.Info().
		Int("roadmap_item_id", itemID).
		Bool("success", result.Success).
		Bool("new_unlock", result.IsNewUnlock).
		Msg("progress reported")

	rec.Reported = result.Success
	rec.NewUnlock = result.IsNewUnlock
	r.record(ctx, rec)
	return result, nil
}

func (r *Reporter) record(ctx context.Context, rec store.CompletionRecord) {
	if r.history == nil {
		return
	}
	if err := r.history.AppendCompletion(ctx, rec); err != nil {
		r.log.Warn().Err(err).Int("roadmap_item_id", rec.RoadmapItemID).Msg("record completion history")
	}
}
