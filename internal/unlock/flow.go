package unlock

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/abhisek/pathwise/internal/api"
	"github.com/abhisek/pathwise/internal/progress"
)

// ErrItemNotFound means the unlocked item is absent from the catalog.
var ErrItemNotFound = errors.New("roadmap item not found")

// Stage names a step of the flow.
type Stage string

const (
	StageMarker Stage = "marker"
	StageTitle  Stage = "title"
)

// StageError records a failed flow stage. It never aborts the flow.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("unlock %s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Catalog lists roadmaps. *api.Client implements it.
type Catalog interface {
	ListRoadmaps(ctx context.Context) ([]api.Roadmap, error)
}

// Outcome is what the notification shows once the flow has run.
type Outcome struct {
	Result    progress.CompletionResult
	Marker    string
	ShowModal bool
	MarkerErr *StageError
	TitleErr  *StageError
}

// Flow persists the unlock marker and resolves the item title.
type Flow struct {
	markers MarkerStore
	catalog Catalog
	log     zerolog.Logger
}

// NewFlow creates a Flow. A zero logger discards output.
func NewFlow(markers MarkerStore, catalog Catalog, log zerolog.Logger) *Flow {
	return &Flow{markers: markers, catalog: catalog, log: log}
}

// Run processes a completion result. It does nothing unless the result is a
// new unlock. Stage failures are logged and recorded in the Outcome; the
// modal is shown whenever the flow runs.
func (f *Flow) Run(ctx context.Context, result progress.CompletionResult) Outcome {
	out := Outcome{Result: result}
	if !result.IsNewUnlock {
		return out
	}

	out.Marker = Marker(result.RoadmapItemID)
	if err := f.persistMarker(ctx, out.Marker); err != nil {
		out.MarkerErr = &StageError{Stage: StageMarker, Err: err}
		f.log.Error().Err(err).Str("marker", out.Marker).Msg("persist unlock marker")
	}

	title, err := f.lookupTitle(ctx, result.RoadmapItemID)
	if err != nil {
		out.TitleErr = &StageError{Stage: StageTitle, Err: err}
		f.log.Warn().Err(err).Int("roadmap_item_id", result.RoadmapItemID).Msg("resolve unlocked item title")
	} else {
		out.Result.ItemTitle = title
	}

	out.ShowModal = true
	return out
}

func (f *Flow) persistMarker(ctx context.Context, marker string) error {
	ok, err := f.markers.Contains(ctx, marker)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return f.markers.Add(ctx, marker)
}

func (f *Flow) lookupTitle(ctx context.Context, itemID int) (string, error) {
	roadmaps, err := f.catalog.ListRoadmaps(ctx)
	if err != nil {
		return "", err
	}
	item, ok := api.FindItem(roadmaps, itemID)
	if !ok {
		return "", fmt.Errorf("item %d: %w", itemID, ErrItemNotFound)
	}
	return item.Title, nil
}
