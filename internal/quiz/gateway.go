package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/pathwise/internal/api"
)

// ErrQuizNotFound is matched by every LoadError.
var ErrQuizNotFound = errors.New("quiz not found")

// LoadError reports that a quiz could not be loaded for a roadmap item.
type LoadError struct {
	ItemID int
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("quiz %d not found: %v", e.ItemID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrQuizNotFound) match any LoadError.
func (e *LoadError) Is(target error) bool { return target == ErrQuizNotFound }

// Fetcher retrieves raw quiz payloads. *api.Client implements it.
type Fetcher interface {
	GetQuiz(ctx context.Context, itemID int) (*api.QuizPayload, error)
}

// Gateway loads question sets for roadmap items.
type Gateway struct {
	fetcher Fetcher
}

// NewGateway creates a Gateway over fetcher.
func NewGateway(fetcher Fetcher) *Gateway {
	return &Gateway{fetcher: fetcher}
}

// LoadQuiz returns the questions for itemID, possibly none. Any failure is a
// *LoadError; no retry is attempted.
func (g *Gateway) LoadQuiz(ctx context.Context, itemID int) ([]Question, error) {
	payload, err := g.fetcher.GetQuiz(ctx, itemID)
	if err != nil {
		return nil, &LoadError{ItemID: itemID, Err: err}
	}

	items := make([]Question, 0, len(payload.Questions))
	for i, p := range payload.Questions {
		q := Question{
			Prompt:       p.Question,
			Options:      p.Options,
			CorrectIndex: p.Correct,
		}
		if err := q.Validate(); err != nil {
			return nil, &LoadError{ItemID: itemID, Err: fmt.Errorf("question %d: %w", i, err)}
		}
		items = append(items, q)
	}
	return items, nil
}
