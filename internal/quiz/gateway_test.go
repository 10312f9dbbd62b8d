package quiz

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathwise/internal/api"
)

type stubFetcher struct {
	payload *api.QuizPayload
	err     error
	calls   int
	lastID  int
}

func (f *stubFetcher) GetQuiz(_ context.Context, itemID int) (*api.QuizPayload, error) {
	f.calls++
	f.lastID = itemID
	return f.payload, f.err
}

func TestGateway_LoadQuiz(t *testing.T) {
	f := &stubFetcher{payload: &api.QuizPayload{
		RoadmapItemID: 7,
		Questions: []api.QuestionPayload{
			{Question: "What will print(type('hello')) output?", Options: []string{"<class 'str'>", "string"}, Correct: 0},
		},
	}}

	items, err := NewGateway(f).LoadQuiz(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, f.lastID)
	assert.Equal(t, []Question{{
		Prompt:       "What will print(type('hello')) output?",
		Options:      []string{"<class 'str'>", "string"},
		CorrectIndex: 0,
	}}, items)
}

func TestGateway_EmptyIsNotAnError(t *testing.T) {
	f := &stubFetcher{payload: &api.QuizPayload{RoadmapItemID: 7}}

	items, err := NewGateway(f).LoadQuiz(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGateway_NullOrMissingQuestionsIsEmpty(t *testing.T) {
	for _, body := range []string{
		`{"roadmap_item_id":5,"questions":null}`,
		`{"roadmap_item_id":5}`,
	} {
		t.Run(body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			t.Cleanup(srv.Close)

			items, err := NewGateway(api.New(srv.URL)).LoadQuiz(context.Background(), 5)
			require.NoError(t, err)
			assert.Empty(t, items)

			s := NewSession()
			s.Load(items)
			assert.Equal(t, PhaseEmpty, s.Phase())
		})
	}
}

func TestGateway_FetchFailureIsNotFound(t *testing.T) {
	cause := &api.StatusError{Method: "GET", Path: "/api/quiz/7", StatusCode: 404}
	f := &stubFetcher{err: cause}

	_, err := NewGateway(f).LoadQuiz(context.Background(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuizNotFound)
	assert.ErrorIs(t, err, api.ErrNotFound)
	assert.Equal(t, 1, f.calls, "no retry")

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 7, le.ItemID)
}

func TestGateway_CorrectIndexOutOfRange(t *testing.T) {
	f := &stubFetcher{payload: &api.QuizPayload{Questions: []api.QuestionPayload{
		{Question: "q", Options: []string{"a", "b"}, Correct: 2},
	}}}

	_, err := NewGateway(f).LoadQuiz(context.Background(), 1)
	assert.ErrorIs(t, err, ErrQuizNotFound)
}
