package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestGetQuiz(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/quiz/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"roadmap_item_id":42,"questions":[
			{"question":"Which is NOT a Python data type?","options":["list","tuple","array","dict"],"correct":2}
		]}`))
	})

	payload, err := c.GetQuiz(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 42, payload.RoadmapItemID)
	require.Len(t, payload.Questions, 1)
	assert.Equal(t, []string{"list", "tuple", "array", "dict"}, payload.Questions[0].Options)
	assert.Equal(t, 2, payload.Questions[0].Correct)
}

func TestGetQuiz_EmptyQuestions(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty list", `{"roadmap_item_id":3,"questions":[]}`},
		{"null list", `{"roadmap_item_id":3,"questions":null}`},
		{"missing list", `{"roadmap_item_id":3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			payload, err := c.GetQuiz(context.Background(), 3)
			require.NoError(t, err)
			assert.Equal(t, 3, payload.RoadmapItemID)
			assert.Empty(t, payload.Questions)
		})
	}
}

func TestGetQuiz_NotFound(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Quiz not found"}`, http.StatusNotFound)
	})

	_, err := c.GetQuiz(context.Background(), 9)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "/api/quiz/9", se.Path)
}

func TestGetQuiz_ServerErrorIsNotNotFound(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.GetQuiz(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestGetQuiz_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>`},
		{"questions not a list", `{"roadmap_item_id":1,"questions":{}}`},
		{"empty options", `{"questions":[{"question":"q","options":[],"correct":0}]}`},
		{"negative correct", `{"questions":[{"question":"q","options":["a"],"correct":-1}]}`},
		{"string correct", `{"questions":[{"question":"q","options":["a"],"correct":"0"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.GetQuiz(context.Background(), 1)
			var ip *InvalidPayloadError
			require.True(t, errors.As(err, &ip), "got %v", err)
		})
	}
}

func TestGetQuiz_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url).GetQuiz(context.Background(), 1)
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestCompleteProgress(t *testing.T) {
	var got CompletionRequest
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/progress/complete", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true,"is_new_unlock":true,"roadmap_item_id":42}`))
	})

	resp, err := c.CompleteProgress(context.Background(), CompletionRequest{
		RoadmapItemID:  42,
		Score:          3,
		TotalQuestions: 3,
		UserID:         "default_user",
	})
	require.NoError(t, err)
	assert.Equal(t, CompletionRequest{RoadmapItemID: 42, Score: 3, TotalQuestions: 3, UserID: "default_user"}, got)
	assert.True(t, resp.Success)
	assert.True(t, resp.IsNewUnlock)
	assert.Equal(t, 42, resp.RoadmapItemID)
}

func TestCompleteProgress_BadBody(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := c.CompleteProgress(context.Background(), CompletionRequest{RoadmapItemID: 1})
	var ip *InvalidPayloadError
	assert.True(t, errors.As(err, &ip))
}

func TestListRoadmaps(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/roadmaps/", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":1,"topic":"Python Programming","items":[{"id":10,"title":"Variables and Data Types","level":1,"status":"done"}]},
			{"id":2,"topic":"Linear Algebra","items":[{"id":20,"title":"Vectors","level":1,"status":"in_progress","progress":40}]}
		]`))
	})

	roadmaps, err := c.ListRoadmaps(context.Background())
	require.NoError(t, err)
	require.Len(t, roadmaps, 2)

	item, ok := FindItem(roadmaps, 20)
	require.True(t, ok)
	assert.Equal(t, "Vectors", item.Title)
	assert.Equal(t, 40, item.ProgressPercent())

	_, ok = FindItem(roadmaps, 99)
	assert.False(t, ok)
}

func TestKnowledgeGraph(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/knowledge-graph/", r.URL.Path)
		_, _ = w.Write([]byte(`{"nodes":[{"id":"topic_1","label":"Python","type":"topic","roadmap_id":1,"group":0}],
			"edges":[{"source":"topic_1","target":"title_10","weight":3,"relationship":"contains"}]}`))
	})

	g, err := c.KnowledgeGraph(context.Background())
	require.NoError(t, err)
	require.Len(t, g.Nodes, 1)
	assert.Equal(t, NodeTopic, g.Nodes[0].Type)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, 3.0, g.Edges[0].Weight)
}

func TestProgressPercent(t *testing.T) {
	pct := func(v int) *int { return &v }
	tests := []struct {
		name string
		item RoadmapItem
		want int
	}{
		{"done without progress", RoadmapItem{Status: StatusDone}, 100},
		{"pending without progress", RoadmapItem{Status: "todo"}, 0},
		{"explicit", RoadmapItem{Status: StatusInProgress, Progress: pct(55)}, 55},
		{"clamped high", RoadmapItem{Progress: pct(140)}, 100},
		{"clamped low", RoadmapItem{Progress: pct(-3)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.ProgressPercent())
		})
	}
}

func TestWithTimeout_LeavesSharedClientAlone(t *testing.T) {
	shared := &http.Client{}

	c := New("http://localhost:8000", WithHTTPClient(shared), WithTimeout(5*time.Second))
	assert.Equal(t, time.Duration(0), shared.Timeout)
	assert.Equal(t, 5*time.Second, c.http.Timeout)
	assert.NotSame(t, shared, c.http)

	// Option order does not matter.
	c = New("http://localhost:8000", WithTimeout(2*time.Second), WithHTTPClient(shared))
	assert.Equal(t, time.Duration(0), shared.Timeout)
	assert.Equal(t, 2*time.Second, c.http.Timeout)
}

func TestWithTimeout_ZeroKeepsClient(t *testing.T) {
	shared := &http.Client{}
	c := New("http://localhost:8000", WithHTTPClient(shared), WithTimeout(0))
	assert.Same(t, shared, c.http)
}
