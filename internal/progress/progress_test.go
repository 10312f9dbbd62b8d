package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathwise/internal/api"
	"github.com/abhisek/pathwise/internal/store"
)

type recordingHistory struct {
	records []store.CompletionRecord
	err     error
}

func (h *recordingHistory) AppendCompletion(_ context.Context, rec store.CompletionRecord) error {
	h.records = append(h.records, rec)
	return h.err
}

// completionServer answers POST /api/progress/complete and records bodies.
func completionServer(t *testing.T, status int, resp string) (*httptest.Server, *[]api.CompletionRequest) {
	t.Helper()
	var got []api.CompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/progress/complete", r.URL.Path)
		var req api.CompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		got = append(got, req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(resp))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestShouldReport(t *testing.T) {
	tests := []struct {
		score, total int
		want         bool
	}{
		{3, 3, true},
		{1, 1, true},
		{2, 3, false},
		{0, 3, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShouldReport(tt.score, tt.total), "ShouldReport(%d, %d)", tt.score, tt.total)
	}
}

func TestDisplayTitle(t *testing.T) {
	assert.Equal(t, "New topic", CompletionResult{}.DisplayTitle())
	assert.Equal(t, "Variables", CompletionResult{ItemTitle: "Variables"}.DisplayTitle())
}

func TestReport_PerfectScoreRequestBody(t *testing.T) {
	srv, got := completionServer(t, http.StatusOK, `{"success":true,"is_new_unlock":true,"roadmap_item_id":42}`)
	hist := &recordingHistory{}
	r := NewReporter(api.New(srv.URL), WithHistory(hist))

	res, err := r.Report(context.Background(), UserContext{UserID: "default_user"}, 42, 3, 3)
	require.NoError(t, err)

	require.Len(t, *got, 1)
	assert.Equal(t, api.CompletionRequest{
		RoadmapItemID:  42,
		Score:          3,
		TotalQuestions: 3,
		UserID:         "default_user",
	}, (*got)[0])

	assert.Equal(t, &CompletionResult{Success: true, IsNewUnlock: true, RoadmapItemID: 42}, res)

	require.Len(t, hist.records, 1)
	assert.True(t, hist.records[0].Reported)
	assert.True(t, hist.records[0].NewUnlock)
	assert.Empty(t, hist.records[0].Error)
}

func TestReport_OnlyPerfectScoresAreSent(t *testing.T) {
	srv, got := completionServer(t, http.StatusOK, `{"success":true,"is_new_unlock":false,"roadmap_item_id":7}`)
	r := NewReporter(api.New(srv.URL))
	user := UserContext{UserID: "default_user"}

	for _, res := range []struct{ score, total int }{{2, 3}, {3, 3}} {
		if ShouldReport(res.score, res.total) {
			_, err := r.Report(context.Background(), user, 7, res.score, res.total)
			require.NoError(t, err)
		}
	}

	require.Len(t, *got, 1)
	assert.Equal(t, 3, (*got)[0].Score)
	assert.Equal(t, 3, (*got)[0].TotalQuestions)
}

func TestReport_EachCallSendsOneRequest(t *testing.T) {
	srv, got := completionServer(t, http.StatusOK, `{"success":true,"is_new_unlock":false,"roadmap_item_id":7}`)
	r := NewReporter(api.New(srv.URL))

	for i := 0; i < 2; i++ {
		_, err := r.Report(context.Background(), UserContext{UserID: "u"}, 7, 2, 2)
		require.NoError(t, err)
	}
	assert.Len(t, *got, 2)
}

func TestReport_FailureIsLoggedAndTyped(t *testing.T) {
	srv, _ := completionServer(t, http.StatusInternalServerError, `{"detail":"boom"}`)
	var buf bytes.Buffer
	hist := &recordingHistory{}
	r := NewReporter(api.New(srv.URL), WithHistory(hist), WithLogger(zerolog.New(&buf)))

	res, err := r.Report(context.Background(), UserContext{UserID: "u"}, 9, 4, 4)
	assert.Nil(t, res)
	require.Error(t, err)

	var rerr *ReportError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, 9, rerr.ItemID)

	var se *api.StatusError
	assert.True(t, errors.As(err, &se))

	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"roadmap_item_id":9`)

	require.Len(t, hist.records, 1)
	assert.False(t, hist.records[0].Reported)
	assert.NotEmpty(t, hist.records[0].Error)
}

func TestReport_HistoryFailureDoesNotFailReport(t *testing.T) {
	srv, _ := completionServer(t, http.StatusOK, `{"success":true,"is_new_unlock":false,"roadmap_item_id":1}`)
	var buf bytes.Buffer
	hist := &recordingHistory{err: errors.New("disk full")}
	r := NewReporter(api.New(srv.URL), WithHistory(hist), WithLogger(zerolog.New(&buf)))

	res, err := r.Report(context.Background(), UserContext{UserID: "u"}, 1, 1, 1)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "disk full")
}

func TestReport_MissingItemIDFallsBackToRequest(t *testing.T) {
	srv, _ := completionServer(t, http.StatusOK, `{"success":true,"is_new_unlock":true}`)
	r := NewReporter(api.New(srv.URL))

	res, err := r.Report(context.Background(), UserContext{UserID: "u"}, 11, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 11, res.RoadmapItemID)
}
