package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/store"
)

type mockSource struct {
	records []store.CompletionRecord
	err     error
	opts    store.QueryOpts
}

func (m *mockSource) RecentCompletions(_ context.Context, opts store.QueryOpts) ([]store.CompletionRecord, error) {
	m.opts = opts
	return m.records, m.err
}

func load(t *testing.T, s *HistoryScreen) *HistoryScreen {
	t.Helper()
	var scr screen.Screen = s
	scr, _ = scr.Update(s.Init()())
	return scr.(*HistoryScreen)
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := load(t, New(&mockSource{}))
	if !strings.Contains(s.View(100, 30), "No completions yet") {
		t.Error("expected empty-state message")
	}
}

func TestHistoryScreen_NilSource(t *testing.T) {
	s := load(t, New(nil))
	if !s.loaded {
		t.Error("expected screen to finish loading without a source")
	}
}

func TestHistoryScreen_ListsRecords(t *testing.T) {
	src := &mockSource{records: []store.CompletionRecord{
		{ID: 2, RoadmapItemID: 42, Score: 3, Total: 3, UserID: "default_user", Reported: true, NewUnlock: true, Timestamp: time.Now()},
		{ID: 1, RoadmapItemID: 7, Score: 4, Total: 4, UserID: "default_user", Error: "status 500", Timestamp: time.Now().Add(-time.Hour)},
	}}
	s := load(t, New(src))

	if src.opts.Limit != historyLimit {
		t.Errorf("limit = %d, want %d", src.opts.Limit, historyLimit)
	}

	view := s.View(120, 30)
	for _, want := range []string{"3/3", "saved · unlocked", "4/4", "not saved"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistoryScreen_ExpandShowsError(t *testing.T) {
	src := &mockSource{records: []store.CompletionRecord{
		{RoadmapItemID: 42, Score: 3, Total: 3, UserID: "u", Reported: true},
		{RoadmapItemID: 7, Score: 4, Total: 4, UserID: "u", Error: "status 500"},
	}}
	s := load(t, New(src))

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if !s.expanded[1] {
		t.Fatal("expected second record expanded")
	}
	if !strings.Contains(s.View(120, 30), "status 500") {
		t.Error("expected error detail in expanded record")
	}
}

func TestHistoryScreen_LoadError(t *testing.T) {
	s := load(t, New(&mockSource{err: errors.New("database is locked")}))
	if !strings.Contains(s.View(100, 30), "database is locked") {
		t.Error("expected error message")
	}
}
