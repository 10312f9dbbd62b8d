package roadmap

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathwise/internal/api"
	"github.com/abhisek/pathwise/internal/nav"
	"github.com/abhisek/pathwise/internal/router"
	"github.com/abhisek/pathwise/internal/unlock"
)

type stubCatalog struct {
	roadmaps []api.Roadmap
	err      error
}

func (c *stubCatalog) ListRoadmaps(context.Context) ([]api.Roadmap, error) {
	return c.roadmaps, c.err
}

func intPtr(v int) *int { return &v }

func catalog() *stubCatalog {
	return &stubCatalog{roadmaps: []api.Roadmap{
		{ID: 1, Topic: "Python", Experience: "beginner", Items: []api.RoadmapItem{
			{ID: 41, RoadmapID: 1, Title: "Syntax Basics", Level: 1, Status: api.StatusDone,
				Summary: "Indentation, comments and statements.", StudyMaterial: []string{"PEP 8"}},
			{ID: 42, RoadmapID: 1, Title: "Variables and Types", Level: 2, Status: api.StatusInProgress, Progress: intPtr(40)},
		}},
		{ID: 2, Topic: "Go Concurrency", Items: []api.RoadmapItem{
			{ID: 50, RoadmapID: 2, Title: "Goroutines", Level: 1},
		}},
	}}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func loaded(t *testing.T, s *RoadmapScreen) *RoadmapScreen {
	t.Helper()
	scr, _ := s.Update(s.Init()())
	return scr.(*RoadmapScreen)
}

func navigated(t *testing.T, cmd tea.Cmd) nav.Route {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.NavigateMsg)
	require.True(t, ok, "expected NavigateMsg")
	return msg.Route
}

func TestRoadmapScreen_ListsAllItems(t *testing.T) {
	s := loaded(t, New("", "", catalog(), nil))
	assert.Len(t, s.entries, 3)
	assert.Equal(t, "Roadmap", s.Title())
	assert.Equal(t, nav.Roadmap(), s.Route())

	view := s.View(120, 40)
	for _, want := range []string{"Python", "Go Concurrency", "Syntax Basics", "Goroutines", "Indentation", "PEP 8"} {
		assert.Contains(t, view, want)
	}
}

func TestRoadmapScreen_FiltersByTopic(t *testing.T) {
	s := loaded(t, New("  go ", "", catalog(), nil))
	require.Len(t, s.entries, 1)
	assert.Equal(t, 50, s.entries[0].item.ID)
	assert.Equal(t, nav.RoadmapFor("go"), s.Route())

	none := loaded(t, New("rust", "", catalog(), nil))
	assert.Contains(t, none.View(120, 40), `No roadmap matches "rust"`)
}

func TestRoadmapScreen_FiltersByExperience(t *testing.T) {
	s := loaded(t, New("", "Beginner", catalog(), nil))
	require.Len(t, s.entries, 2)
	assert.Equal(t, "Python", s.entries[0].topic)
	assert.Equal(t, nav.RoadmapMatching("", "Beginner"), s.Route())
}

func TestRoadmapScreen_NewBadge(t *testing.T) {
	s := loaded(t, New("python", "", catalog(), unlock.NewMemoryMarkers("title_42")))
	assert.True(t, s.unlocks.Has(42))
	assert.False(t, s.unlocks.Has(41))
	assert.Contains(t, s.View(120, 40), "NEW")

	plain := loaded(t, New("python", "", catalog(), nil))
	assert.NotContains(t, plain.View(120, 40), "NEW")
}

func TestRoadmapScreen_EnterOpensQuiz(t *testing.T) {
	s := loaded(t, New("", "", catalog(), nil))

	s.Update(specialKey(tea.KeyDown))
	_, cmd := s.Update(specialKey(tea.KeyEnter))

	assert.Equal(t, nav.Quiz(42), navigated(t, cmd))
}

func TestRoadmapScreen_GOpensGraphHighlight(t *testing.T) {
	s := loaded(t, New("", "", catalog(), nil))

	_, cmd := s.Update(keyPress('g'))
	assert.Equal(t, "/knowledge-graph?highlight=title_41", navigated(t, cmd).String())
}

func TestRoadmapScreen_CursorBounds(t *testing.T) {
	s := loaded(t, New("", "", catalog(), nil))
	s.Update(specialKey(tea.KeyUp))
	assert.Equal(t, 0, s.cursor)
	for i := 0; i < 5; i++ {
		s.Update(specialKey(tea.KeyDown))
	}
	assert.Equal(t, 2, s.cursor)
}

func TestRoadmapScreen_LoadError(t *testing.T) {
	s := loaded(t, New("", "", &stubCatalog{err: errors.New("connection refused")}, nil))
	view := s.View(120, 40)
	assert.True(t, strings.Contains(view, "connection refused"))

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
}

func TestRoadmapScreen_ReloadKeepsCursor(t *testing.T) {
	s := loaded(t, New("", "", catalog(), nil))
	s.Update(specialKey(tea.KeyDown))

	_, cmd := s.Update(keyPress('r'))
	require.NotNil(t, cmd)
	s.Update(cmd())
	assert.Equal(t, 1, s.cursor)
}
