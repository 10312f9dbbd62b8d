package graph

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathwise/internal/api"
	"github.com/abhisek/pathwise/internal/nav"
	"github.com/abhisek/pathwise/internal/router"
	"github.com/abhisek/pathwise/internal/unlock"
)

type stubSource struct {
	graph *api.Graph
	err   error
}

func (s *stubSource) KnowledgeGraph(context.Context) (*api.Graph, error) {
	return s.graph, s.err
}

func sampleGraph() *api.Graph {
	return &api.Graph{
		Nodes: []api.GraphNode{
			{ID: "topic_1", Label: "Python", Type: api.NodeTopic, RoadmapID: 1, Group: 1},
			{ID: "title_41", Label: "Syntax Basics", Type: api.NodeTitle, RoadmapID: 1, Group: 1},
			{ID: "title_42", Label: "Variables and Types", Type: api.NodeTitle, RoadmapID: 1, Group: 1},
			{ID: "topic_2", Label: "Data Science", Type: api.NodeTopic, RoadmapID: 2, Group: 2},
			{ID: "title_50", Label: "NumPy Arrays", Type: api.NodeTitle, RoadmapID: 2, Group: 2},
		},
		Edges: []api.GraphEdge{
			{Source: "topic_1", Target: "title_41", Weight: 1, Relationship: "contains"},
			{Source: "topic_1", Target: "title_42", Weight: 1, Relationship: "contains"},
			{Source: "topic_2", Target: "title_50", Weight: 1, Relationship: "contains"},
			{Source: "title_42", Target: "title_50", Weight: 0.8, Relationship: "prerequisite"},
		},
	}
}

func loaded(t *testing.T, s *GraphScreen) *GraphScreen {
	t.Helper()
	scr, _ := s.Update(s.Init()())
	return scr.(*GraphScreen)
}

func TestComputeStats(t *testing.T) {
	assert.Equal(t, Stats{Topics: 2, Titles: 3, Connections: 1, Roadmaps: 2}, ComputeStats(sampleGraph()))
	assert.Equal(t, Stats{}, ComputeStats(&api.Graph{}))
}

func TestGraphScreen_GroupsTitlesUnderTopics(t *testing.T) {
	s := loaded(t, New("", &stubSource{graph: sampleGraph()}, nil))

	require.Len(t, s.groups, 2)
	assert.Equal(t, "Python", s.groups[0].topic.Label)
	assert.Len(t, s.groups[0].titles, 2)
	assert.Equal(t, []string{"title_41", "title_42", "title_50"}, s.order)

	view := s.View(120, 40)
	for _, want := range []string{"2 topics", "3 titles", "1 connections", "2 roadmaps", "Variables and Types", "prerequisite 0.80"} {
		assert.Contains(t, view, want)
	}
}

func TestGraphScreen_HighlightPositionsCursor(t *testing.T) {
	s := loaded(t, New("title_42", &stubSource{graph: sampleGraph()}, nil))
	assert.Equal(t, 1, s.cursor)
	assert.Equal(t, nav.Graph("title_42"), s.Route())
	assert.Contains(t, s.View(120, 40), "▸ ◆ ")
}

func TestGraphScreen_HighlightMarkStaysWhenCursorMoves(t *testing.T) {
	s := loaded(t, New("title_42", &stubSource{graph: sampleGraph()}, nil))

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 2, s.cursor)

	view := s.View(120, 40)
	assert.Contains(t, view, "  ◆ ")
	assert.NotContains(t, view, "▸ ◆ ")
	assert.Contains(t, view, "▸   ")
}

func TestGraphScreen_MarkersShowBadge(t *testing.T) {
	s := loaded(t, New("", &stubSource{graph: sampleGraph()}, unlock.NewMemoryMarkers("title_50")))
	assert.Contains(t, s.View(120, 40), "NEW")
}

func TestGraphScreen_EnterOpensQuiz(t *testing.T) {
	s := loaded(t, New("title_42", &stubSource{graph: sampleGraph()}, nil))

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, nav.Quiz(42), msg.Route)
}

func TestGraphScreen_Empty(t *testing.T) {
	s := loaded(t, New("", &stubSource{graph: &api.Graph{}}, nil))
	assert.Contains(t, s.View(120, 40), "empty")
}

func TestGraphScreen_LoadError(t *testing.T) {
	s := loaded(t, New("", &stubSource{err: errors.New("status 500")}, nil))
	assert.Contains(t, s.View(120, 40), "status 500")
}

func TestWindow(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}
	assert.Equal(t, lines, window(lines, 4, 10))
	assert.Equal(t, []string{"a", "b"}, window(lines, 0, 2))
	assert.Equal(t, []string{"d", "e"}, window(lines, 4, 2))
}
