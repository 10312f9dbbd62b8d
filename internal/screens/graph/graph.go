package graph

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/pathwise/internal/api"
	"github.com/abhisek/pathwise/internal/nav"
	"github.com/abhisek/pathwise/internal/router"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/ui/theme"
	"github.com/abhisek/pathwise/internal/unlock"
)

// relContains links a topic to its titles.
const relContains = "contains"

// Source fetches the knowledge graph. *api.Client implements it.
type Source interface {
	KnowledgeGraph(ctx context.Context) (*api.Graph, error)
}

type graphLoadedMsg struct {
	Graph   *api.Graph
	Markers unlock.Set
	Err     error
}

// topicGroup is a topic with the titles it contains, in display order.
type topicGroup struct {
	topic  api.GraphNode
	titles []api.GraphNode
}

// Stats are the headline counts of a graph.
type Stats struct {
	Topics      int
	Titles      int
	Connections int
	Roadmaps    int
}

// GraphScreen lists the knowledge graph as topics with their titles and the
// relations between titles.
type GraphScreen struct {
	highlight string
	source    Source
	markers   unlock.MarkerLister

	groups    []topicGroup
	relations []api.GraphEdge
	labels    map[string]string
	stats     Stats
	unlocks   unlock.Set

	// order holds the title node ids in display order; cursor indexes it.
	order  []string
	cursor int

	loaded bool
	errMsg string
}

var _ screen.Screen = (*GraphScreen)(nil)
var _ screen.KeyHintProvider = (*GraphScreen)(nil)
var _ screen.Routed = (*GraphScreen)(nil)

// New creates a GraphScreen. highlight is a node id such as "title_42";
// markers may be nil.
func New(highlight string, source Source, markers unlock.MarkerLister) *GraphScreen {
	return &GraphScreen{
		highlight: highlight,
		source:    source,
		markers:   markers,
		unlocks:   unlock.Set{},
	}
}

func (s *GraphScreen) Init() tea.Cmd {
	source, markers := s.source, s.markers
	return func() tea.Msg {
		var (
			kg  *api.Graph
			set unlock.Set
		)
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			kg, err = source.KnowledgeGraph(ctx)
			return err
		})
		g.Go(func() error {
			set, _ = unlock.LoadSet(ctx, markers)
			return nil
		})
		if err := g.Wait(); err != nil {
			return graphLoadedMsg{Err: err}
		}
		return graphLoadedMsg{Graph: kg, Markers: set}
	}
}

func (s *GraphScreen) Title() string {
	return "Knowledge Graph"
}

func (s *GraphScreen) Route() nav.Route {
	return nav.Graph(s.highlight)
}

func (s *GraphScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GraphScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case graphLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		if msg.Markers != nil {
			s.unlocks = msg.Markers
		}
		s.build(msg.Graph)
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.order)-1 {
				s.cursor++
			}
		case "enter":
			if s.cursor < len(s.order) {
				if id, ok := unlock.ParseMarker(s.order[s.cursor]); ok {
					return s, router.Navigate(nav.Quiz(id))
				}
			}
		}
	}
	return s, nil
}

// build groups titles under their topics and positions the cursor on the
// highlighted node.
func (s *GraphScreen) build(g *api.Graph) {
	s.groups = nil
	s.relations = nil
	s.order = nil
	s.cursor = 0
	s.labels = make(map[string]string)
	if g == nil {
		s.stats = Stats{}
		return
	}
	s.stats = ComputeStats(g)

	nodes := make(map[string]api.GraphNode, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes[n.ID] = n
		s.labels[n.ID] = n.Label
	}

	children := make(map[string][]api.GraphNode)
	grouped := make(map[string]bool)
	for _, e := range g.Edges {
		if e.Relationship != relContains {
			s.relations = append(s.relations, e)
			continue
		}
		if n, ok := nodes[e.Target]; ok && n.Type == api.NodeTitle {
			children[e.Source] = append(children[e.Source], n)
			grouped[n.ID] = true
		}
	}

	for _, n := range g.Nodes {
		if n.Type == api.NodeTopic {
			s.groups = append(s.groups, topicGroup{topic: n, titles: children[n.ID]})
		}
	}
	var orphans []api.GraphNode
	for _, n := range g.Nodes {
		if n.Type == api.NodeTitle && !grouped[n.ID] {
			orphans = append(orphans, n)
		}
	}
	if len(orphans) > 0 {
		s.groups = append(s.groups, topicGroup{topic: api.GraphNode{Label: "Other"}, titles: orphans})
	}

	sort.SliceStable(s.relations, func(i, j int) bool {
		return s.relations[i].Weight > s.relations[j].Weight
	})

	for _, grp := range s.groups {
		for _, t := range grp.titles {
			if t.ID == s.highlight {
				s.cursor = len(s.order)
			}
			s.order = append(s.order, t.ID)
		}
	}
}

// ComputeStats counts topics, titles, non-containment connections and
// distinct roadmaps.
func ComputeStats(g *api.Graph) Stats {
	var st Stats
	roadmaps := make(map[int]bool)
	for _, n := range g.Nodes {
		switch n.Type {
		case api.NodeTopic:
			st.Topics++
		case api.NodeTitle:
			st.Titles++
		}
		if n.RoadmapID != 0 {
			roadmaps[n.RoadmapID] = true
		}
	}
	for _, e := range g.Edges {
		if e.Relationship != relContains {
			st.Connections++
		}
	}
	st.Roadmaps = len(roadmaps)
	return st
}

func (s *GraphScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nCould not load the knowledge graph: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading knowledge graph...")
	}
	if s.stats.Topics == 0 && s.stats.Titles == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  The knowledge graph is empty. Create a roadmap to get started.")
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(
		"  %d topics · %d titles · %d connections · %d roadmaps",
		s.stats.Topics, s.stats.Titles, s.stats.Connections, s.stats.Roadmaps)))
	lines = append(lines, "")

	cursorLine := 0
	idx := 0
	for _, grp := range s.groups {
		lines = append(lines, "  "+theme.Highlight.Render(grp.topic.Label))
		for _, t := range grp.titles {
			if idx == s.cursor {
				cursorLine = len(lines)
			}
			lines = append(lines, s.renderTitle(t, idx == s.cursor))
			idx++
		}
	}

	if len(s.relations) > 0 {
		lines = append(lines, "", "  "+theme.Muted.Render("Connections"))
		for _, e := range s.relations {
			lines = append(lines, fmt.Sprintf("    %s %s %s %s",
				s.label(e.Source),
				theme.Muted.Render("→"),
				s.label(e.Target),
				theme.Hint.Render(fmt.Sprintf("%s %.2f", e.Relationship, e.Weight))))
		}
	}

	return strings.Join(window(lines, cursorLine, height), "\n")
}

func (s *GraphScreen) renderTitle(n api.GraphNode, selected bool) string {
	highlighted := n.ID == s.highlight

	cursor, mark := "  ", "  "
	if selected {
		cursor = "▸ "
	}
	style := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case highlighted:
		mark = "◆ "
		style = theme.Highlight
	case selected:
		style = theme.Selected
	}
	prefix := "  " + cursor + mark
	line := prefix + style.Render(n.Label)
	if s.unlocks.HasNode(n.ID) {
		line += " " + theme.NewBadge.Render("NEW")
	}
	return line
}

func (s *GraphScreen) label(id string) string {
	if l, ok := s.labels[id]; ok && l != "" {
		return l
	}
	return id
}

// window returns at most height lines, scrolled so that line focus is
// visible.
func window(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := 0
	if focus >= height {
		start = focus - height + 1
	}
	end := min(start+height, len(lines))
	return lines[start:end]
}
