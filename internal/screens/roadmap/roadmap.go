package roadmap

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/pathwise/internal/api"
	"github.com/abhisek/pathwise/internal/nav"
	"github.com/abhisek/pathwise/internal/router"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/ui/components"
	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/ui/theme"
	"github.com/abhisek/pathwise/internal/unlock"
)

// Catalog lists roadmaps. *api.Client implements it.
type Catalog interface {
	ListRoadmaps(ctx context.Context) ([]api.Roadmap, error)
}

type roadmapsLoadedMsg struct {
	Roadmaps []api.Roadmap
	Markers  unlock.Set
	Err      error
}

// entry is one item row, with the topic it belongs to.
type entry struct {
	topic string
	item  api.RoadmapItem
}

// RoadmapScreen shows roadmap items as a timeline.
type RoadmapScreen struct {
	topic      string
	experience string
	catalog    Catalog
	markers    unlock.MarkerLister
	entries    []entry
	unlocks    unlock.Set
	cursor     int
	loaded     bool
	errMsg     string
}

var _ screen.Screen = (*RoadmapScreen)(nil)
var _ screen.KeyHintProvider = (*RoadmapScreen)(nil)
var _ screen.Routed = (*RoadmapScreen)(nil)

// New creates a RoadmapScreen showing roadmaps whose topic contains topic
// and whose experience level contains experience. Empty filters match every
// roadmap. markers may be nil.
func New(topic, experience string, catalog Catalog, markers unlock.MarkerLister) *RoadmapScreen {
	return &RoadmapScreen{
		topic:      strings.TrimSpace(topic),
		experience: strings.TrimSpace(experience),
		catalog:    catalog,
		markers:    markers,
		unlocks:    unlock.Set{},
	}
}

// Init (re)loads the catalog and the unlock markers concurrently.
func (s *RoadmapScreen) Init() tea.Cmd {
	catalog, markers := s.catalog, s.markers
	return func() tea.Msg {
		var (
			roadmaps []api.Roadmap
			set      unlock.Set
		)
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			roadmaps, err = catalog.ListRoadmaps(ctx)
			return err
		})
		g.Go(func() error {
			// Missing markers only hide the NEW badges.
			set, _ = unlock.LoadSet(ctx, markers)
			return nil
		})
		if err := g.Wait(); err != nil {
			return roadmapsLoadedMsg{Err: err}
		}
		return roadmapsLoadedMsg{Roadmaps: roadmaps, Markers: set}
	}
}

func (s *RoadmapScreen) Title() string {
	if s.topic != "" {
		return "Roadmap: " + s.topic
	}
	return "Roadmap"
}

func (s *RoadmapScreen) Route() nav.Route {
	return nav.RoadmapMatching(s.topic, s.experience)
}

func (s *RoadmapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Quiz"},
		{Key: "G", Description: "Graph"},
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *RoadmapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case roadmapsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.entries = filterEntries(msg.Roadmaps, s.topic, s.experience)
		if msg.Markers != nil {
			s.unlocks = msg.Markers
		}
		if s.cursor >= len(s.entries) {
			s.cursor = max(len(s.entries)-1, 0)
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.entries)-1 {
				s.cursor++
			}
		case "enter":
			if e, ok := s.current(); ok {
				return s, router.Navigate(nav.Quiz(e.item.ID))
			}
		case "g", "G":
			if e, ok := s.current(); ok {
				return s, router.Navigate(nav.Graph(unlock.Marker(e.item.ID)))
			}
			return s, router.Navigate(nav.Graph(""))
		case "r", "R":
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *RoadmapScreen) current() (entry, bool) {
	if s.cursor < 0 || s.cursor >= len(s.entries) {
		return entry{}, false
	}
	return s.entries[s.cursor], true
}

// filterEntries flattens the roadmaps matching both filters.
func filterEntries(roadmaps []api.Roadmap, topic, experience string) []entry {
	var out []entry
	for _, r := range roadmaps {
		if !containsFold(r.Topic, topic) || !containsFold(r.Experience, experience) {
			continue
		}
		for _, it := range r.Items {
			out = append(out, entry{topic: r.Topic, item: it})
		}
	}
	return out
}

// containsFold reports whether s contains substr, ignoring case. An empty
// substr always matches.
func containsFold(s, substr string) bool {
	return substr == "" || strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (s *RoadmapScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nCould not load roadmaps: %s\n\nPress R to retry", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading roadmap...")
	}
	if len(s.entries) == 0 {
		msg := "No roadmaps yet. Generate one from the backend first."
		if s.topic != "" || s.experience != "" {
			msg = fmt.Sprintf("No roadmap matches %q.", strings.TrimSpace(s.topic+" "+s.experience))
		}
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  " + msg)
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")

	lastTopic := ""
	for i, e := range s.entries {
		if e.topic != lastTopic {
			if lastTopic != "" {
				b.WriteString("\n")
			}
			b.WriteString("  " + theme.Highlight.Render(e.topic) + "\n")
			lastTopic = e.topic
		}
		b.WriteString(s.renderRow(i, e, cw) + "\n")
	}

	if e, ok := s.current(); ok {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderDetail(e.item, cw)))
	}
	return b.String()
}

func (s *RoadmapScreen) renderRow(i int, e entry, cw int) string {
	dot := "○"
	switch e.item.Status {
	case api.StatusDone:
		dot = lipgloss.NewStyle().Foreground(theme.Success).Render("●")
	case api.StatusInProgress:
		dot = lipgloss.NewStyle().Foreground(theme.Accent).Render("◐")
	}

	prefix := "   "
	titleStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.cursor {
		prefix = " ▸ "
		titleStyle = theme.Selected
	}

	line := prefix + dot + " " +
		theme.Muted.Render(fmt.Sprintf("L%d ", e.item.Level)) +
		titleStyle.Render(e.item.Title)
	if s.unlocks.Has(e.item.ID) {
		line += " " + theme.NewBadge.Render("NEW")
	}

	bar := components.ProgressBar(e.item.ProgressPercent(), 22, true)
	pad := cw - lipgloss.Width(line) - lipgloss.Width(bar)
	if pad < 2 {
		pad = 2
	}
	return "  " + line + strings.Repeat(" ", pad) + bar
}

func renderDetail(it api.RoadmapItem, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Selected.Render(it.Title))
	if it.Status != "" {
		b.WriteString("  " + theme.Muted.Render(strings.ReplaceAll(it.Status, "_", " ")))
	}
	b.WriteString("\n\n")
	if it.Summary != "" {
		b.WriteString(theme.Body.Render(it.Summary) + "\n")
	}
	if len(it.StudyMaterial) > 0 {
		b.WriteString("\n" + theme.Muted.Render("Study material") + "\n")
		for _, m := range it.StudyMaterial {
			b.WriteString("  • " + m + "\n")
		}
	}
	return components.Panel(strings.TrimRight(b.String(), "\n"), cw+4)
}
