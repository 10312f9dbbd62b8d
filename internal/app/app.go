package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/pathwise/internal/nav"
	"github.com/abhisek/pathwise/internal/progress"
	"github.com/abhisek/pathwise/internal/router"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/screens/graph"
	"github.com/abhisek/pathwise/internal/screens/history"
	"github.com/abhisek/pathwise/internal/screens/home"
	quizscreen "github.com/abhisek/pathwise/internal/screens/quiz"
	"github.com/abhisek/pathwise/internal/screens/roadmap"
	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/unlock"
)

// Options holds the services screens are built from. Catalog, Graph and
// Loader are required; the rest may be nil.
type Options struct {
	Catalog  roadmap.Catalog
	Graph    graph.Source
	Loader   quizscreen.Loader
	Reporter quizscreen.Reporter
	Unlocks  quizscreen.UnlockRunner
	Markers  unlock.MarkerLister
	History  history.Source
	User     progress.UserContext
	Logger   zerolog.Logger
}

// unlockedCountMsg carries the refreshed header count.
type unlockedCountMsg struct {
	Count int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts     Options
	router   *router.Router
	unlocked int
	width    int
	height   int
}

// newAppModel creates a new AppModel showing the screen for initial.
func newAppModel(opts Options, initial nav.Route) AppModel {
	m := AppModel{opts: opts}
	m.router = router.New(m.resolve(initial), m.resolve)
	return m
}

// resolve builds a fresh screen for route.
func (m AppModel) resolve(r nav.Route) screen.Screen {
	switch r.Kind {
	case nav.KindRoadmap:
		return roadmap.New(r.Topic, r.Experience, m.opts.Catalog, m.opts.Markers)
	case nav.KindQuiz:
		return quizscreen.New(r.ItemID, quizscreen.Deps{
			Loader:   m.opts.Loader,
			Reporter: m.opts.Reporter,
			Unlocks:  m.opts.Unlocks,
			User:     m.opts.User,
		})
	case nav.KindGraph:
		return graph.New(r.Highlight, m.opts.Graph, m.opts.Markers)
	case nav.KindHistory:
		return history.New(m.opts.History)
	default:
		return home.New(m.opts.Markers)
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.refreshUnlocked())
}

// refreshUnlocked recounts persisted unlock markers for the header.
func (m AppModel) refreshUnlocked() tea.Cmd {
	markers := m.opts.Markers
	if markers == nil {
		return nil
	}
	log := m.opts.Logger
	return func() tea.Msg {
		set, err := unlock.LoadSet(context.Background(), markers)
		if err != nil {
			log.Warn().Err(err).Msg("count unlocked topics")
			return nil
		}
		return unlockedCountMsg{Count: len(set)}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case unlockedCountMsg:
		m.unlocked = msg.Count
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Back()
			}
			return m, nil
		}

	case router.NavigateMsg:
		m.opts.Logger.Debug().Str("route", msg.Route.String()).Msg("navigate")
		return m, tea.Batch(m.router.Update(msg), m.refreshUnlocked())

	case router.PopScreenMsg, router.PushScreenMsg, router.ReplaceScreenMsg:
		return m, tea.Batch(m.router.Update(msg), m.refreshUnlocked())
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.unlocked, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program at the given route.
func Run(opts Options, initial nav.Route) error {
	p := tea.NewProgram(newAppModel(opts, initial))
	_, err := p.Run()
	if err != nil {
		opts.Logger.Error().Err(err).Msg("program exited with error")
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
