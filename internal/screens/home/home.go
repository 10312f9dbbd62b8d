package home

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pathwise/internal/nav"
	"github.com/abhisek/pathwise/internal/router"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/ui/components"
	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/unlock"
)

// focus zones, in tab order
const (
	focusTopic = iota
	focusExperience
	focusMenu
)

type unlockCountMsg struct {
	Count int
}

// HomeScreen is the landing screen: pick a topic, then open its roadmap.
type HomeScreen struct {
	topic      components.TextInput
	experience components.TextInput
	menu       components.Menu
	focus      int
	markers    unlock.MarkerLister
	unlocked   int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Routed = (*HomeScreen)(nil)

// New creates a new HomeScreen. markers may be nil.
func New(markers unlock.MarkerLister) *HomeScreen {
	h := &HomeScreen{
		topic:      components.NewTextInput("What do you want to learn?", "e.g. Python, Machine Learning", 80),
		experience: components.NewTextInput("Experience level", "beginner, intermediate or advanced", 40),
		markers:    markers,
	}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Open Roadmap", Action: h.submit},
		{Label: "Knowledge Graph", Action: func() tea.Cmd { return router.Navigate(nav.Graph("")) }},
		{Label: "History", Action: func() tea.Cmd { return router.Navigate(nav.History()) }},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	h.topic.Focus()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	markers := h.markers
	return tea.Batch(
		h.setFocus(focusTopic),
		func() tea.Msg {
			set, err := unlock.LoadSet(context.Background(), markers)
			if err != nil {
				return nil
			}
			return unlockCountMsg{Count: len(set)}
		},
	)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Route() nav.Route {
	return nav.Home()
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.focus == focusMenu {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Open roadmap"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case unlockCountMsg:
		h.unlocked = msg.Count
		return h, nil

	case tea.KeyMsg:
		return h.handleKey(msg)
	}

	var cmd tea.Cmd
	switch h.focus {
	case focusTopic:
		h.topic, cmd = h.topic.Update(msg)
	case focusExperience:
		h.experience, cmd = h.experience.Update(msg)
	}
	return h, cmd
}

func (h *HomeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if h.focus == focusMenu {
		if (key == "up" || key == "shift+tab") && h.menu.Selected == 0 {
			return h, h.setFocus(focusExperience)
		}
		var cmd tea.Cmd
		h.menu, cmd = h.menu.Update(msg)
		return h, cmd
	}

	switch key {
	case "enter":
		return h, h.submit()
	case "tab", "down":
		return h, h.setFocus(h.focus + 1)
	case "shift+tab", "up":
		if h.focus > focusTopic {
			return h, h.setFocus(h.focus - 1)
		}
		return h, nil
	}

	var cmd tea.Cmd
	if h.focus == focusTopic {
		h.topic, cmd = h.topic.Update(msg)
	} else {
		h.experience, cmd = h.experience.Update(msg)
	}
	return h, cmd
}

func (h *HomeScreen) setFocus(f int) tea.Cmd {
	h.focus = f
	h.topic.Blur()
	h.experience.Blur()
	switch f {
	case focusTopic:
		return h.topic.Focus()
	case focusExperience:
		return h.experience.Focus()
	}
	h.menu.Selected = 0
	return nil
}

// submit opens the roadmap filtered by the entered topic and level.
func (h *HomeScreen) submit() tea.Cmd {
	return router.Navigate(nav.RoadmapMatching(h.topic.Value(), h.experience.Value()))
}
