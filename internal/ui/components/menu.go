package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/ui/theme"
)

// MenuItem is one selectable action.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu is a vertical list of actions. Selected is the highlighted index;
// a negative value highlights nothing.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first item highlighted.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update moves the highlight and runs the highlighted action on Enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k", "shift+tab":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j", "tab":
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) && m.Items[m.Selected].Action != nil {
			return m, m.Items[m.Selected].Action()
		}
	}
	return m, nil
}

// View renders the menu as a plain list.
func (m Menu) View() string {
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		if i == m.Selected {
			lines[i] = theme.Selected.Render("▸ " + item.Label)
		} else {
			lines[i] = theme.Body.Render("  " + item.Label)
		}
	}
	return strings.Join(lines, "\n")
}

// ButtonsView renders the menu as stacked action buttons of the given width.
func (m Menu) ButtonsView(width int) string {
	buttons := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		buttons = append(buttons, ActionButton(item.Label, i == m.Selected, width))
	}
	return lipgloss.JoinVertical(lipgloss.Center, buttons...)
}
