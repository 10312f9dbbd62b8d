package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/ui/components"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

const titleFull = `╔═╗╔═╗╔╦╗╦ ╦╦ ╦╦╔═╗╔═╗
╠═╝╠═╣ ║ ╠═╣║║║║╚═╗║╣
╩  ╩ ╩ ╩ ╩ ╩╚╩╝╩╚═╝╚═╝`

const titleCompact = "P · A · T · H · W · I · S · E"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

func (h *HomeScreen) View(width, height int) string {
	compact := height < 24 || width < 90
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, theme.Subtitle.Width(cw).
		Render("Build a learning path, then prove it one quiz at a time."))

	form := h.topic.View() + "\n\n" + h.experience.View()
	sections = append(sections, components.Panel(form, cw))

	sections = append(sections, renderStats(h.unlocked, cw))

	menu := h.menu
	if h.focus != focusMenu {
		menu.Selected = -1
	}
	if compact {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(menu.View()))
	} else {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(menu.ButtonsView(buttonWidth)))
	}

	content := strings.Join(sections, "\n\n")
	return components.Center(content, width, height)
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStats renders the unlocked-topic count in a bordered box.
func renderStats(unlocked, cw int) string {
	text := theme.Muted.Render("No topics unlocked yet")
	if unlocked > 0 {
		noun := "topics"
		if unlocked == 1 {
			noun = "topic"
		}
		text = theme.Highlight.Render(fmt.Sprintf("✦ %d %s unlocked", unlocked, noun))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}
