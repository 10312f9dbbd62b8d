// Package layout renders the chrome around every screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/ui/theme"
)

// Smallest terminal the frame renders in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to grow the terminal.
func RenderMinSizeMessage(width, height int) string {
	body := theme.Body.Render("This window is too small for Pathwise.") + "\n\n" +
		theme.Muted.Render(fmt.Sprintf("Need %d×%d, have %d×%d.", MinWidth, MinHeight, width, height))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(body))
}

// RenderHeader renders the top bar: app name and screen title on the left,
// the number of unlocked topics on the right.
func RenderHeader(title string, unlocked int, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  Pathwise")
	if title != "" {
		left += theme.Muted.Render("  ›  ") + theme.Body.Render(title)
	}

	badge := theme.Muted.Render("no topics unlocked  ")
	if unlocked > 0 {
		badge = theme.Highlight.Render(fmt.Sprintf("✦ %d unlocked  ", unlocked))
	}

	return bar(left, badge, width, lipgloss.Border{Bottom: "─"}, false, true)
}

// RenderFooter renders the key hints, separated by dots.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+theme.Muted.Render(h.Description))
	}
	return bar("  "+strings.Join(parts, theme.Muted.Render("  ·  ")), "", width, lipgloss.Border{Top: "─"}, true, false)
}

// bar lays left and right out on one line with a single horizontal rule.
func bar(left, right string, width int, border lipgloss.Border, top, bottom bool) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().
		Width(width).
		Border(border, top, false, bottom, false).
		BorderForeground(theme.Border).
		Render(left + strings.Repeat(" ", gap) + right)
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if rest < 0 {
		rest = 0
	}
	body := lipgloss.NewStyle().Width(width).Height(rest).MaxHeight(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
