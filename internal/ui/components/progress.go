package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/pathwise/internal/ui/theme"
)

// ProgressBar renders a bar width cells wide, optionally followed by the
// percentage. percent is clamped to 0-100.
func ProgressBar(percent, width int, showPercent bool) string {
	pct := min(max(percent, 0), 100)

	suffix := ""
	if showPercent {
		suffix = theme.Muted.Render(fmt.Sprintf(" %3d%%", pct))
		width -= 5
	}
	width = max(width, 4)

	filled := width * pct / 100
	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", width-filled)) +
		suffix
}
