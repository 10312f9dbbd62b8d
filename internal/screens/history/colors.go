package history

import (
	"image/color"

	"github.com/abhisek/pathwise/internal/store"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

func statusColor(rec store.CompletionRecord) color.Color {
	switch {
	case rec.Error != "":
		return theme.Error
	case rec.NewUnlock:
		return theme.Accent
	case rec.Reported:
		return theme.Success
	default:
		return theme.TextDim
	}
}
