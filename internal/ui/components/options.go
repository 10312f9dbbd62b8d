package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/quiz"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

// OptionList renders answer options for one question. Cursor marks the
// option the keyboard is on before a selection is made.
type OptionList struct {
	Options []string
	States  []quiz.OptionState
	Cursor  int
}

// View renders the options, numbered from 1.
func (o OptionList) View() string {
	var b strings.Builder
	for i, opt := range o.Options {
		state := quiz.OptionNeutral
		if i < len(o.States) {
			state = o.States[i]
		}

		prefix := "  "
		if state == quiz.OptionNeutral && i == o.Cursor {
			prefix = "▸ "
		}
		marker := ""
		switch state {
		case quiz.OptionCorrect:
			marker = "  ✓"
		case quiz.OptionWrong:
			marker = "  ✗"
		}
		line := fmt.Sprintf("%s%d)  %s%s", prefix, i+1, opt, marker)

		b.WriteString(optionStyle(state, i == o.Cursor).Render(line) + "\n")
	}
	return b.String()
}

func optionStyle(state quiz.OptionState, cursor bool) lipgloss.Style {
	switch state {
	case quiz.OptionCorrect:
		return theme.Correct
	case quiz.OptionWrong:
		return theme.Incorrect
	case quiz.OptionMuted:
		return theme.Muted
	}
	if cursor {
		return theme.Selected
	}
	return theme.Unselected
}
