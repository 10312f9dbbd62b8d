package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/pathwise/internal/quiz"
	"github.com/abhisek/pathwise/internal/ui/components"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.modal != nil {
		return s.renderModal(width, height)
	}

	switch s.session.Phase() {
	case qz.PhaseLoading:
		return renderMessage(width, height, theme.Hint.Render("Loading quiz..."))
	case qz.PhaseError:
		return renderMessage(width, height,
			theme.Incorrect.Render("Quiz Not Found")+"\n\n"+
				theme.Muted.Render(fmt.Sprintf("No quiz could be loaded for item %d.", s.itemID))+"\n\n"+
				theme.Hint.Render("Press R to reload or Enter to go back to the roadmap"))
	case qz.PhaseEmpty:
		return renderMessage(width, height,
			theme.Title.Render("No Questions Available")+"\n\n"+
				theme.Muted.Render("This item has no quiz yet.")+"\n\n"+
				theme.Hint.Render("Press Enter to go back to the roadmap"))
	case qz.PhaseComplete:
		return s.renderComplete(width, height)
	}
	return s.renderQuestion(width)
}

func renderMessage(width, height int, content string) string {
	return components.Center(lipgloss.NewStyle().Align(lipgloss.Center).Render(content), width, height)
}

// renderQuestion renders the active question with its options.
func (s *QuizScreen) renderQuestion(width int) string {
	q := s.session.Current()
	if q == nil {
		return ""
	}
	cw := components.ContentWidth(width)

	var b strings.Builder

	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.session.CurrentIndex()+1, s.session.Total()))
	score := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Score %d", s.session.Score()))
	pad := width - lipgloss.Width(info) - lipgloss.Width(score) - 4
	if pad < 1 {
		pad = 1
	}
	b.WriteString(info + strings.Repeat(" ", pad) + score + "\n")
	b.WriteString("  " + components.ProgressBar(s.session.CurrentIndex()*100/s.session.Total(), width-4, false))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().Width(cw).Foreground(theme.Text).Bold(true).Render(q.Prompt)

	states := make([]qz.OptionState, len(q.Options))
	for i := range q.Options {
		states[i] = s.session.Option(i)
	}
	options := components.OptionList{Options: q.Options, States: states, Cursor: s.cursor}.View()

	body := prompt + "\n\n" + options
	if sel, ok := s.session.Selected(); ok {
		body += "\n" + feedbackLine(q, sel, s.session.IsLast())
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Panel(body, cw+4)))
	return b.String()
}

func feedbackLine(q *qz.Question, selected int, last bool) string {
	next := "Press Enter for the next question"
	if last {
		next = "Press Enter to see your results"
	}
	if q.IsCorrect(selected) {
		return theme.Correct.Render("Correct!") + "  " + theme.Hint.Render(next)
	}
	return theme.Incorrect.Render("Not quite.") + " " +
		theme.Muted.Render("Answer: "+q.Options[q.CorrectIndex]) + "\n" + theme.Hint.Render(next)
}

// renderComplete renders the results with the follow-up actions.
func (s *QuizScreen) renderComplete(width, height int) string {
	cw := components.ContentWidth(width)

	var lines []string
	lines = append(lines, theme.Title.Render("Quiz Complete!"))
	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("Score: %d/%d", s.session.Score(), s.session.Total())))
	lines = append(lines, "")
	switch {
	case s.session.IsPerfect() && s.reporting:
		lines = append(lines, theme.Hint.Render("Saving progress..."))
	case s.session.IsPerfect():
		lines = append(lines, theme.Correct.Render("Perfect score!"))
	default:
		lines = append(lines, theme.Muted.Render("Answer every question correctly to complete this item."))
	}
	lines = append(lines, "")
	lines = append(lines, s.actions.ButtonsView(cw/2))

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return components.Center(content, width, height)
}

// renderModal renders the unlock notification.
func (s *QuizScreen) renderModal(width, height int) string {
	cw := components.ContentWidth(width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		theme.Highlight.Render("Node Unlocked!"),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.modal.outcome.Result.DisplayTitle()),
		"",
		theme.Muted.Render("A new topic is now available in your roadmap."),
		"",
		s.modal.actions.ButtonsView(cw/2),
	)
	return components.Center(theme.Modal.Render(content), width, height)
}
