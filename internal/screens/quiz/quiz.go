package quiz

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/pathwise/internal/nav"
	"github.com/abhisek/pathwise/internal/progress"
	qz "github.com/abhisek/pathwise/internal/quiz"
	"github.com/abhisek/pathwise/internal/router"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/ui/components"
	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/unlock"
)

// Loader fetches the questions for a roadmap item. *qz.Gateway implements it.
type Loader interface {
	LoadQuiz(ctx context.Context, itemID int) ([]qz.Question, error)
}

// Reporter posts a completion. *progress.Reporter implements it.
type Reporter interface {
	Report(ctx context.Context, user progress.UserContext, itemID, score, total int) (*progress.CompletionResult, error)
}

// UnlockRunner runs the unlock flow. *unlock.Flow implements it.
type UnlockRunner interface {
	Run(ctx context.Context, result progress.CompletionResult) unlock.Outcome
}

// Deps are the services the quiz screen talks to. Reporter and Unlocks may
// be nil, in which case completions are not reported.
type Deps struct {
	Loader   Loader
	Reporter Reporter
	Unlocks  UnlockRunner
	User     progress.UserContext
}

// QuizScreen runs one quiz for a roadmap item.
type QuizScreen struct {
	itemID    int
	deps      Deps
	session   *qz.Session
	attemptID string
	cursor    int

	// reporting is true while a completion report or unlock flow is in flight.
	reporting bool

	// actions is the menu on the complete view.
	actions components.Menu

	// modal is set once the unlock flow decides to show the notification.
	modal *unlockModal
}

type unlockModal struct {
	outcome unlock.Outcome
	actions components.Menu
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Routed = (*QuizScreen)(nil)
var _ screen.EscapeHandler = (*QuizScreen)(nil)

// New creates a QuizScreen for itemID.
func New(itemID int, deps Deps) *QuizScreen {
	s := &QuizScreen{itemID: itemID, deps: deps, session: qz.NewSession()}
	s.actions = components.NewMenu([]components.MenuItem{
		{Label: "Back to Study", Action: func() tea.Cmd { return router.Navigate(nav.Roadmap()) }},
		{Label: "Take Quiz Again", Action: func() tea.Cmd {
			return func() tea.Msg { return restartMsg{} }
		}},
	})
	return s
}

// Init starts a fresh attempt and fetches the questions.
func (s *QuizScreen) Init() tea.Cmd {
	s.session = qz.NewSession()
	s.attemptID = uuid.NewString()
	s.cursor = 0
	s.reporting = false
	s.modal = nil
	return s.loadQuiz()
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) Route() nav.Route {
	return nav.Quiz(s.itemID)
}

// HandlesEscape is true while the unlock notification is open.
func (s *QuizScreen) HandlesEscape() bool {
	return s.modal != nil
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.modal != nil {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Go"},
			{Key: "Esc", Description: "Close"},
		}
	}
	switch s.session.Phase() {
	case qz.PhaseActive:
		if _, ok := s.session.Selected(); ok {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Next"},
				{Key: "Esc", Description: "Back"},
			}
		}
		return []layout.KeyHint{
			{Key: "1-9", Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
		}
	case qz.PhaseComplete:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Go"},
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case qz.PhaseError:
		return []layout.KeyHint{
			{Key: "R", Description: "Reload"},
			{Key: "Enter", Description: "Roadmap"},
			{Key: "Esc", Description: "Back"},
		}
	case qz.PhaseEmpty:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Roadmap"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizLoadedMsg:
		return s.handleLoaded(msg)
	case completionDoneMsg:
		return s.handleCompleted(msg)
	case restartMsg:
		return s.restart()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleLoaded(msg quizLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.AttemptID != s.attemptID {
		return s, nil
	}
	if msg.Err != nil {
		s.session.Fail(msg.Err)
		return s, nil
	}
	s.session.Load(msg.Items)
	return s, nil
}

// handleCompleted opens the unlock notification. The marker was already
// persisted by the command, so a stale attempt only skips the modal.
func (s *QuizScreen) handleCompleted(msg completionDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.AttemptID != s.attemptID {
		return s, nil
	}
	s.reporting = false
	// Report failures were logged by the reporter; the learner sees nothing.
	if msg.Err != nil || !msg.Outcome.ShowModal {
		return s, nil
	}
	marker := msg.Outcome.Marker
	s.modal = &unlockModal{
		outcome: msg.Outcome,
		actions: components.NewMenu([]components.MenuItem{
			{Label: "Back to Roadmap", Action: func() tea.Cmd { return router.Navigate(nav.Roadmap()) }},
			{Label: "View in Knowledge Graph", Action: func() tea.Cmd { return router.Navigate(nav.Graph(marker)) }},
		}),
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.modal != nil {
		if key == "esc" {
			s.modal = nil
			return s, nil
		}
		var cmd tea.Cmd
		s.modal.actions, cmd = s.modal.actions.Update(msg)
		return s, cmd
	}

	switch s.session.Phase() {
	case qz.PhaseActive:
		return s.handleActiveKey(key)

	case qz.PhaseComplete:
		if key == "r" || key == "R" {
			return s.restart()
		}
		var cmd tea.Cmd
		s.actions, cmd = s.actions.Update(msg)
		return s, cmd

	case qz.PhaseError:
		switch key {
		case "r", "R":
			return s, s.Init()
		case "enter":
			return s, router.Navigate(nav.Roadmap())
		}

	case qz.PhaseEmpty:
		if key == "enter" {
			return s, router.Navigate(nav.Roadmap())
		}
	}
	return s, nil
}

func (s *QuizScreen) handleActiveKey(key string) (screen.Screen, tea.Cmd) {
	q := s.session.Current()
	_, answered := s.session.Selected()

	switch key {
	case "up", "k":
		if !answered && s.cursor > 0 {
			s.cursor--
		}
		return s, nil
	case "down", "j":
		if !answered && s.cursor < len(q.Options)-1 {
			s.cursor++
		}
		return s, nil
	case "enter", "n", "N", "right":
		if !answered {
			if key == "enter" {
				s.session.SelectAnswer(s.cursor)
			}
			return s, nil
		}
		return s.advance()
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		option := int(key[0] - '1')
		if s.session.SelectAnswer(option) {
			s.cursor = option
		}
	}
	return s, nil
}

// advance moves to the next question and reports a perfect completion.
func (s *QuizScreen) advance() (screen.Screen, tea.Cmd) {
	if !s.session.Advance() {
		return s, nil
	}
	s.cursor = 0
	if s.session.Phase() != qz.PhaseComplete {
		return s, nil
	}

	s.actions.Selected = 0
	if s.deps.Reporter == nil || !progress.ShouldReport(s.session.Score(), s.session.Total()) {
		return s, nil
	}
	s.reporting = true
	return s, s.report(s.session.Score(), s.session.Total())
}

// restart begins a new attempt over the same questions. Responses still in
// flight for the previous attempt are ignored.
func (s *QuizScreen) restart() (screen.Screen, tea.Cmd) {
	if !s.session.Restart() {
		return s, nil
	}
	s.attemptID = uuid.NewString()
	s.cursor = 0
	s.reporting = false
	s.modal = nil
	return s, nil
}

func (s *QuizScreen) loadQuiz() tea.Cmd {
	attemptID, itemID, loader := s.attemptID, s.itemID, s.deps.Loader
	return func() tea.Msg {
		items, err := loader.LoadQuiz(context.Background(), itemID)
		return quizLoadedMsg{AttemptID: attemptID, Items: items, Err: err}
	}
}

// report posts the completion and, on a new unlock, runs the unlock flow in
// the same command. The flow runs even if the learner has restarted or left
// the screen by the time the report returns.
func (s *QuizScreen) report(score, total int) tea.Cmd {
	attemptID, itemID := s.attemptID, s.itemID
	reporter, flow, user := s.deps.Reporter, s.deps.Unlocks, s.deps.User
	return func() tea.Msg {
		ctx := context.Background()
		res, err := reporter.Report(ctx, user, itemID, score, total)
		msg := completionDoneMsg{AttemptID: attemptID, Result: res, Err: err}
		if err == nil && res != nil && res.IsNewUnlock && flow != nil {
			msg.Outcome = flow.Run(ctx, *res)
		}
		return msg
	}
}
