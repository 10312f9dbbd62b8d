package quiz

// Phase represents the current phase of a quiz session.
type Phase int

const (
	PhaseLoading  Phase = iota // Waiting for the question set
	PhaseActive                // Serving questions
	PhaseComplete              // Last question answered and advanced past
	PhaseEmpty                 // Question set had no questions
	PhaseError                 // Question set could not be loaded
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseActive:
		return "active"
	case PhaseComplete:
		return "complete"
	case PhaseEmpty:
		return "empty"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Session tracks one attempt at a quiz. All mutation goes through Load, Fail,
// SelectAnswer, Advance and Restart; each returns false and leaves the session
// untouched when the transition is not valid from the current state.
type Session struct {
	items        []Question
	currentIndex int
	selected     int
	hasSelection bool
	score        int
	phase        Phase
	err          error
}

// NewSession creates a session waiting for its question set.
func NewSession() *Session {
	return &Session{phase: PhaseLoading}
}

// Load seeds the session with its questions.
func (s *Session) Load(items []Question) bool {
	if s.phase != PhaseLoading {
		return false
	}
	s.items = items
	if len(items) == 0 {
		s.phase = PhaseEmpty
		return true
	}
	s.phase = PhaseActive
	return true
}

// Fail records that the question set could not be loaded.
func (s *Session) Fail(err error) bool {
	if s.phase != PhaseLoading {
		return false
	}
	s.err = err
	s.phase = PhaseError
	return true
}

// SelectAnswer picks option for the current question. Only the first
// selection per question counts.
func (s *Session) SelectAnswer(option int) bool {
	if s.phase != PhaseActive || s.hasSelection {
		return false
	}
	q := s.items[s.currentIndex]
	if option < 0 || option >= len(q.Options) {
		return false
	}

	s.selected = option
	s.hasSelection = true
	if q.IsCorrect(option) {
		s.score++
	}
	return true
}

// Advance moves past an answered question, completing the session after
// the last one.
func (s *Session) Advance() bool {
	if s.phase != PhaseActive || !s.hasSelection {
		return false
	}
	if s.currentIndex == len(s.items)-1 {
		s.currentIndex = len(s.items)
		s.phase = PhaseComplete
		return true
	}
	s.currentIndex++
	s.hasSelection = false
	s.selected = 0
	return true
}

// Restart begins a fresh attempt over the same questions.
func (s *Session) Restart() bool {
	if s.phase != PhaseComplete {
		return false
	}
	s.currentIndex = 0
	s.hasSelection = false
	s.selected = 0
	s.score = 0
	s.phase = PhaseActive
	return true
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Err returns the load error when the session is in PhaseError.
func (s *Session) Err() error { return s.err }

// Items returns the loaded questions.
func (s *Session) Items() []Question { return s.items }

// Total returns the number of questions.
func (s *Session) Total() int { return len(s.items) }

// Score returns the number of correctly answered questions so far.
func (s *Session) Score() int { return s.score }

// CurrentIndex returns the index of the question being shown. It equals
// Total() once the session is complete.
func (s *Session) CurrentIndex() int { return s.currentIndex }

// Selected returns the selection for the current question, if any.
func (s *Session) Selected() (int, bool) {
	return s.selected, s.hasSelection
}

// Current returns the question being shown, or nil outside PhaseActive.
func (s *Session) Current() *Question {
	if s.phase != PhaseActive {
		return nil
	}
	return &s.items[s.currentIndex]
}

// IsLast returns true if the current question is the final one.
func (s *Session) IsLast() bool {
	return s.phase == PhaseActive && s.currentIndex == len(s.items)-1
}

// IsPerfect returns true for a completed session with every answer correct.
func (s *Session) IsPerfect() bool {
	return s.phase == PhaseComplete && s.score == len(s.items)
}

// Option returns the display state of option for the current question.
func (s *Session) Option(option int) OptionState {
	q := s.Current()
	if q == nil {
		return OptionNeutral
	}
	return OptionStateFor(s.selected, s.hasSelection, q.CorrectIndex, option)
}
