package quiz

import (
	"github.com/abhisek/pathwise/internal/progress"
	qz "github.com/abhisek/pathwise/internal/quiz"
	"github.com/abhisek/pathwise/internal/unlock"
)

// Every message carries the attempt it was issued for. Messages from an
// older attempt do not touch the screen.

// quizLoadedMsg is sent when the question set has been fetched.
type quizLoadedMsg struct {
	AttemptID string
	Items     []qz.Question
	Err       error
}

// completionDoneMsg is sent once a completion report and, for a new
// unlock, the unlock flow have both run. Outcome is zero when no flow ran.
type completionDoneMsg struct {
	AttemptID string
	Result    *progress.CompletionResult
	Err       error
	Outcome   unlock.Outcome
}

// restartMsg is sent by the "Take Quiz Again" action.
type restartMsg struct{}
