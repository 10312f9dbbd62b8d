package quiz

import "fmt"

// Question is a single multiple-choice question. It is immutable once loaded.
type Question struct {
	Prompt       string
	Options      []string
	CorrectIndex int
}

// Validate checks that the question has options and that CorrectIndex
// points at one of them.
func (q Question) Validate() error {
	if len(q.Options) == 0 {
		return fmt.Errorf("question %q has no options", q.Prompt)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("question %q: correct index %d out of range [0, %d)", q.Prompt, q.CorrectIndex, len(q.Options))
	}
	return nil
}

// IsCorrect returns true if option is the correct answer.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectIndex
}
