package quiz

// OptionState is how an answer option is displayed.
type OptionState int

const (
	OptionNeutral OptionState = iota // No selection made yet
	OptionCorrect                    // The correct option, revealed after any selection
	OptionWrong                      // The selected option, when it was wrong
	OptionMuted                      // Any other option after a selection
)

func (o OptionState) String() string {
	switch o {
	case OptionNeutral:
		return "neutral"
	case OptionCorrect:
		return "correct"
	case OptionWrong:
		return "wrong"
	case OptionMuted:
		return "muted"
	default:
		return "unknown"
	}
}

// OptionStateFor maps a selection to the display state of one option.
func OptionStateFor(selected int, hasSelection bool, correct, option int) OptionState {
	if !hasSelection {
		return OptionNeutral
	}
	if option == correct {
		return OptionCorrect
	}
	if option == selected {
		return OptionWrong
	}
	return OptionMuted
}
