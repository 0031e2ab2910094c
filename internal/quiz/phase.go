package quiz

// Phase is the stage of the current quiz attempt.
type Phase int

const (
	// AwaitingAnswer means a prompt is shown and a guess is expected.
	AwaitingAnswer Phase = iota
	// Answered means the last guess was correct and an advance is pending.
	Answered
	// Revealed means the answer was shown and an advance is pending.
	Revealed
	// Completed is terminal: every word has been presented.
	Completed
)

func (p Phase) String() string {
	switch p {
	case AwaitingAnswer:
		return "awaiting_answer"
	case Answered:
		return "answered"
	case Revealed:
		return "revealed"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// OutcomeKind classifies a submitted answer.
type OutcomeKind int

const (
	// Empty means the input was blank; nothing changed.
	Empty OutcomeKind = iota
	Correct
	Incorrect
)

func (k OutcomeKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

// Outcome is the result of SubmitAnswer.
// Pronunciation is set on Correct, CorrectWord on Incorrect.
type Outcome struct {
	Kind          OutcomeKind `json:"-"`
	Pronunciation string      `json:"pronunciation,omitempty"`
	CorrectWord   string      `json:"correctWord,omitempty"`
}

// Score tallies what happened during a session.
type Score struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Revealed  int `json:"revealed"`
	Skipped   int `json:"skipped"`
}
