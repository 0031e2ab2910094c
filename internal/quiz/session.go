package quiz

import (
	"fmt"
	"strings"

	"vocab-quiz/internal/domain"
)

// RevealedAnswer is the full entry shown by the "show answer" action.
type RevealedAnswer struct {
	Word          string              `json:"word"`
	Definitions   []domain.Definition `json:"definitions"`
	Pronunciation string              `json:"pronunciation,omitempty"`
}

// Snapshot is a read-only view of a session for renderers.
type Snapshot struct {
	Chapter   string             `json:"chapter"`
	Phase     string             `json:"phase"`
	Position  int                `json:"position"`
	Total     int                `json:"total"`
	Remaining int                `json:"remaining"`
	Prompt    *domain.Definition `json:"prompt,omitempty"`
	Score     Score              `json:"score"`
}

// Session is the quiz state machine over one word bank.
// It is not safe for concurrent use; one renderer owns one session.
type Session struct {
	bank     domain.WordBank
	position int
	phase    Phase
	score    Score
	revealed *RevealedAnswer
}

// NewSession starts a quiz at the first word of bank.
func NewSession(bank domain.WordBank) *Session {
	s := &Session{}
	s.Restart(bank)
	return s
}

// Restart replaces the bank and rewinds to the first word.
func (s *Session) Restart(bank domain.WordBank) {
	s.bank = bank
	s.position = 0
	s.score = Score{}
	s.revealed = nil
	s.phase = AwaitingAnswer
	if bank.IsEmpty() {
		s.phase = Completed
	}
}

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) Position() int { return s.position }

func (s *Session) Len() int { return s.bank.Len() }

func (s *Session) Chapter() string { return s.bank.Chapter }

func (s *Session) Score() Score { return s.score }

// Remaining is the number of words not yet passed, the current one included.
func (s *Session) Remaining() int {
	return s.bank.Len() - s.position
}

// Current returns a copy of the entry at the current position.
func (s *Session) Current() (domain.WordEntry, error) {
	if s.phase == Completed || s.position >= s.bank.Len() {
		return domain.WordEntry{}, fmt.Errorf("%w: position %d of %d", domain.ErrOutOfRange, s.position, s.bank.Len())
	}
	entry := s.bank.Entries[s.position]
	entry.Definitions = copyDefinitions(entry.Definitions)
	return entry, nil
}

// CurrentPrompt returns the first definition of the current word.
func (s *Session) CurrentPrompt() (domain.Definition, error) {
	entry, err := s.Current()
	if err != nil {
		return domain.Definition{}, err
	}
	return entry.Definitions[0], nil
}

// SubmitAnswer compares text to the current word after trimming and lower-casing.
// Blank input yields Empty and changes nothing. A wrong guess keeps the same word.
func (s *Session) SubmitAnswer(text string) (Outcome, error) {
	if s.phase != AwaitingAnswer {
		return Outcome{}, s.invalid("submit")
	}
	entry := s.bank.Entries[s.position]

	guess := normalize(text)
	if guess == "" {
		return Outcome{Kind: Empty}, nil
	}
	if guess == strings.ToLower(entry.Word) {
		s.score.Correct++
		s.phase = Answered
		return Outcome{Kind: Correct, Pronunciation: entry.Pronunciation}, nil
	}
	s.score.Incorrect++
	return Outcome{Kind: Incorrect, CorrectWord: entry.Word}, nil
}

// Reveal shows the full answer without advancing. Calling it again while
// Revealed returns the same answer.
func (s *Session) Reveal() (RevealedAnswer, error) {
	switch s.phase {
	case Revealed:
		answer := *s.revealed
		answer.Definitions = copyDefinitions(answer.Definitions)
		return answer, nil
	case AwaitingAnswer:
	default:
		return RevealedAnswer{}, s.invalid("reveal")
	}
	entry := s.bank.Entries[s.position]
	answer := RevealedAnswer{
		Word:          entry.Word,
		Definitions:   copyDefinitions(entry.Definitions),
		Pronunciation: entry.Pronunciation,
	}
	s.revealed = &answer
	s.score.Revealed++
	s.phase = Revealed
	out := answer
	out.Definitions = copyDefinitions(answer.Definitions)
	return out, nil
}

// Advance moves past a word that was answered correctly or revealed.
func (s *Session) Advance() error {
	if s.phase != Answered && s.phase != Revealed {
		return s.invalid("advance")
	}
	s.step()
	return nil
}

// Skip moves past the current word without answering it.
func (s *Session) Skip() error {
	if s.phase != AwaitingAnswer {
		return s.invalid("skip")
	}
	s.score.Skipped++
	s.step()
	return nil
}

// Snapshot captures the state for rendering.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Chapter:   s.bank.Chapter,
		Phase:     s.phase.String(),
		Position:  s.position,
		Total:     s.bank.Len(),
		Remaining: s.Remaining(),
		Score:     s.score,
	}
	if prompt, err := s.CurrentPrompt(); err == nil {
		snap.Prompt = &prompt
	}
	return snap
}

func (s *Session) step() {
	s.position++
	s.revealed = nil
	if s.position >= s.bank.Len() {
		s.phase = Completed
		return
	}
	s.phase = AwaitingAnswer
}

func (s *Session) invalid(op string) error {
	return fmt.Errorf("%w: %s while %s", domain.ErrInvalidTransition, op, s.phase)
}

// copyDefinitions keeps the loaded bank immutable: banks are shared by every
// session that loads the chapter from a cache.
func copyDefinitions(defs []domain.Definition) []domain.Definition {
	return append([]domain.Definition(nil), defs...)
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
