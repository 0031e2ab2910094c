package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vocab-quiz/internal/app"
	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/quiz"
)

// Model renders a quiz session in the terminal using Bubble Tea.
type Model struct {
	ctx      context.Context
	service  *app.QuizService
	session  *quiz.Session
	chapters []string
	chapter  int
	input    textinput.Model
	status   status
	revealed *quiz.RevealedAnswer
	loading  bool
	loadSeq  int
	noColor  bool
}

// Options configures the terminal UI model.
type Options struct {
	Chapter string
	NoColor bool
}

type statusKind int

const (
	statusNone statusKind = iota
	statusInfo
	statusGood
	statusBad
)

type status struct {
	kind statusKind
	text string
}

// bankLoadedMsg carries the result of an asynchronous chapter load.
type bankLoadedMsg struct {
	seq  int
	bank domain.WordBank
	err  error
}

// NewModel constructs a terminal UI model. The first chapter load starts in Init.
func NewModel(ctx context.Context, service *app.QuizService, opts Options) Model {
	chapters := service.Chapters()
	idx := 0
	for i, id := range chapters {
		if id == opts.Chapter {
			idx = i
		}
	}
	if opts.Chapter != "" && (len(chapters) == 0 || chapters[idx] != opts.Chapter) {
		chapters = append(chapters, opts.Chapter)
		idx = len(chapters) - 1
	}

	input := textinput.New()
	input.Placeholder = "type the word"
	input.CharLimit = 64
	input.Focus()

	return Model{
		ctx:      ctx,
		service:  service,
		chapters: chapters,
		chapter:  idx,
		input:    input,
		loading:  len(chapters) > 0,
		loadSeq:  1,
		noColor:  opts.NoColor,
	}
}

// Init starts the cursor blink and the first chapter load.
func (m Model) Init() tea.Cmd {
	if len(m.chapters) == 0 {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.loadCmd(m.chapters[m.chapter], m.loadSeq))
}

// Update consumes key presses and load results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(typed.Width-4, 10)
		return m, nil
	case bankLoadedMsg:
		return m.applyLoad(typed), nil
	case tea.KeyMsg:
		switch typed.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submit(), nil
		case "ctrl+r":
			return m.reveal(), nil
		case "ctrl+n":
			return m.skip(), nil
		case "tab":
			return m.switchChapter(1)
		case "shift+tab":
			return m.switchChapter(-1)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the current session.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m),
		renderPrompt(m),
		renderInput(m),
		renderStatus(m.status, m.noColor),
		renderFooter(m),
	)
}

// Session exposes the session for callers that inspect the final state.
func (m Model) Session() *quiz.Session {
	return m.session
}

func (m Model) loadCmd(chapter string, seq int) tea.Cmd {
	service := m.service
	ctx := m.ctx
	return func() tea.Msg {
		res := <-service.LoadAsync(ctx, chapter)
		return bankLoadedMsg{seq: seq, bank: res.Bank, err: res.Err}
	}
}

// applyLoad installs a loaded bank. Results of superseded loads are dropped,
// and a failed load keeps the previous session.
func (m Model) applyLoad(msg bankLoadedMsg) Model {
	if msg.seq != m.loadSeq {
		return m
	}
	m.loading = false
	if msg.err != nil {
		m.status = status{kind: statusBad, text: loadErrorText(msg.err)}
		return m
	}
	if m.session == nil {
		m.session = quiz.NewSession(msg.bank)
	} else {
		m.session.Restart(msg.bank)
	}
	m.revealed = nil
	m.input.SetValue("")
	m.status = status{kind: statusInfo, text: fmt.Sprintf("Loaded %s: %d words", msg.bank.Chapter, msg.bank.Len())}
	return m
}

// submit is the single primary action; what it does depends on the phase.
func (m Model) submit() Model {
	if m.session == nil {
		return m
	}
	switch m.session.Phase() {
	case quiz.Answered, quiz.Revealed:
		return m.advance()
	case quiz.Completed:
		return m
	}

	outcome, err := m.session.SubmitAnswer(m.input.Value())
	if err != nil {
		m.status = status{kind: statusBad, text: err.Error()}
		return m
	}
	switch outcome.Kind {
	case quiz.Empty:
		m.status = status{kind: statusBad, text: "Please enter an answer."}
	case quiz.Correct:
		text := "Correct!"
		if outcome.Pronunciation != "" {
			text += " Pronunciation: " + outcome.Pronunciation
		}
		if entry, err := m.session.Current(); err == nil {
			text += "\n" + m.service.PronunciationURL(entry)
		}
		m.status = status{kind: statusGood, text: text + "\nPress enter for the next word."}
	case quiz.Incorrect:
		m.status = status{kind: statusBad, text: "Incorrect! Correct answer: " + outcome.CorrectWord}
		m.input.SetValue("")
	}
	return m
}

func (m Model) advance() Model {
	if err := m.session.Advance(); err != nil {
		m.status = status{kind: statusBad, text: err.Error()}
		return m
	}
	m.revealed = nil
	m.input.SetValue("")
	m.status = status{}
	return m
}

func (m Model) reveal() Model {
	if m.session == nil {
		return m
	}
	answer, err := m.session.Reveal()
	if err != nil {
		m.status = status{kind: statusBad, text: err.Error()}
		return m
	}
	m.revealed = &answer
	m.status = status{kind: statusInfo, text: "Press enter for the next word."}
	return m
}

func (m Model) skip() Model {
	if m.session == nil {
		return m
	}
	if err := m.session.Skip(); err != nil {
		m.status = status{kind: statusBad, text: err.Error()}
		return m
	}
	m.input.SetValue("")
	m.status = status{}
	return m
}

func (m Model) switchChapter(delta int) (tea.Model, tea.Cmd) {
	if len(m.chapters) == 0 {
		return m, nil
	}
	m.chapter = (m.chapter + delta + len(m.chapters)) % len(m.chapters)
	m.loadSeq++
	m.loading = true
	id := m.chapters[m.chapter]
	m.status = status{kind: statusInfo, text: "Loading " + id + "..."}
	return m, m.loadCmd(id, m.loadSeq)
}

func loadErrorText(err error) string {
	var le *domain.LoadError
	if errors.As(err, &le) {
		return fmt.Sprintf("Could not load %s: %v", le.Chapter, le.Err)
	}
	return err.Error()
}
