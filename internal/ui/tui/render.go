package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vocab-quiz/internal/quiz"
)

func renderHeader(m Model) string {
	title := "English Vocabulary"
	chapter := "-"
	if len(m.chapters) > 0 {
		chapter = m.chapters[m.chapter]
	}
	progress := ""
	if m.session != nil {
		score := m.session.Score()
		progress = fmt.Sprintf("  %d/%d  correct %d  wrong %d  revealed %d  skipped %d",
			min(m.session.Position()+1, m.session.Len()), m.session.Len(),
			score.Correct, score.Incorrect, score.Revealed, score.Skipped)
	}
	line := fmt.Sprintf("%s  [%s]%s", title, chapter, progress)
	return style(m.noColor, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))).Render(line)
}

func renderPrompt(m Model) string {
	if m.session == nil {
		if m.loading {
			return "\nLoading words...\n"
		}
		return "\nNo word list loaded.\n"
	}
	if m.session.Phase() == quiz.Completed {
		return "\n" + style(m.noColor, lipgloss.NewStyle().Bold(true)).Render("Quiz completed!") + "\n"
	}
	prompt, err := m.session.CurrentPrompt()
	if err != nil {
		return "\n" + err.Error() + "\n"
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(style(m.noColor, lipgloss.NewStyle().Italic(true)).Render(prompt.PartOfSpeech + ":"))
	b.WriteString(" ")
	b.WriteString(prompt.Text)
	b.WriteString("\n")
	if m.revealed != nil {
		b.WriteString("\n")
		b.WriteString(style(m.noColor, lipgloss.NewStyle().Bold(true)).Render("English: " + m.revealed.Word))
		b.WriteString("\n")
		for _, def := range m.revealed.Definitions {
			b.WriteString(fmt.Sprintf("  %s: %s\n", def.PartOfSpeech, def.Text))
		}
		if url := m.revealURL(); url != "" {
			b.WriteString("  " + url + "\n")
		}
	}
	return b.String()
}

func renderInput(m Model) string {
	if m.session == nil || m.session.Phase() != quiz.AwaitingAnswer {
		return ""
	}
	return m.input.View()
}

func renderStatus(s status, noColor bool) string {
	if s.text == "" {
		return ""
	}
	st := lipgloss.NewStyle()
	switch s.kind {
	case statusGood:
		st = st.Foreground(lipgloss.Color("42"))
	case statusBad:
		st = st.Foreground(lipgloss.Color("196"))
	case statusInfo:
		st = st.Foreground(lipgloss.Color("244"))
	}
	return "\n" + style(noColor, st).Render(s.text)
}

func renderFooter(m Model) string {
	help := "enter submit/next  ctrl+r show answer  ctrl+n skip  tab chapter  esc quit"
	return "\n" + style(m.noColor, lipgloss.NewStyle().Faint(true)).Render(help)
}

func (m Model) revealURL() string {
	if m.revealed == nil {
		return ""
	}
	entry, err := m.session.Current()
	if err != nil {
		return ""
	}
	return m.service.PronunciationURL(entry)
}

func style(noColor bool, st lipgloss.Style) lipgloss.Style {
	if noColor {
		return lipgloss.NewStyle()
	}
	return st
}
