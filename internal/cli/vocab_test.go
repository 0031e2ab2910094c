package cli

import (
	"bytes"
	"testing"

	"vocab-quiz/internal/domain"
)

func TestWriteVocabularyListsAllDefinitions(t *testing.T) {
	bank := domain.WordBank{Chapter: "CH1", Entries: []domain.WordEntry{
		{Word: "run", Definitions: []domain.Definition{
			{PartOfSpeech: "verb", Text: "move fast"},
			{PartOfSpeech: "noun", Text: "a race"},
		}},
	}}
	var buf bytes.Buffer
	if err := writeVocabulary(&buf, bank); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "CH1 (1 words)\n\nrun\n  verb: move fast\n  noun: a race\n\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"start", "play", "vocab", "migrate", "seed"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Fatalf("expected %s subcommand, got %v (%v)", name, cmd, err)
		}
	}
}
