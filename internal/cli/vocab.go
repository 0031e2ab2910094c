package cli

import (
	"fmt"
	"io"

	"vocab-quiz/internal/chapter"
	"vocab-quiz/internal/config"
	"vocab-quiz/internal/domain"
	"github.com/spf13/cobra"
)

// NewVocabCmd lists every word of a chapter with its definitions.
func NewVocabCmd(configPath *string) *cobra.Command {
	var chapterID string
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "List the vocabulary of a chapter",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			service, cleanup, err := buildService(cmd.Context(), cfg)
			defer cleanup()
			if err != nil {
				return err
			}
			bank, err := service.Vocabulary(cmd.Context(), chapterID)
			if err != nil {
				return err
			}
			return writeVocabulary(cmd.OutOrStdout(), bank)
		},
	}
	cmd.Flags().StringVar(&chapterID, "chapter", chapter.Default, "chapter to list")
	return cmd
}

func writeVocabulary(w io.Writer, bank domain.WordBank) error {
	if _, err := fmt.Fprintf(w, "%s (%d words)\n\n", bank.Chapter, bank.Len()); err != nil {
		return err
	}
	for _, entry := range bank.Entries {
		if _, err := fmt.Fprintf(w, "%s\n", entry.Word); err != nil {
			return err
		}
		for _, def := range entry.Definitions {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", def.PartOfSpeech, def.Text); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
