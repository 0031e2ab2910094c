package cli

import (
	"fmt"
	"os"

	"vocab-quiz/internal/chapter"
	"vocab-quiz/internal/config"
	"vocab-quiz/internal/ui/tui"
	"github.com/spf13/cobra"
)

// NewPlayCmd runs the quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		chapterID string
		noColor   bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Take the quiz in the terminal",
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

			session, err := tui.Run(cmd.Context(), service, os.Stdin, os.Stdout, tui.Options{
				Chapter: chapterID,
				NoColor: noColor,
			})
			if err != nil {
				return err
			}
			if session != nil {
				score := session.Score()
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d words, %d correct, %d wrong attempts, %d revealed, %d skipped\n",
					session.Chapter(), session.Position(), session.Len(),
					score.Correct, score.Incorrect, score.Revealed, score.Skipped)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&chapterID, "chapter", chapter.Default, "chapter to start with")
	cmd.Flags().BoolVar(&noColor, "no-color", os.Getenv("NO_COLOR") != "", "disable colors")
	return cmd
}
