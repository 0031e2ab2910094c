package cli

import (
	"context"
	"log"
	"time"

	"vocab-quiz/internal/chapter"
	"vocab-quiz/internal/config"
	pgstore "vocab-quiz/internal/infra/postgres"
	"vocab-quiz/internal/infra/remote"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewSeedCmd copies chapter word banks from their remote source into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [chapter...]",
		Short: "Store remote chapter word banks in Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runSeed(cmd.Context(), cfg, args)
		},
	}
}

func runSeed(ctx context.Context, cfg config.Config, chapters []string) error {
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}
	db, err := openBun(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	catalog := chapter.NewCatalog(cfg.Chapters)
	if len(chapters) == 0 {
		chapters = catalog.List()
	}
	loader := remote.NewBankLoader(catalog, config.TTLDuration(cfg.Remote.Timeout, 30*time.Second))
	writer := pgstore.NewBankWriter(db)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for _, id := range chapters {
		id := id
		g.Go(func() error {
			bank, err := loader.LoadBank(gctx, id)
			if err != nil {
				return err
			}
			if err := writer.SaveBank(gctx, bank); err != nil {
				return err
			}
			log.Printf("seeded %s (%d words)", id, bank.Len())
			return nil
		})
	}
	return g.Wait()
}
