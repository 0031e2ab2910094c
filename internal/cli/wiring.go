package cli

import (
	"context"
	"time"

	"vocab-quiz/internal/app"
	"vocab-quiz/internal/chapter"
	"vocab-quiz/internal/config"
	"vocab-quiz/internal/infra/memory"
	pgloader "vocab-quiz/internal/infra/postgres"
	redisbank "vocab-quiz/internal/infra/redis"
	"vocab-quiz/internal/infra/remote"
	"vocab-quiz/internal/pronounce"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// buildService wires loaders and caches from cfg. The returned func releases connections.
func buildService(ctx context.Context, cfg config.Config) (*app.QuizService, func(), error) {
	catalog := chapter.NewCatalog(cfg.Chapters)
	banks, cleanup, err := buildBankRepository(ctx, cfg, catalog)
	if err != nil {
		return nil, cleanup, err
	}
	service := app.NewQuizService(banks, pronounce.NewBuilder(cfg.Pronunciation.Template), catalog.List())
	return service, cleanup, nil
}

// buildBankRepository picks the bank source (Postgres first when configured,
// then the remote endpoints) and the cache in front of it: Redis when an
// address is set, process memory otherwise.
func buildBankRepository(ctx context.Context, cfg config.Config, catalog *chapter.Catalog) (app.BankRepository, func(), error) {
	var loader app.BankRepository = remote.NewBankLoader(catalog, config.TTLDuration(cfg.Remote.Timeout, 10*time.Second))

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, pool.Close)
		loader = app.NewFallbackRepository(pgloader.NewBankLoader(pool), loader)
	}

	bankTTL := config.TTLDuration(cfg.Bank.TTL, 10*time.Minute)
	var banks app.BankRepository
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = redisClient.Close() })
		banks = redisbank.NewBankRepository(redisClient, loader, config.TTLDuration(cfg.Redis.TTL, bankTTL))
	} else {
		banks = memory.NewBankRepository(loader, bankTTL)
	}
	return banks, cleanup, nil
}
