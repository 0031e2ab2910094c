package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestBankRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		BankLoader: memory.NewStaticBankLoader(map[string]domain.WordBank{
			"CH1": sampleBank(),
		}),
	}
	repo := NewBankRepository(client, loader, time.Minute)

	bank, err := repo.LoadBank(context.Background(), "CH1")
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if bank.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", bank.Len())
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("wordbank:CH1") {
		t.Fatalf("expected redis key to be set")
	}
	if ttl := mr.TTL("wordbank:CH1"); ttl < time.Minute {
		t.Fatalf("expected ttl of at least a minute, got %s", ttl)
	}

	// Second call should hit cache, loader not incremented.
	cached, err := repo.LoadBank(context.Background(), "CH1")
	if err != nil {
		t.Fatalf("load cached bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached.Chapter != "CH1" || cached.Entries[0].Word != "cat" || cached.Entries[1].Word != "sun" {
		t.Fatalf("cached bank lost order or fields: %+v", cached)
	}
	if cached.Entries[0].Pronunciation != "cat" {
		t.Fatalf("expected pronunciation to survive caching, got %+v", cached.Entries[0])
	}
}

func TestBankRepositoryDropsCorruptEntry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	if err := mr.Set("wordbank:CH1", `[{"word":"cat"}]`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	loader := &countingLoader{BankLoader: memory.NewStaticBankLoader(map[string]domain.WordBank{"CH1": sampleBank()})}
	repo := NewBankRepository(newClient(mr), loader, time.Minute)

	bank, err := repo.LoadBank(context.Background(), "CH1")
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if loader.calls != 1 || bank.Len() != 2 {
		t.Fatalf("expected loader fallback, calls=%d len=%d", loader.calls, bank.Len())
	}
}

func TestBankRepositoryPropagatesLoadError(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	repo := NewBankRepository(newClient(mr), memory.NewStaticBankLoader(nil), time.Minute)
	_, err = repo.LoadBank(context.Background(), "CH7")
	var le *domain.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected load error, got %v", err)
	}
	if mr.Exists("wordbank:CH7") {
		t.Fatalf("failed loads must not be cached")
	}
}

func TestBankRepositoryLoadsWithCancelledCaller(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	loader := &ctxCheckingLoader{BankLoader: memory.NewStaticBankLoader(map[string]domain.WordBank{"CH1": sampleBank()})}
	repo := NewBankRepository(newClient(mr), loader, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bank, err := repo.LoadBank(ctx, "CH1")
	if err != nil {
		t.Fatalf("shared load must not inherit caller cancellation: %v", err)
	}
	if bank.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", bank.Len())
	}
	if !mr.Exists("wordbank:CH1") {
		t.Fatalf("expected bank cached despite cancelled caller")
	}
}

type ctxCheckingLoader struct {
	memory.BankLoader
}

func (l *ctxCheckingLoader) LoadBank(ctx context.Context, chapter string) (domain.WordBank, error) {
	if err := ctx.Err(); err != nil {
		return domain.WordBank{}, err
	}
	return l.BankLoader.LoadBank(ctx, chapter)
}

type countingLoader struct {
	memory.BankLoader
	calls int
}

func (l *countingLoader) LoadBank(ctx context.Context, chapter string) (domain.WordBank, error) {
	l.calls++
	return l.BankLoader.LoadBank(ctx, chapter)
}

func sampleBank() domain.WordBank {
	return domain.WordBank{
		Entries: []domain.WordEntry{
			{Word: "cat", Definitions: []domain.Definition{{PartOfSpeech: "noun", Text: "an animal"}}, Pronunciation: "cat"},
			{Word: "sun", Definitions: []domain.Definition{{PartOfSpeech: "noun", Text: "a star"}}},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
