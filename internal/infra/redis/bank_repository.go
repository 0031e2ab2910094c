package redis

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"vocab-quiz/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// BankLoader fetches a chapter's word bank from a backing source (remote JSON, Postgres).
type BankLoader interface {
	LoadBank(ctx context.Context, chapter string) (domain.WordBank, error)
}

// BankRepository caches word banks in Redis and falls back to a loader on cache miss.
// Banks are stored in the source JSON format: SET wordbank:{chapter} <json> EX ttl
type BankRepository struct {
	client *redis.Client
	loader BankLoader
	ttl    time.Duration
	sf     singleflight.Group
	rndMu  sync.Mutex
	rnd    *rand.Rand
}

func NewBankRepository(client *redis.Client, loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *BankRepository) LoadBank(ctx context.Context, chapter string) (domain.WordBank, error) {
	if bank, ok := r.cached(ctx, chapter); ok {
		return bank, nil
	}

	// Detached from the first caller so its cancellation does not fail the rest.
	loadCtx := context.WithoutCancel(ctx)
	result, err, _ := r.sf.Do(chapter, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if bank, ok := r.cached(loadCtx, chapter); ok {
			return bank, nil
		}

		bank, err := r.loader.LoadBank(loadCtx, chapter)
		if err != nil {
			return domain.WordBank{}, err
		}

		ttl := r.ttlWithJitter()
		if ttl > 0 {
			data, err := bank.MarshalEntries()
			if err == nil {
				err = r.client.Set(loadCtx, r.key(chapter), data, ttl).Err()
			}
			if err != nil {
				log.Printf("cache word bank %s: %v", chapter, err)
			}
		}
		return bank, nil
	})
	if err != nil {
		return domain.WordBank{}, err
	}
	return result.(domain.WordBank), nil
}

// cached returns the bank stored in Redis. A corrupt entry is dropped and treated as a miss.
func (r *BankRepository) cached(ctx context.Context, chapter string) (domain.WordBank, bool) {
	data, err := r.client.Get(ctx, r.key(chapter)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("read cached word bank %s: %v", chapter, err)
		}
		return domain.WordBank{}, false
	}
	bank, err := domain.ParseWordBank(chapter, data)
	if err != nil {
		log.Printf("drop corrupt cached word bank %s: %v", chapter, err)
		_ = r.client.Del(ctx, r.key(chapter)).Err()
		return domain.WordBank{}, false
	}
	return bank, true
}

func (r *BankRepository) key(chapter string) string {
	return "wordbank:" + chapter
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
