package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"vocab-quiz/internal/domain"
	"golang.org/x/sync/singleflight"
)

// BankLoader fetches a chapter's word bank from a backing source (remote JSON, Postgres).
type BankLoader interface {
	LoadBank(ctx context.Context, chapter string) (domain.WordBank, error)
}

// BankRepository caches word banks with TTL to avoid refetching a chapter.
// Failed loads are not cached.
type BankRepository struct {
	loader BankLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand
	rndMu  sync.Mutex

	mu    sync.RWMutex
	cache map[string]cachedBank
}

type cachedBank struct {
	bank      domain.WordBank
	expiresAt time.Time
}

func NewBankRepository(loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedBank),
	}
}

func (r *BankRepository) LoadBank(ctx context.Context, chapter string) (domain.WordBank, error) {
	if bank, ok := r.lookup(chapter); ok {
		return bank, nil
	}

	// Detached from the first caller so its cancellation does not fail the rest.
	loadCtx := context.WithoutCancel(ctx)
	result, err, _ := r.sf.Do(chapter, func() (interface{}, error) {
		if bank, ok := r.lookup(chapter); ok {
			return bank, nil
		}

		bank, err := r.loader.LoadBank(loadCtx, chapter)
		if err != nil {
			return domain.WordBank{}, err
		}
		if ttl := r.ttlWithJitter(); ttl > 0 {
			r.mu.Lock()
			r.cache[chapter] = cachedBank{bank: bank, expiresAt: r.clock().Add(ttl)}
			r.mu.Unlock()
		}
		return bank, nil
	})
	if err != nil {
		return domain.WordBank{}, err
	}
	return result.(domain.WordBank), nil
}

func (r *BankRepository) lookup(chapter string) (domain.WordBank, bool) {
	now := r.clock()
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.cache[chapter]; ok && entry.expiresAt.After(now) {
		return entry.bank, true
	}
	return domain.WordBank{}, false
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	r.rndMu.Lock()
	defer r.rndMu.Unlock()
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

// StaticBankLoader is a simple loader backed by an in-memory map (useful for tests/demos).
type StaticBankLoader struct {
	banks map[string]domain.WordBank
}

func NewStaticBankLoader(banks map[string]domain.WordBank) *StaticBankLoader {
	return &StaticBankLoader{banks: banks}
}

func (l *StaticBankLoader) LoadBank(_ context.Context, chapter string) (domain.WordBank, error) {
	if bank, ok := l.banks[chapter]; ok {
		if bank.Chapter == "" {
			bank.Chapter = chapter
		}
		return bank, nil
	}
	return domain.WordBank{}, domain.NewLoadError(chapter, domain.ErrUnknownChapter)
}
