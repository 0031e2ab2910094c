package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"vocab-quiz/internal/domain"
)

// maxBankSize bounds the payload read from a chapter endpoint.
const maxBankSize = 16 << 20

// ErrBankTooLarge reports a chapter payload above the size bound.
var ErrBankTooLarge = errors.New("word bank payload too large")

// URLResolver maps a chapter identifier to its fetch location.
type URLResolver interface {
	URL(chapter string) (string, error)
}

// BankLoader fetches chapter word banks as JSON over HTTP.
type BankLoader struct {
	resolver   URLResolver
	httpClient *http.Client
	maxSize    int64
}

func NewBankLoader(resolver URLResolver, timeout time.Duration) *BankLoader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BankLoader{
		resolver:   resolver,
		httpClient: &http.Client{Timeout: timeout},
		maxSize:    maxBankSize,
	}
}

// LoadBank performs a GET on the chapter location and validates the payload.
func (l *BankLoader) LoadBank(ctx context.Context, chapter string) (domain.WordBank, error) {
	url, err := l.resolver.URL(chapter)
	if err != nil {
		return domain.WordBank{}, domain.NewLoadError(chapter, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.WordBank{}, domain.NewLoadError(chapter, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return domain.WordBank{}, domain.NewLoadError(chapter, fmt.Errorf("fetch: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.WordBank{}, domain.NewLoadError(chapter, fmt.Errorf("fetch: unexpected status %d", resp.StatusCode))
	}

	// One byte past the bound tells an oversized payload from one that fits exactly.
	body, err := io.ReadAll(io.LimitReader(resp.Body, l.maxSize+1))
	if err != nil {
		return domain.WordBank{}, domain.NewLoadError(chapter, fmt.Errorf("read response: %w", err))
	}
	if int64(len(body)) > l.maxSize {
		return domain.WordBank{}, domain.NewLoadError(chapter, fmt.Errorf("%w: over %d bytes", ErrBankTooLarge, l.maxSize))
	}
	return domain.ParseWordBank(chapter, body)
}
