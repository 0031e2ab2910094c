package app

import (
	"context"

	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/pronounce"
	"vocab-quiz/internal/quiz"
)

// BankRepository loads word banks (from cache/backing store).
type BankRepository interface {
	LoadBank(ctx context.Context, chapter string) (domain.WordBank, error)
}

// LoadResult is delivered once by LoadAsync.
type LoadResult struct {
	Bank domain.WordBank
	Err  error
}

// QuizService contains the quiz use cases shared by every renderer.
type QuizService struct {
	banks    BankRepository
	speaker  *pronounce.Builder
	chapters []string
}

func NewQuizService(banks BankRepository, speaker *pronounce.Builder, chapters []string) *QuizService {
	if speaker == nil {
		speaker = pronounce.NewBuilder("")
	}
	return &QuizService{banks: banks, speaker: speaker, chapters: chapters}
}

// Chapters returns the selectable chapter identifiers.
func (s *QuizService) Chapters() []string {
	return append([]string(nil), s.chapters...)
}

// LoadBank fetches a chapter's word bank. Errors are always *domain.LoadError.
func (s *QuizService) LoadBank(ctx context.Context, chapter string) (domain.WordBank, error) {
	bank, err := s.banks.LoadBank(ctx, chapter)
	if err != nil {
		return domain.WordBank{}, domain.NewLoadError(chapter, err)
	}
	return bank, nil
}

// LoadAsync runs LoadBank on its own goroutine. The channel receives exactly one result.
func (s *QuizService) LoadAsync(ctx context.Context, chapter string) <-chan LoadResult {
	ch := make(chan LoadResult, 1)
	go func() {
		bank, err := s.LoadBank(ctx, chapter)
		ch <- LoadResult{Bank: bank, Err: err}
		close(ch)
	}()
	return ch
}

// StartSession loads a chapter and opens a fresh session over it.
func (s *QuizService) StartSession(ctx context.Context, chapter string) (*quiz.Session, error) {
	bank, err := s.LoadBank(ctx, chapter)
	if err != nil {
		return nil, err
	}
	return quiz.NewSession(bank), nil
}

// SwitchChapter loads chapter and restarts session on it.
// On failure the session is left untouched.
func (s *QuizService) SwitchChapter(ctx context.Context, session *quiz.Session, chapter string) error {
	bank, err := s.LoadBank(ctx, chapter)
	if err != nil {
		return err
	}
	session.Restart(bank)
	return nil
}

// Vocabulary returns every entry of a chapter for listing.
func (s *QuizService) Vocabulary(ctx context.Context, chapter string) (domain.WordBank, error) {
	return s.LoadBank(ctx, chapter)
}

// PronunciationURL returns the playback URL for an entry.
func (s *QuizService) PronunciationURL(entry domain.WordEntry) string {
	return s.speaker.URLFor(entry.SpokenText())
}
