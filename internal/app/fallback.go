package app

import (
	"context"
	"errors"

	"vocab-quiz/internal/domain"
)

// FallbackRepository serves banks from primary and asks secondary for chapters primary does not hold.
type FallbackRepository struct {
	primary   BankRepository
	secondary BankRepository
}

func NewFallbackRepository(primary, secondary BankRepository) *FallbackRepository {
	return &FallbackRepository{primary: primary, secondary: secondary}
}

func (r *FallbackRepository) LoadBank(ctx context.Context, chapter string) (domain.WordBank, error) {
	bank, err := r.primary.LoadBank(ctx, chapter)
	if err == nil {
		return bank, nil
	}
	if !errors.Is(err, domain.ErrBankNotFound) && !errors.Is(err, domain.ErrUnknownChapter) {
		return domain.WordBank{}, err
	}
	return r.secondary.LoadBank(ctx, chapter)
}
