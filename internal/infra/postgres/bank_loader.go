package postgres

import (
	"context"
	"errors"
	"fmt"

	"vocab-quiz/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// BankLoader loads word bank JSONB from Postgres.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context, chapter string) (domain.WordBank, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM word_banks WHERE chapter=$1`, chapter).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.WordBank{}, domain.NewLoadError(chapter, domain.ErrBankNotFound)
	}
	if err != nil {
		return domain.WordBank{}, domain.NewLoadError(chapter, fmt.Errorf("query word bank: %w", err))
	}
	return domain.ParseWordBank(chapter, raw)
}
