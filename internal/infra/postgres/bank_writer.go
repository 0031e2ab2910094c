package postgres

import (
	"context"
	"fmt"
	"time"

	"vocab-quiz/internal/domain"
	"github.com/uptrace/bun"
)

type wordBankRow struct {
	bun.BaseModel `bun:"table:word_banks"`

	Chapter   string    `bun:"chapter,pk"`
	Data      string    `bun:"data,type:jsonb"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// BankWriter upserts word banks so they can be served without the remote source.
type BankWriter struct {
	db  *bun.DB
	now func() time.Time
}

func NewBankWriter(db *bun.DB) *BankWriter {
	return &BankWriter{db: db, now: time.Now}
}

// SaveBank validates bank and replaces the stored copy of its chapter.
func (w *BankWriter) SaveBank(ctx context.Context, bank domain.WordBank) error {
	if bank.Chapter == "" {
		return fmt.Errorf("save word bank: %w", domain.ErrUnknownChapter)
	}
	if err := bank.Validate(); err != nil {
		return fmt.Errorf("save word bank %s: %w", bank.Chapter, err)
	}
	data, err := bank.MarshalEntries()
	if err != nil {
		return fmt.Errorf("encode word bank %s: %w", bank.Chapter, err)
	}
	row := &wordBankRow{Chapter: bank.Chapter, Data: string(data), UpdatedAt: w.now()}
	_, err = w.db.NewInsert().
		Model(row).
		On("CONFLICT (chapter) DO UPDATE").
		Set("data = EXCLUDED.data").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert word bank %s: %w", bank.Chapter, err)
	}
	return nil
}

// Chapters lists the stored chapter identifiers.
func (w *BankWriter) Chapters(ctx context.Context) ([]string, error) {
	var chapters []string
	err := w.db.NewSelect().
		Model((*wordBankRow)(nil)).
		Column("chapter").
		Order("chapter ASC").
		Scan(ctx, &chapters)
	if err != nil {
		return nil, fmt.Errorf("list word banks: %w", err)
	}
	return chapters, nil
}
