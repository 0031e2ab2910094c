package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseWordBank decodes and validates a JSON array of word entries.
// Any invalid entry rejects the whole bank.
func ParseWordBank(chapter string, data []byte) (WordBank, error) {
	var entries []WordEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return WordBank{}, NewLoadError(chapter, fmt.Errorf("%w: %v", ErrMalformedBank, err))
	}
	if entries == nil {
		return WordBank{}, NewLoadError(chapter, fmt.Errorf("%w: expected a JSON array", ErrMalformedBank))
	}
	bank := WordBank{Chapter: chapter, Entries: entries}
	if err := bank.Validate(); err != nil {
		return WordBank{}, NewLoadError(chapter, err)
	}
	return bank, nil
}

// Validate checks the required fields of every entry.
func (b WordBank) Validate() error {
	for i, entry := range b.Entries {
		if strings.TrimSpace(entry.Word) == "" {
			return fmt.Errorf("%w: entry %d has no word", ErrMalformedBank, i)
		}
		if len(entry.Definitions) == 0 {
			return fmt.Errorf("%w: entry %d (%s) has no definitions", ErrMalformedBank, i, entry.Word)
		}
	}
	return nil
}

// MarshalEntries encodes the entries in the source JSON format.
func (b WordBank) MarshalEntries() ([]byte, error) {
	entries := b.Entries
	if entries == nil {
		entries = []WordEntry{}
	}
	return json.Marshal(entries)
}
