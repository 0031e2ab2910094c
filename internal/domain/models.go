package domain

// Definition is one meaning of a vocabulary word.
type Definition struct {
	PartOfSpeech string `json:"partOfSpeech"`
	Text         string `json:"text"`
}

// WordEntry is a single quiz item: the answer word and its definitions.
type WordEntry struct {
	Word          string       `json:"word"`
	Definitions   []Definition `json:"definitions"`
	Pronunciation string       `json:"pronunciation,omitempty"`
}

// SpokenText is the text handed to the pronunciation endpoint.
func (e WordEntry) SpokenText() string {
	if e.Pronunciation != "" {
		return e.Pronunciation
	}
	return e.Word
}

// WordBank is the ordered word list of one chapter. Entry order is presentation order.
type WordBank struct {
	Chapter string
	Entries []WordEntry
}

// Len returns the number of entries in the bank.
func (b WordBank) Len() int {
	return len(b.Entries)
}

// IsEmpty reports whether the bank has no entries.
func (b WordBank) IsEmpty() bool {
	return len(b.Entries) == 0
}
