package chapter

import (
	"fmt"
	"sort"

	"vocab-quiz/internal/domain"
)

const defaultBaseURL = "https://raw.githubusercontent.com/AppPeterPan/TaiwanSchoolEnglishVocabulary/main/"

// IDs lists the built-in chapter identifiers in menu order.
var IDs = []string{"CH1", "CH2", "CH3", "CH4", "CH5", "CH6"}

// Default is the identifier selected when none is given.
const Default = "CH1"

// Catalog maps chapter identifiers to word bank locations.
type Catalog struct {
	urls map[string]string
}

// DefaultCatalog returns the six built-in chapters.
func DefaultCatalog() *Catalog {
	urls := make(map[string]string, len(IDs))
	for i, id := range IDs {
		// "%E7%B4%9A" is the escaped level suffix used by the upstream files.
		urls[id] = fmt.Sprintf("%s%d%%E7%%B4%%9A.json", defaultBaseURL, i+1)
	}
	return &Catalog{urls: urls}
}

// NewCatalog builds a catalog from the built-in chapters with overrides applied.
// An override with an empty URL removes the chapter.
func NewCatalog(overrides map[string]string) *Catalog {
	c := DefaultCatalog()
	for id, url := range overrides {
		if url == "" {
			delete(c.urls, id)
			continue
		}
		c.urls[id] = url
	}
	return c
}

// URL returns the fetch location of a chapter, or ErrUnknownChapter.
func (c *Catalog) URL(id string) (string, error) {
	url, ok := c.urls[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownChapter, id)
	}
	return url, nil
}

// List returns the known chapter identifiers sorted.
func (c *Catalog) List() []string {
	ids := make([]string, 0, len(c.urls))
	for id := range c.urls {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
