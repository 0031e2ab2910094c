package pronounce

import (
	"net/url"
	"strings"
)

// Placeholder marks where the word is substituted in a template.
const Placeholder = "{word}"

// DefaultTemplate is the Google translate text-to-speech endpoint.
const DefaultTemplate = "https://translate.google.com/translate_tts?ie=UTF-8&client=tw-ob&q=" + Placeholder + "&tl=en"

// Builder produces playback URLs. Playback itself is left to the caller.
type Builder struct {
	template string
}

func NewBuilder(template string) *Builder {
	if template == "" || !strings.Contains(template, Placeholder) {
		template = DefaultTemplate
	}
	return &Builder{template: template}
}

// URLFor returns the playback URL for word, query-escaped.
func (b *Builder) URLFor(word string) string {
	return strings.ReplaceAll(b.template, Placeholder, url.QueryEscape(strings.TrimSpace(word)))
}
