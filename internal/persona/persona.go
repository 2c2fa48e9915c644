package persona

import (
	"encoding/json"
	"fmt"
	"os"
)

// Persona is the process-wide lexicon mapping reply tags to candidate
// phrasings. It is loaded once at startup and injected wherever reply
// text is produced, so tests can swap wording freely.
type Persona struct {
	Lexicon map[string][]string `json:"lexicon"`
}

// Load reads a persona file of the form {"lexicon": {tag: [phrases]}}.
func Load(path string) (*Persona, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read persona file: %w", err)
	}
	var p Persona
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse persona file %s: %w", path, err)
	}
	return &p, nil
}

// Empty returns a persona with no lexicon; Say always falls back.
func Empty() *Persona {
	return &Persona{}
}

// Say picks the phrasing for tag, or fallback when the lexicon has no
// entries for it.
func (p *Persona) Say(tag, fallback string) string {
	if p == nil {
		return fallback
	}
	if phrases := p.Lexicon[tag]; len(phrases) > 0 {
		return phrases[0]
	}
	return fallback
}
