package extract

import (
	"regexp"
	"strings"

	"github.com/infolens/infolens/internal/model"
)

const (
	maxEntities = 10
	entityScore = 0.9
)

// entityPattern matches maximal runs of capitalized words separated by
// single spaces. ASCII-only: this is a precision-oriented stand-in for a
// full NER pass, not a general tokenizer.
var entityPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)*\b`)

// entityStopWords are sentence-leading function words that the capitalized
// pattern picks up but which are never entities
var entityStopWords = map[string]bool{
	"the":  true,
	"this": true,
	"that": true,
	"a":    true,
	"an":   true,
}

// EntityExtractor pulls proper-noun-like spans out of text
type EntityExtractor struct{}

// NewEntityExtractor creates an entity extractor
func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{}
}

// Extract returns up to 10 entities in first-seen order. Matches are
// deduplicated by exact surface string, first occurrence wins; every
// accepted entity carries the fixed "ENTITY" label and a 0.9 confidence.
func (e *EntityExtractor) Extract(text string) []model.Entity {
	matches := entityPattern.FindAllString(text, -1)

	var entities []model.Entity
	seen := make(map[string]bool)

	for _, match := range matches {
		if entityStopWords[strings.ToLower(match)] {
			continue
		}
		if seen[match] {
			continue
		}
		seen[match] = true

		entities = append(entities, model.Entity{
			Text:  match,
			Label: model.EntityLabel,
			Score: entityScore,
		})
		if len(entities) == maxEntities {
			break
		}
	}

	return entities
}
