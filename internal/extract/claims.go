package extract

import (
	"strings"
	"unicode"

	"github.com/infolens/infolens/internal/model"
)

const (
	maxClaims      = 8
	minClaimLength = 40
	minClaimWords  = 5
)

// ClaimExtractor segments text into sentences and keeps the ones that look
// like factual assertions
type ClaimExtractor struct {
	segmenter Segmenter
}

// NewClaimExtractor creates a claim extractor with the default segmenter
func NewClaimExtractor() *ClaimExtractor {
	return &ClaimExtractor{segmenter: NewSentenceSegmenter()}
}

// NewClaimExtractorWithSegmenter creates a claim extractor with a custom
// sentence segmenter
func NewClaimExtractorWithSegmenter(seg Segmenter) *ClaimExtractor {
	return &ClaimExtractor{segmenter: seg}
}

// Extract returns up to 8 claims in order of appearance. A sentence
// qualifies when it is longer than 40 characters, has at least 5 words, and
// carries a factual marker: a digit, or a capitalized word past the first
// (a proxy for an embedded proper noun).
func (e *ClaimExtractor) Extract(text string) []model.Claim {
	var claims []model.Claim

	for _, sentence := range e.segmenter.Sentences(text) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= minClaimLength {
			continue
		}

		words := strings.Fields(sentence)
		if len(words) < minClaimWords {
			continue
		}

		if !hasDigit(sentence) && !hasEmbeddedCapital(words) {
			continue
		}

		claims = append(claims, model.Claim{
			ID:   len(claims),
			Text: sentence,
		})
		if len(claims) == maxClaims {
			break
		}
	}

	return claims
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// hasEmbeddedCapital reports whether any word past the first starts with an
// uppercase letter. The first word is excluded: ordinary sentence
// capitalization is not a factual marker.
func hasEmbeddedCapital(words []string) bool {
	for _, word := range words[1:] {
		r := []rune(word)[0]
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
