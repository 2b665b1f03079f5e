package extract

import "strings"

// Segmenter splits raw text into sentences. The default implementation is an
// ASCII punctuation heuristic; callers needing locale-aware segmentation can
// swap in their own without touching the downstream extractors.
type Segmenter interface {
	Sentences(text string) []string
}

// SentenceSegmenter splits on '.', '!', '?' followed by whitespace
type SentenceSegmenter struct{}

// NewSentenceSegmenter creates the default sentence segmenter
func NewSentenceSegmenter() *SentenceSegmenter {
	return &SentenceSegmenter{}
}

// Sentences splits text at sentence terminators. The terminator stays with
// its sentence; trailing text without a terminator is returned as a final
// segment.
func (s *SentenceSegmenter) Sentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])

		if isTerminator(runes[i]) && i+1 < len(runes) && isSpace(runes[i+1]) {
			sentences = append(sentences, current.String())
			current.Reset()
			// Consume the whitespace run between sentences
			for i+1 < len(runes) && isSpace(runes[i+1]) {
				i++
			}
		}
	}

	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}

	return sentences
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
