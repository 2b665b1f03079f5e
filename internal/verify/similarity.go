package verify

import (
	"math"
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\w+`)

// termFrequency builds a case-insensitive term count for a string
func termFrequency(s string) map[string]int {
	tokens := tokenPattern.FindAllString(strings.ToLower(s), -1)
	freq := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		freq[tok]++
	}
	return freq
}

// CosineSimilarity computes the cosine of the term-frequency vectors of two
// strings over their shared vocabulary. Returns 0.0 when either string has
// no tokens. Symmetric in its arguments.
func CosineSimilarity(a, b string) float64 {
	freqA := termFrequency(a)
	freqB := termFrequency(b)

	if len(freqA) == 0 || len(freqB) == 0 {
		return 0.0
	}

	var dot float64
	for term, countA := range freqA {
		if countB, ok := freqB[term]; ok {
			dot += float64(countA) * float64(countB)
		}
	}
	if dot == 0 {
		return 0.0
	}

	return dot / (l2Norm(freqA) * l2Norm(freqB))
}

func l2Norm(freq map[string]int) float64 {
	var sum float64
	for _, count := range freq {
		sum += float64(count) * float64(count)
	}
	return math.Sqrt(sum)
}
