// Package score combines claim verification, source reputation, and
// dissemination structure into a single credibility score.
package score

import (
	"crypto/md5"
	"fmt"
	"math"
	"strings"

	"github.com/infolens/infolens/internal/model"
)

// Component weights
const (
	claimWeight      = 0.5
	reputationWeight = 0.3
	networkWeight    = 0.2
)

const (
	// Claim score used when no claims were extracted
	noClaimsScore = 0.4

	// Reputation values
	trustedReputation = 0.95
	defaultReputation = 0.45
	socialReputation  = 0.55

	// Network score when the graph degenerates to a single domain
	isolatedNetworkScore = 0.3

	scoreFloor   = 0.05
	scoreCeiling = 0.99
)

// trustedDomains rate a high source reputation when they appear in the
// origin's source string
var trustedDomains = []string{
	"reuters.com", "apnews.com", "bbc.com", "nytimes.com",
	"theguardian.com", "wsj.com", "bloomberg.com", "nasa.gov",
	"wikipedia.org",
}

// Scorer computes the weighted credibility score
type Scorer struct{}

// NewScorer creates a scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate combines the three signals into a final clamped score with
// human-readable notes
func (s *Scorer) Calculate(claims []model.VerifiedClaim, origin model.Origin, graph model.PropagationGraph) model.ScoreResult {
	claimScore := s.claimScore(claims)
	reputation := s.sourceReputation(origin)
	uniqueDomains := graph.UniqueNodeCount()
	networkScore := s.networkScore(graph, uniqueDomains)

	final := claimScore*claimWeight + reputation*reputationWeight + networkScore*networkWeight

	// Tie-break nudge so near-identical inputs with different sources do
	// not render as the same percentage. Keyed on the source string only:
	// two articles from the same source share the nudge.
	final += float64(sourceHash(origin.Source)) / 2000.0

	final = math.Min(scoreCeiling, math.Max(scoreFloor, final))
	final = math.Round(final*100) / 100

	notes := fmt.Sprintf(
		"Forensic Confidence: %.0f%%. Claim validation score: %.2f. "+
			"Source reliability rated at %.2f for '%s'. "+
			"Dissemination map shows %d distinct nodes across the network.",
		final*100, claimScore, reputation, origin.Source, uniqueDomains)

	return model.ScoreResult{
		Score: final,
		Notes: notes,
	}
}

// claimScore averages per-claim confidence and adjusts for the stance mix
func (s *Scorer) claimScore(claims []model.VerifiedClaim) float64 {
	if len(claims) == 0 {
		return noClaimsScore
	}

	var confidenceSum float64
	supporting := 0
	contradicting := 0
	for _, claim := range claims {
		confidenceSum += claim.Verification.Confidence
		switch claim.Verification.NLILabel {
		case model.StanceEntailment:
			supporting++
		case model.StanceContradiction:
			contradicting++
		}
	}

	total := float64(len(claims))
	avgConfidence := confidenceSum / total
	supportRatio := float64(supporting) / total
	contradictRatio := float64(contradicting) / total

	score := avgConfidence*0.6 + supportRatio*0.4 - contradictRatio*0.3
	return math.Min(1.0, math.Max(0.1, score))
}

// sourceReputation rates the origin's source string. The social-platform
// penalty takes precedence over the trusted-domain check.
func (s *Scorer) sourceReputation(origin model.Origin) float64 {
	lower := strings.ToLower(origin.Source)

	reputation := defaultReputation
	for _, domain := range trustedDomains {
		if strings.Contains(lower, domain) {
			reputation = trustedReputation
			break
		}
	}

	if strings.Contains(origin.Source, "@") || strings.Contains(lower, "x.com") {
		reputation = socialReputation
	}

	return reputation
}

// networkScore rewards diverse reporting and penalizes lack of spread
func (s *Scorer) networkScore(graph model.PropagationGraph, uniqueDomains int) float64 {
	if uniqueDomains <= 1 {
		return isolatedNetworkScore
	}

	reporters := graph.CountRole(model.RoleSecondaryReporter)
	return math.Min(1.0, float64(uniqueDomains)*0.15+float64(reporters)*0.1)
}

// sourceHash reduces the md5 of the source string modulo 100, giving a
// stable value in [0, 100)
func sourceHash(source string) int {
	digest := md5.Sum([]byte(source))
	value := 0
	for _, b := range digest {
		value = (value*256 + int(b)) % 100
	}
	return value
}
