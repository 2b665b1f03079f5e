package model

// Claim represents a candidate factual assertion extracted from the source text
type Claim struct {
	ID   int    `json:"id"`   // Ordinal, unique within a single analysis run
	Text string `json:"text"` // The claim text itself
}

// Entity represents a heuristically detected named reference
type Entity struct {
	Text  string  `json:"text"`
	Label string  `json:"label"` // Always "ENTITY" for the regex extractor
	Score float64 `json:"score"` // Fixed heuristic confidence, not calibrated
}

// EntityLabel is the fixed tag assigned by the regex extractor
const EntityLabel = "ENTITY"

// StanceLabel describes the relation between gathered evidence and a claim
type StanceLabel string

const (
	StanceEntailment    StanceLabel = "entailment"
	StanceContradiction StanceLabel = "contradiction"
	StanceNeutral       StanceLabel = "neutral"
)

// VerificationResult contains the outcome of cross-checking one claim
// against external evidence. Never mutated after creation.
type VerificationResult struct {
	BestMatchSource string      `json:"best_match_source"` // Winning snippet (truncated) or the no-evidence sentinel
	SimilarityScore float64     `json:"similarity_score"`  // Term-overlap cosine, [0,1]
	NLILabel        StanceLabel `json:"nli_label"`
	NLIScore        float64     `json:"nli_score"`  // Mirrors SimilarityScore
	Confidence      float64     `json:"confidence"` // SimilarityScore*0.7 + 0.3
}

// NoEvidenceSource is returned when no evidence could be gathered at all
const NoEvidenceSource = "No direct matches found in digital archives."

// VerifiedClaim pairs a claim with its verification outcome
type VerifiedClaim struct {
	Claim
	Verification VerificationResult `json:"verification"`
}
