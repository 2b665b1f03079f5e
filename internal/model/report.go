package model

import "time"

// Report is the complete forensic analysis of one piece of content.
// This is the shape returned by the API and persisted to history.
type Report struct {
	ArticleText      string           `json:"article_text"`
	Claims           []VerifiedClaim  `json:"claims"`
	Entities         []Entity         `json:"entities"`
	EarliestSource   Origin           `json:"earliest_source"`
	PropagationGraph PropagationGraph `json:"propagation_graph"`
	CredibilityScore float64          `json:"credibility_score"`
	ForensicNotes    string           `json:"forensic_notes"`
}

// ScoreResult is the scorer's output: a clamped [0.05, 0.99] score plus
// human-readable notes explaining the contributing factors.
type ScoreResult struct {
	Score float64 `json:"score"`
	Notes string  `json:"notes"`
}

// Record is a persisted analysis, as stored in the history database
type Record struct {
	ID               string    `json:"id"`
	URL              string    `json:"url,omitempty"`
	ArticleText      string    `json:"article_text"`
	CredibilityScore float64   `json:"credibility_score"`
	ForensicNotes    string    `json:"forensic_notes"`
	CreatedAt        time.Time `json:"created_at"`
}
