package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/infolens/infolens/internal/model"
)

func tempStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport(text string, score float64) *model.Report {
	return &model.Report{
		ArticleText: text,
		Claims: []model.VerifiedClaim{{
			Claim: model.Claim{ID: 0, Text: "sample claim text"},
			Verification: model.VerificationResult{
				BestMatchSource: "evidence snippet",
				SimilarityScore: 0.6,
				NLILabel:        model.StanceEntailment,
				NLIScore:        0.6,
				Confidence:      0.72,
			},
		}},
		Entities: []model.Entity{{Text: "Helsinki", Label: model.EntityLabel, Score: 0.9}},
		EarliestSource: model.Origin{
			Source:    "reuters.com",
			Timestamp: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
			Role:      model.RolePrimaryPublisher,
			URL:       "https://reuters.com/story",
		},
		PropagationGraph: model.PropagationGraph{
			Nodes: []model.PropagationNode{{
				ID:        "reuters.com",
				Role:      model.RolePrimaryPublisher,
				Timestamp: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
			}},
		},
		CredibilityScore: score,
		ForensicNotes:    "Forensic Confidence: 80%.",
	}
}

func TestSaveAndRecent(t *testing.T) {
	s := tempStore(t)

	id, err := s.SaveReport(sampleReport("first article", 0.8), "https://reuters.com/story")
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	if id == "" {
		t.Fatal("expected a record id")
	}

	records, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.ID != id {
		t.Errorf("ID = %q, want %q", rec.ID, id)
	}
	if rec.URL != "https://reuters.com/story" {
		t.Errorf("URL = %q", rec.URL)
	}
	if rec.ArticleText != "first article" {
		t.Errorf("ArticleText = %q", rec.ArticleText)
	}
	if rec.CredibilityScore != 0.8 {
		t.Errorf("CredibilityScore = %v", rec.CredibilityScore)
	}
	if rec.ForensicNotes == "" {
		t.Error("ForensicNotes empty")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	s := tempStore(t)

	if _, err := s.SaveReport(sampleReport("older", 0.5), ""); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := s.SaveReport(sampleReport("newer", 0.7), ""); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	records, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ArticleText != "newer" {
		t.Errorf("expected newest first, got %q", records[0].ArticleText)
	}
}

func TestRecent_Limit(t *testing.T) {
	s := tempStore(t)

	for i := 0; i < 5; i++ {
		if _, err := s.SaveReport(sampleReport("article", 0.5), ""); err != nil {
			t.Fatalf("SaveReport: %v", err)
		}
	}

	records, err := s.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}

	// Non-positive limit falls back to the default
	records, err = s.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 5 {
		t.Errorf("expected all 5 records with default limit, got %d", len(records))
	}
}

func TestRecent_Empty(t *testing.T) {
	s := tempStore(t)

	records, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if records == nil {
		t.Error("expected empty slice, not nil")
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
