// Package store provides SQLite persistence for analysis records.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/infolens/infolens/internal/model"
)

// Store persists completed analyses. Safe for concurrent use; the analysis
// pipeline has no read dependency on it.
type Store struct {
	db *sql.DB
}

// Open creates a store backed by the SQLite database at path, creating the
// schema if needed
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analysis_records (
		id TEXT PRIMARY KEY,
		url TEXT,
		article_text TEXT NOT NULL,
		credibility_score REAL NOT NULL,
		claims TEXT NOT NULL,
		entities TEXT NOT NULL,
		earliest_source TEXT NOT NULL,
		propagation_graph TEXT NOT NULL,
		forensic_notes TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_created ON analysis_records(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveReport persists a completed analysis and returns the record id
func (s *Store) SaveReport(report *model.Report, sourceURL string) (string, error) {
	claims, err := json.Marshal(report.Claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}
	entities, err := json.Marshal(report.Entities)
	if err != nil {
		return "", fmt.Errorf("marshal entities: %w", err)
	}
	earliest, err := json.Marshal(report.EarliestSource)
	if err != nil {
		return "", fmt.Errorf("marshal origin: %w", err)
	}
	graph, err := json.Marshal(report.PropagationGraph)
	if err != nil {
		return "", fmt.Errorf("marshal graph: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(`
		INSERT INTO analysis_records
			(id, url, article_text, credibility_score, claims, entities, earliest_source, propagation_graph, forensic_notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		sourceURL,
		report.ArticleText,
		report.CredibilityScore,
		string(claims),
		string(entities),
		string(earliest),
		string(graph),
		report.ForensicNotes,
		time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert record: %w", err)
	}

	return id, nil
}

// Recent returns the most recent analysis records, newest first
func (s *Store) Recent(limit int) ([]model.Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, url, article_text, credibility_score, forensic_notes, created_at
		FROM analysis_records
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []model.Record{}
	for rows.Next() {
		var rec model.Record
		var url sql.NullString
		if err := rows.Scan(&rec.ID, &url, &rec.ArticleText, &rec.CredibilityScore, &rec.ForensicNotes, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.URL = url.String
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
