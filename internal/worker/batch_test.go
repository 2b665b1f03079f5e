package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/infolens/infolens/internal/model"
)

// stubAnalyzer records analyzed URLs and fails those listed in failures
type stubAnalyzer struct {
	failures map[string]bool
}

func (a *stubAnalyzer) Analyze(ctx context.Context, sourceURL, text string) (*model.Report, error) {
	if a.failures[sourceURL] {
		return nil, errors.New("analysis failed")
	}
	return &model.Report{ArticleText: "content from " + sourceURL}, nil
}

func TestBatchProcessor_ProcessURLs(t *testing.T) {
	b := NewBatchProcessor(&stubAnalyzer{}, 3)

	urls := []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}

	results := b.ProcessURLs(context.Background(), urls)

	if len(results) != len(urls) {
		t.Fatalf("expected %d results, got %d", len(urls), len(results))
	}

	var got []string
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("unexpected error for %s: %v", r.URL, r.Error)
		}
		if r.Report == nil {
			t.Errorf("missing report for %s", r.URL)
		}
		got = append(got, r.URL)
	}

	// Completion order is not submission order; compare as sets
	sort.Strings(got)
	for i, url := range urls {
		if got[i] != url {
			t.Errorf("result URLs = %v, want %v", got, urls)
			break
		}
	}
}

func TestBatchProcessor_PartialFailure(t *testing.T) {
	b := NewBatchProcessor(&stubAnalyzer{
		failures: map[string]bool{"https://example.com/bad": true},
	}, 2)

	results := b.ProcessURLs(context.Background(), []string{
		"https://example.com/good",
		"https://example.com/bad",
	})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
			if r.URL != "https://example.com/bad" {
				t.Errorf("wrong URL failed: %s", r.URL)
			}
		}
	}
	if failures != 1 {
		t.Errorf("expected 1 failure, got %d", failures)
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	b := NewBatchProcessor(&stubAnalyzer{}, 2)

	results := b.ProcessURLs(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadURLsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := `https://example.com/a

# a comment
  https://example.com/b
https://example.com/c
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := ReadURLsFromFile(path)
	if err != nil {
		t.Fatalf("ReadURLsFromFile: %v", err)
	}

	want := []string{
		"https://example.com/a",
		"https://example.com/b",
		"https://example.com/c",
	}
	if len(urls) != len(want) {
		t.Fatalf("expected %d urls, got %d: %v", len(want), len(urls), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("url %d = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestReadURLsFromFile_Missing(t *testing.T) {
	if _, err := ReadURLsFromFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte("https://example.com/a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewBatchProcessor(&stubAnalyzer{}, 1)
	results, err := b.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].URL != "https://example.com/a" {
		t.Errorf("URL = %q", results[0].URL)
	}
}
