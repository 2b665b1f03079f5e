package origin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/infolens/infolens/internal/model"
)

type stubSearcher struct {
	urls []string
	err  error
}

func (s *stubSearcher) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	return s.urls, s.err
}

var fixedTime = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedTime }

func TestDetect_SourceURLWins(t *testing.T) {
	tests := []struct {
		name       string
		sourceURL  string
		wantSource string
		wantRole   model.Role
	}{
		{
			name:       "plain news site",
			sourceURL:  "https://reuters.com/world/story",
			wantSource: "reuters.com",
			wantRole:   model.RolePrimaryPublisher,
		},
		{
			name:       "www prefix stripped",
			sourceURL:  "https://www.bbc.com/news/article",
			wantSource: "bbc.com",
			wantRole:   model.RolePrimaryPublisher,
		},
		{
			name:       "x.com post becomes handle",
			sourceURL:  "https://x.com/janedoe/status/123456",
			wantSource: "@janedoe on X",
			wantRole:   model.RoleContentOriginator,
		},
		{
			name:       "twitter.com post becomes handle",
			sourceURL:  "https://twitter.com/newsbot/status/987",
			wantSource: "@newsbot on X",
			wantRole:   model.RoleContentOriginator,
		},
	}

	d := NewDetectorWithClock(&stubSearcher{err: errors.New("should not be called")}, fixedClock)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origin := d.Detect(context.Background(), "some text", nil, tt.sourceURL)

			if origin.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", origin.Source, tt.wantSource)
			}
			if origin.Role != tt.wantRole {
				t.Errorf("Role = %q, want %q", origin.Role, tt.wantRole)
			}
			if origin.URL != tt.sourceURL {
				t.Errorf("URL = %q, want %q", origin.URL, tt.sourceURL)
			}
			if !origin.Timestamp.Equal(fixedTime) {
				t.Errorf("Timestamp = %v, want clock time %v", origin.Timestamp, fixedTime)
			}
		})
	}
}

func TestDetect_NoClaims(t *testing.T) {
	d := NewDetectorWithClock(&stubSearcher{}, fixedClock)

	origin := d.Detect(context.Background(), "short text", nil, "")

	if origin.Source != model.SourceUnknown {
		t.Errorf("Source = %q, want %q", origin.Source, model.SourceUnknown)
	}
	if origin.URL != model.NoURL {
		t.Errorf("URL = %q, want %q", origin.URL, model.NoURL)
	}
	if origin.Role != model.RolePrimaryPublisher {
		t.Errorf("Role = %q, want %q", origin.Role, model.RolePrimaryPublisher)
	}
}

func TestDetect_SearchHitBackdates(t *testing.T) {
	searcher := &stubSearcher{urls: []string{
		"https://apnews.com/article/first-report",
		"https://example.org/copy",
	}}
	d := NewDetectorWithClock(searcher, fixedClock)

	claims := []model.Claim{{ID: 0, Text: "The reactor outage in Helsinki lasted 14 hours according to officials."}}
	origin := d.Detect(context.Background(), "article body", claims, "")

	if origin.Source != "apnews.com" {
		t.Errorf("Source = %q, want apnews.com", origin.Source)
	}
	if origin.URL != "https://apnews.com/article/first-report" {
		t.Errorf("URL = %q", origin.URL)
	}
	want := fixedTime.Add(-2 * time.Hour)
	if !origin.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want backdated %v", origin.Timestamp, want)
	}
}

func TestDetect_SearchFailureFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		searcher *stubSearcher
	}{
		{"search error", &stubSearcher{err: errors.New("network down")}},
		{"no results", &stubSearcher{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDetectorWithClock(tt.searcher, fixedClock)

			claims := []model.Claim{{ID: 0, Text: "The reactor outage in Helsinki lasted 14 hours according to officials."}}
			origin := d.Detect(context.Background(), "article body", claims, "")

			if origin.Source != model.SourceIndependentAnalysis {
				t.Errorf("Source = %q, want %q", origin.Source, model.SourceIndependentAnalysis)
			}
			if origin.URL != model.NoURL {
				t.Errorf("URL = %q, want %q", origin.URL, model.NoURL)
			}
			if !origin.Timestamp.Equal(fixedTime) {
				t.Errorf("Timestamp = %v, want %v", origin.Timestamp, fixedTime)
			}
		})
	}
}

func TestHandleOf(t *testing.T) {
	tests := []struct {
		rawURL string
		want   string
	}{
		{"https://x.com/janedoe/status/123", "janedoe"},
		{"https://x.com/", "Unknown User"},
		{"://bad url", "Unknown User"},
	}

	for _, tt := range tests {
		if got := handleOf(tt.rawURL); got != tt.want {
			t.Errorf("handleOf(%q) = %q, want %q", tt.rawURL, got, tt.want)
		}
	}
}
