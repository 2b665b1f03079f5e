// Package origin infers the earliest/primary source of a piece of content.
package origin

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/infolens/infolens/internal/evidence"
	"github.com/infolens/infolens/internal/model"
)

const (
	originSearchResults = 5

	// A source discovered by searching the first claim likely predates
	// the analyzed copy
	searchBackdate = 2 * time.Hour
)

// Detector infers where content was first published
type Detector struct {
	search evidence.Searcher
	now    func() time.Time
}

// NewDetector creates an origin detector
func NewDetector(search evidence.Searcher) *Detector {
	return &Detector{
		search: search,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// NewDetectorWithClock creates a detector with an injected clock
func NewDetectorWithClock(search evidence.Searcher, now func() time.Time) *Detector {
	return &Detector{search: search, now: now}
}

// Detect returns the inferred origin. A supplied source URL wins outright;
// otherwise the first claim is searched for an earlier mention; with
// nothing to go on, the analysis itself is reported as the origin.
func (d *Detector) Detect(ctx context.Context, text string, claims []model.Claim, sourceURL string) model.Origin {
	if sourceURL != "" {
		return d.fromURL(sourceURL)
	}

	if len(claims) == 0 {
		return model.Origin{
			Source:    model.SourceUnknown,
			Timestamp: d.now(),
			Role:      model.RolePrimaryPublisher,
			URL:       model.NoURL,
		}
	}

	results, err := d.search.Search(ctx, claims[0].Text, originSearchResults)
	if err == nil && len(results) > 0 {
		if domain := hostOf(results[0]); domain != "" {
			return model.Origin{
				Source:    domain,
				Timestamp: d.now().Add(-searchBackdate),
				Role:      model.RolePrimaryPublisher,
				URL:       results[0],
			}
		}
	}

	return model.Origin{
		Source:    model.SourceIndependentAnalysis,
		Timestamp: d.now(),
		Role:      model.RolePrimaryPublisher,
		URL:       model.NoURL,
	}
}

// fromURL derives the origin directly from the supplied URL, with special
// handling for X/Twitter post URLs
func (d *Detector) fromURL(sourceURL string) model.Origin {
	domain := strings.TrimPrefix(hostOf(sourceURL), "www.")

	if strings.Contains(domain, "x.com") || strings.Contains(domain, "twitter.com") {
		return model.Origin{
			Source:    fmt.Sprintf("@%s on X", handleOf(sourceURL)),
			Timestamp: d.now(),
			Role:      model.RoleContentOriginator,
			URL:       sourceURL,
		}
	}

	source := domain
	if source == "" {
		source = model.SourceDirectInput
	}

	return model.Origin{
		Source:    source,
		Timestamp: d.now(),
		Role:      model.RolePrimaryPublisher,
		URL:       sourceURL,
	}
}

// handleOf extracts the user handle (first path segment) from a social post URL
func handleOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "Unknown User"
	}
	for _, part := range strings.Split(parsed.Path, "/") {
		if part != "" {
			return part
		}
	}
	return "Unknown User"
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}
