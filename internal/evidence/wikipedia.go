package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/infolens/infolens/internal/cache"
	"github.com/infolens/infolens/internal/model"
)

// WikipediaClient looks up terms against the Wikipedia REST summary API
type WikipediaClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewWikipediaClient creates a knowledge-base client backed by Wikipedia.
// entryCache may be nil to disable caching.
func NewWikipediaClient(cfg model.KBConfig, httpCfg model.HTTPConfig, entryCache cache.Cache) *WikipediaClient {
	return &WikipediaClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
		},
		userAgent: httpCfg.UserAgent,
		cache:     entryCache,
		cacheTTL:  cfg.CacheTTL,
	}
}

// summaryResponse mirrors the fields we need from the REST summary payload
type summaryResponse struct {
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Lookup returns the summary entry for a term, (nil, nil) when no article
// exists, or ErrUnavailable when the API cannot be reached
func (c *WikipediaClient) Lookup(ctx context.Context, term string) (*Entry, error) {
	cacheKey := cache.Key("kb:" + term)
	if c.cache != nil {
		if data, found := c.cache.Get(cacheKey); found {
			var entry Entry
			if err := json.Unmarshal(data, &entry); err == nil {
				return &entry, nil
			}
		}
	}

	title := strings.ReplaceAll(term, " ", "_")
	reqURL := c.baseURL + "/page/summary/" + url.PathEscape(title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	var summary summaryResponse
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("%w: decode summary: %v", ErrUnavailable, err)
	}
	if summary.Extract == "" {
		return nil, nil
	}

	entry := &Entry{
		Summary: summary.Extract,
		URL:     summary.ContentURLs.Desktop.Page,
	}

	if c.cache != nil {
		if data, err := json.Marshal(entry); err == nil {
			_ = c.cache.Set(cacheKey, data, c.cacheTTL)
		}
	}

	return entry, nil
}
