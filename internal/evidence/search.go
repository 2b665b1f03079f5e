package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/infolens/infolens/internal/cache"
	"github.com/infolens/infolens/internal/model"
)

// SearchClient queries the DuckDuckGo HTML endpoint and scrapes result
// links. Rate limited to stay polite; results are cached by query.
type SearchClient struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
	cache      cache.Cache
	cacheTTL   time.Duration
}

// NewSearchClient creates a search client. resultCache may be nil to
// disable caching.
func NewSearchClient(cfg model.SearchConfig, httpCfg model.HTTPConfig, resultCache cache.Cache, cacheTTL time.Duration) *SearchClient {
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &SearchClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
		},
		userAgent: httpCfg.UserAgent,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
		cache:     resultCache,
		cacheTTL:  cacheTTL,
	}
}

// Search returns up to maxResults result URLs in rank order. Provider
// failures return ErrUnavailable; an empty slice with nil error means the
// query genuinely had no hits.
func (c *SearchClient) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	if maxResults <= 0 {
		return nil, nil
	}

	cacheKey := cache.Key("search:" + query)
	if c.cache != nil {
		if data, found := c.cache.Get(cacheKey); found {
			var cached []string
			if err := json.Unmarshal(data, &cached); err == nil {
				if len(cached) > maxResults {
					cached = cached[:maxResults]
				}
				return cached, nil
			}
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait: %v", ErrUnavailable, err)
	}

	reqURL := c.baseURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse results: %v", ErrUnavailable, err)
	}

	var results []string
	doc.Find("a.result__a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		if resolved := resolveResultURL(href); resolved != "" {
			results = append(results, resolved)
		}
		return len(results) < maxResults
	})

	if c.cache != nil && len(results) > 0 {
		if data, err := json.Marshal(results); err == nil {
			_ = c.cache.Set(cacheKey, data, c.cacheTTL)
		}
	}

	return results, nil
}

// resolveResultURL unwraps DuckDuckGo's redirect links (the real target is
// carried in the uddg query parameter) and passes direct links through
func resolveResultURL(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	if target := parsed.Query().Get("uddg"); target != "" {
		if _, err := url.Parse(target); err == nil {
			return target
		}
		return ""
	}

	if parsed.Scheme == "http" || parsed.Scheme == "https" {
		return href
	}
	return ""
}
