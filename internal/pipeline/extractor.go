package pipeline

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/infolens/infolens/internal/model"
	"github.com/infolens/infolens/internal/util"
	"github.com/infolens/infolens/internal/worker"
)

// minArticleLength is the threshold below which extracted body text is
// considered noise and the meta-tag fallback kicks in
const minArticleLength = 50

// TextExtractor fetches a URL and pulls clean article text out of it.
// Best-effort: news pages go through paragraph extraction, social pages
// through og: meta tags, and as a last resort the URL itself yields a
// context string.
type TextExtractor struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker // nil when robots.txt checking is disabled
	limiter    *worker.Limiter
}

// NewTextExtractor creates a text extractor from HTTP configuration
func NewTextExtractor(cfg model.HTTPConfig) *TextExtractor {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	var robots *util.RobotsChecker
	if cfg.RespectRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}

	return &TextExtractor{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    robots,
		limiter:   worker.NewLimiter(1, 3),
	}
}

// ExtractText returns clean article text for the URL, or "" when nothing
// usable could be extracted
func (e *TextExtractor) ExtractText(ctx context.Context, rawURL string) string {
	if e.robots != nil {
		allowed, _, err := e.robots.CanFetch(ctx, rawURL)
		if err == nil && !allowed {
			return urlContext(rawURL)
		}
	}

	if err := e.limiter.Wait(ctx, rawURL); err != nil {
		return urlContext(rawURL)
	}

	doc, err := e.fetch(ctx, rawURL)
	if err != nil {
		return urlContext(rawURL)
	}

	// Paragraph text works for article pages
	if text := paragraphText(doc); len(text) > minArticleLength {
		return text
	}

	// Social pages hide the post behind meta tags
	if text := metaText(doc); text != "" {
		return text
	}

	return urlContext(rawURL)
}

func (e *TextExtractor) fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, e.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// paragraphText joins the visible text of all paragraph elements
func paragraphText(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if len(sel.Nodes) == 0 {
			return
		}
		if text := strings.TrimSpace(visibleText(sel.Nodes[0])); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.TrimSpace(strings.Join(parts, " "))
}

// visibleText collects text nodes, skipping script-like subtrees
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

// metaText builds article text from og:title and og:description. For
// X/Twitter the description usually carries the post text itself.
func metaText(doc *goquery.Document) string {
	title, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
	desc, _ := doc.Find(`meta[property="og:description"]`).Attr("content")

	if title == "" && desc == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimSuffix(title+". "+desc, ". "))
}

// urlContext derives a last-resort context string from the URL alone
func urlContext(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	domain := strings.TrimPrefix(parsed.Host, "www.")
	if strings.Contains(domain, "x.com") || strings.Contains(domain, "twitter.com") {
		user := "Unknown"
		for _, part := range strings.Split(parsed.Path, "/") {
			if part != "" {
				user = part
				break
			}
		}
		return fmt.Sprintf("Social media post by user @%s on %s. "+
			"Forensic analysis restricted due to platform anti-scraping measures.", user, domain)
	}

	return ""
}
