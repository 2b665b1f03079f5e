package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/infolens/infolens/internal/model"
)

func mustParse(t *testing.T, page string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func testExtractor() *TextExtractor {
	return NewTextExtractor(model.HTTPConfig{
		Timeout:      2 * time.Second,
		UserAgent:    "test-agent",
		MaxBodyBytes: 1 << 20,
		// No robots checking against httptest servers
		RespectRobots: false,
	})
}

func TestExtractText_Paragraphs(t *testing.T) {
	page := `<html><body>
		<p>The first paragraph carries the opening statement of the article.</p>
		<p>A second paragraph continues with further detail about the event.</p>
		<p><script>var x = 1;</script>Visible text around an inline script survives.</p>
	</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Write([]byte(page))
	}))
	defer srv.Close()

	text := testExtractor().ExtractText(context.Background(), srv.URL)

	if !strings.Contains(text, "opening statement of the article") {
		t.Errorf("missing first paragraph: %q", text)
	}
	if !strings.Contains(text, "further detail about the event") {
		t.Errorf("missing second paragraph: %q", text)
	}
	if strings.Contains(text, "var x") {
		t.Errorf("script content leaked into text: %q", text)
	}
	if !strings.Contains(text, "inline script survives") {
		t.Errorf("text around script dropped: %q", text)
	}
}

func TestExtractText_MetaFallback(t *testing.T) {
	page := `<html><head>
		<meta property="og:title" content="Breaking story">
		<meta property="og:description" content="A short description of the post.">
	</head><body><p>tiny</p></body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	text := testExtractor().ExtractText(context.Background(), srv.URL)

	want := "Breaking story. A short description of the post."
	if text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}

func TestExtractText_EmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body></body></html>"))
	}))
	defer srv.Close()

	if text := testExtractor().ExtractText(context.Background(), srv.URL); text != "" {
		t.Errorf("expected empty text for empty page, got %q", text)
	}
}

func TestExtractText_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if text := testExtractor().ExtractText(context.Background(), srv.URL); text != "" {
		t.Errorf("expected empty text on fetch failure, got %q", text)
	}
}

func TestURLContext(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
		want   string
	}{
		{
			name:   "x.com post",
			rawURL: "https://x.com/janedoe/status/123",
			want: "Social media post by user @janedoe on x.com. " +
				"Forensic analysis restricted due to platform anti-scraping measures.",
		},
		{
			name:   "twitter.com with www",
			rawURL: "https://www.twitter.com/newsbot/status/9",
			want: "Social media post by user @newsbot on twitter.com. " +
				"Forensic analysis restricted due to platform anti-scraping measures.",
		},
		{
			name:   "plain site yields nothing",
			rawURL: "https://example.com/article",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := urlContext(tt.rawURL); got != tt.want {
				t.Errorf("urlContext(%q) = %q, want %q", tt.rawURL, got, tt.want)
			}
		})
	}
}

func TestMetaText(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{
			name: "title and description",
			page: `<html><head><meta property="og:title" content="Title here"><meta property="og:description" content="Description here."></head></html>`,
			want: "Title here. Description here.",
		},
		{
			name: "title only",
			page: `<html><head><meta property="og:title" content="Title here"></head></html>`,
			want: "Title here",
		},
		{
			name: "neither",
			page: `<html><head></head></html>`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.page)
			if got := metaText(doc); got != tt.want {
				t.Errorf("metaText = %q, want %q", got, tt.want)
			}
		})
	}
}
