package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/infolens/infolens/internal/evidence"
	"github.com/infolens/infolens/internal/model"
	"github.com/infolens/infolens/internal/pipeline"
	"github.com/infolens/infolens/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeKB struct{}

func (fakeKB) Lookup(ctx context.Context, term string) (*evidence.Entry, error) {
	return nil, nil
}

type fakeSearcher struct{}

func (fakeSearcher) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	return []string{"https://apnews.com/story"}, nil
}

func testServer(t *testing.T, withStore bool) *Server {
	t.Helper()

	cfg := model.DefaultConfig()
	p := pipeline.NewWithProviders(cfg, fakeKB{}, fakeSearcher{})

	var st *store.Store
	if withStore {
		var err error
		st, err = store.Open(filepath.Join(t.TempDir(), "test.db"))
		if err != nil {
			t.Fatalf("store.Open: %v", err)
		}
		t.Cleanup(func() { st.Close() })
	}

	return New(p, st, cfg)
}

func postAnalyze(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/forensics/analyze", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyze_BadRequests(t *testing.T) {
	router := testServer(t, false).SetupRouter()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{not json"},
		{"neither url nor text", `{}`},
		{"both url and text", `{"url":"https://example.com","text":"some text"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postAnalyze(t, router, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestAnalyze_Text(t *testing.T) {
	router := testServer(t, false).SetupRouter()

	body := `{"text":"The European Space Agency confirmed that 12 satellites reached orbit successfully. Mission control in Darmstadt reported that all 12 units responded within 90 minutes."}`
	w := postAnalyze(t, router, body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var report model.Report
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.CredibilityScore < 0.05 || report.CredibilityScore > 0.99 {
		t.Errorf("credibility score %v outside range", report.CredibilityScore)
	}
	if len(report.Claims) == 0 {
		t.Error("expected extracted claims")
	}
	if report.ForensicNotes == "" {
		t.Error("expected forensic notes")
	}
	if report.Entities == nil {
		t.Error("entities must not be null in the response")
	}
}

func TestAnalyze_PersistsHistory(t *testing.T) {
	srv := testServer(t, true)
	router := srv.SetupRouter()

	body := `{"text":"Researchers at Stanford University published results covering 4000 participants across many regions."}`
	if w := postAnalyze(t, router, body); w.Code != http.StatusOK {
		t.Fatalf("analyze status = %d; body: %s", w.Code, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/forensics/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d", w.Code)
	}

	var records []model.Record
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if !strings.Contains(records[0].ArticleText, "Stanford University") {
		t.Errorf("record text = %q", records[0].ArticleText)
	}
}

func TestHistory_WithoutStore(t *testing.T) {
	router := testServer(t, false).SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/forensics/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("expected empty array, got %s", body)
	}
}

func TestHealthz(t *testing.T) {
	router := testServer(t, false).SetupRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Server.AllowedOrigins = []string{"https://app.example.com"}
	p := pipeline.NewWithProviders(cfg, fakeKB{}, fakeSearcher{})
	router := New(p, nil, cfg).SetupRouter()

	t.Run("allowed origin echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
			t.Errorf("Access-Control-Allow-Origin = %q", got)
		}
	})

	t.Run("unknown origin not echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %q, want unset", got)
		}
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/forensics/analyze", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("preflight status = %d, want 204", w.Code)
		}
	})
}
