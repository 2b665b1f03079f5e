// Package pipeline orchestrates the full forensic analysis: text
// extraction, claim and entity extraction, claim verification, origin
// detection, propagation-graph synthesis, and credibility scoring.
package pipeline

import (
	"context"
	"errors"

	"github.com/infolens/infolens/internal/cache"
	"github.com/infolens/infolens/internal/evidence"
	"github.com/infolens/infolens/internal/extract"
	"github.com/infolens/infolens/internal/model"
	"github.com/infolens/infolens/internal/origin"
	"github.com/infolens/infolens/internal/propagation"
	"github.com/infolens/infolens/internal/score"
	"github.com/infolens/infolens/internal/verify"
)

// Input validation errors, surfaced to the caller before any analysis runs.
// Everything past this point degrades gracefully instead of failing.
var (
	ErrNoInput      = errors.New("exactly one of url or text must be provided")
	ErrEmptyContent = errors.New("failed to extract article text")
)

// Pipeline runs the complete analysis. Stateless across runs: components
// are pure functions of their inputs plus the evidence providers.
type Pipeline struct {
	extractor *TextExtractor
	claims    *extract.ClaimExtractor
	entities  *extract.EntityExtractor
	verifier  *verify.Verifier
	origin    *origin.Detector
	graph     *propagation.Builder
	scorer    *score.Scorer
}

// New creates a pipeline with production evidence providers built from the
// configuration
func New(cfg *model.Config) *Pipeline {
	var evidenceCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			evidenceCache = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.KnowledgeBase.CacheTTL)
		} else {
			evidenceCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
		}
	}

	searcher := evidence.NewSearchClient(cfg.Search, cfg.HTTP, evidenceCache, cfg.Cache.TTL)
	kb := evidence.NewWikipediaClient(cfg.KnowledgeBase, cfg.HTTP, evidenceCache)

	return NewWithProviders(cfg, kb, searcher)
}

// NewWithProviders creates a pipeline with explicit evidence providers.
// Tests inject fakes here.
func NewWithProviders(cfg *model.Config, kb evidence.KnowledgeBase, searcher evidence.Searcher) *Pipeline {
	return &Pipeline{
		extractor: NewTextExtractor(cfg.HTTP),
		claims:    extract.NewClaimExtractor(),
		entities:  extract.NewEntityExtractor(),
		verifier:  verify.NewVerifier(kb, searcher, cfg.Concurrency.VerifyWorkers),
		origin:    origin.NewDetector(searcher),
		graph:     propagation.NewBuilder(searcher),
		scorer:    score.NewScorer(),
	}
}

// Analyze runs the full pipeline over a URL or a raw text. Exactly one of
// the two must be non-empty.
func (p *Pipeline) Analyze(ctx context.Context, sourceURL, text string) (*model.Report, error) {
	if (sourceURL == "") == (text == "") {
		return nil, ErrNoInput
	}

	articleText := text
	if sourceURL != "" {
		articleText = p.extractor.ExtractText(ctx, sourceURL)
	}
	if articleText == "" {
		return nil, ErrEmptyContent
	}

	claims := p.claims.Extract(articleText)
	entities := p.entities.Extract(articleText)

	verified := p.verifier.VerifyAll(ctx, claims)

	earliest := p.origin.Detect(ctx, articleText, claims, sourceURL)
	graph := p.graph.Build(ctx, earliest, articleText)

	result := p.scorer.Calculate(verified, earliest, graph)

	if entities == nil {
		entities = []model.Entity{}
	}

	return &model.Report{
		ArticleText:      articleText,
		Claims:           verified,
		Entities:         entities,
		EarliestSource:   earliest,
		PropagationGraph: graph,
		CredibilityScore: result.Score,
		ForensicNotes:    result.Notes,
	}, nil
}
