// Package server exposes the forensic analysis pipeline over HTTP.
package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/infolens/infolens/internal/model"
	"github.com/infolens/infolens/internal/pipeline"
	"github.com/infolens/infolens/internal/store"
)

// Server wires the pipeline and the history store into HTTP handlers
type Server struct {
	pipeline *pipeline.Pipeline
	store    *store.Store // nil disables persistence
	cfg      *model.Config
}

// New creates a server. st may be nil to run without history persistence.
func New(p *pipeline.Pipeline, st *store.Store, cfg *model.Config) *Server {
	return &Server{
		pipeline: p,
		store:    st,
		cfg:      cfg,
	}
}

// SetupRouter builds the gin engine with all routes registered
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware(s.cfg.Server.AllowedOrigins))

	api := r.Group("/api/forensics")
	api.POST("/analyze", s.Analyze)
	api.GET("/history", s.History)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// AnalyzeRequest is the analysis request body. Exactly one of URL or Text
// must be set.
type AnalyzeRequest struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Analyze runs the full forensic pipeline for one request
func (s *Server) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	report, err := s.pipeline.Analyze(c.Request.Context(), req.URL, req.Text)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoInput) || errors.Is(err, pipeline.ErrEmptyContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	if s.store != nil {
		if _, err := s.store.SaveReport(report, req.URL); err != nil {
			// Persistence is best-effort; the analysis still succeeded
			log.Printf("save report: %v", err)
		}
	}

	c.JSON(http.StatusOK, report)
}

// History returns the most recent persisted analyses
func (s *Server) History(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusOK, []model.Record{})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := s.store.Recent(limit)
	if err != nil {
		log.Printf("list history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// corsMiddleware allows the configured origins; "*" allows any
func corsMiddleware(allowed []string) gin.HandlerFunc {
	allowAll := false
	allowedSet := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			allowAll = true
		}
		allowedSet[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Header("Access-Control-Allow-Origin", "*")
		} else if origin != "" && allowedSet[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
