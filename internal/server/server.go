// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the topic wizard over HTTP. Request and
// response bodies are flat JSON; failures inside generation paths
// degrade to fallback content instead of error responses.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/pdiddy/topic-wizard/internal/content"
	"github.com/pdiddy/topic-wizard/internal/nlp"
	"github.com/pdiddy/topic-wizard/internal/papers"
	"github.com/pdiddy/topic-wizard/internal/webx"
	"github.com/pdiddy/topic-wizard/internal/wizard"
	"github.com/pdiddy/topic-wizard/pkg/types"
)

// Deps carries the services the handlers use.
type Deps struct {
	Papers    *papers.Store
	Backends  []papers.Backend
	SearchCfg types.SearchConfig
	Generator *content.Generator
	Sessions  *wizard.Store
	Extractor *webx.Extractor
	NLP       *nlp.Processor
	Log       *zap.Logger
}

// Server is the HTTP front of the wizard.
type Server struct {
	cfg  types.ServerConfig
	deps Deps
	http *http.Server
}

// New builds a Server with its routes mounted.
func New(cfg types.ServerConfig, deps Deps) *Server {
	s := &Server{cfg: cfg, deps: deps}
	s.http = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router assembles the chi router. Exposed so tests can drive handlers
// without a listening socket.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze_topic", s.handleAnalyzeTopic)
		r.Post("/search_papers", s.handleSearchPapers)
		r.Get("/internal_papers", s.handleInternalPapers)
		r.Get("/external_papers", s.handleExternalPapers)
		r.Post("/generate_paper_content", s.handleGeneratePaperContent)
		r.Post("/generate_niche_content", s.handleGenerateNicheContent)
		r.Post("/generate_pdf", s.handleGeneratePDF)
		r.Post("/extract_url", s.handleExtractURL)
		r.Post("/web_search", s.handleWebSearch)
		r.Post("/summarize", s.handleSummarize)

		r.Route("/wizard/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)
			r.Get("/{id}", s.handleGetSession)
			r.Post("/{id}/next", s.handleSessionNext)
			r.Post("/{id}/back", s.handleSessionBack)
		})
	})

	return r
}

// Start serves until the context is cancelled, then shuts down.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.deps.Log.Info("server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError mirrors the shape clients already parse: a detail string
// under HTTP 500.
func writeError(w http.ResponseWriter, action string, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"detail": fmt.Sprintf("%s 중 오류가 발생했습니다: %v", action, err),
	})
}

func readJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}
