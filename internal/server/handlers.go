// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pdiddy/topic-wizard/internal/cache"
	"github.com/pdiddy/topic-wizard/internal/clean"
	"github.com/pdiddy/topic-wizard/internal/keywords"
	"github.com/pdiddy/topic-wizard/internal/papers"
	"github.com/pdiddy/topic-wizard/internal/wizard"
	"github.com/pdiddy/topic-wizard/pkg/types"
)

type topicRequest struct {
	Topic    string   `json:"topic"`
	Keywords []string `json:"keywords"`
}

type paperContentRequest struct {
	Topic     string            `json:"topic"`
	PaperInfo types.PaperRecord `json:"paper_info"`
}

type nicheContentRequest struct {
	Topic      string `json:"topic"`
	NicheTopic string `json:"niche_topic"`
}

type sessionRequest struct {
	Topic string `json:"topic"`
}

// sessionUpdateRequest carries optional updates applied before a
// transition. Pointer fields distinguish absent from zero.
type sessionUpdateRequest struct {
	Topic         *string `json:"topic"`
	SelectedPaper *int    `json:"selected_paper"`
	SelectedNiche *int    `json:"selected_niche"`
}

type sessionResponse struct {
	wizard.Session
	Progress int `json:"progress"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "LittleScienceAI 도우미 API에 오신 것을 환영합니다!",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleAnalyzeTopic(w http.ResponseWriter, r *http.Request) {
	var req topicRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, "주제 분석", err)
		return
	}
	if req.Topic == "" {
		writeError(w, "주제 분석", errors.New("topic is required"))
		return
	}

	s.deps.Log.Info("analyzing topic", zap.String("topic", req.Topic))
	if len(req.Keywords) == 0 {
		req.Keywords = keywords.Extract(req.Topic, keywords.DefaultCount)
		s.deps.Log.Info("extracted keywords", zap.Strings("keywords", req.Keywords))
	}

	writeJSON(w, http.StatusOK, s.deps.Generator.AnalyzeTopic(req.Topic))
}

func (s *Server) handleSearchPapers(w http.ResponseWriter, r *http.Request) {
	var req topicRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, "논문 검색", err)
		return
	}
	if req.Topic == "" {
		writeError(w, "논문 검색", errors.New("topic is required"))
		return
	}

	s.deps.Log.Info("searching papers", zap.String("topic", req.Topic))
	if len(req.Keywords) == 0 {
		req.Keywords = keywords.Extract(req.Topic, keywords.DefaultCount)
		s.deps.Log.Info("extracted keywords", zap.Strings("keywords", req.Keywords))
	}

	internal := s.deps.Papers.Search(req.Topic, req.Keywords)
	external := papers.SearchExternal(r.Context(), s.deps.Backends, req.Topic, req.Keywords, s.deps.SearchCfg, s.deps.Log)
	s.deps.Log.Info("search finished",
		zap.Int("internal", len(internal)),
		zap.Int("external", len(external)))

	merged := clean.Merge(internal, external)
	writeJSON(w, http.StatusOK, map[string]any{"papers": merged})
}

func (s *Server) handleInternalPapers(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	kws := splitKeywords(r.URL.Query().Get("keywords"))

	results := s.deps.Papers.Search(topic, kws)
	normalized := make([]types.PaperRecord, len(results))
	for i, p := range results {
		normalized[i] = clean.Normalize(p)
	}
	writeJSON(w, http.StatusOK, normalized)
}

func (s *Server) handleExternalPapers(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		writeError(w, "외부 API 논문 검색", errors.New("topic is required"))
		return
	}
	kws := splitKeywords(r.URL.Query().Get("keywords"))

	results := papers.SearchExternal(r.Context(), s.deps.Backends, topic, kws, s.deps.SearchCfg, s.deps.Log)
	normalized := make([]types.PaperRecord, len(results))
	for i, p := range results {
		normalized[i] = clean.Normalize(p)
	}
	writeJSON(w, http.StatusOK, normalized)
}

func (s *Server) handleGeneratePaperContent(w http.ResponseWriter, r *http.Request) {
	var req paperContentRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, "논문 형식 자료 생성", err)
		return
	}

	s.deps.Log.Info("generating paper content",
		zap.String("topic", req.Topic),
		zap.String("paper", req.PaperInfo.Title))
	writeJSON(w, http.StatusOK, s.deps.Generator.GeneratePaperContent(r.Context(), req.Topic, req.PaperInfo))
}

func (s *Server) handleGenerateNicheContent(w http.ResponseWriter, r *http.Request) {
	var req nicheContentRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, "틈새주제 연구 계획 생성", err)
		return
	}

	s.deps.Log.Info("generating niche content",
		zap.String("topic", req.Topic),
		zap.String("niche_topic", req.NicheTopic))
	writeJSON(w, http.StatusOK, s.deps.Generator.GenerateNicheContent(r.Context(), req.Topic, req.NicheTopic))
}

// handleGeneratePDF is a placeholder: it fingerprints the submitted
// content and returns a download URL without rendering anything.
func (s *Server) handleGeneratePDF(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "PDF 생성", err)
		return
	}

	isNiche := r.URL.Query().Get("is_niche") == "true"
	s.deps.Log.Info("generating pdf", zap.Bool("is_niche", isNiche))

	writeJSON(w, http.StatusOK, map[string]string{
		"pdf_url": "/api/download/pdf/" + cache.Fingerprint(string(body)),
		"message": "PDF가 성공적으로 생성되었습니다.",
	})
}

func (s *Server) handleExtractURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, "콘텐츠 추출", err)
		return
	}
	if req.URL == "" {
		writeError(w, "콘텐츠 추출", errors.New("url is required"))
		return
	}

	writeJSON(w, http.StatusOK, s.deps.Extractor.ExtractContent(r.Context(), req.URL))
}

func (s *Server) handleWebSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
		Num   int    `json:"num"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, "웹 검색", err)
		return
	}
	if req.Query == "" {
		writeError(w, "웹 검색", errors.New("query is required"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results": s.deps.Extractor.SearchWeb(r.Context(), req.Query, req.Num),
	})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text      string `json:"text"`
		MaxLength int    `json:"max_length"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, "텍스트 요약", err)
		return
	}
	if req.Text == "" {
		writeError(w, "텍스트 요약", errors.New("text is required"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"summary": s.deps.NLP.Summarize(r.Context(), req.Text, req.MaxLength),
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, "세션 생성", err)
		return
	}

	session, err := s.deps.Sessions.Create(r.Context(), req.Topic)
	if err != nil {
		writeError(w, "세션 생성", err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Session: session, Progress: session.Progress()})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.deps.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, wizard.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "세션을 찾을 수 없습니다."})
		return
	}
	if err != nil {
		writeError(w, "세션 조회", err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Session: session, Progress: session.Progress()})
}

func (s *Server) handleSessionNext(w http.ResponseWriter, r *http.Request) {
	s.handleSessionTransition(w, r, "세션 진행", s.deps.Sessions.Advance)
}

func (s *Server) handleSessionBack(w http.ResponseWriter, r *http.Request) {
	s.handleSessionTransition(w, r, "세션 되돌리기", s.deps.Sessions.Regress)
}

func (s *Server) handleSessionTransition(w http.ResponseWriter, r *http.Request, action string, transition func(ctx context.Context, id string) (wizard.Session, error)) {
	id := chi.URLParam(r, "id")

	// An optional body updates session fields before the transition.
	var req sessionUpdateRequest
	if err := readJSON(r, &req); err == nil {
		if applyErr := s.applySessionUpdate(r, id, req); applyErr != nil {
			if errors.Is(applyErr, wizard.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, map[string]string{"detail": "세션을 찾을 수 없습니다."})
				return
			}
			writeError(w, action, applyErr)
			return
		}
	}

	session, err := transition(r.Context(), id)
	if errors.Is(err, wizard.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "세션을 찾을 수 없습니다."})
		return
	}
	if err != nil {
		writeError(w, action, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Session: session, Progress: session.Progress()})
}

func (s *Server) applySessionUpdate(r *http.Request, id string, req sessionUpdateRequest) error {
	if req.Topic == nil && req.SelectedPaper == nil && req.SelectedNiche == nil {
		return nil
	}

	session, err := s.deps.Sessions.Get(r.Context(), id)
	if err != nil {
		return err
	}
	if req.Topic != nil {
		session.Topic = *req.Topic
	}
	if req.SelectedPaper != nil {
		session.SelectedPaper = *req.SelectedPaper
	}
	if req.SelectedNiche != nil {
		session.SelectedNiche = *req.SelectedNiche
	}
	if _, err := s.deps.Sessions.Update(r.Context(), session); err != nil {
		return fmt.Errorf("applying session update: %w", err)
	}
	return nil
}

// splitKeywords parses the comma-separated keywords query parameter.
func splitKeywords(raw string) []string {
	if raw == "" {
		return nil
	}
	var kws []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			kws = append(kws, k)
		}
	}
	return kws
}
