// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/topic-wizard/internal/cache"
	"github.com/pdiddy/topic-wizard/internal/content"
	"github.com/pdiddy/topic-wizard/internal/nlp"
	"github.com/pdiddy/topic-wizard/internal/papers"
	"github.com/pdiddy/topic-wizard/internal/webx"
	"github.com/pdiddy/topic-wizard/internal/wizard"
	"github.com/pdiddy/topic-wizard/pkg/types"
)

// fixedBackend returns one fixed external record.
type fixedBackend struct{}

func (fixedBackend) Name() string { return "fixed" }

func (fixedBackend) Search(context.Context, string, types.SearchConfig) ([]types.PaperRecord, error) {
	return []types.PaperRecord{{
		Title:    "외부 검색 결과 논문",
		Authors:  "External Author",
		Year:     "2024",
		Abstract: "외부 백엔드가 반환한 샘플 초록입니다.",
		Source:   "fixed",
		Keywords: []string{"external"},
		Type:     types.ProvenanceExternal,
	}}, nil
}

func testServer(t *testing.T, backends []papers.Backend) *httptest.Server {
	t.Helper()

	cfg := types.DefaultConfig()
	cfg.Search.InternalDBPath = filepath.Join(t.TempDir(), "missing.json")
	store, err := papers.NewStore(cfg.Search)
	require.NoError(t, err)

	c := cache.New(types.CacheConfig{Dir: t.TempDir(), MaxAge: 24 * time.Hour})
	generator := content.New(nil, c, cfg.LLM, zap.NewNop())

	sessions, err := wizard.NewStore(types.WizardConfig{DBPath: filepath.Join(t.TempDir(), "wizard.db")})
	require.NoError(t, err)
	t.Cleanup(func() { sessions.Close() })

	extractor := webx.New(cfg.Extractor, c, "", "", zap.NewNop())
	processor := nlp.New(cfg.Extractor.HTTPConfig, "", zap.NewNop())

	s := New(cfg.Server, Deps{
		Papers:    store,
		Backends:  backends,
		SearchCfg: cfg.Search,
		Generator: generator,
		Sessions:  sessions,
		Extractor: extractor,
		NLP:       processor,
		Log:       zap.NewNop(),
	})

	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestRootAndHealth(t *testing.T) {
	ts := testServer(t, nil)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	var root map[string]string
	decode(t, resp, &root)
	assert.Contains(t, root["message"], "LittleScienceAI")

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	var health map[string]string
	decode(t, resp, &health)
	assert.Equal(t, "healthy", health["status"])
}

func TestAnalyzeTopic(t *testing.T) {
	ts := testServer(t, nil)

	resp := postJSON(t, ts.URL+"/api/analyze_topic", map[string]any{"topic": "미세플라스틱"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got types.TopicAnalysis
	decode(t, resp, &got)
	assert.Contains(t, got.Definition, "미세플라스틱")
	assert.Contains(t, got.Issues, "미세플라스틱")
	assert.Contains(t, got.Cases, "미세플라스틱")
}

func TestAnalyzeTopicMissingTopic(t *testing.T) {
	ts := testServer(t, nil)

	resp := postJSON(t, ts.URL+"/api/analyze_topic", map[string]any{})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var got map[string]string
	decode(t, resp, &got)
	assert.Contains(t, got["detail"], "주제 분석 중 오류가 발생했습니다")
}

func TestSearchPapers(t *testing.T) {
	ts := testServer(t, []papers.Backend{fixedBackend{}})

	resp := postJSON(t, ts.URL+"/api/search_papers", map[string]any{
		"topic":    "미세플라스틱",
		"keywords": []string{"광촉매"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Papers []types.PaperRecord `json:"papers"`
	}
	decode(t, resp, &got)
	require.Len(t, got.Papers, 2)

	// External results lead the merged list.
	assert.Equal(t, types.ProvenanceExternal, got.Papers[0].Type)
	assert.Equal(t, "외부 검색 결과 논문", got.Papers[0].Title)
	assert.Equal(t, types.ProvenanceInternal, got.Papers[1].Type)
}

func TestSearchPapersNoMatches(t *testing.T) {
	ts := testServer(t, nil)

	resp := postJSON(t, ts.URL+"/api/search_papers", map[string]any{
		"topic":    "없는주제있음없음",
		"keywords": []string{"없는키워드"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Papers []types.PaperRecord `json:"papers"`
	}
	decode(t, resp, &got)
	assert.Empty(t, got.Papers)
}

func TestInternalPapers(t *testing.T) {
	ts := testServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/internal_papers?topic=" + urlQueryEscape("미세플라스틱"))
	require.NoError(t, err)
	var got []types.PaperRecord
	decode(t, resp, &got)
	require.Len(t, got, 1)
	assert.Equal(t, types.ProvenanceInternal, got[0].Type)

	// Empty topic lists the whole internal set.
	resp, err = http.Get(ts.URL + "/api/internal_papers")
	require.NoError(t, err)
	decode(t, resp, &got)
	assert.Len(t, got, 3)
}

func TestExternalPapers(t *testing.T) {
	ts := testServer(t, []papers.Backend{fixedBackend{}})

	resp, err := http.Get(ts.URL + "/api/external_papers?topic=" + urlQueryEscape("기후변화"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got []types.PaperRecord
	decode(t, resp, &got)
	require.Len(t, got, 1)
	assert.Equal(t, types.ProvenanceExternal, got[0].Type)
}

func TestExternalPapersMissingTopic(t *testing.T) {
	ts := testServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/external_papers")
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGeneratePaperContent(t *testing.T) {
	ts := testServer(t, nil)

	resp := postJSON(t, ts.URL+"/api/generate_paper_content", map[string]any{
		"topic": "미세플라스틱",
		"paper_info": map[string]any{
			"title":    "광촉매를 이용한 미세플라스틱 분해 연구",
			"authors":  "김지원, 이하늘",
			"year":     "2023",
			"abstract": "초록",
			"source":   "학술지",
			"keywords": []string{"광촉매"},
			"type":     "internal",
		},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got types.PaperContent
	decode(t, resp, &got)
	assert.NotEmpty(t, got.Introduction)
	assert.NotEmpty(t, got.Methods)
	assert.NotEmpty(t, got.Results)
	assert.NotEmpty(t, got.Conclusion)
	assert.NotEmpty(t, got.References)
	assert.NotEmpty(t, got.Disclaimer)
	assert.Len(t, got.NicheTopics, 5)
	assert.Equal(t, types.SourceTemplate, got.Source)
}

func TestGenerateNicheContent(t *testing.T) {
	ts := testServer(t, nil)

	resp := postJSON(t, ts.URL+"/api/generate_niche_content", map[string]any{
		"topic":       "미세플라스틱",
		"niche_topic": "미세플라스틱의 문화간 차이 비교 연구",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got types.NicheContent
	decode(t, resp, &got)
	assert.NotEmpty(t, got.Introduction)
	assert.NotEmpty(t, got.Methods)
	assert.NotEmpty(t, got.ExpectedResults)
	assert.NotEmpty(t, got.Disclaimer)
}

func TestGeneratePDF(t *testing.T) {
	ts := testServer(t, nil)

	resp := postJSON(t, ts.URL+"/api/generate_pdf", map[string]any{"introduction": "서론"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]string
	decode(t, resp, &got)
	assert.True(t, strings.HasPrefix(got["pdf_url"], "/api/download/pdf/"))
	assert.Equal(t, "PDF가 성공적으로 생성되었습니다.", got["message"])
}

func TestWebSearch(t *testing.T) {
	ts := testServer(t, nil)

	resp := postJSON(t, ts.URL+"/api/web_search", map[string]any{"query": "기후변화"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Results []types.WebSearchResult `json:"results"`
	}
	decode(t, resp, &got)
	assert.Len(t, got.Results, 3)
}

func TestSummarizeShortText(t *testing.T) {
	ts := testServer(t, nil)

	resp := postJSON(t, ts.URL+"/api/summarize", map[string]any{"text": "짧은 텍스트입니다."})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]string
	decode(t, resp, &got)
	assert.Equal(t, "짧은 텍스트입니다.", got["summary"])
}

func TestExtractURLMissingURL(t *testing.T) {
	ts := testServer(t, nil)

	resp := postJSON(t, ts.URL+"/api/extract_url", map[string]any{})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestWizardSessionFlow(t *testing.T) {
	ts := testServer(t, nil)

	resp := postJSON(t, ts.URL+"/api/wizard/sessions", map[string]any{"topic": "미세플라스틱"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created sessionResponse
	decode(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, wizard.StepTopicInput, created.Step)
	assert.Equal(t, 12, created.Progress)

	// Advance with a selection update.
	resp = postJSON(t, fmt.Sprintf("%s/api/wizard/sessions/%s/next", ts.URL, created.ID),
		map[string]any{"selected_paper": 1})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var advanced sessionResponse
	decode(t, resp, &advanced)
	assert.Equal(t, wizard.StepTopicAnalysis, advanced.Step)
	assert.Equal(t, 1, advanced.SelectedPaper)
	assert.Equal(t, 25, advanced.Progress)

	resp = postJSON(t, fmt.Sprintf("%s/api/wizard/sessions/%s/back", ts.URL, created.ID), map[string]any{})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var back sessionResponse
	decode(t, resp, &back)
	assert.Equal(t, wizard.StepTopicInput, back.Step)

	resp, err := http.Get(fmt.Sprintf("%s/api/wizard/sessions/%s", ts.URL, created.ID))
	require.NoError(t, err)
	var got sessionResponse
	decode(t, resp, &got)
	assert.Equal(t, wizard.StepTopicInput, got.Step)
	assert.Equal(t, 1, got.SelectedPaper)
}

func TestWizardSessionNotFound(t *testing.T) {
	ts := testServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/wizard/sessions/no-such-id")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/api/wizard/sessions/no-such-id/next", map[string]any{})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWizardBackFromFirstStep(t *testing.T) {
	ts := testServer(t, nil)

	resp := postJSON(t, ts.URL+"/api/wizard/sessions", map[string]any{"topic": "t"})
	var created sessionResponse
	decode(t, resp, &created)

	resp = postJSON(t, fmt.Sprintf("%s/api/wizard/sessions/%s/back", ts.URL, created.ID), map[string]any{})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func urlQueryEscape(s string) string {
	return url.QueryEscape(s)
}
