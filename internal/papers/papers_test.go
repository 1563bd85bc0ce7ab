// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package papers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/topic-wizard/internal/httpx"
	"github.com/pdiddy/topic-wizard/pkg/types"
)

func init() {
	// Keep 429 retry waits out of the test runtime.
	httpx.RetryBaseDelay = 1 * time.Millisecond
}

func testSearchCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "test/0.1",
		},
		MaxResults:     5,
		InternalDBPath: filepath.Join("testdata", "does-not-exist.json"),
	}
}

// --- internal store ---

func TestNewStoreBuiltinSample(t *testing.T) {
	s, err := NewStore(testSearchCfg())
	require.NoError(t, err)
	assert.Len(t, s.Records(), 3)
}

func TestNewStoreLoadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "internal_papers.json")
	records := []types.PaperRecord{
		{Title: "사용자 정의 논문", Abstract: "내용", Type: types.ProvenanceInternal},
	}
	data, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg := testSearchCfg()
	cfg.InternalDBPath = path
	s, err := NewStore(cfg)
	require.NoError(t, err)
	require.Len(t, s.Records(), 1)
	assert.Equal(t, "사용자 정의 논문", s.Records()[0].Title)
}

func TestNewStoreLoadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "internal_papers.yaml")
	records := []types.PaperRecord{
		{Title: "YAML 논문", Abstract: "내용", Type: types.ProvenanceInternal},
	}
	data, err := yaml.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg := testSearchCfg()
	cfg.InternalDBPath = path
	s, err := NewStore(cfg)
	require.NoError(t, err)
	require.Len(t, s.Records(), 1)
	assert.Equal(t, "YAML 논문", s.Records()[0].Title)
}

func TestNewStoreBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "internal_papers.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	cfg := testSearchCfg()
	cfg.InternalDBPath = path
	_, err := NewStore(cfg)
	assert.Error(t, err)
}

func TestSearchInternal(t *testing.T) {
	s, err := NewStore(testSearchCfg())
	require.NoError(t, err)

	tests := []struct {
		name     string
		topic    string
		keywords []string
		want     int
	}{
		{"topic in title", "미세플라스틱", nil, 1},
		{"topic in abstract", "감귤 생산량", nil, 1},
		{"abstract substring", "딥러닝", nil, 1},
		{"keyword substring hit", "주제없음표현", []string{"기후변화"}, 1},
		{"keyword exact match in keyword list", "주제없음표현", []string{"스마트팜"}, 1},
		{"no match", "없는주제있음없음", nil, 0},
		{"empty topic matches all", "", nil, 3},
		{"case insensitive", "TIO2", nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Search(tt.topic, tt.keywords)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestSearchInternalSourceOrder(t *testing.T) {
	s, err := NewStore(testSearchCfg())
	require.NoError(t, err)

	got := s.Search("", nil)
	require.Len(t, got, 3)
	assert.Equal(t, s.Records()[0].Title, got[0].Title)
	assert.Equal(t, s.Records()[2].Title, got[2].Title)
}

// --- query building ---

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		topic    string
		keywords []string
		want     string
	}{
		{"no keywords", "미세플라스틱", nil, "미세플라스틱"},
		{"two keywords", "t", []string{"a", "b"}, "t a b"},
		{"keywords capped at three", "t", []string{"a", "b", "c", "d"}, "t a b c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQuery(tt.topic, tt.keywords))
		})
	}
}

// --- external backends ---

func TestArxivBackendSample(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("search_query"), "all:")
		w.Write([]byte(`<feed></feed>`))
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	b := &ArxivBackend{Client: ts.Client()}
	got, err := b.Search(context.Background(), "미세플라스틱", testSearchCfg())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Title, "미세플라스틱에 관한 최신 연구 동향")
	assert.Equal(t, types.ProvenanceExternal, got[0].Type)
	assert.Contains(t, got[0].Keywords, "미세플라스틱")
}

func TestArxivBackendFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	old := arxivAPIBase
	arxivAPIBase = ts.URL
	defer func() { arxivAPIBase = old }()

	b := &ArxivBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), "q", testSearchCfg())
	assert.Error(t, err)
}

func TestCrossRefBackendMailto(t *testing.T) {
	var gotMailto atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMailto.Store(r.URL.Query().Get("mailto"))
		w.Write([]byte(`{"message": {"items": []}}`))
	}))
	defer ts.Close()

	old := crossrefAPIBase
	crossrefAPIBase = ts.URL
	defer func() { crossrefAPIBase = old }()

	b := &CrossRefBackend{Client: ts.Client(), Email: "dev@example.com"}
	got, err := b.Search(context.Background(), "기후변화", testSearchCfg())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "dev@example.com", gotMailto.Load())
	assert.Contains(t, got[0].Title, "기후변화의 실험적 분석")
}

func TestSemanticScholarRetriesOn429(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		assert.Equal(t, "s2-key", r.Header.Get("x-api-key"))
		w.Write([]byte(`{"data": []}`))
	}))
	defer ts.Close()

	old := semanticAPIBase
	semanticAPIBase = ts.URL
	defer func() { semanticAPIBase = old }()

	b := &SemanticScholarBackend{Client: ts.Client(), APIKey: "s2-key"}
	got, err := b.Search(context.Background(), "머신러닝", testSearchCfg())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

// --- external orchestration ---

type stubBackend struct {
	name    string
	results []types.PaperRecord
	err     error
}

func (s *stubBackend) Name() string { return s.name }

func (s *stubBackend) Search(context.Context, string, types.SearchConfig) ([]types.PaperRecord, error) {
	return s.results, s.err
}

func TestSearchExternalPartialFailureIsolation(t *testing.T) {
	backends := []Backend{
		&stubBackend{name: "arxiv", results: []types.PaperRecord{{Title: "A", Type: types.ProvenanceExternal}}},
		&stubBackend{name: "crossref", err: assert.AnError},
		&stubBackend{name: "semantic_scholar", results: []types.PaperRecord{{Title: "C", Type: types.ProvenanceExternal}}},
	}

	got := SearchExternal(context.Background(), backends, "topic", nil, testSearchCfg(), zap.NewNop())
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Title)
	assert.Equal(t, "C", got[1].Title)
}
