// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package webx

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/topic-wizard/internal/cache"
	"github.com/pdiddy/topic-wizard/pkg/types"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
<title> 미세플라스틱 연구 동향 </title>
<meta name="description" content="미세플라스틱 분해 연구를 정리한 페이지">
<meta name="keywords" content="미세플라스틱, 광촉매, 분해">
<style>body { color: red; }</style>
<script>console.log("hidden");</script>
</head>
<body>
<nav>메뉴 목록</nav>
<h1>미세플라스틱 분해</h1>
<p>광촉매 광촉매 분해 실험을 수행하였다.</p>
<img src="/img/a.png"><img src="https://cdn.example.com/b.png">
<a href="/page/one">첫 링크</a>
<a href="https://example.org/two">둘째 링크</a>
<footer>바닥글</footer>
</body>
</html>`

func testExtractor(t *testing.T, extractKey, searchKey string) (*Extractor, *cache.Cache) {
	t.Helper()
	c := cache.New(types.CacheConfig{Dir: t.TempDir(), MaxAge: 24 * time.Hour})
	cfg := types.ExtractorConfig{}
	cfg.Timeout = 5 * time.Second
	cfg.UserAgent = "test-agent"
	return New(cfg, c, extractKey, searchKey, zap.NewNop()), c
}

func TestExtractContent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, samplePage)
	}))
	defer server.Close()

	e, _ := testExtractor(t, "", "")
	got := e.ExtractContent(context.Background(), server.URL)

	assert.Equal(t, "test-agent", gotUA)
	assert.Equal(t, server.URL, got.URL)
	assert.Equal(t, "미세플라스틱 연구 동향", got.Title)
	assert.Equal(t, "미세플라스틱 분해 연구를 정리한 페이지", got.Description)

	// Script, style, nav, and footer text never reach the body content.
	assert.Contains(t, got.Content, "광촉매 광촉매 분해 실험을 수행하였다.")
	assert.NotContains(t, got.Content, "hidden")
	assert.NotContains(t, got.Content, "메뉴 목록")
	assert.NotContains(t, got.Content, "바닥글")

	// Relative URLs resolve against the page URL.
	require.Len(t, got.Images, 2)
	assert.Equal(t, server.URL+"/img/a.png", got.Images[0])
	assert.Equal(t, "https://cdn.example.com/b.png", got.Images[1])

	require.Len(t, got.Links, 2)
	assert.Equal(t, server.URL+"/page/one", got.Links[0].URL)
	assert.Equal(t, "첫 링크", got.Links[0].Text)
}

func TestExtractContentCaps(t *testing.T) {
	var body strings.Builder
	body.WriteString("<html><body>")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&body, `<img src="/i%d.png"><a href="/l%d">l%d</a>`, i, i, i)
	}
	body.WriteString("</body></html>")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body.String())
	}))
	defer server.Close()

	e, _ := testExtractor(t, "", "")
	got := e.ExtractContent(context.Background(), server.URL)

	assert.Len(t, got.Images, maxImages)
	assert.Len(t, got.Links, maxLinks)
	assert.Equal(t, "제목 없음", got.Title)
}

func TestExtractContentFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	e, _ := testExtractor(t, "", "")
	got := e.ExtractContent(context.Background(), server.URL)

	assert.Equal(t, "오류", got.Title)
	assert.Contains(t, got.Description, "콘텐츠 추출 중 오류 발생")
	assert.Empty(t, got.Content)
	assert.Empty(t, got.Images)
	assert.Empty(t, got.Links)
}

func TestExtractContentCached(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, samplePage)
	}))
	defer server.Close()

	e, c := testExtractor(t, "", "")
	first := e.ExtractContent(context.Background(), server.URL)
	second := e.ExtractContent(context.Background(), server.URL)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	name := "page_" + cache.Fingerprint(server.URL)
	_, err := os.Stat(filepath.Join(c.Dir(), name+".json"))
	require.NoError(t, err)
}

func TestExtractContentViaAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("apikey"))
		assert.Equal(t, "https://example.com/post", r.URL.Query().Get("url"))
		fmt.Fprint(w, `{"url":"https://example.com/post","title":"API 제목","description":"API 설명","content":"본문","images":[],"links":[]}`)
	}))
	defer server.Close()

	oldBase := extractAPIBase
	extractAPIBase = server.URL
	defer func() { extractAPIBase = oldBase }()

	e, _ := testExtractor(t, "secret", "")
	got := e.ExtractContent(context.Background(), "https://example.com/post")

	assert.Equal(t, "API 제목", got.Title)
	assert.Equal(t, "본문", got.Content)
}

func TestSearchWebSamples(t *testing.T) {
	e, c := testExtractor(t, "", "")

	got := e.SearchWeb(context.Background(), "기후변화", 5)
	require.Len(t, got, 3)
	assert.Equal(t, "기후변화에 관한 최신 연구 - 사이언스 저널", got[0].Title)
	assert.Equal(t, "example.com", got[0].Source)
	assert.Equal(t, "example.org", got[1].Source)
	assert.Equal(t, "example.net", got[2].Source)

	name := fmt.Sprintf("search_%s_%d", cache.Fingerprint("기후변화"), 5)
	_, err := os.Stat(filepath.Join(c.Dir(), name+".json"))
	require.NoError(t, err)

	// Truncated to the requested count, cached under a distinct name.
	short := e.SearchWeb(context.Background(), "기후변화", 2)
	assert.Len(t, short, 2)
}

func TestSearchWebViaAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "기후변화", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("num"))
		fmt.Fprint(w, `{"results":[{"title":"결과 하나","url":"https://papers.example.com/1","description":"설명"},{"title":"결과 둘","url":"https://papers.example.com/2","description":"설명"}]}`)
	}))
	defer server.Close()

	oldBase := searchAPIBase
	searchAPIBase = server.URL
	defer func() { searchAPIBase = oldBase }()

	e, _ := testExtractor(t, "", "secret")
	got := e.SearchWeb(context.Background(), "기후변화", 2)

	require.Len(t, got, 2)
	assert.Equal(t, "결과 하나", got[0].Title)
	assert.Equal(t, "papers.example.com", got[0].Source)
}

func TestSearchWebAPIFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	oldBase := searchAPIBase
	searchAPIBase = server.URL
	defer func() { searchAPIBase = oldBase }()

	e, _ := testExtractor(t, "", "secret")
	got := e.SearchWeb(context.Background(), "t", 0)
	assert.Len(t, got, 3)
	assert.Contains(t, got[0].Title, "t에 관한 최신 연구")
}

func TestKeywordsFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, samplePage)
	}))
	defer server.Close()

	e, _ := testExtractor(t, "", "")
	got := e.KeywordsFromURL(context.Background(), server.URL)

	require.NotEmpty(t, got)
	// Meta keywords lead the merged list.
	assert.Equal(t, "미세플라스틱", got[0])
	assert.Contains(t, got, "광촉매")
	assert.LessOrEqual(t, len(got), maxURLKeywords)
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base string
		ref  string
		want string
	}{
		{"https://example.com/a/b", "/img.png", "https://example.com/img.png"},
		{"https://example.com/a/b", "img.png", "https://example.com/a/img.png"},
		{"https://example.com/a/b", "https://cdn.example.com/x.png", "https://cdn.example.com/x.png"},
	}
	for _, tt := range tests {
		base, err := url.Parse(tt.base)
		require.NoError(t, err)
		assert.Equal(t, tt.want, resolveURL(base, tt.ref))
	}
}
