// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package webx extracts content from webpages and runs ranked web
// searches. Every operation degrades to a placeholder result instead of
// returning an error, and successful results are cached on disk.
package webx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/pdiddy/topic-wizard/internal/cache"
	"github.com/pdiddy/topic-wizard/internal/keywords"
	"github.com/pdiddy/topic-wizard/pkg/types"
)

// API bases are variables so tests can point them at a local server.
var (
	extractAPIBase = "https://api.extractapi.com/v1/extract"
	searchAPIBase  = "https://api.websearchapi.com/v1/search"
)

const (
	maxImages        = 10
	maxLinks         = 20
	defaultSearchNum = 5
	maxURLKeywords   = 10
)

var (
	newlineRun = regexp.MustCompile(`\n+`)
	spaceRun   = regexp.MustCompile(` +`)
)

// Extractor fetches pages, parses them, and caches the results. API keys
// are optional; without them extraction fetches directly and search
// returns the sample listing.
type Extractor struct {
	client     *http.Client
	cache      *cache.Cache
	cfg        types.ExtractorConfig
	extractKey string
	searchKey  string
	log        *zap.Logger
}

// New returns an Extractor. extractKey and searchKey may be empty.
func New(cfg types.ExtractorConfig, c *cache.Cache, extractKey, searchKey string, log *zap.Logger) *Extractor {
	return &Extractor{
		client:     &http.Client{Timeout: cfg.Timeout},
		cache:      c,
		cfg:        cfg,
		extractKey: extractKey,
		searchKey:  searchKey,
		log:        log,
	}
}

// ExtractContent pulls the title, meta description, cleaned body text,
// and the first image and link URLs from a page. Results are cached per
// URL within the freshness window. Failures yield a placeholder object.
func (e *Extractor) ExtractContent(ctx context.Context, pageURL string) types.PageContent {
	name := "page_" + cache.Fingerprint(pageURL)
	var cached types.PageContent
	if e.cache.GetFresh(name, 0, &cached) {
		e.log.Info("page content served from cache", zap.String("url", pageURL))
		return cached
	}

	if e.extractKey != "" {
		if content, err := e.extractViaAPI(ctx, pageURL); err == nil {
			e.put(name, content)
			return content
		} else {
			e.log.Warn("extraction API failed, fetching directly", zap.Error(err))
		}
	}

	content, err := e.extractDirect(ctx, pageURL)
	if err != nil {
		e.log.Error("page extraction failed", zap.String("url", pageURL), zap.Error(err))
		return types.PageContent{
			URL:         pageURL,
			Title:       "오류",
			Description: fmt.Sprintf("콘텐츠 추출 중 오류 발생: %v", err),
			Images:      []string{},
			Links:       []types.PageLink{},
		}
	}

	e.put(name, content)
	return content
}

// extractViaAPI asks the hosted extraction service for the page.
func (e *Extractor) extractViaAPI(ctx context.Context, pageURL string) (types.PageContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, extractAPIBase, nil)
	if err != nil {
		return types.PageContent{}, fmt.Errorf("building extraction request: %w", err)
	}
	q := req.URL.Query()
	q.Set("apikey", e.extractKey)
	q.Set("url", pageURL)
	q.Set("user_agent", e.cfg.UserAgent)
	req.URL.RawQuery = q.Encode()

	resp, err := e.client.Do(req)
	if err != nil {
		return types.PageContent{}, fmt.Errorf("calling extraction API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.PageContent{}, fmt.Errorf("extraction API returned status %d", resp.StatusCode)
	}

	var content types.PageContent
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		return types.PageContent{}, fmt.Errorf("decoding extraction response: %w", err)
	}
	if content.URL == "" {
		content.URL = pageURL
	}
	return content, nil
}

// extractDirect fetches the page itself and parses it.
func (e *Extractor) extractDirect(ctx context.Context, pageURL string) (types.PageContent, error) {
	doc, err := e.fetchDoc(ctx, pageURL)
	if err != nil {
		return types.PageContent{}, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return types.PageContent{}, fmt.Errorf("parsing page url: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = "제목 없음"
	}

	description, _ := doc.Find(`meta[name="description"]`).Attr("content")

	images := make([]string, 0, maxImages)
	doc.Find("img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		images = append(images, resolveURL(base, src))
		return len(images) < maxImages
	})

	links := make([]types.PageLink, 0, maxLinks)
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		links = append(links, types.PageLink{
			URL:  resolveURL(base, href),
			Text: strings.TrimSpace(s.Text()),
		})
		return len(links) < maxLinks
	})

	return types.PageContent{
		URL:         pageURL,
		Title:       title,
		Description: strings.TrimSpace(description),
		Content:     cleanDoc(doc),
		Images:      images,
		Links:       links,
	}, nil
}

// SearchWeb runs a ranked web search, or returns the sample listing when
// no search key is configured. Results are cached per (query, count).
func (e *Extractor) SearchWeb(ctx context.Context, query string, num int) []types.WebSearchResult {
	if num <= 0 {
		num = defaultSearchNum
	}

	name := fmt.Sprintf("search_%s_%d", cache.Fingerprint(query), num)
	var cached []types.WebSearchResult
	if e.cache.GetFresh(name, 0, &cached) {
		e.log.Info("web search served from cache", zap.String("query", query))
		return cached
	}

	if e.searchKey != "" {
		if results, err := e.searchViaAPI(ctx, query, num); err == nil {
			e.put(name, results)
			return results
		} else {
			e.log.Warn("web search API failed, using sample results", zap.Error(err))
		}
	} else {
		e.log.Info("no web search key configured, using sample results")
	}

	results := sampleSearchResults(query)
	if len(results) > num {
		results = results[:num]
	}
	e.put(name, results)
	return results
}

// searchViaAPI queries the hosted ranked search service.
func (e *Extractor) searchViaAPI(ctx context.Context, query string, num int) ([]types.WebSearchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchAPIBase, nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	q := req.URL.Query()
	q.Set("apikey", e.searchKey)
	q.Set("q", query)
	q.Set("num", strconv.Itoa(num))
	q.Set("output", "json")
	req.URL.RawQuery = q.Encode()

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling search API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	results := make([]types.WebSearchResult, 0, len(payload.Results))
	for _, item := range payload.Results {
		source := ""
		if u, err := url.Parse(item.URL); err == nil {
			source = u.Host
		}
		results = append(results, types.WebSearchResult{
			Title:       item.Title,
			URL:         item.URL,
			Description: item.Description,
			Source:      source,
		})
	}
	return results, nil
}

// KeywordsFromURL merges the page's meta keywords with the most frequent
// words of its body text. Failures yield an empty list.
func (e *Extractor) KeywordsFromURL(ctx context.Context, pageURL string) []string {
	content := e.ExtractContent(ctx, pageURL)

	var meta []string
	if doc, err := e.fetchDoc(ctx, pageURL); err == nil {
		if raw, ok := doc.Find(`meta[name="keywords"]`).Attr("content"); ok {
			for _, k := range strings.Split(raw, ",") {
				if k = strings.TrimSpace(k); k != "" {
					meta = append(meta, k)
				}
			}
		}
	} else {
		e.log.Warn("fetching page for meta keywords failed", zap.Error(err))
	}

	merged := append(meta, keywords.Top(content.Content, maxURLKeywords)...)

	seen := make(map[string]bool, len(merged))
	unique := merged[:0]
	for _, k := range merged {
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, k)
	}
	if len(unique) > maxURLKeywords {
		unique = unique[:maxURLKeywords]
	}
	return unique
}

// fetchDoc retrieves a page with the configured User-Agent and parses it.
func (e *Extractor) fetchDoc(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building page request: %w", err)
	}
	req.Header.Set("User-Agent", e.cfg.UserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}
	return doc, nil
}

func (e *Extractor) put(name string, v any) {
	if err := e.cache.Put(name, v); err != nil {
		e.log.Warn("caching web result failed", zap.Error(err))
	}
}

// cleanDoc strips chrome elements and returns the collapsed body text.
func cleanDoc(doc *goquery.Document) string {
	clone := goquery.CloneDocument(doc)
	clone.Find("script, style, head, iframe, nav, footer").Remove()

	text := newlineRun.ReplaceAllString(clone.Text(), "\n")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// resolveURL makes a possibly relative reference absolute against base.
func resolveURL(base *url.URL, ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}

// sampleSearchResults is the listing returned when no search backend is
// available.
func sampleSearchResults(query string) []types.WebSearchResult {
	return []types.WebSearchResult{
		{
			Title:       fmt.Sprintf("%s에 관한 최신 연구 - 사이언스 저널", query),
			URL:         "https://example.com/science/article1",
			Description: fmt.Sprintf("%s에 관한 최신 연구 결과와 분석 자료를 제공합니다. 이 연구는 새로운 방법론을 통해 기존의 한계를 극복하고자 합니다.", query),
			Source:      "example.com",
		},
		{
			Title:       fmt.Sprintf("%s 문제 해결을 위한 혁신적 접근법", query),
			URL:         "https://example.org/innovation/article2",
			Description: fmt.Sprintf("%s 관련 문제를 해결하기 위한 새로운 접근법과 사례 연구를 소개합니다. 여러 분야의 전문가들이 협력하여 개발한 솔루션입니다.", query),
			Source:      "example.org",
		},
		{
			Title:       fmt.Sprintf("%s의 사회적 영향과 미래 전망", query),
			URL:         "https://example.net/social-impact/article3",
			Description: fmt.Sprintf("%s가 사회에 미치는 영향과 앞으로의 발전 방향에 대한 분석입니다. 전문가들의 인터뷰와 데이터 기반 예측을 포함합니다.", query),
			Source:      "example.net",
		},
	}
}
