// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PageLink is one hyperlink found on an extracted page.
type PageLink struct {
	URL  string `json:"url" yaml:"url"`
	Text string `json:"text" yaml:"text"`
}

// PageContent is the material extracted from one webpage.
type PageContent struct {
	URL         string     `json:"url" yaml:"url"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Content     string     `json:"content" yaml:"content"`
	Images      []string   `json:"images" yaml:"images"`
	Links       []PageLink `json:"links" yaml:"links"`
}

// WebSearchResult is one entry of a ranked web search.
type WebSearchResult struct {
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description" yaml:"description"`
	Source      string `json:"source" yaml:"source"`
}
