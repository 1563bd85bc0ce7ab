// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the topic-wizard service.
package types

// Provenance marks where a paper record came from.
type Provenance string

const (
	// ProvenanceInternal marks records from the local sample dataset.
	ProvenanceInternal Provenance = "internal"

	// ProvenanceExternal marks records from an external scholarly API.
	ProvenanceExternal Provenance = "external"
)

// PaperRecord is a paper-like record from the internal dataset or an
// external scholarly API. The lowercased title is the deduplication key;
// records without a title carry the "제목 없음" placeholder after
// normalization.
type PaperRecord struct {
	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors is the author list as a single display string.
	Authors string `json:"authors" yaml:"authors"`

	// Year is the publication year as a string.
	Year string `json:"year" yaml:"year"`

	// Abstract is the paper abstract or summary.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Source names the venue, collection, or identifier the record came from.
	Source string `json:"source" yaml:"source"`

	// URL is an optional link to the paper.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Keywords is an ordered, duplicate-free keyword list.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Type is the provenance tag: internal or external.
	Type Provenance `json:"type" yaml:"type"`
}

// TopicAnalysis holds the three prose blocks describing a topic. The
// blocks are independent; any of them may be empty.
type TopicAnalysis struct {
	// Definition describes what the topic is.
	Definition string `json:"definition" yaml:"definition"`

	// Issues lists the scientific and social issues around the topic.
	Issues string `json:"issues" yaml:"issues"`

	// Cases lists prior studies and solution cases for the topic.
	Cases string `json:"cases" yaml:"cases"`
}
