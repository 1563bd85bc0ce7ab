// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// GenerationSource records which path produced a piece of prose, so
// callers and tests can assert it instead of inferring it from content.
type GenerationSource string

const (
	// SourceLLM marks text returned by a live completion backend.
	SourceLLM GenerationSource = "llm"

	// SourceTemplate marks canned or template-filled fallback text.
	SourceTemplate GenerationSource = "template"
)

// SectionKind identifies a document section. The generator selects
// fallback text by this tag, never by inspecting prompt prose.
type SectionKind string

const (
	SectionIntroduction    SectionKind = "introduction"
	SectionMethods         SectionKind = "methods"
	SectionResults         SectionKind = "results"
	SectionExpectedResults SectionKind = "expected_results"
	SectionConclusion      SectionKind = "conclusion"
	SectionReferences      SectionKind = "references"
	SectionNicheTopics     SectionKind = "niche_topics"
)

// PaperContent is the generated paper-format material for a (topic,
// selected paper) pair. All fields are always populated; generation
// never fails, it degrades to template text.
type PaperContent struct {
	Introduction string   `json:"introduction"`
	Methods      string   `json:"methods"`
	Results      string   `json:"results"`
	Conclusion   string   `json:"conclusion"`
	References   string   `json:"references"`
	Disclaimer   string   `json:"disclaimer"`
	NicheTopics  []string `json:"niche_topics"`

	// Source reports whether the prose sections came from a live backend
	// or the template fallback. References and the disclaimer are always
	// template-formatted regardless.
	Source GenerationSource `json:"source"`
}

// NicheContent is the generated research plan for a (topic, niche topic)
// pair.
type NicheContent struct {
	Introduction    string `json:"introduction"`
	Methods         string `json:"methods"`
	ExpectedResults string `json:"expected_results"`
	Disclaimer      string `json:"disclaimer"`

	Source GenerationSource `json:"source"`
}
