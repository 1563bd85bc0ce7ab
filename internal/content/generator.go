// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content generates paper-format material and niche-topic
// research plans by filling prompt templates and sending them to a
// completion backend. Every failure degrades to canned Korean prose;
// the generation operations never return an error.
package content

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/pdiddy/topic-wizard/internal/cache"
	"github.com/pdiddy/topic-wizard/internal/llm"
	"github.com/pdiddy/topic-wizard/pkg/types"
)

// nicheMaxTokens bounds the niche-topic listing completion.
const nicheMaxTokens = 400

// cacheKeyPrefixLen caps how much of the title or niche topic feeds the
// cache key.
const cacheKeyPrefixLen = 30

// listPrefix strips bullet and number prefixes from suggestion lines.
var listPrefix = regexp.MustCompile(`^[-0-9*. ]+`)

// Generator fills section templates, calls the completion backend, and
// caches the assembled objects. A nil backend runs template-only.
type Generator struct {
	backend llm.Backend
	cache   *cache.Cache
	cfg     types.LLMConfig
	log     *zap.Logger
}

// New returns a Generator. backend may be nil.
func New(backend llm.Backend, c *cache.Cache, cfg types.LLMConfig, log *zap.Logger) *Generator {
	return &Generator{backend: backend, cache: c, cfg: cfg, log: log}
}

// GeneratePaperContent builds the paper-format material for a topic and
// a selected paper. Results are cached per (topic, title prefix) and a
// cached object is served indefinitely. On any unexpected failure a full
// placeholder object of the same shape is returned.
func (g *Generator) GeneratePaperContent(ctx context.Context, topic string, paper types.PaperRecord) (out types.PaperContent) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("paper content generation panicked", zap.Any("cause", r))
			out = errorPaperContent()
		}
	}()

	name := "paper_content_" + cache.Fingerprint(topic+"_"+runePrefix(paper.Title, cacheKeyPrefixLen))
	var cached types.PaperContent
	if g.cache.Get(name, &cached) {
		g.log.Info("paper content served from cache", zap.String("topic", topic))
		return cached
	}

	data := promptData{
		Topic:    topic,
		Paper:    paper,
		Keywords: strings.Join(paper.Keywords, ", "),
	}

	intro, introSrc := g.section(ctx, paperPrompts, types.SectionIntroduction, data, g.maxTokens())
	methods, methodsSrc := g.section(ctx, paperPrompts, types.SectionMethods, data, g.maxTokens())
	results, resultsSrc := g.section(ctx, paperPrompts, types.SectionResults, data, g.maxTokens())
	conclusion, conclusionSrc := g.section(ctx, paperPrompts, types.SectionConclusion, data, g.maxTokens())
	nicheRaw, nicheSrc := g.section(ctx, paperPrompts, types.SectionNicheTopics, data, nicheMaxTokens)

	out = types.PaperContent{
		Introduction: intro,
		Methods:      methods,
		Results:      results,
		Conclusion:   conclusion,
		References:   formatReferences(topic, paper),
		Disclaimer:   paperDisclaimer,
		NicheTopics:  parseNicheTopics(nicheRaw, topic),
		Source:       combineSources(introSrc, methodsSrc, resultsSrc, conclusionSrc, nicheSrc),
	}

	if err := g.cache.Put(name, out); err != nil {
		g.log.Warn("caching paper content failed", zap.Error(err))
	}
	return out
}

// GenerateNicheContent builds the research plan for a niche topic.
// Caching and failure behavior match GeneratePaperContent.
func (g *Generator) GenerateNicheContent(ctx context.Context, topic, nicheTopic string) (out types.NicheContent) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("niche content generation panicked", zap.Any("cause", r))
			out = errorNicheContent()
		}
	}()

	name := "niche_content_" + cache.Fingerprint(topic+"_"+runePrefix(nicheTopic, cacheKeyPrefixLen))
	var cached types.NicheContent
	if g.cache.Get(name, &cached) {
		g.log.Info("niche content served from cache", zap.String("topic", topic))
		return cached
	}

	data := promptData{Topic: topic, NicheTopic: nicheTopic}

	intro, introSrc := g.section(ctx, nichePrompts, types.SectionIntroduction, data, g.maxTokens())
	methods, methodsSrc := g.section(ctx, nichePrompts, types.SectionMethods, data, g.maxTokens())
	expected, expectedSrc := g.section(ctx, nichePrompts, types.SectionExpectedResults, data, g.maxTokens())

	out = types.NicheContent{
		Introduction:    intro,
		Methods:         methods,
		ExpectedResults: expected,
		Disclaimer:      nicheDisclaimer,
		Source:          combineSources(introSrc, methodsSrc, expectedSrc),
	}

	if err := g.cache.Put(name, out); err != nil {
		g.log.Warn("caching niche content failed", zap.Error(err))
	}
	return out
}

// AnalyzeTopic returns the definition, issues, and cases blocks for a
// topic. This path uses the freshness window; entries older than the
// configured age are rebuilt.
func (g *Generator) AnalyzeTopic(topic string) types.TopicAnalysis {
	name := "topic_info_" + cache.Fingerprint(topic)
	var cached types.TopicAnalysis
	if g.cache.GetFresh(name, 0, &cached) {
		return cached
	}

	info := topicInfo(topic)
	if err := g.cache.Put(name, info); err != nil {
		g.log.Warn("caching topic info failed", zap.Error(err))
	}
	return info
}

// section renders the prompt for kind and completes it. Any failure, a
// nil backend included, selects the canned text for the section kind.
func (g *Generator) section(ctx context.Context, tmpls map[types.SectionKind]*template.Template, kind types.SectionKind, data promptData, maxTokens int) (string, types.GenerationSource) {
	prompt, err := renderPrompt(tmpls, kind, data)
	if err != nil {
		g.log.Warn("prompt rendering failed", zap.String("section", string(kind)), zap.Error(err))
		return cannedSection(kind), types.SourceTemplate
	}

	if g.backend == nil {
		return cannedSection(kind), types.SourceTemplate
	}

	text, err := g.backend.Complete(ctx, prompt, maxTokens)
	if err != nil {
		if errors.Is(err, llm.ErrNotImplemented) {
			g.log.Info("provider has no implementation, using template text",
				zap.String("provider", g.backend.Name()),
				zap.String("section", string(kind)))
		} else {
			g.log.Warn("completion failed, using template text",
				zap.String("provider", g.backend.Name()),
				zap.String("section", string(kind)),
				zap.Error(err))
		}
		return cannedSection(kind), types.SourceTemplate
	}
	return strings.TrimSpace(text), types.SourceLLM
}

// maxTokens returns the per-section completion budget.
func (g *Generator) maxTokens() int {
	if g.cfg.MaxTokens > 0 {
		return g.cfg.MaxTokens
	}
	return 800
}

// parseNicheTopics extracts suggestion lines from the raw listing,
// pads with the topic-derived fillers when fewer than five remain, and
// truncates to exactly five.
func parseNicheTopics(raw, topic string) []string {
	var topics []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isListLine(line) {
			continue
		}
		cleaned := strings.TrimSpace(listPrefix.ReplaceAllString(line, ""))
		if cleaned != "" {
			topics = append(topics, cleaned)
		}
	}

	if len(topics) < 5 {
		topics = append(topics, defaultNicheTopics(topic)[:5-len(topics)]...)
	}
	return topics[:5]
}

// isListLine reports whether a line looks like a bullet or numbered
// suggestion.
func isListLine(line string) bool {
	for _, prefix := range []string{"- ", "* ", "1. ", "2. ", "3. ", "4. ", "5. "} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// combineSources reports SourceLLM when any section came from a live
// backend.
func combineSources(sources ...types.GenerationSource) types.GenerationSource {
	for _, s := range sources {
		if s == types.SourceLLM {
			return types.SourceLLM
		}
	}
	return types.SourceTemplate
}

// runePrefix returns the first n runes of s.
func runePrefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
