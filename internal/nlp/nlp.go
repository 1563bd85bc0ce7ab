// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package nlp provides summarization, sentiment, classification, and
// keyword extraction. With a HuggingFace key it calls the hosted
// Inference API; without one, or on any failure, rule-based fallbacks
// produce a usable result. No operation returns an error.
package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/pdiddy/topic-wizard/internal/keywords"
	"github.com/pdiddy/topic-wizard/pkg/types"
)

// hfAPIBase is a variable so tests can point it at a local server.
var hfAPIBase = "https://api-inference.huggingface.co/models/"

// Hosted model identifiers.
const (
	summarizationModel  = "facebook/bart-large-cnn"
	sentimentModel      = "distilbert-base-uncased-finetuned-sst-2-english"
	generationModel     = "gpt2"
	classificationModel = "facebook/bart-large-mnli"
)

// Sentiment is a labeled polarity score in [0, 1].
type Sentiment struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Word lists for the rule-based sentiment fallback.
var (
	positiveWords = []string{
		"좋은", "훌륭한", "탁월한", "우수한", "혁신적인", "효과적인",
		"good", "great", "excellent", "innovative", "effective",
	}
	negativeWords = []string{
		"나쁜", "부족한", "문제가 있는", "한계가 있는", "비효율적인",
		"bad", "poor", "problematic", "limited", "inefficient",
	}
)

// Processor runs the NLP operations. apiKey may be empty; every hosted
// path then falls through to the local rules.
type Processor struct {
	client *http.Client
	apiKey string
	log    *zap.Logger
}

// New returns a Processor.
func New(cfg types.HTTPConfig, apiKey string, log *zap.Logger) *Processor {
	return &Processor{
		client: &http.Client{Timeout: cfg.Timeout},
		apiKey: apiKey,
		log:    log,
	}
}

// ExtractKeywords returns the n most representative words of text.
func (p *Processor) ExtractKeywords(text string, n int) []string {
	return keywords.Extract(text, n)
}

// AnalyzeSentiment labels text as positive, negative, or neutral.
func (p *Processor) AnalyzeSentiment(ctx context.Context, text string) Sentiment {
	if p.apiKey != "" {
		var out [][]Sentiment
		if err := p.call(ctx, sentimentModel, map[string]any{"inputs": text}, &out); err != nil {
			p.log.Warn("hosted sentiment analysis failed, using word lists", zap.Error(err))
		} else if len(out) > 0 && len(out[0]) > 0 {
			best := out[0][0]
			for _, s := range out[0][1:] {
				if s.Score > best.Score {
					best = s
				}
			}
			best.Label = strings.ToLower(best.Label)
			return best
		}
	}

	lower := strings.ToLower(text)
	var positive, negative int
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			positive++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return Sentiment{Label: "positive", Score: clamp(0.5 + float64(positive-negative)*0.1)}
	case negative > positive:
		return Sentiment{Label: "negative", Score: clamp(0.5 - float64(negative-positive)*0.1)}
	default:
		return Sentiment{Label: "neutral", Score: 0.5}
	}
}

// Summarize shortens text to roughly maxLength words. Texts already
// below the limit come back unchanged.
func (p *Processor) Summarize(ctx context.Context, text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = 150
	}
	if len(strings.Fields(text)) < maxLength {
		return text
	}

	if p.apiKey != "" {
		payload := map[string]any{
			"inputs": text,
			"parameters": map[string]any{
				"max_length": maxLength,
				"min_length": max(30, maxLength/3),
				"do_sample":  false,
			},
		}
		var out []struct {
			SummaryText string `json:"summary_text"`
		}
		if err := p.call(ctx, summarizationModel, payload, &out); err != nil {
			p.log.Warn("hosted summarization failed, using sentence rules", zap.Error(err))
		} else if len(out) > 0 {
			return out[0].SummaryText
		}
	}

	sentences := splitSentences(text)
	if len(sentences) <= 3 {
		return strings.Join(sentences, " ")
	}

	// Lead and closing sentences carry the most weight; keep the longest
	// of the middle.
	middle := append([]string(nil), sentences[1:len(sentences)-1]...)
	sort.SliceStable(middle, func(i, j int) bool { return len(middle[i]) > len(middle[j]) })

	return strings.Join([]string{sentences[0], middle[0], sentences[len(sentences)-1]}, " ")
}

// GenerateText continues a prompt. Without a hosted model the prompt is
// extended with a fixed research note.
func (p *Processor) GenerateText(ctx context.Context, prompt string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = 100
	}

	if p.apiKey != "" {
		payload := map[string]any{
			"inputs": prompt,
			"parameters": map[string]any{
				"max_length":  maxLength,
				"temperature": 0.7,
				"top_p":       0.9,
				"do_sample":   true,
			},
		}
		var out []struct {
			GeneratedText string `json:"generated_text"`
		}
		if err := p.call(ctx, generationModel, payload, &out); err != nil {
			p.log.Warn("hosted text generation failed, using static text", zap.Error(err))
		} else if len(out) > 0 {
			return out[0].GeneratedText
		}
	}

	return prompt + " 이 주제에 대한 추가 연구가 필요합니다. 다양한 관점에서 접근하여 심층적인 분석이 이루어져야 합니다."
}

// Classify scores text against candidate categories. Scores sum to 1
// when any category matches.
func (p *Processor) Classify(ctx context.Context, text string, categories []string) map[string]float64 {
	if len(categories) == 0 {
		return map[string]float64{}
	}

	if p.apiKey != "" {
		payload := map[string]any{
			"inputs":     text,
			"parameters": map[string]any{"candidate_labels": categories},
		}
		var out struct {
			Labels []string  `json:"labels"`
			Scores []float64 `json:"scores"`
		}
		if err := p.call(ctx, classificationModel, payload, &out); err != nil {
			p.log.Warn("hosted classification failed, using keyword counts", zap.Error(err))
		} else if len(out.Labels) == len(out.Scores) && len(out.Labels) > 0 {
			scores := make(map[string]float64, len(out.Labels))
			for i, label := range out.Labels {
				scores[label] = out.Scores[i]
			}
			return scores
		}
	}

	lower := strings.ToLower(text)
	scores := make(map[string]float64, len(categories))
	var total float64
	for _, category := range categories {
		count := strings.Count(lower, strings.ToLower(category))
		score := math.Min(1.0, float64(count)*0.2+0.1)
		scores[category] = score
		total += score
	}
	if total > 0 {
		for category := range scores {
			scores[category] /= total
		}
	}
	return scores
}

// call posts a payload to a hosted model and decodes the response.
func (p *Processor) call(ctx context.Context, model string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding inference payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hfAPIBase+model, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling inference API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("inference API returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding inference response: %w", err)
	}
	return nil
}

// splitSentences cuts text after sentence-ending punctuation followed by
// whitespace.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		b.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') &&
			(i == len(runes)-1 || unicode.IsSpace(runes[i+1])) {
			if s := strings.TrimSpace(b.String()); s != "" {
				sentences = append(sentences, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
