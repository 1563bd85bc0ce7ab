// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nlp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/topic-wizard/pkg/types"
)

func testProcessor(apiKey string) *Processor {
	cfg := types.HTTPConfig{Timeout: 5 * time.Second}
	return New(cfg, apiKey, zap.NewNop())
}

func TestExtractKeywords(t *testing.T) {
	p := testProcessor("")
	got := p.ExtractKeywords("광촉매 광촉매 미세플라스틱 분해", 3)
	assert.Equal(t, []string{"광촉매", "미세플라스틱", "분해"}, got)
}

func TestAnalyzeSentimentRules(t *testing.T) {
	p := testProcessor("")

	tests := []struct {
		name  string
		text  string
		label string
		score float64
	}{
		{"positive korean", "이 연구는 혁신적인 접근을 보여준다", "positive", 0.6},
		{"negative english", "the results were poor and limited", "negative", 0.3},
		{"neutral", "이 문서는 연구 절차를 기술한다", "neutral", 0.5},
		{"balanced", "good but bad", "neutral", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.AnalyzeSentiment(context.Background(), tt.text)
			assert.Equal(t, tt.label, got.Label)
			assert.InDelta(t, tt.score, got.Score, 0.001)
		})
	}
}

func TestAnalyzeSentimentHosted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer hf-key", r.Header.Get("Authorization"))
		assert.True(t, strings.HasSuffix(r.URL.Path, sentimentModel))
		fmt.Fprint(w, `[[{"label":"POSITIVE","score":0.98},{"label":"NEGATIVE","score":0.02}]]`)
	}))
	defer server.Close()

	oldBase := hfAPIBase
	hfAPIBase = server.URL + "/"
	defer func() { hfAPIBase = oldBase }()

	p := testProcessor("hf-key")
	got := p.AnalyzeSentiment(context.Background(), "this is great")
	assert.Equal(t, "positive", got.Label)
	assert.InDelta(t, 0.98, got.Score, 0.001)
}

func TestAnalyzeSentimentHostedFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	oldBase := hfAPIBase
	hfAPIBase = server.URL + "/"
	defer func() { hfAPIBase = oldBase }()

	p := testProcessor("hf-key")
	got := p.AnalyzeSentiment(context.Background(), "this is great")
	assert.Equal(t, "positive", got.Label)
}

func TestSummarizeShortTextUnchanged(t *testing.T) {
	p := testProcessor("")
	text := "짧은 문장입니다."
	assert.Equal(t, text, p.Summarize(context.Background(), text, 150))
}

func TestSummarizeRules(t *testing.T) {
	p := testProcessor("")

	// Five sentences, enough words to trigger summarization.
	filler := strings.Repeat("단어 ", 5)
	text := "첫 문장입니다. " +
		filler + "둘째 문장. " +
		filler + filler + "가장 긴 셋째 문장이 여기에 있습니다. " +
		filler + "넷째 문장. " +
		"마지막 문장입니다."

	got := p.Summarize(context.Background(), text, 10)
	sentences := splitSentences(got)
	require.Len(t, sentences, 3)
	assert.Equal(t, "첫 문장입니다.", sentences[0])
	assert.Contains(t, sentences[1], "가장 긴 셋째 문장")
	assert.Equal(t, "마지막 문장입니다.", sentences[2])
}

func TestSummarizeHosted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"summary_text":"요약된 결과"}]`)
	}))
	defer server.Close()

	oldBase := hfAPIBase
	hfAPIBase = server.URL + "/"
	defer func() { hfAPIBase = oldBase }()

	p := testProcessor("hf-key")
	text := strings.Repeat("word ", 200)
	assert.Equal(t, "요약된 결과", p.Summarize(context.Background(), text, 50))
}

func TestGenerateTextFallback(t *testing.T) {
	p := testProcessor("")
	got := p.GenerateText(context.Background(), "미세플라스틱 연구는", 100)
	assert.True(t, strings.HasPrefix(got, "미세플라스틱 연구는"))
	assert.Contains(t, got, "추가 연구가 필요합니다")
}

func TestClassifyRules(t *testing.T) {
	p := testProcessor("")
	text := "환경 오염과 환경 보전에 관한 연구"

	got := p.Classify(context.Background(), text, []string{"환경", "의료"})
	require.Len(t, got, 2)
	assert.Greater(t, got["환경"], got["의료"])

	var total float64
	for _, score := range got {
		total += score
	}
	assert.InDelta(t, 1.0, total, 0.001)
}

func TestClassifyHosted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"labels":["환경","의료"],"scores":[0.9,0.1]}`)
	}))
	defer server.Close()

	oldBase := hfAPIBase
	hfAPIBase = server.URL + "/"
	defer func() { hfAPIBase = oldBase }()

	p := testProcessor("hf-key")
	got := p.Classify(context.Background(), "환경 연구", []string{"환경", "의료"})
	assert.InDelta(t, 0.9, got["환경"], 0.001)
	assert.InDelta(t, 0.1, got["의료"], 0.001)
}

func TestClassifyEmptyCategories(t *testing.T) {
	p := testProcessor("")
	assert.Empty(t, p.Classify(context.Background(), "텍스트", nil))
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"하나. 둘! 셋?", []string{"하나.", "둘!", "셋?"}},
		{"마침표 없는 문장", []string{"마침표 없는 문장"}},
		{"버전 1.5는 다르다. 끝.", []string{"버전 1.5는 다르다.", "끝."}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitSentences(tt.text))
	}
}
