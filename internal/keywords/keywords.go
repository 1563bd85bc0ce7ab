// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keywords extracts representative keywords from free text with a
// stop-word filter and a frequency count. Extraction is deterministic and
// never fails; when the text yields too few candidates the result is
// padded from a fixed pool of generic research words.
package keywords

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultCount is the number of keywords returned when the caller does
// not ask for a specific count.
const DefaultCount = 5

// stopWords are dropped before counting. Korean particles plus common
// English function words.
var stopWords = map[string]bool{
	"은": true, "는": true, "이": true, "가": true,
	"을": true, "를": true, "에": true, "의": true,
	"과": true, "와": true, "이다": true, "있다": true,
	"the": true, "a": true, "an": true, "is": true,
	"are": true, "was": true, "were": true, "in": true,
	"on": true, "at": true, "to": true, "and": true, "or": true,
}

// genericPool pads results that come up short. Order matters: earlier
// entries are appended first, so an empty input yields the first n pool
// words.
var genericPool = []string{"연구", "분석", "효과", "방법", "시스템", "개발", "영향", "평가"}

// Extract returns the n most frequent qualifying tokens in text, ties
// broken by first-encountered order. Tokens shorter than two runes and
// stop words are skipped. When fewer than n tokens qualify the result is
// padded from the generic pool; the pool entries are appended as-is, so a
// text that already contains one of them can yield a repeat.
func Extract(text string, n int) []string {
	if n <= 0 {
		n = DefaultCount
	}

	selected := Top(text, n)
	for i := 0; len(selected) < n && i < len(genericPool); i++ {
		selected = append(selected, genericPool[i])
	}
	return selected
}

// Top returns up to n qualifying tokens ordered by frequency without any
// padding. Callers that want only words actually present in the text use
// this instead of Extract.
func Top(text string, n int) []string {
	tokens := tokenize(text)
	counts := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	// Stable selection sort over the first-encountered order keeps ties
	// deterministic.
	selected := append([]string(nil), order...)
	for i := 0; i < len(selected) && i < n; i++ {
		best := i
		for j := i + 1; j < len(selected); j++ {
			if counts[selected[j]] > counts[selected[best]] {
				best = j
			}
		}
		if best != i {
			picked := selected[best]
			copy(selected[i+1:best+1], selected[i:best])
			selected[i] = picked
		}
	}
	if len(selected) > n {
		selected = selected[:n]
	}
	return selected
}

// tokenize lowercases text, strips everything but Hangul syllables, Latin
// letters, digits, and whitespace, and splits on whitespace. Single-rune
// tokens and stop words are dropped.
func tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= '가' && r <= '힣':
			b.WriteRune(r)
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	var tokens []string
	for _, tok := range strings.Fields(b.String()) {
		if stopWords[tok] || utf8.RuneCountInString(tok) < 2 {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
