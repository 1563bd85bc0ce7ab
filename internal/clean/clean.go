// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clean normalizes text fields and paper records. Every record
// that crosses a package boundary goes through Normalize first, so the
// rest of the service can assume populated fields and tidy text.
package clean

import (
	"html"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/topic-wizard/pkg/types"
)

// Placeholder values for missing record fields.
const (
	UntitledTitle    = "제목 없음"
	UnknownAuthors   = "저자 미상"
	MissingAbstract  = "초록 정보가 없습니다."
	UnknownSource    = "출처 미상"
	untitledFilename = "untitled"
)

// stripper removes every HTML tag, keeping the text content.
var stripper = bluemonday.StrictPolicy()

var (
	spaceRun        = regexp.MustCompile(`\s+`)
	keywordJunk     = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	invalidFilename = regexp.MustCompile(`[<>:"/\\|?*]`)
	titleWord       = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	paragraphBreak  = regexp.MustCompile(`\n{2,}`)
)

// titleStopWords are excluded when backfilling keywords from a title.
var titleStopWords = map[string]bool{
	"연구": true, "분석": true, "효과": true, "방법": true,
	"시스템": true, "개발": true, "영향": true, "평가": true,
	"the": true, "a": true, "an": true, "of": true, "and": true,
	"in": true, "on": true, "at": true, "to": true, "for": true,
}

// Text strips HTML tags, decodes entities, collapses whitespace, and
// applies Unicode NFC normalization.
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = stripper.Sanitize(s)
	s = html.UnescapeString(s)
	s = spaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return norm.NFC.String(s)
}

// Keywords trims, lowercases, and de-junks each keyword, dropping empties
// and duplicates while preserving order.
func Keywords(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(keywords))
	var cleaned []string
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		kw = keywordJunk.ReplaceAllString(kw, "")
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		cleaned = append(cleaned, kw)
	}
	return cleaned
}

// Normalize returns a cleaned copy of the record with every required
// field populated. Missing fields get placeholder values; an empty
// keyword list is backfilled from the title; a missing provenance tag is
// inferred from URL presence. Normalize is idempotent.
func Normalize(p types.PaperRecord) types.PaperRecord {
	out := types.PaperRecord{
		Title:    Text(p.Title),
		Authors:  Text(p.Authors),
		Year:     Text(p.Year),
		Abstract: Text(p.Abstract),
		Source:   Text(p.Source),
		URL:      p.URL,
		Keywords: Keywords(p.Keywords),
		Type:     p.Type,
	}

	if out.Title == "" {
		out.Title = UntitledTitle
	}
	if out.Authors == "" {
		out.Authors = UnknownAuthors
	}
	if out.Year == "" {
		out.Year = time.Now().Format("2006")
	}
	if out.Abstract == "" {
		out.Abstract = MissingAbstract
	}
	if out.Source == "" {
		out.Source = UnknownSource
	}
	if len(out.Keywords) == 0 {
		out.Keywords = titleKeywords(out.Title)
	}
	if out.Type == "" {
		if out.URL != "" {
			out.Type = types.ProvenanceExternal
		} else {
			out.Type = types.ProvenanceInternal
		}
	}
	return out
}

// titleKeywords extracts up to five keywords from a title, skipping stop
// words and single-character words.
func titleKeywords(title string) []string {
	var kws []string
	seen := make(map[string]bool)
	for _, w := range titleWord.FindAllString(strings.ToLower(title), -1) {
		if titleStopWords[w] || utf8.RuneCountInString(w) < 2 || seen[w] {
			continue
		}
		seen[w] = true
		kws = append(kws, w)
		if len(kws) == 5 {
			break
		}
	}
	return kws
}

// Merge combines internal and external search results. All records are
// normalized, then deduplicated by lowercased title with external records
// winning ties. External records come first in the output.
func Merge(internal, external []types.PaperRecord) []types.PaperRecord {
	seen := make(map[string]bool, len(internal)+len(external))
	merged := make([]types.PaperRecord, 0, len(internal)+len(external))

	for _, p := range external {
		n := Normalize(p)
		key := strings.ToLower(n.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, n)
	}
	for _, p := range internal {
		n := Normalize(p)
		key := strings.ToLower(n.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, n)
	}
	return merged
}

// Paragraphs splits text on blank lines and cleans each paragraph.
func Paragraphs(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, p := range paragraphBreak.Split(text, -1) {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, Text(p))
	}
	return out
}

// Filename strips characters that are invalid in file names, trims
// trailing dots and spaces, and caps the length at 100 runes.
func Filename(name string) string {
	cleaned := invalidFilename.ReplaceAllString(name, "")
	cleaned = strings.TrimRight(cleaned, ". ")
	if cleaned == "" {
		return untitledFilename
	}
	if runes := []rune(cleaned); len(runes) > 100 {
		cleaned = string(runes[:97]) + "..."
	}
	return cleaned
}
