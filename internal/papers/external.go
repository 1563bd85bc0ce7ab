// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package papers

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/topic-wizard/pkg/types"
)

// Backend searches one external scholarly API. Each backend (arXiv,
// CrossRef, Semantic Scholar) implements this interface per the Strategy
// pattern.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.PaperRecord, error)
}

// BuildQuery forms the external query string: the topic followed by up
// to three keywords.
func BuildQuery(topic string, keywords []string) string {
	query := topic
	if len(keywords) > 0 {
		n := len(keywords)
		if n > 3 {
			n = 3
		}
		query += " " + strings.Join(keywords[:n], " ")
	}
	return query
}

// SearchExternal queries each backend in turn and concatenates their
// results in backend order. A backend failure yields an empty list for
// that source only; the other sources are unaffected.
func SearchExternal(ctx context.Context, backends []Backend, topic string, keywords []string, cfg types.SearchConfig, log *zap.Logger) []types.PaperRecord {
	query := BuildQuery(topic, keywords)

	var all []types.PaperRecord
	for _, b := range backends {
		results, err := b.Search(ctx, query, cfg)
		if err != nil {
			log.Warn("external search backend failed",
				zap.String("backend", b.Name()),
				zap.Error(err))
			continue
		}
		all = append(all, results...)
	}
	return all
}
