// Package query remembers search queries and suggests them back for completion.
package query

import (
	"strings"
	"sync"

	"github.com/animeverse/animeverse/internal/cache"
	"github.com/animeverse/animeverse/key"
	"github.com/animeverse/animeverse/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// Scope separates anime searches from manga searches.
type Scope string

const (
	Anime Scope = "anime"
	Manga Scope = "manga"
)

type record struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
	Scope Scope  `json:"scope"`
}

// History is a ranked set of past queries.
type History struct {
	records *cache.Keyed[string, record]
}

// Open loads the history stored at path.
func Open(path string) *History {
	return &History{records: cache.New[string, record](path, 0)}
}

var defaultHistory = sync.OnceValue(func() *History {
	return Open(where.Queries())
})

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}

// Remember records q or bumps its rank.
func (h *History) Remember(scope Scope, q string) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	id := string(scope) + ":" + q
	r := h.records.Get(id).OrElse(record{Query: q, Scope: scope})
	r.Rank++
	return h.records.Set(id, r)
}

// Suggest returns past queries fuzzily matching q, most used first.
func (h *History) Suggest(scope Scope, q string) []string {
	q = sanitize(q)

	records := lo.Filter(lo.Values(h.records.All()), func(r record, _ int) bool {
		return r.Scope == scope && fuzzy.Match(q, r.Query)
	})

	slices.SortStableFunc(records, func(a, b record) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Query, b.Query)
	})

	return lo.Map(records, func(r record, _ int) string {
		return r.Query
	})
}

// Remember records q in the application history.
func Remember(scope Scope, q string) error {
	return defaultHistory().Remember(scope, q)
}

// Suggest completes q from the application history when suggestions are enabled.
func Suggest(scope Scope, q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return nil
	}
	return defaultHistory().Suggest(scope, q)
}
