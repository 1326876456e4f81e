package jikan

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Genre is a MyAnimeList genre id with its display name.
type Genre struct {
	ID   int
	Name string
}

// Genres is the filter table offered by the browser.
var Genres = []Genre{
	{1, "Action"},
	{2, "Adventure"},
	{4, "Comedy"},
	{8, "Drama"},
	{10, "Fantasy"},
	{14, "Horror"},
	{7, "Mystery"},
	{22, "Romance"},
	{24, "Sci-Fi"},
	{36, "Slice of Life"},
	{30, "Sports"},
	{41, "Thriller"},
}

// LookupGenre resolves a numeric id or a (possibly partial) genre name to a genre id.
func LookupGenre(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty name", ErrUnknownGenre)
	}
	if id, err := strconv.Atoi(s); err == nil && id > 0 {
		return id, nil
	}

	if g, ok := lo.Find(Genres, func(g Genre) bool {
		return strings.EqualFold(g.Name, s)
	}); ok {
		return g.ID, nil
	}

	ranks := fuzzy.RankFindFold(s, lo.Map(Genres, func(g Genre, _ int) string {
		return g.Name
	}))
	if len(ranks) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownGenre, s)
	}

	sort.Sort(ranks)
	return Genres[ranks[0].OriginalIndex].ID, nil
}
