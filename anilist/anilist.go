package anilist

import (
	"context"
	"fmt"
	"strings"

	"github.com/animeverse/animeverse/card"
	"github.com/animeverse/animeverse/log"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
)

const (
	typeAnime = "ANIME"
	typeManga = "MANGA"
)

type pageResponse struct {
	Page struct {
		PageInfo struct {
			HasNextPage bool `json:"hasNextPage"`
		} `json:"pageInfo"`
		Media []*Media `json:"media"`
	} `json:"Page"`
}

type detailsResponse struct {
	Media *Media `json:"Media"`
}

// page fetches one listing page. An empty search lists everything in sort order.
func (c *Client) page(ctx context.Context, mediaType, sort, search string, page, perPage int) (*pageResponse, error) {
	variables := map[string]any{
		"page":    max(page, 1),
		"perPage": lo.Ternary(perPage > 0, perPage, 20),
		"type":    mediaType,
		"sort":    []string{sort},
	}
	if search != "" {
		variables["search"] = search
	}

	var resp pageResponse
	if err := c.post(ctx, pageQuery, variables, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func animePage(resp *pageResponse, page int) card.Page[card.Anime] {
	return card.Page[card.Anime]{
		Items: lo.Map(resp.Page.Media, func(m *Media, _ int) card.Anime {
			return m.AnimeCard()
		}),
		Page:        max(page, 1),
		HasNextPage: resp.Page.PageInfo.HasNextPage,
	}
}

func mangaPage(resp *pageResponse, page int) card.Page[card.Manga] {
	return card.Page[card.Manga]{
		Items: lo.Map(resp.Page.Media, func(m *Media, _ int) card.Manga {
			return m.MangaCard()
		}),
		Page:        max(page, 1),
		HasNextPage: resp.Page.PageInfo.HasNextPage,
	}
}

// TrendingAnime lists anime by current trend.
func (c *Client) TrendingAnime(ctx context.Context, page, perPage int) (card.Page[card.Anime], error) {
	resp, err := c.page(ctx, typeAnime, "TRENDING_DESC", "", page, perPage)
	if err != nil {
		return card.Page[card.Anime]{}, err
	}
	return animePage(resp, page), nil
}

// TrendingManga lists manga by current trend.
func (c *Client) TrendingManga(ctx context.Context, page, perPage int) (card.Page[card.Manga], error) {
	resp, err := c.page(ctx, typeManga, "TRENDING_DESC", "", page, perPage)
	if err != nil {
		return card.Page[card.Manga]{}, err
	}
	return mangaPage(resp, page), nil
}

// SearchAnime searches anime titles, most popular first.
func (c *Client) SearchAnime(ctx context.Context, search string, page, perPage int) (card.Page[card.Anime], error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return card.Page[card.Anime]{}, ErrEmptyQuery
	}

	resp, err := c.page(ctx, typeAnime, "POPULARITY_DESC", search, page, perPage)
	if err != nil {
		return card.Page[card.Anime]{}, err
	}
	return animePage(resp, page), nil
}

// SearchManga searches manga titles, most popular first.
func (c *Client) SearchManga(ctx context.Context, search string, page, perPage int) (card.Page[card.Manga], error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return card.Page[card.Manga]{}, ErrEmptyQuery
	}

	resp, err := c.page(ctx, typeManga, "POPULARITY_DESC", search, page, perPage)
	if err != nil {
		return card.Page[card.Manga]{}, err
	}
	return mangaPage(resp, page), nil
}

// AnimeDetails returns the full record of one anime. Results are cached on disk.
func (c *Client) AnimeDetails(ctx context.Context, id int) (*Media, error) {
	if cached, ok := c.details.Get(id).Get(); ok && cached != nil {
		return cached, nil
	}

	var resp detailsResponse
	if err := c.post(ctx, detailsQuery, map[string]any{"id": id, "type": typeAnime}, &resp); err != nil {
		return nil, err
	}
	if resp.Media == nil {
		return nil, fmt.Errorf("%w: anime %d not found", ErrFetch, id)
	}

	if err := c.details.Set(id, resp.Media); err != nil {
		log.Warnf("caching anilist anime %d: %v", id, err)
	}
	return resp.Media, nil
}

// Closest searches for name and returns the anime whose title is nearest by edit distance.
// Names that recently found nothing fail fast without a request.
func (c *Client) Closest(ctx context.Context, name string) (*Media, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return nil, ErrEmptyQuery
	}

	if c.failed.Get(normalized).OrEmpty() {
		return nil, fmt.Errorf("no results found on AniList for %q", name)
	}

	resp, err := c.page(ctx, typeAnime, "SEARCH_MATCH", normalized, 1, 10)
	if err != nil {
		return nil, err
	}

	if len(resp.Page.Media) == 0 {
		_ = c.failed.Set(normalized, true)
		return nil, fmt.Errorf("no results found on AniList for %q", name)
	}

	distance := func(m *Media) int {
		return lo.Min([]int{
			levenshtein.Distance(normalized, strings.ToLower(m.Title.English)),
			levenshtein.Distance(normalized, strings.ToLower(m.Title.Romaji)),
		})
	}

	closest := lo.MinBy(resp.Page.Media, func(a, b *Media) bool {
		return distance(a) < distance(b)
	})

	log.Infof("closest AniList match for %q: %s", name, closest.Name())
	_ = c.details.Set(closest.ID, closest)
	return closest, nil
}
