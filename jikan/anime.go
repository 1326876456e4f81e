package jikan

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/animeverse/animeverse/card"
	"github.com/animeverse/animeverse/log"
)

// TopAnime lists the highest ranked anime. kind narrows the listing (tv, movie, ova, ...) when non-empty.
func (c *Client) TopAnime(ctx context.Context, page int, kind string) (card.Page[card.Anime], error) {
	page = max(page, 1)
	params := pageParams(page)
	if kind != "" {
		params.Set("type", strings.ToLower(kind))
	}

	var resp listResponse[Anime]
	if err := c.get(ctx, "/top/anime", params, &resp); err != nil {
		return card.Page[card.Anime]{}, err
	}
	return animePage(&resp, page), nil
}

// SeasonalAnime lists the anime airing in the given season. A zero year or empty season means the current one.
func (c *Client) SeasonalAnime(ctx context.Context, page, year int, season Season) (card.Page[card.Anime], error) {
	page = max(page, 1)
	if year == 0 || season == "" {
		currentYear, currentSeason := CurrentSeason(time.Now())
		if year == 0 {
			year = currentYear
		}
		if season == "" {
			season = currentSeason
		}
	}

	var resp listResponse[Anime]
	path := fmt.Sprintf("/seasons/%d/%s", year, season)
	if err := c.get(ctx, path, pageParams(page), &resp); err != nil {
		return card.Page[card.Anime]{}, err
	}
	return animePage(&resp, page), nil
}

// SearchAnime searches anime by title. genre is an optional id or genre name.
func (c *Client) SearchAnime(ctx context.Context, query string, page int, genre string) (card.Page[card.Anime], error) {
	params, err := searchParams(query, page, genre)
	if err != nil {
		return card.Page[card.Anime]{}, err
	}

	var resp listResponse[Anime]
	if err := c.get(ctx, "/anime", params, &resp); err != nil {
		return card.Page[card.Anime]{}, err
	}
	return animePage(&resp, max(page, 1)), nil
}

// AnimeDetails returns the full upstream record. Results are cached on disk.
func (c *Client) AnimeDetails(ctx context.Context, id int) (*Anime, error) {
	if cached, ok := c.animeDetails.Get(id).Get(); ok && cached != nil {
		return cached, nil
	}

	var resp itemResponse[Anime]
	if err := c.get(ctx, fmt.Sprintf("/anime/%d", id), nil, &resp); err != nil {
		return nil, err
	}

	if err := c.animeDetails.Set(id, &resp.Data); err != nil {
		log.Warnf("caching anime %d: %v", id, err)
	}
	return &resp.Data, nil
}

// RandomAnime picks one anime at random.
func (c *Client) RandomAnime(ctx context.Context) (card.Anime, error) {
	var resp itemResponse[Anime]
	if err := c.get(ctx, "/random/anime", nil, &resp); err != nil {
		return card.Anime{}, err
	}
	return AnimeCard(&resp.Data), nil
}

// AnimeCharacters lists the cast of an anime.
func (c *Client) AnimeCharacters(ctx context.Context, id int) ([]Character, error) {
	var resp listResponse[Character]
	if err := c.get(ctx, fmt.Sprintf("/anime/%d/characters", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func searchParams(query string, page int, genre string) (url.Values, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	params := pageParams(page)
	params.Set("q", query)
	if strings.TrimSpace(genre) != "" {
		id, err := LookupGenre(genre)
		if err != nil {
			return nil, err
		}
		params.Set("genres", fmt.Sprint(id))
	}
	return params, nil
}
