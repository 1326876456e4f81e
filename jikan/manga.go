package jikan

import (
	"context"
	"fmt"
	"strings"

	"github.com/animeverse/animeverse/card"
	"github.com/animeverse/animeverse/log"
)

// TopManga lists the highest ranked manga. kind narrows the listing (manga, novel, manhwa, ...) when non-empty.
func (c *Client) TopManga(ctx context.Context, page int, kind string) (card.Page[card.Manga], error) {
	page = max(page, 1)
	params := pageParams(page)
	if kind != "" {
		params.Set("type", strings.ToLower(kind))
	}

	var resp listResponse[Manga]
	if err := c.get(ctx, "/top/manga", params, &resp); err != nil {
		return card.Page[card.Manga]{}, err
	}
	return mangaPage(&resp, page), nil
}

// SearchManga searches manga by title. genre is an optional id or genre name.
func (c *Client) SearchManga(ctx context.Context, query string, page int, genre string) (card.Page[card.Manga], error) {
	params, err := searchParams(query, page, genre)
	if err != nil {
		return card.Page[card.Manga]{}, err
	}

	var resp listResponse[Manga]
	if err := c.get(ctx, "/manga", params, &resp); err != nil {
		return card.Page[card.Manga]{}, err
	}
	return mangaPage(&resp, max(page, 1)), nil
}

// MangaDetails returns the full upstream record. Results are cached on disk.
func (c *Client) MangaDetails(ctx context.Context, id int) (*Manga, error) {
	if cached, ok := c.mangaDetails.Get(id).Get(); ok && cached != nil {
		return cached, nil
	}

	var resp itemResponse[Manga]
	if err := c.get(ctx, fmt.Sprintf("/manga/%d", id), nil, &resp); err != nil {
		return nil, err
	}

	if err := c.mangaDetails.Set(id, &resp.Data); err != nil {
		log.Warnf("caching manga %d: %v", id, err)
	}
	return &resp.Data, nil
}

// RandomManga picks one manga at random.
func (c *Client) RandomManga(ctx context.Context) (card.Manga, error) {
	var resp itemResponse[Manga]
	if err := c.get(ctx, "/random/manga", nil, &resp); err != nil {
		return card.Manga{}, err
	}
	return MangaCard(&resp.Data), nil
}
