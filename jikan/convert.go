package jikan

import (
	"github.com/animeverse/animeverse/card"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Image prefers the large JPG and falls back to the regular one.
func (i Images) Image() string {
	return lo.Ternary(i.JPG.LargeImageURL != "", i.JPG.LargeImageURL, i.JPG.ImageURL)
}

func names(named []Named) []string {
	return lo.Map(named, func(n Named, _ int) string {
		return n.Name
	})
}

func optionalText(s *string) mo.Option[string] {
	return mo.EmptyableToOption(lo.FromPtr(s))
}

// AnimeCard projects an upstream anime onto its display card.
func AnimeCard(a *Anime) card.Anime {
	return card.Anime{
		ID:       a.MalID,
		Title:    a.Title,
		Image:    a.Images.Image(),
		Score:    mo.PointerToOption(a.Score),
		Episodes: mo.PointerToOption(a.Episodes),
		Status:   a.Status,
		Genres:   names(a.Genres),
		Synopsis: optionalText(a.Synopsis),
		Year:     mo.PointerToOption(a.Year),
		Trailer:  card.YouTubeURL(a.Trailer.YoutubeID),
	}
}

// MangaCard projects an upstream manga onto its display card.
func MangaCard(m *Manga) card.Manga {
	return card.Manga{
		ID:       m.MalID,
		Title:    m.Title,
		Image:    m.Images.Image(),
		Score:    mo.PointerToOption(m.Score),
		Chapters: mo.PointerToOption(m.Chapters),
		Volumes:  mo.PointerToOption(m.Volumes),
		Status:   m.Status,
		Genres:   names(m.Genres),
		Synopsis: optionalText(m.Synopsis),
		Authors:  names(m.Authors),
	}
}

func animePage(resp *listResponse[Anime], page int) card.Page[card.Anime] {
	return card.Page[card.Anime]{
		Items: lo.Map(resp.Data, func(a Anime, _ int) card.Anime {
			return AnimeCard(&a)
		}),
		Page:        page,
		HasNextPage: resp.Pagination.HasNextPage,
	}
}

func mangaPage(resp *listResponse[Manga], page int) card.Page[card.Manga] {
	return card.Page[card.Manga]{
		Items: lo.Map(resp.Data, func(m Manga, _ int) card.Manga {
			return MangaCard(&m)
		}),
		Page:        page,
		HasNextPage: resp.Pagination.HasNextPage,
	}
}
