package anilist

import (
	"strings"

	"github.com/animeverse/animeverse/card"
	"github.com/animeverse/animeverse/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

type name struct {
	Name string `json:"name"`
}

type staff struct {
	Name struct {
		Full string `json:"full"`
	} `json:"name"`
}

// Media is an AniList anime or manga record. Nullable numbers are pointers.
type Media struct {
	ID    int    `json:"id"`
	IDMal *int   `json:"idMal"`
	Type  string `json:"type"`
	Title struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
		Native  string `json:"native"`
	} `json:"title"`
	CoverImage struct {
		Large  string `json:"large"`
		Medium string `json:"medium"`
	} `json:"coverImage"`
	AverageScore *int     `json:"averageScore"`
	Episodes     *int     `json:"episodes"`
	Chapters     *int     `json:"chapters"`
	Volumes      *int     `json:"volumes"`
	Status       string   `json:"status"`
	Genres       []string `json:"genres"`
	Description  *string  `json:"description"`
	StartDate    struct {
		Year *int `json:"year"`
	} `json:"startDate"`
	Trailer *struct {
		ID   string `json:"id"`
		Site string `json:"site"`
	} `json:"trailer"`
	Studios struct {
		Nodes []name `json:"nodes"`
	} `json:"studios"`
	Staff struct {
		Nodes []staff `json:"nodes"`
	} `json:"staff"`
	SiteURL string `json:"siteUrl"`
}

// Name returns the English title when known, then romaji, then native.
func (m *Media) Name() string {
	return lo.Ternary(m.Title.English != "", m.Title.English,
		lo.Ternary(m.Title.Romaji != "", m.Title.Romaji, m.Title.Native))
}

func (m *Media) image() string {
	return lo.Ternary(m.CoverImage.Large != "", m.CoverImage.Large, m.CoverImage.Medium)
}

// score converts the 0-100 average into the 0-10 scale used by the cards.
func (m *Media) score() mo.Option[float64] {
	if m.AverageScore == nil {
		return mo.None[float64]()
	}
	return mo.Some(float64(*m.AverageScore) / 10)
}

func (m *Media) trailer() mo.Option[string] {
	if m.Trailer == nil || !strings.EqualFold(m.Trailer.Site, "youtube") {
		return mo.None[string]()
	}
	return card.YouTubeURL(m.Trailer.ID)
}

// status turns NOT_YET_RELEASED into "Not yet released".
func (m *Media) status() string {
	return util.Capitalize(strings.ToLower(strings.ReplaceAll(m.Status, "_", " ")))
}

// AnimeCard projects the record onto an anime card.
func (m *Media) AnimeCard() card.Anime {
	return card.Anime{
		ID:       m.ID,
		Title:    m.Name(),
		Image:    m.image(),
		Score:    m.score(),
		Episodes: mo.PointerToOption(m.Episodes),
		Status:   m.status(),
		Genres:   m.Genres,
		Synopsis: mo.EmptyableToOption(lo.FromPtr(m.Description)),
		Year:     mo.PointerToOption(m.StartDate.Year),
		Trailer:  m.trailer(),
	}
}

// MangaCard projects the record onto a manga card. Staff names stand in for authors.
func (m *Media) MangaCard() card.Manga {
	return card.Manga{
		ID:       m.ID,
		Title:    m.Name(),
		Image:    m.image(),
		Score:    m.score(),
		Chapters: mo.PointerToOption(m.Chapters),
		Volumes:  mo.PointerToOption(m.Volumes),
		Status:   m.status(),
		Genres:   m.Genres,
		Synopsis: mo.EmptyableToOption(lo.FromPtr(m.Description)),
		Authors: lo.Map(m.Staff.Nodes, func(s staff, _ int) string {
			return s.Name.Full
		}),
	}
}
