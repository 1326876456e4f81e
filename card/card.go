// Package card defines the flat, display-ready projections of upstream anime and manga records.
package card

import "github.com/samber/mo"

// Anime is the normalized view of one upstream anime record.
type Anime struct {
	ID       int                `json:"id"`
	Title    string             `json:"title"`
	Image    string             `json:"image"`
	Score    mo.Option[float64] `json:"score"`
	Episodes mo.Option[int]     `json:"episodes"`
	Status   string             `json:"status"`
	Genres   []string           `json:"genres"`
	Synopsis mo.Option[string]  `json:"synopsis"`
	Year     mo.Option[int]     `json:"year"`
	Trailer  mo.Option[string]  `json:"trailer"`
}

// Manga is the normalized view of one upstream manga record.
type Manga struct {
	ID       int                `json:"id"`
	Title    string             `json:"title"`
	Image    string             `json:"image"`
	Score    mo.Option[float64] `json:"score"`
	Chapters mo.Option[int]     `json:"chapters"`
	Volumes  mo.Option[int]     `json:"volumes"`
	Status   string             `json:"status"`
	Genres   []string           `json:"genres"`
	Synopsis mo.Option[string]  `json:"synopsis"`
	Authors  []string           `json:"authors"`
}

// Page is one page of converted cards plus the upstream continuation flag.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Page        int  `json:"page"`
	HasNextPage bool `json:"has_next_page"`
}

// Accumulate merges the page into a previously shown list.
// The first page replaces whatever was shown; later pages append to it.
func (p Page[T]) Accumulate(shown []T) []T {
	if p.Page <= 1 {
		return append([]T(nil), p.Items...)
	}
	return append(shown, p.Items...)
}

// YouTubeURL builds a watch link from a video id. An empty id yields None, never an empty link.
func YouTubeURL(id string) mo.Option[string] {
	if id == "" {
		return mo.None[string]()
	}
	return mo.Some("https://www.youtube.com/watch?v=" + id)
}
