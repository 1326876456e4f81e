package jikan

// Images holds the upstream image variants. Only the JPG set is used.
type Images struct {
	JPG struct {
		ImageURL      string `json:"image_url"`
		SmallImageURL string `json:"small_image_url"`
		LargeImageURL string `json:"large_image_url"`
	} `json:"jpg"`
}

// Named is a MAL entity reference such as a genre, studio or author.
type Named struct {
	MalID int    `json:"mal_id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

// Trailer is the embedded video reference of an anime.
type Trailer struct {
	YoutubeID string `json:"youtube_id"`
	URL       string `json:"url"`
	EmbedURL  string `json:"embed_url"`
}

// Anime is the upstream anime record. Nullable numbers are pointers.
type Anime struct {
	MalID         int      `json:"mal_id"`
	URL           string   `json:"url"`
	Images        Images   `json:"images"`
	Trailer       Trailer  `json:"trailer"`
	Title         string   `json:"title"`
	TitleEnglish  *string  `json:"title_english"`
	TitleJapanese *string  `json:"title_japanese"`
	Type          *string  `json:"type"`
	Source        *string  `json:"source"`
	Episodes      *int     `json:"episodes"`
	Status        string   `json:"status"`
	Airing        bool     `json:"airing"`
	Duration      *string  `json:"duration"`
	Rating        *string  `json:"rating"`
	Score         *float64 `json:"score"`
	ScoredBy      *int     `json:"scored_by"`
	Rank          *int     `json:"rank"`
	Popularity    *int     `json:"popularity"`
	Members       *int     `json:"members"`
	Synopsis      *string  `json:"synopsis"`
	Season        *string  `json:"season"`
	Year          *int     `json:"year"`
	Studios       []Named  `json:"studios"`
	Genres        []Named  `json:"genres"`
	Themes        []Named  `json:"themes"`
}

// Manga is the upstream manga record.
type Manga struct {
	MalID         int      `json:"mal_id"`
	URL           string   `json:"url"`
	Images        Images   `json:"images"`
	Title         string   `json:"title"`
	TitleEnglish  *string  `json:"title_english"`
	TitleJapanese *string  `json:"title_japanese"`
	Type          *string  `json:"type"`
	Chapters      *int     `json:"chapters"`
	Volumes       *int     `json:"volumes"`
	Status        string   `json:"status"`
	Publishing    bool     `json:"publishing"`
	Score         *float64 `json:"score"`
	ScoredBy      *int     `json:"scored_by"`
	Rank          *int     `json:"rank"`
	Popularity    *int     `json:"popularity"`
	Synopsis      *string  `json:"synopsis"`
	Authors       []Named  `json:"authors"`
	Genres        []Named  `json:"genres"`
	Themes        []Named  `json:"themes"`
}

// Character is one cast entry of an anime.
type Character struct {
	Character struct {
		MalID  int    `json:"mal_id"`
		URL    string `json:"url"`
		Images Images `json:"images"`
		Name   string `json:"name"`
	} `json:"character"`
	Role      string `json:"role"`
	Favorites int    `json:"favorites"`
}

type pagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
	CurrentPage     int  `json:"current_page"`
}

type listResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination pagination `json:"pagination"`
}

type itemResponse[T any] struct {
	Data T `json:"data"`
}
