package catalog

import "strconv"

// SearchResponse is the body of GET /anime
type SearchResponse struct {
	Data       []Anime    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination describes where a search page sits in the full result set
type Pagination struct {
	CurrentPage     int             `json:"current_page"`
	LastVisiblePage int             `json:"last_visible_page"`
	HasNextPage     bool            `json:"has_next_page"`
	Items           PaginationItems `json:"items"`
}

// PaginationItems holds item counts for the current query
type PaginationItems struct {
	Count   int `json:"count"`
	Total   int `json:"total"`
	PerPage int `json:"per_page"`
}

// DetailResponse is the body of GET /anime/{id}
type DetailResponse struct {
	Data Anime `json:"data"`
}

// errorBody is what Jikan returns alongside non-2xx statuses
type errorBody struct {
	Status  interface{} `json:"status"`
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Error   string      `json:"error"`
}

// Anime is a catalog record. It is passed through as the API returns it;
// fields the API may send as null are pointers.
type Anime struct {
	MalID         int      `json:"mal_id"`
	URL           string   `json:"url"`
	Title         string   `json:"title"`
	TitleEnglish  *string  `json:"title_english"`
	TitleJapanese *string  `json:"title_japanese"`
	Images        Images   `json:"images"`
	Synopsis      *string  `json:"synopsis"`
	Score         *float64 `json:"score"`
	ScoredBy      *int     `json:"scored_by"`
	Rank          *int     `json:"rank"`
	Popularity    *int     `json:"popularity"`
	Members       *int     `json:"members"`
	Favorites     *int     `json:"favorites"`
	Episodes      *int     `json:"episodes"`
	Status        string   `json:"status"`
	Aired         Aired    `json:"aired"`
	Season        *string  `json:"season"`
	Year          *int     `json:"year"`
	Type          *string  `json:"type"`
	Rating        *string  `json:"rating"`
	Genres        []Entity `json:"genres"`
	Studios       []Entity `json:"studios"`
	Producers     []Entity `json:"producers"`
	Themes        []Entity `json:"themes"`
	Demographics  []Entity `json:"demographics"`
	Duration      *string  `json:"duration"`
	Source        *string  `json:"source"`
	Trailer       Trailer  `json:"trailer"`
	Background    *string  `json:"background"`
}

// Images holds cover art in both formats
type Images struct {
	JPG  ImageSet `json:"jpg"`
	WebP ImageSet `json:"webp"`
}

// ImageSet holds the three sizes Jikan serves
type ImageSet struct {
	ImageURL      string `json:"image_url"`
	SmallImageURL string `json:"small_image_url"`
	LargeImageURL string `json:"large_image_url"`
}

// Aired is the airing period
type Aired struct {
	From   *string `json:"from"`
	To     *string `json:"to"`
	String string  `json:"string"`
}

// Entity is a named MyAnimeList resource (genre, studio, producer...)
type Entity struct {
	MalID int    `json:"mal_id"`
	Name  string `json:"name"`
}

// Trailer points at a YouTube video
type Trailer struct {
	YoutubeID *string `json:"youtube_id"`
	URL       *string `json:"url"`
}

// GenreNames returns the names of the item's genres in API order
func (a Anime) GenreNames() []string {
	names := make([]string, 0, len(a.Genres))
	for _, g := range a.Genres {
		names = append(names, g.Name)
	}
	return names
}

// HasGenre reports whether the item is tagged with the named genre
func (a Anime) HasGenre(name string) bool {
	for _, g := range a.Genres {
		if g.Name == name {
			return true
		}
	}
	return false
}

// YearString is the airing year, or "" when unknown
func (a Anime) YearString() string {
	if a.Year == nil {
		return ""
	}
	return strconv.Itoa(*a.Year)
}

// EnglishTitle returns the English title when it differs from the default one
func (a Anime) EnglishTitle() string {
	if a.TitleEnglish == nil || *a.TitleEnglish == a.Title {
		return ""
	}
	return *a.TitleEnglish
}

// CoverURL picks the best jpg image available
func (a Anime) CoverURL() string {
	switch {
	case a.Images.JPG.LargeImageURL != "":
		return a.Images.JPG.LargeImageURL
	case a.Images.JPG.ImageURL != "":
		return a.Images.JPG.ImageURL
	default:
		return a.Images.WebP.ImageURL
	}
}

// TrailerURL returns the trailer link, or "" when there is no trailer
func (a Anime) TrailerURL() string {
	if a.Trailer.YoutubeID == nil || *a.Trailer.YoutubeID == "" {
		return ""
	}
	if a.Trailer.URL != nil && *a.Trailer.URL != "" {
		return *a.Trailer.URL
	}
	return "https://www.youtube.com/watch?v=" + *a.Trailer.YoutubeID
}

// Deref returns *p or the zero value
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
