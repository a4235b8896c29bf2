package models

import "strings"

// MediaKind distinguishes films from series.
type MediaKind string

const (
	KindFilm   MediaKind = "film"
	KindSeries MediaKind = "series"
)

// ParseMediaKind maps a route or API token to a MediaKind.
// TMDB tokens ("movie", "tv") and the native names are both accepted.
func ParseMediaKind(raw string) (MediaKind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "movie", "movies", "film":
		return KindFilm, true
	case "tv", "series", "show":
		return KindSeries, true
	default:
		return "", false
	}
}

// Valid reports whether k is one of the known kinds.
func (k MediaKind) Valid() bool {
	return k == KindFilm || k == KindSeries
}

// TMDBType returns the path segment TMDB uses for the kind ("movie" | "tv").
func (k MediaKind) TMDBType() string {
	if k == KindSeries {
		return "tv"
	}
	return "movie"
}

// ContentSummary is the normalized record shown on browse rows, search
// results and hero banners.
type ContentSummary struct {
	ID            int64     `json:"id"`
	DisplayName   string    `json:"displayName"`
	PosterPath    string    `json:"posterPath,omitempty"`
	BackdropPath  string    `json:"backdropPath,omitempty"`
	PosterURL     string    `json:"posterUrl,omitempty"`
	BackdropURL   string    `json:"backdropUrl,omitempty"`
	Overview      string    `json:"overview"`
	RatingAverage float64   `json:"ratingAverage"`        // 0-10
	PrimaryDate   string    `json:"primaryDate,omitempty"` // YYYY-MM-DD
	Kind          MediaKind `json:"kind"`
}

// HasArtwork reports whether the record carries a poster or backdrop.
func (c ContentSummary) HasArtwork() bool {
	return c.PosterPath != "" || c.BackdropPath != ""
}

// Genre is a TMDB genre tag.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CastMember is one credited performer.
type CastMember struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	ImagePath string `json:"imagePath,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// Season describes one season of a series.
type Season struct {
	Number       int    `json:"number"`
	EpisodeCount int    `json:"episodeCount"`
	Name         string `json:"name,omitempty"`
}

// ContentDetail is the full record backing a detail or player view.
type ContentDetail struct {
	ContentSummary
	Genres         []Genre          `json:"genres"`
	RuntimeMinutes *int             `json:"runtimeMinutes,omitempty"`
	Cast           []CastMember     `json:"cast"`
	Similar        []ContentSummary `json:"similar"`
	Seasons        []Season         `json:"seasons,omitempty"`
}

// FallbackSeasons is used when a series has no usable season information.
// Playback then stays on S1E1.
var FallbackSeasons = []Season{{Number: 1, EpisodeCount: 1}}

// PlayableSeasons returns the seasons a viewer can navigate, falling back to a
// single one-episode season when none are known.
func (d *ContentDetail) PlayableSeasons() []Season {
	if d == nil || len(d.Seasons) == 0 {
		out := make([]Season, len(FallbackSeasons))
		copy(out, FallbackSeasons)
		return out
	}
	out := make([]Season, len(d.Seasons))
	copy(out, d.Seasons)
	return out
}

// ContentRow is a titled list of summaries on the home page.
type ContentRow struct {
	Title    string           `json:"title"`
	LinkPath string           `json:"linkPath,omitempty"`
	Large    bool             `json:"large,omitempty"`
	Items    []ContentSummary `json:"items"`
}

// HomePage is the composed payload for the home route.
type HomePage struct {
	Hero *ContentSummary `json:"hero,omitempty"`
	Rows []ContentRow    `json:"rows"`
}

// BrowsePage is the merged listing for the movie and series browse routes.
type BrowsePage struct {
	Kind  MediaKind        `json:"kind"`
	Title string           `json:"title"`
	Items []ContentSummary `json:"items"`
}
