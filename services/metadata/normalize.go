package metadata

import (
	"strings"

	"freeflix/models"
)

const (
	maxCast    = 10
	maxSimilar = 10
)

// kindFromMediaType maps TMDB's media_type. Anything other than movie/tv
// (people, collections) reports false.
func kindFromMediaType(mediaType string) (models.MediaKind, bool) {
	switch strings.ToLower(mediaType) {
	case "movie":
		return models.KindFilm, true
	case "tv":
		return models.KindSeries, true
	default:
		return "", false
	}
}

func summaryFromTMDB(r tmdbResult, kind models.MediaKind) models.ContentSummary {
	name := strings.TrimSpace(r.Title)
	if name == "" {
		name = strings.TrimSpace(r.Name)
	}
	date := r.ReleaseDate
	if kind == models.KindSeries || date == "" {
		if r.FirstAirDate != "" {
			date = r.FirstAirDate
		}
	}
	return models.ContentSummary{
		ID:            r.ID,
		DisplayName:   name,
		PosterPath:    r.PosterPath,
		BackdropPath:  r.BackdropPath,
		PosterURL:     ImageURL(r.PosterPath, posterSize),
		BackdropURL:   ImageURL(r.BackdropPath, backdropSize),
		Overview:      r.Overview,
		RatingAverage: clampRating(r.VoteAverage),
		PrimaryDate:   date,
		Kind:          kind,
	}
}

func clampRating(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 10:
		return 10
	default:
		return v
	}
}

// summariesFromPage normalizes a list page. When kind is empty the per-item
// media_type decides, and non-title results are dropped.
func summariesFromPage(page *tmdbPage, kind models.MediaKind) []models.ContentSummary {
	if page == nil {
		return []models.ContentSummary{}
	}
	out := make([]models.ContentSummary, 0, len(page.Results))
	for _, r := range page.Results {
		k := kind
		if k == "" {
			var ok bool
			if k, ok = kindFromMediaType(r.MediaType); !ok {
				continue
			}
		}
		if r.ID <= 0 {
			continue
		}
		out = append(out, summaryFromTMDB(r, k))
	}
	return out
}

func detailFromTMDB(d *tmdbDetail, kind models.MediaKind) *models.ContentDetail {
	detail := &models.ContentDetail{
		ContentSummary: summaryFromTMDB(d.tmdbResult, kind),
		Genres:         make([]models.Genre, 0, len(d.Genres)),
		Cast:           make([]models.CastMember, 0, maxCast),
	}
	for _, g := range d.Genres {
		detail.Genres = append(detail.Genres, models.Genre{ID: g.ID, Name: g.Name})
	}

	if d.Runtime != nil && *d.Runtime > 0 {
		rt := *d.Runtime
		detail.RuntimeMinutes = &rt
	} else if len(d.EpisodeRunTime) > 0 && d.EpisodeRunTime[0] > 0 {
		rt := d.EpisodeRunTime[0]
		detail.RuntimeMinutes = &rt
	}

	for i, c := range d.Credits.Cast {
		if i >= maxCast {
			break
		}
		detail.Cast = append(detail.Cast, models.CastMember{
			ID:        c.ID,
			Name:      c.Name,
			Role:      c.Character,
			ImagePath: c.ProfilePath,
			ImageURL:  ImageURL(c.ProfilePath, profileSize),
		})
	}

	// TMDB's similar list is same-kind; media_type is usually absent there.
	detail.Similar = summariesFromPage(&d.Similar, kind)
	if len(detail.Similar) > maxSimilar {
		detail.Similar = detail.Similar[:maxSimilar]
	}

	if kind == models.KindSeries {
		for _, s := range d.Seasons {
			// Specials (season 0) and empty seasons are not navigable.
			if s.SeasonNumber < 1 || s.EpisodeCount < 1 {
				continue
			}
			detail.Seasons = append(detail.Seasons, models.Season{
				Number:       s.SeasonNumber,
				EpisodeCount: s.EpisodeCount,
				Name:         s.Name,
			})
		}
	}
	return detail
}
